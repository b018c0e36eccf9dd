package gen

// clip bounds v to [lo, hi].
func clip(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// linMap maps a complexity score in [0,1] linearly onto [min, max].
func linMap(complexity, min, max float64) float64 {
	return min + complexity*(max-min)
}

// invMap maps complexity inversely: higher complexity yields values closer
// to min. Used where complex cards must get shorter windows or less slack.
func invMap(complexity, min, max float64) float64 {
	return max - complexity*(max-min)
}
