package model

import "sort"

// Parquet row types for the on-disk dataset tables. One struct per table;
// the same structs feed the Postgres COPY loader, so each carries its column
// list and CopyValues in matching order.

// CardRow is one operation card with its baseline duration parameters and
// complexity score.
type CardRow struct {
	Card       string  `parquet:"card"`
	Mu         float64 `parquet:"mu"`
	Sigma      float64 `parquet:"sigma"`
	Gamma      float64 `parquet:"gamma"`
	Complexity float64 `parquet:"complexity"`
}

func CardColumns() []string {
	return []string{"card", "mu", "sigma", "gamma", "complexity"}
}

func (r CardRow) CopyValues() []any {
	return []any{r.Card, r.Mu, r.Sigma, r.Gamma, r.Complexity}
}

// FrequencyRow is one (card, surgeon) cell of the frequency table.
type FrequencyRow struct {
	Card    string  `parquet:"card"`
	Surgeon int32   `parquet:"surgeon"`
	CaseMix float64 `parquet:"case_mix"` // card marginal, repeated per row
	Split   float64 `parquet:"split"`    // p(surgeon | card)
	Joint   float64 `parquet:"joint"`    // case_mix * split
}

func FrequencyColumns() []string {
	return []string{"card", "surgeon", "case_mix", "split", "joint"}
}

func (r FrequencyRow) CopyValues() []any {
	return []any{r.Card, r.Surgeon, r.CaseMix, r.Split, r.Joint}
}

// DurationRow is one (card, surgeon) duration model.
type DurationRow struct {
	Card    string  `parquet:"card"`
	Surgeon int32   `parquet:"surgeon"`
	Mu      float64 `parquet:"mu"`
	Sigma   float64 `parquet:"sigma"`
	Gamma   float64 `parquet:"gamma"`
}

func DurationColumns() []string {
	return []string{"card", "surgeon", "mu", "sigma", "gamma"}
}

func (r DurationRow) CopyValues() []any {
	return []any{r.Card, r.Surgeon, r.Mu, r.Sigma, r.Gamma}
}

// PriorityRow is one card's priority parameters.
type PriorityRow struct {
	Card           string  `parquet:"card"`
	Complexity     float64 `parquet:"complexity"`
	OperateByDays  float64 `parquet:"operate_by_days"`
	AllowedChanges float64 `parquet:"allowed_changes"`
}

func PriorityColumns() []string {
	return []string{"card", "complexity", "operate_by_days", "allowed_changes"}
}

func (r PriorityRow) CopyValues() []any {
	return []any{r.Card, r.Complexity, r.OperateByDays, r.AllowedChanges}
}

// AdmissionRow is one card's postoperative admission parameters.
type AdmissionRow struct {
	Card         string  `parquet:"card"`
	PICU         float64 `parquet:"p_icu"`
	PWard        float64 `parquet:"p_ward"`
	ICULOSMu     float64 `parquet:"icu_los_mu"`
	ICULOSSigma  float64 `parquet:"icu_los_sigma"`
	ICULOSGamma  float64 `parquet:"icu_los_gamma"`
	WardLOSMu    float64 `parquet:"ward_los_mu"`
	WardLOSSigma float64 `parquet:"ward_los_sigma"`
	WardLOSGamma float64 `parquet:"ward_los_gamma"`
}

func AdmissionColumns() []string {
	return []string{
		"card", "p_icu", "p_ward",
		"icu_los_mu", "icu_los_sigma", "icu_los_gamma",
		"ward_los_mu", "ward_los_sigma", "ward_los_gamma",
	}
}

func (r AdmissionRow) CopyValues() []any {
	return []any{
		r.Card, r.PICU, r.PWard,
		r.ICULOSMu, r.ICULOSSigma, r.ICULOSGamma,
		r.WardLOSMu, r.WardLOSSigma, r.WardLOSGamma,
	}
}

// ScheduleRow is one retained (surgeon, room, weekday) slot.
type ScheduleRow struct {
	Surgeon      int32   `parquet:"surgeon"`
	Room         int32   `parquet:"room"`
	Weekday      int32   `parquet:"weekday"`
	Desirability float64 `parquet:"desirability"`
}

func ScheduleColumns() []string {
	return []string{"surgeon", "room", "weekday", "desirability"}
}

func (r ScheduleRow) CopyValues() []any {
	return []any{r.Surgeon, r.Room, r.Weekday, r.Desirability}
}

// WaitingListRow is one synthetic patient request.
type WaitingListRow struct {
	ID                    int64   `parquet:"id"`
	Card                  string  `parquet:"card"`
	Surgeon               int32   `parquet:"surgeon"`
	DurationMin           float64 `parquet:"duration_min"`
	ExpectedDurationMin   int32   `parquet:"expected_duration_min"`
	OperateByDays         int32   `parquet:"operate_by_days"`
	AllowedChanges        int32   `parquet:"allowed_changes"`
	AllowedDaysMovedPlus  int32   `parquet:"allowed_days_moved_plus"`
	AllowedDaysMovedMinus int32   `parquet:"allowed_days_moved_minus"`
	Admission             string  `parquet:"admission"`
	LOSDays               int32   `parquet:"los_days"`
	RequestedAt           int64   `parquet:"requested_at"` // unix seconds
}

func WaitingListColumns() []string {
	return []string{
		"id", "card", "surgeon", "duration_min", "expected_duration_min",
		"operate_by_days", "allowed_changes",
		"allowed_days_moved_plus", "allowed_days_moved_minus",
		"admission", "los_days", "requested_at",
	}
}

func (r WaitingListRow) CopyValues() []any {
	return []any{
		r.ID, r.Card, r.Surgeon, r.DurationMin, r.ExpectedDurationMin,
		r.OperateByDays, r.AllowedChanges,
		r.AllowedDaysMovedPlus, r.AllowedDaysMovedMinus,
		r.Admission, r.LOSDays, r.RequestedAt,
	}
}

// CardRows flattens the card table in input order.
func (d *Dataset) CardRows() []CardRow {
	rows := make([]CardRow, len(d.Cards))
	for i, c := range d.Cards {
		rows[i] = CardRow{
			Card:       string(c.Card),
			Mu:         c.Mu,
			Sigma:      c.Sigma,
			Gamma:      c.Gamma,
			Complexity: c.Complexity,
		}
	}
	return rows
}

// FrequencyRows flattens the frequency table card-major.
func (d *Dataset) FrequencyRows() []FrequencyRow {
	f := d.Frequency
	rows := make([]FrequencyRow, 0, len(f.Cards)*len(f.Surgeons))
	for t, card := range f.Cards {
		for s, surgeon := range f.Surgeons {
			rows = append(rows, FrequencyRow{
				Card:    string(card),
				Surgeon: int32(surgeon),
				CaseMix: f.CaseMix[t],
				Split:   f.Split[t][s],
				Joint:   f.Joint(t, s),
			})
		}
	}
	return rows
}

// DurationRows flattens the duration models card-major, surgeon-minor.
func (d *Dataset) DurationRows() []DurationRow {
	f := d.Frequency
	rows := make([]DurationRow, 0, len(d.Durations))
	for _, card := range f.Cards {
		for _, surgeon := range f.Surgeons {
			m, ok := d.Durations[Pair{Card: card, Surgeon: surgeon}]
			if !ok {
				continue
			}
			rows = append(rows, DurationRow{
				Card:    string(card),
				Surgeon: int32(surgeon),
				Mu:      m.Mu,
				Sigma:   m.Sigma,
				Gamma:   m.Gamma,
			})
		}
	}
	return rows
}

func (d *Dataset) PriorityRows() []PriorityRow {
	rows := make([]PriorityRow, len(d.Priorities))
	for i, p := range d.Priorities {
		rows[i] = PriorityRow{
			Card:           string(p.Card),
			Complexity:     p.Complexity,
			OperateByDays:  p.OperateByDays,
			AllowedChanges: p.AllowedChanges,
		}
	}
	return rows
}

func (d *Dataset) AdmissionRows() []AdmissionRow {
	rows := make([]AdmissionRow, len(d.Admissions))
	for i, a := range d.Admissions {
		rows[i] = AdmissionRow{
			Card:         string(a.Card),
			PICU:         a.PICU,
			PWard:        a.PWard,
			ICULOSMu:     a.ICULOS.Mu,
			ICULOSSigma:  a.ICULOS.Sigma,
			ICULOSGamma:  a.ICULOS.Gamma,
			WardLOSMu:    a.WardLOS.Mu,
			WardLOSSigma: a.WardLOS.Sigma,
			WardLOSGamma: a.WardLOS.Gamma,
		}
	}
	return rows
}

// ScheduleRows flattens the schedule map in (surgeon, weekday, room) order
// so the output file is deterministic.
func (d *Dataset) ScheduleRows() []ScheduleRow {
	rows := make([]ScheduleRow, 0, len(d.Schedule))
	for slot, w := range d.Schedule {
		rows = append(rows, ScheduleRow{
			Surgeon:      int32(slot.Surgeon),
			Room:         int32(slot.Room),
			Weekday:      int32(slot.Weekday),
			Desirability: w,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Surgeon != rows[j].Surgeon {
			return rows[i].Surgeon < rows[j].Surgeon
		}
		if rows[i].Weekday != rows[j].Weekday {
			return rows[i].Weekday < rows[j].Weekday
		}
		return rows[i].Room < rows[j].Room
	})
	return rows
}

func (d *Dataset) WaitingListRows() []WaitingListRow {
	rows := make([]WaitingListRow, len(d.WaitingList))
	for i, e := range d.WaitingList {
		rows[i] = WaitingListRow{
			ID:                    e.ID,
			Card:                  string(e.Card),
			Surgeon:               int32(e.Surgeon),
			DurationMin:           e.DurationMin,
			ExpectedDurationMin:   int32(e.ExpectedDurationMin),
			OperateByDays:         int32(e.OperateByDays),
			AllowedChanges:        int32(e.AllowedChanges),
			AllowedDaysMovedPlus:  int32(e.AllowedDaysMovedPlus),
			AllowedDaysMovedMinus: int32(e.AllowedDaysMovedMinus),
			Admission:             string(e.Admission),
			LOSDays:               int32(e.LOSDays),
			RequestedAt:           e.RequestedAt.Unix(),
		}
	}
	return rows
}
