package gen

import (
	"math"
	"time"

	"github.com/gyeh/orsynth/internal/model"
)

// GenerateWaitingList draws n synthetic patient requests by composing the
// upstream tables: a (card, surgeon) pair from the flattened joint
// frequency, a duration from the pair's model, per-patient priority draws
// around the card's values, a 3-way admission outcome with conditional LOS,
// and a request timestamp uniform over the horizon before epoch.
//
// Entries are independent; no entry depends on any other. Stream order per
// entry: pair index, duration, operate-by noise, changes noise, admission
// outcome, LOS (admitted entries only), timestamp offset.
func GenerateWaitingList(
	n int,
	freq *model.FrequencyTable,
	durations map[model.Pair]model.DurationModel,
	priorities []model.CardPriority,
	admissions []model.CardAdmission,
	pp PriorityParams,
	wp WaitingListParams,
	epoch time.Time,
	r *Rand,
) ([]model.WaitingListEntry, error) {
	if n <= 0 {
		return nil, configErrorf("waiting list size must be > 0, got %d", n)
	}
	if err := pp.Validate(); err != nil {
		return nil, err
	}
	if err := wp.Validate(); err != nil {
		return nil, err
	}
	if freq == nil || len(freq.Cards) == 0 {
		return nil, generationErrorf("frequency table is empty")
	}

	// Flatten the joint table card-major and index the per-card lookups.
	pairs := make([]model.Pair, 0, len(freq.Cards)*len(freq.Surgeons))
	weights := make([]float64, 0, cap(pairs))
	mass := 0.0
	for t, card := range freq.Cards {
		for s, surgeon := range freq.Surgeons {
			pairs = append(pairs, model.Pair{Card: card, Surgeon: surgeon})
			w := freq.Joint(t, s)
			weights = append(weights, w)
			mass += w
		}
	}
	if mass <= 0 {
		return nil, generationErrorf("frequency table has no non-zero mass")
	}

	priorityByCard := make(map[model.OperationCard]model.CardPriority, len(priorities))
	for _, p := range priorities {
		priorityByCard[p.Card] = p
	}
	admissionByCard := make(map[model.OperationCard]model.CardAdmission, len(admissions))
	for _, a := range admissions {
		admissionByCard[a.Card] = a
	}
	for _, card := range freq.Cards {
		if _, ok := priorityByCard[card]; !ok {
			return nil, generationErrorf("card %s missing from priority table", card)
		}
		if _, ok := admissionByCard[card]; !ok {
			return nil, generationErrorf("card %s missing from admission table", card)
		}
	}

	pairDist := r.Categorical(weights)
	horizon := float64(wp.HorizonDays)

	entries := make([]model.WaitingListEntry, 0, n)
	for i := 0; i < n; i++ {
		pair := pairs[int(pairDist.Rand())]
		dm, ok := durations[pair]
		if !ok {
			return nil, generationErrorf("pair (%s, %d) missing from duration table", pair.Card, pair.Surgeon)
		}

		duration := r.LogNormal3(dm.Mu, dm.Sigma, dm.Gamma)

		prio := priorityByCard[pair.Card]
		operateBy := int(math.Round(clip(prio.OperateByDays+r.Normal(0, pp.OperateByNoise), pp.OperateByMin, pp.OperateByMax)))
		changes := int(math.Round(clip(prio.AllowedChanges+r.Normal(0, pp.ChangesNoise), pp.ChangesMin, pp.ChangesMax)))

		adm := admissionByCard[pair.Card]
		outcome, losDays := sampleAdmission(adm, r)

		offsetDays := r.Uniform(0, horizon)
		requestedAt := epoch.Add(-time.Duration(offsetDays * 24 * float64(time.Hour)))

		entries = append(entries, model.WaitingListEntry{
			ID:                    int64(i + 1),
			Card:                  pair.Card,
			Surgeon:               pair.Surgeon,
			DurationMin:           duration,
			ExpectedDurationMin:   int(math.Round(dm.Mean())),
			OperateByDays:         operateBy,
			AllowedChanges:        changes,
			AllowedDaysMovedPlus:  changes * 7,
			AllowedDaysMovedMinus: changes * 1,
			Admission:             outcome,
			LOSDays:               losDays,
			RequestedAt:           requestedAt,
		})
	}
	return entries, nil
}

// sampleAdmission draws the postoperative destination as a 3-way
// categorical {none, icu, ward} and, when admitted, a length of stay from
// that destination's lognormal, rounded up to whole days.
func sampleAdmission(adm model.CardAdmission, r *Rand) (model.AdmissionOutcome, int) {
	u := r.Uniform(0, 1)
	switch {
	case u < adm.PICU:
		los := int(math.Ceil(r.LogNormal3(adm.ICULOS.Mu, adm.ICULOS.Sigma, adm.ICULOS.Gamma)))
		return model.AdmissionICU, los
	case u < adm.PICU+adm.PWard:
		los := int(math.Ceil(r.LogNormal3(adm.WardLOS.Mu, adm.WardLOS.Sigma, adm.WardLOS.Gamma)))
		return model.AdmissionWard, los
	default:
		return model.AdmissionNone, 0
	}
}
