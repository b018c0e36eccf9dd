package gen

import "github.com/gyeh/orsynth/internal/model"

// GenerateFrequencyTable draws the case mix across cards and each card's
// split across surgeons.
//
// The split for card t uses concentration
//
//	alpha_s = BaseConcentration * affinity_s / (1 + complexity_t * ComplexityScaling)
//
// so higher complexity lowers total concentration and fewer surgeons carry
// the card. Affinity priors are drawn once per surgeon from
// U[AffinityLow, AffinityHigh].
//
// Stream order: surgeon affinities, case mix Dirichlet, then one split
// Dirichlet per card in card order.
func GenerateFrequencyTable(cards []model.CardParams, numSurgeons int, p FrequencyParams, r *Rand) (*model.FrequencyTable, error) {
	if len(cards) == 0 {
		return nil, configErrorf("no operation cards")
	}
	if numSurgeons <= 0 {
		return nil, configErrorf("number of surgeons must be > 0, got %d", numSurgeons)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	affinity := make([]float64, numSurgeons)
	for s := range affinity {
		affinity[s] = r.Uniform(p.AffinityLow, p.AffinityHigh)
	}

	caseMixAlpha := make([]float64, len(cards))
	for t := range caseMixAlpha {
		caseMixAlpha[t] = p.CaseMixConcentration
	}
	caseMix := r.Dirichlet(caseMixAlpha)

	tbl := &model.FrequencyTable{
		Cards:    make([]model.OperationCard, len(cards)),
		Surgeons: make([]model.Surgeon, numSurgeons),
		CaseMix:  caseMix,
		Split:    make([][]float64, len(cards)),
	}
	for s := range tbl.Surgeons {
		tbl.Surgeons[s] = model.Surgeon(s)
	}

	alpha := make([]float64, numSurgeons)
	for t, card := range cards {
		tbl.Cards[t] = card.Card
		conc := p.BaseConcentration / (1 + card.Complexity*p.ComplexityScaling)
		for s := range alpha {
			alpha[s] = conc * affinity[s]
			if alpha[s] <= 0 {
				return nil, configErrorf("non-positive Dirichlet alpha %g for card %s", alpha[s], card.Card)
			}
		}
		tbl.Split[t] = r.Dirichlet(alpha)
	}
	return tbl, nil
}
