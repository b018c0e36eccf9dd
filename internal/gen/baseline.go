package gen

import (
	"fmt"

	"github.com/gyeh/orsynth/internal/model"
)

// CardName formats the canonical operation card identifier for index i.
func CardName(i int) model.OperationCard {
	return model.OperationCard(fmt.Sprintf("Operation_%d", i))
}

// Complexity scores one card's operational complexity in [0,1]:
// half the card's expected duration relative to one OR day, half its
// coefficient of variation. Computed once per card and reused verbatim by
// every downstream stage.
func Complexity(m model.DurationModel, orCapacityMin float64) float64 {
	mean := m.Mean()
	cv := 0.0
	if mean > 0 {
		cv = m.StdDev() / mean
	}
	return clip(0.5*(mean/orCapacityMin)+0.5*cv, 0, 1)
}

// GenerateBaselines draws the per-card lognormal duration parameters from
// the configured hyper-priors and scores each card's complexity.
//
// Stream order: mu for all cards, then sigma for all cards, then gamma for
// all cards.
func GenerateBaselines(numCards int, orCapacityMin float64, p BaselineParams, r *Rand) ([]model.CardParams, error) {
	if numCards <= 0 {
		return nil, configErrorf("number of operation cards must be > 0, got %d", numCards)
	}
	if orCapacityMin <= 0 {
		return nil, configErrorf("OR capacity must be > 0 minutes, got %g", orCapacityMin)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	mus := make([]float64, numCards)
	for i := range mus {
		mus[i] = r.Normal(p.MuMean, p.MuSD)
	}
	sigmas := make([]float64, numCards)
	for i := range sigmas {
		sigmas[i] = r.Uniform(p.SigmaLow, p.SigmaHigh)
	}
	gammas := make([]float64, numCards)
	for i := range gammas {
		gammas[i] = r.Uniform(p.GammaLow, p.GammaHigh)
	}

	cards := make([]model.CardParams, numCards)
	for i := range cards {
		m := model.DurationModel{Mu: mus[i], Sigma: sigmas[i], Gamma: gammas[i]}
		cards[i] = model.CardParams{
			Card:       CardName(i),
			Mu:         mus[i],
			Sigma:      sigmas[i],
			Gamma:      gammas[i],
			Complexity: Complexity(m, orCapacityMin),
		}
	}
	return cards, nil
}
