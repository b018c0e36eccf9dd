package gen

import "github.com/gyeh/orsynth/internal/model"

// losModel maps complexity linearly onto one LOS lognormal. Sigma is
// floored and gamma clamped non-negative after noise.
func losModel(complexity float64, p LOSParams, r *Rand) model.DurationModel {
	mu := linMap(complexity, p.MuMin, p.MuMax) + r.Normal(0, p.MuNoise)
	sigma := linMap(complexity, p.SigmaMin, p.SigmaMax) + r.Normal(0, p.SigmaNoise)
	if sigma < 0.01 {
		sigma = 0.01
	}
	gamma := linMap(complexity, p.GammaMin, p.GammaMax) + r.Normal(0, p.GammaNoise)
	if gamma < 0 {
		gamma = 0
	}
	return model.DurationModel{Mu: mu, Sigma: sigma, Gamma: gamma}
}

// GenerateAdmissionTable maps complexity onto postoperative destination
// probabilities and length-of-stay lognormals. Both probabilities are
// clipped to [0,1] after noise; when their sum exceeds 1 they are rescaled
// down proportionally so ICU and ward stay mutually exclusive with a "none"
// remainder.
//
// Stream order: per card, p_icu noise, p_ward noise, then the ICU and ward
// LOS parameter noises (mu, sigma, gamma each).
func GenerateAdmissionTable(cards []model.CardParams, p AdmissionParams, r *Rand) ([]model.CardAdmission, error) {
	if len(cards) == 0 {
		return nil, generationErrorf("no operation cards")
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	out := make([]model.CardAdmission, len(cards))
	for i, card := range cards {
		pICU := clip(linMap(card.Complexity, p.PICUMin, p.PICUMax)+r.Normal(0, p.PICUNoise), 0, 1)
		pWard := clip(linMap(card.Complexity, p.PWardMin, p.PWardMax)+r.Normal(0, p.PWardNoise), 0, 1)
		if sum := pICU + pWard; sum > 1 {
			pICU /= sum
			pWard /= sum
		}
		out[i] = model.CardAdmission{
			Card:    card.Card,
			PICU:    pICU,
			PWard:   pWard,
			ICULOS:  losModel(card.Complexity, p.ICULOS, r),
			WardLOS: losModel(card.Complexity, p.WardLOS, r),
		}
	}
	return out, nil
}
