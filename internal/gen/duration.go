package gen

import (
	"math"

	"github.com/gyeh/orsynth/internal/model"
)

// specializationFactor shrinks sigma for surgeons who perform a card more
// often than the card's average surgeon. relFreq is the surgeon's split
// share times the surgeon count, so 1.0 is average. The factor is always
// <= 1 and decreases in relFreq.
func specializationFactor(relFreq, strength float64) float64 {
	return 1 / (1 + strength*relFreq)
}

// GenerateDurationModels derives one 3-parameter lognormal per (card,
// surgeon) pair from the card baselines:
//
//	mu'    = mu_t + ln(m)            m = speed * pair skill multipliers
//	sigma' = sigma_t * specializationFactor(relFreq)
//	gamma' = gamma_t
//
// sigma' is floored at SigmaFloor so it stays strictly positive.
//
// Stream order: one speed multiplier per surgeon, then one pair multiplier
// per (card, surgeon) in card-major order.
func GenerateDurationModels(freq *model.FrequencyTable, cards []model.CardParams, p DurationParams, r *Rand) (map[model.Pair]model.DurationModel, error) {
	if freq == nil || len(freq.Cards) == 0 || len(freq.Surgeons) == 0 {
		return nil, generationErrorf("frequency table is empty")
	}
	if len(cards) != len(freq.Cards) {
		return nil, configErrorf("card baselines (%d) do not match frequency table cards (%d)", len(cards), len(freq.Cards))
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	numSurgeons := len(freq.Surgeons)
	speed := make([]float64, numSurgeons)
	for s := range speed {
		speed[s] = r.LogNormal(0, p.SpeedSigma)
	}

	out := make(map[model.Pair]model.DurationModel, len(freq.Cards)*numSurgeons)
	for t, card := range cards {
		for s, surgeon := range freq.Surgeons {
			m := speed[s] * r.LogNormal(0, p.TypeSkillSigma)
			relFreq := freq.Split[t][s] * float64(numSurgeons)
			sigma := card.Sigma * specializationFactor(relFreq, p.SpecializationStrength)
			if sigma < p.SigmaFloor {
				sigma = p.SigmaFloor
			}
			out[model.Pair{Card: card.Card, Surgeon: surgeon}] = model.DurationModel{
				Mu:    card.Mu + math.Log(m),
				Sigma: sigma,
				Gamma: card.Gamma,
			}
		}
	}
	return out, nil
}
