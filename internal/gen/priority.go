package gen

import "github.com/gyeh/orsynth/internal/model"

// GeneratePriorityTable maps complexity inversely onto operate-by deadlines
// and reschedule flexibility: complex cards must be operated sooner and
// tolerate fewer changes. Noise is added before clipping, never after.
//
// Stream order: per card, operate-by noise then changes noise.
func GeneratePriorityTable(cards []model.CardParams, p PriorityParams, r *Rand) ([]model.CardPriority, error) {
	if len(cards) == 0 {
		return nil, generationErrorf("no operation cards")
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	out := make([]model.CardPriority, len(cards))
	for i, card := range cards {
		operateBy := invMap(card.Complexity, p.OperateByMin, p.OperateByMax) + r.Normal(0, p.OperateByNoise)
		changes := invMap(card.Complexity, p.ChangesMin, p.ChangesMax) + r.Normal(0, p.ChangesNoise)
		out[i] = model.CardPriority{
			Card:           card.Card,
			Complexity:     card.Complexity,
			OperateByDays:  clip(operateBy, p.OperateByMin, p.OperateByMax),
			AllowedChanges: clip(changes, p.ChangesMin, p.ChangesMax),
		}
	}
	return out, nil
}
