package gen

import "github.com/gyeh/orsynth/internal/model"

// sparsify zeroes weights below threshold and renormalizes the survivors to
// sum to 1. When every weight falls below the threshold, the single highest
// raw weight is retained with weight 1 so no surgeon ends up with an empty
// schedule row.
func sparsify(weights []float64, threshold float64) []float64 {
	out := make([]float64, len(weights))
	total := 0.0
	for i, w := range weights {
		if w >= threshold {
			out[i] = w
			total += w
		}
	}
	if total == 0 {
		best := 0
		for i, w := range weights {
			if w > weights[best] {
				best = i
			}
		}
		out[best] = 1
		return out
	}
	for i := range out {
		out[i] /= total
	}
	return out
}

// GenerateSchedule draws each surgeon's desirability over the (room,
// weekday) slot space. Concentration scales with the surgeon's relative
// workload (joint frequency mass times surgeon count, so 1.0 is average):
// busier surgeons get higher concentration and keep more slots above the
// sparsity threshold.
//
// Stream order: one Dirichlet per surgeon in surgeon order. Slots are laid
// out weekday-major, room-minor.
func GenerateSchedule(freq *model.FrequencyTable, numRooms, numWeekdays int, p ScheduleParams, r *Rand) (model.MasterSchedule, error) {
	if freq == nil || len(freq.Surgeons) == 0 {
		return nil, generationErrorf("frequency table is empty")
	}
	if numRooms <= 0 || numWeekdays <= 0 {
		return nil, configErrorf("rooms and weekdays must be > 0, got %d rooms, %d weekdays", numRooms, numWeekdays)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	type slotPos struct {
		room model.Room
		day  model.Weekday
	}
	slots := make([]slotPos, 0, numRooms*numWeekdays)
	for day := 0; day < numWeekdays; day++ {
		for room := 0; room < numRooms; room++ {
			slots = append(slots, slotPos{room: model.Room(room), day: model.Weekday(day)})
		}
	}

	workloads := freq.SurgeonWorkloads()
	numSurgeons := float64(len(freq.Surgeons))

	schedule := make(model.MasterSchedule)
	alpha := make([]float64, len(slots))
	for s, surgeon := range freq.Surgeons {
		conc := p.BaseConcentration * workloads[s] * numSurgeons
		if conc < 1e-6 {
			conc = 1e-6
		}
		for i := range alpha {
			alpha[i] = conc
		}
		weights := sparsify(r.Dirichlet(alpha), p.SparsityThreshold)
		for i, w := range weights {
			if w > 0 {
				schedule[model.Slot{Surgeon: surgeon, Room: slots[i].room, Weekday: slots[i].day}] = w
			}
		}
	}
	return schedule, nil
}
