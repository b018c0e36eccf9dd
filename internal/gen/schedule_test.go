package gen

import (
	"errors"
	"math"
	"testing"

	"github.com/gyeh/orsynth/internal/model"
)

func TestSparsify(t *testing.T) {
	tests := []struct {
		name      string
		weights   []float64
		threshold float64
		want      []float64
	}{
		{
			name:      "drops and renormalizes",
			weights:   []float64{0.50, 0.30, 0.15, 0.03, 0.02},
			threshold: 0.05,
			want:      []float64{0.50 / 0.95, 0.30 / 0.95, 0.15 / 0.95, 0, 0},
		},
		{
			name:      "all above threshold unchanged",
			weights:   []float64{0.25, 0.25, 0.25, 0.25},
			threshold: 0.05,
			want:      []float64{0.25, 0.25, 0.25, 0.25},
		},
		{
			name:      "all below keeps argmax",
			weights:   []float64{0.02, 0.04, 0.01},
			threshold: 0.10,
			want:      []float64{0, 1, 0},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := sparsify(tc.weights, tc.threshold)
			if len(got) != len(tc.want) {
				t.Fatalf("length %d, want %d", len(got), len(tc.want))
			}
			for i := range got {
				if math.Abs(got[i]-tc.want[i]) > 1e-9 {
					t.Errorf("index %d: %g, want %g", i, got[i], tc.want[i])
				}
			}
		})
	}
}

func TestGenerateSchedule(t *testing.T) {
	r := NewRand(6)
	cards := testCards(t, 12, r)
	tbl, err := GenerateFrequencyTable(cards, 5, DefaultFrequencyParams(), r)
	if err != nil {
		t.Fatalf("GenerateFrequencyTable: %v", err)
	}

	const rooms, weekdays = 4, 5
	sched, err := GenerateSchedule(tbl, rooms, weekdays, DefaultScheduleParams(), r)
	if err != nil {
		t.Fatalf("GenerateSchedule: %v", err)
	}

	perSurgeon := make(map[model.Surgeon]float64)
	for slot, w := range sched {
		if w <= 0 {
			t.Errorf("slot %+v stored with non-positive weight %g", slot, w)
		}
		if slot.Room < 0 || int(slot.Room) >= rooms {
			t.Errorf("slot %+v: room out of range", slot)
		}
		if slot.Weekday < 0 || int(slot.Weekday) >= weekdays {
			t.Errorf("slot %+v: weekday out of range", slot)
		}
		perSurgeon[slot.Surgeon] += w
	}

	// Every surgeon keeps at least one slot and weights stay normalized.
	for _, surgeon := range tbl.Surgeons {
		sum, ok := perSurgeon[surgeon]
		if !ok {
			t.Errorf("surgeon %d has no slots", surgeon)
			continue
		}
		if math.Abs(sum-1) > 1e-9 {
			t.Errorf("surgeon %d: weights sum to %g, want 1", surgeon, sum)
		}
	}
}

func TestGenerateSchedule_Errors(t *testing.T) {
	r := NewRand(1)
	cards := testCards(t, 5, r)
	tbl, err := GenerateFrequencyTable(cards, 3, DefaultFrequencyParams(), r)
	if err != nil {
		t.Fatalf("GenerateFrequencyTable: %v", err)
	}

	if _, err := GenerateSchedule(nil, 2, 5, DefaultScheduleParams(), r); !errors.Is(err, ErrGeneration) {
		t.Errorf("nil table: expected generation error, got %v", err)
	}
	if _, err := GenerateSchedule(tbl, 0, 5, DefaultScheduleParams(), r); !errors.Is(err, ErrConfig) {
		t.Errorf("zero rooms: expected config error, got %v", err)
	}

	p := DefaultScheduleParams()
	p.SparsityThreshold = 1
	if _, err := GenerateSchedule(tbl, 2, 5, p, r); !errors.Is(err, ErrConfig) {
		t.Errorf("threshold 1: expected config error, got %v", err)
	}
}
