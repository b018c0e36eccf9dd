package model

import (
	"math"
	"testing"
)

func TestDurationModelMoments(t *testing.T) {
	tests := []struct {
		name     string
		m        DurationModel
		wantMean float64
		wantSD   float64
	}{
		{
			name:     "standard lognormal",
			m:        DurationModel{Mu: 0, Sigma: 1, Gamma: 0},
			wantMean: math.Exp(0.5),
			wantSD:   math.Sqrt(math.E-1) * math.Exp(0.5),
		},
		{
			name:     "shift moves mean only",
			m:        DurationModel{Mu: 0, Sigma: 1, Gamma: 30},
			wantMean: 30 + math.Exp(0.5),
			wantSD:   math.Sqrt(math.E-1) * math.Exp(0.5),
		},
		{
			name:     "typical operation",
			m:        DurationModel{Mu: 3.5, Sigma: 0.4, Gamma: 5},
			wantMean: 5 + math.Exp(3.5+0.08),
			wantSD:   math.Sqrt(math.Exp(0.16)-1) * math.Exp(3.5+0.08),
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.m.Mean(); math.Abs(got-tc.wantMean) > 1e-9 {
				t.Errorf("Mean = %g, want %g", got, tc.wantMean)
			}
			if got := tc.m.StdDev(); math.Abs(got-tc.wantSD) > 1e-9 {
				t.Errorf("StdDev = %g, want %g", got, tc.wantSD)
			}
		})
	}
}

func TestFrequencyTableJoint(t *testing.T) {
	f := &FrequencyTable{
		Cards:    []OperationCard{"Operation_0", "Operation_1"},
		Surgeons: []Surgeon{0, 1},
		CaseMix:  []float64{0.75, 0.25},
		Split: [][]float64{
			{0.6, 0.4},
			{0.2, 0.8},
		},
	}

	if got := f.Joint(0, 1); math.Abs(got-0.3) > 1e-12 {
		t.Errorf("Joint(0,1) = %g, want 0.3", got)
	}

	w := f.SurgeonWorkloads()
	want := []float64{0.75*0.6 + 0.25*0.2, 0.75*0.4 + 0.25*0.8}
	total := 0.0
	for s := range w {
		if math.Abs(w[s]-want[s]) > 1e-12 {
			t.Errorf("workload[%d] = %g, want %g", s, w[s], want[s])
		}
		total += w[s]
	}
	if math.Abs(total-1) > 1e-12 {
		t.Errorf("workloads sum to %g, want 1", total)
	}
}
