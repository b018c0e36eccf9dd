package model

import (
	"math"
	"time"
)

// Identifier types for the generated universe. Surgeons, rooms and weekdays
// are dense zero-based indices; operation cards carry string names so the
// output tables stay readable.
type (
	OperationCard string
	Surgeon       int
	Room          int
	Weekday       int // 0 = Monday
)

// Pair keys the (operation card, surgeon) tables.
type Pair struct {
	Card    OperationCard
	Surgeon Surgeon
}

// Slot keys the master schedule: one surgeon in one room on one weekday.
type Slot struct {
	Surgeon Surgeon
	Room    Room
	Weekday Weekday
}

// CardParams holds the baseline 3-parameter lognormal duration model of an
// operation card and its derived complexity score. Complexity is computed
// once here and reused verbatim by every downstream stage.
type CardParams struct {
	Card       OperationCard
	Mu         float64
	Sigma      float64
	Gamma      float64
	Complexity float64 // in [0,1]
}

// DurationModel is a 3-parameter lognormal: sample = Gamma + exp(N(Mu, Sigma)).
// Samples are always >= Gamma.
type DurationModel struct {
	Mu    float64
	Sigma float64
	Gamma float64
}

// Mean returns the analytic expectation Gamma + exp(Mu + Sigma^2/2).
func (m DurationModel) Mean() float64 {
	return m.Gamma + math.Exp(m.Mu+0.5*m.Sigma*m.Sigma)
}

// StdDev returns the analytic standard deviation. The Gamma shift does not
// affect spread.
func (m DurationModel) StdDev() float64 {
	s2 := m.Sigma * m.Sigma
	return math.Sqrt(math.Exp(s2)-1) * math.Exp(m.Mu+0.5*s2)
}

// FrequencyTable holds the surgery/surgeon assignment distributions.
//
// Normalization axis: per card. Split[t] is each card's distribution across
// surgeons and sums to 1; CaseMix is the distribution across cards and sums
// to 1. The joint probability of a pair is CaseMix[t] * Split[t][s].
type FrequencyTable struct {
	Cards    []OperationCard
	Surgeons []Surgeon
	CaseMix  []float64   // len(Cards), sums to 1
	Split    [][]float64 // [card][surgeon], each row sums to 1
}

// Joint returns the joint probability mass of (card t, surgeon s).
func (f *FrequencyTable) Joint(t, s int) float64 {
	return f.CaseMix[t] * f.Split[t][s]
}

// SurgeonWorkloads returns each surgeon's total joint mass. The result sums
// to 1 across surgeons.
func (f *FrequencyTable) SurgeonWorkloads() []float64 {
	w := make([]float64, len(f.Surgeons))
	for t := range f.Cards {
		for s := range f.Surgeons {
			w[s] += f.Joint(t, s)
		}
	}
	return w
}

// CardPriority holds the per-card operate-by deadline and reschedule
// flexibility. Values are the card-level linear mappings; per-patient draws
// add independent noise around them.
type CardPriority struct {
	Card           OperationCard
	Complexity     float64
	OperateByDays  float64
	AllowedChanges float64
}

// CardAdmission holds the postoperative destination probabilities and
// length-of-stay lognormals for one card. PICU + PWard <= 1; the remainder
// is the probability of no postoperative admission.
type CardAdmission struct {
	Card    OperationCard
	PICU    float64
	PWard   float64
	ICULOS  DurationModel
	WardLOS DurationModel
}

// MasterSchedule maps (surgeon, room, weekday) slots to desirability
// weights. For each surgeon the retained weights sum to 1; slots dropped by
// the sparsity threshold are absent, not zero.
type MasterSchedule map[Slot]float64

// AdmissionOutcome is the sampled postoperative destination of one entry.
type AdmissionOutcome string

const (
	AdmissionNone AdmissionOutcome = "none"
	AdmissionICU  AdmissionOutcome = "icu"
	AdmissionWard AdmissionOutcome = "ward"
)

// WaitingListEntry is one synthetic patient request.
type WaitingListEntry struct {
	ID                    int64
	Card                  OperationCard
	Surgeon               Surgeon
	DurationMin           float64 // sampled from the pair's DurationModel
	ExpectedDurationMin   int     // analytic mean, rounded
	OperateByDays         int
	AllowedChanges        int
	AllowedDaysMovedPlus  int // 7 days of delay slack per allowed change
	AllowedDaysMovedMinus int // 1 day of expedite slack per allowed change
	Admission             AdmissionOutcome
	LOSDays               int // 0 when Admission is none
	RequestedAt           time.Time
}

// Dataset bundles every table produced by one pipeline run.
type Dataset struct {
	Cards       []CardParams
	Frequency   *FrequencyTable
	Durations   map[Pair]DurationModel
	Priorities  []CardPriority
	Admissions  []CardAdmission
	Schedule    MasterSchedule
	WaitingList []WaitingListEntry
}
