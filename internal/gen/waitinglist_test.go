package gen

import (
	"errors"
	"testing"
	"time"

	"github.com/gyeh/orsynth/internal/model"
)

// buildTables runs the upstream stages for waiting list tests.
func buildTables(t *testing.T, r *Rand, numCards, numSurgeons int) (
	[]model.CardParams, *model.FrequencyTable,
	map[model.Pair]model.DurationModel,
	[]model.CardPriority, []model.CardAdmission,
) {
	t.Helper()
	cards := testCards(t, numCards, r)
	tbl, err := GenerateFrequencyTable(cards, numSurgeons, DefaultFrequencyParams(), r)
	if err != nil {
		t.Fatalf("GenerateFrequencyTable: %v", err)
	}
	durations, err := GenerateDurationModels(tbl, cards, DefaultDurationParams(), r)
	if err != nil {
		t.Fatalf("GenerateDurationModels: %v", err)
	}
	priorities, err := GeneratePriorityTable(cards, DefaultPriorityParams(), r)
	if err != nil {
		t.Fatalf("GeneratePriorityTable: %v", err)
	}
	admissions, err := GenerateAdmissionTable(cards, DefaultAdmissionParams(), r)
	if err != nil {
		t.Fatalf("GenerateAdmissionTable: %v", err)
	}
	return cards, tbl, durations, priorities, admissions
}

func TestGenerateWaitingList(t *testing.T) {
	r := NewRand(8)
	_, tbl, durations, priorities, admissions := buildTables(t, r, 10, 4)

	pp := DefaultPriorityParams()
	wp := DefaultWaitingListParams()
	epoch := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	const n = 500

	entries, err := GenerateWaitingList(n, tbl, durations, priorities, admissions, pp, wp, epoch, r)
	if err != nil {
		t.Fatalf("GenerateWaitingList: %v", err)
	}
	if len(entries) != n {
		t.Fatalf("expected %d entries, got %d", n, len(entries))
	}

	earliest := epoch.AddDate(0, 0, -wp.HorizonDays)
	for i, e := range entries {
		if e.ID != int64(i+1) {
			t.Errorf("entry %d: id %d, want %d", i, e.ID, i+1)
		}
		dm, ok := durations[model.Pair{Card: e.Card, Surgeon: e.Surgeon}]
		if !ok {
			t.Fatalf("entry %d: pair (%s, %d) not in duration table", i, e.Card, e.Surgeon)
		}
		if e.DurationMin <= dm.Gamma {
			t.Errorf("entry %d: duration %g not above shift %g", i, e.DurationMin, dm.Gamma)
		}
		if e.ExpectedDurationMin <= 0 {
			t.Errorf("entry %d: expected duration %d not positive", i, e.ExpectedDurationMin)
		}
		if f := float64(e.OperateByDays); f < pp.OperateByMin || f > pp.OperateByMax {
			t.Errorf("entry %d: operate-by %d outside bounds", i, e.OperateByDays)
		}
		if f := float64(e.AllowedChanges); f < pp.ChangesMin || f > pp.ChangesMax {
			t.Errorf("entry %d: changes %d outside bounds", i, e.AllowedChanges)
		}
		if e.AllowedDaysMovedPlus != e.AllowedChanges*7 || e.AllowedDaysMovedMinus != e.AllowedChanges {
			t.Errorf("entry %d: moved-days slack (%d, %d) inconsistent with %d changes",
				i, e.AllowedDaysMovedPlus, e.AllowedDaysMovedMinus, e.AllowedChanges)
		}

		switch e.Admission {
		case model.AdmissionNone:
			if e.LOSDays != 0 {
				t.Errorf("entry %d: LOS %d without admission", i, e.LOSDays)
			}
		case model.AdmissionICU, model.AdmissionWard:
			if e.LOSDays <= 0 {
				t.Errorf("entry %d: admitted to %s with LOS %d", i, e.Admission, e.LOSDays)
			}
		default:
			t.Errorf("entry %d: unknown admission %q", i, e.Admission)
		}

		if e.RequestedAt.After(epoch) || e.RequestedAt.Before(earliest) {
			t.Errorf("entry %d: requested at %s outside horizon", i, e.RequestedAt)
		}
	}
}

func TestGenerateWaitingList_Errors(t *testing.T) {
	r := NewRand(2)
	_, tbl, durations, priorities, admissions := buildTables(t, r, 5, 3)
	pp := DefaultPriorityParams()
	wp := DefaultWaitingListParams()
	epoch := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	if _, err := GenerateWaitingList(0, tbl, durations, priorities, admissions, pp, wp, epoch, r); !errors.Is(err, ErrConfig) {
		t.Errorf("zero entries: expected config error, got %v", err)
	}
	if _, err := GenerateWaitingList(10, nil, durations, priorities, admissions, pp, wp, epoch, r); !errors.Is(err, ErrGeneration) {
		t.Errorf("nil table: expected generation error, got %v", err)
	}
	if _, err := GenerateWaitingList(10, tbl, durations, priorities[1:], admissions, pp, wp, epoch, r); !errors.Is(err, ErrGeneration) {
		t.Errorf("missing priority card: expected generation error, got %v", err)
	}
	if _, err := GenerateWaitingList(10, tbl, durations, priorities, admissions[1:], pp, wp, epoch, r); !errors.Is(err, ErrGeneration) {
		t.Errorf("missing admission card: expected generation error, got %v", err)
	}
}
