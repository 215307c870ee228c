package taskrule

import (
	"errors"
	"testing"

	"github.com/IGORMASL/ReverseGanttDiagram-sub000/internal/model"
)

func d(s string) model.Date {
	date, err := model.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return date
}

func uintPtr(v uint) *uint { return &v }

func projectWindow() Window {
	return Window{Start: d("2026-03-01"), End: d("2026-06-30")}
}

func wantKind(t *testing.T, err error, kind ErrorKind) {
	t.Helper()
	if err == nil {
		t.Fatal("expected a validation error, got nil")
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %T: %v", err, err)
	}
	if verr.Kind != kind {
		t.Errorf("got kind %s, want %s (detail: %s)", verr.Kind, kind, verr.Detail)
	}
}

func TestParentKindRules(t *testing.T) {
	result := &model.Task{Kind: model.KindResult, StartDate: d("2026-03-01"), EndDate: d("2026-06-30"), SolutionID: 1}
	task := &model.Task{Kind: model.KindTask, StartDate: d("2026-03-01"), EndDate: d("2026-06-30"), SolutionID: 1}
	subtask := &model.Task{Kind: model.KindSubtask, StartDate: d("2026-03-01"), EndDate: d("2026-06-30"), SolutionID: 1}

	tests := []struct {
		name   string
		kind   model.TaskKind
		parent *model.Task
		ok     bool
	}{
		{"result at root", model.KindResult, nil, true},
		{"result under result", model.KindResult, result, false},
		{"task under result", model.KindTask, result, true},
		{"task at root", model.KindTask, nil, false},
		{"task under task", model.KindTask, task, false},
		{"subtask under task", model.KindSubtask, task, true},
		{"subtask at root", model.KindSubtask, nil, false},
		{"subtask under result", model.KindSubtask, result, false},
		{"subtask under subtask", model.KindSubtask, subtask, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cand := Candidate{
				SolutionID: 1,
				Kind:       tt.kind,
				StartDate:  d("2026-03-10"),
				EndDate:    d("2026-03-20"),
			}
			if tt.parent != nil {
				cand.ParentTaskID = uintPtr(7)
			}
			err := Validate(cand, tt.parent, projectWindow(), nil, nil)
			if tt.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tt.ok {
				wantKind(t, err, ErrIllegalParentType)
			}
		})
	}
}

func TestDateContainment(t *testing.T) {
	parent := &model.Task{
		Kind:       model.KindResult,
		SolutionID: 1,
		StartDate:  d("2026-03-10"),
		EndDate:    d("2026-04-10"),
	}

	tests := []struct {
		name       string
		start, end string
		parent     *model.Task
		ok         bool
	}{
		{"inside project and parent", "2026-03-12", "2026-04-01", parent, true},
		{"exactly the parent range", "2026-03-10", "2026-04-10", parent, true},
		{"end before start", "2026-03-20", "2026-03-12", parent, false},
		{"starts before parent", "2026-03-09", "2026-04-01", parent, false},
		{"ends after parent", "2026-03-12", "2026-04-11", parent, false},
		{"root before project start", "2026-02-28", "2026-04-01", nil, false},
		{"root after project end", "2026-03-12", "2026-07-01", nil, false},
		{"single-day task", "2026-03-15", "2026-03-15", parent, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cand := Candidate{
				SolutionID: 1,
				StartDate:  d(tt.start),
				EndDate:    d(tt.end),
			}
			if tt.parent != nil {
				cand.Kind = model.KindTask
				cand.ParentTaskID = uintPtr(7)
			} else {
				cand.Kind = model.KindResult
			}
			err := Validate(cand, tt.parent, projectWindow(), nil, nil)
			if tt.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tt.ok {
				wantKind(t, err, ErrOutOfRange)
			}
		})
	}
}

func TestMissingDates(t *testing.T) {
	cand := Candidate{SolutionID: 1, Kind: model.KindResult}
	wantKind(t, Validate(cand, nil, projectWindow(), nil, nil), ErrOutOfRange)
}

func TestDependencyOrdering(t *testing.T) {
	preds := map[uint]*model.Task{
		20: {Kind: model.KindResult, SolutionID: 1, StartDate: d("2026-03-01"), EndDate: d("2026-03-09")},
		21: {Kind: model.KindResult, SolutionID: 1, StartDate: d("2026-03-01"), EndDate: d("2026-03-10")},
		22: {Kind: model.KindResult, SolutionID: 2, StartDate: d("2026-03-01"), EndDate: d("2026-03-05")},
	}

	base := Candidate{
		ID:         30,
		SolutionID: 1,
		Kind:       model.KindResult,
		StartDate:  d("2026-03-10"),
		EndDate:    d("2026-03-20"),
	}

	t.Run("predecessor ends the day before", func(t *testing.T) {
		cand := base
		cand.Dependencies = []uint{20}
		if err := Validate(cand, nil, projectWindow(), preds, nil); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("predecessor ending on the start day is illegal", func(t *testing.T) {
		cand := base
		cand.Dependencies = []uint{21}
		wantKind(t, Validate(cand, nil, projectWindow(), preds, nil), ErrDependencyOrdering)
	})

	t.Run("cross-solution dependency", func(t *testing.T) {
		cand := base
		cand.Dependencies = []uint{22}
		wantKind(t, Validate(cand, nil, projectWindow(), preds, nil), ErrCrossSolutionDependency)
	})

	t.Run("unknown predecessor", func(t *testing.T) {
		cand := base
		cand.Dependencies = []uint{99}
		wantKind(t, Validate(cand, nil, projectWindow(), preds, nil), ErrCrossSolutionDependency)
	})

	t.Run("self dependency", func(t *testing.T) {
		cand := base
		cand.Dependencies = []uint{30}
		wantKind(t, Validate(cand, nil, projectWindow(), preds, nil), ErrDependencyOrdering)
	})
}

func TestAssigneeMembership(t *testing.T) {
	members := map[uint]bool{5: true, 6: true}

	cand := Candidate{
		SolutionID: 1,
		Kind:       model.KindResult,
		StartDate:  d("2026-03-10"),
		EndDate:    d("2026-03-20"),
		Assignees:  []uint{5, 6},
	}
	if err := Validate(cand, nil, projectWindow(), nil, members); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	cand.Assignees = []uint{5, 7}
	wantKind(t, Validate(cand, nil, projectWindow(), nil, members), ErrUserNotInTeam)
}

func TestFirstFailureWins(t *testing.T) {
	// Both the parent kind and the dates are wrong; the parent kind
	// check runs first.
	cand := Candidate{
		SolutionID:   1,
		Kind:         model.KindTask,
		ParentTaskID: uintPtr(7),
		StartDate:    d("2026-07-10"),
		EndDate:      d("2026-07-20"),
	}
	wantKind(t, Validate(cand, nil, projectWindow(), nil, nil), ErrIllegalParentType)
}
