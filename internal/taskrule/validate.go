package taskrule

import (
	"fmt"

	"github.com/IGORMASL/ReverseGanttDiagram-sub000/internal/model"
)

type ErrorKind int

const (
	ErrIllegalParentType ErrorKind = iota
	ErrOutOfRange
	ErrCrossSolutionDependency
	ErrDependencyOrdering
	ErrUserNotInTeam
)

func (k ErrorKind) String() string {
	switch k {
	case ErrIllegalParentType:
		return "illegal_parent_type"
	case ErrOutOfRange:
		return "out_of_range"
	case ErrCrossSolutionDependency:
		return "cross_solution_dependency"
	case ErrDependencyOrdering:
		return "dependency_ordering"
	case ErrUserNotInTeam:
		return "user_not_in_team"
	}
	return "unknown"
}

type ValidationError struct {
	Kind   ErrorKind
	Detail string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

func fail(kind ErrorKind, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}

// Candidate is the task being created or updated, after DTO parsing.
type Candidate struct {
	ID           uint // zero on create
	SolutionID   uint
	ParentTaskID *uint
	Kind         model.TaskKind
	StartDate    model.Date
	EndDate      model.Date
	Dependencies []uint
	Assignees    []uint
}

// Window is the project date range every task must stay inside.
type Window struct {
	Start model.Date
	End   model.Date
}

// Validate enforces the task invariants in fixed order, first failure
// wins: parent kind legality, date containment (by calendar day),
// dependency legality, assignee membership. The strict end-before-start
// ordering on dependencies rules out cycles on its own, so no separate
// cycle pass exists. The same checks run on create and update.
//
// predecessors carries the loaded tasks for every requested dependency
// id; a missing entry means the referenced task does not exist.
func Validate(cand Candidate, parent *model.Task, window Window, predecessors map[uint]*model.Task, teamMembers map[uint]bool) error {
	if err := checkParentKind(cand, parent); err != nil {
		return err
	}
	if err := checkDates(cand, parent, window); err != nil {
		return err
	}
	if err := checkDependencies(cand, predecessors); err != nil {
		return err
	}
	return checkAssignees(cand, teamMembers)
}

func checkParentKind(cand Candidate, parent *model.Task) error {
	switch cand.Kind {
	case model.KindResult:
		if cand.ParentTaskID != nil {
			return fail(ErrIllegalParentType, "a result cannot have a parent")
		}
	case model.KindTask:
		if parent == nil || parent.Kind != model.KindResult {
			return fail(ErrIllegalParentType, "a task must sit under a result")
		}
	case model.KindSubtask:
		if parent == nil || parent.Kind != model.KindTask {
			return fail(ErrIllegalParentType, "a subtask must sit under a task")
		}
	default:
		return fail(ErrIllegalParentType, "unknown task kind %d", cand.Kind)
	}
	return nil
}

func checkDates(cand Candidate, parent *model.Task, window Window) error {
	if cand.StartDate.IsZero() || cand.EndDate.IsZero() {
		return fail(ErrOutOfRange, "start and end dates are required")
	}
	if cand.EndDate.Before(cand.StartDate) {
		return fail(ErrOutOfRange, "end date %s before start date %s", cand.EndDate, cand.StartDate)
	}
	if cand.StartDate.Before(window.Start) || cand.EndDate.After(window.End) {
		return fail(ErrOutOfRange, "task %s..%s outside project range %s..%s",
			cand.StartDate, cand.EndDate, window.Start, window.End)
	}
	if parent != nil {
		if cand.StartDate.Before(parent.StartDate) || cand.EndDate.After(parent.EndDate) {
			return fail(ErrOutOfRange, "task %s..%s outside parent range %s..%s",
				cand.StartDate, cand.EndDate, parent.StartDate, parent.EndDate)
		}
	}
	return nil
}

func checkDependencies(cand Candidate, predecessors map[uint]*model.Task) error {
	for _, depID := range cand.Dependencies {
		if cand.ID != 0 && depID == cand.ID {
			return fail(ErrDependencyOrdering, "task %d cannot depend on itself", depID)
		}
		pred, ok := predecessors[depID]
		if !ok || pred == nil {
			return fail(ErrCrossSolutionDependency, "predecessor %d not found", depID)
		}
		if pred.SolutionID != cand.SolutionID {
			return fail(ErrCrossSolutionDependency,
				"predecessor %d belongs to solution %d, not %d", depID, pred.SolutionID, cand.SolutionID)
		}
		// Strict: a predecessor ending on the dependent's start day is
		// still illegal.
		if !pred.EndDate.Before(cand.StartDate) {
			return fail(ErrDependencyOrdering,
				"predecessor %d ends %s, dependent starts %s", depID, pred.EndDate, cand.StartDate)
		}
	}
	return nil
}

func checkAssignees(cand Candidate, teamMembers map[uint]bool) error {
	for _, userID := range cand.Assignees {
		if !teamMembers[userID] {
			return fail(ErrUserNotInTeam, "user %d is not a member of the owning team", userID)
		}
	}
	return nil
}
