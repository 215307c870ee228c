package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/IGORMASL/ReverseGanttDiagram-sub000/internal/access"
	"github.com/IGORMASL/ReverseGanttDiagram-sub000/internal/model"
	"github.com/IGORMASL/ReverseGanttDiagram-sub000/internal/notify"
	"github.com/IGORMASL/ReverseGanttDiagram-sub000/internal/taskrule"
	"github.com/IGORMASL/ReverseGanttDiagram-sub000/internal/tasktree"
	"github.com/IGORMASL/ReverseGanttDiagram-sub000/internal/timeline"
)

type TaskService struct {
	db       *gorm.DB
	notifier notify.Notifier
}

func NewTaskService(db *gorm.DB, notifier notify.Notifier) *TaskService {
	return &TaskService{db: db, notifier: notifier}
}

type TaskInput struct {
	Title         string
	Description   string
	Kind          model.TaskKind
	Status        model.Status
	StartDate     model.Date
	EndDate       model.Date
	ParentTaskID  *uint
	SolutionID    uint // create only; ignored on update
	Dependencies  []uint
	AssignedUsers []uint
}

// TimelineView is the caller's view state for one layout pass.
type TimelineView struct {
	WindowStart model.Date
	WindowEnd   model.Date
	FitTasks    bool // derive window from task dates instead of project bounds
	Collapsed   map[uint]bool
	Today       model.Date
	PadDays     int
}

// taskScope is the resolved ancestor chain of a solution, loaded once
// per request.
type taskScope struct {
	solution *model.Solution
	project  *model.Project
	team     *model.Team
	chain    access.Chain
}

func (s *TaskService) scopeBySolution(solutionID uint) (*taskScope, error) {
	var solution model.Solution
	if err := s.db.First(&solution, solutionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("40402:solution not found")
		}
		return nil, err
	}

	var project model.Project
	if err := s.db.First(&project, solution.ProjectID).Error; err != nil {
		return nil, fmt.Errorf("40402:project not found")
	}

	var team model.Team
	if err := s.db.First(&team, solution.TeamID).Error; err != nil {
		return nil, fmt.Errorf("40402:team not found")
	}

	return &taskScope{
		solution: &solution,
		project:  &project,
		team:     &team,
		chain:    access.Chain{ClassID: project.ClassID, TeamID: team.ID},
	}, nil
}

func (s *TaskService) scopeByTeam(teamID uint) (*taskScope, error) {
	var team model.Team
	if err := s.db.Preload("Solution").First(&team, teamID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("40402:team not found")
		}
		return nil, err
	}
	if team.Solution == nil {
		return nil, fmt.Errorf("40402:team has no solution")
	}

	var project model.Project
	if err := s.db.First(&project, team.ProjectID).Error; err != nil {
		return nil, fmt.Errorf("40402:project not found")
	}

	return &taskScope{
		solution: team.Solution,
		project:  &project,
		team:     &team,
		chain:    access.Chain{ClassID: project.ClassID, TeamID: team.ID},
	}, nil
}

// checkManage enforces the task mutation rule: admin, teacher of the
// class, or member of the owning team.
func (s *TaskService) checkManage(actor access.Actor, scope *taskScope) error {
	d, err := access.TeamMemberCanManage(chainStore{s.db}, actor, scope.chain)
	if err != nil {
		return err
	}
	if !d.CanManage {
		return fmt.Errorf("40301:no permission to modify tasks in this solution")
	}
	return nil
}

func (s *TaskService) checkRead(actor access.Actor, scope *taskScope) error {
	d, err := access.Resolve(chainStore{s.db}, actor, scope.chain)
	if err != nil {
		return err
	}
	if !d.CanRead {
		return fmt.Errorf("40301:no permission to view this solution")
	}
	return nil
}

// CheckSolutionRead reports whether the actor may observe the solution.
// Used by the event stream before a subscription is opened.
func (s *TaskService) CheckSolutionRead(actor access.Actor, solutionID uint) error {
	scope, err := s.scopeBySolution(solutionID)
	if err != nil {
		return err
	}
	return s.checkRead(actor, scope)
}

// validate runs the invariant checks shared by create and update.
func (s *TaskService) validate(in TaskInput, taskID uint, scope *taskScope) (*model.Task, error) {
	var parent *model.Task
	if in.ParentTaskID != nil {
		var p model.Task
		if err := s.db.First(&p, *in.ParentTaskID).Error; err != nil || p.SolutionID != scope.solution.ID {
			return nil, fmt.Errorf("40402:parent task not found in this solution")
		}
		parent = &p
	}

	predecessors := make(map[uint]*model.Task, len(in.Dependencies))
	if len(in.Dependencies) > 0 {
		var preds []model.Task
		if err := s.db.Where("id IN ?", in.Dependencies).Find(&preds).Error; err != nil {
			return nil, err
		}
		for i := range preds {
			predecessors[preds[i].ID] = &preds[i]
		}
	}

	var memberRows []model.TeamMember
	if err := s.db.Where("team_id = ?", scope.team.ID).Find(&memberRows).Error; err != nil {
		return nil, err
	}
	members := make(map[uint]bool, len(memberRows))
	for _, m := range memberRows {
		members[m.UserID] = true
	}

	cand := taskrule.Candidate{
		ID:           taskID,
		SolutionID:   scope.solution.ID,
		ParentTaskID: in.ParentTaskID,
		Kind:         in.Kind,
		StartDate:    in.StartDate,
		EndDate:      in.EndDate,
		Dependencies: in.Dependencies,
		Assignees:    in.AssignedUsers,
	}
	window := taskrule.Window{Start: scope.project.StartDate, End: scope.project.EndDate}
	if err := taskrule.Validate(cand, parent, window, predecessors, members); err != nil {
		return nil, err
	}
	return parent, nil
}

// Create runs the full mutation pipeline: resolve chain, authorize,
// validate, then write the task with its edges and assignees in one
// transaction.
func (s *TaskService) Create(actor access.Actor, in TaskInput) (*model.Task, error) {
	scope, err := s.scopeBySolution(in.SolutionID)
	if err != nil {
		return nil, err
	}
	if err := s.checkManage(actor, scope); err != nil {
		return nil, err
	}
	if _, err := s.validate(in, 0, scope); err != nil {
		return nil, err
	}

	task := &model.Task{
		SolutionID:   scope.solution.ID,
		ParentTaskID: in.ParentTaskID,
		Title:        in.Title,
		Description:  in.Description,
		Kind:         in.Kind,
		Status:       in.Status,
		StartDate:    in.StartDate,
		EndDate:      in.EndDate,
	}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(task).Error; err != nil {
			return err
		}
		if err := writeEdges(tx, task.ID, in.Dependencies, in.AssignedUsers); err != nil {
			return err
		}
		logOp(tx, actor.ID, "task.create", "task", task.ID, model.JSONMap{"title": task.Title})
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifyChange(scope.solution.ID, task.ID, "created", actor.ID, task.Title, nil)
	return s.GetByID(actor, task.ID)
}

// Update re-runs the same validation as Create (parent legality
// included, so a re-parent cannot slip past the server) and replaces
// the dependency and assignee sets wholesale.
func (s *TaskService) Update(actor access.Actor, taskID uint, in TaskInput) (*model.Task, error) {
	var task model.Task
	if err := s.db.First(&task, taskID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("40402:task not found")
		}
		return nil, err
	}

	scope, err := s.scopeBySolution(task.SolutionID)
	if err != nil {
		return nil, err
	}
	if err := s.checkManage(actor, scope); err != nil {
		return nil, err
	}
	if _, err := s.validate(in, task.ID, scope); err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"title":          in.Title,
			"description":    in.Description,
			"kind":           in.Kind,
			"status":         in.Status,
			"start_date":     in.StartDate,
			"end_date":       in.EndDate,
			"parent_task_id": in.ParentTaskID,
		}
		if err := tx.Model(&model.Task{}).Where("id = ?", task.ID).Updates(updates).Error; err != nil {
			return err
		}
		if err := tx.Where("task_id = ?", task.ID).Delete(&model.TaskDependency{}).Error; err != nil {
			return err
		}
		if err := tx.Where("task_id = ?", task.ID).Delete(&model.TaskAssignee{}).Error; err != nil {
			return err
		}
		if err := writeEdges(tx, task.ID, in.Dependencies, in.AssignedUsers); err != nil {
			return err
		}
		logOp(tx, actor.ID, "task.update", "task", task.ID, model.JSONMap{"title": in.Title})
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifyChange(scope.solution.ID, task.ID, "updated", actor.ID, in.Title, nil)
	return s.GetByID(actor, task.ID)
}

// Delete cascades to the task's subtree and to every dependency edge
// referencing a deleted task, all in one transaction.
func (s *TaskService) Delete(actor access.Actor, taskID uint) error {
	var task model.Task
	if err := s.db.First(&task, taskID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("40402:task not found")
		}
		return err
	}

	scope, err := s.scopeBySolution(task.SolutionID)
	if err != nil {
		return err
	}
	if err := s.checkManage(actor, scope); err != nil {
		return err
	}

	var flat []model.Task
	if err := s.db.Where("solution_id = ?", task.SolutionID).Find(&flat).Error; err != nil {
		return err
	}
	doomed := tasktree.Build(flat).Subtree(taskID)

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id IN ? OR depends_on_id IN ?", doomed, doomed).
			Delete(&model.TaskDependency{}).Error; err != nil {
			return err
		}
		if err := tx.Where("task_id IN ?", doomed).Delete(&model.TaskAssignee{}).Error; err != nil {
			return err
		}
		if err := tx.Where("id IN ?", doomed).Delete(&model.Task{}).Error; err != nil {
			return err
		}
		logOp(tx, actor.ID, "task.delete", "task", taskID, model.JSONMap{"cascaded": len(doomed)})
		return nil
	})
	if err != nil {
		return err
	}

	s.notifyChange(scope.solution.ID, taskID, "deleted", actor.ID, task.Title, doomed)
	return nil
}

func (s *TaskService) GetByID(actor access.Actor, taskID uint) (*model.Task, error) {
	var task model.Task
	err := s.db.Preload("Dependencies", func(db *gorm.DB) *gorm.DB {
		return db.Order("position asc")
	}).Preload("Assignees.User").First(&task, taskID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("40402:task not found")
		}
		return nil, err
	}

	scope, err := s.scopeBySolution(task.SolutionID)
	if err != nil {
		return nil, err
	}
	if err := s.checkRead(actor, scope); err != nil {
		return nil, err
	}
	return &task, nil
}

// TeamTree returns the team's tasks as a forest, authorization checked
// against the flat list's owning chain.
func (s *TaskService) TeamTree(actor access.Actor, teamID uint) (*tasktree.Forest, *taskScope, error) {
	scope, err := s.scopeByTeam(teamID)
	if err != nil {
		return nil, nil, err
	}
	if err := s.checkRead(actor, scope); err != nil {
		return nil, nil, err
	}

	var flat []model.Task
	err = s.db.Preload("Dependencies", func(db *gorm.DB) *gorm.DB {
		return db.Order("position asc")
	}).Preload("Assignees").
		Where("solution_id = ?", scope.solution.ID).Find(&flat).Error
	if err != nil {
		return nil, nil, err
	}
	return tasktree.Build(flat), scope, nil
}

// Timeline lays the team's forest out on the project window (or on the
// task extent when the caller asks to fit tasks).
func (s *TaskService) Timeline(actor access.Actor, teamID uint, view TimelineView) (timeline.Layout, error) {
	forest, scope, err := s.TeamTree(actor, teamID)
	if err != nil {
		return timeline.Layout{}, err
	}

	opts := timeline.Options{
		Collapsed:   view.Collapsed,
		WindowStart: view.WindowStart,
		WindowEnd:   view.WindowEnd,
		Today:       view.Today,
		PadDays:     view.PadDays,
	}
	if opts.WindowStart.IsZero() && opts.WindowEnd.IsZero() && !view.FitTasks {
		opts.WindowStart = scope.project.StartDate
		opts.WindowEnd = scope.project.EndDate
	}
	return timeline.Compute(forest, opts), nil
}

func writeEdges(tx *gorm.DB, taskID uint, deps, assignees []uint) error {
	seenDep := make(map[uint]bool, len(deps))
	pos := 0
	for _, depID := range deps {
		if seenDep[depID] {
			continue
		}
		seenDep[depID] = true
		edge := &model.TaskDependency{TaskID: taskID, DependsOnID: depID, Position: pos}
		if err := tx.Create(edge).Error; err != nil {
			return err
		}
		pos++
	}
	seen := make(map[uint]bool, len(assignees))
	for _, uid := range assignees {
		if seen[uid] {
			continue
		}
		seen[uid] = true
		if err := tx.Create(&model.TaskAssignee{TaskID: taskID, UserID: uid}).Error; err != nil {
			return err
		}
	}
	return nil
}

func (s *TaskService) notifyChange(solutionID, taskID uint, action string, actorID uint, title string, deleted []uint) {
	err := s.notifier.NotifyTaskChanged(context.Background(), notify.TaskChangedEvent{
		SolutionID: solutionID,
		TaskID:     taskID,
		Action:     action,
		ActorID:    actorID,
		Title:      title,
		DeletedIDs: deleted,
	})
	if err != nil {
		log.Printf("[notify] task %s event for task %d failed: %v", action, taskID, err)
	}
}
