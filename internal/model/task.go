package model

import (
	"time"

	"gorm.io/gorm"
)

// TaskKind is the three-level hierarchy. Parent legality is fixed:
// a Result has no parent, a Task sits under a Result, a Subtask under
// a Task.
type TaskKind int

const (
	KindResult TaskKind = iota
	KindTask
	KindSubtask
)

func (k TaskKind) Valid() bool {
	return k >= KindResult && k <= KindSubtask
}

func (k TaskKind) String() string {
	switch k {
	case KindResult:
		return "result"
	case KindTask:
		return "task"
	case KindSubtask:
		return "subtask"
	}
	return "unknown"
}

type Task struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	SolutionID   uint           `gorm:"not null;index:idx_solution_id" json:"solution_id"`
	ParentTaskID *uint          `gorm:"index:idx_parent_task_id" json:"parent_task_id"`
	Title        string         `gorm:"type:varchar(256);not null" json:"title"`
	Description  string         `gorm:"type:text" json:"description"`
	Kind         TaskKind       `gorm:"not null;default:0" json:"kind"`
	Status       Status         `gorm:"not null;default:0" json:"status"`
	StartDate    Date           `gorm:"type:date;not null" json:"start_date"`
	EndDate      Date           `gorm:"type:date;not null" json:"end_date"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	Dependencies []TaskDependency `gorm:"foreignKey:TaskID" json:"dependencies,omitempty"`
	Assignees    []TaskAssignee   `gorm:"foreignKey:TaskID" json:"assignees,omitempty"`
}

func (Task) TableName() string { return "tasks" }

// DependencyIDs returns predecessor ids in stored fan-out order.
func (t *Task) DependencyIDs() []uint {
	ids := make([]uint, 0, len(t.Dependencies))
	for _, d := range t.Dependencies {
		ids = append(ids, d.DependsOnID)
	}
	return ids
}

// AssigneeIDs returns assigned user ids.
func (t *Task) AssigneeIDs() []uint {
	ids := make([]uint, 0, len(t.Assignees))
	for _, a := range t.Assignees {
		ids = append(ids, a.UserID)
	}
	return ids
}

// TaskDependency is a "can start after" edge: the task may not start
// until the predecessor has ended. Position preserves the client's edge
// order for arrow fan-out.
type TaskDependency struct {
	ID          uint `gorm:"primaryKey" json:"id"`
	TaskID      uint `gorm:"not null;uniqueIndex:uk_task_dep" json:"task_id"`
	DependsOnID uint `gorm:"not null;uniqueIndex:uk_task_dep;index:idx_depends_on_id" json:"depends_on_id"`
	Position    int  `gorm:"not null;default:0" json:"position"`
}

func (TaskDependency) TableName() string { return "task_dependencies" }

type TaskAssignee struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	TaskID uint `gorm:"not null;uniqueIndex:uk_task_assignee" json:"task_id"`
	UserID uint `gorm:"not null;uniqueIndex:uk_task_assignee;index:idx_assignee_user_id" json:"user_id"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (TaskAssignee) TableName() string { return "task_assignees" }
