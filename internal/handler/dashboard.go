package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/IGORMASL/ReverseGanttDiagram-sub000/internal/middleware"
	"github.com/IGORMASL/ReverseGanttDiagram-sub000/internal/model"
)

type DashboardHandler struct {
	db *gorm.DB
}

func NewDashboardHandler(db *gorm.DB) *DashboardHandler {
	return &DashboardHandler{db: db}
}

// GET /dashboard/stats
func (h *DashboardHandler) GetStats(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var myClasses int64
	h.db.Model(&model.ClassRole{}).Where("user_id = ?", userID).Count(&myClasses)

	var myTeams int64
	h.db.Model(&model.TeamMember{}).Where("user_id = ?", userID).Count(&myTeams)

	var assignedOpen int64
	h.db.Model(&model.Task{}).
		Joins("JOIN task_assignees ON task_assignees.task_id = tasks.id").
		Where("task_assignees.user_id = ? AND tasks.status <> ?", userID, model.StatusCompleted).
		Count(&assignedOpen)

	// Tasks assigned to the user that end within a week and are not done.
	weekAhead := model.DateOf(time.Now()).AddDays(7)
	var dueSoon int64
	h.db.Model(&model.Task{}).
		Joins("JOIN task_assignees ON task_assignees.task_id = tasks.id").
		Where("task_assignees.user_id = ? AND tasks.status <> ? AND tasks.end_date <= ?", userID, model.StatusCompleted, weekAhead).
		Count(&dueSoon)

	// Recent activity in the user's solutions (last 10 operations)
	var recentLogs []model.OperationLog
	h.db.Preload("User").
		Where("resource_type = ? AND resource_id IN (SELECT tasks.id FROM tasks JOIN solutions ON tasks.solution_id = solutions.id JOIN team_members ON solutions.team_id = team_members.team_id WHERE team_members.user_id = ?)", "task", userID).
		Order("created_at desc").Limit(10).Find(&recentLogs)

	recentActivity := make([]gin.H, 0)
	for _, entry := range recentLogs {
		item := gin.H{
			"action":      entry.Action,
			"resource_id": entry.ResourceID,
			"time":        entry.CreatedAt,
			"detail":      entry.Detail,
		}
		if entry.User != nil {
			item["user"] = gin.H{"id": entry.User.ID, "name": entry.User.Name}
		}
		recentActivity = append(recentActivity, item)
	}

	Success(c, gin.H{
		"my_classes":      myClasses,
		"my_teams":        myTeams,
		"assigned_open":   assignedOpen,
		"due_soon":        dueSoon,
		"recent_activity": recentActivity,
	})
}

// GET /dashboard/my-tasks
func (h *DashboardHandler) GetMyTasks(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var tasks []model.Task
	h.db.
		Joins("JOIN task_assignees ON task_assignees.task_id = tasks.id").
		Where("task_assignees.user_id = ?", userID).
		Order("tasks.end_date asc, tasks.id asc").Limit(50).Find(&tasks)

	byStatus := map[string]int{"planned": 0, "in_progress": 0, "completed": 0}
	taskList := make([]gin.H, 0, len(tasks))
	for _, t := range tasks {
		switch t.Status {
		case model.StatusPlanned:
			byStatus["planned"]++
		case model.StatusInProgress:
			byStatus["in_progress"]++
		case model.StatusCompleted:
			byStatus["completed"]++
		}
		taskList = append(taskList, gin.H{
			"task_id":     t.ID,
			"solution_id": t.SolutionID,
			"title":       t.Title,
			"kind":        t.Kind,
			"status":      t.Status,
			"start_date":  t.StartDate,
			"end_date":    t.EndDate,
		})
	}

	Success(c, gin.H{
		"tasks":     taskList,
		"by_status": byStatus,
	})
}
