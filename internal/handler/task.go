package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/IGORMASL/ReverseGanttDiagram-sub000/internal/middleware"
	"github.com/IGORMASL/ReverseGanttDiagram-sub000/internal/model"
	"github.com/IGORMASL/ReverseGanttDiagram-sub000/internal/service"
	"github.com/IGORMASL/ReverseGanttDiagram-sub000/internal/sse"
)

type TaskHandler struct {
	taskService    *service.TaskService
	settingService *service.SettingService
	hub            *sse.Hub
	defaultPadDays int
}

func NewTaskHandler(taskService *service.TaskService, settingService *service.SettingService, hub *sse.Hub, defaultPadDays int) *TaskHandler {
	return &TaskHandler{
		taskService:    taskService,
		settingService: settingService,
		hub:            hub,
		defaultPadDays: defaultPadDays,
	}
}

type taskRequest struct {
	Title         string         `json:"title" binding:"required,max=256"`
	Description   string         `json:"description" binding:"max=5000"`
	Kind          model.TaskKind `json:"kind"`
	Status        model.Status   `json:"status"`
	StartDate     model.Date     `json:"start_date" binding:"required"`
	EndDate       model.Date     `json:"end_date" binding:"required"`
	ParentTaskID  *uint          `json:"parent_task_id"`
	SolutionID    uint           `json:"solution_id"`
	Dependencies  []uint         `json:"dependencies"`
	AssignedUsers []uint         `json:"assigned_users"`
}

func (r *taskRequest) toInput() service.TaskInput {
	return service.TaskInput{
		Title:         r.Title,
		Description:   r.Description,
		Kind:          r.Kind,
		Status:        r.Status,
		StartDate:     r.StartDate,
		EndDate:       r.EndDate,
		ParentTaskID:  r.ParentTaskID,
		SolutionID:    r.SolutionID,
		Dependencies:  r.Dependencies,
		AssignedUsers: r.AssignedUsers,
	}
}

// POST /tasks
func (h *TaskHandler) Create(c *gin.Context) {
	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, 40001, "invalid request: "+err.Error())
		return
	}
	if req.SolutionID == 0 {
		BadRequest(c, 40001, "solution_id is required")
		return
	}
	if !req.Kind.Valid() || !req.Status.Valid() {
		BadRequest(c, 40001, "unknown kind or status")
		return
	}

	task, err := h.taskService.Create(middleware.GetCurrentActor(c), req.toInput())
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, task)
}

// GET /tasks/:id
func (h *TaskHandler) GetDetail(c *gin.Context) {
	task, err := h.taskService.GetByID(middleware.GetCurrentActor(c), parseID(c.Param("id")))
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, task)
}

// PUT /tasks/:id
func (h *TaskHandler) Update(c *gin.Context) {
	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, 40001, "invalid request: "+err.Error())
		return
	}
	if !req.Kind.Valid() || !req.Status.Valid() {
		BadRequest(c, 40001, "unknown kind or status")
		return
	}

	task, err := h.taskService.Update(middleware.GetCurrentActor(c), parseID(c.Param("id")), req.toInput())
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, task)
}

// DELETE /tasks/:id
func (h *TaskHandler) Delete(c *gin.Context) {
	id := parseID(c.Param("id"))
	if err := h.taskService.Delete(middleware.GetCurrentActor(c), id); err != nil {
		Fail(c, err)
		return
	}
	Success(c, gin.H{"id": id})
}

// GET /teams/:id/tasks
func (h *TaskHandler) TeamTree(c *gin.Context) {
	forest, _, err := h.taskService.TeamTree(middleware.GetCurrentActor(c), parseID(c.Param("id")))
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, forest)
}

// GET /teams/:id/timeline
func (h *TaskHandler) Timeline(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	setting, err := h.settingService.GetTimeline(userID)
	if err != nil {
		InternalError(c, err.Error())
		return
	}

	view := service.TimelineView{
		FitTasks:  c.Query("fit") == "tasks",
		Collapsed: make(map[uint]bool),
		Today:     model.DateOf(time.Now()),
		PadDays:   h.defaultPadDays,
	}
	if setting.WindowPadDays > 0 {
		view.PadDays = setting.WindowPadDays
	}
	for _, id := range setting.CollapsedTasks {
		view.Collapsed[id] = true
	}
	// Explicit query state overrides stored preferences.
	if s := c.Query("collapsed"); s != "" {
		view.Collapsed = make(map[uint]bool)
		for _, part := range strings.Split(s, ",") {
			if id := parseID(part); id != 0 {
				view.Collapsed[id] = true
			}
		}
	}
	if s := c.Query("window_start"); s != "" {
		d, err := model.ParseDate(s)
		if err != nil {
			BadRequest(c, 40001, "invalid window_start")
			return
		}
		view.WindowStart = d
	}
	if s := c.Query("window_end"); s != "" {
		d, err := model.ParseDate(s)
		if err != nil {
			BadRequest(c, 40001, "invalid window_end")
			return
		}
		view.WindowEnd = d
	}
	if s := c.Query("today"); s != "" {
		d, err := model.ParseDate(s)
		if err != nil {
			BadRequest(c, 40001, "invalid today")
			return
		}
		view.Today = d
	}

	layout, err := h.taskService.Timeline(middleware.GetCurrentActor(c), parseID(c.Param("id")), view)
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, layout)
}

// GET /solutions/:id/events
func (h *TaskHandler) Events(c *gin.Context) {
	solutionID := parseID(c.Param("id"))

	if err := h.taskService.CheckSolutionRead(middleware.GetCurrentActor(c), solutionID); err != nil {
		Fail(c, err)
		return
	}

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("X-Accel-Buffering", "no")
	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		InternalError(c, "streaming not supported")
		return
	}

	lastEventID := sse.ParseLastEventID(c.GetHeader("Last-Event-ID"))

	// Replay history
	history, _ := h.hub.ReplayFrom(solutionID, lastEventID)
	eventID := lastEventID
	for _, ev := range history {
		data, _ := json.Marshal(ev.Data)
		fmt.Fprintf(c.Writer, "id: %d\nevent: %s\ndata: %s\n\n", eventID, ev.Type, string(data))
		eventID++
		flusher.Flush()
	}

	// Subscribe for live events
	ch, unsub := h.hub.Subscribe(solutionID)
	defer unsub()

	ctx := c.Request.Context()
	heartbeat := time.NewTicker(30 * time.Second)
	defer heartbeat.Stop()

	for {
		select {
		case ev, open := <-ch:
			if !open {
				return
			}
			data, _ := json.Marshal(ev.Data)
			fmt.Fprintf(c.Writer, "id: %d\nevent: %s\ndata: %s\n\n", eventID, ev.Type, string(data))
			eventID++
			flusher.Flush()
		case <-heartbeat.C:
			fmt.Fprintf(c.Writer, ": heartbeat\n\n")
			flusher.Flush()
		case <-ctx.Done():
			return
		}
	}
}
