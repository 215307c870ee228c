package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/IGORMASL/ReverseGanttDiagram-sub000/internal/service"
)

type LogHandler struct {
	logService *service.LogService
}

func NewLogHandler(logService *service.LogService) *LogHandler {
	return &LogHandler{logService: logService}
}

// GET /admin/operation-logs
func (h *LogHandler) List(c *gin.Context) {
	page, pageSize := parsePage(c)

	var userID *uint
	if s := c.Query("user_id"); s != "" {
		id := parseID(s)
		userID = &id
	}

	var startTime, endTime *time.Time
	if s := c.Query("start_time"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			BadRequest(c, 40001, "invalid start_time")
			return
		}
		startTime = &t
	}
	if s := c.Query("end_time"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			BadRequest(c, 40001, "invalid end_time")
			return
		}
		endTime = &t
	}

	logs, total, err := h.logService.List(userID, c.Query("action"), c.Query("resource_type"), startTime, endTime, page, pageSize)
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	SuccessPaged(c, logs, total, page, pageSize)
}
