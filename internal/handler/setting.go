package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/IGORMASL/ReverseGanttDiagram-sub000/internal/middleware"
	"github.com/IGORMASL/ReverseGanttDiagram-sub000/internal/model"
	"github.com/IGORMASL/ReverseGanttDiagram-sub000/internal/service"
)

type SettingHandler struct {
	settingService *service.SettingService
}

func NewSettingHandler(settingService *service.SettingService) *SettingHandler {
	return &SettingHandler{settingService: settingService}
}

// GET /settings/timeline
func (h *SettingHandler) GetTimeline(c *gin.Context) {
	setting, err := h.settingService.GetTimeline(middleware.GetCurrentUserID(c))
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, setting)
}

// PUT /settings/timeline
func (h *SettingHandler) UpdateTimeline(c *gin.Context) {
	var req struct {
		CollapsedTasks model.UintList `json:"collapsed_tasks"`
		WindowPadDays  int            `json:"window_pad_days" binding:"min=0,max=90"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, 40001, "invalid request: "+err.Error())
		return
	}

	setting, err := h.settingService.UpdateTimeline(middleware.GetCurrentUserID(c), req.CollapsedTasks, req.WindowPadDays)
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, setting)
}
