package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/IGORMASL/ReverseGanttDiagram-sub000/internal/model"
	"github.com/IGORMASL/ReverseGanttDiagram-sub000/internal/service"
)

type ProjectHandler struct {
	projectService *service.ProjectService
	classHandler   *ClassHandler
}

func NewProjectHandler(projectService *service.ProjectService, classHandler *ClassHandler) *ProjectHandler {
	return &ProjectHandler{projectService: projectService, classHandler: classHandler}
}

// POST /classes/:id/projects
func (h *ProjectHandler) Create(c *gin.Context) {
	classID := parseID(c.Param("id"))

	if !h.classHandler.canManageClass(c, classID) {
		Forbidden(c, 40303, "not a teacher of this class")
		return
	}

	var req struct {
		Title       string       `json:"title" binding:"required,max=128"`
		Description string       `json:"description" binding:"max=5000"`
		Status      model.Status `json:"status"`
		StartDate   model.Date   `json:"start_date" binding:"required"`
		EndDate     model.Date   `json:"end_date" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, 40001, "invalid request: "+err.Error())
		return
	}

	project, err := h.projectService.Create(classID, req.Title, req.Description, req.Status, req.StartDate, req.EndDate)
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, project)
}

// GET /classes/:id/projects
func (h *ProjectHandler) List(c *gin.Context) {
	classID := parseID(c.Param("id"))

	if !h.classHandler.canReadClass(c, classID) {
		Forbidden(c, 40302, "no relation to this class")
		return
	}

	page, pageSize := parsePage(c)

	var status *model.Status
	if s := c.Query("status"); s != "" {
		v := model.Status(parseID(s))
		status = &v
	}

	projects, total, err := h.projectService.ListByClass(classID, status, page, pageSize)
	if err != nil {
		InternalError(c, err.Error())
		return
	}

	list := make([]gin.H, 0, len(projects))
	for _, p := range projects {
		list = append(list, gin.H{
			"id":          p.ID,
			"class_id":    p.ClassID,
			"title":       p.Title,
			"description": p.Description,
			"status":      p.Status,
			"start_date":  p.StartDate,
			"end_date":    p.EndDate,
			"team_count":  h.projectService.TeamCount(p.ID),
		})
	}
	SuccessPaged(c, list, total, page, pageSize)
}

// GET /projects/:id
func (h *ProjectHandler) GetDetail(c *gin.Context) {
	project, err := h.projectService.GetByID(parseID(c.Param("id")))
	if err != nil {
		NotFound(c, 40402, "project not found")
		return
	}

	if !h.classHandler.canReadClass(c, project.ClassID) {
		Forbidden(c, 40302, "no relation to this class")
		return
	}
	Success(c, project)
}

// PUT /projects/:id
func (h *ProjectHandler) Update(c *gin.Context) {
	id := parseID(c.Param("id"))

	project, err := h.projectService.GetByID(id)
	if err != nil {
		NotFound(c, 40402, "project not found")
		return
	}
	if !h.classHandler.canManageClass(c, project.ClassID) {
		Forbidden(c, 40303, "not a teacher of this class")
		return
	}

	var req struct {
		Title       *string       `json:"title" binding:"omitempty,max=128"`
		Description *string       `json:"description"`
		Status      *model.Status `json:"status"`
		StartDate   *model.Date   `json:"start_date"`
		EndDate     *model.Date   `json:"end_date"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, 40001, "invalid request: "+err.Error())
		return
	}

	updates := make(map[string]interface{})
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if req.StartDate != nil {
		updates["start_date"] = *req.StartDate
	}
	if req.EndDate != nil {
		updates["end_date"] = *req.EndDate
	}

	updated, err := h.projectService.Update(id, updates)
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, updated)
}

// DELETE /projects/:id
func (h *ProjectHandler) Delete(c *gin.Context) {
	id := parseID(c.Param("id"))

	project, err := h.projectService.GetByID(id)
	if err != nil {
		NotFound(c, 40402, "project not found")
		return
	}
	if !h.classHandler.canManageClass(c, project.ClassID) {
		Forbidden(c, 40303, "not a teacher of this class")
		return
	}

	if err := h.projectService.Delete(id); err != nil {
		Fail(c, err)
		return
	}
	Success(c, gin.H{"id": id})
}
