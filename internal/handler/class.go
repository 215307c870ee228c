package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/IGORMASL/ReverseGanttDiagram-sub000/internal/middleware"
	"github.com/IGORMASL/ReverseGanttDiagram-sub000/internal/model"
	"github.com/IGORMASL/ReverseGanttDiagram-sub000/internal/service"
)

type ClassHandler struct {
	classService *service.ClassService
}

func NewClassHandler(classService *service.ClassService) *ClassHandler {
	return &ClassHandler{classService: classService}
}

// canManageClass: admin or teacher of the class.
func (h *ClassHandler) canManageClass(c *gin.Context, classID uint) bool {
	if middleware.GetCurrentUserIsAdmin(c) {
		return true
	}
	role, ok, err := h.classService.GetRole(classID, middleware.GetCurrentUserID(c))
	return err == nil && ok && role == model.RoleTeacher
}

func (h *ClassHandler) canReadClass(c *gin.Context, classID uint) bool {
	if middleware.GetCurrentUserIsAdmin(c) {
		return true
	}
	_, ok, err := h.classService.GetRole(classID, middleware.GetCurrentUserID(c))
	return err == nil && ok
}

// POST /classes
func (h *ClassHandler) Create(c *gin.Context) {
	var req struct {
		Title       string `json:"title" binding:"required,max=128"`
		Description string `json:"description" binding:"max=5000"`
		Color       string `json:"color" binding:"max=16"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, 40001, "invalid request: "+err.Error())
		return
	}

	class, err := h.classService.Create(req.Title, req.Description, req.Color,
		middleware.GetCurrentUserID(c), middleware.GetCurrentUserIsAdmin(c))
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, class)
}

// GET /classes
func (h *ClassHandler) List(c *gin.Context) {
	page, pageSize := parsePage(c)

	classes, total, err := h.classService.ListForUser(
		middleware.GetCurrentUserID(c), middleware.GetCurrentUserIsAdmin(c),
		c.Query("keyword"), page, pageSize)
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	SuccessPaged(c, classes, total, page, pageSize)
}

// GET /classes/:id
func (h *ClassHandler) GetDetail(c *gin.Context) {
	id := parseID(c.Param("id"))

	if !h.canReadClass(c, id) {
		Forbidden(c, 40302, "no relation to this class")
		return
	}

	class, err := h.classService.GetByID(id)
	if err != nil {
		NotFound(c, 40402, "class not found")
		return
	}

	roles := make([]gin.H, 0, len(class.Roles))
	for _, r := range class.Roles {
		item := gin.H{"user_id": r.UserID, "role": r.Role}
		if r.User != nil {
			item["name"] = r.User.Name
			item["email"] = r.User.Email
		}
		roles = append(roles, item)
	}

	Success(c, gin.H{
		"id":          class.ID,
		"title":       class.Title,
		"description": class.Description,
		"color":       class.Color,
		"roles":       roles,
		"created_at":  class.CreatedAt,
		"updated_at":  class.UpdatedAt,
	})
}

// PUT /classes/:id
func (h *ClassHandler) Update(c *gin.Context) {
	id := parseID(c.Param("id"))

	if !h.canManageClass(c, id) {
		Forbidden(c, 40303, "not a teacher of this class")
		return
	}

	var req struct {
		Title       *string `json:"title" binding:"omitempty,max=128"`
		Description *string `json:"description"`
		Color       *string `json:"color" binding:"omitempty,max=16"`
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
	if req.Color != nil {
		updates["color"] = *req.Color
	}

	class, err := h.classService.Update(id, updates)
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, class)
}

// DELETE /classes/:id
func (h *ClassHandler) Delete(c *gin.Context) {
	id := parseID(c.Param("id"))

	if !h.canManageClass(c, id) {
		Forbidden(c, 40303, "not a teacher of this class")
		return
	}

	if err := h.classService.Delete(id); err != nil {
		Fail(c, err)
		return
	}
	Success(c, gin.H{"id": id})
}

// POST /classes/:id/roles
func (h *ClassHandler) AssignRole(c *gin.Context) {
	id := parseID(c.Param("id"))

	if !h.canManageClass(c, id) {
		Forbidden(c, 40303, "not a teacher of this class")
		return
	}

	var req struct {
		UserID uint           `json:"user_id" binding:"required"`
		Role   model.RoleKind `json:"role" binding:"required,oneof=student teacher"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, 40001, "invalid request: "+err.Error())
		return
	}

	record, err := h.classService.AssignRole(id, req.UserID, req.Role)
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, record)
}

// DELETE /classes/:id/roles/:user_id
func (h *ClassHandler) RemoveRole(c *gin.Context) {
	id := parseID(c.Param("id"))

	if !h.canManageClass(c, id) {
		Forbidden(c, 40303, "not a teacher of this class")
		return
	}

	if err := h.classService.RemoveRole(id, parseID(c.Param("user_id"))); err != nil {
		Fail(c, err)
		return
	}
	Success(c, gin.H{"message": "role removed"})
}
