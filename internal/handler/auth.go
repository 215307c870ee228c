package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/IGORMASL/ReverseGanttDiagram-sub000/internal/middleware"
	"github.com/IGORMASL/ReverseGanttDiagram-sub000/internal/service"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Name     string `json:"name" binding:"required,max=64"`
		Email    string `json:"email" binding:"required,email,max=128"`
		Password string `json:"password" binding:"required,min=8,max=72"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, 40001, "invalid request: "+err.Error())
		return
	}

	user, token, expireAt, err := h.authService.Register(req.Name, req.Email, req.Password)
	if err != nil {
		Fail(c, err)
		return
	}

	Success(c, gin.H{
		"user":       user.Brief(),
		"token":      token,
		"expires_at": expireAt,
	})
}

// POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, 40001, "invalid request: "+err.Error())
		return
	}

	user, token, expireAt, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		code, msg := parseErrorCode(err)
		if code == 40103 {
			Error(c, http.StatusUnauthorized, code, msg)
			return
		}
		Fail(c, err)
		return
	}

	Success(c, gin.H{
		"user":       user.Brief(),
		"token":      token,
		"expires_at": expireAt,
	})
}

// GET /auth/me
func (h *AuthHandler) GetMe(c *gin.Context) {
	user := middleware.GetCurrentUser(c)
	Success(c, user.Brief())
}

// PUT /auth/me
func (h *AuthHandler) UpdateMe(c *gin.Context) {
	var req struct {
		Name     *string `json:"name" binding:"omitempty,max=64"`
		Password *string `json:"password" binding:"omitempty,min=8,max=72"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, 40001, "invalid request: "+err.Error())
		return
	}

	user, err := h.authService.UpdateProfile(middleware.GetCurrentUserID(c), req.Name, req.Password)
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, user.Brief())
}

// POST /auth/refresh
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	token, expireAt, err := h.authService.RefreshToken(middleware.GetCurrentUserID(c))
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, gin.H{"token": token, "expires_at": expireAt})
}

// GET /users/search
func (h *AuthHandler) SearchUsers(c *gin.Context) {
	keyword := c.Query("keyword")

	var excludeTeamID *uint
	if s := c.Query("exclude_team_id"); s != "" {
		v := parseID(s)
		excludeTeamID = &v
	}

	users, err := h.authService.SearchUsers(keyword, excludeTeamID, 20)
	if err != nil {
		InternalError(c, err.Error())
		return
	}

	list := make([]gin.H, 0, len(users))
	for _, u := range users {
		list = append(list, gin.H{"id": u.ID, "name": u.Name, "email": u.Email})
	}
	Success(c, list)
}

// GET /admin/users
func (h *AuthHandler) ListUsers(c *gin.Context) {
	page, pageSize := parsePage(c)
	keyword := c.Query("keyword")

	var isAdmin *bool
	if s := c.Query("is_admin"); s != "" {
		v := s == "true"
		isAdmin = &v
	}

	users, total, err := h.authService.ListUsers(keyword, isAdmin, page, pageSize)
	if err != nil {
		InternalError(c, err.Error())
		return
	}

	list := make([]gin.H, 0, len(users))
	for _, u := range users {
		list = append(list, gin.H{
			"id":            u.ID,
			"name":          u.Name,
			"email":         u.Email,
			"is_admin":      u.IsAdmin,
			"last_login_at": u.LastLoginAt,
			"created_at":    u.CreatedAt,
		})
	}
	SuccessPaged(c, list, total, page, pageSize)
}

// PUT /admin/users/:id/admin
func (h *AuthHandler) SetUserAdmin(c *gin.Context) {
	var req struct {
		IsAdmin bool `json:"is_admin"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, 40001, "invalid request: "+err.Error())
		return
	}

	user, err := h.authService.SetAdmin(parseID(c.Param("id")), req.IsAdmin)
	if err != nil {
		NotFound(c, 40401, "user not found")
		return
	}
	Success(c, user.Brief())
}
