package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/IGORMASL/ReverseGanttDiagram-sub000/internal/middleware"
	"github.com/IGORMASL/ReverseGanttDiagram-sub000/internal/model"
	"github.com/IGORMASL/ReverseGanttDiagram-sub000/internal/service"
)

type TeamHandler struct {
	teamService    *service.TeamService
	projectService *service.ProjectService
	classHandler   *ClassHandler
}

func NewTeamHandler(teamService *service.TeamService, projectService *service.ProjectService, classHandler *ClassHandler) *TeamHandler {
	return &TeamHandler{teamService: teamService, projectService: projectService, classHandler: classHandler}
}

func (h *TeamHandler) canReadTeam(c *gin.Context, team *model.Team) bool {
	if h.classHandler.canReadClass(c, classIDOfTeam(h, team)) {
		return true
	}
	isMember, err := h.teamService.IsMember(team.ID, middleware.GetCurrentUserID(c))
	return err == nil && isMember
}

func classIDOfTeam(h *TeamHandler, team *model.Team) uint {
	if team.Project != nil {
		return team.Project.ClassID
	}
	project, err := h.projectService.GetByID(team.ProjectID)
	if err != nil {
		return 0
	}
	return project.ClassID
}

// POST /projects/:id/teams
func (h *TeamHandler) Create(c *gin.Context) {
	projectID := parseID(c.Param("id"))

	project, err := h.projectService.GetByID(projectID)
	if err != nil {
		NotFound(c, 40402, "project not found")
		return
	}
	if !h.classHandler.canManageClass(c, project.ClassID) {
		Forbidden(c, 40303, "not a teacher of this class")
		return
	}

	var req struct {
		Name      string `json:"name" binding:"required,max=128"`
		MemberIDs []uint `json:"member_ids"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, 40001, "invalid request: "+err.Error())
		return
	}

	team, err := h.teamService.Create(projectID, req.Name, req.MemberIDs)
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, teamDetail(team))
}

// GET /projects/:id/teams
func (h *TeamHandler) List(c *gin.Context) {
	projectID := parseID(c.Param("id"))

	project, err := h.projectService.GetByID(projectID)
	if err != nil {
		NotFound(c, 40402, "project not found")
		return
	}
	if !h.classHandler.canReadClass(c, project.ClassID) {
		Forbidden(c, 40302, "no relation to this class")
		return
	}

	page, pageSize := parsePage(c)
	teams, total, err := h.teamService.ListByProject(projectID, page, pageSize)
	if err != nil {
		InternalError(c, err.Error())
		return
	}

	list := make([]gin.H, 0, len(teams))
	for i := range teams {
		list = append(list, teamDetail(&teams[i]))
	}
	SuccessPaged(c, list, total, page, pageSize)
}

// GET /teams/:id
func (h *TeamHandler) GetDetail(c *gin.Context) {
	team, err := h.teamService.GetByID(parseID(c.Param("id")))
	if err != nil {
		NotFound(c, 40402, "team not found")
		return
	}
	if !h.canReadTeam(c, team) {
		Forbidden(c, 40302, "not a member of this team")
		return
	}
	Success(c, teamDetail(team))
}

// POST /teams/:id/members
func (h *TeamHandler) AddMembers(c *gin.Context) {
	team, err := h.teamService.GetByID(parseID(c.Param("id")))
	if err != nil {
		NotFound(c, 40402, "team not found")
		return
	}
	if !h.classHandler.canManageClass(c, classIDOfTeam(h, team)) {
		Forbidden(c, 40303, "not a teacher of this class")
		return
	}

	var req struct {
		UserIDs []uint `json:"user_ids" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, 40001, "invalid request: "+err.Error())
		return
	}

	added, skipped, err := h.teamService.AddMembers(team.ID, req.UserIDs)
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, gin.H{"added": added, "skipped": skipped})
}

// DELETE /teams/:id/members/:user_id
func (h *TeamHandler) RemoveMember(c *gin.Context) {
	team, err := h.teamService.GetByID(parseID(c.Param("id")))
	if err != nil {
		NotFound(c, 40402, "team not found")
		return
	}
	if !h.classHandler.canManageClass(c, classIDOfTeam(h, team)) {
		Forbidden(c, 40303, "not a teacher of this class")
		return
	}

	if err := h.teamService.RemoveMember(team.ID, parseID(c.Param("user_id"))); err != nil {
		Fail(c, err)
		return
	}
	Success(c, gin.H{"message": "member removed"})
}

// DELETE /teams/:id
func (h *TeamHandler) Delete(c *gin.Context) {
	team, err := h.teamService.GetByID(parseID(c.Param("id")))
	if err != nil {
		NotFound(c, 40402, "team not found")
		return
	}
	if !h.classHandler.canManageClass(c, classIDOfTeam(h, team)) {
		Forbidden(c, 40303, "not a teacher of this class")
		return
	}

	if err := h.teamService.Delete(team.ID); err != nil {
		Fail(c, err)
		return
	}
	Success(c, gin.H{"id": team.ID})
}

func teamDetail(team *model.Team) gin.H {
	members := make([]gin.H, 0, len(team.Members))
	for _, m := range team.Members {
		item := gin.H{"user_id": m.UserID, "joined_at": m.JoinedAt}
		if m.User != nil {
			item["name"] = m.User.Name
			item["email"] = m.User.Email
		}
		members = append(members, item)
	}

	data := gin.H{
		"id":         team.ID,
		"project_id": team.ProjectID,
		"name":       team.Name,
		"members":    members,
		"created_at": team.CreatedAt,
	}
	if team.Solution != nil {
		data["solution"] = gin.H{
			"id":         team.Solution.ID,
			"status":     team.Solution.Status,
			"start_date": team.Solution.StartDate,
			"end_date":   team.Solution.EndDate,
		}
	}
	return data
}
