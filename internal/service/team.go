package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/IGORMASL/ReverseGanttDiagram-sub000/internal/model"
)

type TeamService struct {
	db *gorm.DB
}

func NewTeamService(db *gorm.DB) *TeamService {
	return &TeamService{db: db}
}

// Create makes the team and its solution in one transaction. The
// solution is the team's working copy of the project and starts out
// with the project's current dates and status.
func (s *TeamService) Create(projectID uint, name string, memberIDs []uint) (*model.Team, error) {
	var project model.Project
	if err := s.db.First(&project, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("40402:project not found")
		}
		return nil, err
	}

	team := &model.Team{ProjectID: projectID, Name: name}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(team).Error; err != nil {
			return err
		}

		solution := &model.Solution{
			TeamID:    team.ID,
			ProjectID: projectID,
			Status:    project.Status,
			StartDate: project.StartDate,
			EndDate:   project.EndDate,
		}
		if err := tx.Create(solution).Error; err != nil {
			return err
		}

		seen := make(map[uint]bool, len(memberIDs))
		for _, uid := range memberIDs {
			if seen[uid] {
				continue
			}
			seen[uid] = true

			var user model.User
			if err := tx.First(&user, uid).Error; err != nil {
				return fmt.Errorf("40401:user not found: id=%d", uid)
			}
			member := &model.TeamMember{TeamID: team.ID, UserID: uid}
			if err := tx.Create(member).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetByID(team.ID)
}

func (s *TeamService) GetByID(id uint) (*model.Team, error) {
	var team model.Team
	if err := s.db.Preload("Members.User").Preload("Solution").Preload("Project").First(&team, id).Error; err != nil {
		return nil, err
	}
	return &team, nil
}

func (s *TeamService) ListByProject(projectID uint, page, pageSize int) ([]model.Team, int64, error) {
	query := s.db.Model(&model.Team{}).Where("project_id = ?", projectID)

	var total int64
	query.Count(&total)

	var teams []model.Team
	if err := query.Preload("Members.User").Preload("Solution").
		Order("created_at asc").Offset((page - 1) * pageSize).Limit(pageSize).Find(&teams).Error; err != nil {
		return nil, 0, err
	}
	return teams, total, nil
}

func (s *TeamService) AddMembers(teamID uint, userIDs []uint) ([]model.UserBrief, []uint, error) {
	var added []model.UserBrief
	var skipped []uint

	for _, uid := range userIDs {
		var user model.User
		if err := s.db.First(&user, uid).Error; err != nil {
			return nil, nil, fmt.Errorf("40401:user not found: id=%d", uid)
		}

		var count int64
		s.db.Model(&model.TeamMember{}).Where("team_id = ? AND user_id = ?", teamID, uid).Count(&count)
		if count > 0 {
			skipped = append(skipped, uid)
			continue
		}

		member := &model.TeamMember{TeamID: teamID, UserID: uid}
		if err := s.db.Create(member).Error; err != nil {
			return nil, nil, err
		}
		added = append(added, user.Brief())
	}
	return added, skipped, nil
}

// RemoveMember drops the membership and unassigns the user from every
// task in the team's solution, keeping invariant 4 intact.
func (s *TeamService) RemoveMember(teamID, userID uint) error {
	team, err := s.GetByID(teamID)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("team_id = ? AND user_id = ?", teamID, userID).Delete(&model.TeamMember{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("40401:user is not a member of this team")
		}
		if team.Solution != nil {
			return tx.Where("user_id = ? AND task_id IN (SELECT id FROM tasks WHERE solution_id = ?)",
				userID, team.Solution.ID).Delete(&model.TaskAssignee{}).Error
		}
		return nil
	})
}

// Delete removes the team with its solution, tasks, edges and
// memberships in one transaction.
func (s *TeamService) Delete(id uint) error {
	team, err := s.GetByID(id)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if team.Solution != nil {
			sid := team.Solution.ID
			if err := tx.Where("task_id IN (SELECT id FROM tasks WHERE solution_id = ?)", sid).
				Delete(&model.TaskDependency{}).Error; err != nil {
				return err
			}
			if err := tx.Where("task_id IN (SELECT id FROM tasks WHERE solution_id = ?)", sid).
				Delete(&model.TaskAssignee{}).Error; err != nil {
				return err
			}
			if err := tx.Where("solution_id = ?", sid).Delete(&model.Task{}).Error; err != nil {
				return err
			}
			if err := tx.Delete(&model.Solution{}, sid).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("team_id = ?", id).Delete(&model.TeamMember{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Team{}, id).Error
	})
}

func (s *TeamService) IsMember(teamID, userID uint) (bool, error) {
	var count int64
	err := s.db.Model(&model.TeamMember{}).Where("team_id = ? AND user_id = ?", teamID, userID).Count(&count).Error
	return count > 0, err
}

func (s *TeamService) MemberIDs(teamID uint) (map[uint]bool, error) {
	var members []model.TeamMember
	if err := s.db.Where("team_id = ?", teamID).Find(&members).Error; err != nil {
		return nil, err
	}
	ids := make(map[uint]bool, len(members))
	for _, m := range members {
		ids[m.UserID] = true
	}
	return ids, nil
}
