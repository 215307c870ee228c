package service

import (
	"errors"

	"gorm.io/gorm"

	"github.com/IGORMASL/ReverseGanttDiagram-sub000/internal/access"
	"github.com/IGORMASL/ReverseGanttDiagram-sub000/internal/model"
)

// chainStore implements access.Store over the entity store. The
// resolver only ever asks for the two relations, never full objects.
type chainStore struct {
	db *gorm.DB
}

func (s chainStore) ClassRole(userID, classID uint) (model.RoleKind, bool, error) {
	var record model.ClassRole
	err := s.db.Where("class_id = ? AND user_id = ?", classID, userID).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return record.Role, true, nil
}

func (s chainStore) IsTeamMember(teamID, userID uint) (bool, error) {
	var count int64
	err := s.db.Model(&model.TeamMember{}).Where("team_id = ? AND user_id = ?", teamID, userID).Count(&count).Error
	return count > 0, err
}

var _ access.Store = chainStore{}
