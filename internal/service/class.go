package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/IGORMASL/ReverseGanttDiagram-sub000/internal/model"
)

type ClassService struct {
	db *gorm.DB
}

func NewClassService(db *gorm.DB) *ClassService {
	return &ClassService{db: db}
}

// Create makes the class and gives the creator the teacher role in the
// same transaction, unless the creator is an admin acting without a
// relation.
func (s *ClassService) Create(title, description, color string, creatorID uint, creatorIsAdmin bool) (*model.Class, error) {
	class := &model.Class{Title: title, Description: description, Color: color}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(class).Error; err != nil {
			return err
		}
		if creatorIsAdmin {
			return nil
		}
		role := &model.ClassRole{ClassID: class.ID, UserID: creatorID, Role: model.RoleTeacher}
		return tx.Create(role).Error
	})
	if err != nil {
		return nil, err
	}
	return class, nil
}

func (s *ClassService) GetByID(id uint) (*model.Class, error) {
	var class model.Class
	if err := s.db.Preload("Roles.User").First(&class, id).Error; err != nil {
		return nil, err
	}
	return &class, nil
}

// ListForUser returns classes where the user holds a role; admins see
// everything.
func (s *ClassService) ListForUser(userID uint, isAdmin bool, keyword string, page, pageSize int) ([]model.Class, int64, error) {
	query := s.db.Model(&model.Class{})
	if !isAdmin {
		query = query.Where("id IN (SELECT class_id FROM class_roles WHERE user_id = ?)", userID)
	}
	if keyword != "" {
		query = query.Where("title LIKE ?", "%"+keyword+"%")
	}

	var total int64
	query.Count(&total)

	var classes []model.Class
	if err := query.Order("updated_at desc").Offset((page - 1) * pageSize).Limit(pageSize).Find(&classes).Error; err != nil {
		return nil, 0, err
	}
	return classes, total, nil
}

func (s *ClassService) Update(id uint, updates map[string]interface{}) (*model.Class, error) {
	if err := s.db.Model(&model.Class{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.GetByID(id)
}

func (s *ClassService) Delete(id uint) error {
	return s.db.Delete(&model.Class{}, id).Error
}

// AssignRole binds a user to the class with exactly one role variant.
// A second role for the same (user, class) pair is a conflict.
func (s *ClassService) AssignRole(classID, userID uint, role model.RoleKind) (*model.ClassRole, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("40001:unknown role %q", role)
	}

	var user model.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("40401:user not found: id=%d", userID)
		}
		return nil, err
	}

	var count int64
	s.db.Model(&model.ClassRole{}).Where("class_id = ? AND user_id = ?", classID, userID).Count(&count)
	if count > 0 {
		return nil, fmt.Errorf("40902:user already holds a role in this class")
	}

	record := &model.ClassRole{ClassID: classID, UserID: userID, Role: role}
	if err := s.db.Create(record).Error; err != nil {
		return nil, err
	}
	record.User = &user
	return record, nil
}

func (s *ClassService) RemoveRole(classID, userID uint) error {
	result := s.db.Where("class_id = ? AND user_id = ?", classID, userID).Delete(&model.ClassRole{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("40401:user has no role in this class")
	}
	return nil
}

func (s *ClassService) GetRole(classID, userID uint) (model.RoleKind, bool, error) {
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
