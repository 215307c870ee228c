package service

import (
	"errors"

	"gorm.io/gorm"

	"github.com/IGORMASL/ReverseGanttDiagram-sub000/internal/model"
)

type SettingService struct {
	db *gorm.DB
}

func NewSettingService(db *gorm.DB) *SettingService {
	return &SettingService{db: db}
}

// GetTimeline returns the user's stored view preferences, zero values
// when nothing was saved yet.
func (s *SettingService) GetTimeline(userID uint) (*model.UserSetting, error) {
	var setting model.UserSetting
	err := s.db.Where("user_id = ?", userID).First(&setting).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &model.UserSetting{UserID: userID, CollapsedTasks: model.UintList{}}, nil
		}
		return nil, err
	}
	return &setting, nil
}

func (s *SettingService) UpdateTimeline(userID uint, collapsed model.UintList, padDays int) (*model.UserSetting, error) {
	var setting model.UserSetting
	err := s.db.Where("user_id = ?", userID).First(&setting).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		setting = model.UserSetting{UserID: userID}
	}

	setting.CollapsedTasks = collapsed
	setting.WindowPadDays = padDays
	if err := s.db.Save(&setting).Error; err != nil {
		return nil, err
	}
	return &setting, nil
}
