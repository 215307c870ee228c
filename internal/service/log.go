package service

import (
	"time"

	"gorm.io/gorm"

	"github.com/IGORMASL/ReverseGanttDiagram-sub000/internal/model"
)

// logOp records a mutation inside the caller's transaction. Log rows
// ride along with the writes they describe.
func logOp(tx *gorm.DB, userID uint, action, resourceType string, resourceID uint, detail model.JSONMap) {
	tx.Create(&model.OperationLog{
		UserID:       userID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Detail:       detail,
	})
}

type LogService struct {
	db *gorm.DB
}

func NewLogService(db *gorm.DB) *LogService {
	return &LogService{db: db}
}

func (s *LogService) List(userID *uint, action, resourceType string, startTime, endTime *time.Time, page, pageSize int) ([]model.OperationLog, int64, error) {
	query := s.db.Model(&model.OperationLog{}).Preload("User")
	if userID != nil {
		query = query.Where("user_id = ?", *userID)
	}
	if action != "" {
		query = query.Where("action = ?", action)
	}
	if resourceType != "" {
		query = query.Where("resource_type = ?", resourceType)
	}
	if startTime != nil {
		query = query.Where("created_at >= ?", startTime)
	}
	if endTime != nil {
		query = query.Where("created_at <= ?", endTime)
	}

	var total int64
	query.Count(&total)

	var logs []model.OperationLog
	if err := query.Order("created_at desc").Offset((page - 1) * pageSize).Limit(pageSize).Find(&logs).Error; err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}
