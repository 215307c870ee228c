package service

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/IGORMASL/ReverseGanttDiagram-sub000/internal/model"
)

type ProjectService struct {
	db *gorm.DB
}

func NewProjectService(db *gorm.DB) *ProjectService {
	return &ProjectService{db: db}
}

func (s *ProjectService) Create(classID uint, title, description string, status model.Status, start, end model.Date) (*model.Project, error) {
	if end.Before(start) {
		return nil, fmt.Errorf("40002:project end date before start date")
	}
	if !status.Valid() {
		return nil, fmt.Errorf("40001:unknown status %d", status)
	}

	project := &model.Project{
		ClassID:     classID,
		Title:       title,
		Description: description,
		Status:      status,
		StartDate:   start,
		EndDate:     end,
	}
	if err := s.db.Create(project).Error; err != nil {
		return nil, err
	}
	return project, nil
}

func (s *ProjectService) GetByID(id uint) (*model.Project, error) {
	var project model.Project
	if err := s.db.First(&project, id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

func (s *ProjectService) ListByClass(classID uint, status *model.Status, page, pageSize int) ([]model.Project, int64, error) {
	query := s.db.Model(&model.Project{}).Where("class_id = ?", classID)
	if status != nil {
		query = query.Where("status = ?", *status)
	}

	var total int64
	query.Count(&total)

	var projects []model.Project
	if err := query.Order("start_date asc").Offset((page - 1) * pageSize).Limit(pageSize).Find(&projects).Error; err != nil {
		return nil, 0, err
	}
	return projects, total, nil
}

func (s *ProjectService) Update(id uint, updates map[string]interface{}) (*model.Project, error) {
	project, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	start, end := project.StartDate, project.EndDate
	if v, ok := updates["start_date"].(model.Date); ok {
		start = v
	}
	if v, ok := updates["end_date"].(model.Date); ok {
		end = v
	}
	if end.Before(start) {
		return nil, fmt.Errorf("40002:project end date before start date")
	}

	if err := s.db.Model(&model.Project{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.GetByID(id)
}

func (s *ProjectService) Delete(id uint) error {
	var teamCount int64
	s.db.Model(&model.Team{}).Where("project_id = ?", id).Count(&teamCount)
	if teamCount > 0 {
		return fmt.Errorf("40003:project still has teams")
	}
	return s.db.Delete(&model.Project{}, id).Error
}

func (s *ProjectService) TeamCount(projectID uint) int64 {
	var count int64
	s.db.Model(&model.Team{}).Where("project_id = ?", projectID).Count(&count)
	return count
}
