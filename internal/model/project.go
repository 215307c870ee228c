package model

import (
	"time"

	"gorm.io/gorm"
)

// Status is shared by projects, solutions and tasks.
type Status int

const (
	StatusPlanned Status = iota
	StatusInProgress
	StatusCompleted
)

func (s Status) Valid() bool {
	return s >= StatusPlanned && s <= StatusCompleted
}

type Project struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	ClassID     uint           `gorm:"not null;index:idx_class_id" json:"class_id"`
	Title       string         `gorm:"type:varchar(128);not null" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	Status      Status         `gorm:"not null;default:0;index:idx_status" json:"status"`
	StartDate   Date           `gorm:"type:date;not null" json:"start_date"`
	EndDate     Date           `gorm:"type:date;not null" json:"end_date"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Class *Class `gorm:"foreignKey:ClassID" json:"class,omitempty"`
	Teams []Team `gorm:"foreignKey:ProjectID" json:"teams,omitempty"`
}

func (Project) TableName() string { return "projects" }
