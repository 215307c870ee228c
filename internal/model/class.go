package model

import (
	"time"

	"gorm.io/gorm"
)

type Class struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Title       string         `gorm:"type:varchar(128);not null" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	Color       string         `gorm:"type:varchar(16)" json:"color"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Roles    []ClassRole `gorm:"foreignKey:ClassID" json:"roles,omitempty"`
	Projects []Project   `gorm:"foreignKey:ClassID" json:"projects,omitempty"`
}

func (Class) TableName() string { return "classes" }

// RoleKind is the closed set of relations a user can hold in a class.
// A (class, user) pair holds at most one record.
type RoleKind string

const (
	RoleStudent RoleKind = "student"
	RoleTeacher RoleKind = "teacher"
)

func (r RoleKind) Valid() bool {
	return r == RoleStudent || r == RoleTeacher
}

type ClassRole struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ClassID   uint      `gorm:"not null;uniqueIndex:uk_class_user" json:"class_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:uk_class_user;index:idx_role_user_id" json:"user_id"`
	Role      RoleKind  `gorm:"type:varchar(10);not null" json:"role"`
	CreatedAt time.Time `json:"created_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (ClassRole) TableName() string { return "class_roles" }
