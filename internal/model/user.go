package model

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Name         string         `gorm:"type:varchar(64);not null" json:"name"`
	Email        string         `gorm:"type:varchar(128);uniqueIndex:idx_email;not null" json:"email"`
	PasswordHash string         `gorm:"type:varchar(128);not null" json:"-"`
	IsAdmin      bool           `gorm:"default:false" json:"is_admin"`
	LastLoginAt  *time.Time     `json:"last_login_at"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string { return "users" }

type UserBrief struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	IsAdmin bool   `json:"is_admin"`
}

func (u *User) Brief() UserBrief {
	return UserBrief{
		ID:      u.ID,
		Name:    u.Name,
		Email:   u.Email,
		IsAdmin: u.IsAdmin,
	}
}
