package model

import (
	"time"

	"gorm.io/gorm"
)

type Team struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	ProjectID uint           `gorm:"not null;index:idx_project_id" json:"project_id"`
	Name      string         `gorm:"type:varchar(128);not null" json:"name"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Project  *Project     `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Members  []TeamMember `gorm:"foreignKey:TeamID" json:"members,omitempty"`
	Solution *Solution    `gorm:"foreignKey:TeamID" json:"solution,omitempty"`
}

func (Team) TableName() string { return "teams" }

type TeamMember struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	TeamID   uint      `gorm:"not null;uniqueIndex:uk_team_user" json:"team_id"`
	UserID   uint      `gorm:"not null;uniqueIndex:uk_team_user;index:idx_member_user_id" json:"user_id"`
	JoinedAt time.Time `gorm:"autoCreateTime" json:"joined_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (TeamMember) TableName() string { return "team_members" }
