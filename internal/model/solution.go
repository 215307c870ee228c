package model

import "time"

// Solution is a team's working copy of its project: the scope that owns
// the team's tasks. Created together with the team, seeded from the
// project's current dates and status.
type Solution struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	TeamID    uint      `gorm:"not null;uniqueIndex:uk_solution_team" json:"team_id"`
	ProjectID uint      `gorm:"not null;index:idx_solution_project" json:"project_id"`
	Status    Status    `gorm:"not null;default:0" json:"status"`
	StartDate Date      `gorm:"type:date;not null" json:"start_date"`
	EndDate   Date      `gorm:"type:date;not null" json:"end_date"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Team    *Team    `gorm:"foreignKey:TeamID" json:"team,omitempty"`
	Project *Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
}

func (Solution) TableName() string { return "solutions" }
