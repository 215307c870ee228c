package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

type UintList []uint

func (l UintList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	return string(b), err
}

func (l *UintList) Scan(value interface{}) error {
	if value == nil {
		*l = UintList{}
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case string:
		bytes = []byte(v)
	case []byte:
		bytes = v
	}
	return json.Unmarshal(bytes, l)
}

// UserSetting holds per-user timeline view preferences applied when the
// caller does not pass explicit view parameters.
type UserSetting struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	UserID         uint           `gorm:"uniqueIndex;not null" json:"user_id"`
	CollapsedTasks UintList       `gorm:"type:json" json:"collapsed_tasks"`
	WindowPadDays  int            `gorm:"not null;default:0" json:"window_pad_days"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

func (UserSetting) TableName() string { return "user_settings" }
