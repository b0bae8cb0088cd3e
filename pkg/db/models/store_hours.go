package models

import (
	"time"

	"github.com/google/uuid"
)

// StoreHours holds opening hours for one weekday. Day is 0 (Sunday) through
// 6 (Saturday), matching time.Weekday. Open and Close are "HH:MM" strings.
type StoreHours struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Day       int       `gorm:"column:day;not null;uniqueIndex" json:"day"`
	Open      string    `gorm:"column:open;not null" json:"open"`
	Close     string    `gorm:"column:close;not null" json:"close"`
	Closed    bool      `gorm:"column:closed;not null;default:false" json:"closed"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (StoreHours) TableName() string { return "store_hours" }
