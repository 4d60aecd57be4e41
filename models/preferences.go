package models

import (
	"gorm.io/gorm"
)

const (
	SyncFrequencyRealtime = "realtime"
	SyncFrequencyHourly   = "hourly"
	SyncFrequencyDaily    = "daily"
)

// UserActivityPreferences holds each user's activity-tracking
// configuration. One row per user, created with defaults on first access.
type UserActivityPreferences struct {
	gorm.Model
	UserID uint `gorm:"uniqueIndex;not null" json:"user_id"`

	PreferredSource          string  `gorm:"size:32" json:"preferred_source"`
	EnabledSources           string  `gorm:"size:255" json:"enabled_sources"` // comma-separated set
	AutoSyncEnabled          bool    `json:"auto_sync_enabled"`
	SyncFrequency            string  `gorm:"size:16" json:"sync_frequency"` // realtime | hourly | daily
	CalorieCalculationMethod string  `gorm:"size:32" json:"calorie_calculation_method"`
	ActivityGoal             float64 `json:"activity_goal"` // kcal/day, bounded [100, 2000]
}
