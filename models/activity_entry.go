package models

import (
	"time"

	"gorm.io/gorm"
)

// Activity sources. Health-platform syncs carry a source-scoped
// ExternalID; manual entries and raw sensor pushes do not.
const (
	SourceHealthKit     = "healthkit"
	SourceGoogleFit     = "google_fit"
	SourceFitbit        = "fitbit"
	SourceGarmin        = "garmin"
	SourceManual        = "manual"
	SourceDeviceSensors = "device_sensors"
)

// ActivityEntry is one burned-calories observation attached to a DailyLog.
// The tuple (user_id, daily_log_id, source, external_id) is unique when
// ExternalID is non-null; that constraint is what makes repeated syncs of
// the same observation idempotent. NULL external ids (manual entries) are
// exempt, so every manual submission is its own row.
type ActivityEntry struct {
	gorm.Model
	DailyLogID uint `gorm:"not null;uniqueIndex:idx_sync_key" json:"daily_log_id"`
	UserID     uint `gorm:"not null;uniqueIndex:idx_sync_key" json:"user_id"`

	ActivityType    string  `gorm:"size:64" json:"activity_type"`
	DurationMinutes int     `json:"duration_minutes"`
	CaloriesBurned  float64 `json:"calories_burned"`

	Source     string  `gorm:"size:32;not null;uniqueIndex:idx_sync_key" json:"source"`
	ExternalID *string `gorm:"size:128;uniqueIndex:idx_sync_key" json:"external_id,omitempty"`

	Steps         int       `json:"steps"`
	DistanceKm    float64   `json:"distance_km"`
	SyncTimestamp time.Time `json:"sync_timestamp"`
	Notes         string    `gorm:"type:text" json:"notes,omitempty"`
}
