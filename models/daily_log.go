package models

import (
	"gorm.io/gorm"
)

// DailyLog is the per-user, per-calendar-day bucket every food and
// activity entry attaches to. Date is the canonical day string
// (YYYY-MM-DD, evaluated in UTC). The calorie columns are derived
// snapshots refreshed after each mutation; summaries always recompute
// from the entries themselves.
type DailyLog struct {
	gorm.Model
	UserID uint   `gorm:"not null;uniqueIndex:idx_user_day" json:"user_id"`
	Date   string `gorm:"type:varchar(10);not null;uniqueIndex:idx_user_day" json:"date"`

	TotalCaloriesConsumed float64 `json:"total_calories_consumed"`
	CaloriesBurned        float64 `json:"calories_burned"`
}
