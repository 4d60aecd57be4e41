package models

import (
	"gorm.io/gorm"
)

// User exists so the auth middleware can resolve an email claim to a
// user id. Registration and session issuance live in a separate service.
type User struct {
	gorm.Model
	Email            string  `gorm:"uniqueIndex;not null"`
	FullName         string
	DailyCalorieGoal float64 // kcal/day target for goal classification
}
