package models

import (
	"gorm.io/gorm"
)

// FoodEntry stores one logged food item with its nutrition snapshot.
// Immutable after creation except for Notes (soft corrections).
type FoodEntry struct {
	gorm.Model
	DailyLogID uint `gorm:"index;not null" json:"daily_log_id"`
	UserID     uint `gorm:"index;not null" json:"user_id"`

	Description string  `gorm:"type:text" json:"description"`
	FoodName    string  `json:"food_name"`
	Quantity    float64 `json:"quantity"` // e.g. 200
	Unit        string  `gorm:"size:16" json:"unit"` // "g" | "ml" | "pcs" | "serving" | verbatim

	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Fiber    float64 `json:"fiber"`
	Sugar    float64 `json:"sugar"`
	Sodium   float64 `json:"sodium"`

	SourceModel string `gorm:"size:64" json:"source_model"` // estimator identifier
	Notes       string `gorm:"type:text" json:"notes,omitempty"`
}
