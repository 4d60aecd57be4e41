package services

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/chavdarovgospodin/AI-Calorie-Calculator-sub000/models"
)

// PreferenceService manages per-user activity-tracking configuration.
type PreferenceService struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

func NewPreferenceService(db *gorm.DB, log *zap.SugaredLogger) *PreferenceService {
	return &PreferenceService{db: db, log: log}
}

func defaultPreferences(userID uint) models.UserActivityPreferences {
	return models.UserActivityPreferences{
		UserID:                   userID,
		PreferredSource:          models.SourceHealthKit,
		EnabledSources:           strings.Join([]string{models.SourceHealthKit, models.SourceManual}, ","),
		AutoSyncEnabled:          true,
		SyncFrequency:            models.SyncFrequencyHourly,
		CalorieCalculationMethod: "standard",
		ActivityGoal:             DefaultActivityGoal,
	}
}

// Get returns the user's preferences, creating the default row on first
// access. A create race falls back to reading the winner's row.
func (s *PreferenceService) Get(ctx context.Context, userID uint) (*models.UserActivityPreferences, error) {
	var prefs models.UserActivityPreferences
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&prefs).Error
	if err == nil {
		return &prefs, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, storeErr("find preferences", err)
	}

	prefs = defaultPreferences(userID)
	if err := s.db.WithContext(ctx).Create(&prefs).Error; err != nil {
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, storeErr("create preferences", err)
		}
		if err := s.db.WithContext(ctx).
			Where("user_id = ?", userID).
			First(&prefs).Error; err != nil {
			return nil, &ConflictError{Key: "preferences(user_id)", Err: err}
		}
	}
	return &prefs, nil
}

type PreferencesUpdate struct {
	PreferredSource          *string  `json:"preferred_source,omitempty"`
	EnabledSources           []string `json:"enabled_sources,omitempty"`
	AutoSyncEnabled          *bool    `json:"auto_sync_enabled,omitempty"`
	SyncFrequency            *string  `json:"sync_frequency,omitempty"`
	CalorieCalculationMethod *string  `json:"calorie_calculation_method,omitempty"`
	ActivityGoal             *float64 `json:"activity_goal,omitempty"`
}

func (u *PreferencesUpdate) validate() error {
	if u.PreferredSource != nil && !validSources[*u.PreferredSource] {
		return invalidf("preferred_source", "unknown source %q", *u.PreferredSource)
	}
	for _, src := range u.EnabledSources {
		if !validSources[src] {
			return invalidf("enabled_sources", "unknown source %q", src)
		}
	}
	if u.SyncFrequency != nil {
		switch *u.SyncFrequency {
		case models.SyncFrequencyRealtime, models.SyncFrequencyHourly, models.SyncFrequencyDaily:
		default:
			return invalidf("sync_frequency", "must be realtime, hourly or daily, got %q", *u.SyncFrequency)
		}
	}
	if u.ActivityGoal != nil && (*u.ActivityGoal < 100 || *u.ActivityGoal > 2000) {
		return invalidf("activity_goal", "must be between 100 and 2000, got %v", *u.ActivityGoal)
	}
	return nil
}

// Upsert applies a partial update over the stored (or default) row.
// Fields left nil keep their current value.
func (s *PreferenceService) Upsert(ctx context.Context, userID uint, update PreferencesUpdate) (*models.UserActivityPreferences, error) {
	if err := update.validate(); err != nil {
		return nil, err
	}

	prefs, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if update.PreferredSource != nil {
		prefs.PreferredSource = *update.PreferredSource
	}
	if update.EnabledSources != nil {
		prefs.EnabledSources = strings.Join(update.EnabledSources, ",")
	}
	if update.AutoSyncEnabled != nil {
		prefs.AutoSyncEnabled = *update.AutoSyncEnabled
	}
	if update.SyncFrequency != nil {
		prefs.SyncFrequency = *update.SyncFrequency
	}
	if update.CalorieCalculationMethod != nil {
		prefs.CalorieCalculationMethod = *update.CalorieCalculationMethod
	}
	if update.ActivityGoal != nil {
		prefs.ActivityGoal = *update.ActivityGoal
	}

	if err := s.db.WithContext(ctx).Save(prefs).Error; err != nil {
		return nil, storeErr("save preferences", err)
	}
	return prefs, nil
}
