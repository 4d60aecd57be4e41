package services

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/chavdarovgospodin/AI-Calorie-Calculator-sub000/models"
)

// ActivityService reconciles burned-calorie observations into the daily
// ledger. Health-platform syncs are idempotent on (source, externalId);
// manual entries always insert.
type ActivityService struct {
	db     *gorm.DB
	ledger *LedgerService
	log    *zap.SugaredLogger
}

func NewActivityService(db *gorm.DB, ledger *LedgerService, log *zap.SugaredLogger) *ActivityService {
	return &ActivityService{db: db, ledger: ledger, log: log}
}

type SyncActivityRequest struct {
	Source         string   `json:"source"`
	ExternalID     *string  `json:"external_id,omitempty"`
	CaloriesBurned *float64 `json:"calories_burned"`
	Steps          int      `json:"steps,omitempty"`
	DistanceKm     float64  `json:"distance_km,omitempty"`
	DurationMin    int      `json:"duration_minutes,omitempty"`
	ActivityType   string   `json:"activity_type,omitempty"`
	Date           string   `json:"date,omitempty"`
}

var validSources = map[string]bool{
	models.SourceHealthKit:     true,
	models.SourceGoogleFit:     true,
	models.SourceFitbit:        true,
	models.SourceGarmin:        true,
	models.SourceManual:        true,
	models.SourceDeviceSensors: true,
}

func (r *SyncActivityRequest) validate() error {
	if !validSources[r.Source] {
		return invalidf("source", "unknown source %q", r.Source)
	}
	if r.CaloriesBurned == nil {
		return invalidf("calories_burned", "required")
	}
	if *r.CaloriesBurned < 0 || *r.CaloriesBurned > 10000 {
		return invalidf("calories_burned", "must be between 0 and 10000, got %v", *r.CaloriesBurned)
	}
	if r.Steps < 0 {
		return invalidf("steps", "must be non-negative")
	}
	if r.DistanceKm < 0 {
		return invalidf("distance_km", "must be non-negative")
	}
	if r.DurationMin < 0 {
		return invalidf("duration_minutes", "must be non-negative")
	}
	if r.ExternalID != nil && *r.ExternalID == "" {
		return invalidf("external_id", "must not be empty when present")
	}
	return nil
}

// Sync upserts one observation from a health platform or device. When
// the request carries an external id, a later sync of the same
// (source, external_id) refreshes the existing row in place, so webhook
// retries converge to a single entry. Without an external id every call
// inserts.
func (s *ActivityService) Sync(ctx context.Context, userID uint, req SyncActivityRequest) (*models.ActivityEntry, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	dl, err := s.ledger.GetOrCreate(ctx, userID, req.Date)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	if req.ExternalID != nil {
		var existing models.ActivityEntry
		err := s.db.WithContext(ctx).
			Where("user_id = ? AND daily_log_id = ? AND source = ? AND external_id = ?",
				userID, dl.ID, req.Source, *req.ExternalID).
			First(&existing).Error
		switch {
		case err == nil:
			return s.refresh(ctx, &existing, req, now)
		case errors.Is(err, gorm.ErrRecordNotFound):
			// fall through to insert
		default:
			return nil, storeErr("find activity entry", err)
		}
	}

	entry := models.ActivityEntry{
		DailyLogID:      dl.ID,
		UserID:          userID,
		ActivityType:    req.ActivityType,
		DurationMinutes: req.DurationMin,
		CaloriesBurned:  *req.CaloriesBurned,
		Source:          req.Source,
		ExternalID:      req.ExternalID,
		Steps:           req.Steps,
		DistanceKm:      req.DistanceKm,
		SyncTimestamp:   now,
	}
	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		if req.ExternalID == nil || !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, storeErr("create activity entry", err)
		}
		// A concurrent sync of the same observation won the insert;
		// treat ours as the authoritative refresh of that row.
		s.log.Debugw("activity sync raced, updating existing",
			"user_id", userID, "source", req.Source, "external_id", *req.ExternalID)
		var existing models.ActivityEntry
		if err := s.db.WithContext(ctx).
			Where("user_id = ? AND daily_log_id = ? AND source = ? AND external_id = ?",
				userID, dl.ID, req.Source, *req.ExternalID).
			First(&existing).Error; err != nil {
			return nil, &ConflictError{Key: "activity_entry(source,external_id)", Err: err}
		}
		return s.refresh(ctx, &existing, req, now)
	}

	if err := refreshLogTotals(s.db.WithContext(ctx), dl.ID); err != nil {
		return nil, err
	}
	return &entry, nil
}

// refresh applies a later sync of the same physical observation: the
// measured fields are overwritten, the entry identity is preserved.
func (s *ActivityService) refresh(ctx context.Context, entry *models.ActivityEntry, req SyncActivityRequest, now time.Time) (*models.ActivityEntry, error) {
	entry.CaloriesBurned = *req.CaloriesBurned
	entry.Steps = req.Steps
	entry.DistanceKm = req.DistanceKm
	entry.SyncTimestamp = now
	entry.DurationMinutes = req.DurationMin
	if req.ActivityType != "" {
		entry.ActivityType = req.ActivityType
	}
	if err := s.db.WithContext(ctx).Save(entry).Error; err != nil {
		return nil, storeErr("update activity entry", err)
	}
	if err := refreshLogTotals(s.db.WithContext(ctx), entry.DailyLogID); err != nil {
		return nil, err
	}
	return entry, nil
}

type ManualActivityRequest struct {
	ActivityType   string   `json:"activity_type"`
	DurationMin    int      `json:"duration_minutes"`
	Intensity      string   `json:"intensity"`
	CaloriesBurned *float64 `json:"calories_burned,omitempty"`
	Notes          string   `json:"notes,omitempty"`
	Date           string   `json:"date,omitempty"`
}

func (r *ManualActivityRequest) validate() error {
	if r.ActivityType == "" {
		return invalidf("activity_type", "required")
	}
	if r.DurationMin < 1 || r.DurationMin > 600 {
		return invalidf("duration_minutes", "must be between 1 and 600, got %d", r.DurationMin)
	}
	if r.CaloriesBurned != nil && (*r.CaloriesBurned < 0 || *r.CaloriesBurned > 10000) {
		return invalidf("calories_burned", "must be between 0 and 10000, got %v", *r.CaloriesBurned)
	}
	return nil
}

// AddManual records a user-entered activity. There is no dedup key, so
// every call inserts a new row; a retried submit legitimately creates
// two entries. When calories are omitted they come from the policy
// table in calorie_table.go.
func (s *ActivityService) AddManual(ctx context.Context, userID uint, req ManualActivityRequest) (*models.ActivityEntry, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	calories := 0.0
	if req.CaloriesBurned != nil {
		calories = *req.CaloriesBurned
		if req.Intensity != "" && req.Intensity != IntensityLow &&
			req.Intensity != IntensityModerate && req.Intensity != IntensityHigh {
			return nil, invalidf("intensity", "must be low, moderate or high, got %q", req.Intensity)
		}
	} else {
		var err error
		calories, err = EstimateActivityCalories(req.ActivityType, req.Intensity, req.DurationMin)
		if err != nil {
			return nil, err
		}
	}

	dl, err := s.ledger.GetOrCreate(ctx, userID, req.Date)
	if err != nil {
		return nil, err
	}

	entry := models.ActivityEntry{
		DailyLogID:      dl.ID,
		UserID:          userID,
		ActivityType:    req.ActivityType,
		DurationMinutes: req.DurationMin,
		CaloriesBurned:  calories,
		Source:          models.SourceManual,
		SyncTimestamp:   time.Now().UTC(),
		Notes:           req.Notes,
	}
	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return nil, storeErr("create activity entry", err)
	}
	if err := refreshLogTotals(s.db.WithContext(ctx), dl.ID); err != nil {
		return nil, err
	}
	return &entry, nil
}

// List returns all activity entries for (userID, date), newest first.
func (s *ActivityService) List(ctx context.Context, userID uint, date string) ([]models.ActivityEntry, error) {
	day, err := ResolveDate(date)
	if err != nil {
		return nil, err
	}
	var entries []models.ActivityEntry
	err = s.db.WithContext(ctx).
		Joins("JOIN daily_logs ON daily_logs.id = activity_entries.daily_log_id").
		Where("activity_entries.user_id = ? AND daily_logs.date = ?", userID, day).
		Order("activity_entries.created_at DESC").
		Find(&entries).Error
	if err != nil {
		return nil, storeErr("list activity entries", err)
	}
	return entries, nil
}

// Delete hard-deletes one entry, scoped to the owning user.
func (s *ActivityService) Delete(ctx context.Context, userID, entryID uint) error {
	var entry models.ActivityEntry
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", entryID, userID).
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &NotFoundError{Resource: "activity entry"}
	}
	if err != nil {
		return storeErr("find activity entry", err)
	}
	if err := s.db.WithContext(ctx).Unscoped().Delete(&entry).Error; err != nil {
		return storeErr("delete activity entry", err)
	}
	return refreshLogTotals(s.db.WithContext(ctx), entry.DailyLogID)
}
