package services

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/chavdarovgospodin/AI-Calorie-Calculator-sub000/models"
)

// LedgerService owns the per-day bucket lifecycle: every entry write
// goes through GetOrCreate so there is at most one DailyLog per
// (user, day).
type LedgerService struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

func NewLedgerService(db *gorm.DB, log *zap.SugaredLogger) *LedgerService {
	return &LedgerService{db: db, log: log}
}

// GetOrCreate returns the unique DailyLog for (userID, date), inserting
// a zeroed row if none exists. Safe under concurrent callers for the
// same key: the (user_id, date) unique index stops the second creator,
// and a duplicate-key insert is retried once as a plain fetch.
func (s *LedgerService) GetOrCreate(ctx context.Context, userID uint, date string) (*models.DailyLog, error) {
	day, err := ResolveDate(date)
	if err != nil {
		return nil, err
	}

	var dl models.DailyLog
	err = s.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, day).
		First(&dl).Error
	if err == nil {
		return &dl, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, storeErr("find daily log", err)
	}

	dl = models.DailyLog{UserID: userID, Date: day}
	if err := s.db.WithContext(ctx).Create(&dl).Error; err != nil {
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, storeErr("create daily log", err)
		}
		// Lost the race; attach to the row the winner created.
		s.log.Debugw("daily log create raced, fetching existing", "user_id", userID, "date", day)
		if err := s.db.WithContext(ctx).
			Where("user_id = ? AND date = ?", userID, day).
			First(&dl).Error; err != nil {
			return nil, &ConflictError{Key: "daily_log(user_id,date)", Err: err}
		}
	}
	return &dl, nil
}

// Get returns the DailyLog for (userID, date) without creating one.
func (s *LedgerService) Get(ctx context.Context, userID uint, date string) (*models.DailyLog, error) {
	day, err := ResolveDate(date)
	if err != nil {
		return nil, err
	}
	var dl models.DailyLog
	err = s.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, day).
		First(&dl).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &NotFoundError{Resource: "daily log"}
	}
	if err != nil {
		return nil, storeErr("find daily log", err)
	}
	return &dl, nil
}

// refreshLogTotals recomputes the derived calorie columns on a DailyLog
// from its current entries. The columns are display snapshots; the
// summary service never reads them.
func refreshLogTotals(db *gorm.DB, logID uint) error {
	var consumed, burned float64
	if err := db.Model(&models.FoodEntry{}).
		Where("daily_log_id = ?", logID).
		Select("COALESCE(SUM(calories), 0)").
		Scan(&consumed).Error; err != nil {
		return storeErr("sum food calories", err)
	}
	if err := db.Model(&models.ActivityEntry{}).
		Where("daily_log_id = ?", logID).
		Select("COALESCE(SUM(calories_burned), 0)").
		Scan(&burned).Error; err != nil {
		return storeErr("sum activity calories", err)
	}
	return db.Model(&models.DailyLog{}).
		Where("id = ?", logID).
		Updates(map[string]interface{}{
			"total_calories_consumed": consumed,
			"calories_burned":         burned,
		}).Error
}
