package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/chavdarovgospodin/AI-Calorie-Calculator-sub000/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.DailyLog{},
		&models.FoodEntry{},
		&models.ActivityEntry{},
		&models.UserActivityPreferences{},
	))
	return db
}

func newTestServices(t *testing.T) (*gorm.DB, *LedgerService, *ActivityService, *FoodService, *PreferenceService, *SummaryService) {
	t.Helper()
	db := newTestDB(t)
	log := zap.NewNop().Sugar()
	ledger := NewLedgerService(db, log)
	prefs := NewPreferenceService(db, log)
	return db,
		ledger,
		NewActivityService(db, ledger, log),
		NewFoodService(db, ledger, log),
		prefs,
		NewSummaryService(db, prefs, log)
}

// newTestServicesWithUser also seeds user 1 with a 2000 kcal goal.
func newTestServicesWithUser(t *testing.T) (*gorm.DB, *LedgerService, *ActivityService, *FoodService, *PreferenceService, *SummaryService) {
	t.Helper()
	db, ledger, activities, foods, prefs, summaries := newTestServices(t)
	require.NoError(t, db.Create(&models.User{Email: "test@example.com", DailyCalorieGoal: 2000}).Error)
	return db, ledger, activities, foods, prefs, summaries
}

func zapNop() *zap.SugaredLogger { return zap.NewNop().Sugar() }

func f64(v float64) *float64 { return &v }

func str(v string) *string { return &v }
