package services

import (
	"context"
	"errors"
	"math"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/chavdarovgospodin/AI-Calorie-Calculator-sub000/models"
)

// Goal classification relative to the daily calorie target, under a
// symmetric 5% tolerance band. The boundaries are inclusive on the
// on_target side.
const (
	GoalUnder    = "under"
	GoalOnTarget = "on_target"
	GoalOver     = "over"

	goalTolerance = 0.05

	// Used when a user has not set a daily calorie target.
	DefaultCalorieGoal = 2000
	// Burned-calories target used for active-day classification when no
	// preference row exists yet.
	DefaultActivityGoal = 600
)

// SummaryService derives every aggregated view from the stored entries.
// Nothing is read from cached totals; each call recomputes from current
// state.
type SummaryService struct {
	db    *gorm.DB
	prefs *PreferenceService
	log   *zap.SugaredLogger
}

func NewSummaryService(db *gorm.DB, prefs *PreferenceService, log *zap.SugaredLogger) *SummaryService {
	return &SummaryService{db: db, prefs: prefs, log: log}
}

type MacroTotals struct {
	Protein float64 `json:"protein"`
	Carbs   float64 `json:"carbs"`
	Fat     float64 `json:"fat"`
}

type DailySummary struct {
	Date                  string      `json:"date"`
	TotalCaloriesConsumed float64     `json:"total_calories_consumed"`
	TotalCaloriesBurned   float64     `json:"total_calories_burned"`
	NetCalories           float64     `json:"net_calories"`
	Macros                MacroTotals `json:"macros"`
	DailyCalorieGoal      float64     `json:"daily_calorie_goal"`
	RemainingCalories     float64     `json:"remaining_calories"`
	ProgressPercentage    float64     `json:"progress_percentage"`
	GoalStatus            string      `json:"goal_status"`
	ActiveDay             bool        `json:"active_day"`
	FoodEntryCount        int         `json:"food_entry_count"`
	ActivityEntryCount    int         `json:"activity_entry_count"`
}

// Daily computes the dashboard view for one day. A day with no stored
// ledger is a valid all-zero summary, not an error.
func (s *SummaryService) Daily(ctx context.Context, userID uint, date string) (*DailySummary, error) {
	day, err := ResolveDate(date)
	if err != nil {
		return nil, err
	}

	goal, err := s.calorieGoal(ctx, userID)
	if err != nil {
		return nil, err
	}
	prefs, err := s.prefs.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	summary := &DailySummary{Date: day, DailyCalorieGoal: goal}

	var dl models.DailyLog
	err = s.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, day).
		First(&dl).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		s.finish(summary, prefs.ActivityGoal)
		return summary, nil
	}
	if err != nil {
		return nil, storeErr("find daily log", err)
	}

	var foods []models.FoodEntry
	if err := s.db.WithContext(ctx).
		Where("daily_log_id = ?", dl.ID).
		Find(&foods).Error; err != nil {
		return nil, storeErr("list food entries", err)
	}
	var activities []models.ActivityEntry
	if err := s.db.WithContext(ctx).
		Where("daily_log_id = ?", dl.ID).
		Find(&activities).Error; err != nil {
		return nil, storeErr("list activity entries", err)
	}

	for _, f := range foods {
		if f.Calories < 0 {
			// Defensive: a malformed row must not abort the summary.
			s.log.Warnw("skipping food entry with negative calories",
				"entry_id", f.ID, "calories", f.Calories)
			continue
		}
		summary.TotalCaloriesConsumed += f.Calories
		summary.Macros.Protein += f.Protein
		summary.Macros.Carbs += f.Carbs
		summary.Macros.Fat += f.Fat
	}
	for _, a := range activities {
		if a.CaloriesBurned < 0 {
			s.log.Warnw("skipping activity entry with negative calories",
				"entry_id", a.ID, "calories_burned", a.CaloriesBurned)
			continue
		}
		summary.TotalCaloriesBurned += a.CaloriesBurned
	}
	summary.FoodEntryCount = len(foods)
	summary.ActivityEntryCount = len(activities)

	s.finish(summary, prefs.ActivityGoal)
	return summary, nil
}

// finish fills in the derived fields once the raw sums are in place.
func (s *SummaryService) finish(sum *DailySummary, activityGoal float64) {
	sum.Macros.Protein = round1(sum.Macros.Protein)
	sum.Macros.Carbs = round1(sum.Macros.Carbs)
	sum.Macros.Fat = round1(sum.Macros.Fat)

	sum.NetCalories = sum.TotalCaloriesConsumed - sum.TotalCaloriesBurned
	sum.RemainingCalories = sum.DailyCalorieGoal - sum.NetCalories

	if sum.DailyCalorieGoal > 0 {
		pct := math.Round(sum.NetCalories / sum.DailyCalorieGoal * 100)
		// Clamped at 100 on top only; negative progress is meaningful.
		if pct > 100 {
			pct = 100
		}
		sum.ProgressPercentage = pct
	}
	sum.GoalStatus = classifyGoal(sum.NetCalories, sum.DailyCalorieGoal)

	if activityGoal <= 0 {
		activityGoal = DefaultActivityGoal
	}
	sum.ActiveDay = sum.TotalCaloriesBurned >= 0.8*activityGoal
}

func classifyGoal(netCalories, goal float64) string {
	switch {
	case netCalories > goal*(1+goalTolerance):
		return GoalOver
	case netCalories >= goal*(1-goalTolerance):
		return GoalOnTarget
	default:
		return GoalUnder
	}
}

type DayTotals struct {
	Date                  string  `json:"date"`
	TotalCaloriesConsumed float64 `json:"total_calories_consumed"`
	TotalCaloriesBurned   float64 `json:"total_calories_burned"`
	NetCalories           float64 `json:"net_calories"`
}

// Weekly returns the 7 days ending at anchor inclusive, ascending, with
// zero-filled rows for days that have no stored ledger.
func (s *SummaryService) Weekly(ctx context.Context, userID uint, anchor string) ([]DayTotals, error) {
	day, err := ResolveDate(anchor)
	if err != nil {
		return nil, err
	}
	days, err := weekWindow(day)
	if err != nil {
		return nil, err
	}

	rows, err := s.rangeTotals(ctx, userID, days[0], days[len(days)-1])
	if err != nil {
		return nil, err
	}

	out := make([]DayTotals, 0, len(days))
	for _, d := range days {
		t, ok := rows[d]
		if !ok {
			t = DayTotals{Date: d}
		}
		t.NetCalories = t.TotalCaloriesConsumed - t.TotalCaloriesBurned
		out = append(out, t)
	}
	return out, nil
}

type MonthSummary struct {
	Year                  int     `json:"year"`
	Month                 int     `json:"month"`
	TotalDays             int     `json:"total_days"`
	TotalCaloriesConsumed float64 `json:"total_calories_consumed"`
	TotalCaloriesBurned   float64 `json:"total_calories_burned"`
	AverageDailyCalories  float64 `json:"average_daily_calories"`
}

// Monthly sums the calendar month; year/month default to the current
// UTC month when zero.
func (s *SummaryService) Monthly(ctx context.Context, userID uint, year, month int) (*MonthSummary, error) {
	now := time.Now().UTC()
	if year == 0 {
		year = now.Year()
	}
	if month == 0 {
		month = int(now.Month())
	}
	if month < 1 || month > 12 {
		return nil, invalidf("month", "must be between 1 and 12, got %d", month)
	}

	from, to := monthBounds(year, time.Month(month))
	rows, err := s.rangeTotalsHalfOpen(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}

	sum := &MonthSummary{Year: year, Month: month, TotalDays: len(rows)}
	for _, t := range rows {
		sum.TotalCaloriesConsumed += t.TotalCaloriesConsumed
		sum.TotalCaloriesBurned += t.TotalCaloriesBurned
	}
	if sum.TotalDays > 0 {
		sum.AverageDailyCalories = math.Round(sum.TotalCaloriesConsumed / float64(sum.TotalDays))
	}
	return sum, nil
}

// rangeTotals recomputes per-day totals from the entries for every
// stored ledger in [from, to], keyed by day string.
func (s *SummaryService) rangeTotals(ctx context.Context, userID uint, from, to string) (map[string]DayTotals, error) {
	var logs []models.DailyLog
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND date >= ? AND date <= ?", userID, from, to).
		Order("date ASC").
		Find(&logs).Error; err != nil {
		return nil, storeErr("list daily logs", err)
	}
	return s.totalsForLogs(ctx, logs)
}

func (s *SummaryService) rangeTotalsHalfOpen(ctx context.Context, userID uint, from, to string) (map[string]DayTotals, error) {
	var logs []models.DailyLog
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND date >= ? AND date < ?", userID, from, to).
		Order("date ASC").
		Find(&logs).Error; err != nil {
		return nil, storeErr("list daily logs", err)
	}
	return s.totalsForLogs(ctx, logs)
}

func (s *SummaryService) totalsForLogs(ctx context.Context, logs []models.DailyLog) (map[string]DayTotals, error) {
	out := make(map[string]DayTotals, len(logs))
	for _, dl := range logs {
		var consumed, burned float64
		if err := s.db.WithContext(ctx).Model(&models.FoodEntry{}).
			Where("daily_log_id = ?", dl.ID).
			Select("COALESCE(SUM(calories), 0)").
			Scan(&consumed).Error; err != nil {
			return nil, storeErr("sum food calories", err)
		}
		if err := s.db.WithContext(ctx).Model(&models.ActivityEntry{}).
			Where("daily_log_id = ?", dl.ID).
			Select("COALESCE(SUM(calories_burned), 0)").
			Scan(&burned).Error; err != nil {
			return nil, storeErr("sum activity calories", err)
		}
		out[dl.Date] = DayTotals{
			Date:                  dl.Date,
			TotalCaloriesConsumed: consumed,
			TotalCaloriesBurned:   burned,
		}
	}
	return out, nil
}

func (s *SummaryService) calorieGoal(ctx context.Context, userID uint) (float64, error) {
	var user models.User
	err := s.db.WithContext(ctx).First(&user, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return DefaultCalorieGoal, nil
	}
	if err != nil {
		return 0, storeErr("find user", err)
	}
	if user.DailyCalorieGoal <= 0 {
		return DefaultCalorieGoal, nil
	}
	return user.DailyCalorieGoal, nil
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
