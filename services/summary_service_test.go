package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chavdarovgospodin/AI-Calorie-Calculator-sub000/models"
)

func TestClassifyGoalBoundaries(t *testing.T) {
	// Symmetric 5% band around goal=2000: [1900, 2100] is on_target,
	// both ends inclusive.
	cases := []struct {
		net  float64
		want string
	}{
		{2100, GoalOnTarget},
		{2101, GoalOver},
		{1899, GoalUnder},
		{1900, GoalOnTarget},
		{2000, GoalOnTarget},
		{0, GoalUnder},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, classifyGoal(tc.net, 2000), "net=%v", tc.net)
	}
}

func TestProgressPercentageClamp(t *testing.T) {
	log := zapNop()
	s := &SummaryService{log: log}

	over := &DailySummary{TotalCaloriesConsumed: 3000, DailyCalorieGoal: 2000}
	s.finish(over, DefaultActivityGoal)
	assert.Equal(t, 100.0, over.ProgressPercentage)

	// Negative progress is meaningful and must survive.
	negative := &DailySummary{TotalCaloriesConsumed: 100, TotalCaloriesBurned: 300, DailyCalorieGoal: 2000}
	s.finish(negative, DefaultActivityGoal)
	assert.Equal(t, -10.0, negative.ProgressPercentage)
}

func TestDailySummary(t *testing.T) {
	db, _, activities, foods, _, summaries := newTestServices(t)
	ctx := context.Background()

	require.NoError(t, db.Create(&models.User{Email: "a@b.c", DailyCalorieGoal: 2000}).Error)

	_, err := foods.Save(ctx, 1, SaveFoodRequest{
		Description:   "lunch",
		TotalCalories: 800,
		Protein:       42.25,
		Carbs:         90.1,
		Fat:           20,
		Date:          "2025-03-10",
	})
	require.NoError(t, err)
	_, err = activities.Sync(ctx, 1, SyncActivityRequest{
		Source: models.SourceHealthKit, ExternalID: str("w1"),
		CaloriesBurned: f64(300), Date: "2025-03-10",
	})
	require.NoError(t, err)

	sum, err := summaries.Daily(ctx, 1, "2025-03-10")
	require.NoError(t, err)

	assert.Equal(t, 800.0, sum.TotalCaloriesConsumed)
	assert.Equal(t, 300.0, sum.TotalCaloriesBurned)
	assert.Equal(t, 500.0, sum.NetCalories)
	assert.Equal(t, 1500.0, sum.RemainingCalories)
	assert.Equal(t, 25.0, sum.ProgressPercentage)
	assert.Equal(t, GoalUnder, sum.GoalStatus)
	assert.Equal(t, 42.3, sum.Macros.Protein) // rounded to 1 decimal
	assert.Equal(t, 90.1, sum.Macros.Carbs)
	assert.Equal(t, 1, sum.FoodEntryCount)
	assert.Equal(t, 1, sum.ActivityEntryCount)
}

func TestDailySummaryEmptyDayIsZeroNotError(t *testing.T) {
	_, _, _, _, _, summaries := newTestServicesWithUser(t)

	sum, err := summaries.Daily(context.Background(), 1, "2025-03-10")
	require.NoError(t, err)
	assert.Zero(t, sum.TotalCaloriesConsumed)
	assert.Zero(t, sum.NetCalories)
	assert.Equal(t, GoalUnder, sum.GoalStatus)
}

func TestDailySummarySkipsMalformedEntries(t *testing.T) {
	db, ledger, _, foods, _, summaries := newTestServicesWithUser(t)
	ctx := context.Background()

	_, err := foods.Save(ctx, 1, SaveFoodRequest{TotalCalories: 500, Date: "2025-03-10"})
	require.NoError(t, err)

	// A corrupt row written around the validation layer must not abort
	// the summary.
	dl, err := ledger.Get(ctx, 1, "2025-03-10")
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.FoodEntry{
		DailyLogID: dl.ID, UserID: 1, FoodName: "corrupt", Calories: -100,
	}).Error)

	sum, err := summaries.Daily(ctx, 1, "2025-03-10")
	require.NoError(t, err)
	assert.Equal(t, 500.0, sum.TotalCaloriesConsumed)
}

func TestActiveDayClassification(t *testing.T) {
	_, _, activities, _, _, summaries := newTestServicesWithUser(t)
	ctx := context.Background()

	// Default activity goal 600 -> active at >= 480 burned.
	_, err := activities.Sync(ctx, 1, SyncActivityRequest{
		Source: models.SourceHealthKit, ExternalID: str("w1"),
		CaloriesBurned: f64(479), Date: "2025-03-10",
	})
	require.NoError(t, err)

	sum, err := summaries.Daily(ctx, 1, "2025-03-10")
	require.NoError(t, err)
	assert.False(t, sum.ActiveDay)

	_, err = activities.Sync(ctx, 1, SyncActivityRequest{
		Source: models.SourceHealthKit, ExternalID: str("w1"),
		CaloriesBurned: f64(480), Date: "2025-03-10",
	})
	require.NoError(t, err)

	sum, err = summaries.Daily(ctx, 1, "2025-03-10")
	require.NoError(t, err)
	assert.True(t, sum.ActiveDay)
}

func TestWeeklyZeroFillsMissingDays(t *testing.T) {
	_, _, _, foods, _, summaries := newTestServicesWithUser(t)
	ctx := context.Background()

	_, err := foods.Save(ctx, 1, SaveFoodRequest{TotalCalories: 700, Date: "2025-03-07"})
	require.NoError(t, err)

	days, err := summaries.Weekly(ctx, 1, "2025-03-10")
	require.NoError(t, err)
	require.Len(t, days, 7)

	want := []string{"2025-03-04", "2025-03-05", "2025-03-06", "2025-03-07",
		"2025-03-08", "2025-03-09", "2025-03-10"}
	zeroDays := 0
	for i, d := range days {
		assert.Equal(t, want[i], d.Date)
		if d.TotalCaloriesConsumed == 0 && d.TotalCaloriesBurned == 0 {
			zeroDays++
		}
	}
	assert.Equal(t, 6, zeroDays)
	assert.Equal(t, 700.0, days[3].TotalCaloriesConsumed)
}

func TestWeeklyWindowCrossesMonthBoundary(t *testing.T) {
	_, _, _, _, _, summaries := newTestServicesWithUser(t)

	days, err := summaries.Weekly(context.Background(), 1, "2025-03-02")
	require.NoError(t, err)
	require.Len(t, days, 7)
	assert.Equal(t, "2025-02-24", days[0].Date)
	assert.Equal(t, "2025-03-02", days[6].Date)
}

func TestMonthlySummary(t *testing.T) {
	_, _, activities, foods, _, summaries := newTestServicesWithUser(t)
	ctx := context.Background()

	_, err := foods.Save(ctx, 1, SaveFoodRequest{TotalCalories: 2000, Date: "2025-03-01"})
	require.NoError(t, err)
	_, err = foods.Save(ctx, 1, SaveFoodRequest{TotalCalories: 1500, Date: "2025-03-15"})
	require.NoError(t, err)
	_, err = activities.Sync(ctx, 1, SyncActivityRequest{
		Source: models.SourceHealthKit, ExternalID: str("w1"),
		CaloriesBurned: f64(400), Date: "2025-03-15",
	})
	require.NoError(t, err)
	// outside the month
	_, err = foods.Save(ctx, 1, SaveFoodRequest{TotalCalories: 999, Date: "2025-04-01"})
	require.NoError(t, err)

	sum, err := summaries.Monthly(ctx, 1, 2025, 3)
	require.NoError(t, err)

	assert.Equal(t, 2, sum.TotalDays)
	assert.Equal(t, 3500.0, sum.TotalCaloriesConsumed)
	assert.Equal(t, 400.0, sum.TotalCaloriesBurned)
	assert.Equal(t, 1750.0, sum.AverageDailyCalories)
}

func TestMonthlyEmptyMonthAveragesZero(t *testing.T) {
	_, _, _, _, _, summaries := newTestServicesWithUser(t)

	sum, err := summaries.Monthly(context.Background(), 1, 2025, 1)
	require.NoError(t, err)
	assert.Zero(t, sum.TotalDays)
	assert.Zero(t, sum.AverageDailyCalories)
}

func TestMonthlyRejectsBadMonth(t *testing.T) {
	_, _, _, _, _, summaries := newTestServicesWithUser(t)

	_, err := summaries.Monthly(context.Background(), 1, 2025, 13)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "month", verr.Field)
}
