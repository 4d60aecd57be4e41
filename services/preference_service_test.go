package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chavdarovgospodin/AI-Calorie-Calculator-sub000/models"
)

func TestGetCreatesDefaultsOnFirstAccess(t *testing.T) {
	db, _, _, _, prefs, _ := newTestServices(t)
	ctx := context.Background()

	got, err := prefs.Get(ctx, 1)
	require.NoError(t, err)

	assert.Equal(t, models.SourceHealthKit, got.PreferredSource)
	assert.Equal(t, models.SyncFrequencyHourly, got.SyncFrequency)
	assert.True(t, got.AutoSyncEnabled)
	assert.Equal(t, float64(DefaultActivityGoal), got.ActivityGoal)

	// Second access reads the same row.
	again, err := prefs.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, got.ID, again.ID)

	var count int64
	require.NoError(t, db.Model(&models.UserActivityPreferences{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestUpsertPartialReplace(t *testing.T) {
	_, _, _, _, prefs, _ := newTestServices(t)
	ctx := context.Background()

	updated, err := prefs.Upsert(ctx, 1, PreferencesUpdate{
		ActivityGoal:  f64(900),
		SyncFrequency: str(models.SyncFrequencyDaily),
	})
	require.NoError(t, err)

	assert.Equal(t, 900.0, updated.ActivityGoal)
	assert.Equal(t, models.SyncFrequencyDaily, updated.SyncFrequency)
	// Untouched fields keep their defaults.
	assert.Equal(t, models.SourceHealthKit, updated.PreferredSource)
	assert.True(t, updated.AutoSyncEnabled)
}

func TestUpsertValidation(t *testing.T) {
	_, _, _, _, prefs, _ := newTestServices(t)
	ctx := context.Background()

	cases := []struct {
		name   string
		update PreferencesUpdate
		field  string
	}{
		{"goal too low", PreferencesUpdate{ActivityGoal: f64(99)}, "activity_goal"},
		{"goal too high", PreferencesUpdate{ActivityGoal: f64(2001)}, "activity_goal"},
		{"bad frequency", PreferencesUpdate{SyncFrequency: str("weekly")}, "sync_frequency"},
		{"bad source", PreferencesUpdate{PreferredSource: str("strava")}, "preferred_source"},
		{"bad enabled source", PreferencesUpdate{EnabledSources: []string{"strava"}}, "enabled_sources"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := prefs.Upsert(ctx, 1, tc.update)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.field, verr.Field)
		})
	}
}

func TestUpsertEnabledSources(t *testing.T) {
	_, _, _, _, prefs, _ := newTestServices(t)

	updated, err := prefs.Upsert(context.Background(), 1, PreferencesUpdate{
		EnabledSources: []string{models.SourceGoogleFit, models.SourceManual},
	})
	require.NoError(t, err)
	assert.Equal(t, "google_fit,manual", updated.EnabledSources)
}
