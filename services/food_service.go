package services

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"unicode"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/chavdarovgospodin/AI-Calorie-Calculator-sub000/models"
)

// FoodService persists consumed-food entries. Entries have no dedup
// key; every save inserts.
type FoodService struct {
	db     *gorm.DB
	ledger *LedgerService
	log    *zap.SugaredLogger
}

func NewFoodService(db *gorm.DB, ledger *LedgerService, log *zap.SugaredLogger) *FoodService {
	return &FoodService{db: db, ledger: ledger, log: log}
}

type FoodItemRequest struct {
	Name     string  `json:"name"`
	Quantity string  `json:"quantity"` // free text, e.g. "200г", "2 бр"
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

type SaveFoodRequest struct {
	Description   string            `json:"description,omitempty"`
	TotalCalories float64           `json:"total_calories"`
	Protein       float64           `json:"protein"`
	Carbs         float64           `json:"carbs"`
	Fat           float64           `json:"fat"`
	Fiber         float64           `json:"fiber,omitempty"`
	Sugar         float64           `json:"sugar,omitempty"`
	Sodium        float64           `json:"sodium,omitempty"`
	Foods         []FoodItemRequest `json:"foods,omitempty"`
	SourceModel   string            `json:"source_model,omitempty"`
	Date          string            `json:"date,omitempty"`
}

// Save stores one food observation. With a per-item breakdown it
// creates one entry per item; otherwise a single entry from the
// aggregate totals with a name derived from the description.
func (s *FoodService) Save(ctx context.Context, userID uint, req SaveFoodRequest) ([]models.FoodEntry, error) {
	if req.TotalCalories < 0 || req.TotalCalories > 10000 {
		return nil, invalidf("total_calories", "must be between 0 and 10000, got %v", req.TotalCalories)
	}

	dl, err := s.ledger.GetOrCreate(ctx, userID, req.Date)
	if err != nil {
		return nil, err
	}

	var entries []models.FoodEntry
	if len(req.Foods) > 0 {
		for _, item := range req.Foods {
			qty, unit := parseQuantity(item.Quantity)
			entries = append(entries, models.FoodEntry{
				DailyLogID:  dl.ID,
				UserID:      userID,
				Description: req.Description,
				FoodName:    item.Name,
				Quantity:    qty,
				Unit:        unit,
				Calories:    clampNonNegative(item.Calories),
				Protein:     clampNonNegative(item.Protein),
				Carbs:       clampNonNegative(item.Carbs),
				Fat:         clampNonNegative(item.Fat),
				SourceModel: req.SourceModel,
			})
		}
	} else {
		entries = append(entries, models.FoodEntry{
			DailyLogID:  dl.ID,
			UserID:      userID,
			Description: req.Description,
			FoodName:    deriveFoodName(req.Description),
			Quantity:    1,
			Unit:        "serving",
			Calories:    clampNonNegative(req.TotalCalories),
			Protein:     clampNonNegative(req.Protein),
			Carbs:       clampNonNegative(req.Carbs),
			Fat:         clampNonNegative(req.Fat),
			Fiber:       clampNonNegative(req.Fiber),
			Sugar:       clampNonNegative(req.Sugar),
			Sodium:      clampNonNegative(req.Sodium),
			SourceModel: req.SourceModel,
		})
	}

	for i := range entries {
		if err := s.db.WithContext(ctx).Create(&entries[i]).Error; err != nil {
			return nil, storeErr("create food entry", err)
		}
	}
	if err := refreshLogTotals(s.db.WithContext(ctx), dl.ID); err != nil {
		return nil, err
	}
	return entries, nil
}

// List returns all food entries for (userID, date), newest first.
func (s *FoodService) List(ctx context.Context, userID uint, date string) ([]models.FoodEntry, error) {
	day, err := ResolveDate(date)
	if err != nil {
		return nil, err
	}
	var entries []models.FoodEntry
	err = s.db.WithContext(ctx).
		Joins("JOIN daily_logs ON daily_logs.id = food_entries.daily_log_id").
		Where("food_entries.user_id = ? AND daily_logs.date = ?", userID, day).
		Order("food_entries.created_at DESC").
		Find(&entries).Error
	if err != nil {
		return nil, storeErr("list food entries", err)
	}
	return entries, nil
}

// UpdateNotes is the only mutation allowed on a stored food entry.
func (s *FoodService) UpdateNotes(ctx context.Context, userID, entryID uint, notes string) (*models.FoodEntry, error) {
	var entry models.FoodEntry
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", entryID, userID).
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &NotFoundError{Resource: "food entry"}
	}
	if err != nil {
		return nil, storeErr("find food entry", err)
	}
	entry.Notes = notes
	if err := s.db.WithContext(ctx).Save(&entry).Error; err != nil {
		return nil, storeErr("update food entry", err)
	}
	return &entry, nil
}

// Delete hard-deletes one entry, scoped to the owning user.
func (s *FoodService) Delete(ctx context.Context, userID, entryID uint) error {
	var entry models.FoodEntry
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", entryID, userID).
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &NotFoundError{Resource: "food entry"}
	}
	if err != nil {
		return storeErr("find food entry", err)
	}
	if err := s.db.WithContext(ctx).Unscoped().Delete(&entry).Error; err != nil {
		return storeErr("delete food entry", err)
	}
	return refreshLogTotals(s.db.WithContext(ctx), entry.DailyLogID)
}

func clampNonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

// Unit aliases accepted in free-text quantity strings. Estimator output
// mixes Latin and Cyrillic unit tokens.
var unitAliases = map[string]string{
	"g":       "g",
	"gr":      "g",
	"г":       "g",
	"гр":      "g",
	"грама":   "g",
	"kg":      "kg",
	"кг":      "kg",
	"ml":      "ml",
	"мл":      "ml",
	"l":       "l",
	"л":       "l",
	"pcs":     "pcs",
	"бр":      "pcs",
	"бр.":     "pcs",
	"serving": "serving",
}

// parseQuantity splits a free-text quantity like "200г" or "2 бр" into
// a numeric quantity and a canonical unit. A leading numeric token is
// the quantity (1 if absent); the remainder maps through the alias
// table, passing through verbatim when unrecognized; no remainder means
// "serving".
func parseQuantity(raw string) (float64, string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 1, "serving"
	}

	i := 0
	for i < len(raw) && (raw[i] >= '0' && raw[i] <= '9' || raw[i] == '.' || raw[i] == ',') {
		i++
	}
	qty := 1.0
	if i > 0 {
		num := strings.ReplaceAll(raw[:i], ",", ".")
		if v, err := strconv.ParseFloat(strings.TrimSuffix(num, "."), 64); err == nil && v > 0 {
			qty = v
		}
	}

	unit := strings.ToLower(strings.TrimSpace(raw[i:]))
	if unit == "" {
		return qty, "serving"
	}
	if canonical, ok := unitAliases[unit]; ok {
		return qty, canonical
	}
	return qty, unit
}

// deriveFoodName takes the first clause of a free-text description as
// the display name: "chicken with rice, salad and cola" -> "Chicken
// with rice".
func deriveFoodName(description string) string {
	name := strings.TrimSpace(description)
	for _, sep := range []string{",", ";", " and ", " и "} {
		if idx := strings.Index(name, sep); idx > 0 {
			name = name[:idx]
		}
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return "Mixed Foods"
	}
	runes := []rune(name)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
