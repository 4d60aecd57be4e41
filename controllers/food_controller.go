package controllers

import (
	"encoding/base64"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/chavdarovgospodin/AI-Calorie-Calculator-sub000/middlewares"
	"github.com/chavdarovgospodin/AI-Calorie-Calculator-sub000/services"
	"github.com/chavdarovgospodin/AI-Calorie-Calculator-sub000/utils"
)

type FoodController struct {
	foods     *services.FoodService
	estimator services.NutritionEstimator
	vision    *services.RekognitionService
	photos    *utils.PhotoStore
}

func NewFoodController(
	foods *services.FoodService,
	estimator services.NutritionEstimator,
	vision *services.RekognitionService,
	photos *utils.PhotoStore,
) *FoodController {
	return &FoodController{foods: foods, estimator: estimator, vision: vision, photos: photos}
}

// Save stores entries from caller-supplied nutrition values.
func (ctl *FoodController) Save(c *gin.Context) {
	var req services.SaveFoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	entries, err := ctl.foods.Save(c.Request.Context(), middlewares.UserID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"entries": entries})
}

// Analyze runs a free-text description through the nutrition estimator
// and persists the result. Estimator failure fails the whole call; a
// zero estimate is never substituted.
func (ctl *FoodController) Analyze(c *gin.Context) {
	var req struct {
		Description string `json:"description"`
		Date        string `json:"date,omitempty"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if strings.TrimSpace(req.Description) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "description is required"})
		return
	}

	est, err := ctl.estimator.EstimateNutrition(c.Request.Context(), req.Description)
	if err != nil {
		respondError(c, err)
		return
	}

	entries, err := ctl.foods.Save(c.Request.Context(), middlewares.UserID(c), services.SaveFoodRequest{
		Description:   req.Description,
		TotalCalories: est.TotalCalories,
		Protein:       est.Protein,
		Carbs:         est.Carbs,
		Fat:           est.Fat,
		Fiber:         est.Fiber,
		Sugar:         est.Sugar,
		Sodium:        est.Sodium,
		Foods:         toFoodItems(est.Foods),
		SourceModel:   est.Model,
		Date:          req.Date,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"entries": entries, "estimate": est})
}

// AnalyzePhoto handles the photo input path: archive the image, extract
// food labels, then reuse the text estimation flow.
func (ctl *FoodController) AnalyzePhoto(c *gin.Context) {
	var req struct {
		ImageBase64 string `json:"image_base64"`
		ContentType string `json:"content_type,omitempty"`
		Date        string `json:"date,omitempty"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	imageBytes, err := base64.StdEncoding.DecodeString(req.ImageBase64)
	if err != nil || len(imageBytes) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image_base64 must be valid base64"})
		return
	}

	userID := middlewares.UserID(c)
	ctx := c.Request.Context()

	photoKey := ""
	if ctl.photos != nil {
		// Archival is best-effort; estimation proceeds without it.
		if key, err := ctl.photos.UploadMealPhoto(ctx, userID, imageBytes, req.ContentType); err == nil {
			photoKey = key
		}
	}

	labels, err := ctl.vision.DetectFoodLabels(ctx, imageBytes)
	if err != nil {
		respondError(c, err)
		return
	}
	description := services.LabelsToDescription(labels)

	est, err := ctl.estimator.EstimateNutrition(ctx, description)
	if err != nil {
		respondError(c, err)
		return
	}

	entries, err := ctl.foods.Save(ctx, userID, services.SaveFoodRequest{
		Description:   description,
		TotalCalories: est.TotalCalories,
		Protein:       est.Protein,
		Carbs:         est.Carbs,
		Fat:           est.Fat,
		Fiber:         est.Fiber,
		Sugar:         est.Sugar,
		Sodium:        est.Sodium,
		Foods:         toFoodItems(est.Foods),
		SourceModel:   est.Model,
		Date:          req.Date,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"entries":   entries,
		"estimate":  est,
		"labels":    labels,
		"photo_key": photoKey,
	})
}

// List returns the day's food entries (?date=YYYY-MM-DD, default today).
func (ctl *FoodController) List(c *gin.Context) {
	entries, err := ctl.foods.List(c.Request.Context(), middlewares.UserID(c), c.Query("date"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

func (ctl *FoodController) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid entry id"})
		return
	}
	if err := ctl.foods.Delete(c.Request.Context(), middlewares.UserID(c), uint(id)); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UpdateNotes applies a soft correction to a stored entry.
func (ctl *FoodController) UpdateNotes(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid entry id"})
		return
	}
	var req struct {
		Notes string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	entry, err := ctl.foods.UpdateNotes(c.Request.Context(), middlewares.UserID(c), uint(id), req.Notes)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

func toFoodItems(items []services.EstimatedFoodItem) []services.FoodItemRequest {
	out := make([]services.FoodItemRequest, 0, len(items))
	for _, f := range items {
		out = append(out, services.FoodItemRequest{
			Name:     f.Name,
			Quantity: f.Quantity,
			Calories: f.Calories,
			Protein:  f.Protein,
			Carbs:    f.Carbs,
			Fat:      f.Fat,
		})
	}
	return out
}
