package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/chavdarovgospodin/AI-Calorie-Calculator-sub000/middlewares"
	"github.com/chavdarovgospodin/AI-Calorie-Calculator-sub000/services"
)

type ActivityController struct {
	activities *services.ActivityService
}

func NewActivityController(activities *services.ActivityService) *ActivityController {
	return &ActivityController{activities: activities}
}

// Sync ingests one observation from a health platform or device.
func (ctl *ActivityController) Sync(c *gin.Context) {
	var req services.SyncActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	entry, err := ctl.activities.Sync(c.Request.Context(), middlewares.UserID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

// AddManual records a user-entered activity.
func (ctl *ActivityController) AddManual(c *gin.Context) {
	var req services.ManualActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	entry, err := ctl.activities.AddManual(c.Request.Context(), middlewares.UserID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// List returns the day's activity entries (?date=YYYY-MM-DD, default today).
func (ctl *ActivityController) List(c *gin.Context) {
	entries, err := ctl.activities.List(c.Request.Context(), middlewares.UserID(c), c.Query("date"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

func (ctl *ActivityController) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid entry id"})
		return
	}
	if err := ctl.activities.Delete(c.Request.Context(), middlewares.UserID(c), uint(id)); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Estimate previews the fallback calorie table without persisting
// anything. Shares the exact table the manual endpoint uses.
func (ctl *ActivityController) Estimate(c *gin.Context) {
	var req struct {
		ActivityType string `json:"activity_type"`
		Intensity    string `json:"intensity"`
		DurationMin  int    `json:"duration_minutes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.DurationMin < 1 || req.DurationMin > 600 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "duration_minutes must be between 1 and 600"})
		return
	}
	calories, err := services.EstimateActivityCalories(req.ActivityType, req.Intensity, req.DurationMin)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"activity_type":    req.ActivityType,
		"intensity":        req.Intensity,
		"duration_minutes": req.DurationMin,
		"calories_burned":  calories,
	})
}
