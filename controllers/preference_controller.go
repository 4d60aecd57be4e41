package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chavdarovgospodin/AI-Calorie-Calculator-sub000/middlewares"
	"github.com/chavdarovgospodin/AI-Calorie-Calculator-sub000/services"
)

type PreferenceController struct {
	prefs *services.PreferenceService
}

func NewPreferenceController(prefs *services.PreferenceService) *PreferenceController {
	return &PreferenceController{prefs: prefs}
}

// Get returns the user's preferences, creating defaults on first access.
func (ctl *PreferenceController) Get(c *gin.Context) {
	prefs, err := ctl.prefs.Get(c.Request.Context(), middlewares.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, prefs)
}

// Update applies a full or partial replace.
func (ctl *PreferenceController) Update(c *gin.Context) {
	var req services.PreferencesUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	prefs, err := ctl.prefs.Upsert(c.Request.Context(), middlewares.UserID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, prefs)
}
