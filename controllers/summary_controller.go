package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/chavdarovgospodin/AI-Calorie-Calculator-sub000/middlewares"
	"github.com/chavdarovgospodin/AI-Calorie-Calculator-sub000/services"
)

type SummaryController struct {
	summaries *services.SummaryService
}

func NewSummaryController(summaries *services.SummaryService) *SummaryController {
	return &SummaryController{summaries: summaries}
}

// Daily returns the dashboard view (?date=YYYY-MM-DD, default today).
func (ctl *SummaryController) Daily(c *gin.Context) {
	summary, err := ctl.summaries.Daily(c.Request.Context(), middlewares.UserID(c), c.Query("date"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// Weekly returns the 7 days ending at ?date (default today), ascending.
func (ctl *SummaryController) Weekly(c *gin.Context) {
	days, err := ctl.summaries.Weekly(c.Request.Context(), middlewares.UserID(c), c.Query("date"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"days": days})
}

// Monthly returns month totals (?year=&month=, default current month).
func (ctl *SummaryController) Monthly(c *gin.Context) {
	year, _ := strconv.Atoi(c.DefaultQuery("year", "0"))
	month, _ := strconv.Atoi(c.DefaultQuery("month", "0"))

	summary, err := ctl.summaries.Monthly(c.Request.Context(), middlewares.UserID(c), year, month)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
