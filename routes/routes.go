package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/chavdarovgospodin/AI-Calorie-Calculator-sub000/controllers"
	"github.com/chavdarovgospodin/AI-Calorie-Calculator-sub000/middlewares"
)

type Controllers struct {
	Activity   *controllers.ActivityController
	Food       *controllers.FoodController
	Summary    *controllers.SummaryController
	Preference *controllers.PreferenceController
}

func SetupRouter(db *gorm.DB, jwtSecret []byte, ctl Controllers) *gin.Engine {
	r := gin.Default()

	api := r.Group("/api/v1")
	api.Use(middlewares.AuthMiddleware(jwtSecret, db))
	{
		activity := api.Group("/activity")
		{
			activity.POST("/sync", ctl.Activity.Sync)
			activity.POST("/manual", ctl.Activity.AddManual)
			activity.POST("/estimate", ctl.Activity.Estimate)
			activity.GET("", ctl.Activity.List)
			activity.DELETE("/:id", ctl.Activity.Delete)
		}

		food := api.Group("/food")
		{
			food.POST("", ctl.Food.Save)
			food.POST("/analyze", ctl.Food.Analyze)
			food.POST("/photo", ctl.Food.AnalyzePhoto)
			food.GET("", ctl.Food.List)
			food.DELETE("/:id", ctl.Food.Delete)
			food.PATCH("/:id/notes", ctl.Food.UpdateNotes)
		}

		summary := api.Group("/summary")
		{
			summary.GET("/daily", ctl.Summary.Daily)
			summary.GET("/weekly", ctl.Summary.Weekly)
			summary.GET("/monthly", ctl.Summary.Monthly)
		}

		api.GET("/preferences", ctl.Preference.Get)
		api.PUT("/preferences", ctl.Preference.Update)
	}

	return r
}
