package main

import (
	"context"

	"go.uber.org/zap"

	"github.com/chavdarovgospodin/AI-Calorie-Calculator-sub000/config"
	"github.com/chavdarovgospodin/AI-Calorie-Calculator-sub000/controllers"
	"github.com/chavdarovgospodin/AI-Calorie-Calculator-sub000/routes"
	"github.com/chavdarovgospodin/AI-Calorie-Calculator-sub000/services"
	"github.com/chavdarovgospodin/AI-Calorie-Calculator-sub000/utils"
)

func main() {
	cfg := config.Load()

	var logger *zap.Logger
	var err error
	if cfg.Env == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	log := logger.Sugar()

	db, err := config.OpenDB(cfg)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	ctx := context.Background()

	vision, err := services.NewRekognitionService(ctx, cfg.AWSRegion)
	if err != nil {
		log.Fatalf("rekognition init: %v", err)
	}
	var photos *utils.PhotoStore
	if cfg.S3Bucket != "" {
		photos, err = utils.NewPhotoStore(ctx, cfg.AWSRegion, cfg.S3Bucket)
		if err != nil {
			log.Fatalf("s3 init: %v", err)
		}
	} else {
		log.Warn("S3_BUCKET not set, meal photos will not be archived")
	}
	estimator := services.NewNutritionAIService(cfg.EstimatorEndpoint, cfg.EstimatorAPIKey, cfg.EstimatorModel)

	ledgerSvc := services.NewLedgerService(db, log)
	prefSvc := services.NewPreferenceService(db, log)
	activitySvc := services.NewActivityService(db, ledgerSvc, log)
	foodSvc := services.NewFoodService(db, ledgerSvc, log)
	summarySvc := services.NewSummaryService(db, prefSvc, log)

	r := routes.SetupRouter(db, []byte(cfg.JWTSecret), routes.Controllers{
		Activity:   controllers.NewActivityController(activitySvc),
		Food:       controllers.NewFoodController(foodSvc, estimator, vision, photos),
		Summary:    controllers.NewSummaryController(summarySvc),
		Preference: controllers.NewPreferenceController(prefSvc),
	})

	log.Infof("listening on %s", cfg.ListenAddr)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
