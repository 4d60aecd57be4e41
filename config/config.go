package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/chavdarovgospodin/AI-Calorie-Calculator-sub000/models"
)

type Config struct {
	Env        string
	ListenAddr string

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string

	JWTSecret string

	EstimatorEndpoint string
	EstimatorAPIKey   string
	EstimatorModel    string

	AWSRegion string
	S3Bucket  string
}

// Load reads .env (if present) then the environment.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Env:        getEnv("APP_ENV", "development"),
		ListenAddr: getEnv("LISTEN_ADDR", ":8080"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     getEnv("DB_NAME", "calorie_calculator"),
		DBPort:     getEnv("DB_PORT", "5432"),

		JWTSecret: os.Getenv("JWT_SECRET"),

		EstimatorEndpoint: os.Getenv("ESTIMATOR_ENDPOINT"),
		EstimatorAPIKey:   os.Getenv("ESTIMATOR_API_KEY"),
		EstimatorModel:    getEnv("ESTIMATOR_MODEL", "gpt-4o-mini"),

		AWSRegion: getEnv("AWS_REGION", "eu-central-1"),
		S3Bucket:  os.Getenv("S3_BUCKET"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// OpenDB connects to postgres and migrates the schema. TranslateError
// is on so unique-constraint violations surface as gorm.ErrDuplicatedKey,
// which the reconciliation paths rely on.
func OpenDB(cfg *Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.DailyLog{},
		&models.FoodEntry{},
		&models.ActivityEntry{},
		&models.UserActivityPreferences{},
	); err != nil {
		return nil, fmt.Errorf("auto-migrate: %w", err)
	}
	return db, nil
}
