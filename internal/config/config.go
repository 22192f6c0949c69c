package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config - структура для хранения конфигурации приложения
type Config struct {
	DatabaseURL string
	HTTPPort    string
	LogLevel    string

	// Redis Config
	RedisAddr string
	RedisPass string
	RedisDB   int

	// Classifier sidecar Config
	ClassifierURL     string
	ClassifierTimeout time.Duration

	// Geofence Config
	MaxSpeedMPS         float64
	SpoofMinAccuracy    float64
	SpoofMaxAccuracy    float64
	PositionHistorySize int
	PositionHistoryTTL  time.Duration

	// Liveness Config
	EARThreshold      float64
	BlinkConsecFrames int
	LivenessWindow    time.Duration
	MinBlinks         int
	MaxBlinks         int
	MinLivenessFrames int

	// Identity Config
	MatchThreshold float64
	MatchEpsilon   float64

	// Challenge Config
	ChallengeMandatory  bool
	ChallengeThreshold  float64
	ChallengeTimeBudget time.Duration

	// Fraud Config
	TextureThreshold   float64
	MinFaceSizePx      int
	DarkBrightness     float64
	BrightBrightness   float64
	UniformLightingStd float64
	MinMotionAvg       float64
	LoopMotionStd      float64
	LoopMotionAvg      float64
	MinMotionFrames    int

	// Offline sync Config
	SyncInterval   time.Duration
	SyncMaxRetries int

	// Webhook Config
	WebhookURL        string
	WebhookSecret     string
	WebhookTimeout    time.Duration
	WebhookMaxRetries int
	WebhookBaseDelay  time.Duration

	// Stats Config
	StatsTimeWindowMinutes int

	// API Keys for authentication
	APIKeys []string
}

// LoadConfig загружает конфигурацию из переменных окружения и .env файла
func LoadConfig() (*Config, error) {
	// Загрузка переменных окружения из .env файла (если есть)
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("ошибка загрузки файла .env: %w", err)
	}

	cfg := &Config{
		DatabaseURL: os.Getenv("DATABASE_URL"),
		HTTPPort:    getEnv("HTTP_PORT", "8080"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		RedisAddr: getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPass: os.Getenv("REDIS_PASSWORD"),
		RedisDB:   getEnvAsInt("REDIS_DB", 0),

		ClassifierURL:     getEnv("CLASSIFIER_URL", "http://localhost:5000"),
		ClassifierTimeout: getEnvAsDuration("CLASSIFIER_TIMEOUT", 10*time.Second),

		MaxSpeedMPS:         getEnvAsFloat("GEOFENCE_MAX_SPEED_MPS", 50.0),
		SpoofMinAccuracy:    getEnvAsFloat("GEOFENCE_SPOOF_MIN_ACCURACY", 1.0),
		SpoofMaxAccuracy:    getEnvAsFloat("GEOFENCE_SPOOF_MAX_ACCURACY", 500.0),
		PositionHistorySize: getEnvAsInt("POSITION_HISTORY_SIZE", 10),
		PositionHistoryTTL:  getEnvAsDuration("POSITION_HISTORY_TTL", 24*time.Hour),

		EARThreshold:      getEnvAsFloat("LIVENESS_EAR_THRESHOLD", 0.25),
		BlinkConsecFrames: getEnvAsInt("LIVENESS_CONSECUTIVE_FRAMES", 3),
		LivenessWindow:    getEnvAsDuration("LIVENESS_WINDOW", 15*time.Second),
		MinBlinks:         getEnvAsInt("LIVENESS_MIN_BLINKS", 2),
		MaxBlinks:         getEnvAsInt("LIVENESS_MAX_BLINKS", 8),
		MinLivenessFrames: getEnvAsInt("LIVENESS_MIN_FRAMES", 10),

		MatchThreshold: getEnvAsFloat("IDENTITY_MATCH_THRESHOLD", 0.6),
		MatchEpsilon:   getEnvAsFloat("IDENTITY_MATCH_EPSILON", 1e-6),

		ChallengeMandatory:  getEnvAsBool("CHALLENGE_MANDATORY", false),
		ChallengeThreshold:  getEnvAsFloat("CHALLENGE_THRESHOLD", 0.7),
		ChallengeTimeBudget: getEnvAsDuration("CHALLENGE_TIME_BUDGET", 10*time.Second),

		TextureThreshold:   getEnvAsFloat("FRAUD_TEXTURE_THRESHOLD", 0.7),
		MinFaceSizePx:      getEnvAsInt("FRAUD_MIN_FACE_SIZE_PX", 120),
		DarkBrightness:     getEnvAsFloat("FRAUD_DARK_BRIGHTNESS", 30),
		BrightBrightness:   getEnvAsFloat("FRAUD_BRIGHT_BRIGHTNESS", 220),
		UniformLightingStd: getEnvAsFloat("FRAUD_UNIFORM_LIGHTING_STD", 15),
		MinMotionAvg:       getEnvAsFloat("FRAUD_MIN_MOTION_AVG", 2.0),
		LoopMotionStd:      getEnvAsFloat("FRAUD_LOOP_MOTION_STD", 0.5),
		LoopMotionAvg:      getEnvAsFloat("FRAUD_LOOP_MOTION_AVG", 5.0),
		MinMotionFrames:    getEnvAsInt("FRAUD_MIN_MOTION_FRAMES", 10),

		SyncInterval:   getEnvAsDuration("SYNC_INTERVAL", 30*time.Second),
		SyncMaxRetries: getEnvAsInt("SYNC_MAX_RETRIES", 5),

		WebhookURL:        os.Getenv("WEBHOOK_URL"),
		WebhookSecret:     os.Getenv("WEBHOOK_SECRET"),
		WebhookTimeout:    getEnvAsDuration("WEBHOOK_TIMEOUT", 5*time.Second),
		WebhookMaxRetries: getEnvAsInt("WEBHOOK_MAX_RETRIES", 3),
		WebhookBaseDelay:  getEnvAsDuration("WEBHOOK_BASE_DELAY", 1*time.Second),

		StatsTimeWindowMinutes: getEnvAsInt("STATS_TIME_WINDOW_MINUTES", 60),
	}

	// Загрузка API ключей
	apiKeysStr := os.Getenv("API_KEYS")
	if apiKeysStr != "" {
		cfg.APIKeys = strings.Split(apiKeysStr, ",")
		for i, key := range cfg.APIKeys {
			cfg.APIKeys[i] = strings.TrimSpace(key)
		}
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	return cfg, nil
}

// getEnv возвращает значение переменной окружения или значение по умолчанию
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt возвращает значение переменной окружения как int или значение по умолчанию
func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsFloat возвращает значение переменной окружения как float64 или значение по умолчанию
func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// getEnvAsBool возвращает значение переменной окружения как bool или значение по умолчанию
func getEnvAsBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvAsDuration возвращает значение переменной окружения как time.Duration или значение по умолчанию
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if durationValue, err := time.ParseDuration(value); err == nil {
			return durationValue
		}
	}
	return defaultValue
}
