package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig
	JWT      JWTConfig
	MongoDB  MongoDBConfig
	S3       S3Config
	Redis    RedisConfig
	Email    EmailConfig
	OpenAI   OpenAIConfig
	Retry    RetryConfig
	Pipeline PipelineConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port string
	Host string
}

// JWTConfig holds JWT-related configuration
type JWTConfig struct {
	Secret string
	TTL    time.Duration
}

// MongoDBConfig holds MongoDB connection details
type MongoDBConfig struct {
	URI        string
	Host       string
	Port       string
	Username   string
	Password   string
	AuthSource string
	Database   string
	Collection string
}

// S3Config holds artifact storage connection details
type S3Config struct {
	Bucket          string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Endpoint        string // Optional: for S3-compatible services like MinIO
}

// RedisConfig holds Redis connection details for the sweep lock
type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

// EmailConfig holds SendGrid notification settings
type EmailConfig struct {
	APIKey    string
	FromEmail string
	FromName  string
}

// OpenAIConfig holds the optional AI interpretation settings
type OpenAIConfig struct {
	APIKey string
	Model  string
}

// RetryConfig holds the transient-failure retry policy
type RetryConfig struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}

// PipelineConfig holds report pipeline timing parameters
type PipelineConfig struct {
	NumerologyDelay  time.Duration
	PalmistryDelay   time.Duration
	SweepSchedule    string // cron spec with seconds
	SweepBatchSize   int
	SweepTimeout     time.Duration
	ImmediateTimeout time.Duration
	KundaliSchema    string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if file doesn't exist)
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
			TTL:    getEnvDuration("JWT_TTL", 24*time.Hour),
		},
		MongoDB: MongoDBConfig{
			URI:        getEnv("MONGODB_URI", ""),
			Host:       getEnv("MONGODB_HOST", "localhost"),
			Port:       getEnv("MONGODB_PORT", "27017"),
			Username:   getEnv("MONGODB_USERNAME", ""),
			Password:   getEnv("MONGODB_PASSWORD", ""),
			AuthSource: getEnv("MONGODB_AUTH_SOURCE", "admin"),
			Database:   getEnv("MONGODB_DATABASE", "astro"),
			Collection: getEnv("MONGODB_COLLECTION", "reports"),
		},
		S3: S3Config{
			Bucket:          getEnv("S3_BUCKET", ""),
			Region:          getEnv("S3_REGION", "us-east-1"),
			AccessKeyID:     getEnv("S3_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("S3_SECRET_ACCESS_KEY", ""),
			Endpoint:        getEnv("S3_ENDPOINT", ""), // Optional for MinIO/custom S3
		},
		Redis: RedisConfig{
			Address:  getEnv("REDIS_ADDRESS", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Email: EmailConfig{
			APIKey:    getEnv("SENDGRID_API_KEY", ""),
			FromEmail: getEnv("SENDGRID_FROM_EMAIL", "reports@example.com"),
			FromName:  getEnv("SENDGRID_FROM_NAME", "Astro Reports"),
		},
		OpenAI: OpenAIConfig{
			APIKey: getEnv("OPENAI_API_KEY", ""),
			Model:  getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		},
		Retry: RetryConfig{
			MaxAttempts:  getEnvInt("RETRY_MAX_ATTEMPTS", 3),
			InitialDelay: getEnvDuration("RETRY_INITIAL_DELAY", time.Second),
			MaxDelay:     getEnvDuration("RETRY_MAX_DELAY", 10*time.Second),
			Multiplier:   getEnvFloat("RETRY_MULTIPLIER", 2),
		},
		Pipeline: PipelineConfig{
			NumerologyDelay:  getEnvDuration("NUMEROLOGY_DELAY", 12*time.Hour),
			PalmistryDelay:   getEnvDuration("PALMISTRY_DELAY", 24*time.Hour),
			SweepSchedule:    getEnv("SWEEP_SCHEDULE", "0 0 * * * *"), // hourly, with seconds
			SweepBatchSize:   getEnvInt("SWEEP_BATCH_SIZE", 50),
			SweepTimeout:     getEnvDuration("SWEEP_TIMEOUT", 9*time.Minute),
			ImmediateTimeout: getEnvDuration("IMMEDIATE_TIMEOUT", 5*time.Minute),
			KundaliSchema:    getEnv("KUNDALI_SCHEMA_PATH", "schemas/kundali_result.schema.json"),
		},
	}

	if cfg.S3.Bucket == "" {
		return nil, fmt.Errorf("S3_BUCKET is required")
	}

	return cfg, nil
}

// getEnv returns the environment variable value or a default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
