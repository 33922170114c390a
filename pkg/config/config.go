package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Database    DatabaseConfig
	Redis       RedisConfig
	JWT         JWTConfig
	CORS        CORSConfig
	Log         LogConfig
	Classroom   ClassroomConfig
	Import      ImportConfig
	Performance PerformanceConfig
	Resources   ResourcesConfig
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type JWTConfig struct {
	Secret string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// ClassroomConfig points the import pipeline at the external classroom API.
// Credentials arrive per-request as bearer tokens; nothing is stored here.
type ClassroomConfig struct {
	BaseURL string
	Timeout time.Duration
}

// ImportConfig tunes score reconciliation runs.
type ImportConfig struct {
	DefaultMaxScore float64
	MaxBatchSize    int
}

// PerformanceConfig governs performance summary exposure and cache tuning.
type PerformanceConfig struct {
	CacheTTL    time.Duration
	WeeklyLimit int
}

// ResourcesConfig gates the learning-resource harvest intake.
type ResourcesConfig struct {
	Enabled bool
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.JWT = JWTConfig{Secret: v.GetString("JWT_SECRET")}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Classroom = ClassroomConfig{
		BaseURL: v.GetString("CLASSROOM_BASE_URL"),
		Timeout: parseDuration(v.GetString("CLASSROOM_TIMEOUT"), 30*time.Second),
	}

	cfg.Import = ImportConfig{
		DefaultMaxScore: v.GetFloat64("IMPORT_DEFAULT_MAX_SCORE"),
		MaxBatchSize:    v.GetInt("IMPORT_MAX_BATCH_SIZE"),
	}

	cfg.Performance = PerformanceConfig{
		CacheTTL:    parseDuration(v.GetString("PERFORMANCE_CACHE_TTL"), 5*time.Minute),
		WeeklyLimit: v.GetInt("PERFORMANCE_WEEKLY_LIMIT"),
	}

	cfg.Resources = ResourcesConfig{
		Enabled: v.GetBool("ENABLE_RESOURCE_HARVEST"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "atam_portal")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("JWT_SECRET", "dev_secret")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("CLASSROOM_BASE_URL", "https://classroom.googleapis.com/v1")
	v.SetDefault("CLASSROOM_TIMEOUT", "30s")

	v.SetDefault("IMPORT_DEFAULT_MAX_SCORE", 100)
	v.SetDefault("IMPORT_MAX_BATCH_SIZE", 500)

	v.SetDefault("PERFORMANCE_CACHE_TTL", "5m")
	v.SetDefault("PERFORMANCE_WEEKLY_LIMIT", 10)

	v.SetDefault("ENABLE_RESOURCE_HARVEST", false)
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
