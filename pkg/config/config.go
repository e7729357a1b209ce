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

	Upstream UpstreamConfig
	Redis    RedisConfig
	JWT      JWTConfig
	CORS     CORSConfig
	Log      LogConfig
	Exam     ExamConfig
	AI       AIConfig
	Cache    CacheConfig
	Exports  ExportsConfig
}

// UpstreamConfig points the gateway at the education backend.
type UpstreamConfig struct {
	BaseURL     string
	Timeout     time.Duration
	AuthScheme  string
	MaxBodySize int64
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type JWTConfig struct {
	Secret   string
	Issuer   string
	Audience []string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// ExamConfig tunes the exam session controller.
type ExamConfig struct {
	MaxFileSizeBytes  int64
	AllowedExtensions []string
	TickInterval      time.Duration
}

// AIConfig governs the AI-assist request/parse flow.
type AIConfig struct {
	Enabled        bool
	CompletionPath string
	Timeout        time.Duration
	ResourceCount  int
}

// CacheConfig tunes redis-backed caching of upstream reads.
type CacheConfig struct {
	Enabled      bool
	PendingTTL   time.Duration
	DashboardTTL time.Duration
}

// ExportsConfig gates syllabus export downloads.
type ExportsConfig struct {
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

	cfg.Upstream = UpstreamConfig{
		BaseURL:     strings.TrimRight(v.GetString("UPSTREAM_BASE_URL"), "/"),
		Timeout:     parseDuration(v.GetString("UPSTREAM_TIMEOUT"), 15*time.Second),
		AuthScheme:  v.GetString("UPSTREAM_AUTH_SCHEME"),
		MaxBodySize: v.GetInt64("UPSTREAM_MAX_BODY_SIZE"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.JWT = JWTConfig{
		Secret:   v.GetString("JWT_SECRET"),
		Issuer:   v.GetString("JWT_ISSUER"),
		Audience: splitAndTrim(v.GetString("JWT_AUDIENCE")),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	maxAnswerSize := v.GetInt64("EXAM_MAX_FILE_SIZE")
	if maxAnswerSize <= 0 {
		maxAnswerSize = 25 * 1024 * 1024
	}
	cfg.Exam = ExamConfig{
		MaxFileSizeBytes:  maxAnswerSize,
		AllowedExtensions: splitAndTrim(v.GetString("EXAM_ALLOWED_EXTENSIONS")),
		TickInterval:      parseDuration(v.GetString("EXAM_TICK_INTERVAL"), time.Second),
	}

	cfg.AI = AIConfig{
		Enabled:        v.GetBool("ENABLE_AI_ASSIST"),
		CompletionPath: v.GetString("AI_COMPLETION_PATH"),
		Timeout:        parseDuration(v.GetString("AI_TIMEOUT"), 30*time.Second),
		ResourceCount:  v.GetInt("AI_RESOURCE_COUNT"),
	}

	cfg.Cache = CacheConfig{
		Enabled:      v.GetBool("ENABLE_CACHE"),
		PendingTTL:   parseDuration(v.GetString("CACHE_PENDING_TTL"), 30*time.Second),
		DashboardTTL: parseDuration(v.GetString("CACHE_DASHBOARD_TTL"), 5*time.Minute),
	}

	cfg.Exports = ExportsConfig{
		Enabled: v.GetBool("ENABLE_EXPORTS"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("UPSTREAM_BASE_URL", "http://localhost:8000/api")
	v.SetDefault("UPSTREAM_TIMEOUT", "15s")
	v.SetDefault("UPSTREAM_AUTH_SCHEME", "Token")
	v.SetDefault("UPSTREAM_MAX_BODY_SIZE", 4*1024*1024)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("JWT_SECRET", "dev_secret")
	v.SetDefault("JWT_ISSUER", "")
	v.SetDefault("JWT_AUDIENCE", "")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("EXAM_MAX_FILE_SIZE", 25*1024*1024)
	v.SetDefault("EXAM_ALLOWED_EXTENSIONS", "pdf,doc,docx,txt")
	v.SetDefault("EXAM_TICK_INTERVAL", "1s")

	v.SetDefault("ENABLE_AI_ASSIST", true)
	v.SetDefault("AI_COMPLETION_PATH", "/students/ai/complete/")
	v.SetDefault("AI_TIMEOUT", "30s")
	v.SetDefault("AI_RESOURCE_COUNT", 5)

	v.SetDefault("ENABLE_CACHE", false)
	v.SetDefault("CACHE_PENDING_TTL", "30s")
	v.SetDefault("CACHE_DASHBOARD_TTL", "5m")

	v.SetDefault("ENABLE_EXPORTS", true)
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
