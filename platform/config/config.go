// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// DatabaseConfig provides database connection settings.
type DatabaseConfig interface {
	GetDatabaseURL() string
}

// RedisConfig provides Redis settings for the job queue.
type RedisConfig interface {
	GetRedisURL() string
}

// SchedulerConfig provides settings for the asynq scheduler.
type SchedulerConfig interface {
	RedisConfig
	GetRedisTLSInsecure() bool
	GetAsynqQueueName() string
	GetAsynqConcurrency() int
}

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetCORSAllowCreds() bool
}

// AuthConfig provides settings for Google bearer token verification.
type AuthConfig interface {
	GetUserinfoEndpoint() string
	GetUserinfoTimeout() time.Duration
	GetTokenCacheTTL() time.Duration
}

// ModelConfig provides settings for the Gemini model.
type ModelConfig interface {
	GetGeminiAPIKey() string
	GetGeminiModel() string
	IsModelEnabled() bool
}

// SearchConfig provides settings for the Programmable Search connector.
type SearchConfig interface {
	GetSearchAPIKey() string
	GetSearchEngineID() string
	IsSearchEnabled() bool
}

// FactCheckConfig provides settings for the Fact Check Tools connector.
type FactCheckConfig interface {
	GetFactCheckAPIKey() string
	IsFactCheckEnabled() bool
}

// TranslateConfig provides settings for the Cloud Translation connector.
type TranslateConfig interface {
	GetTranslateAPIKey() string
	IsTranslateEnabled() bool
}

// MinIOConfig provides settings for MinIO S3-compatible storage.
type MinIOConfig interface {
	GetMinIOEndpoint() string
	GetMinIOAccessKey() string
	GetMinIOSecretKey() string
	GetMinIOUseSSL() bool
	GetMinioBucketMediaUploads() string
	IsMinIOEnabled() bool
}

// AnalysisConfig provides settings for the text analysis pipeline.
type AnalysisConfig interface {
	GetAnalysisCacheTTL() time.Duration
	GetArticleFetchTimeout() time.Duration
	GetArticleMaxBytes() int64
}

// MediaConfig provides settings for the media analysis pipeline.
type MediaConfig interface {
	GetMediaMaxBytes() int64
	GetMediaFetchTimeout() time.Duration
}

// MaintenanceConfig provides settings for background maintenance jobs.
type MaintenanceConfig interface {
	GetCacheCleanupInterval() time.Duration
	GetCacheRetention() time.Duration
	GetVerdictSeedPath() string
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env                  string
	HTTPAddr             string
	DatabaseURL          string
	RedisURL             string
	RedisTLSInsecure     bool
	AsynqQueueName       string
	AsynqConcurrency     int
	CORSAllowAll         bool
	CORSOrigins          []string
	CORSAllowCreds       bool
	UserinfoEndpoint     string
	UserinfoTimeout      time.Duration
	TokenCacheTTL        time.Duration
	GeminiAPIKey         string
	GeminiModel          string
	SearchAPIKey         string
	SearchEngineID       string
	FactCheckAPIKey      string
	TranslateAPIKey      string
	MinIOEndpoint        string
	MinIOAccessKey       string
	MinIOSecretKey       string
	MinIOUseSSL          bool
	MinioBucketMedia     string
	AnalysisCacheTTL     time.Duration
	ArticleFetchTimeout  time.Duration
	ArticleMaxBytes      int64
	MediaMaxBytes        int64
	MediaFetchTimeout    time.Duration
	CacheCleanupInterval time.Duration
	CacheRetention       time.Duration
	VerdictSeedPath      string
}

// =============================================================================
// Interface Implementations
// =============================================================================

// DatabaseConfig implementation
func (c *Config) GetDatabaseURL() string { return c.DatabaseURL }

// RedisConfig implementation
func (c *Config) GetRedisURL() string { return c.RedisURL }

// SchedulerConfig implementation
func (c *Config) GetRedisTLSInsecure() bool  { return c.RedisTLSInsecure }
func (c *Config) GetAsynqQueueName() string  { return c.AsynqQueueName }
func (c *Config) GetAsynqConcurrency() int   { return c.AsynqConcurrency }

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string      { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool    { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }
func (c *Config) GetCORSAllowCreds() bool  { return c.CORSAllowCreds }

// AuthConfig implementation
func (c *Config) GetUserinfoEndpoint() string      { return c.UserinfoEndpoint }
func (c *Config) GetUserinfoTimeout() time.Duration { return c.UserinfoTimeout }
func (c *Config) GetTokenCacheTTL() time.Duration   { return c.TokenCacheTTL }

// ModelConfig implementation
func (c *Config) GetGeminiAPIKey() string { return c.GeminiAPIKey }
func (c *Config) GetGeminiModel() string  { return c.GeminiModel }
func (c *Config) IsModelEnabled() bool    { return c.GeminiAPIKey != "" }

// SearchConfig implementation
func (c *Config) GetSearchAPIKey() string    { return c.SearchAPIKey }
func (c *Config) GetSearchEngineID() string  { return c.SearchEngineID }
func (c *Config) IsSearchEnabled() bool {
	return c.SearchAPIKey != "" && c.SearchEngineID != ""
}

// FactCheckConfig implementation
func (c *Config) GetFactCheckAPIKey() string { return c.FactCheckAPIKey }
func (c *Config) IsFactCheckEnabled() bool   { return c.FactCheckAPIKey != "" }

// TranslateConfig implementation
func (c *Config) GetTranslateAPIKey() string { return c.TranslateAPIKey }
func (c *Config) IsTranslateEnabled() bool   { return c.TranslateAPIKey != "" }

// MinIOConfig implementation
func (c *Config) GetMinIOEndpoint() string         { return c.MinIOEndpoint }
func (c *Config) GetMinIOAccessKey() string        { return c.MinIOAccessKey }
func (c *Config) GetMinIOSecretKey() string        { return c.MinIOSecretKey }
func (c *Config) GetMinIOUseSSL() bool             { return c.MinIOUseSSL }
func (c *Config) GetMinioBucketMediaUploads() string { return c.MinioBucketMedia }
func (c *Config) IsMinIOEnabled() bool             { return c.MinIOEndpoint != "" }

// AnalysisConfig implementation
func (c *Config) GetAnalysisCacheTTL() time.Duration    { return c.AnalysisCacheTTL }
func (c *Config) GetArticleFetchTimeout() time.Duration { return c.ArticleFetchTimeout }
func (c *Config) GetArticleMaxBytes() int64             { return c.ArticleMaxBytes }

// MediaConfig implementation
func (c *Config) GetMediaMaxBytes() int64             { return c.MediaMaxBytes }
func (c *Config) GetMediaFetchTimeout() time.Duration { return c.MediaFetchTimeout }

// MaintenanceConfig implementation
func (c *Config) GetCacheCleanupInterval() time.Duration { return c.CacheCleanupInterval }
func (c *Config) GetCacheRetention() time.Duration       { return c.CacheRetention }
func (c *Config) GetVerdictSeedPath() string             { return c.VerdictSeedPath }

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "*"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	cfg := &Config{
		Env:                  getEnv("APP_ENV", "development"),
		HTTPAddr:             getEnv("HTTP_ADDR", ":8080"),
		DatabaseURL:          getEnv("DATABASE_URL", ""),
		RedisURL:             getEnv("REDIS_URL", "redis://localhost:6379/0"),
		RedisTLSInsecure:     strings.EqualFold(getEnv("REDIS_TLS_INSECURE", "false"), "true"),
		AsynqQueueName:       getEnv("ASYNQ_QUEUE", "default"),
		AsynqConcurrency:     int(mustInt64(getEnv("ASYNQ_CONCURRENCY", "10"))),
		CORSAllowAll:         corsAllowAll,
		CORSOrigins:          corsOrigins,
		CORSAllowCreds:       strings.EqualFold(getEnv("CORS_ALLOW_CREDENTIALS", "false"), "true"),
		UserinfoEndpoint:     getEnv("GOOGLE_USERINFO_ENDPOINT", "https://www.googleapis.com/oauth2/v3/userinfo"),
		UserinfoTimeout:      mustDuration(getEnv("GOOGLE_USERINFO_TIMEOUT", "10s")),
		TokenCacheTTL:        mustDuration(getEnv("TOKEN_CACHE_TTL", "5m")),
		GeminiAPIKey:         getEnv("GEMINI_API_KEY", ""),
		GeminiModel:          getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		SearchAPIKey:         getEnv("SEARCH_API_KEY", ""),
		SearchEngineID:       getEnv("SEARCH_ENGINE_ID", ""),
		FactCheckAPIKey:      getEnv("FACTCHECK_API_KEY", ""),
		TranslateAPIKey:      getEnv("TRANSLATE_API_KEY", ""),
		MinIOEndpoint:        getEnv("MINIO_ENDPOINT", ""),
		MinIOAccessKey:       getEnv("MINIO_ACCESS_KEY", ""),
		MinIOSecretKey:       getEnv("MINIO_SECRET_KEY", ""),
		MinIOUseSSL:          strings.EqualFold(getEnv("MINIO_USE_SSL", "false"), "true"),
		MinioBucketMedia:     getEnv("MINIO_BUCKET_MEDIA_UPLOADS", "media-uploads"),
		AnalysisCacheTTL:     mustDuration(getEnv("ANALYSIS_CACHE_TTL", "24h")),
		ArticleFetchTimeout:  mustDuration(getEnv("ARTICLE_FETCH_TIMEOUT", "20s")),
		ArticleMaxBytes:      mustInt64(getEnv("ARTICLE_MAX_BYTES", "2097152")),
		MediaMaxBytes:        mustInt64(getEnv("MEDIA_MAX_BYTES", "26214400")),
		MediaFetchTimeout:    mustDuration(getEnv("MEDIA_FETCH_TIMEOUT", "30s")),
		CacheCleanupInterval: mustDuration(getEnv("CACHE_CLEANUP_INTERVAL", "1h")),
		CacheRetention:       mustDuration(getEnv("CACHE_RETENTION", "720h")),
		VerdictSeedPath:      getEnv("VERDICT_SEED_PATH", ""),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}
	if cfg.AnalysisCacheTTL <= 0 {
		return nil, fmt.Errorf("ANALYSIS_CACHE_TTL must be a positive duration")
	}
	if cfg.CacheRetention < cfg.AnalysisCacheTTL {
		return nil, fmt.Errorf("CACHE_RETENTION must not be shorter than ANALYSIS_CACHE_TTL")
	}
	if cfg.CORSAllowAll && cfg.CORSAllowCreds {
		return nil, fmt.Errorf("CORS_ALLOW_CREDENTIALS cannot be true when CORS_ALLOW_ALL is true")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func mustDuration(value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0
	}
	return d
}

func mustInt64(value string) int64 {
	result, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0
	}
	return result
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}

func containsWildcard(values []string) bool {
	for _, value := range values {
		if value == "*" {
			return true
		}
	}
	return false
}
