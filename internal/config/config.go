package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	LLM      LLMConfig      `mapstructure:"llm"      validate:"required"`
	Pipeline PipelineConfig `mapstructure:"pipeline" validate:"required"`
	Cache    CacheConfig    `mapstructure:"cache"    validate:"required"`
	Cleanup  CleanupConfig  `mapstructure:"cleanup"  validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// LLMConfig contains all LLM integration related settings.
type LLMConfig struct {
	GeminiAPIKey string `mapstructure:"gemini_api_key" validate:"required"`
	ModelName    string `mapstructure:"model_name"     validate:"required"`
	// BaseURL overrides the Gemini API endpoint; tests point it at a local
	// server. Empty means the public endpoint.
	BaseURL               string `mapstructure:"base_url"                validate:"omitempty,url"`
	RequestTimeoutSeconds int    `mapstructure:"request_timeout_seconds" validate:"required,gt=0"`
	MaxConcurrentRequests int    `mapstructure:"max_concurrent_requests" validate:"required,gt=0"`
}

// RequestTimeout returns the per-request timeout as a duration.
func (c LLMConfig) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// PipelineConfig contains the chunk-processing settings.
type PipelineConfig struct {
	ChunkSize int `mapstructure:"chunk_size" validate:"required,gt=0"`
}

// CacheConfig contains the content cache settings.
type CacheConfig struct {
	FilePath string `mapstructure:"file_path" validate:"required"`
}

// CleanupConfig contains the periodic cleanup job settings.
type CleanupConfig struct {
	Enabled         bool   `mapstructure:"enabled"`
	IntervalMinutes int    `mapstructure:"interval_minutes" validate:"required,gte=1"`
	UploadDir       string `mapstructure:"upload_dir"       validate:"required"`
}

// Interval returns the cleanup interval as a duration.
func (c CleanupConfig) Interval() time.Duration {
	return time.Duration(c.IntervalMinutes) * time.Minute
}
