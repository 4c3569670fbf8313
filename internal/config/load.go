package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load reads configuration from environment variables and an optional
// config file. Environment variables (prefixed FLASHCARD_, with dots
// replaced by underscores, e.g. FLASHCARD_LLM_GEMINI_API_KEY) take
// precedence over values from the config file. Returns a populated Config
// or an error if loading or validation fails.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("FLASHCARD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine; env vars and defaults carry the
		// configuration. Anything else is a real loading failure.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	// Empty defaults register the keys with viper so AutomaticEnv can
	// populate them during Unmarshal.
	v.SetDefault("llm.gemini_api_key", "")
	v.SetDefault("llm.base_url", "")
	v.SetDefault("llm.model_name", "gemini-2.0-flash")
	v.SetDefault("llm.request_timeout_seconds", 60)
	v.SetDefault("llm.max_concurrent_requests", 3)
	v.SetDefault("pipeline.chunk_size", 3000)
	v.SetDefault("cache.file_path", "flashcard_cache.json")
	v.SetDefault("cleanup.enabled", true)
	v.SetDefault("cleanup.interval_minutes", 30)
	v.SetDefault("cleanup.upload_dir", "uploads")
}
