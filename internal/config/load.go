package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// ErrSchedulerOrdering is returned when the configured need scores do not
// keep failed > unseen > mastered.
var ErrSchedulerOrdering = errors.New("scheduler scores must satisfy failed > unseen > mastered")

// Load reads configuration from environment variables and an optional config
// file. Environment variables take precedence over values from the config
// file; both override the defaults.
//
// Environment variables use the ENGINE_ prefix with underscores for nesting,
// e.g. ENGINE_SERVER_PORT, ENGINE_DATABASE_URL. The optional config file is
// config.yaml in the working directory.
//
// Returns a populated Config struct or an error if loading or validation
// fails.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine; everything can come from env.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix("ENGINE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	// Registered empty so viper treats the key as known and the env
	// override reaches Unmarshal.
	v.SetDefault("database.url", "")
	v.SetDefault("catalog.path", "")
	v.SetDefault("session.size", 5)
	v.SetDefault("session.completion_bonus", 50)
	v.SetDefault("session.starting_score", 600)
	v.SetDefault("scheduler.failed_score", 20)
	v.SetDefault("scheduler.unseen_score", 10)
	v.SetDefault("scheduler.mastered_score", 1)
}

func validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	s := cfg.Scheduler
	if s.FailedScore <= s.UnseenScore || s.UnseenScore <= s.MasteredScore {
		return fmt.Errorf("%w: failed=%d unseen=%d mastered=%d",
			ErrSchedulerOrdering, s.FailedScore, s.UnseenScore, s.MasteredScore)
	}

	return nil
}
