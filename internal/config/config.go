package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"    validate:"required"`
	Database  DatabaseConfig  `mapstructure:"database"  validate:"required"`
	Catalog   CatalogConfig   `mapstructure:"catalog"`
	Session   SessionConfig   `mapstructure:"session"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required,url"`
}

// CatalogConfig controls where the scenario catalog is loaded from.
// An empty path means the catalog embedded in the binary.
type CatalogConfig struct {
	Path string `mapstructure:"path"`
}

// SessionConfig contains the tunables of the session orchestrator.
type SessionConfig struct {
	Size            int `mapstructure:"size"             validate:"omitempty,gt=0"`
	CompletionBonus int `mapstructure:"completion_bonus" validate:"omitempty,gte=0"`
	StartingScore   int `mapstructure:"starting_score"   validate:"omitempty,gte=300,lte=850"`
}

// SchedulerConfig contains the need-score tunables of the priority scheduler.
// Failed must stay above unseen, and unseen above mastered, or review-first
// ordering breaks; Load rejects configurations that violate this.
type SchedulerConfig struct {
	FailedScore   int `mapstructure:"failed_score"   validate:"omitempty,gt=0"`
	UnseenScore   int `mapstructure:"unseen_score"   validate:"omitempty,gt=0"`
	MasteredScore int `mapstructure:"mastered_score" validate:"omitempty,gt=0"`
}
