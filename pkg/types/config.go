// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// DirectoryConfig locates the JSON documents that make up a snapshot.
type DirectoryConfig struct {
	// DataDir is the directory holding the exported JSON documents.
	DataDir string `json:"data_dir" yaml:"data_dir" mapstructure:"data_dir" validate:"required"`

	// ExpertsFile is the experts list document (JSON array).
	ExpertsFile string `json:"experts_file" yaml:"experts_file" mapstructure:"experts_file" validate:"required"`

	// ExpertDetailsFile is the expert detail document (object keyed by id).
	ExpertDetailsFile string `json:"expert_details_file" yaml:"expert_details_file" mapstructure:"expert_details_file"`

	// SimilarFile maps an expert id to similar researcher ids.
	SimilarFile string `json:"similar_file" yaml:"similar_file" mapstructure:"similar_file"`

	// AgenciesFile is the agency node list (JSON array).
	AgenciesFile string `json:"agencies_file" yaml:"agencies_file" mapstructure:"agencies_file"`

	// OpportunitiesFile is the opportunity list document (JSON array).
	OpportunitiesFile string `json:"opportunities_file" yaml:"opportunities_file" mapstructure:"opportunities_file" validate:"required"`

	// OpportunityDetailsFile holds descriptions and URLs (array or object).
	OpportunityDetailsFile string `json:"opportunity_details_file" yaml:"opportunity_details_file" mapstructure:"opportunity_details_file"`

	// PageSize is the "load more" window size (default 24).
	PageSize int `json:"page_size" yaml:"page_size" mapstructure:"page_size" validate:"gte=1,lte=500"`
}

// ServerConfig holds settings for the HTTP API.
type ServerConfig struct {
	// Addr is the listen address (e.g. "127.0.0.1:8080").
	Addr string `json:"addr" yaml:"addr" mapstructure:"addr" validate:"required,hostname_port"`

	// AllowedOrigins lists CORS origins permitted to call the API.
	AllowedOrigins []string `json:"allowed_origins" yaml:"allowed_origins" mapstructure:"allowed_origins"`

	// Watch reloads the snapshot when files in DataDir change.
	Watch bool `json:"watch" yaml:"watch" mapstructure:"watch"`

	// ReloadDebounce coalesces bursts of file events into one reload.
	ReloadDebounce time.Duration `json:"reload_debounce" yaml:"reload_debounce" mapstructure:"reload_debounce"`
}

// ExportConfig holds settings for exporting the SQL database to JSON.
type ExportConfig struct {
	// Driver is the database/sql driver name (default "sqlite3").
	Driver string `json:"driver" yaml:"driver" mapstructure:"driver" validate:"required,oneof=sqlite3"`

	// DSN is the data source name. It may also be supplied through the
	// export-dsn secret.
	DSN string `json:"dsn,omitempty" yaml:"dsn,omitempty" mapstructure:"dsn"`

	// OutputDir receives the generated documents. Defaults to DataDir.
	OutputDir string `json:"output_dir" yaml:"output_dir" mapstructure:"output_dir"`
}

// LogConfig selects the logger flavor and level.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `json:"level" yaml:"level" mapstructure:"level" validate:"oneof=debug info warn error"`

	// Development enables human-readable console output.
	Development bool `json:"development" yaml:"development" mapstructure:"development"`
}

// Config groups all settings for the research-directory binary.
type Config struct {
	Directory DirectoryConfig `json:"directory" yaml:"directory" mapstructure:"directory"`
	Server    ServerConfig    `json:"server" yaml:"server" mapstructure:"server"`
	Export    ExportConfig    `json:"export" yaml:"export" mapstructure:"export"`
	Log       LogConfig       `json:"log" yaml:"log" mapstructure:"log"`
}
