// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package config loads research-directory settings from viper (config
// file, RESEARCH_DIRECTORY_* environment variables, and bound flags) and
// validates them.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/pdiddy/research-directory/internal/ingest"
	"github.com/pdiddy/research-directory/pkg/types"
)

// EnvPrefix is the environment variable prefix for every setting.
const EnvPrefix = "RESEARCH_DIRECTORY"

// Name is the config file base name searched for in . and
// ~/.config/research-directory/.
const Name = "research-directory"

var validate = validator.New()

// SetDefaults registers default values for every setting on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("directory.data_dir", "data")
	v.SetDefault("directory.experts_file", ingest.DefaultExpertsFile)
	v.SetDefault("directory.expert_details_file", ingest.DefaultExpertDetailsFile)
	v.SetDefault("directory.similar_file", ingest.DefaultSimilarFile)
	v.SetDefault("directory.agencies_file", ingest.DefaultAgenciesFile)
	v.SetDefault("directory.opportunities_file", ingest.DefaultOpportunitiesFile)
	v.SetDefault("directory.opportunity_details_file", ingest.DefaultOpportunityDetailsFile)
	v.SetDefault("directory.page_size", ingest.DefaultPageSize)

	v.SetDefault("server.addr", "127.0.0.1:8080")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("server.watch", true)
	v.SetDefault("server.reload_debounce", 500*time.Millisecond)

	v.SetDefault("export.driver", "sqlite3")
	v.SetDefault("export.dsn", "")
	v.SetDefault("export.output_dir", "")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)
}

// Configure prepares v to read the config file and environment. An empty
// file searches the default locations. Nested keys map to environment
// variables with underscores, e.g. RESEARCH_DIRECTORY_DIRECTORY_DATA_DIR.
func Configure(v *viper.Viper, file, home string) {
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(Name)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home != "" {
			v.AddConfigPath(home + "/.config/" + Name)
		}
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)
}

// Read reads the config file if one exists. A missing file in the default
// locations is not an error; a missing explicit file is.
func Read(v *viper.Viper) error {
	explicit := v.ConfigFileUsed() != ""
	err := v.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if err == nil || (!explicit && errors.As(err, &notFound)) {
		return nil
	}
	return fmt.Errorf("reading config: %w", err)
}

// Load decodes v into a Config and validates it.
func Load(v *viper.Viper) (types.Config, error) {
	var cfg types.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decoding config: %w", err)
	}
	cfg.Directory = ingest.WithDefaults(cfg.Directory)
	if cfg.Export.OutputDir == "" {
		cfg.Export.OutputDir = cfg.Directory.DataDir
	}
	if err := Validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks cfg against its struct tags and reports every failing
// field in one error.
func Validate(cfg types.Config) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validating config: %w", err)
	}
	msgs := make([]string, len(verrs))
	for i, e := range verrs {
		msgs[i] = fieldMessage(e)
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

func fieldMessage(e validator.FieldError) string {
	field := strings.TrimPrefix(e.Namespace(), "Config.")
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, e.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, e.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", field, e.Param())
	case "hostname_port":
		return fmt.Sprintf("%s must be host:port", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
