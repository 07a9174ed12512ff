// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/research-directory/internal/ingest"
)

func TestLoadDefaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "data", cfg.Directory.DataDir)
	assert.Equal(t, ingest.DefaultOpportunitiesFile, cfg.Directory.OpportunitiesFile)
	assert.Equal(t, 24, cfg.Directory.PageSize)
	assert.Equal(t, "127.0.0.1:8080", cfg.Server.Addr)
	assert.Equal(t, 500*time.Millisecond, cfg.Server.ReloadDebounce)
	assert.Equal(t, "sqlite3", cfg.Export.Driver)
	assert.Equal(t, "data", cfg.Export.OutputDir, "output dir defaults to the data dir")
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "research-directory.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`
directory:
  data_dir: /srv/data
  page_size: 48
server:
  addr: ":9090"
  reload_debounce: 2s
log:
  level: debug
`), 0o644))
	t.Setenv("RESEARCH_DIRECTORY_LOG_LEVEL", "warn")

	v := viper.New()
	Configure(v, file, "")
	require.NoError(t, Read(v))

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "/srv/data", cfg.Directory.DataDir)
	assert.Equal(t, 48, cfg.Directory.PageSize)
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, 2*time.Second, cfg.Server.ReloadDebounce)
	assert.Equal(t, "warn", cfg.Log.Level, "environment overrides the file")
}

func TestReadMissingDefaultFileIsNotAnError(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { require.NoError(t, os.Chdir(wd)) })
	v := viper.New()
	Configure(v, "", "")
	assert.NoError(t, Read(v))
}

func TestReadMissingExplicitFile(t *testing.T) {
	v := viper.New()
	Configure(v, filepath.Join(t.TempDir(), "nope.yaml"), "")
	assert.Error(t, Read(v))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		set  map[string]any
		want string
	}{
		{"bad level", map[string]any{"log.level": "trace"}, "Log.Level must be one of: debug info warn error"},
		{"unsupported driver", map[string]any{"export.driver": "mysql"}, "Export.Driver must be one of: sqlite3"},
		{"page size too large", map[string]any{"directory.page_size": 1000}, "Directory.PageSize must be at most 500"},
		{"bad addr", map[string]any{"server.addr": "localhost"}, "Server.Addr must be host:port"},
		{"missing data dir", map[string]any{"directory.data_dir": ""}, "Directory.DataDir is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := viper.New()
			SetDefaults(v)
			for k, val := range tt.set {
				v.Set(k, val)
			}
			_, err := Load(v)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
