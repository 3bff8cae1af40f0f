package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig(t *testing.T) *Config {
	t.Helper()
	cfg := DefaultConfig()
	cfg.DataDir = t.TempDir()
	return &cfg
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_DefaultsWhenFileMissing(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("REVIEWLIST_DATA_DIR", "/tmp/reviewlist-test")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, SourceFixture, cfg.Source.Kind)
	assert.Equal(t, 20, cfg.Paging.Limit)
	assert.InDelta(t, 2.5, cfg.Paging.ScreensAhead, 0)
	assert.Equal(t, 128, cfg.Images.CacheSize)
	assert.Equal(t, 6*time.Second, cfg.Images.Timeout)
	assert.Equal(t, ":8089", cfg.Server.Addr)
	assert.Equal(t, "/tmp/reviewlist-test", cfg.DataDir)
	assert.Equal(t, filepath.Join("/tmp/reviewlist-test", "reviewlist.log"), cfg.LogFile())
	require.NoError(t, cfg.Validate())
}

func TestLoad_YAMLThenEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := writeFile(t, dir, "config.yaml", `
source:
  kind: http
  url: https://reviews.example.com/v1/reviews
  latency_min: 0s
  latency_max: 0s
paging:
  limit: 10
images:
  timeout: 2s
data_dir: /var/lib/reviewlist
`)
	t.Setenv("REVIEWLIST_PAGING_LIMIT", "15")
	t.Setenv("REVIEWLIST_LOG_LEVEL", "debug")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, SourceHTTP, cfg.Source.Kind)
	assert.Equal(t, "https://reviews.example.com/v1/reviews", cfg.Source.URL)
	assert.Equal(t, time.Duration(0), cfg.Source.LatencyMax)
	assert.Equal(t, 15, cfg.Paging.Limit, "env overrides yaml")
	assert.Equal(t, 2*time.Second, cfg.Images.Timeout)
	assert.Equal(t, 128, cfg.Images.CacheSize, "unset yaml keys keep defaults")
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "/var/lib/reviewlist", cfg.DataDir)
	require.NoError(t, cfg.Validate())
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeFile(t, dir, ".env", "REVIEWLIST_SOURCE_KIND=file\nREVIEWLIST_SOURCE_PATH=reviews.json\n")
	t.Setenv("REVIEWLIST_SOURCE_KIND", "")
	require.NoError(t, os.Unsetenv("REVIEWLIST_SOURCE_KIND"))
	t.Setenv("REVIEWLIST_SOURCE_PATH", "explicit.json")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, SourceFile, cfg.Source.Kind)
	assert.Equal(t, "explicit.json", cfg.Source.Path, "process env wins over .env")
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := writeFile(t, dir, "config.yaml", "paging: [unterminated")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config file")
}

func TestLoad_InvalidEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("REVIEWLIST_PAGING_LIMIT", "twenty")
	t.Setenv("REVIEWLIST_IMAGES_TIMEOUT", "soon")

	_, err := Load("")

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Len(t, fieldErrs, 2)
	assert.Equal(t, "REVIEWLIST_PAGING_LIMIT", fieldErrs[0].Field)
	assert.Equal(t, "REVIEWLIST_IMAGES_TIMEOUT", fieldErrs[1].Field)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		fields []string
	}{
		{
			name:   "unknown source kind",
			mutate: func(c *Config) { c.Source.Kind = "ftp" },
			fields: []string{"source.kind"},
		},
		{
			name:   "file source without path",
			mutate: func(c *Config) { c.Source.Kind = SourceFile },
			fields: []string{"source.path"},
		},
		{
			name:   "http source without url",
			mutate: func(c *Config) { c.Source.Kind = SourceHTTP },
			fields: []string{"source.url"},
		},
		{
			name: "http source with relative url",
			mutate: func(c *Config) {
				c.Source.Kind = SourceHTTP
				c.Source.URL = "/v1/reviews"
			},
			fields: []string{"source.url"},
		},
		{
			name: "http source with ftp scheme",
			mutate: func(c *Config) {
				c.Source.Kind = SourceHTTP
				c.Source.URL = "ftp://example.com/reviews"
			},
			fields: []string{"source.url"},
		},
		{
			name: "latency range inverted",
			mutate: func(c *Config) {
				c.Source.LatencyMin = time.Second
				c.Source.LatencyMax = time.Millisecond
			},
			fields: []string{"source.latency_max"},
		},
		{
			name: "non-positive paging",
			mutate: func(c *Config) {
				c.Paging.Limit = 0
				c.Paging.ScreensAhead = -1
			},
			fields: []string{"paging.limit", "paging.screens_ahead"},
		},
		{
			name:   "page limit above api maximum",
			mutate: func(c *Config) { c.Paging.Limit = MaxPageLimit + 1 },
			fields: []string{"paging.limit"},
		},
		{
			name: "empty image cache",
			mutate: func(c *Config) {
				c.Images.CacheSize = 0
				c.Images.Timeout = 0
			},
			fields: []string{"images.cache_size", "images.timeout"},
		},
		{
			name:   "bad log level",
			mutate: func(c *Config) { c.Log.Level = "loud" },
			fields: []string{"log.level"},
		},
		{
			name:   "missing data dir",
			mutate: func(c *Config) { c.DataDir = "" },
			fields: []string{"data_dir"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig(t)
			tt.mutate(cfg)

			var fieldErrs criterio.FieldErrors
			require.ErrorAs(t, cfg.Validate(), &fieldErrs)

			got := make([]string, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				got = append(got, fe.Field)
			}
			assert.ElementsMatch(t, tt.fields, got)
		})
	}
}

func TestValidate_AcceptsDefaults(t *testing.T) {
	assert.NoError(t, validConfig(t).Validate())

	cfg := validConfig(t)
	cfg.Source.Kind = SourceHTTP
	cfg.Source.URL = "http://localhost:8089/v1/reviews"
	assert.NoError(t, cfg.Validate())
}
