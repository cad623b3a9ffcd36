package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault_IsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestLoad_YAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "liftplan.yaml", `
data_dir: /srv/liftplan
timezone: Asia/Singapore
logging:
  level: debug
  json: true
digest:
  cron: "30 6 * * *"
  horizon_days: 7
`)

	cfg, err := Load(path, filepath.Join(dir, "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "/srv/liftplan", cfg.DataDir)
	assert.Equal(t, "Asia/Singapore", cfg.Timezone)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Logging.JSON)
	assert.Equal(t, "30 6 * * *", cfg.Digest.Cron)
	assert.Equal(t, 7, cfg.Digest.HorizonDays)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "Asia/Singapore", loc.String())
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "liftplan.yaml", "data_dir: ./snapshots\n")

	cfg, err := Load(path, filepath.Join(dir, "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "./snapshots", cfg.DataDir)
	assert.Equal(t, Default().Digest, cfg.Digest)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoad_EnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "liftplan.yaml", "data_dir: ./from-file\n")

	t.Setenv("LIFTPLAN_DATA_DIR", "./from-env")
	t.Setenv("LIFTPLAN_LOG_LEVEL", "warn")
	t.Setenv("LIFTPLAN_LOG_JSON", "true")
	t.Setenv("LIFTPLAN_DIGEST_HORIZON_DAYS", "3")

	cfg, err := Load(path, filepath.Join(dir, "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "./from-env", cfg.DataDir)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.True(t, cfg.Logging.JSON)
	assert.Equal(t, 3, cfg.Digest.HorizonDays)
}

func TestLoad_DotEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "liftplan.yaml", "data_dir: ./from-file\n")
	envFile := writeFile(t, dir, ".env", "LIFTPLAN_TIMEZONE=Europe/London\n")

	// godotenv never overrides variables that are already set
	t.Setenv("LIFTPLAN_TIMEZONE", "")
	require.NoError(t, os.Unsetenv("LIFTPLAN_TIMEZONE"))

	cfg, err := Load(path, envFile)
	require.NoError(t, err)
	assert.Equal(t, "Europe/London", cfg.Timezone)
}

func TestLoad_ExplicitFileMustExist(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "nope.yaml"), filepath.Join(dir, "missing.env"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoad_InvalidEnvValues(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "liftplan.yaml", "data_dir: ./x\n")

	t.Setenv("LIFTPLAN_LOG_JSON", "sometimes")

	_, err := Load(path, filepath.Join(dir, "missing.env"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LIFTPLAN_LOG_JSON")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "empty_data_dir", mutate: func(c *Config) { c.DataDir = " " }, wantErr: "data_dir"},
		{name: "bad_timezone", mutate: func(c *Config) { c.Timezone = "Mars/Olympus" }, wantErr: "invalid timezone"},
		{name: "bad_level", mutate: func(c *Config) { c.Logging.Level = "chatty" }, wantErr: "logging.level"},
		{name: "empty_cron", mutate: func(c *Config) { c.Digest.Cron = "" }, wantErr: "digest.cron"},
		{name: "bad_cron", mutate: func(c *Config) { c.Digest.Cron = "every morning" }, wantErr: "invalid digest.cron"},
		{name: "negative_horizon", mutate: func(c *Config) { c.Digest.HorizonDays = -1 }, wantErr: "horizon_days"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
