package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
server:
  port: 9000
  mode: debug
log:
  level: debug
  format: console
render:
  width: 400
  height: 400
redis:
  enabled: true
  addr: "cache:6379"
  default_ttl: 1h
database:
  enabled: true
  host: db
  user: molgen
  password: secret
kafka:
  enabled: true
  brokers: ["k1:9092"]
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "molgen.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_File(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.Mode)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, 400, cfg.Render.Width)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, "cache:6379", cfg.Redis.Addr)
	assert.Equal(t, time.Hour, cfg.Redis.DefaultTTL)
	assert.Equal(t, "db", cfg.Database.Host)
	assert.Equal(t, DefaultDBPort, cfg.Database.Port)
	assert.Equal(t, DefaultKafkaTopic, cfg.Kafka.Topic)
	assert.False(t, cfg.MinIO.Enabled)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	t.Setenv("MOLGEN_SERVER_PORT", "9100")
	t.Setenv("MOLGEN_REDIS_ADDR", "other:6380")

	cfg, err := Load(writeConfig(t, sampleYAML))
	require.NoError(t, err)
	assert.Equal(t, 9100, cfg.Server.Port)
	assert.Equal(t, "other:6380", cfg.Redis.Addr)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("MOLGEN_LOG_LEVEL", "warn")
	t.Setenv("MOLGEN_MINIO_ENABLED", "true")
	t.Setenv("MOLGEN_MINIO_BUCKET", "pictures")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.True(t, cfg.MinIO.Enabled)
	assert.Equal(t, "pictures", cfg.MinIO.Bucket)
	assert.Equal(t, DefaultServerPort, cfg.Server.Port)
}

func TestLoad_EmptyPathUsesEnv(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultRenderWidth, cfg.Render.Width)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoad_InvalidValue(t *testing.T) {
	_, err := Load(writeConfig(t, "log:\n  level: loud\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestWatch_MissingFile(t *testing.T) {
	err := Watch(filepath.Join(t.TempDir(), "missing.yaml"), func(*Config) {}, nil)
	assert.Error(t, err)
}

func TestWatch_InvokesOnChange(t *testing.T) {
	path := writeConfig(t, sampleYAML)
	changed := make(chan *Config, 4)
	require.NoError(t, Watch(path, func(c *Config) { changed <- c }, nil))

	updated := sampleYAML + "\nmetrics:\n  namespace: edited\n"
	require.NoError(t, os.WriteFile(path, []byte(updated), 0o600))

	select {
	case cfg := <-changed:
		assert.Equal(t, "edited", cfg.Metrics.Namespace)
	case <-time.After(5 * time.Second):
		t.Skip("file watcher did not fire on this platform")
	}
}

//Personal.AI order the ending
