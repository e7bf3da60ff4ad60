package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// Вспомогательные хелперы.
func writeFile(t *testing.T, dir, name, data string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))
	return path
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

// Полный корректный YAML с заданными значениями (не зависящими от дефолтов).
const sampleYAML = `
env: "prod"
api:
  base_url: "https://api.platform.local"
  timeout: "7s"
auth:
  refresh_threshold: "3m"
  refresh_interval: "20s"
offline:
  grace_period: "96h"
  poll_interval: "10s"
  probe_timeout: "2s"
  probe_path: "/livez"
store:
  path: "/tmp/platform-session.db"
`

// Минимально валидный YAML (только обязательные поля).
const minimalYAML = `
api:
  base_url: "https://api.minimal.local"
`

// Некорректный YAML — для проверки ошибок парсинга.
const brokenYAML = `
api:
  base_url: [unclosed
`

func TestLoad_WithExplicitPath_OK(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "config.yaml", sampleYAML)

	cfg, err := Load(cfgPath)
	require.NoError(t, err)

	require.Equal(t, "prod", cfg.Env)
	require.Equal(t, "https://api.platform.local", cfg.API.BaseURL)
	require.Equal(t, 7*time.Second, cfg.API.Timeout)

	require.Equal(t, 3*time.Minute, cfg.Auth.RefreshThreshold)
	require.Equal(t, 20*time.Second, cfg.Auth.RefreshInterval)

	require.Equal(t, 96*time.Hour, cfg.Offline.GracePeriod)
	require.Equal(t, 10*time.Second, cfg.Offline.PollInterval)
	require.Equal(t, 2*time.Second, cfg.Offline.ProbeTimeout)
	require.Equal(t, "/livez", cfg.Offline.ProbePath)

	require.Equal(t, "/tmp/platform-session.db", cfg.Store.Path)
}

func TestLoad_Defaults_FromMinimalYAML(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "minimal.yaml", minimalYAML)

	cfg, err := Load(cfgPath)
	require.NoError(t, err)

	require.Equal(t, "local", cfg.Env)
	require.Equal(t, 15*time.Second, cfg.API.Timeout)
	require.Equal(t, 5*time.Minute, cfg.Auth.RefreshThreshold)
	require.Equal(t, time.Minute, cfg.Auth.RefreshInterval)
	require.Equal(t, 168*time.Hour, cfg.Offline.GracePeriod)
	require.Equal(t, 30*time.Second, cfg.Offline.PollInterval)
	require.Equal(t, 5*time.Second, cfg.Offline.ProbeTimeout)
	require.Equal(t, "/healthz", cfg.Offline.ProbePath)
	require.Equal(t, "session.db", cfg.Store.Path)
}

func TestLoad_WithExplicitPath_FileDoesNotExist(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "stat failed")
}

func TestLoad_WithExplicitPath_BrokenYAML(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "broken.yaml", brokenYAML)

	_, err := Load(cfgPath)
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to read config")
}

func TestLoad_WithCONFIG_PATH_OK(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "from_env_path.yaml", minimalYAML)

	t.Setenv("CONFIG_PATH", cfgPath)

	cfg, err := Load("")
	require.NoError(t, err)

	require.Equal(t, "https://api.minimal.local", cfg.API.BaseURL)
}

func TestLoad_WithLocalYAML_OK(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	writeFile(t, ".", "local.yaml", sampleYAML)

	t.Setenv("CONFIG_PATH", "")
	cfg, err := Load("")
	require.NoError(t, err)

	require.Equal(t, "prod", cfg.Env)
	require.Equal(t, "https://api.platform.local", cfg.API.BaseURL)
}

func TestLoad_EnvOnly_NoBaseURL_ReturnsDescriptiveError(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("CONFIG_PATH", "")

	_, err := Load("")
	require.Error(t, err)

	require.Contains(t, err.Error(), "config not found: provide --config, CONFIG_PATH, local.yaml or env vars")
}

func TestLoad_EnvOnly_OK(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("API_BASE_URL", "https://api.env.local")
	t.Setenv("OFFLINE_GRACE_PERIOD", "24h")

	cfg, err := Load("")
	require.NoError(t, err)

	require.Equal(t, "https://api.env.local", cfg.API.BaseURL)
	require.Equal(t, 24*time.Hour, cfg.Offline.GracePeriod)
}

func TestMustLoad_OK(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "ok.yaml", minimalYAML)

	cfg := MustLoad(cfgPath)
	require.NotNil(t, cfg)
	require.Equal(t, "https://api.minimal.local", cfg.API.BaseURL)
}

func TestMustLoad_PanicsOnError(t *testing.T) {
	t.Parallel()

	require.Panics(t, func() {
		_ = MustLoad(filepath.Join(t.TempDir(), "nope.yaml"))
	})
}
