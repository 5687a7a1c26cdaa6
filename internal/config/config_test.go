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
http:
  host: "127.0.0.1"
  port: "6000"
auth:
  access_secret: "access-secret"
  refresh_secret: "refresh-secret"
  access_token_ttl: "10m"
  refresh_token_ttl: "240h"
  issuer: "issuerX"
  audience: ["web", "mobile"]
db:
  db_url: "mongodb://localhost:27017/videohosting"
redis:
  redis_url: "redis://localhost:6379/0"
s3:
  endpoint: "localhost:9000"
  root_user: "minioadmin"
  root_password: "minioadmin"
  bucket: "media"
  use_ssl: false
  public_url: "http://localhost:9000"
media:
  image_max_size_bytes: 1048576
  image_content_types: ["image/png"]
  video_max_size_bytes: 10485760
  video_content_types: ["video/mp4"]
limits:
  default_page_size: 20
  max_page_size: 50
timeouts:
  service: "3s"
`

// Минимально валидный YAML (только обязательные поля).
const minimalYAML = `
auth:
  access_secret: "min-access"
  refresh_secret: "min-refresh"
db:
  db_url: "mongodb://localhost/min"
s3:
  endpoint: "localhost:9000"
  root_user: "u"
  root_password: "p"
  bucket: "media"
  public_url: "http://localhost:9000"
`

// Некорректный YAML — для проверки ошибок парсинга.
const brokenYAML = `
auth:
  access_secret: [unclosed
`

func TestLoad_WithExplicitPath_OK(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "config.yaml", sampleYAML)

	cfg, err := Load(cfgPath)
	require.NoError(t, err)

	require.Equal(t, "prod", cfg.Env)
	require.Equal(t, "127.0.0.1", cfg.HTTP.Host)
	require.Equal(t, "6000", cfg.HTTP.Port)
	require.Equal(t, "127.0.0.1:6000", cfg.HTTP.Addr())

	require.Equal(t, "access-secret", cfg.Auth.AccessSecret)
	require.Equal(t, "refresh-secret", cfg.Auth.RefreshSecret)
	require.Equal(t, 10*time.Minute, cfg.Auth.AccessTokenTTL)
	require.Equal(t, 240*time.Hour, cfg.Auth.RefreshTokenTTL)
	require.Equal(t, "issuerX", cfg.Auth.Issuer)
	require.ElementsMatch(t, []string{"web", "mobile"}, cfg.Auth.Audience)

	require.Equal(t, "mongodb://localhost:27017/videohosting", cfg.DB.URL)
	require.Equal(t, "redis://localhost:6379/0", cfg.Redis.URL)

	require.Equal(t, "localhost:9000", cfg.S3.Endpoint)
	require.Equal(t, "media", cfg.S3.Bucket)
	require.False(t, cfg.S3.UseSSL)
	require.Equal(t, "http://localhost:9000", cfg.S3.PublicURL)

	require.Equal(t, int64(1048576), cfg.Media.ImageMaxSizeBytes)
	require.Equal(t, []string{"image/png"}, cfg.Media.ImageContentTypes)
	require.Equal(t, int64(10485760), cfg.Media.VideoMaxSizeBytes)
	require.Equal(t, []string{"video/mp4"}, cfg.Media.VideoContentTypes)

	require.Equal(t, int64(20), cfg.Limits.DefaultPageSize)
	require.Equal(t, int64(50), cfg.Limits.MaxPageSize)
	require.Equal(t, 3*time.Second, cfg.Timeouts.Service)
}

func TestLoad_Defaults_FromMinimalYAML(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "min.yaml", minimalYAML)

	cfg, err := Load(cfgPath)
	require.NoError(t, err)

	require.Equal(t, "local", cfg.Env)
	require.Equal(t, 15*time.Minute, cfg.Auth.AccessTokenTTL)
	require.Equal(t, 720*time.Hour, cfg.Auth.RefreshTokenTTL)
	require.Equal(t, int64(10), cfg.Limits.DefaultPageSize)
	require.Equal(t, int64(100), cfg.Limits.MaxPageSize)
	require.Equal(t, 5*time.Second, cfg.Timeouts.Service)
	require.Empty(t, cfg.Redis.URL)
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

	require.Equal(t, "min-access", cfg.Auth.AccessSecret)
	require.Equal(t, "mongodb://localhost/min", cfg.DB.URL)
}

func TestLoad_WithLocalYAML_OK(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	writeFile(t, ".", "local.yaml", sampleYAML)

	t.Setenv("CONFIG_PATH", "")
	cfg, err := Load("")
	require.NoError(t, err)

	require.Equal(t, "prod", cfg.Env)
	require.Equal(t, "access-secret", cfg.Auth.AccessSecret)
}

func TestLoad_EnvOverridesYAML(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "cfg.yaml", minimalYAML)

	t.Setenv("ACCESS_TOKEN_SECRET", "from-env")

	cfg, err := Load(cfgPath)
	require.NoError(t, err)
	require.Equal(t, "from-env", cfg.Auth.AccessSecret)
	require.Equal(t, "min-refresh", cfg.Auth.RefreshSecret)
}

func TestLoad_EnvOnly_NoConfigInEnv_ReturnsDescriptiveError(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("CONFIG_PATH", "")

	_, err := Load("")
	require.Error(t, err)

	require.Contains(t, err.Error(), "config not found: provide --config, CONFIG_PATH, local.yaml or env vars")
}

func TestMustLoad_OK(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "ok.yaml", minimalYAML)

	cfg := MustLoad(cfgPath)
	require.NotNil(t, cfg)
	require.Equal(t, "min-access", cfg.Auth.AccessSecret)
	require.Equal(t, "mongodb://localhost/min", cfg.DB.URL)
}

func TestMustLoad_PanicsOnError(t *testing.T) {
	t.Parallel()

	require.Panics(t, func() {
		_ = MustLoad(filepath.Join(t.TempDir(), "nope.yaml"))
	})
}
