package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/spirulina/internal/blob"
	"github.com/alexanderramin/spirulina/internal/db"
	"github.com/alexanderramin/spirulina/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaults(t *testing.T) {
	cfg := Defaults("/home/ana")
	assert.Equal(t, StorageSQLite, cfg.Storage.Driver)
	assert.Equal(t, filepath.Join("/home/ana", ".spirulina", "spirulina.db"), cfg.Storage.Path)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, llm.ProviderGemini, cfg.LLM.Provider)
	assert.NoError(t, cfg.Validate())

	assert.Equal(t, filepath.Join(".", "spirulina.db"), Defaults("").Storage.Path)
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := writeConfig(t, `
storage:
  driver: s3
  s3:
    bucket: cultures
    region: eu-west-1
    path_style: true
llm:
  provider: ollama
  temperature: 0.3
server:
  addr: ":9090"
log:
  level: debug
`)
	t.Setenv("HOME", t.TempDir())
	t.Setenv("SPIRULINA_CONFIG", path)
	t.Setenv("SPIRULINA_S3_PREFIX", "farm/")
	t.Setenv("SPIRULINA_LLM_MODEL", "mistral")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, StorageS3, cfg.Storage.Driver)
	assert.Equal(t, "cultures", cfg.Storage.S3.Bucket)
	assert.True(t, cfg.Storage.S3.PathStyle)
	assert.Equal(t, "farm/", cfg.Storage.S3.Prefix)
	assert.Equal(t, llm.ProviderOllama, cfg.LLM.Provider)
	assert.Equal(t, "http://localhost:11434", cfg.LLM.Endpoint, "provider switch picks its endpoint")
	assert.Equal(t, "mistral", cfg.LLM.Model, "env wins over file")
	assert.Equal(t, 0.3, cfg.LLM.Temperature)
	assert.Equal(t, 30000, cfg.LLM.TimeoutMs)
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, "debug", cfg.Log.Level)

	assert.Equal(t, blob.Config{Driver: blob.DriverS3, FSRoot: cfg.Storage.FSRoot, S3: cfg.Storage.S3}, cfg.Storage.Blob())
	assert.False(t, cfg.Storage.IsSQL())
}

func TestLoad_MissingDefaultFileIsFine(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("SPIRULINA_CONFIG", "")
	t.Setenv("SPIRULINA_STORAGE", "memory")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, StorageMemory, cfg.Storage.Driver)
}

func TestLoad_MissingExplicitFileFails(t *testing.T) {
	t.Setenv("SPIRULINA_CONFIG", filepath.Join(t.TempDir(), "nope.yaml"))
	_, err := Load()
	assert.Error(t, err)
}

func TestLoadFile_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"bad yaml", "storage: [", "parsing config"},
		{"unknown driver", "storage:\n  driver: mongo\n", `unknown driver "mongo"`},
		{"postgres without dsn", "storage:\n  driver: postgres\n", "requires a dsn"},
		{"s3 without bucket", "storage:\n  driver: s3\n", "requires a bucket"},
		{"unknown provider", "llm:\n  provider: oracle\n", "unknown provider"},
		{"bad log level", "log:\n  level: loud\n", "invalid log level"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadFile(writeConfig(t, tc.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestStorageConfig_SQL(t *testing.T) {
	pg := StorageConfig{Driver: StoragePostgres, DSN: "postgres://localhost/spirulina", Path: "ignored.db"}
	assert.True(t, pg.IsSQL())
	assert.Equal(t, db.DialectPostgres, pg.Dialect())
	assert.Equal(t, "postgres://localhost/spirulina", pg.ConnString())

	lite := StorageConfig{Driver: StorageSQLite, Path: "x.db"}
	assert.Equal(t, db.DialectSQLite, lite.Dialect())
	assert.Equal(t, "x.db", lite.ConnString())
}

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel("warn")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, level)

	level, err = ParseLevel("DEBUG")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}
