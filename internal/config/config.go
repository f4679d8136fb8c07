// Package config loads application settings from an optional YAML file and
// SPIRULINA_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/alexanderramin/spirulina/internal/blob"
	"github.com/alexanderramin/spirulina/internal/db"
	"github.com/alexanderramin/spirulina/internal/llm"
	"gopkg.in/yaml.v3"
)

// StorageDriver selects where collections are persisted.
type StorageDriver string

const (
	StorageSQLite   StorageDriver = "sqlite"
	StoragePostgres StorageDriver = "postgres"
	StorageFS       StorageDriver = "fs"
	StorageS3       StorageDriver = "s3"
	StorageMemory   StorageDriver = "memory"
)

type Config struct {
	Storage StorageConfig `yaml:"storage"`
	LLM     llm.LLMConfig `yaml:"llm"`
	Server  ServerConfig  `yaml:"server"`
	Log     LogConfig     `yaml:"log"`
}

type StorageConfig struct {
	Driver StorageDriver `yaml:"driver"`
	Path   string        `yaml:"path"` // sqlite database file
	DSN    string        `yaml:"dsn"`  // postgres connection string
	FSRoot string        `yaml:"fs_root"`
	Watch  bool          `yaml:"watch"` // fs driver: report edits made by other processes
	S3     blob.S3Config `yaml:"s3"`
}

type ServerConfig struct {
	Addr     string `yaml:"addr"`
	LogLevel string `yaml:"log_level"`
}

type LogConfig struct {
	Level    string `yaml:"level"`
	UseCases bool   `yaml:"use_cases"` // log successful store operations too
}

// Defaults returns the configuration used when nothing is set. homeDir may
// be empty, in which case files live in the working directory.
func Defaults(homeDir string) Config {
	base := "."
	if homeDir != "" {
		base = filepath.Join(homeDir, ".spirulina")
	}
	return Config{
		Storage: StorageConfig{
			Driver: StorageSQLite,
			Path:   filepath.Join(base, "spirulina.db"),
			FSRoot: filepath.Join(base, "data"),
		},
		LLM:    llm.DefaultConfig(),
		Server: ServerConfig{Addr: ":8080", LogLevel: "info"},
		Log:    LogConfig{Level: "warn"},
	}
}

// Load resolves defaults, then the YAML file at $SPIRULINA_CONFIG or
// ~/.spirulina/config.yaml, then environment overrides. A missing default
// file is not an error; a missing explicit file is.
func Load() (Config, error) {
	home, _ := os.UserHomeDir()
	path := os.Getenv("SPIRULINA_CONFIG")
	explicit := path != ""
	if !explicit && home != "" {
		path = filepath.Join(home, ".spirulina", "config.yaml")
	}

	cfg := Defaults(home)
	if path != "" {
		err := cfg.mergeFile(path)
		if err != nil && (explicit || !errors.Is(err, fs.ErrNotExist)) {
			return cfg, err
		}
	}
	cfg.applyEnv()
	return cfg, cfg.Validate()
}

// LoadFile applies a single YAML file over the defaults, without
// environment overrides.
func LoadFile(path string) (Config, error) {
	home, _ := os.UserHomeDir()
	cfg := Defaults(home)
	if err := cfg.mergeFile(path); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config %s: %w", path, err)
	}
	// Blank endpoint and model so a provider switch in the file picks up
	// that provider's defaults.
	c.LLM.Endpoint, c.LLM.Model = "", ""
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	c.LLM.Provider = llm.Provider(strings.ToLower(string(c.LLM.Provider)))
	c.LLM = c.LLM.WithProviderDefaults()
	c.LLM.Endpoint = strings.TrimRight(c.LLM.Endpoint, "/")
	return nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("SPIRULINA_STORAGE"); v != "" {
		c.Storage.Driver = StorageDriver(strings.ToLower(v))
	}
	c.Storage.Path = getenvDefault("SPIRULINA_DB", c.Storage.Path)
	c.Storage.DSN = getenvDefault("SPIRULINA_DSN", getenvDefault("DATABASE_URL", c.Storage.DSN))
	c.Storage.FSRoot = getenvDefault("SPIRULINA_DATA_DIR", c.Storage.FSRoot)
	c.Storage.Watch = getenvBoolDefault("SPIRULINA_WATCH", c.Storage.Watch)
	c.Storage.S3.Bucket = getenvDefault("SPIRULINA_S3_BUCKET", c.Storage.S3.Bucket)
	c.Storage.S3.Region = getenvDefault("SPIRULINA_S3_REGION", getenvDefault("AWS_REGION", c.Storage.S3.Region))
	c.Storage.S3.Endpoint = getenvDefault("SPIRULINA_S3_ENDPOINT", c.Storage.S3.Endpoint)
	c.Storage.S3.Prefix = getenvDefault("SPIRULINA_S3_PREFIX", c.Storage.S3.Prefix)
	c.Storage.S3.PathStyle = getenvBoolDefault("SPIRULINA_S3_PATH_STYLE", c.Storage.S3.PathStyle)

	c.Server.Addr = getenvDefault("SPIRULINA_ADDR", c.Server.Addr)
	c.Server.LogLevel = getenvDefault("SPIRULINA_SERVER_LOG_LEVEL", c.Server.LogLevel)
	c.Log.Level = getenvDefault("SPIRULINA_LOG_LEVEL", c.Log.Level)
	c.Log.UseCases = getenvBoolDefault("SPIRULINA_LOG_USE_CASES", c.Log.UseCases)

	llm.ApplyEnv(&c.LLM)
}

// Validate rejects unknown drivers, providers and log levels, and a
// postgres or s3 driver without its required settings.
func (c Config) Validate() error {
	switch c.Storage.Driver {
	case StorageSQLite, StorageFS, StorageMemory:
	case StoragePostgres:
		if c.Storage.DSN == "" {
			return errors.New("storage: postgres driver requires a dsn")
		}
	case StorageS3:
		if c.Storage.S3.Bucket == "" {
			return errors.New("storage: s3 driver requires a bucket")
		}
	default:
		return fmt.Errorf("storage: unknown driver %q", c.Storage.Driver)
	}
	switch c.LLM.Provider {
	case llm.ProviderGemini, llm.ProviderOllama:
	default:
		return fmt.Errorf("llm: unknown provider %q", c.LLM.Provider)
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log: %w", err)
	}
	if _, err := ParseLevel(c.Server.LogLevel); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	return nil
}

// IsSQL reports whether the storage driver is database-backed.
func (s StorageConfig) IsSQL() bool {
	return s.Driver == StorageSQLite || s.Driver == StoragePostgres
}

// Dialect returns the SQL dialect of a database-backed driver.
func (s StorageConfig) Dialect() db.Dialect {
	if s.Driver == StoragePostgres {
		return db.DialectPostgres
	}
	return db.DialectSQLite
}

// ConnString returns the path or DSN passed to db.Open.
func (s StorageConfig) ConnString() string {
	if s.Driver == StoragePostgres {
		return s.DSN
	}
	return s.Path
}

// Blob returns the blob store configuration for fs, memory and s3.
func (s StorageConfig) Blob() blob.Config {
	return blob.Config{Driver: blob.Driver(s.Driver), FSRoot: s.FSRoot, S3: s.S3}
}

// ParseLevel maps debug|info|warn|error to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q", s)
	}
	return level, nil
}

func getenvDefault(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getenvBoolDefault(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}
