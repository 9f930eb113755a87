package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

const (
	envPrefix         = "UPMIND_"
	maxConfigFileSize = 1 << 20

	StorageSQLite = "sqlite"
	StorageFile   = "file"
	StorageMemory = "memory"

	ProviderRemote = "remote"
	ProviderPlugin = "plugin"
)

type Config struct {
	VaultPath  string            `koanf:"-"`
	StateDir   string            `koanf:"-"`
	DBPath     string            `koanf:"db_path"`
	Storage    string            `koanf:"storage"`
	Log        LogConfig         `koanf:"log"`
	Quiz       QuizConfig        `koanf:"quiz"`
	Server     ServerConfig      `koanf:"server"`
	Phase      PhaseConfig       `koanf:"phase"`
	Techniques []TechniqueConfig `koanf:"techniques"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	File   string `koanf:"file"`
}

type QuizConfig struct {
	Providers    []string      `koanf:"providers"`
	BaseURL      string        `koanf:"base_url"`
	APIKey       string        `koanf:"api_key"`
	Model        string        `koanf:"model"`
	Timeout      time.Duration `koanf:"timeout"`
	PluginBinary string        `koanf:"plugin_binary"`
	PluginSHA256 string        `koanf:"plugin_sha256"`
}

type ServerConfig struct {
	Addr string `koanf:"addr"`
}

type PhaseConfig struct {
	Tick time.Duration `koanf:"tick"`
}

type TechniqueConfig struct {
	ID           string      `koanf:"id"`
	Name         string      `koanf:"name"`
	Activity     string      `koanf:"activity"`
	Difficulty   string      `koanf:"difficulty"`
	Cycles       int         `koanf:"cycles"`
	FocusMinutes int         `koanf:"focus_minutes"`
	Phases       []PhaseSpec `koanf:"phases"`
}

type PhaseSpec struct {
	Kind    string `koanf:"kind"`
	Seconds int    `koanf:"seconds"`
}

// New loads configuration for a vault: defaults, then .upmind/config.yaml,
// then .env, then UPMIND_* environment variables.
func New(vaultPath string) (Config, error) {
	if vaultPath == "" {
		return Config{}, fmt.Errorf("vault path is required")
	}
	stateDir := filepath.Join(vaultPath, ".upmind")

	k := koanf.New(".")
	if err := loadFile(k, filepath.Join(stateDir, "config.yaml")); err != nil {
		return Config{}, err
	}
	if err := godotenv.Load(filepath.Join(vaultPath, ".env")); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	if err := k.Load(env.ProviderWithValue(envPrefix, ".", envKey), nil); err != nil {
		return Config{}, fmt.Errorf("load environment: %w", err)
	}

	cfg := Config{}
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.VaultPath = vaultPath
	cfg.StateDir = stateDir
	applyDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Default returns the configuration used when nothing is overridden.
func Default(vaultPath string) Config {
	cfg := Config{VaultPath: vaultPath, StateDir: filepath.Join(vaultPath, ".upmind")}
	applyDefaults(&cfg)
	return cfg
}

func loadFile(k *koanf.Koanf, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("stat config file: %w", err)
	}
	if info.Size() > maxConfigFileSize {
		return fmt.Errorf("config file %s exceeds %d bytes", path, maxConfigFileSize)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
		return fmt.Errorf("load config file %s: %w", path, err)
	}
	return nil
}

// envKey maps UPMIND_QUIZ_API_KEY to quiz.api_key: the first underscore
// after the prefix separates the section from the field.
func envKey(key, value string) (string, any) {
	lower := strings.ToLower(strings.TrimPrefix(key, envPrefix))
	parts := strings.SplitN(lower, "_", 2)
	if len(parts) == 1 {
		return parts[0], value
	}
	if len(parts) == 2 && parts[0] == "db" {
		return lower, value
	}
	path := parts[0] + "." + parts[1]
	if path == "quiz.providers" {
		return path, splitList(value)
	}
	return path, value
}

func splitList(value string) []string {
	out := []string{}
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func applyDefaults(cfg *Config) {
	if cfg.DBPath == "" {
		cfg.DBPath = filepath.Join(cfg.StateDir, "upmind.db")
	}
	if cfg.Storage == "" {
		cfg.Storage = StorageSQLite
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Quiz.Providers == nil {
		cfg.Quiz.Providers = []string{ProviderRemote, ProviderPlugin}
	}
	if cfg.Quiz.BaseURL == "" {
		cfg.Quiz.BaseURL = "https://api.mistral.ai/v1"
	}
	if cfg.Quiz.Model == "" {
		cfg.Quiz.Model = "mistral-small-latest"
	}
	if cfg.Quiz.Timeout == 0 {
		cfg.Quiz.Timeout = 15 * time.Second
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = "127.0.0.1:8765"
	}
	if cfg.Phase.Tick == 0 {
		cfg.Phase.Tick = 250 * time.Millisecond
	}
}

func (c Config) Validate() error {
	switch c.Storage {
	case StorageSQLite, StorageFile, StorageMemory:
	default:
		return fmt.Errorf("unknown storage %q", c.Storage)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("unknown log format %q", c.Log.Format)
	}
	for _, p := range c.Quiz.Providers {
		if p != ProviderRemote && p != ProviderPlugin {
			return fmt.Errorf("unknown quiz provider %q", p)
		}
	}
	if c.Quiz.Timeout <= 0 {
		return fmt.Errorf("quiz timeout must be positive")
	}
	if c.Phase.Tick <= 0 {
		return fmt.Errorf("phase tick must be positive")
	}
	return nil
}
