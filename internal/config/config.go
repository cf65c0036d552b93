package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"go-viewer-dashboard/pkg/utils"

	"gopkg.in/yaml.v3"
)

// Config is the resolved runtime configuration for the dashboard.
type Config struct {
	ServiceID string

	DataPath  string
	HTTPPort  int
	DBPath    string
	RedisURL  string
	OutputDir string

	CacheTTL    time.Duration
	LogLevel    slog.Level
	DefaultTopN int

	ChartWidth  int
	ChartHeight int
}

// configFile mirrors the YAML schema of config.yaml.
type configFile struct {
	Service struct {
		ID       string `yaml:"id"`
		HTTPPort int    `yaml:"http_port"`
		LogLevel string `yaml:"log_level"`
	} `yaml:"service"`
	Data struct {
		Path      string `yaml:"path"`
		OutputDir string `yaml:"output_dir"`
	} `yaml:"data"`
	Dependencies struct {
		SQLitePath string `yaml:"sqlite_path"`
		RedisURL   string `yaml:"redis_url"`
		CacheTTL   string `yaml:"cache_ttl"`
	} `yaml:"dependencies"`
	Dashboard struct {
		DefaultTopN int `yaml:"default_top_n"`
		ChartWidth  int `yaml:"chart_width"`
		ChartHeight int `yaml:"chart_height"`
	} `yaml:"dashboard"`
}

// Load resolves configuration in priority order: defaults -> file -> env.
// A missing file is not an error; an unreadable or malformed one is.
func Load(path string) (Config, error) {
	cfg := Config{
		ServiceID:   "viewer-dashboard",
		DataPath:    "data/netflix_users.csv",
		HTTPPort:    8080,
		DBPath:      "dashboard.db",
		OutputDir:   "output",
		CacheTTL:    5 * time.Minute,
		LogLevel:    slog.LevelInfo,
		DefaultTopN: 5,
		ChartWidth:  800,
		ChartHeight: 400,
	}

	if path != "" {
		raw, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := applyFile(&cfg, raw); err != nil {
				return Config{}, err
			}
		case errors.Is(err, fs.ErrNotExist):
		default:
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg.DataPath = envOrDefault("DATA_PATH", cfg.DataPath)
	cfg.DBPath = envOrDefault("DB_PATH", cfg.DBPath)
	cfg.RedisURL = envOrDefault("REDIS_URL", cfg.RedisURL)
	cfg.OutputDir = envOrDefault("OUTPUT_DIR", cfg.OutputDir)
	cfg.HTTPPort = envInt("HTTP_PORT", cfg.HTTPPort)
	cfg.DefaultTopN = envInt("DEFAULT_TOP_N", cfg.DefaultTopN)
	cfg.ChartWidth = envInt("CHART_WIDTH", cfg.ChartWidth)
	cfg.ChartHeight = envInt("CHART_HEIGHT", cfg.ChartHeight)
	cfg.CacheTTL = utils.ParseDuration(os.Getenv("CACHE_TTL"), cfg.CacheTTL)
	if raw := os.Getenv("LOG_LEVEL"); raw != "" {
		lvl, err := parseLevel(raw)
		if err != nil {
			return Config{}, err
		}
		cfg.LogLevel = lvl
	}

	if cfg.DefaultTopN < 1 {
		return Config{}, fmt.Errorf("default top-n must be at least 1, got %d", cfg.DefaultTopN)
	}
	if cfg.ChartWidth < 100 || cfg.ChartHeight < 100 {
		return Config{}, fmt.Errorf("chart size %dx%d too small", cfg.ChartWidth, cfg.ChartHeight)
	}
	return cfg, nil
}

func applyFile(cfg *Config, raw []byte) error {
	var f configFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	if f.Service.ID != "" {
		cfg.ServiceID = f.Service.ID
	}
	if f.Service.HTTPPort > 0 {
		cfg.HTTPPort = f.Service.HTTPPort
	}
	if f.Service.LogLevel != "" {
		lvl, err := parseLevel(f.Service.LogLevel)
		if err != nil {
			return err
		}
		cfg.LogLevel = lvl
	}
	if f.Data.Path != "" {
		cfg.DataPath = f.Data.Path
	}
	if f.Data.OutputDir != "" {
		cfg.OutputDir = f.Data.OutputDir
	}
	if f.Dependencies.SQLitePath != "" {
		cfg.DBPath = f.Dependencies.SQLitePath
	}
	if f.Dependencies.RedisURL != "" {
		cfg.RedisURL = f.Dependencies.RedisURL
	}
	cfg.CacheTTL = utils.ParseDuration(f.Dependencies.CacheTTL, cfg.CacheTTL)
	if f.Dashboard.DefaultTopN > 0 {
		cfg.DefaultTopN = f.Dashboard.DefaultTopN
	}
	if f.Dashboard.ChartWidth > 0 {
		cfg.ChartWidth = f.Dashboard.ChartWidth
	}
	if f.Dashboard.ChartHeight > 0 {
		cfg.ChartHeight = f.Dashboard.ChartHeight
	}
	return nil
}

// NewLogger builds the process JSON logger and installs it as default.
func NewLogger(cfg Config) *slog.Logger {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel})).With("service", cfg.ServiceID)
	slog.SetDefault(logger)
	return logger
}

func parseLevel(raw string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(raw))); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", raw, err)
	}
	return lvl, nil
}

// envOrDefault returns an env var when present, otherwise the provided fallback.
func envOrDefault(name, fallback string) string {
	if value := os.Getenv(name); value != "" {
		return value
	}
	return fallback
}

// envInt parses integer env vars with safe fallback on empty/invalid values.
func envInt(name string, fallback int) int {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
