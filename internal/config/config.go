package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/alexanderramin/horizon/internal/domain"
	"github.com/alexanderramin/horizon/internal/layout"
	"github.com/alexanderramin/horizon/internal/valuation"
	"gopkg.in/yaml.v3"
)

// Config holds the engine and CLI settings.
type Config struct {
	DBPath string `yaml:"db_path"`
	// InflationRate seeds the profile of a fresh database. When
	// InflationRateSet is true it also replaces the stored rate for
	// valuation.
	InflationRate    float64                    `yaml:"inflation_rate"`
	InflationRateSet bool                       `yaml:"-"`
	MaxAge        int                        `yaml:"max_age"`
	TimelineWidth int                        `yaml:"timeline_width"`
	SlotSpacing   int                        `yaml:"slot_spacing"`
	Perpetuity    valuation.PerpetuityPolicy `yaml:"perpetuity"`
	LoadTimeoutMs int                        `yaml:"load_timeout_ms"`
	LogEnabled    bool                       `yaml:"log"`
}

// DefaultConfig returns the built-in settings. The database lives under the
// user's home directory.
func DefaultConfig() Config {
	dbPath := "horizon.db"
	if home, err := os.UserHomeDir(); err == nil {
		dbPath = filepath.Join(home, ".horizon", "horizon.db")
	}
	return Config{
		DBPath:        dbPath,
		InflationRate: domain.DefaultInflationRate,
		MaxAge:        layout.DefaultMaxAge,
		TimelineWidth: 72,
		SlotSpacing:   1,
		Perpetuity:    valuation.PerpetuityZero,
		LoadTimeoutMs: 5000,
	}
}

// LoadConfig layers the YAML file named by HORIZON_CONFIG (if any) and then
// HORIZON_* environment variables over the defaults. Malformed environment
// values are ignored; a malformed file is an error.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()

	if path := os.Getenv("HORIZON_CONFIG"); path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if v := os.Getenv("HORIZON_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("HORIZON_INFLATION_RATE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > -1 {
			cfg.InflationRate = f
			cfg.InflationRateSet = true
		}
	}
	if v := os.Getenv("HORIZON_MAX_AGE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MaxAge = n
		}
	}
	if v := os.Getenv("HORIZON_TIMELINE_WIDTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimelineWidth = n
		}
	}
	if v := os.Getenv("HORIZON_SLOT_SPACING"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.SlotSpacing = n
		}
	}
	if v := os.Getenv("HORIZON_PERPETUITY"); v != "" {
		if p, err := valuation.ParsePerpetuityPolicy(v); err == nil {
			cfg.Perpetuity = p
		}
	}
	if v := os.Getenv("HORIZON_LOAD_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.LoadTimeoutMs = n
		}
	}
	if v := os.Getenv("HORIZON_LOG"); v != "" {
		cfg.LogEnabled, _ = strconv.ParseBool(v)
	}

	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}
	var explicit struct {
		InflationRate *float64 `yaml:"inflation_rate"`
	}
	if err := yaml.Unmarshal(data, &explicit); err == nil && explicit.InflationRate != nil {
		if *explicit.InflationRate <= -1 {
			return fmt.Errorf("config file %s: inflation_rate must be greater than -1", path)
		}
		cfg.InflationRateSet = true
	}
	if _, err := valuation.ParsePerpetuityPolicy(string(cfg.Perpetuity)); err != nil {
		return fmt.Errorf("config file %s: %w", path, err)
	}
	if cfg.Perpetuity == "" {
		cfg.Perpetuity = valuation.PerpetuityZero
	}
	return nil
}
