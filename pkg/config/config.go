package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

type Config struct {
	ListenAddr string `yaml:"listen_addr" validate:"required"`
	// MapFile openstreetmap .osm.pbf used by preprocess.
	MapFile string `yaml:"map_file" validate:"required"`
	// DBPath pebble directory holding the preprocessed graph.
	DBPath string `yaml:"db_path" validate:"required"`
	// Workers goroutines compressing and writing graph chunks during preprocess.
	Workers        int    `yaml:"workers" validate:"gte=1,lte=256"`
	SnapCandidates int    `yaml:"snap_candidates" validate:"gte=1,lte=64"`
	LogLevel       string `yaml:"log_level" validate:"oneof=debug info warn error"`
	LogFormat      string `yaml:"log_format" validate:"oneof=text json"`
}

func Default() Config {
	return Config{
		ListenAddr:     ":5000",
		MapFile:        "solo_jogja.osm.pbf",
		DBPath:         "begraphesDB",
		Workers:        4,
		SnapCandidates: 8,
		LogLevel:       "info",
		LogFormat:      "text",
	}
}

// Load reads the yaml file at path on top of the defaults, then applies the
// BEGRAPHES_* environment variables. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if err := loadConfigFile(path, &cfg); err != nil {
			return cfg, err
		}
	}
	if err := loadConfigFromEnv(&cfg); err != nil {
		return cfg, err
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func loadConfigFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func loadConfigFromEnv(cfg *Config) error {
	if v := os.Getenv("BEGRAPHES_LISTEN_ADDR"); v != "" {
		cfg.ListenAddr = v
	}
	if v := os.Getenv("BEGRAPHES_MAP_FILE"); v != "" {
		cfg.MapFile = v
	}
	if v := os.Getenv("BEGRAPHES_DB_PATH"); v != "" {
		cfg.DBPath = v
	}
	if err := intFromEnv("BEGRAPHES_WORKERS", &cfg.Workers); err != nil {
		return err
	}
	if err := intFromEnv("BEGRAPHES_SNAP_CANDIDATES", &cfg.SnapCandidates); err != nil {
		return err
	}
	if v := os.Getenv("BEGRAPHES_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("BEGRAPHES_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
	return nil
}

func intFromEnv(key string, dst *int) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("invalid %s=%q: %w", key, v, err)
	}
	*dst = i
	return nil
}

func (c Config) Validate() error {
	return validator.New().Struct(c)
}
