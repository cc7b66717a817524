package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Addr            string        `yaml:"addr"`
	CacheDBPath     string        `yaml:"cache_db_path"`
	CacheNamespace  string        `yaml:"cache_namespace"`
	APIURL          string        `yaml:"api_url"`
	CatalogBaseURL  string        `yaml:"catalog_base_url"`
	APIRPS          float64       `yaml:"api_rps"`
	APITimeout      time.Duration `yaml:"api_timeout"`
	ScrapeEnabled   bool          `yaml:"scrape_enabled"`
	BrowserEnabled  bool          `yaml:"browser_enabled"`
	ObserveInterval time.Duration `yaml:"observe_interval"`
}

func Default() *Config {
	return &Config{
		Addr:            ":9090",
		CacheDBPath:     "file::memory:?cache=shared",
		CacheNamespace:  "steam-extract",
		APIURL:          "https://store.steampowered.com/api/appdetails",
		CatalogBaseURL:  "https://steamdb.info/app/",
		APIRPS:          1,
		APITimeout:      15 * time.Second,
		ScrapeEnabled:   true,
		BrowserEnabled:  false,
		ObserveInterval: 2 * time.Second,
	}
}

// Load applies, in order: defaults, .env.local, the YAML file named by
// STEAM_EXTRACT_CONFIG, then individual environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load(".env.local")

	cfg := Default()

	if path := os.Getenv("STEAM_EXTRACT_CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	setString(&cfg.Addr, "APP_ADDR")
	setString(&cfg.CacheDBPath, "CACHE_DB_PATH")
	setString(&cfg.CacheNamespace, "CACHE_NAMESPACE")
	setString(&cfg.APIURL, "STEAM_API_URL")
	setString(&cfg.CatalogBaseURL, "CATALOG_BASE_URL")

	if val := os.Getenv("API_RPS"); val != "" {
		parsed, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return nil, fmt.Errorf("API_RPS: %w", err)
		}
		cfg.APIRPS = parsed
	}
	if err := setDuration(&cfg.APITimeout, "API_TIMEOUT"); err != nil {
		return nil, err
	}
	if err := setDuration(&cfg.ObserveInterval, "OBSERVE_INTERVAL"); err != nil {
		return nil, err
	}
	if err := setBool(&cfg.ScrapeEnabled, "SCRAPE_ENABLED"); err != nil {
		return nil, err
	}
	if err := setBool(&cfg.BrowserEnabled, "BROWSER_ENABLED"); err != nil {
		return nil, err
	}

	if cfg.ObserveInterval <= 0 {
		return nil, fmt.Errorf("observe interval must be positive, got %s", cfg.ObserveInterval)
	}
	return cfg, nil
}

func setString(dst *string, key string) {
	if val := os.Getenv(key); val != "" {
		*dst = val
	}
}

func setDuration(dst *time.Duration, key string) error {
	val := os.Getenv(key)
	if val == "" {
		return nil
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = d
	return nil
}

func setBool(dst *bool, key string) error {
	val := os.Getenv(key)
	if val == "" {
		return nil
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = b
	return nil
}
