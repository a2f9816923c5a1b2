package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/mindsgn-studio/mission-to-mars/internal/model"
)

const (
	DefaultStoreDriver    = "mongo"
	DefaultDBName         = "mars_app"
	DefaultSnapshotColl   = "snapshots"
	DefaultListenAddr     = ":5000"
	DefaultHTTPTimeout    = 20 * time.Second
	DefaultElementTimeout = 10 * time.Second
	DefaultUserAgent      = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

func LoadConfig() (model.Config, error) {
	// load .env if present but don't error if not present
	_ = godotenv.Load()

	cfg := model.Config{
		StoreDriver:   getenv("STORE_DRIVER", DefaultStoreDriver),
		MongoURI:      os.Getenv("MONGODB_URI"),
		DBName:        getenv("MONGO_DB_NAME", DefaultDBName),
		SnapshotColl:  getenv("MONGO_COLLECTION", DefaultSnapshotColl),
		PostgresDSN:   os.Getenv("POSTGRES_DSN"),
		ListenAddr:    getenv("LISTEN_ADDR", DefaultListenAddr),
		UserAgent:     getenv("USER_AGENT", DefaultUserAgent),
		SelectorsFile: os.Getenv("SELECTORS_FILE"),
		Browser: model.BrowserConfig{
			RemoteURL: os.Getenv("BROWSER_REMOTE_URL"),
		},
	}

	var err error
	if cfg.Debug, err = boolEnv("DEBUG", false); err != nil {
		return model.Config{}, err
	}
	if cfg.HTTPTimeout, err = durationEnv("HTTP_TIMEOUT", DefaultHTTPTimeout); err != nil {
		return model.Config{}, err
	}
	if cfg.Browser.Headless, err = boolEnv("BROWSER_HEADLESS", true); err != nil {
		return model.Config{}, err
	}
	if cfg.Browser.Stealth, err = boolEnv("BROWSER_STEALTH", false); err != nil {
		return model.Config{}, err
	}
	if cfg.Browser.ElementTimeout, err = durationEnv("BROWSER_ELEMENT_TIMEOUT", DefaultElementTimeout); err != nil {
		return model.Config{}, err
	}

	switch cfg.StoreDriver {
	case "mongo":
		if cfg.MongoURI == "" {
			return model.Config{}, errors.New("MONGODB_URI not set")
		}
	case "postgres":
		if cfg.PostgresDSN == "" {
			return model.Config{}, errors.New("POSTGRES_DSN not set")
		}
	case "memory":
	default:
		return model.Config{}, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func boolEnv(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("parse %s: %w", key, err)
	}
	return b, nil
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive", key)
	}
	return d, nil
}
