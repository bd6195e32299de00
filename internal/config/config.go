package config

import (
	"flag"
	"os"
	"path/filepath"
	"regexp"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	// Server-side settings
	DatabaseDSN string `env:"DATABASE_URI"`
	AuthSecret  string `env:"AUTH_SECRET"`

	// Shared settings
	BaseURL     string `env:"BASE_URL"`
	EnableHTTPS bool   `env:"ENABLE_HTTPS"`

	// Client-side settings
	ServerURL      string `env:"-"`
	StorageBackend string `env:"STORAGE_BACKEND"` // "file" (default) or "sqlite"
	DataPath       string `env:"BIRTHDAYS_DATA_PATH"`
	Offline        bool   `env:"-"` // flag only: treat the device as offline
	Version        bool   `env:"-"` // show client version and exit (flag only)
}

func NewConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{}
	_ = env.Parse(cfg)

	// Flags apply only when the env vars are not set
	// Server flags
	flag.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "database connection string (postgres DSN or sqlite file)")
	flag.StringVar(&cfg.AuthSecret, "auth-secret", cfg.AuthSecret, "secret used to sign JWTs")
	// Shared/client flags
	flag.StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, "base URL of the BirthdayKeeper server (host:port)")
	flag.BoolVar(&cfg.EnableHTTPS, "https", cfg.EnableHTTPS, "enable HTTPS (client: prefer https scheme for BaseURL)")
	// Client flags
	flag.StringVar(&cfg.StorageBackend, "storage", cfg.StorageBackend, "local storage backend: file|sqlite")
	flag.StringVar(&cfg.DataPath, "data-path", cfg.DataPath, "base directory for local data")
	flag.BoolVar(&cfg.Offline, "offline", cfg.Offline, "work offline: skip sync triggers")
	flag.BoolVar(&cfg.Version, "version", cfg.Version, "show client version and exit")

	flag.Parse()

	// Defaults
	if cfg.AuthSecret == "" {
		cfg.AuthSecret = "dev-secret-key"
	}
	if cfg.StorageBackend == "" {
		cfg.StorageBackend = "file"
	}
	// validate BaseURL: must be "address:port" (no scheme, no path), otherwise use default.
	hostPortRe := regexp.MustCompile(`^[A-Za-z0-9\.\-]+:\d{1,5}$`)
	if !hostPortRe.MatchString(cfg.BaseURL) {
		cfg.BaseURL = "localhost:8081"
	}

	if cfg.EnableHTTPS {
		cfg.ServerURL = "https://" + cfg.BaseURL
	} else {
		cfg.ServerURL = "http://" + cfg.BaseURL
	}

	if cfg.DataPath == "" {
		if cfgDir, err := os.UserConfigDir(); err == nil {
			cfg.DataPath = filepath.Join(cfgDir, "BirthdayKeeper")
		}
	}

	return cfg
}
