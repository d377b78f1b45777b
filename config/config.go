package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type (
	Config struct {
		Server Server
		Store  Store
		Export Export
		Import Import
		PG     PG
		Log    Log
	}

	Server struct {
		Port                string `env:"RVDESK_SERVER_PORT" envDefault:"8080"`
		ReadTimeoutSeconds  int    `env:"RVDESK_SERVER_READ_TIMEOUT_SECONDS" envDefault:"15"`
		WriteTimeoutSeconds int    `env:"RVDESK_SERVER_WRITE_TIMEOUT_SECONDS" envDefault:"30"`
		IdleTimeoutSeconds  int    `env:"RVDESK_SERVER_IDLE_TIMEOUT_SECONDS" envDefault:"60"`
		// AllowReset открывает POST /api/v1/admin/reset.
		AllowReset bool `env:"RVDESK_SERVER_ALLOW_RESET" envDefault:"false"`
	}

	// Store - откуда брать начальные данные и какую задержку имитировать.
	Store struct {
		// SeedFile заменяет встроенные данные, если задан.
		SeedFile     string `env:"RVDESK_STORE_SEED_FILE"`
		SeedFromPG   bool   `env:"RVDESK_STORE_SEED_FROM_PG" envDefault:"false"`
		ReadDelayMs  int    `env:"RVDESK_STORE_READ_DELAY_MS" envDefault:"160"`
		WriteDelayMs int    `env:"RVDESK_STORE_WRITE_DELAY_MS" envDefault:"120"`
		ViewsDelayMs int    `env:"RVDESK_STORE_VIEWS_DELAY_MS" envDefault:"60"`
	}

	Export struct {
		// FontFile - TTF со шрифтом, в котором есть хангыль. Без него PDF рисуется шрифтом по умолчанию.
		FontFile string `env:"RVDESK_EXPORT_FONT_FILE"`
		FontName string `env:"RVDESK_EXPORT_FONT_NAME" envDefault:"nanum"`
	}

	Import struct {
		Enabled        bool   `env:"RVDESK_IMPORT_ENABLED" envDefault:"false"`
		Dir            string `env:"RVDESK_IMPORT_DIR" envDefault:"./inbox"`
		PollIntervalMs int    `env:"RVDESK_IMPORT_POLL_INTERVAL_MS" envDefault:"5000"`
		MaxWorkers     int    `env:"RVDESK_IMPORT_MAX_WORKERS" envDefault:"3"`
		// FileTimeoutSeconds ограничивает обработку одного файла.
		FileTimeoutSeconds int `env:"RVDESK_IMPORT_FILE_TIMEOUT_SECONDS" envDefault:"300"`
	}

	PG struct {
		User     string `env:"RVDESK_PG_USER"`
		Password string `env:"RVDESK_PG_PASSWORD"`
		Host     string `env:"RVDESK_PG_HOST" envDefault:"localhost"`
		Port     int    `env:"RVDESK_PG_PORT" envDefault:"5432"`
		DBName   string `env:"RVDESK_PG_DBNAME"`
		SSLMode  string `env:"RVDESK_PG_SSLMODE" envDefault:"disable"`
		PoolMax  int    `env:"RVDESK_PG_POOL_MAX" envDefault:"4"`
	}

	Log struct {
		Level string `env:"RVDESK_LOG_LEVEL" envDefault:"info"`
	}
)

// NewConfig reads the environment. Variables from envFiles are loaded first and never
// override ones already set; a missing file is not an error.
func NewConfig(envFiles ...string) (Config, error) {
	for _, f := range envFiles {
		// чтобы локально работало
		_ = godotenv.Load(f)
	}

	cfg := &Config{}
	err := env.Parse(cfg)
	if err != nil {
		return Config{}, fmt.Errorf("config error: %w", err)
	}
	if cfg.Store.SeedFromPG && (cfg.PG.User == "" || cfg.PG.DBName == "") {
		return Config{}, fmt.Errorf("config error: RVDESK_PG_USER and RVDESK_PG_DBNAME are required to seed from postgres")
	}
	if cfg.Import.MaxWorkers < 1 {
		return Config{}, fmt.Errorf("config error: RVDESK_IMPORT_MAX_WORKERS must be >= 1")
	}

	return *cfg, nil
}

func ms(v int) time.Duration {
	return time.Duration(v) * time.Millisecond
}

func (s Store) ReadDelay() time.Duration  { return ms(s.ReadDelayMs) }
func (s Store) WriteDelay() time.Duration { return ms(s.WriteDelayMs) }
func (s Store) ViewsDelay() time.Duration { return ms(s.ViewsDelayMs) }

func (i Import) PollInterval() time.Duration { return ms(i.PollIntervalMs) }

func (i Import) FileTimeout() time.Duration {
	return time.Duration(i.FileTimeoutSeconds) * time.Second
}
