package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name     string `envconfig:"APP_NAME" default:"Dairybook"`
		Port     int    `envconfig:"PORT" default:"8080"`
		FarmName string `envconfig:"FARM_NAME" default:"Javed Dairy Farm"`
	}

	DB struct {
		Path string `envconfig:"DB_PATH" default:"data/dairybook.db"`
	}

	Backup struct {
		Dir string `envconfig:"BACKUP_DIR" default:"data/backup"`
	}

	Server struct {
		Timeout time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
	}
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
