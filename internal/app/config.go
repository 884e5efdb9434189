package app

import (
	"github.com/lokalhub/lokalhub-backend/internal/platform/envutil"
)

type Config struct {
	LogMode     string
	ServiceName string
	AutoMigrate bool
}

func LoadConfig() Config {
	return Config{
		LogMode:     envutil.Str("LOG_MODE", "development"),
		ServiceName: envutil.Str("SERVICE_NAME", "lokalhub-backend"),
		AutoMigrate: envutil.Bool("AUTO_MIGRATE", true),
	}
}
