package config

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	App      *Appconfig
	DB       *DBconfig
	RabbitMq *RabbitMqconfig
	Srv      *Serviceconfig
	Log      *Loggerconfig
}

type Appconfig struct {
	PublicJwtSecret string `yaml:"public_jwt_secret"`
	TokenTTLHours   int    `yaml:"token_ttl_hours"`
	OtpTTLMinutes   int    `yaml:"otp_ttl_minutes"`
}

type DBconfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
}

type RabbitMqconfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	VHost    string `yaml:"vhost"`
}

type Serviceconfig struct {
	AuthServicePort  string `yaml:"auth_service"`
	FleetServicePort string `yaml:"fleet_service"`
}

type Loggerconfig struct {
	Level string `yaml:"level"`
}

func New() (*Config, error) {
	getEnv := func(key, def string) string {
		val := os.Getenv(key)
		if val == "" {
			fmt.Printf("using default value for %v\n", key)
			return def
		}
		return val
	}

	getEnvInt := func(key string, def int) int {
		valStr := os.Getenv(key)
		if valStr == "" {
			fmt.Printf("using default value for %v\n", key)
			return def
		}
		val, err := strconv.Atoi(valStr)
		if err != nil {
			fmt.Printf("cannot parse %v, using default\n", key)
			return def
		}
		return val
	}

	cnf := &Config{
		App: &Appconfig{
			PublicJwtSecret: getEnv("JWT_SECRET", "fleet-ops-dev-secret"),
			TokenTTLHours:   getEnvInt("TOKEN_TTL_HOURS", 24),
			OtpTTLMinutes:   getEnvInt("OTP_TTL_MINUTES", 10),
		},
		DB: &DBconfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "fleetops_user"),
			Password: getEnv("DB_PASSWORD", "fleetops_pass"),
			Database: getEnv("DB_NAME", "fleetops_db"),
		},
		RabbitMq: &RabbitMqconfig{
			Host:     getEnv("RABBITMQ_HOST", "localhost"),
			Port:     getEnvInt("RABBITMQ_PORT", 5672),
			User:     getEnv("RABBITMQ_USER", "guest"),
			Password: getEnv("RABBITMQ_PASSWORD", "guest"),
			VHost:    getEnv("RABBITMQ_VHOST", ""),
		},
		Srv: &Serviceconfig{
			AuthServicePort:  getEnv("AUTH_SERVICE_PORT", "3000"),
			FleetServicePort: getEnv("FLEET_SERVICE_PORT", "3001"),
		},
		Log: &Loggerconfig{
			Level: getEnv("LOG_LEVEL", "INFO"),
		},
	}

	return cnf, nil
}
