package config

import (
	"log"
	"os"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
)

type Config struct {
	DatabaseURL   string        `envconfig:"DATABASE_URL"   required:"true"`
	HTTPPort      string        `envconfig:"HTTP_PORT"      default:":8081"`
	LogLevel      string        `envconfig:"LOG_LEVEL"      default:"info"`
	ScriptsDir    string        `envconfig:"SCRIPTS_DIR"    default:"./scripts"`
	InventoryFile string        `envconfig:"INVENTORY_FILE" default:"./inventory.csv"`
	QueryTimeout  time.Duration `envconfig:"QUERY_TIMEOUT"  default:"30s"`
	QueryMaxRate  float64       `envconfig:"QUERY_MAX_RATE" default:"0"` // queries/sec across script and ad-hoc runs, 0 = unlimited
}

var (
	config Config
	once   sync.Once
)

func LoadConfig(logger *logrus.Logger) *Config {
	once.Do(func() {
		err := godotenv.Load()
		if err != nil && !os.IsNotExist(err) {
			logger.Warnf("Error loading .env file (but continuing): %v", err)
		} else if err == nil {
			logger.Info("Loaded configuration from .env file")
		}

		err = envconfig.Process("", &config)
		if err != nil {
			logger.Fatalf("Failed to process configuration from environment variables: %v", err)
		}

		logger.Infof("Configuration loaded: HTTP Port=%s, LogLevel=%s, ScriptsDir=%s, InventoryFile=%s",
			config.HTTPPort, config.LogLevel, config.ScriptsDir, config.InventoryFile)
		if config.DatabaseURL != "" {
			logger.Info("Configuration loaded: DatabaseURL is set")
		} else {
			logger.Fatal("Configuration error: DATABASE_URL is not set")
		}
	})
	return &config
}

func GetConfig() *Config {
	if config.HTTPPort == "" || config.DatabaseURL == "" {
		log.Fatal("Configuration not loaded. Call LoadConfig first.")
	}
	return &config
}
