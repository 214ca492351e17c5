// config/config.go
package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type ServerConfig struct {
	Port string `yaml:"port"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
}

// SDMXConfig covers the fetch collaborator and the navigator. Endpoints maps
// an agency id (e.g. "SPC") to its SDMX REST base URL. StructurePrefixes is
// the ordered namespace-prefix list the navigator tries before falling back
// to local-name matching; extend it when a new provider declares the
// structure namespace under yet another prefix.
type SDMXConfig struct {
	Endpoints         map[string]string `yaml:"endpoints"`
	FetchTimeoutStr   string            `yaml:"fetch_timeout"`
	StructurePrefixes []string          `yaml:"structure_prefixes"`
	FetchTimeout      time.Duration     // Parsed duration
}

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	SDMX     SDMXConfig     `yaml:"sdmx"`
}

var AppConfig Config

// LoadConfig reads configuration from the yaml file at configPath, then lets
// the environment (optionally via a .env file) override database credentials
// so they stay out of the config file.
func LoadConfig(configPath string) error {
	file, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	// Start from zero so a reload never inherits values from a previous load.
	AppConfig = Config{}
	if err := yaml.Unmarshal(file, &AppConfig); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// .env is optional; a missing file is not an error.
	if err := godotenv.Load(); err == nil {
		log.Println("Config: Loaded environment overrides from .env")
	}
	if v := os.Getenv("SDMXMETA_DB_USER"); v != "" {
		AppConfig.Database.User = v
	}
	if v := os.Getenv("SDMXMETA_DB_PASSWORD"); v != "" {
		AppConfig.Database.Password = v
	}
	if v := os.Getenv("SDMXMETA_DB_HOST"); v != "" {
		AppConfig.Database.Host = v
	}

	if AppConfig.SDMX.FetchTimeoutStr != "" {
		AppConfig.SDMX.FetchTimeout, err = time.ParseDuration(AppConfig.SDMX.FetchTimeoutStr)
		if err != nil {
			return fmt.Errorf("failed to parse fetch_timeout: %w", err)
		}
	} else {
		AppConfig.SDMX.FetchTimeout = 30 * time.Second // Default
	}

	if AppConfig.Server.Port == "" {
		AppConfig.Server.Port = "8080"
	}

	return nil
}
