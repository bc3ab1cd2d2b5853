package config

import (
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config represents the application configuration structure
type Config struct {
	Environment string   `default:"dev"`
	Operations  int      `default:"100000"`
	KeySpace    int      `default:"1024" split_words:"true"`
	KeyKind     string   `default:"string" split_words:"true"`
	Seed        int64    `default:"1"`
	Ops         []string `default:"insert,erase,ref,find,at"`
}

// LoadFromEnv loads a new configuration structure using environment variables and an optional .env file
func LoadFromEnv() (*Config, error) {
	// Load a .env file if it exists
	_ = godotenv.Overload()

	// Load a new configuration structure using environment variables
	config := new(Config)
	if err := envconfig.Process("ct", config); err != nil {
		return nil, err
	}
	return config, nil
}

// IsEnvProduction returns whether the application is running in production mode
func (config *Config) IsEnvProduction() bool {
	return config.Environment == "prod"
}
