package main

import (
	"os"
	"path/filepath"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"

	"github.com/bigvo/siwe-go/pkg/log"
)

const (
	configDirPathEnv     = "SIWE_CONFIG_DIR_PATH"
	defaultConfigDirPath = "."
	defaultNetwork       = "mainnet"
)

// Config represents the configuration of the siwe command
type Config struct {
	Log log.Config
	// Network is a registered network name or a decimal chain id
	Network string `env:"SIWE_NETWORK" env-default:"mainnet"`

	networks Networks
	chainID  uint64
}

// LoadConfig builds configuration from <config dir>/.env, the environment and
// <config dir>/networks.yaml
func LoadConfig(logger log.Logger) (*Config, error) {
	logger = logger.WithName("config")

	configDirPath := os.Getenv(configDirPathEnv)
	if configDirPath == "" {
		configDirPath = defaultConfigDirPath
	}

	configDotEnvPath := filepath.Join(configDirPath, ".env")
	logger.Debug("loading .env file", "path", configDotEnvPath)
	if err := godotenv.Load(configDotEnvPath); err != nil {
		logger.Debug(".env file not found", "path", configDotEnvPath)
	}

	var config Config
	if err := cleanenv.ReadEnv(&config); err != nil {
		return nil, errors.Wrap(err, "failed to read env")
	}
	if config.Network == "" {
		config.Network = defaultNetwork
	}

	networks, err := LoadNetworks(configDirPath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load networks")
	}

	chainID, err := networks.Resolve(config.Network)
	if err != nil {
		return nil, errors.Wrap(err, "invalid SIWE_NETWORK")
	}
	logger.Debug("set network", "name", config.Network, "chainId", chainID)

	config.networks = networks
	config.chainID = chainID
	return &config, nil
}
