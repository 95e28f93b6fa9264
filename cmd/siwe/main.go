package main

import (
	"context"
	"os"

	"github.com/bigvo/siwe-go/pkg/log"
)

func main() {
	logger := log.NewZapLogger(log.Config{Format: "console", Level: log.LevelInfo}).WithName("siwe")
	if len(os.Args) < 2 {
		logger.Fatal("Usage: siwe <parse|verify|recover> <file|-> [signature] [at]")
	}

	config, err := LoadConfig(logger)
	if err != nil {
		logger.Fatal("failed to load configuration", "error", err)
	}
	logger = log.NewZapLogger(config.Log).WithName("siwe")

	runCli(logger, config, os.Args[1], os.Args[2:])
}

func runCli(logger log.Logger, config *Config, name string, args []string) {
	logger = logger.WithName(name)

	switch name {
	case "parse":
		if err := runParse(config, args, os.Stdin, os.Stdout); err != nil {
			logger.Fatal("failed to parse message", "error", err)
		}
	case "verify":
		verified, err := runVerify(context.Background(), logger, config, args, os.Stdin, os.Stdout)
		if err != nil {
			logger.Fatal("failed to verify message", "error", err)
		}
		if !verified {
			os.Exit(1)
		}
	case "recover":
		if err := runRecover(logger, args, os.Stdin, os.Stdout); err != nil {
			logger.Fatal("failed to recover address", "error", err)
		}
	default:
		logger.Fatal("Unknown CLI command", "name", name)
	}
}
