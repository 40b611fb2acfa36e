package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/derin/classpanel/internal/app/repositories"
	"github.com/derin/classpanel/internal/bootstrap"
	"github.com/derin/classpanel/internal/pkg/logger"
	"github.com/derin/classpanel/internal/seed"
)

func main() {
	dataPath := flag.String("data", "seed/data.json", "path to the seed dataset")
	timeout := flag.Duration("timeout", 2*time.Minute, "overall seed timeout")
	flag.Parse()

	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		os.Exit(1)
	}

	dbPool, err := bootstrap.SetupDatabase(cfg, lgr)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to setup database")
		os.Exit(1)
	}
	defer dbPool.Close()

	dataset, err := seed.LoadFile(*dataPath)
	if err != nil {
		logger.Error().Err(err).Str("path", *dataPath).Msg("Failed to load dataset")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	loader := seed.NewLoader(repositories.NewRepositories(dbPool))
	if err := loader.Run(ctx, dataset); err != nil {
		logger.Error().Err(err).Msg("Seed failed")
		os.Exit(1)
	}
}
