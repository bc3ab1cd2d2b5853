package main

import (
	"errors"
	"fmt"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/skybi/chaintable/internal/config"
	"github.com/skybi/chaintable/internal/workload"
	"os"
)

func main() {
	// Set up zerolog to use pretty printing
	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out: os.Stderr,
	})
	log.Info().Msg("starting up...")

	// Load the application configuration
	log.Info().Msg("loading configuration...")
	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatal().Err(err).Msg("could not load the configuration")
	}
	if cfg.IsEnvProduction() {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Debug().Str("config", fmt.Sprintf("%+v", cfg)).Msg("")

	opts, err := workload.FromConfig(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid workload configuration")
	}

	// Run the workload and verify the table against the reference map
	log.Info().
		Int("operations", opts.Operations).
		Int("key_space", opts.KeySpace).
		Str("key_kind", opts.KeyKind).
		Int64("seed", opts.Seed).
		Msg("running workload...")
	stats, err := workload.Run(opts, log.Logger)
	if err != nil {
		var mismatch *workload.MismatchError
		if errors.As(err, &mismatch) {
			log.Fatal().Err(err).Int("step", mismatch.Step).Str("op", mismatch.Op).Msg("the table diverged from the reference map")
		}
		log.Fatal().Err(err).Msg("could not run the workload")
	}

	log.Info().
		Int("operations", stats.Operations).
		Int("inserts", stats.Inserts).
		Int("erases", stats.Erases).
		Int("refs", stats.Refs).
		Int("finds", stats.Finds).
		Int("ats", stats.Ats).
		Int("hits", stats.Hits).
		Int("misses", stats.Misses).
		Int("grows", stats.Grows).
		Int("shrinks", stats.Shrinks).
		Int("max_capacity", stats.MaxCapacity).
		Int("final_size", stats.FinalSize).
		Int("final_capacity", stats.FinalCapacity).
		Dur("duration", stats.Duration).
		Msg("workload verified")
	log.Info().Msg("done!")
}
