package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"madn/experiments"
)

func main() {
	configPath := flag.String("config", "", "YAML batch configuration; the defaults are used when empty")
	games := flag.Int("games", 0, "number of games, overrides the configuration when positive")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})

	cfg := experiments.DefaultConfig()
	if *configPath != "" {
		var err error
		cfg, err = experiments.LoadConfig(*configPath)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load configuration")
		}
	}
	if *games > 0 {
		cfg.Games = *games
	}

	report, err := experiments.Run(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("batch failed")
	}
	if report.Dir != "" {
		log.Info().Msgf("stored results in %s", report.Dir)
	}

	c := report.Counts
	fmt.Printf("rolls=%d permission_rolls=%d releases=%d moves=%d forfeits=%d captures=%d in %s\n",
		c.Rolls, c.PermissionRolls, c.Releases, c.Moves, c.Forfeits, c.Captures, c.Duration)
	fmt.Println(report.Summary)
}
