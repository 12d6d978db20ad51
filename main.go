package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli"

	"github.com/Silmaen/EvenementLoto-sub001/internal/config"
	"github.com/Silmaen/EvenementLoto-sub001/internal/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	setupLogging(cfg)

	app := newApp(cfg)
	runErr := app.Run(os.Args)

	if path := cfg.MetricsPath(); path != "" {
		if err := metrics.WriteFile(path); err != nil {
			log.Error().Err(err).Str("path", path).Msg("failed to write metrics")
		}
	}
	if runErr != nil {
		log.Fatal().Err(runErr).Msg("command failed")
	}
}

func setupLogging(cfg config.Config) {
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if cfg.LogFormat == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

func newApp(cfg config.Config) *cli.App {
	app := cli.NewApp()
	app.Name = "loto"
	app.Usage = "run loto rounds: draw balls, track the round, record winners"
	app.Version = "0.1.0"
	app.Commands = []cli.Command{
		drawCommand(cfg),
		playCommand(cfg),
		showCommand(cfg),
		historyCommand(cfg),
		cardsCommand(cfg),
		statsCommand(cfg),
	}
	return app
}
