// Command duelsim plays bot-versus-bot rounds without a display and logs
// the results.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/milk9111/duel/config"
	"github.com/milk9111/duel/logger"
	"github.com/milk9111/duel/session"
)

const (
	defaultBot1 = "brawler"
	defaultBot2 = "cautious"
)

func main() {
	configPath := flag.String("config", "", "optional YAML config file")
	rounds := flag.Int("rounds", 0, "rounds to play; 0 uses the config value")
	maxTime := flag.Float64("max-time", 90, "seconds of match time before a round is called a timeout")
	flag.Parse()

	if err := run(*configPath, *rounds, *maxTime); err != nil {
		fmt.Fprintf(os.Stderr, "duelsim: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string, rounds int, maxTime float64) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	logger.Init(cfg.Logger())

	if cfg.Bot1Script == "" {
		cfg.Bot1Script = defaultBot1
	}
	if cfg.Bot2Script == "" {
		cfg.Bot2Script = defaultBot2
	}
	if rounds <= 0 {
		rounds = cfg.Rounds
	}
	cfg.HotReload = false

	s, err := session.Open(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	result, err := simulate(ctx, s, rounds, maxTime)
	slog.Info("series complete",
		"bot1", cfg.Bot1Script,
		"bot2", cfg.Bot2Script,
		"rounds", result.Rounds,
		"p1_wins", result.Wins[0],
		"p2_wins", result.Wins[1],
		"draws", result.Draws,
		"timeouts", result.Timeouts,
	)
	return err
}
