package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/duel/common"
	"github.com/milk9111/duel/config"
	"github.com/milk9111/duel/logger"
	"github.com/milk9111/duel/session"
)

func main() {
	configPath := flag.String("config", "", "optional YAML config file")
	debug := flag.Bool("debug", false, "draw collider outlines and animation intents")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flag.Parse()

	if err := run(*configPath, *debug, *baseMonitor); err != nil {
		log.Fatal(err)
	}
}

func run(configPath string, debug, baseMonitor bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	logger.Init(cfg.Logger())

	s, err := session.Open(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	if baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(common.BaseWidth, common.BaseHeight)
	ebiten.SetWindowTitle("duel")
	ebiten.SetTPS(cfg.TickRate)

	return ebiten.RunGame(NewGame(s, debug))
}
