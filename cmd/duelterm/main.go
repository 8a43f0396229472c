// Command duelterm plays a duel in the terminal.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/milk9111/duel/config"
	"github.com/milk9111/duel/logger"
	"github.com/milk9111/duel/match"
	"github.com/milk9111/duel/session"
)

func main() {
	configPath := flag.String("config", "", "optional YAML config file")
	hold := flag.Duration("hold", defaultHold, "how long a direction key stays held without a repeat")
	logPath := flag.String("log", "duelterm.log", "log file; the terminal is busy drawing")
	flag.Parse()

	if err := run(*configPath, *logPath, *hold); err != nil {
		fmt.Fprintf(os.Stderr, "duelterm: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, logPath string, hold time.Duration) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	defer logFile.Close()
	logCfg := cfg.Logger()
	logCfg.Output = logFile
	logger.Init(logCfg)

	s, err := session.Open(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	t := &terminal{
		screen:  screen,
		session: s,
	}
	for i := range t.inputs {
		t.inputs[i] = newTermInput(termBindings[i], hold)
	}
	t.run(context.Background(), time.Second/time.Duration(cfg.TickRate))
	slog.Info("duelterm exited")
	return nil
}

type terminal struct {
	screen  tcell.Screen
	session *session.Session
	inputs  [match.Slots]*termInput
}

func (t *terminal) run(ctx context.Context, tick time.Duration) {
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	for {
		select {
		case ev, ok := <-events:
			if !ok || !t.handle(ev) {
				return
			}
		case <-ticker.C:
			t.step(ctx)
			t.draw()
		}
	}
}

// handle applies one terminal event and reports whether to keep running.
func (t *terminal) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() != tcell.KeyRune {
			return true
		}
		return t.key(ev.Rune(), ev.When())
	case *tcell.EventResize:
		t.screen.Sync()
	}
	return true
}

func (t *terminal) key(r rune, now time.Time) bool {
	m := t.session.Match()
	switch {
	case r == 'q':
		return false
	case r == 'r' && m.Outcome().Over:
		t.restart()
		return true
	}
	for i, in := range t.inputs {
		slot := i + 1
		if m.Locked() {
			if v, ok := in.pick(r); ok {
				if err := t.session.Select(slot, v); err != nil {
					slog.Warn("selection rejected", "slot", slot, "err", err)
				}
				return true
			}
			continue
		}
		if in.key(r, now) {
			return true
		}
	}
	return true
}

func (t *terminal) step(ctx context.Context) {
	m := t.session.Match()
	now := time.Now()
	for i, in := range t.inputs {
		slot := i + 1
		if m.Locked() || t.session.Bot(slot) {
			in.clear()
			continue
		}
		for _, cmd := range in.sample(now) {
			if err := t.session.Queue(slot, cmd); err != nil {
				slog.Warn("command rejected", "slot", slot, "cmd", cmd.Kind.String(), "err", err)
			}
		}
	}
	t.session.Step(ctx)
}

func (t *terminal) restart() {
	for _, in := range t.inputs {
		in.clear()
	}
	t.session.Restart()
}
