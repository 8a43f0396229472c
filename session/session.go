// Package session wires config, prefabs, bots and hot reload around a match
// so every front-end drives a duel the same way.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"strings"

	"github.com/milk9111/duel/bot"
	"github.com/milk9111/duel/config"
	"github.com/milk9111/duel/ecs/component"
	"github.com/milk9111/duel/match"
	"github.com/milk9111/duel/prefabs"
)

// Session is not safe for concurrent use. Front-ends call it from their
// update loop only.
type Session struct {
	cfg     config.Config
	match   *match.Match
	pilots  [match.Slots]*match.Pilot
	watcher *prefabs.Watcher

	arenaChanged bool
}

// Open builds a match from cfg. Slots with a bot script configured are
// played by that bot; the rest expect a human.
func Open(cfg config.Config) (*Session, error) {
	prefabs.SetDir(cfg.PrefabDir)

	s := &Session{cfg: cfg}
	if err := s.build(); err != nil {
		return nil, err
	}

	scripts := [match.Slots]string{cfg.Bot1Script, cfg.Bot2Script}
	for i, name := range scripts {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		b, err := bot.Load(name, cfg.BotThink)
		if err != nil {
			s.Close()
			return nil, err
		}
		s.pilots[i] = &match.Pilot{Slot: i + 1, Bot: b}
		slog.Info("bot attached", "slot", i+1, "bot", name)
	}

	if cfg.HotReload {
		w, err := prefabs.NewWatcher(cfg.PrefabDir)
		if err != nil {
			slog.Warn("hot reload disabled", "dir", cfg.PrefabDir, "err", err)
		} else {
			s.watcher = w
			slog.Info("watching prefabs", "dir", cfg.PrefabDir)
		}
	}
	return s, nil
}

func (s *Session) build() error {
	opts, err := match.LoadOptions(s.cfg.Policy())
	if err != nil {
		return fmt.Errorf("session: load prefabs: %w", err)
	}
	m, err := match.New(opts)
	if err != nil {
		return fmt.Errorf("session: new match: %w", err)
	}
	s.match = m
	return nil
}

func (s *Session) Match() *match.Match { return s.match }
func (s *Session) Config() config.Config { return s.cfg }

// Bot reports whether slot is played by a script.
func (s *Session) Bot(slot int) bool {
	if slot < 1 || slot > match.Slots {
		return false
	}
	return s.pilots[slot-1] != nil
}

// Humans counts the slots waiting on a person.
func (s *Session) Humans() int {
	n := 0
	for _, p := range s.pilots {
		if p == nil {
			n++
		}
	}
	return n
}

// Queue forwards a human command. Commands for bot slots are ignored.
func (s *Session) Queue(slot int, cmd component.Command) error {
	if s.Bot(slot) {
		return nil
	}
	return s.match.Queue(slot, cmd)
}

// Select forwards a human's variant choice.
func (s *Session) Select(slot int, v component.Variant) error {
	if s.Bot(slot) {
		return nil
	}
	err := s.match.SelectSlot(slot, v)
	if errors.Is(err, match.ErrAlreadySelected) {
		return nil
	}
	return err
}

// Step applies pending prefab changes, lets bots act and advances the match
// by one fixed tick.
func (s *Session) Step(ctx context.Context) {
	s.pollReload()
	dt := s.cfg.TickSeconds()
	for _, p := range s.pilots {
		s.match.Drive(ctx, p, dt)
	}
	s.match.Tick(dt)
}

// Restart begins the next round. A changed arena rebuilds the match since
// walls and spawns are fixed once placed.
func (s *Session) Restart() {
	if s.arenaChanged {
		s.arenaChanged = false
		old := s.match
		if err := s.build(); err != nil {
			slog.Error("arena reload failed, keeping the current arena", "err", err)
		} else {
			old.Close()
			s.resetBots()
			slog.Info("arena reloaded", "arena", s.match.Arena().Name)
			return
		}
	}
	s.match.ResetRound()
	s.resetBots()
}

func (s *Session) resetBots() {
	for _, p := range s.pilots {
		if p != nil {
			p.Bot.Reset()
		}
	}
}

func (s *Session) pollReload() {
	if s.watcher == nil {
		return
	}
	for {
		select {
		case name, ok := <-s.watcher.Events:
			if !ok {
				s.watcher = nil
				return
			}
			s.reload(name)
		case err, ok := <-s.watcher.Errors:
			if ok {
				slog.Warn("prefab watcher error", "err", err)
			}
		default:
			return
		}
	}
}

func (s *Session) reload(name string) {
	switch {
	case name == "fighter.yaml":
		spec, err := prefabs.LoadFighterSpec()
		if err != nil {
			slog.Error("fighter reload failed", "err", err)
			return
		}
		if err := s.match.ApplyFighterSpec(spec); err != nil {
			slog.Error("fighter reload rejected", "err", err)
			return
		}
		slog.Info("fighter spec staged for next round", "name", spec.Name)
	case name == "arena.yaml":
		s.arenaChanged = true
		slog.Info("arena change staged for next round")
	case strings.HasSuffix(name, ".tengo"):
		s.reloadScript(name)
	default:
		slog.Debug("ignoring prefab change", "file", name)
	}
}

func (s *Session) reloadScript(file string) {
	changed := scriptName(file)
	for i, p := range s.pilots {
		if p == nil || scriptName(p.Bot.Name()) != changed {
			continue
		}
		b, err := bot.Load(p.Bot.Name(), s.cfg.BotThink)
		if err != nil {
			slog.Error("bot reload failed", "slot", i+1, "bot", p.Bot.Name(), "err", err)
			continue
		}
		s.pilots[i] = &match.Pilot{Slot: p.Slot, Bot: b, Variant: p.Variant}
		slog.Info("bot reloaded", "slot", i+1, "bot", b.Name())
	}
}

func scriptName(name string) string {
	return strings.TrimSuffix(path.Base(name), ".tengo")
}

// Close stops the watcher and releases the match.
func (s *Session) Close() {
	if s.watcher != nil {
		if err := s.watcher.Close(); err != nil {
			slog.Warn("closing prefab watcher", "err", err)
		}
		s.watcher = nil
	}
	if s.match != nil {
		s.match.Close()
	}
}
