// Package bot drives a fighter from a tengo script. The script reads the
// `self`, `other` and `memory` maps and writes the `move`, `run` and
// `attack` globals; the bot turns changes in those into fighter commands.
package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/duel/ecs/component"
	"github.com/milk9111/duel/prefabs"
)

var ErrNoScript = errors.New("bot: empty script")

// DefaultThink is how often, in seconds, a bot re-runs its script.
const DefaultThink = 0.1

// Observation is what a script can see of the match.
type Observation struct {
	SelfX      float64
	SelfHP     float64
	OtherX     float64
	OtherHP    float64
	Range      float64
	FacingLeft bool
	Attacking  bool
	Running    bool
	Dead       bool
	OtherDead  bool
}

func (o Observation) self() map[string]any {
	return map[string]any{
		"x":           o.SelfX,
		"hp":          o.SelfHP,
		"range":       o.Range,
		"facing_left": o.FacingLeft,
		"attacking":   o.Attacking,
		"running":     o.Running,
		"dead":        o.Dead,
	}
}

func (o Observation) other() map[string]any {
	return map[string]any{
		"x":    o.OtherX,
		"hp":   o.OtherHP,
		"dead": o.OtherDead,
	}
}

// Bot is not safe for concurrent use.
type Bot struct {
	name     string
	compiled *tengo.Compiled
	memory   *tengo.Map
	think    float64
	elapsed  float64
	started  bool
	held     component.HeldInput
}

// Load compiles a script from prefabs/scripts.
func Load(name string, think float64) (*Bot, error) {
	src, err := prefabs.LoadScript(name)
	if err != nil {
		return nil, fmt.Errorf("bot: load %s: %w", name, err)
	}
	b, err := New(name, src, think)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func New(name string, src []byte, think float64) (*Bot, error) {
	if len(strings.TrimSpace(string(src))) == 0 {
		return nil, ErrNoScript
	}
	if think <= 0 {
		think = DefaultThink
	}

	script := tengo.NewScript(src)
	_ = script.Add("self", map[string]any{})
	_ = script.Add("other", map[string]any{})
	_ = script.Add("memory", map[string]any{})
	_ = script.Add("move", 0.0)
	_ = script.Add("run", false)
	_ = script.Add("attack", "")

	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("bot: compile %s: %w", name, err)
	}

	return &Bot{
		name:     name,
		compiled: compiled,
		memory:   &tengo.Map{Value: map[string]tengo.Object{}},
		think:    think,
	}, nil
}

func (b *Bot) Name() string {
	if b == nil {
		return ""
	}
	return b.name
}

// Reset forgets script memory and held inputs, for a new round.
func (b *Bot) Reset() {
	if b == nil {
		return
	}
	b.memory = &tengo.Map{Value: map[string]tengo.Object{}}
	b.elapsed = 0
	b.started = false
	b.held = component.HeldInput{}
}

// Step advances the bot clock by dt and, when a think is due, runs the
// script and returns the commands needed to move from the previously held
// inputs to the script's new decision.
func (b *Bot) Step(ctx context.Context, obs Observation, dt float64) ([]component.Command, error) {
	if b == nil || b.compiled == nil {
		return nil, ErrNoScript
	}
	b.elapsed += dt
	if b.started && b.elapsed < b.think {
		return nil, nil
	}
	b.elapsed = 0
	b.started = true

	if err := b.compiled.Set("self", obs.self()); err != nil {
		return nil, err
	}
	if err := b.compiled.Set("other", obs.other()); err != nil {
		return nil, err
	}
	if err := b.compiled.Set("memory", b.memory); err != nil {
		return nil, err
	}
	if err := b.compiled.RunContext(ctx); err != nil {
		return nil, fmt.Errorf("bot: run %s: %w", b.name, err)
	}

	return b.decide(
		b.compiled.Get("move").Float(),
		b.compiled.Get("run").Bool(),
		strings.ToLower(strings.TrimSpace(b.compiled.Get("attack").String())),
	), nil
}

func (b *Bot) decide(move float64, run bool, attack string) []component.Command {
	return b.held.Sample(move, run, attack == "punch", attack == "kick")
}
