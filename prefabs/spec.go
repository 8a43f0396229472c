package prefabs

import (
	"errors"
	"fmt"

	"github.com/milk9111/duel/ecs/component"
	"gopkg.in/yaml.v3"
)

const (
	FighterFile = "fighter.yaml"
	ArenaFile   = "arena.yaml"
)

var ErrInvalidSpec = errors.New("prefabs: invalid spec")

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type ColliderSpec struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// FighterSpec holds the combat tunables shared by both slots.
type FighterSpec struct {
	Name               string       `yaml:"name"`
	MaxHealth          float64      `yaml:"max_health"`
	WalkSpeed          float64      `yaml:"walk_speed"`
	RunSpeedMultiplier float64      `yaml:"run_speed_multiplier"`
	PunchDamage        float64      `yaml:"punch_damage"`
	KickDamage         float64      `yaml:"kick_damage"`
	AttackRange        float64      `yaml:"attack_range"`
	PunchDuration      float64      `yaml:"punch_duration"`
	KickDuration       float64      `yaml:"kick_duration"`
	DeathDisableDelay  float64      `yaml:"death_disable_delay"`
	Collider           ColliderSpec `yaml:"collider"`
}

func LoadFighterSpec() (FighterSpec, error) {
	spec, err := LoadSpec[FighterSpec](FighterFile)
	if err != nil {
		return FighterSpec{}, err
	}
	if err := spec.Validate(); err != nil {
		return FighterSpec{}, fmt.Errorf("prefabs: %s: %w", FighterFile, err)
	}
	return spec, nil
}

func (s FighterSpec) Validate() error {
	switch {
	case s.MaxHealth <= 0:
		return fmt.Errorf("%w: max_health must be positive", ErrInvalidSpec)
	case s.WalkSpeed < 0 || s.RunSpeedMultiplier < 0:
		return fmt.Errorf("%w: speeds must not be negative", ErrInvalidSpec)
	case s.PunchDamage < 0 || s.KickDamage < 0:
		return fmt.Errorf("%w: damage must not be negative", ErrInvalidSpec)
	case s.AttackRange <= 0:
		return fmt.Errorf("%w: attack_range must be positive", ErrInvalidSpec)
	case s.PunchDuration <= 0 || s.KickDuration <= 0:
		return fmt.Errorf("%w: attack durations must be positive", ErrInvalidSpec)
	case s.Collider.Width <= 0 || s.Collider.Height <= 0:
		return fmt.Errorf("%w: collider needs a positive size", ErrInvalidSpec)
	}
	return nil
}

// Params converts the spec to controller parameters.
func (s FighterSpec) Params() component.FighterParams {
	return component.FighterParams{
		WalkSpeed:          s.WalkSpeed,
		RunSpeedMultiplier: s.RunSpeedMultiplier,
		PunchDamage:        s.PunchDamage,
		KickDamage:         s.KickDamage,
		AttackRange:        s.AttackRange,
		PunchDuration:      s.PunchDuration,
		KickDuration:       s.KickDuration,
		DeathDisableDelay:  s.DeathDisableDelay,
	}
}

type WallSpec struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type SlotSpec struct {
	Slot           int     `yaml:"slot"`
	X              float64 `yaml:"x"`
	Y              float64 `yaml:"y"`
	FacingLeft     bool    `yaml:"facing_left"`
	DefaultVariant string  `yaml:"default_variant"`
}

// ArenaSpec lays out the walls, the push force and the two spawn slots.
type ArenaSpec struct {
	Name      string     `yaml:"name"`
	PushForce float64    `yaml:"push_force"`
	Walls     []WallSpec `yaml:"walls"`
	Slots     []SlotSpec `yaml:"slots"`
}

func LoadArenaSpec() (ArenaSpec, error) {
	spec, err := LoadSpec[ArenaSpec](ArenaFile)
	if err != nil {
		return ArenaSpec{}, err
	}
	if err := spec.Validate(); err != nil {
		return ArenaSpec{}, fmt.Errorf("prefabs: %s: %w", ArenaFile, err)
	}
	return spec, nil
}

func (s ArenaSpec) Validate() error {
	if s.PushForce < 0 {
		return fmt.Errorf("%w: push_force must not be negative", ErrInvalidSpec)
	}
	if len(s.Slots) != 2 {
		return fmt.Errorf("%w: arena needs exactly 2 slots, got %d", ErrInvalidSpec, len(s.Slots))
	}
	seen := map[int]bool{}
	for _, slot := range s.Slots {
		if slot.Slot != 1 && slot.Slot != 2 {
			return fmt.Errorf("%w: slot %d out of range", ErrInvalidSpec, slot.Slot)
		}
		if seen[slot.Slot] {
			return fmt.Errorf("%w: slot %d declared twice", ErrInvalidSpec, slot.Slot)
		}
		seen[slot.Slot] = true
		if slot.DefaultVariant != "" {
			if _, ok := component.ParseVariant(slot.DefaultVariant); !ok {
				return fmt.Errorf("%w: unknown variant %q", ErrInvalidSpec, slot.DefaultVariant)
			}
		}
	}
	for i, wall := range s.Walls {
		if wall.Width <= 0 || wall.Height <= 0 {
			return fmt.Errorf("%w: wall %d needs a positive size", ErrInvalidSpec, i)
		}
	}
	return nil
}

// Slot returns the spawn for slot n.
func (s ArenaSpec) Slot(n int) (SlotSpec, bool) {
	for _, slot := range s.Slots {
		if slot.Slot == n {
			return slot, true
		}
	}
	return SlotSpec{}, false
}
