package prefabs

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadBundledSpecs(t *testing.T) {
	SetDir("")
	t.Cleanup(func() { SetDir("prefabs") })

	fighter, err := LoadFighterSpec()
	if err != nil {
		t.Fatalf("fighter: %v", err)
	}
	p := fighter.Params()
	if fighter.MaxHealth != 100 || p.PunchDamage != 10 || p.KickDamage != 20 || p.AttackRange != 1.5 {
		t.Fatalf("unexpected fighter spec %+v", fighter)
	}

	arena, err := LoadArenaSpec()
	if err != nil {
		t.Fatalf("arena: %v", err)
	}
	one, ok := arena.Slot(1)
	if !ok || one.FacingLeft || one.X != -3 {
		t.Fatalf("unexpected slot 1 %+v", one)
	}
	two, ok := arena.Slot(2)
	if !ok || !two.FacingLeft || two.X != 3 {
		t.Fatalf("unexpected slot 2 %+v", two)
	}
	if _, ok := arena.Slot(3); ok {
		t.Fatalf("slot 3 should not exist")
	}
}

func TestDiskOverride(t *testing.T) {
	dir := t.TempDir()
	SetDir(dir)
	t.Cleanup(func() { SetDir("prefabs") })

	body := "name: heavy\nmax_health: 150\nwalk_speed: 2\nrun_speed_multiplier: 2\npunch_damage: 15\nkick_damage: 25\nattack_range: 1.2\npunch_duration: 0.6\nkick_duration: 0.9\ncollider:\n  width: 0.8\n  height: 2\n"
	if err := os.WriteFile(filepath.Join(dir, FighterFile), []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	spec, err := LoadFighterSpec()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if spec.Name != "heavy" || spec.MaxHealth != 150 {
		t.Fatalf("disk copy not used: %+v", spec)
	}
	if _, ok := ModTime(FighterFile); !ok {
		t.Fatalf("expected a mod time for the disk copy")
	}
	if _, ok := ModTime(ArenaFile); ok {
		t.Fatalf("arena has no disk copy")
	}

	// the arena falls back to the embedded copy
	if _, err := LoadArenaSpec(); err != nil {
		t.Fatalf("arena fallback: %v", err)
	}
}

func TestFighterSpecValidate(t *testing.T) {
	base := FighterSpec{
		MaxHealth:     100,
		WalkSpeed:     3,
		AttackRange:   1.5,
		PunchDuration: 0.5,
		KickDuration:  0.7,
		Collider:      ColliderSpec{Width: 0.6, Height: 1.8},
	}
	if err := base.Validate(); err != nil {
		t.Fatalf("base spec invalid: %v", err)
	}
	tests := []struct {
		name   string
		mutate func(*FighterSpec)
	}{
		{"no_health", func(s *FighterSpec) { s.MaxHealth = 0 }},
		{"negative_speed", func(s *FighterSpec) { s.WalkSpeed = -1 }},
		{"negative_damage", func(s *FighterSpec) { s.KickDamage = -1 }},
		{"no_range", func(s *FighterSpec) { s.AttackRange = 0 }},
		{"no_duration", func(s *FighterSpec) { s.PunchDuration = 0 }},
		{"no_collider", func(s *FighterSpec) { s.Collider.Width = 0 }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := base
			tc.mutate(&s)
			if err := s.Validate(); !errors.Is(err, ErrInvalidSpec) {
				t.Fatalf("expected ErrInvalidSpec, got %v", err)
			}
		})
	}
}

func TestArenaSpecValidate(t *testing.T) {
	slots := []SlotSpec{{Slot: 1}, {Slot: 2, FacingLeft: true}}
	tests := []struct {
		name  string
		arena ArenaSpec
		ok    bool
	}{
		{name: "valid", arena: ArenaSpec{Slots: slots}, ok: true},
		{name: "one_slot", arena: ArenaSpec{Slots: slots[:1]}},
		{name: "duplicate_slot", arena: ArenaSpec{Slots: []SlotSpec{{Slot: 1}, {Slot: 1}}}},
		{name: "slot_out_of_range", arena: ArenaSpec{Slots: []SlotSpec{{Slot: 1}, {Slot: 3}}}},
		{name: "bad_variant", arena: ArenaSpec{Slots: []SlotSpec{{Slot: 1, DefaultVariant: "ninja"}, {Slot: 2}}}},
		{name: "flat_wall", arena: ArenaSpec{Slots: slots, Walls: []WallSpec{{Width: 1}}}},
		{name: "negative_push", arena: ArenaSpec{Slots: slots, PushForce: -1}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.arena.Validate()
			if tc.ok && err != nil {
				t.Fatalf("unexpected error %v", err)
			}
			if !tc.ok && !errors.Is(err, ErrInvalidSpec) {
				t.Fatalf("expected ErrInvalidSpec, got %v", err)
			}
		})
	}
}

func TestCleanScriptPath(t *testing.T) {
	tests := map[string]string{
		"brawler":                        "scripts/brawler.tengo",
		"brawler.tengo":                  "scripts/brawler.tengo",
		"scripts/cautious":               "scripts/cautious.tengo",
		"prefabs/scripts/cautious.tengo": "scripts/cautious.tengo",
	}
	for in, want := range tests {
		if got := cleanScriptPath(in); got != want {
			t.Fatalf("cleanScriptPath(%q) = %q, want %q", in, got, want)
		}
	}
}
