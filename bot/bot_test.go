package bot

import (
	"context"
	"errors"
	"testing"

	"github.com/milk9111/duel/ecs/component"
)

func kinds(cmds []component.Command) []component.CommandKind {
	out := make([]component.CommandKind, 0, len(cmds))
	for _, c := range cmds {
		out = append(out, c.Kind)
	}
	return out
}

func sameKinds(got []component.Command, want ...component.CommandKind) bool {
	k := kinds(got)
	if len(k) != len(want) {
		return false
	}
	for i := range k {
		if k[i] != want[i] {
			return false
		}
	}
	return true
}

func TestNewRejectsEmptyScript(t *testing.T) {
	if _, err := New("empty", []byte("  \n"), 0); !errors.Is(err, ErrNoScript) {
		t.Fatalf("expected ErrNoScript, got %v", err)
	}
	if _, err := New("broken", []byte("move = ("), 0); err == nil {
		t.Fatalf("expected compile error")
	}
}

func TestStepTranslatesDecisions(t *testing.T) {
	src := []byte(`
move = other.x > self.x ? 1.0 : -1.0
run = self.hp > 50
attack = other.hp < 50 ? "kick" : ""
`)
	b, err := New("inline", src, 0.1)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	ctx := context.Background()

	cmds, err := b.Step(ctx, Observation{SelfX: 0, OtherX: 5, SelfHP: 100, OtherHP: 100}, 0)
	if err != nil {
		t.Fatalf("step: %v", err)
	}
	if !sameKinds(cmds, component.CommandMoveAxis, component.CommandRunStart) || cmds[0].Value != 1 {
		t.Fatalf("unexpected first commands %+v", cmds)
	}

	// not time to think yet
	cmds, err = b.Step(ctx, Observation{SelfX: 0, OtherX: -5, SelfHP: 10, OtherHP: 10}, 0.05)
	if err != nil || cmds != nil {
		t.Fatalf("expected no commands between thinks, got %+v %v", cmds, err)
	}

	cmds, err = b.Step(ctx, Observation{SelfX: 0, OtherX: -5, SelfHP: 10, OtherHP: 10}, 0.05)
	if err != nil {
		t.Fatalf("step: %v", err)
	}
	if !sameKinds(cmds, component.CommandMoveAxis, component.CommandRunEnd, component.CommandKick) || cmds[0].Value != -1 {
		t.Fatalf("unexpected second commands %+v", cmds)
	}

	// unchanged held inputs are not resent
	cmds, err = b.Step(ctx, Observation{SelfX: 0, OtherX: -5, SelfHP: 10, OtherHP: 100}, 0.1)
	if err != nil {
		t.Fatalf("step: %v", err)
	}
	if len(cmds) != 0 {
		t.Fatalf("expected no commands, got %+v", cmds)
	}
}

func TestStepClampsMove(t *testing.T) {
	b, err := New("clamp", []byte(`move = 7.5`), 0.1)
	if err != nil {
		t.Fatal(err)
	}
	cmds, err := b.Step(context.Background(), Observation{}, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(cmds) != 1 || cmds[0].Value != 1 {
		t.Fatalf("expected clamped move, got %+v", cmds)
	}
}

func TestMemoryPersistsUntilReset(t *testing.T) {
	src := []byte(`
n := memory.n
if is_undefined(n) { n = 0 }
memory.n = n + 1
attack = memory.n >= 2 ? "punch" : ""
`)
	b, err := New("memory", src, 0.1)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	if cmds, _ := b.Step(ctx, Observation{}, 0); len(cmds) != 0 {
		t.Fatalf("first think should not attack, got %+v", cmds)
	}
	if cmds, _ := b.Step(ctx, Observation{}, 0.1); !sameKinds(cmds, component.CommandPunch) {
		t.Fatalf("second think should punch, got %+v", cmds)
	}
	b.Reset()
	if cmds, _ := b.Step(ctx, Observation{}, 0); len(cmds) != 0 {
		t.Fatalf("memory survived reset, got %+v", cmds)
	}
}

func TestStepHonoursContext(t *testing.T) {
	b, err := New("spin", []byte(`for { move = 1.0 }`), 0.1)
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := b.Step(ctx, Observation{}, 0); err == nil {
		t.Fatalf("expected cancelled script to fail")
	}
}

func TestLoadBundledScripts(t *testing.T) {
	for _, name := range []string{"brawler", "cautious"} {
		t.Run(name, func(t *testing.T) {
			b, err := Load(name, 0)
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if b.Name() != name {
				t.Fatalf("unexpected name %q", b.Name())
			}
			cmds, err := b.Step(context.Background(), Observation{SelfX: -3, OtherX: 3, SelfHP: 100, OtherHP: 100, Range: 1.5}, 0)
			if err != nil {
				t.Fatalf("step: %v", err)
			}
			if len(cmds) == 0 || cmds[0].Kind != component.CommandMoveAxis || cmds[0].Value != 1 {
				t.Fatalf("expected %s to advance, got %+v", name, cmds)
			}
		})
	}
}

func TestLoadMissingScript(t *testing.T) {
	if _, err := Load("nope", 0); err == nil {
		t.Fatalf("expected an error for a missing script")
	}
}
