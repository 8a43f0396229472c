package component

import (
	"math"
	"testing"
)

func TestHealthApplyDamage(t *testing.T) {
	tests := []struct {
		name       string
		max        float64
		hits       []float64
		wantHP     float64
		wantDead   bool
		wantDeaths int
	}{
		{name: "punch_then_kick_then_kill", max: 100, hits: []float64{20, 20, 60}, wantHP: 0, wantDead: true, wantDeaths: 1},
		{name: "overkill_clamps_at_zero", max: 30, hits: []float64{50}, wantHP: 0, wantDead: true, wantDeaths: 1},
		{name: "hits_after_death_ignored", max: 10, hits: []float64{10, 10, 10}, wantHP: 0, wantDead: true, wantDeaths: 1},
		{name: "zero_and_negative_ignored", max: 100, hits: []float64{0, -5}, wantHP: 100},
		{name: "nan_ignored", max: 100, hits: []float64{math.NaN()}, wantHP: 100},
		{name: "partial", max: 100, hits: []float64{10, 20}, wantHP: 70},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := NewHealth(tc.max)
			deaths := 0
			h.OnDeath = func(*Health) { deaths++ }
			for _, hit := range tc.hits {
				h.ApplyDamage(hit)
				if h.Current < 0 || h.Current > h.Max {
					t.Fatalf("health %v out of [0, %v]", h.Current, h.Max)
				}
			}
			if h.Current != tc.wantHP {
				t.Fatalf("expected hp %v, got %v", tc.wantHP, h.Current)
			}
			if h.Dead != tc.wantDead {
				t.Fatalf("expected dead=%v, got %v", tc.wantDead, h.Dead)
			}
			if deaths != tc.wantDeaths {
				t.Fatalf("expected %d death signals, got %d", tc.wantDeaths, deaths)
			}
		})
	}
}

func TestHealthApplyDamageReportsChange(t *testing.T) {
	h := NewHealth(10)
	if !h.ApplyDamage(4) {
		t.Fatalf("first hit should change health")
	}
	if !h.ApplyDamage(100) {
		t.Fatalf("killing hit should change health")
	}
	if h.ApplyDamage(1) {
		t.Fatalf("hit on a dead fighter should not report a change")
	}
}

func TestHealthReset(t *testing.T) {
	h := NewHealth(100)
	h.ApplyDamage(100)
	h.Reset()
	if !h.Alive() || h.Current != 100 {
		t.Fatalf("expected full revived health, got %+v", *h)
	}
	deaths := 0
	h.OnDeath = func(*Health) { deaths++ }
	h.ApplyDamage(100)
	if deaths != 1 {
		t.Fatalf("death should fire again in a new round, got %d", deaths)
	}
	if h.Fraction() != 0 {
		t.Fatalf("expected fraction 0, got %v", h.Fraction())
	}
}

func TestFighterSetMoveInputClamps(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0.5, 0.5},
		{3, 1},
		{-7, -1},
		{math.NaN(), 0},
	}
	for _, tc := range tests {
		f := &Fighter{}
		f.SetMoveInput(tc.in)
		if f.MoveInput != tc.want {
			t.Fatalf("SetMoveInput(%v) = %v, want %v", tc.in, f.MoveInput, tc.want)
		}
	}
}

func TestFighterFaceFrozenWhenDead(t *testing.T) {
	f := &Fighter{Facing: FacingRight}
	f.Face(-1)
	if f.Facing != FacingLeft {
		t.Fatalf("expected to turn left")
	}
	f.Face(0)
	if f.Facing != FacingLeft {
		t.Fatalf("zero input should keep facing")
	}
	f.Dead = true
	f.Face(1)
	if f.Facing != FacingLeft {
		t.Fatalf("dead fighter turned")
	}
}

func TestFighterCanAttack(t *testing.T) {
	tests := []struct {
		name string
		f    Fighter
		want bool
	}{
		{name: "idle", want: true},
		{name: "walking", f: Fighter{MoveInput: 1}, want: true},
		{name: "running", f: Fighter{Running: true}},
		{name: "punching", f: Fighter{Punching: true}},
		{name: "kicking", f: Fighter{Kicking: true}},
		{name: "dead", f: Fighter{Dead: true}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.f.CanAttack(); got != tc.want {
				t.Fatalf("CanAttack() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestParseVariantAndPolicy(t *testing.T) {
	if v, ok := ParseVariant("samurai"); !ok || v != VariantSamurai {
		t.Fatalf("expected samurai, got %v %v", v, ok)
	}
	if _, ok := ParseVariant("ninja"); ok {
		t.Fatalf("unknown variant accepted")
	}
	if p, ok := ParseFacingPolicy("run"); !ok || p != FacingWhileRunning {
		t.Fatalf("expected run policy, got %v %v", p, ok)
	}
	if p, ok := ParseFacingPolicy(""); !ok || p != FacingWhileMoving {
		t.Fatalf("expected default moving policy, got %v %v", p, ok)
	}
}

func TestCommandQueueDrain(t *testing.T) {
	q := &CommandQueue{}
	q.Push(MoveAxis(1))
	q.Push(Punch())
	got := q.Drain()
	if len(got) != 2 || got[0].Kind != CommandMoveAxis || got[1].Kind != CommandPunch {
		t.Fatalf("unexpected drain %v", got)
	}
	if len(q.Drain()) != 0 {
		t.Fatalf("queue should be empty after drain")
	}
}
