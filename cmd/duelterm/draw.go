package main

import (
	"fmt"
	"math"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/duel/common"
	"github.com/milk9111/duel/ecs"
	"github.com/milk9111/duel/ecs/component"
	"github.com/milk9111/duel/match"
)

const (
	groundLine = 0.8
	cellAspect = 2
	barWidth   = 20
)

var (
	wallStyle    = tcell.StyleDefault.Foreground(tcell.ColorGray)
	groundStyle  = tcell.StyleDefault.Foreground(tcell.ColorOlive)
	monkeyStyle  = tcell.StyleDefault.Foreground(tcell.ColorOrange)
	samuraiStyle = tcell.StyleDefault.Foreground(tcell.ColorRed)
	deadStyle    = tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	hudStyle     = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	bannerStyle  = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
)

func (t *terminal) draw() {
	t.screen.Clear()
	width, height := t.screen.Size()
	m := t.session.Match()
	w := m.World()

	cam := common.FitCamera(m.Bounds(), float64(width), float64(height), groundLine, cellAspect)
	_, gy := cam.Point(0, 0)
	for x := 0; x < width; x++ {
		t.screen.SetContent(x, int(math.Round(gy)), '▀', nil, groundStyle)
	}
	for _, e := range m.Walls() {
		if bb, ok := m.Physics().Bounds(w, e); ok {
			t.fill(cam, bb, '█', wallStyle)
		}
	}

	for slot := 1; slot <= match.Slots; slot++ {
		e, ok := m.Fighter(slot)
		if !ok {
			continue
		}
		t.drawFighter(cam, w, m, e)
		t.drawHUD(w, e, slot, width)
	}

	switch {
	case m.Locked():
		t.banner(height/2, t.selectionLine(m))
	case m.Outcome().Over:
		msg := "double knockout"
		if winner := m.Outcome().Winner; winner != 0 {
			msg = fmt.Sprintf("player %d wins", winner)
		}
		t.banner(height/2, msg+"  (r restart, q quit)")
	}
	t.screen.Show()
}

func (t *terminal) drawFighter(cam common.Camera, w *ecs.World, m *match.Match, e ecs.Entity) {
	f, ok := ecs.Get(w, e, component.FighterComponent.Kind())
	if !ok {
		return
	}
	bb, ok := m.Physics().Bounds(w, e)
	if !ok {
		return
	}
	style := monkeyStyle
	if f.Variant == component.VariantSamurai {
		style = samuraiStyle
	}
	if f.Dead {
		style = deadStyle
	}
	body := '█'
	if f.Attacking() {
		body = '▓'
	}
	x0, y0, x1, _ := t.fill(cam, bb, body, style)

	face, nx := '>', x1
	if f.Facing == component.FacingLeft {
		face, nx = '<', x0-1
	}
	t.screen.SetContent(nx, y0, face, nil, style)
}

func (t *terminal) drawHUD(w *ecs.World, e ecs.Entity, slot, width int) {
	f, ok := ecs.Get(w, e, component.FighterComponent.Kind())
	if !ok {
		return
	}
	fraction := 0.0
	if h, ok := ecs.Get(w, e, component.HealthComponent.Kind()); ok {
		fraction = h.Fraction()
	}
	filled := int(math.Round(fraction * barWidth))
	bar := "[" + strings.Repeat("#", filled) + strings.Repeat(".", barWidth-filled) + "]"
	label := fmt.Sprintf("P%d %-7s %s", slot, f.Variant, bar)
	if t.session.Bot(slot) {
		label += " bot"
	}
	x := 1
	if slot == 2 {
		x = width - len(label) - 1
	}
	t.text(x, 0, label, hudStyle)
}

func (t *terminal) selectionLine(m *match.Match) string {
	parts := make([]string, 0, match.Slots)
	keys := [match.Slots]string{"1/2", "9/0"}
	for i := range match.Slots {
		slot := i + 1
		state := "choose " + keys[i]
		if v, ok := m.Gate().Selected(slot); ok {
			state = v.String()
		} else if t.session.Bot(slot) {
			state = "bot"
		}
		parts = append(parts, fmt.Sprintf("P%d: %s", slot, state))
	}
	return "monkey or samurai  " + strings.Join(parts, "  ")
}

// fill paints bb and returns the covered cell range, at least one cell wide
// and tall.
func (t *terminal) fill(cam common.Camera, bb cp.BB, r rune, style tcell.Style) (int, int, int, int) {
	x, y, w, h := cam.Rect(bb)
	x0, y0 := int(math.Round(x)), int(math.Round(y))
	x1, y1 := int(math.Round(x+w)), int(math.Round(y+h))
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}
	for cy := y0; cy < y1; cy++ {
		for cx := x0; cx < x1; cx++ {
			t.screen.SetContent(cx, cy, r, nil, style)
		}
	}
	return x0, y0, x1, y1
}

func (t *terminal) text(x, y int, s string, style tcell.Style) {
	for i, r := range []rune(s) {
		t.screen.SetContent(x+i, y, r, nil, style)
	}
}

func (t *terminal) banner(y int, s string) {
	width, _ := t.screen.Size()
	x := (width - len([]rune(s))) / 2
	if x < 0 {
		x = 0
	}
	t.text(x, y, s, bannerStyle)
}
