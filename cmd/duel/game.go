package main

import (
	"context"
	"fmt"
	"image/color"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/duel/common"
	"github.com/milk9111/duel/ecs"
	"github.com/milk9111/duel/ecs/component"
	"github.com/milk9111/duel/ecs/system"
	"github.com/milk9111/duel/match"
	"github.com/milk9111/duel/session"
)

var (
	backgroundColor = color.NRGBA{R: 0x1c, G: 0x1f, B: 0x26, A: 0xff}
	groundColor     = color.NRGBA{R: 0x3a, G: 0x33, B: 0x2a, A: 0xff}
	wallColor       = color.NRGBA{R: 0x55, G: 0x5b, B: 0x66, A: 0xff}
	monkeyColor     = color.NRGBA{R: 0xc8, G: 0x8a, B: 0x3c, A: 0xff}
	samuraiColor    = color.NRGBA{R: 0xb0, G: 0x32, B: 0x3a, A: 0xff}
	deadColor       = color.NRGBA{R: 0x66, G: 0x66, B: 0x66, A: 0xff}
	healthColor     = color.NRGBA{R: 0x4c, G: 0xc0, B: 0x5a, A: 0xff}
	healthBackColor = color.NRGBA{R: 0x40, G: 0x10, B: 0x10, A: 0xff}
	debugColor      = color.NRGBA{R: 0x00, G: 0xff, B: 0xff, A: 0xff}
)

const (
	groundLine   = 0.8
	healthWidth  = 400
	healthHeight = 16
	healthMargin = 24
)

type Game struct {
	ctx     context.Context
	session *session.Session
	debug   bool
	quit    bool

	inputs     [match.Slots]slotInput
	selectMenu *selectMenu
	endMenu    *endMenu
}

func NewGame(s *session.Session, debug bool) *Game {
	g := &Game{
		ctx:     context.Background(),
		session: s,
		debug:   debug,
	}
	for i := range g.inputs {
		g.inputs[i].bind = bindings[i]
	}
	g.selectMenu = newSelectMenu(g)
	g.endMenu = newEndMenu(g)
	return g
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}
	m := g.session.Match()

	switch {
	case m.Locked():
		for i := range g.inputs {
			g.inputs[i].held = component.HeldInput{}
			if v, ok := g.inputs[i].pick(); ok {
				g.selectSlot(i+1, v)
			}
		}
		g.selectMenu.refresh()
		g.selectMenu.ui.Update()
	default:
		g.pollInputs()
		if m.Outcome().Over {
			g.endMenu.refresh(m.Outcome())
			g.endMenu.ui.Update()
			if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
				g.restart()
			}
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.quit = true
	}

	g.session.Step(g.ctx)
	return nil
}

func (g *Game) pollInputs() {
	gamepads := ebiten.AppendGamepadIDs(nil)
	for i := range g.inputs {
		slot := i + 1
		if g.session.Bot(slot) {
			continue
		}
		for _, cmd := range g.inputs[i].poll(gamepads) {
			if err := g.session.Queue(slot, cmd); err != nil {
				slog.Warn("command rejected", "slot", slot, "cmd", cmd.Kind.String(), "err", err)
			}
		}
	}
}

func (g *Game) selectSlot(slot int, v component.Variant) {
	if err := g.session.Select(slot, v); err != nil {
		slog.Warn("selection rejected", "slot", slot, "variant", v.String(), "err", err)
	}
}

func (g *Game) restart() {
	for i := range g.inputs {
		g.inputs[i].held = component.HeldInput{}
	}
	g.session.Restart()
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	m := g.session.Match()
	w := m.World()
	ps := m.Physics()
	bounds := m.Bounds()
	bounds.L -= 0.5
	bounds.R += 0.5
	cam := common.FitCamera(bounds, common.BaseWidth, common.BaseHeight, groundLine, 1)

	_, gy := cam.Point(0, 0)
	vector.FillRect(screen, 0, float32(gy), common.BaseWidth, float32(common.BaseHeight-gy), groundColor, false)

	for _, e := range m.Walls() {
		if bb, ok := ps.Bounds(w, e); ok {
			fillBB(screen, cam, bb, wallColor)
		}
	}

	for slot := 1; slot <= match.Slots; slot++ {
		e, ok := m.Fighter(slot)
		if !ok {
			continue
		}
		g.drawFighter(screen, cam, w, ps, e)
		g.drawHUD(screen, w, e, slot)
	}

	if g.debug {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("TPS: %.1f  FPS: %.1f", ebiten.ActualTPS(), ebiten.ActualFPS()))
	}

	switch {
	case m.Locked():
		g.selectMenu.ui.Draw(screen)
	case m.Outcome().Over:
		g.endMenu.ui.Draw(screen)
	}
}

func (g *Game) drawFighter(screen *ebiten.Image, cam common.Camera, w *ecs.World, ps *system.PhysicsSystem, e ecs.Entity) {
	f, ok := ecs.Get(w, e, component.FighterComponent.Kind())
	if !ok {
		return
	}
	bb, ok := ps.Bounds(w, e)
	if !ok {
		return
	}

	clr := variantColor(f.Variant)
	if f.Dead {
		clr = deadColor
	}
	fillBB(screen, cam, bb, clr)

	// facing notch at head height
	x, y, width, height := cam.Rect(bb)
	notch := float32(width) / 3
	nx := float32(x + width)
	if f.Facing == component.FacingLeft {
		nx = float32(x) - notch
	}
	vector.FillRect(screen, nx, float32(y+height*0.15), notch, float32(height*0.1), clr, false)

	if f.Attacking() {
		reach := f.Params.AttackRange * cam.ScaleX
		ax := float32(x + width)
		if f.Facing == component.FacingLeft {
			ax = float32(x - reach)
		}
		vector.StrokeRect(screen, ax, float32(y+height*0.3), float32(reach), float32(height*0.1), 1, clr, false)
	}

	if g.debug {
		vector.StrokeRect(screen, float32(x), float32(y), float32(width), float32(height), 1, debugColor, false)
		if anim, ok := ecs.Get(w, e, component.AnimationIntentComponent.Kind()); ok {
			ebitenutil.DebugPrintAt(screen, string(anim.Current), int(x), int(y)-16)
		}
	}
}

func (g *Game) drawHUD(screen *ebiten.Image, w *ecs.World, e ecs.Entity, slot int) {
	f, ok := ecs.Get(w, e, component.FighterComponent.Kind())
	if !ok {
		return
	}
	fraction := 0.0
	if h, ok := ecs.Get(w, e, component.HealthComponent.Kind()); ok {
		fraction = h.Fraction()
	}

	x := float32(healthMargin)
	if slot == 2 {
		x = common.BaseWidth - healthMargin - healthWidth
	}
	y := float32(healthMargin)
	vector.FillRect(screen, x, y, healthWidth, healthHeight, healthBackColor, false)
	filled := float32(healthWidth * fraction)
	fx := x
	if slot == 2 {
		fx = x + healthWidth - filled
	}
	vector.FillRect(screen, fx, y, filled, healthHeight, healthColor, false)

	label := fmt.Sprintf("P%d %s", slot, f.Variant)
	if g.session.Bot(slot) {
		label += " (bot)"
	}
	ebitenutil.DebugPrintAt(screen, label, int(x), int(y)+healthHeight+4)
}

func fillBB(screen *ebiten.Image, cam common.Camera, bb cp.BB, clr color.Color) {
	x, y, w, h := cam.Rect(bb)
	vector.FillRect(screen, float32(x), float32(y), float32(w), float32(h), clr, false)
}

func variantColor(v component.Variant) color.Color {
	if v == component.VariantSamurai {
		return samuraiColor
	}
	return monkeyColor
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return common.BaseWidth, common.BaseHeight
}
