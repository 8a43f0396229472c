package main

import (
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/duel/common"
	"github.com/milk9111/duel/ecs/component"
	"github.com/milk9111/duel/match"
	"golang.org/x/image/font/basicfont"
)

var (
	panelColor   = color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 200}
	buttonColor  = color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255}
	pressedColor = color.NRGBA{R: 0x55, G: 0x55, B: 0x55, A: 255}
	textColor    = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

// menuKit holds what every panel needs so the menus share one look.
type menuKit struct {
	face     ebtext.Face
	btnImage *widget.ButtonImage
	btnText  *widget.ButtonTextColor
}

func newMenuKit() *menuKit {
	pressed := imageui.NewNineSliceColor(pressedColor)
	idle := imageui.NewNineSliceColor(buttonColor)
	return &menuKit{
		face:     ebtext.NewGoXFace(basicfont.Face7x13),
		btnImage: &widget.ButtonImage{Idle: idle, Pressed: pressed},
		btnText:  &widget.ButtonTextColor{Idle: textColor},
	}
}

func (k *menuKit) text(label string) *widget.Text {
	return widget.NewText(
		widget.TextOpts.Text(label, &k.face, textColor),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
	)
}

func (k *menuKit) button(label string, clicked func()) *widget.Button {
	return widget.NewButton(
		widget.ButtonOpts.Image(k.btnImage),
		widget.ButtonOpts.Text(label, &k.face, k.btnText),
		widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			clicked()
		}),
	)
}

// panel is a centred, vertically stacked box on a transparent root.
func (k *menuKit) panel(children ...widget.PreferredSizeLocateableWidget) *ebitenui.UI {
	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(imageui.NewNineSliceColor(panelColor)),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(10),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 20, Bottom: 20, Left: 30, Right: 30}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(common.BaseWidth/3, common.BaseHeight/4),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionCenter, VerticalPosition: widget.AnchorLayoutPositionCenter}),
		),
	)
	for _, child := range children {
		panel.AddChild(child)
	}

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(panel)
	return &ebitenui.UI{Container: root}
}

func (k *menuKit) row(children ...widget.PreferredSizeLocateableWidget) *widget.Container {
	row := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
			widget.RowLayoutOpts.Spacing(8),
		)),
		widget.ContainerOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
	)
	for _, child := range children {
		row.AddChild(child)
	}
	return row
}

// selectMenu lets each human pick a variant. Bot slots pick on their own.
type selectMenu struct {
	g      *Game
	ui     *ebitenui.UI
	status [match.Slots]*widget.Text
}

func newSelectMenu(g *Game) *selectMenu {
	k := newMenuKit()
	menu := &selectMenu{g: g}

	children := []widget.PreferredSizeLocateableWidget{k.text("Choose your fighters")}
	keys := [match.Slots]string{"1 / 2", "9 / 0"}
	for i := range menu.status {
		slot := i + 1
		menu.status[i] = k.text("")
		label := k.text(fmt.Sprintf("Player %d", slot))
		if g.session.Bot(slot) {
			children = append(children, k.row(label, menu.status[i]))
			continue
		}
		children = append(children, k.row(
			label,
			k.button("Monkey", func() { g.selectSlot(slot, component.VariantMonkey) }),
			k.button("Samurai", func() { g.selectSlot(slot, component.VariantSamurai) }),
			menu.status[i],
		))
		children = append(children, k.text("keys "+keys[i]))
	}
	menu.ui = k.panel(children...)
	menu.refresh()
	return menu
}

func (m *selectMenu) refresh() {
	gate := m.g.session.Match().Gate()
	for i, status := range m.status {
		slot := i + 1
		v, ok := gate.Selected(slot)
		switch {
		case ok:
			status.Label = v.String()
		case m.g.session.Bot(slot):
			status.Label = "bot choosing"
		default:
			status.Label = "waiting"
		}
	}
}

// endMenu reports the round result and offers a rematch.
type endMenu struct {
	ui    *ebitenui.UI
	title *widget.Text
}

func newEndMenu(g *Game) *endMenu {
	k := newMenuKit()
	menu := &endMenu{title: k.text("")}
	menu.ui = k.panel(
		menu.title,
		k.button("Restart", g.restart),
		k.button("Quit", func() { g.quit = true }),
		k.text("enter restarts, esc quits"),
	)
	return menu
}

func (m *endMenu) refresh(outcome match.Outcome) {
	if outcome.Winner == 0 {
		m.title.Label = "Double knockout"
		return
	}
	m.title.Label = fmt.Sprintf("Player %d wins", outcome.Winner)
}
