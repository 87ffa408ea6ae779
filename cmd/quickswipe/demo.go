package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/phanxgames/quickswipe"
	"github.com/spf13/cobra"
)

const (
	demoW = 540
	demoH = 960
)

var (
	demoBackground = color.RGBA{R: 0x23, G: 0x1e, B: 0x2d, A: 0xff}
	demoWindow     = color.RGBA{R: 0x4c, G: 0xb3, B: 0xe6, A: 0xff}
	demoNavBar     = color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0x60}
)

func newDemoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Open a window and swipe the app card with mouse or touch",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := newPipeline(a.cfg, a.logger, demoW, demoH)
			if err != nil {
				return err
			}
			defer p.Close()

			g := &demoGame{
				p:     p,
				src:   quickswipe.NewTouchSource(),
				pixel: ebiten.NewImage(1, 1),
			}
			g.pixel.Fill(color.White)

			ebiten.SetWindowTitle("quickswipe demo")
			ebiten.SetWindowSize(demoW, demoH)
			return ebiten.RunGame(g)
		},
	}
}

// demoGame draws the app window offset by the live gesture displacement.
type demoGame struct {
	p     *pipeline
	src   *quickswipe.TouchSource
	pixel *ebiten.Image
	last  float64
}

func (g *demoGame) Update() error {
	for _, ev := range g.src.Poll() {
		g.p.Receive(ev)
	}
	g.p.Tick(1/float32(ebiten.TPS()), false)
	if h := g.p.Active(); h != nil {
		g.last = h.Displacement()
	} else {
		g.last = 0
	}
	return nil
}

func (g *demoGame) Draw(screen *ebiten.Image) {
	screen.Fill(demoBackground)

	x, y := 0.0, g.last
	switch g.p.device.navBar {
	case quickswipe.NavBarLeft:
		x, y = -g.last, 0
	case quickswipe.NavBarRight:
		x, y = g.last, 0
	}
	g.fillRect(screen, x+24, y+48, demoW-48, demoH-96, demoWindow)
	g.drawNavBar(screen)

	msg := fmt.Sprintf("nav: %s %s\ndisplacement: %.0f\nanimation running: %v",
		g.p.device.navBar, g.p.device.mode, g.last, g.p.animations.IsRecentsAnimationRunning())
	if r := g.p.Results(); len(r) > 0 {
		msg += fmt.Sprintf("\nlast result: %s", r[len(r)-1])
	}
	ebitenutil.DebugPrint(screen, msg)
}

func (g *demoGame) Layout(w, h int) (int, int) { return demoW, demoH }

func (g *demoGame) drawNavBar(screen *ebiten.Image) {
	switch g.p.device.navBar {
	case quickswipe.NavBarLeft:
		g.fillRect(screen, 0, 0, navBarSize, demoH, demoNavBar)
	case quickswipe.NavBarRight:
		g.fillRect(screen, demoW-navBarSize, 0, navBarSize, demoH, demoNavBar)
	default:
		g.fillRect(screen, 0, demoH-navBarSize, demoW, navBarSize, demoNavBar)
	}
}

// fillRect scales the 1x1 white pixel into a tinted rectangle.
func (g *demoGame) fillRect(dst *ebiten.Image, x, y, w, h float64, c color.Color) {
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(w, h)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	dst.DrawImage(g.pixel, &op)
}
