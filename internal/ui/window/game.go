// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

//go:build !nowindow

package window

import (
	"errors"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const (
	defaultWidth  = 1280
	defaultHeight = 720
)

// Game adapts Host to ebiten.
type Game struct {
	host     *Host
	width    int
	height   int
	textures []*ebiten.Image
}

// NewGame creates the ebiten game.
func NewGame(opts Options) (*Game, error) {
	host, err := NewHost(opts)
	if err != nil {
		return nil, err
	}
	return &Game{host: host}, nil
}

// Update is the frame scheduler.
func (g *Game) Update() error {
	x, y := ebiten.CursorPosition()
	err := g.host.Step(Input{
		Now:       time.Now(),
		Width:     g.width,
		Height:    g.height,
		Scale:     ebiten.DeviceScaleFactor(),
		CursorX:   x,
		CursorY:   y,
		Minimized: ebiten.IsWindowMinimized(),
		Click:     inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		Escape:    inpututil.IsKeyJustPressed(ebiten.KeyEscape),
	})
	if errors.Is(err, ErrTerminated) {
		return ebiten.Termination
	}
	return err
}

// Draw uploads every layer and draws it scaled back to logical pixels.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.host.Background())

	layers := g.host.Layers()
	if len(g.textures) != len(layers) {
		g.textures = make([]*ebiten.Image, len(layers))
	}

	scale := g.host.Scale()
	if scale <= 0 {
		scale = 1
	}

	for i, layer := range layers {
		w, h := layer.Size()
		tex := g.textures[i]
		if tex == nil || tex.Bounds().Dx() != w || tex.Bounds().Dy() != h {
			if tex != nil {
				tex.Dispose()
			}
			tex = ebiten.NewImage(w, h)
			g.textures[i] = tex
		}
		tex.WritePixels(layer.Pixels())

		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(1/scale, 1/scale)
		op.Filter = ebiten.FilterLinear
		screen.DrawImage(tex, op)
	}
}

// Layout uses the window size as the logical size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.width, g.height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

// Run opens the window and blocks until it is closed or Escape is pressed.
func Run(opts Options) error {
	g, err := NewGame(opts)
	if err != nil {
		return err
	}
	defer g.host.Dispose()

	ebiten.SetWindowTitle("constellation")
	ebiten.SetWindowSize(defaultWidth, defaultHeight)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(g.host.TPS())

	return ebiten.RunGame(g)
}
