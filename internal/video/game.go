// Package video wires a system.System to ebiten: one emulated frame per
// Update, a blit of the PPU's frame buffer per Draw, and keyboard input
// mapped onto controller 1.
package video

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/nescore/nesgo/internal/input"
	"github.com/nescore/nesgo/internal/system"
)

var keyButtons = map[ebiten.Key]input.Button{
	ebiten.KeyZ:          input.ButtonA,
	ebiten.KeyX:          input.ButtonB,
	ebiten.KeyShiftLeft:  input.ButtonSelect,
	ebiten.KeyEnter:      input.ButtonStart,
	ebiten.KeyArrowUp:    input.ButtonUp,
	ebiten.KeyArrowDown:  input.ButtonDown,
	ebiten.KeyArrowLeft:  input.ButtonLeft,
	ebiten.KeyArrowRight: input.ButtonRight,
}

// Game implements ebiten.Game around an emulated NES.
type Game struct {
	sys   *system.System
	scale int
	frame *ebiten.Image
	pix   []byte

	audioCtx    *audio.Context
	audioPlayer *audio.Player
}

// NewGame builds a Game at the given integer window scale. When mute is
// false it also starts an ebiten audio player draining the APU's sample
// queue.
func NewGame(sys *system.System, scale int, mute bool) *Game {
	g := &Game{
		sys:   sys,
		scale: scale,
		frame: ebiten.NewImage(256, 240),
		pix:   make([]byte, 256*240*4),
	}

	if !mute {
		sys.SetSampleRate(sampleRate)
		g.audioCtx = audio.NewContext(sampleRate)
		if p, err := g.audioCtx.NewPlayer(&apuStream{src: sys}); err == nil {
			g.audioPlayer = p
			g.audioPlayer.Play()
		}
	}

	return g
}

// Update advances the emulator by exactly one frame and samples controller
// 1's current key state.
func (g *Game) Update() error {
	var buttons uint8
	for key, btn := range keyButtons {
		if ebiten.IsKeyPressed(key) {
			buttons |= uint8(btn)
		}
	}
	g.sys.SetButtons1(buttons)
	g.sys.RunFrame()
	return nil
}

// Draw blits the most recently completed PPU frame buffer, scaled to the
// window.
func (g *Game) Draw(screen *ebiten.Image) {
	g.sys.CopyFrame(g.pix)
	g.frame.WritePixels(g.pix)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(g.scale), float64(g.scale))
	screen.DrawImage(g.frame, op)
}

// Layout reports the NES's native resolution times the scale factor; Draw
// scales the native frame up to fill that screen.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return 256 * g.scale, 240 * g.scale
}
