package glide

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// fpsRefresh is how often, in seconds, the FPS readout is resampled.
const fpsRefresh = 0.5

// fpsCounter keeps a throttled FPS/TPS readout so the text does not flicker.
type fpsCounter struct {
	elapsed float32
	text    string
}

func (f *fpsCounter) update(dt float32) {
	f.elapsed += dt
	if f.text != "" && f.elapsed < fpsRefresh {
		return
	}
	f.elapsed = 0
	f.text = fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS())
}

// draw prints the readout in the top-right corner of screen.
func (f *fpsCounter) draw(screen *ebiten.Image) {
	if f.text == "" {
		return
	}
	ebitenutil.DebugPrintAt(screen, f.text, screen.Bounds().Dx()-80, 0)
}
