package glide

import "github.com/hajimehoshi/ebiten/v2"

// RunConfig holds window settings for Run.
type RunConfig struct {
	Title         string
	Width, Height int
	// Resizable lets the user resize the window. The logical screen keeps
	// Width x Height.
	Resizable bool
	// ShowFPS turns on the engine's FPS/TPS readout.
	ShowFPS bool
}

// Run opens a window and runs the engine as an ebiten game until the window
// closes or Update returns an error.
func Run(e *Engine, cfg RunConfig) error {
	if cfg.Title != "" {
		ebiten.SetWindowTitle(cfg.Title)
	}
	if cfg.Width > 0 && cfg.Height > 0 {
		ebiten.SetWindowSize(cfg.Width, cfg.Height)
		e.ScreenWidth, e.ScreenHeight = cfg.Width, cfg.Height
	}
	e.ShowFPS = e.ShowFPS || cfg.ShowFPS
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	return ebiten.RunGame(e)
}
