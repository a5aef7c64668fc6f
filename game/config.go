package game

import "image/color"

// Theme holds the colors used to draw the world
type Theme struct {
	// Background clears the screen every frame
	Background color.Color

	// Outline strokes chunk borders
	Outline color.Color

	// Label colors the chunk coordinate text
	Label color.Color
}

// DefaultTheme returns the slate background with muted debug lines
func DefaultTheme() Theme {
	debug := rgb(0.5, 0.55, 0.6)
	return Theme{
		Background: rgb(0.4, 0.45, 0.5),
		Outline:    debug,
		Label:      debug,
	}
}

// rgb builds an opaque color from 0..1 components
func rgb(r, g, b float64) color.RGBA {
	return color.RGBA{
		R: uint8(r*255 + 0.5),
		G: uint8(g*255 + 0.5),
		B: uint8(b*255 + 0.5),
		A: 255,
	}
}
