package anim

import (
	"bytes"
	_ "embed"
	"image"

	"github.com/pkg/errors"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

//go:embed assets/player.svg
var playerSVG []byte

// FrameSize is the edge length of one sprite frame in pixels.
const FrameSize = 16

// Sheet is a rasterized sprite sheet with one row of frames per State.
type Sheet struct {
	Image  *image.RGBA
	Frames int
}

// PlayerSheet rasterizes the embedded viewpoint sprite at scale times its
// native size.
func PlayerSheet(scale int) (*Sheet, error) {
	return RasterizeSheet(playerSVG, DefaultFrames, 2, scale)
}

// RasterizeSheet renders an SVG sheet laid out as rows×frames cells of
// FrameSize pixels, scaled by scale.
func RasterizeSheet(svg []byte, frames, rows, scale int) (*Sheet, error) {
	if scale < 1 {
		scale = 1
	}
	width := frames * FrameSize * scale
	height := rows * FrameSize * scale

	icon, err := oksvg.ReadIconStream(bytes.NewReader(svg))
	if err != nil {
		return nil, errors.Wrap(err, "parse sprite svg")
	}
	icon.SetTarget(0, 0, float64(width), float64(height))

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	scanner := rasterx.NewScannerGV(width, height, img, img.Bounds())
	raster := rasterx.NewDasher(width, height, scanner)
	icon.Draw(raster, 1.0)

	return &Sheet{Image: img, Frames: frames}, nil
}

// FrameRect returns the bounds of frame i of state s.
func (sh *Sheet) FrameRect(s State, i int) image.Rectangle {
	size := sh.Image.Bounds().Dx() / sh.Frames
	i %= sh.Frames
	if i < 0 {
		i += sh.Frames
	}
	x := i * size
	y := int(s) * size
	return image.Rect(x, y, x+size, y+size)
}

// Frame returns frame i of state s as a sub-image.
func (sh *Sheet) Frame(s State, i int) image.Image {
	return sh.Image.SubImage(sh.FrameRect(s, i))
}
