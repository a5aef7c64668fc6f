package game

import (
	"os"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/pkg/errors"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/opentype"

	"chunkstream/world"
)

// FontLoader loads the chunk label face on first use and hands out the
// same face afterwards. An empty path selects the embedded Go Mono font.
type FontLoader struct {
	path string
	size float64

	mu   sync.Mutex
	face text.Face
}

// NewFontLoader creates a loader for a TTF/OTF file at the given point size.
func NewFontLoader(path string, size float64) *FontLoader {
	return &FontLoader{path: path, size: size}
}

// Face returns the label face. Failures wrap world.ErrResourceLoad.
func (l *FontLoader) Face() (text.Face, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.face != nil {
		return l.face, nil
	}

	data := gomono.TTF
	name := "gomono"
	if l.path != "" {
		var err error
		if data, err = os.ReadFile(l.path); err != nil {
			return nil, errors.Wrapf(world.ErrResourceLoad, "read font %s: %v", l.path, err)
		}
		name = l.path
	}

	f, err := opentype.Parse(data)
	if err != nil {
		return nil, errors.Wrapf(world.ErrResourceLoad, "parse font %s: %v", name, err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    l.size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, errors.Wrapf(world.ErrResourceLoad, "font face %s: %v", name, err)
	}
	l.face = text.NewGoXFace(face)
	return l.face, nil
}

// LabeledChunkFactory builds chunks that carry the label face as their resource.
type LabeledChunkFactory struct {
	ChunkSize float64
	Fonts     *FontLoader
}

// NewChunk implements world.ChunkFactory.
func (f LabeledChunkFactory) NewChunk(c world.ChunkCoord) (*world.Chunk, error) {
	face, err := f.Fonts.Face()
	if err != nil {
		return nil, err
	}
	ch := world.NewChunk(c, f.ChunkSize)
	ch.Resource = face
	return ch, nil
}
