package textgeom

import (
	"fmt"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// Built-in face names accepted by LoadFace in place of a file path.
const (
	FaceBasic   = "basic"
	FaceGoBold  = "gobold"
	FaceRegular = "goregular"
)

// LoadFace resolves a face by built-in name or TTF/OTF path. An empty name
// selects the 7x13 bitmap face. Size is in pixels and ignored for the
// bitmap face.
func LoadFace(name string, size float64) (font.Face, error) {
	switch name {
	case "", FaceBasic:
		return basicfont.Face7x13, nil
	case FaceGoBold:
		return parseFace(gobold.TTF, size)
	case FaceRegular:
		return parseFace(goregular.TTF, size)
	}

	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("read font %s: %w", name, err)
	}
	face, err := parseFace(data, size)
	if err != nil {
		return nil, fmt.Errorf("font %s: %w", name, err)
	}
	return face, nil
}

func parseFace(data []byte, size float64) (font.Face, error) {
	if size <= 0 {
		size = 16
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("new face: %w", err)
	}
	return face, nil
}
