// Package display renders tracker emissions onto MOTChallenge image
// sequences for the CLI's --display flag: one box and id label per
// emission, colored by id, auto-scaled to frame size. It has no effect
// on tracking behavior — it is a pure sink for emitted tracks.
package display

import (
	"fmt"
	"image"
	"image/color"

	"gocv.io/x/gocv"

	colorpkg "github.com/nmichlo/sort-go/color"
	"github.com/nmichlo/sort-go/track"
)

// defaultPalette is a small tab10-inspired by-id color cycle, used
// whenever the caller does not supply a custom one.
var defaultPalette = []colorpkg.Color{
	{B: 31, G: 119, R: 180},
	{B: 14, G: 127, R: 255},
	{B: 44, G: 160, R: 44},
	{B: 40, G: 39, R: 214},
	{B: 189, G: 103, R: 148},
	{B: 75, G: 86, R: 140},
	{B: 194, G: 119, R: 227},
	{B: 127, G: 127, R: 127},
	{B: 34, G: 189, R: 188},
	{B: 207, G: 190, R: 23},
}

func (r *Renderer) colorForID(id int) color.RGBA {
	if id < 0 {
		id = -id
	}
	return r.palette[id%len(r.palette)].ToRGBA()
}

// Renderer draws frames annotated with emitted tracks to an output
// directory, one image per frame.
type Renderer struct {
	outDir  string
	palette []colorpkg.Color
}

// NewRenderer builds a renderer that writes annotated frames under
// outDir, cycling through palette (falling back to defaultPalette when
// palette is empty) to color each id's box and label. Line thickness
// auto-scales from each frame's larger dimension (see RenderFrame).
func NewRenderer(outDir string, palette []colorpkg.Color) *Renderer {
	if len(palette) == 0 {
		palette = defaultPalette
	}
	return &Renderer{outDir: outDir, palette: palette}
}

// RenderFrame loads imgPath, draws box+id for every emission, and
// writes the annotated frame to <outDir>/<frame>.jpg.
func (r *Renderer) RenderFrame(imgPath string, frame int, emissions []track.Emission) error {
	img := gocv.IMRead(imgPath, gocv.IMReadColor)
	if img.Empty() {
		return fmt.Errorf("display: could not read image %s", imgPath)
	}
	defer img.Close()

	maxDim := img.Rows()
	if img.Cols() > maxDim {
		maxDim = img.Cols()
	}
	thickness := maxDim / 500
	if thickness < 1 {
		thickness = 1
	}

	for _, e := range emissions {
		c := r.colorForID(e.ID)
		pt1 := image.Pt(int(e.Box.X1), int(e.Box.Y1))
		pt2 := image.Pt(int(e.Box.X2), int(e.Box.Y2))
		gocv.Rectangle(&img, image.Rectangle{Min: pt1, Max: pt2}, c, thickness)
		label := fmt.Sprintf("%d", e.ID)
		gocv.PutText(&img, label, image.Pt(pt1.X, pt1.Y-4), gocv.FontHersheySimplex, 0.6, c, thickness)
	}

	outPath := fmt.Sprintf("%s/%06d.jpg", r.outDir, frame)
	if ok := gocv.IMWrite(outPath, img); !ok {
		return fmt.Errorf("display: could not write annotated frame %s", outPath)
	}
	return nil
}
