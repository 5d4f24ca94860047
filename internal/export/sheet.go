package export

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/cropdeck/cropdeck/internal/session"
)

const (
	sheetCellW  = 180
	sheetCellH  = 150
	sheetPad    = 10
	sheetLabelH = 16
)

// ContactSheet renders the crops as a labeled grid and writes it to
// path as a PNG. Cells are laid out in a near-square grid.
func ContactSheet(path string, crops []*session.Crop) error {
	if len(crops) == 0 {
		return fmt.Errorf("no crops to lay out")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	cols := int(math.Ceil(math.Sqrt(float64(len(crops)))))
	rows := (len(crops) + cols - 1) / cols

	width := cols*(sheetCellW+sheetPad) + sheetPad
	height := rows*(sheetCellH+sheetLabelH+sheetPad) + sheetPad

	dc := gg.NewContext(width, height)
	dc.SetRGB(0.13, 0.14, 0.16)
	dc.Clear()

	ttf, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return fmt.Errorf("failed to parse font: %w", err)
	}
	face := truetype.NewFace(ttf, &truetype.Options{
		Size:    12,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	dc.SetFontFace(face)

	for i, c := range crops {
		x := sheetPad + (i%cols)*(sheetCellW+sheetPad)
		y := sheetPad + (i/cols)*(sheetCellH+sheetLabelH+sheetPad)

		thumb := imaging.Fit(c.Image, sheetCellW, sheetCellH, imaging.Lanczos)
		tb := thumb.Bounds()
		dc.DrawImage(thumb, x+(sheetCellW-tb.Dx())/2, y+(sheetCellH-tb.Dy())/2)

		dc.SetRGB(0.35, 0.38, 0.42)
		dc.DrawRectangle(float64(x), float64(y), sheetCellW, sheetCellH)
		dc.Stroke()

		b := c.Image.Bounds()
		dc.SetRGB(0.85, 0.87, 0.9)
		dc.DrawString(fmt.Sprintf("#%d %dx%d", c.Number, b.Dx(), b.Dy()),
			float64(x), float64(y+sheetCellH+sheetLabelH-4))
	}

	return dc.SavePNG(path)
}
