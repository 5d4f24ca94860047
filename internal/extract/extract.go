// Package extract produces cropped rasters from selections.
package extract

import (
	"image"
	"math"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"

	"github.com/cropdeck/cropdeck/internal/editor"
	"github.com/cropdeck/cropdeck/internal/geom"
)

// Extraction is a finished crop: the output raster plus the selection
// in its metadata form. Rectangles are stored normalized; polygons keep
// the vertices exactly as traced.
type Extraction struct {
	Image     *image.NRGBA
	Mode      editor.Mode
	Selection editor.Selection
}

// Apply crops src with the given selection. It returns false when the
// selection does not satisfy the crop preconditions or its bounding box
// covers no pixels of the image. Selection coordinates are relative to
// the image origin.
func Apply(src image.Image, sel editor.Selection) (Extraction, bool) {
	if src == nil || !sel.Croppable() {
		return Extraction{}, false
	}

	// Crop math assumes a zero-origin image.
	if b := src.Bounds(); b.Min.X != 0 || b.Min.Y != 0 {
		src = imaging.Clone(src)
	}

	switch sel.Kind {
	case editor.KindRectangle:
		return cropRect(src, sel.Rect.Normalize())
	case editor.KindPolygon:
		return cropPolygon(src, sel.Points)
	}
	return Extraction{}, false
}

func cropRect(src image.Image, r geom.Rect) (Extraction, bool) {
	px := pixelBounds(r, src)
	if px.Empty() {
		return Extraction{}, false
	}

	out := imaging.Crop(src, px)
	return Extraction{
		Image:     out,
		Mode:      editor.ModeRectangle,
		Selection: editor.RectSelection(r),
	}, true
}

func cropPolygon(src image.Image, pts geom.Polygon) (Extraction, bool) {
	px := pixelBounds(pts.BBox(), src)
	if px.Empty() {
		return Extraction{}, false
	}

	// Pixels outside the clip path stay transparent.
	dc := gg.NewContext(px.Dx(), px.Dy())
	dc.MoveTo(pts[0].X-float64(px.Min.X), pts[0].Y-float64(px.Min.Y))
	for _, p := range pts[1:] {
		dc.LineTo(p.X-float64(px.Min.X), p.Y-float64(px.Min.Y))
	}
	dc.ClosePath()
	dc.Clip()
	dc.DrawImage(src, -px.Min.X, -px.Min.Y)

	return Extraction{
		Image:     imaging.Clone(dc.Image()),
		Mode:      editor.ModePolygon,
		Selection: editor.Selection{Kind: editor.KindPolygon, Points: pts, Closed: true},
	}, true
}

// pixelBounds rounds a selection bounding box outward to whole pixels
// and intersects it with the image bounds.
func pixelBounds(r geom.Rect, src image.Image) image.Rectangle {
	px := image.Rect(
		int(math.Floor(r.X)),
		int(math.Floor(r.Y)),
		int(math.Ceil(r.X+r.Width)),
		int(math.Ceil(r.Y+r.Height)),
	)
	return px.Intersect(src.Bounds())
}
