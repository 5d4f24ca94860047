package draw

import (
	"image"
	"image/color"
	"math"

	"gioui.org/f32"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"

	"github.com/cropdeck/cropdeck/internal/editor"
	"github.com/cropdeck/cropdeck/internal/geom"
	"github.com/cropdeck/cropdeck/internal/viewport"
)

// Selection overlay colors
var (
	ColorSelStroke = color.NRGBA{R: 255, G: 200, B: 80, A: 255}
	ColorSelFill   = color.NRGBA{R: 255, G: 200, B: 80, A: 40}
	ColorVertex    = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	ColorCloseRing = color.NRGBA{R: 120, G: 220, B: 130, A: 255}
)

// strokeWidth is in screen pixels, independent of zoom.
const strokeWidth = 2

// DrawSelection renders the active selection on top of the image.
// closeRadius is the polygon close hit radius in screen pixels.
func DrawSelection(gtx layout.Context, sel editor.Selection, view *viewport.Transform, closeRadius float64) {
	switch sel.Kind {
	case editor.KindRectangle:
		drawRect(gtx, sel.Rect, view)
	case editor.KindPolygon:
		drawPolygon(gtx, sel, view, closeRadius)
	}
}

// drawRect displays the rectangle normalized; the selection itself may
// still carry a negative span mid-drag.
func drawRect(gtx layout.Context, r geom.Rect, view *viewport.Transform) {
	n := r.Normalize()
	p0 := view.ToScreen(geom.Point{X: n.X, Y: n.Y})
	p1 := view.ToScreen(geom.Point{X: n.X + n.Width, Y: n.Y + n.Height})

	var path clip.Path
	path.Begin(gtx.Ops)
	path.MoveTo(f32.Pt(float32(p0.X), float32(p0.Y)))
	path.LineTo(f32.Pt(float32(p1.X), float32(p0.Y)))
	path.LineTo(f32.Pt(float32(p1.X), float32(p1.Y)))
	path.LineTo(f32.Pt(float32(p0.X), float32(p1.Y)))
	path.Close()
	outline := path.End()

	paint.FillShape(gtx.Ops, ColorSelFill, clip.Outline{Path: outline}.Op())
	paint.FillShape(gtx.Ops, ColorSelStroke, clip.Stroke{Path: outline, Width: strokeWidth}.Op())

	corners := [...]geom.Point{
		{X: n.X, Y: n.Y},
		{X: n.X + n.Width, Y: n.Y},
		{X: n.X + n.Width, Y: n.Y + n.Height},
		{X: n.X, Y: n.Y + n.Height},
	}
	for _, c := range corners {
		drawHandle(gtx, view.ToScreen(c))
	}
}

func drawPolygon(gtx layout.Context, sel editor.Selection, view *viewport.Transform, closeRadius float64) {
	pts := sel.Points
	if len(pts) == 0 {
		return
	}

	first := view.ToScreen(pts[0])

	if len(pts) > 1 {
		var path clip.Path
		path.Begin(gtx.Ops)
		path.MoveTo(f32.Pt(float32(first.X), float32(first.Y)))
		for _, p := range pts[1:] {
			sp := view.ToScreen(p)
			path.LineTo(f32.Pt(float32(sp.X), float32(sp.Y)))
		}
		if sel.Closed {
			path.Close()
		}
		outline := path.End()

		if sel.Closed {
			paint.FillShape(gtx.Ops, ColorSelFill, clip.Outline{Path: outline}.Op())
		}
		paint.FillShape(gtx.Ops, ColorSelStroke, clip.Stroke{Path: outline, Width: strokeWidth}.Op())
	}

	// Ring the first vertex once a click there would close the polygon.
	if !sel.Closed && len(pts) > 2 {
		DrawCircleOutline(gtx, float32(first.X), float32(first.Y),
			float32(closeRadius), ColorCloseRing, strokeWidth)
	}

	for _, p := range pts {
		drawHandle(gtx, view.ToScreen(p))
	}
}

// drawHandle draws a small square vertex handle at a screen point.
func drawHandle(gtx layout.Context, p geom.Point) {
	const half = 3
	r := image.Rect(int(p.X)-half, int(p.Y)-half, int(p.X)+half, int(p.Y)+half)
	paint.FillShape(gtx.Ops, ColorVertex, clip.Rect(r).Op())
}

// DrawCircleOutline strokes a circle approximated with line segments.
func DrawCircleOutline(gtx layout.Context, centerX, centerY, radius float32, col color.NRGBA, width float32) {
	var path clip.Path
	path.Begin(gtx.Ops)
	path.MoveTo(f32.Pt(centerX+radius, centerY))

	segments := 24
	for i := 1; i <= segments; i++ {
		angle := float64(i) * 2 * math.Pi / float64(segments)
		x := centerX + radius*float32(math.Cos(angle))
		y := centerY + radius*float32(math.Sin(angle))
		path.LineTo(f32.Pt(x, y))
	}
	path.Close()

	paint.FillShape(gtx.Ops, col, clip.Stroke{Path: path.End(), Width: width}.Op())
}
