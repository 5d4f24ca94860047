// Package draw renders the workspace layers: backdrop, checkerboard,
// image, and selection overlay.
package draw

import (
	"image"
	"image/color"

	"gioui.org/f32"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"

	"github.com/cropdeck/cropdeck/internal/geom"
	"github.com/cropdeck/cropdeck/internal/viewport"
)

// Workspace colors
var (
	ColorBackdrop = color.NRGBA{R: 25, G: 28, B: 32, A: 255}
	ColorCheckerA = color.NRGBA{R: 52, G: 55, B: 60, A: 255}
	ColorCheckerB = color.NRGBA{R: 44, G: 47, B: 52, A: 255}
)

const checkerSize = 12

// DrawCheckerboard fills the on-screen footprint of the image with a
// checker pattern so transparent crops read as transparent.
func DrawCheckerboard(gtx layout.Context, view *viewport.Transform, imgW, imgH int) {
	topLeft := view.ToScreen(geom.Point{})
	bottomRight := view.ToScreen(geom.Point{X: float64(imgW), Y: float64(imgH)})
	bounds := gtx.Constraints.Max

	area := image.Rect(int(topLeft.X), int(topLeft.Y), int(bottomRight.X), int(bottomRight.Y)).
		Intersect(image.Rect(0, 0, bounds.X, bounds.Y))
	if area.Empty() {
		return
	}

	paint.FillShape(gtx.Ops, ColorCheckerA, clip.Rect(area).Op())

	// Tiles are aligned to the screen origin so the pattern stays put
	// while panning.
	startX := (area.Min.X / checkerSize) * checkerSize
	startY := (area.Min.Y / checkerSize) * checkerSize
	for ty := startY; ty < area.Max.Y; ty += checkerSize {
		for tx := startX; tx < area.Max.X; tx += checkerSize {
			if ((tx/checkerSize)+(ty/checkerSize))%2 == 0 {
				continue
			}
			cell := image.Rect(tx, ty, tx+checkerSize, ty+checkerSize).Intersect(area)
			if !cell.Empty() {
				paint.FillShape(gtx.Ops, ColorCheckerB, clip.Rect(cell).Op())
			}
		}
	}
}

// DrawImage paints the source image under the view transform.
func DrawImage(gtx layout.Context, imgOp paint.ImageOp, view *viewport.Transform, imgW, imgH int) {
	tr := op.Affine(f32.Affine2D{}.
		Scale(f32.Pt(0, 0), f32.Pt(float32(view.Zoom), float32(view.Zoom))).
		Offset(f32.Pt(float32(view.PanX), float32(view.PanY)))).Push(gtx.Ops)
	cl := clip.Rect(image.Rect(0, 0, imgW, imgH)).Push(gtx.Ops)

	imgOp.Add(gtx.Ops)
	paint.PaintOp{}.Add(gtx.Ops)

	cl.Pop()
	tr.Pop()
}
