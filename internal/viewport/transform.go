// Package viewport maps between image space and screen space.
package viewport

import "github.com/cropdeck/cropdeck/internal/geom"

// Zoom limits and the zoom step factors for the two input paths.
const (
	MinZoom = 0.1
	MaxZoom = 10.0

	// WheelStep is the per-notch factor for scroll wheel zooming.
	WheelStep = 1.1
	// ButtonStep is the factor for toolbar and keyboard zoom commands.
	ButtonStep = 1.2

	fitMargin = 0.95
)

// Transform is the view transform: screen = image*Zoom + Pan.
type Transform struct {
	Zoom float64
	PanX float64
	PanY float64
}

// New returns the identity transform.
func New() *Transform {
	return &Transform{Zoom: 1}
}

// Reset restores the identity transform.
func (t *Transform) Reset() {
	t.Zoom = 1
	t.PanX = 0
	t.PanY = 0
}

// ToScreen converts an image-space point to screen coordinates.
func (t *Transform) ToScreen(p geom.Point) geom.Point {
	return geom.Point{X: p.X*t.Zoom + t.PanX, Y: p.Y*t.Zoom + t.PanY}
}

// ToImage converts a screen-space point to image coordinates.
func (t *Transform) ToImage(p geom.Point) geom.Point {
	return geom.Point{X: (p.X - t.PanX) / t.Zoom, Y: (p.Y - t.PanY) / t.Zoom}
}

// SetZoom sets the zoom level, clamped to [MinZoom, MaxZoom].
func (t *Transform) SetZoom(z float64) {
	if z < MinZoom {
		z = MinZoom
	}
	if z > MaxZoom {
		z = MaxZoom
	}
	t.Zoom = z
}

// PanBy shifts the view by a screen-space delta.
func (t *Transform) PanBy(dx, dy float64) {
	t.PanX += dx
	t.PanY += dy
}

// ZoomAtCenter multiplies the zoom by factor while keeping the image
// point at the container center fixed on screen.
func (t *Transform) ZoomAtCenter(factor, containerW, containerH float64) {
	cx := containerW / 2
	cy := containerH / 2
	anchor := t.ToImage(geom.Point{X: cx, Y: cy})

	t.SetZoom(t.Zoom * factor)

	t.PanX = cx - anchor.X*t.Zoom
	t.PanY = cy - anchor.Y*t.Zoom
}

// FitToContainer sets zoom and pan so the whole image is visible and
// centered, leaving a small margin around it.
func (t *Transform) FitToContainer(imgW, imgH, containerW, containerH float64) {
	if imgW <= 0 || imgH <= 0 || containerW <= 0 || containerH <= 0 {
		return
	}

	z := containerW / imgW
	if zh := containerH / imgH; zh < z {
		z = zh
	}
	t.SetZoom(z * fitMargin)

	t.PanX = (containerW - imgW*t.Zoom) / 2
	t.PanY = (containerH - imgH*t.Zoom) / 2
}
