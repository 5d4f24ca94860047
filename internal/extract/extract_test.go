package extract

import (
	"image"
	"image/color"
	"testing"

	"github.com/cropdeck/cropdeck/internal/editor"
	"github.com/cropdeck/cropdeck/internal/geom"
)

// testImage builds a 100x100 image where each pixel encodes its own
// coordinates, so crops can be checked for exact placement.
func testImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 100, 100))
	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 0, A: 255})
		}
	}
	return img
}

func TestRectangleCrop(t *testing.T) {
	src := testImage()

	ex, ok := Apply(src, editor.RectSelection(geom.Rect{X: 20, Y: 30, Width: 40, Height: 50}))
	if !ok {
		t.Fatalf("crop rejected")
	}

	b := ex.Image.Bounds()
	if b.Dx() != 40 || b.Dy() != 50 {
		t.Fatalf("crop size = %dx%d, want 40x50", b.Dx(), b.Dy())
	}

	// Top-left output pixel must be source pixel (20, 30).
	got := ex.Image.NRGBAAt(0, 0)
	if got.R != 20 || got.G != 30 {
		t.Errorf("pixel (0,0) = %+v, want source (20,30)", got)
	}
	if ex.Mode != editor.ModeRectangle {
		t.Errorf("mode = %v", ex.Mode)
	}
}

func TestRectangleCropNormalizesDrag(t *testing.T) {
	src := testImage()

	// Up-left drag: anchor (60, 80), release (20, 30).
	sel := editor.RectSelection(geom.Rect{X: 60, Y: 80, Width: -40, Height: -50})
	ex, ok := Apply(src, sel)
	if !ok {
		t.Fatalf("crop rejected")
	}

	b := ex.Image.Bounds()
	if b.Dx() != 40 || b.Dy() != 50 {
		t.Fatalf("crop size = %dx%d, want 40x50", b.Dx(), b.Dy())
	}
	got := ex.Image.NRGBAAt(0, 0)
	if got.R != 20 || got.G != 30 {
		t.Errorf("pixel (0,0) = %+v, want source (20,30)", got)
	}

	// Metadata carries the normalized rectangle.
	if ex.Selection.Rect != (geom.Rect{X: 20, Y: 30, Width: 40, Height: 50}) {
		t.Errorf("metadata rect = %+v", ex.Selection.Rect)
	}
}

func TestRectangleCropClampsToImage(t *testing.T) {
	src := testImage()

	ex, ok := Apply(src, editor.RectSelection(geom.Rect{X: 80, Y: 90, Width: 50, Height: 50}))
	if !ok {
		t.Fatalf("crop rejected")
	}
	b := ex.Image.Bounds()
	if b.Dx() != 20 || b.Dy() != 10 {
		t.Errorf("clamped size = %dx%d, want 20x10", b.Dx(), b.Dy())
	}
}

func TestRectangleFullyOutsideIsNoop(t *testing.T) {
	src := testImage()

	if _, ok := Apply(src, editor.RectSelection(geom.Rect{X: 200, Y: 200, Width: 50, Height: 50})); ok {
		t.Errorf("selection outside the image should not crop")
	}
}

func TestZeroAreaRectIsNoop(t *testing.T) {
	src := testImage()

	if _, ok := Apply(src, editor.RectSelection(geom.Rect{X: 10, Y: 10, Width: 0, Height: 40})); ok {
		t.Errorf("zero-width rect should not crop")
	}
}

func TestPolygonCropMasksOutside(t *testing.T) {
	src := testImage()

	tri := editor.PolygonSelection(
		geom.Point{X: 10, Y: 10},
		geom.Point{X: 90, Y: 10},
		geom.Point{X: 50, Y: 90},
	)
	ex, ok := Apply(src, tri)
	if !ok {
		t.Fatalf("crop rejected")
	}

	b := ex.Image.Bounds()
	if b.Dx() != 80 || b.Dy() != 80 {
		t.Fatalf("crop size = %dx%d, want 80x80 bbox", b.Dx(), b.Dy())
	}

	// Near the top edge, inside the triangle: source pixel (50, 12).
	inside := ex.Image.NRGBAAt(40, 2)
	if inside.A == 0 {
		t.Errorf("interior pixel is transparent")
	}
	if inside.R != 50 || inside.G != 12 {
		t.Errorf("interior pixel = %+v, want source (50,12)", inside)
	}

	// Bottom-left bbox corner lies far outside the triangle.
	outside := ex.Image.NRGBAAt(0, 79)
	if outside.A != 0 {
		t.Errorf("exterior pixel alpha = %d, want 0", outside.A)
	}
}

func TestPolygonMetadataKeepsVertices(t *testing.T) {
	src := testImage()

	pts := geom.Polygon{{X: 10.5, Y: 10.25}, {X: 90, Y: 12}, {X: 47, Y: 88.75}}
	ex, ok := Apply(src, editor.Selection{Kind: editor.KindPolygon, Points: pts})
	if !ok {
		t.Fatalf("crop rejected")
	}

	if len(ex.Selection.Points) != 3 {
		t.Fatalf("metadata vertices = %d", len(ex.Selection.Points))
	}
	for i, p := range pts {
		if ex.Selection.Points[i] != p {
			t.Errorf("vertex %d = %+v, want %+v unmodified", i, ex.Selection.Points[i], p)
		}
	}
}

func TestTwoVertexPolygonIsNoop(t *testing.T) {
	src := testImage()

	sel := editor.Selection{Kind: editor.KindPolygon, Points: geom.Polygon{{X: 0, Y: 0}, {X: 50, Y: 50}}}
	if _, ok := Apply(src, sel); ok {
		t.Errorf("two-vertex polygon should not crop")
	}
}

func TestDegeneratePolygonIsNoop(t *testing.T) {
	src := testImage()

	// Collinear on a pixel boundary: the bbox rounds to zero height.
	sel := editor.PolygonSelection(
		geom.Point{X: 10, Y: 20},
		geom.Point{X: 40, Y: 20},
		geom.Point{X: 70, Y: 20},
	)
	if _, ok := Apply(src, sel); ok {
		t.Errorf("zero-area polygon should not crop")
	}
}

func TestEmptySelectionIsNoop(t *testing.T) {
	if _, ok := Apply(testImage(), editor.Selection{}); ok {
		t.Errorf("empty selection should not crop")
	}
	if _, ok := Apply(nil, editor.RectSelection(geom.Rect{X: 0, Y: 0, Width: 10, Height: 10})); ok {
		t.Errorf("nil image should not crop")
	}
}

func TestSubImageSourceCrops(t *testing.T) {
	// A SubImage input must still crop in its own coordinate space.
	src := testImage().SubImage(image.Rect(10, 10, 90, 90))

	ex, ok := Apply(src, editor.RectSelection(geom.Rect{X: 0, Y: 0, Width: 10, Height: 10}))
	if !ok {
		t.Fatalf("crop rejected")
	}
	if b := ex.Image.Bounds(); b.Dx() != 10 || b.Dy() != 10 {
		t.Errorf("crop size = %dx%d, want 10x10", b.Dx(), b.Dy())
	}
}
