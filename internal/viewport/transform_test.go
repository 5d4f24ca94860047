package viewport

import (
	"math"
	"testing"

	"github.com/cropdeck/cropdeck/internal/geom"
)

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func pointsClose(a, b geom.Point) bool {
	return approxEqual(a.X, b.X) && approxEqual(a.Y, b.Y)
}

func TestRoundTrip(t *testing.T) {
	tr := &Transform{Zoom: 2.5, PanX: 130, PanY: -42}

	pts := []geom.Point{
		{0, 0},
		{100, 50},
		{-12.5, 999},
		{0.333, 0.667},
	}

	for _, p := range pts {
		got := tr.ToImage(tr.ToScreen(p))
		if !pointsClose(got, p) {
			t.Errorf("round trip of %v = %v", p, got)
		}
	}
}

func TestToScreen(t *testing.T) {
	tr := &Transform{Zoom: 2, PanX: 10, PanY: 20}
	got := tr.ToScreen(geom.Point{X: 30, Y: 40})
	want := geom.Point{X: 70, Y: 100}
	if !pointsClose(got, want) {
		t.Errorf("ToScreen = %v, want %v", got, want)
	}
}

func TestSetZoomClamps(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{0.05, MinZoom},
		{0.1, 0.1},
		{1, 1},
		{10, 10},
		{42, MaxZoom},
	}

	for _, tt := range tests {
		tr := New()
		tr.SetZoom(tt.in)
		if !approxEqual(tr.Zoom, tt.want) {
			t.Errorf("SetZoom(%v): zoom = %v, want %v", tt.in, tr.Zoom, tt.want)
		}
	}
}

func TestZoomAtCenterKeepsAnchor(t *testing.T) {
	tr := &Transform{Zoom: 1.5, PanX: 37, PanY: -12}
	const cw, ch = 800.0, 600.0

	before := tr.ToImage(geom.Point{X: cw / 2, Y: ch / 2})
	tr.ZoomAtCenter(WheelStep, cw, ch)
	after := tr.ToImage(geom.Point{X: cw / 2, Y: ch / 2})

	if !pointsClose(before, after) {
		t.Errorf("center anchor moved: before %v, after %v", before, after)
	}
	if !approxEqual(tr.Zoom, 1.5*WheelStep) {
		t.Errorf("zoom = %v, want %v", tr.Zoom, 1.5*WheelStep)
	}
}

func TestZoomAtCenterClampKeepsAnchor(t *testing.T) {
	tr := &Transform{Zoom: 9.5, PanX: 0, PanY: 0}
	const cw, ch = 640.0, 480.0

	before := tr.ToImage(geom.Point{X: cw / 2, Y: ch / 2})
	tr.ZoomAtCenter(ButtonStep, cw, ch)
	after := tr.ToImage(geom.Point{X: cw / 2, Y: ch / 2})

	if !approxEqual(tr.Zoom, MaxZoom) {
		t.Errorf("zoom = %v, want clamp at %v", tr.Zoom, MaxZoom)
	}
	if !pointsClose(before, after) {
		t.Errorf("center anchor moved under clamping: before %v, after %v", before, after)
	}
}

func TestFitToContainer(t *testing.T) {
	tests := []struct {
		name         string
		imgW, imgH   float64
		contW, contH float64
		wantZoom     float64
	}{
		{"wide image", 2000, 500, 1000, 1000, 0.5 * fitMargin},
		{"tall image", 500, 2000, 1000, 1000, 0.5 * fitMargin},
		{"exact fit", 1000, 1000, 1000, 1000, fitMargin},
		{"tiny image clamps", 10, 10, 4000, 4000, MaxZoom},
	}

	for _, tt := range tests {
		tr := New()
		tr.FitToContainer(tt.imgW, tt.imgH, tt.contW, tt.contH)
		if !approxEqual(tr.Zoom, tt.wantZoom) {
			t.Errorf("%s: zoom = %v, want %v", tt.name, tr.Zoom, tt.wantZoom)
		}

		// Image center must land on container center.
		center := tr.ToScreen(geom.Point{X: tt.imgW / 2, Y: tt.imgH / 2})
		if !pointsClose(center, geom.Point{X: tt.contW / 2, Y: tt.contH / 2}) {
			t.Errorf("%s: image center at %v, want container center", tt.name, center)
		}
	}
}

func TestFitToContainerIgnoresDegenerate(t *testing.T) {
	tr := &Transform{Zoom: 3, PanX: 5, PanY: 6}
	tr.FitToContainer(0, 100, 800, 600)
	if tr.Zoom != 3 || tr.PanX != 5 || tr.PanY != 6 {
		t.Errorf("degenerate fit modified transform: %+v", tr)
	}
}

func TestPanBy(t *testing.T) {
	tr := New()
	tr.PanBy(15, -7)
	tr.PanBy(5, 7)
	if !approxEqual(tr.PanX, 20) || !approxEqual(tr.PanY, 0) {
		t.Errorf("pan = (%v, %v), want (20, 0)", tr.PanX, tr.PanY)
	}
}
