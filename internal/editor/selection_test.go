package editor

import (
	"encoding/json"
	"testing"

	"github.com/cropdeck/cropdeck/internal/geom"
)

func TestSelectionJSONRectangle(t *testing.T) {
	sel := RectSelection(geom.Rect{X: 10, Y: 20, Width: 30, Height: 40})

	data, err := json.Marshal(sel)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"x":10,"y":20,"width":30,"height":40}`
	if string(data) != want {
		t.Errorf("marshal = %s, want %s", data, want)
	}

	var back Selection
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.Kind != KindRectangle || back.Rect != sel.Rect {
		t.Errorf("round trip = %+v", back)
	}
}

func TestSelectionJSONPolygon(t *testing.T) {
	sel := PolygonSelection(
		geom.Point{X: 1, Y: 2},
		geom.Point{X: 3, Y: 4},
		geom.Point{X: 5, Y: 6},
	)

	data, err := json.Marshal(sel)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `[{"x":1,"y":2},{"x":3,"y":4},{"x":5,"y":6}]`
	if string(data) != want {
		t.Errorf("marshal = %s, want %s", data, want)
	}

	var back Selection
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.Kind != KindPolygon || len(back.Points) != 3 || !back.Closed {
		t.Errorf("round trip = %+v", back)
	}
	if back.Points[2] != (geom.Point{X: 5, Y: 6}) {
		t.Errorf("vertex order lost: %+v", back.Points)
	}
}

func TestSelectionJSONEmpty(t *testing.T) {
	data, err := json.Marshal(Selection{})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != "null" {
		t.Errorf("marshal = %s, want null", data)
	}

	var back Selection
	if err := json.Unmarshal([]byte("null"), &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.Kind != KindNone {
		t.Errorf("null should decode to the empty selection, got %+v", back)
	}
}

func TestSelectionJSONRejectsScalars(t *testing.T) {
	var sel Selection
	if err := json.Unmarshal([]byte(`42`), &sel); err == nil {
		t.Errorf("scalar selection should not parse")
	}
}

func TestParseMode(t *testing.T) {
	if m, err := ParseMode("rectangle"); err != nil || m != ModeRectangle {
		t.Errorf("ParseMode(rectangle) = %v, %v", m, err)
	}
	if m, err := ParseMode("polygon"); err != nil || m != ModePolygon {
		t.Errorf("ParseMode(polygon) = %v, %v", m, err)
	}
	if _, err := ParseMode("lasso"); err == nil {
		t.Errorf("unknown mode should error")
	}
}
