package editor

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/cropdeck/cropdeck/internal/geom"
)

// Kind discriminates the selection variants.
type Kind int

const (
	KindNone Kind = iota
	KindRectangle
	KindPolygon
)

func (k Kind) String() string {
	return [...]string{"none", "rectangle", "polygon"}[k]
}

// Selection is the current selection. Exactly one variant is active:
// nothing, a rectangle, or a polygon.
type Selection struct {
	Kind   Kind
	Rect   geom.Rect    // valid for KindRectangle; not normalized during a drag
	Points geom.Polygon // valid for KindPolygon
	Closed bool         // polygon traced back to its first vertex
}

// RectSelection wraps a rectangle as a selection.
func RectSelection(r geom.Rect) Selection {
	return Selection{Kind: KindRectangle, Rect: r}
}

// PolygonSelection wraps a completed vertex list as a selection.
func PolygonSelection(pts ...geom.Point) Selection {
	return Selection{Kind: KindPolygon, Points: pts, Closed: true}
}

// Croppable reports whether the selection satisfies the crop
// preconditions: a rectangle spanning area, or a polygon with at least
// three vertices.
func (s Selection) Croppable() bool {
	switch s.Kind {
	case KindRectangle:
		return !s.Rect.Normalize().Empty()
	case KindPolygon:
		return len(s.Points) >= 3
	}
	return false
}

// MarshalJSON encodes the active variant: rectangles as an object,
// polygons as their vertex array. The empty selection encodes as null.
func (s Selection) MarshalJSON() ([]byte, error) {
	switch s.Kind {
	case KindRectangle:
		return json.Marshal(s.Rect)
	case KindPolygon:
		return json.Marshal(s.Points)
	}
	return []byte("null"), nil
}

// UnmarshalJSON restores a selection from either encoding.
func (s *Selection) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*s = Selection{}
		return nil
	}

	switch trimmed[0] {
	case '[':
		var pts geom.Polygon
		if err := json.Unmarshal(trimmed, &pts); err != nil {
			return fmt.Errorf("parse polygon selection: %w", err)
		}
		*s = Selection{Kind: KindPolygon, Points: pts, Closed: true}
	case '{':
		var r geom.Rect
		if err := json.Unmarshal(trimmed, &r); err != nil {
			return fmt.Errorf("parse rectangle selection: %w", err)
		}
		*s = Selection{Kind: KindRectangle, Rect: r}
	default:
		return fmt.Errorf("selection is neither an object nor an array")
	}
	return nil
}
