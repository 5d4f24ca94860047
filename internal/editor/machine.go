package editor

import "github.com/cropdeck/cropdeck/internal/geom"

// DefaultCloseRadius is the screen-pixel radius within which a click on
// the first vertex closes the polygon.
const DefaultCloseRadius = 10.0

// Machine turns pointer gestures into selection edits according to the
// active mode. All coordinates passed in are image-space.
type Machine struct {
	mode Mode
	sel  Selection

	dragging bool
	anchor   geom.Point

	// CloseRadius is the polygon close hit radius in screen pixels.
	CloseRadius float64
}

// NewMachine returns a machine in rectangle mode with no selection.
func NewMachine() *Machine {
	return &Machine{CloseRadius: DefaultCloseRadius}
}

// Mode returns the active tool mode.
func (m *Machine) Mode() Mode { return m.mode }

// SetMode switches the tool mode. Changing the mode discards any
// selection in progress; re-selecting the active mode is a no-op.
func (m *Machine) SetMode(mode Mode) {
	if mode == m.mode {
		return
	}
	m.mode = mode
	m.Clear()
}

// Selection returns the current selection.
func (m *Machine) Selection() Selection { return m.sel }

// SetSelection replaces the current selection, for selections drafted
// outside pointer input.
func (m *Machine) SetSelection(sel Selection) {
	m.dragging = false
	m.sel = sel
}

// Clear discards the selection.
func (m *Machine) Clear() {
	m.dragging = false
	m.sel = Selection{}
}

// PointerDown handles a primary-button press. In rectangle mode it
// anchors a new rectangle. In polygon mode it appends a vertex, unless
// the press lands within CloseRadius screen pixels of the first vertex
// of a polygon with more than two vertices, which closes the polygon
// without appending. The return value reports a close.
func (m *Machine) PointerDown(p geom.Point, zoom float64) bool {
	switch m.mode {
	case ModeRectangle:
		m.dragging = true
		m.anchor = p
		m.sel = Selection{Kind: KindRectangle, Rect: geom.Rect{X: p.X, Y: p.Y}}

	case ModePolygon:
		if m.sel.Kind != KindPolygon || m.sel.Closed {
			m.sel = Selection{Kind: KindPolygon, Points: geom.Polygon{p}}
			return false
		}
		if len(m.sel.Points) > 2 {
			radius := m.CloseRadius
			if zoom > 0 {
				radius /= zoom
			}
			if p.Distance(m.sel.Points[0]) <= radius {
				m.sel.Closed = true
				return true
			}
		}
		m.sel.Points = append(m.sel.Points, p)
	}
	return false
}

// PointerDrag extends the rectangle being dragged to the given corner.
// Width and height stay signed until the selection is consumed.
func (m *Machine) PointerDrag(p geom.Point) {
	if !m.dragging {
		return
	}
	m.sel.Rect = geom.RectFromPoints(m.anchor, p)
}

// PointerUp finishes a rectangle drag at the given corner.
func (m *Machine) PointerUp(p geom.Point) {
	if !m.dragging {
		return
	}
	m.sel.Rect = geom.RectFromPoints(m.anchor, p)
	m.dragging = false
}

// UndoPoint removes the last polygon vertex. A closed polygon is
// reopened first; removing the only vertex empties the selection.
// Rectangle selections are unaffected.
func (m *Machine) UndoPoint() {
	if m.sel.Kind != KindPolygon || len(m.sel.Points) == 0 {
		return
	}
	if m.sel.Closed {
		m.sel.Closed = false
		return
	}
	m.sel.Points = m.sel.Points[:len(m.sel.Points)-1]
	if len(m.sel.Points) == 0 {
		m.sel = Selection{}
	}
}
