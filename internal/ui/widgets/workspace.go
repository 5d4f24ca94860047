// Package widgets provides the Gio widgets that make up the editor UI.
package widgets

import (
	"image"
	"image/color"

	"gioui.org/io/event"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/widget/material"

	"github.com/cropdeck/cropdeck/internal/geom"
	"github.com/cropdeck/cropdeck/internal/ui/draw"
	"github.com/cropdeck/cropdeck/internal/ui/state"
)

// Workspace is the image editing area.
type Workspace struct {
	state *state.State

	panning bool
	lastX   float32
	lastY   float32
}

// NewWorkspace creates the workspace widget.
func NewWorkspace(st *state.State) *Workspace {
	return &Workspace{state: st}
}

// Layout feeds pointer input to the view transform and the selection
// machine, then redraws every layer from scratch.
func (w *Workspace) Layout(gtx layout.Context, th *material.Theme) layout.Dimensions {
	bounds := gtx.Constraints.Max
	defer clip.Rect(image.Rect(0, 0, bounds.X, bounds.Y)).Push(gtx.Ops).Pop()

	w.state.ViewSize = bounds
	w.state.FitViewIfNeeded()

	paint.Fill(gtx.Ops, draw.ColorBackdrop)

	w.handlePointerEvents(gtx)

	if w.state.Source == nil {
		w.layoutPlaceholder(gtx, th)
		return layout.Dimensions{Size: bounds}
	}

	src := w.state.Source
	draw.DrawCheckerboard(gtx, w.state.View, src.Width, src.Height)
	draw.DrawImage(gtx, w.state.ImgOp, w.state.View, src.Width, src.Height)
	draw.DrawSelection(gtx, w.state.Machine.Selection(), w.state.View, w.state.Machine.CloseRadius)

	return layout.Dimensions{Size: bounds}
}

func (w *Workspace) layoutPlaceholder(gtx layout.Context, th *material.Theme) {
	msg := "Open an image to start cropping"
	if w.state.Loading {
		msg = "Loading..."
	}
	layout.Center.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		label := material.Label(th, 16, msg)
		label.Color = color.NRGBA{R: 150, G: 155, B: 160, A: 255}
		return label.Layout(gtx)
	})
}

func (w *Workspace) handlePointerEvents(gtx layout.Context) {
	area := clip.Rect(image.Rect(0, 0, gtx.Constraints.Max.X, gtx.Constraints.Max.Y)).Push(gtx.Ops)
	event.Op(gtx.Ops, w)
	area.Pop()

	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target: w,
			Kinds:  pointer.Press | pointer.Drag | pointer.Release | pointer.Scroll | pointer.Move,
		})
		if !ok {
			break
		}
		if pe, ok := ev.(pointer.Event); ok {
			w.handlePointerEvent(pe)
		}
	}
}

func (w *Workspace) handlePointerEvent(ev pointer.Event) {
	st := w.state

	switch ev.Kind {
	case pointer.Press:
		if ev.Buttons.Contain(pointer.ButtonSecondary) || ev.Buttons.Contain(pointer.ButtonTertiary) {
			w.panning = true
		} else if ev.Buttons.Contain(pointer.ButtonPrimary) && st.CanEdit() {
			if st.Machine.PointerDown(w.imagePoint(ev.Position.X, ev.Position.Y), st.View.Zoom) {
				st.Status = "Polygon closed"
			}
		}
		w.lastX = ev.Position.X
		w.lastY = ev.Position.Y

	case pointer.Drag:
		if w.panning {
			st.View.PanBy(float64(ev.Position.X-w.lastX), float64(ev.Position.Y-w.lastY))
		} else if st.CanEdit() {
			st.Machine.PointerDrag(w.imagePoint(ev.Position.X, ev.Position.Y))
		}
		w.lastX = ev.Position.X
		w.lastY = ev.Position.Y
		w.updateHover(ev)

	case pointer.Release:
		if w.panning {
			w.panning = false
		} else if st.CanEdit() {
			st.Machine.PointerUp(w.imagePoint(ev.Position.X, ev.Position.Y))
		}

	case pointer.Scroll:
		st.WheelZoom(ev.Scroll.Y)

	case pointer.Move:
		w.updateHover(ev)
	}
}

func (w *Workspace) imagePoint(x, y float32) geom.Point {
	return w.state.View.ToImage(geom.Point{X: float64(x), Y: float64(y)})
}

func (w *Workspace) updateHover(ev pointer.Event) {
	if w.state.Source == nil {
		w.state.HoverValid = false
		return
	}
	w.state.Hover = w.imagePoint(ev.Position.X, ev.Position.Y)
	w.state.HoverValid = true
}
