package widgets

import (
	"fmt"
	"image"
	"image/color"

	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget/material"

	"github.com/cropdeck/cropdeck/internal/ui/state"
)

const statusBarHeight = 28

// StatusBar shows the loaded file, the active mode with the latest
// status message, and the zoom level with the pointer position.
type StatusBar struct {
	state *state.State
}

// NewStatusBar creates the status bar.
func NewStatusBar(st *state.State) *StatusBar {
	return &StatusBar{state: st}
}

// Layout renders the status bar.
func (s *StatusBar) Layout(gtx layout.Context, th *material.Theme) layout.Dimensions {
	width := gtx.Constraints.Max.X

	rect := image.Rect(0, 0, width, statusBarHeight)
	paint.FillShape(gtx.Ops, color.NRGBA{R: 35, G: 38, B: 42, A: 255}, clip.Rect(rect).Op())

	st := s.state

	left := "No image"
	if st.Source != nil {
		left = fmt.Sprintf("%s  %dx%d", st.Source.Name, st.Source.Width, st.Source.Height)
	}

	middle := fmt.Sprintf("[%s] %s", st.Machine.Mode(), st.Status)

	right := fmt.Sprintf("%.0f%%", st.View.Zoom*100)
	if st.HoverValid {
		right = fmt.Sprintf("%.0f%%  (%.0f, %.0f)", st.View.Zoom*100, st.Hover.X, st.Hover.Y)
	}

	layout.Inset{Top: unit.Dp(6), Left: unit.Dp(10), Right: unit.Dp(10)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Horizontal, Spacing: layout.SpaceBetween}.Layout(gtx,
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				label := material.Label(th, 12, left)
				label.Color = color.NRGBA{R: 200, G: 200, B: 200, A: 255}
				label.Alignment = text.Start
				return label.Layout(gtx)
			}),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				label := material.Label(th, 12, middle)
				label.Color = color.NRGBA{R: 160, G: 185, B: 205, A: 255}
				return label.Layout(gtx)
			}),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				label := material.Label(th, 12, right)
				label.Color = color.NRGBA{R: 150, G: 150, B: 150, A: 255}
				label.Alignment = text.End
				return label.Layout(gtx)
			}),
		)
	})

	return layout.Dimensions{Size: image.Point{X: width, Y: statusBarHeight}}
}
