package widgets

import (
	"fmt"
	"image"
	"image/color"

	"gioui.org/io/event"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"

	"github.com/cropdeck/cropdeck/internal/session"
	"github.com/cropdeck/cropdeck/internal/ui/state"
)

const (
	cropListWidth = 232
	cropRowHeight = 72
	headerHeight  = 36
)

// CropList is the right-hand panel listing the session's crops.
type CropList struct {
	state    *state.State
	scrollY  float32
	rows     map[string]*cropRow
	clearBtn widget.Clickable
}

// cropRow keeps the per-crop widget state alive across frames.
type cropRow struct {
	thumb  widget.Image
	click  widget.Clickable
	remove widget.Clickable
}

// NewCropList creates the crop list panel.
func NewCropList(st *state.State) *CropList {
	return &CropList{
		state: st,
		rows:  make(map[string]*cropRow),
	}
}

// Layout renders the panel.
func (l *CropList) Layout(gtx layout.Context, th *material.Theme) layout.Dimensions {
	width := cropListWidth
	height := gtx.Constraints.Max.Y

	rect := image.Rect(0, 0, width, height)
	paint.FillShape(gtx.Ops, color.NRGBA{R: 35, G: 38, B: 42, A: 255}, clip.Rect(rect).Op())

	gtx.Constraints.Max.X = width

	// Clicks first so a removal takes effect before rows are drawn.
	l.handleRowClicks(gtx)
	for l.clearBtn.Clicked(gtx) {
		l.state.ClearCrops()
	}

	crops := l.state.Session.Crops()
	l.reconcileRows(crops)
	l.handleScroll(gtx, width, height, len(crops))

	l.layoutHeader(gtx, th, len(crops))

	if len(crops) == 0 {
		layout.Inset{Left: unit.Dp(10), Top: unit.Dp(44)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
			label := material.Label(th, 12, "No crops yet")
			label.Color = color.NRGBA{R: 130, G: 135, B: 140, A: 255}
			return label.Layout(gtx)
		})
		return layout.Dimensions{Size: image.Point{X: width, Y: height}}
	}

	// Rows scroll in a clipped strip below the header.
	listArea := clip.Rect(image.Rect(0, headerHeight, width, height)).Push(gtx.Ops)
	offset := op.Offset(image.Pt(0, headerHeight-int(l.scrollY))).Push(gtx.Ops)

	for i, c := range crops {
		l.layoutRow(gtx, th, c, i)
	}

	offset.Pop()
	listArea.Pop()

	return layout.Dimensions{Size: image.Point{X: width, Y: height}}
}

func (l *CropList) handleRowClicks(gtx layout.Context) {
	for id, row := range l.rows {
		for row.click.Clicked(gtx) {
			l.state.SelectedCrop = id
		}
		for row.remove.Clicked(gtx) {
			l.state.RemoveCrop(id)
		}
	}
}

// reconcileRows keeps one row per live crop, building the thumbnail op
// once per crop.
func (l *CropList) reconcileRows(crops []*session.Crop) {
	seen := make(map[string]bool, len(crops))
	for _, c := range crops {
		seen[c.ID] = true
		if _, ok := l.rows[c.ID]; !ok {
			l.rows[c.ID] = &cropRow{
				thumb: widget.Image{Src: paint.NewImageOp(c.Thumb), Fit: widget.Contain},
			}
		}
	}
	for id := range l.rows {
		if !seen[id] {
			delete(l.rows, id)
		}
	}
}

func (l *CropList) handleScroll(gtx layout.Context, width, height, count int) {
	area := clip.Rect(image.Rect(0, 0, width, height)).Push(gtx.Ops)
	event.Op(gtx.Ops, l)
	area.Pop()

	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target: l,
			Kinds:  pointer.Scroll,
		})
		if !ok {
			break
		}
		if pe, ok := ev.(pointer.Event); ok && pe.Kind == pointer.Scroll {
			l.scrollY += pe.Scroll.Y
		}
	}

	maxScroll := float32(count*cropRowHeight - (height - headerHeight))
	if maxScroll < 0 {
		maxScroll = 0
	}
	if l.scrollY > maxScroll {
		l.scrollY = maxScroll
	}
	if l.scrollY < 0 {
		l.scrollY = 0
	}
}

func (l *CropList) layoutHeader(gtx layout.Context, th *material.Theme, count int) {
	layout.Inset{Left: unit.Dp(10), Top: unit.Dp(8), Right: unit.Dp(8)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Horizontal, Spacing: layout.SpaceBetween, Alignment: layout.Middle}.Layout(gtx,
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				label := material.Label(th, 14, fmt.Sprintf("Crops (%d)", count))
				label.Color = color.NRGBA{R: 200, G: 200, B: 200, A: 255}
				return label.Layout(gtx)
			}),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				if count == 0 {
					return layout.Dimensions{}
				}
				return l.smallButton(gtx, th, &l.clearBtn, "Clear")
			}),
		)
	})
}

func (l *CropList) layoutRow(gtx layout.Context, th *material.Theme, c *session.Crop, index int) {
	row := l.rows[c.ID]
	if row == nil {
		return
	}

	rowOffset := op.Offset(image.Pt(0, index*cropRowHeight)).Push(gtx.Ops)
	defer rowOffset.Pop()

	gtx.Constraints.Min = image.Point{X: cropListWidth, Y: cropRowHeight}
	gtx.Constraints.Max = gtx.Constraints.Min

	row.click.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		bg := color.NRGBA{R: 35, G: 38, B: 42, A: 255}
		if c.ID == l.state.SelectedCrop {
			bg = color.NRGBA{R: 50, G: 65, B: 85, A: 255}
		} else if row.click.Hovered() {
			bg = color.NRGBA{R: 42, G: 46, B: 52, A: 255}
		}
		paint.FillShape(gtx.Ops, bg, clip.Rect(image.Rect(0, 0, cropListWidth, cropRowHeight)).Op())

		return layout.UniformInset(unit.Dp(8)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
			return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					gtx.Constraints.Max = image.Point{X: 84, Y: 56}
					return row.thumb.Layout(gtx)
				}),
				layout.Rigid(layout.Spacer{Width: unit.Dp(8)}.Layout),
				layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
					return l.layoutRowLabels(gtx, th, c)
				}),
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					return l.removeButton(gtx, th, &row.remove)
				}),
			)
		})
	})
}

func (l *CropList) layoutRowLabels(gtx layout.Context, th *material.Theme, c *session.Crop) layout.Dimensions {
	b := c.Image.Bounds()
	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			label := material.Label(th, 13, fmt.Sprintf("#%d %s", c.Number, c.Mode))
			label.Color = color.NRGBA{R: 220, G: 220, B: 220, A: 255}
			return label.Layout(gtx)
		}),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			label := material.Label(th, 11, fmt.Sprintf("%dx%d", b.Dx(), b.Dy()))
			label.Color = color.NRGBA{R: 150, G: 150, B: 150, A: 255}
			return label.Layout(gtx)
		}),
	)
}

func (l *CropList) smallButton(gtx layout.Context, th *material.Theme, btn *widget.Clickable, text string) layout.Dimensions {
	bg := color.NRGBA{R: 55, G: 58, B: 65, A: 255}
	if btn.Hovered() {
		bg.R = minU8(bg.R+15, 255)
		bg.G = minU8(bg.G+15, 255)
		bg.B = minU8(bg.B+15, 255)
	}

	return btn.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Background{}.Layout(gtx,
			func(gtx layout.Context) layout.Dimensions {
				gtx.Constraints.Min = image.Point{X: 48, Y: 20}
				rect := image.Rect(0, 0, gtx.Constraints.Min.X, gtx.Constraints.Min.Y)
				paint.FillShape(gtx.Ops, bg, clip.Rect(rect).Op())
				return layout.Dimensions{Size: gtx.Constraints.Min}
			},
			func(gtx layout.Context) layout.Dimensions {
				gtx.Constraints.Min = image.Point{X: 48, Y: 20}
				return layout.Center.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
					label := material.Label(th, 11, text)
					label.Color = color.NRGBA{R: 220, G: 220, B: 220, A: 255}
					return label.Layout(gtx)
				})
			},
		)
	})
}

func (l *CropList) removeButton(gtx layout.Context, th *material.Theme, btn *widget.Clickable) layout.Dimensions {
	bg := color.NRGBA{R: 60, G: 45, B: 45, A: 255}
	if btn.Hovered() {
		bg = color.NRGBA{R: 110, G: 60, B: 60, A: 255}
	}

	return btn.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Background{}.Layout(gtx,
			func(gtx layout.Context) layout.Dimensions {
				gtx.Constraints.Min = image.Point{X: 20, Y: 20}
				rect := image.Rect(0, 0, gtx.Constraints.Min.X, gtx.Constraints.Min.Y)
				paint.FillShape(gtx.Ops, bg, clip.Rect(rect).Op())
				return layout.Dimensions{Size: gtx.Constraints.Min}
			},
			func(gtx layout.Context) layout.Dimensions {
				gtx.Constraints.Min = image.Point{X: 20, Y: 20}
				return layout.Center.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
					label := material.Label(th, 11, "x")
					label.Color = color.NRGBA{R: 230, G: 200, B: 200, A: 255}
					return label.Layout(gtx)
				})
			},
		)
	})
}
