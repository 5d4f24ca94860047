package widgets

import (
	"image"
	"image/color"
	"strings"

	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"

	"github.com/cropdeck/cropdeck/internal/editor"
	"github.com/cropdeck/cropdeck/internal/ui/state"
)

// Toolbar provides the editing and export controls.
type Toolbar struct {
	state *state.State

	// Mode buttons
	rectModeBtn widget.Clickable
	polyModeBtn widget.Clickable

	// Selection buttons
	cropBtn  widget.Clickable
	undoBtn  widget.Clickable
	clearBtn widget.Clickable

	// View buttons
	zoomOutBtn widget.Clickable
	zoomInBtn  widget.Clickable
	fitBtn     widget.Clickable

	// Assist buttons
	suggestBtn widget.Clickable
	copyBtn    widget.Clickable

	// Export buttons
	exportBtn  widget.Clickable
	archiveBtn widget.Clickable
	sheetBtn   widget.Clickable

	// Open controls
	pathField widget.Editor
	openBtn   widget.Clickable
}

// NewToolbar creates the toolbar.
func NewToolbar(st *state.State) *Toolbar {
	t := &Toolbar{state: st}
	t.pathField.SingleLine = true
	t.pathField.Submit = true
	return t
}

// Layout renders the toolbar.
func (t *Toolbar) Layout(gtx layout.Context, th *material.Theme) layout.Dimensions {
	height := 48

	// Background
	rect := image.Rect(0, 0, gtx.Constraints.Max.X, height)
	paint.FillShape(gtx.Ops, color.NRGBA{R: 40, G: 43, B: 48, A: 255}, clip.Rect(rect).Op())

	// Handle button clicks
	t.handleClicks(gtx)

	return layout.Inset{Left: unit.Dp(10), Right: unit.Dp(10), Top: unit.Dp(8), Bottom: unit.Dp(8)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle, Spacing: layout.SpaceStart}.Layout(gtx,
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return t.layoutModeControls(gtx, th)
			}),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return t.layoutSeparator(gtx)
			}),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return t.layoutSelectionControls(gtx, th)
			}),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return t.layoutSeparator(gtx)
			}),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return t.layoutViewControls(gtx, th)
			}),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return t.layoutSeparator(gtx)
			}),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return t.layoutExportControls(gtx, th)
			}),

			// Spacer
			layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
				return layout.Dimensions{}
			}),

			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return t.layoutOpenControls(gtx, th)
			}),
		)
	})
}

func (t *Toolbar) layoutModeControls(gtx layout.Context, th *material.Theme) layout.Dimensions {
	mode := t.state.Machine.Mode()
	return layout.Flex{Axis: layout.Horizontal, Spacing: layout.SpaceStart}.Layout(gtx,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return t.modeButton(gtx, th, &t.rectModeBtn, "Rect", mode == editor.ModeRectangle)
		}),
		layout.Rigid(layout.Spacer{Width: unit.Dp(2)}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return t.modeButton(gtx, th, &t.polyModeBtn, "Poly", mode == editor.ModePolygon)
		}),
	)
}

func (t *Toolbar) layoutSelectionControls(gtx layout.Context, th *material.Theme) layout.Dimensions {
	return layout.Flex{Axis: layout.Horizontal, Spacing: layout.SpaceStart}.Layout(gtx,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return t.textButton(gtx, th, &t.cropBtn, "Crop")
		}),
		layout.Rigid(layout.Spacer{Width: unit.Dp(4)}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return t.iconButton(gtx, th, &t.undoBtn, "<-")
		}),
		layout.Rigid(layout.Spacer{Width: unit.Dp(2)}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return t.iconButton(gtx, th, &t.clearBtn, "X")
		}),
	)
}

func (t *Toolbar) layoutViewControls(gtx layout.Context, th *material.Theme) layout.Dimensions {
	return layout.Flex{Axis: layout.Horizontal, Spacing: layout.SpaceStart}.Layout(gtx,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return t.iconButton(gtx, th, &t.zoomOutBtn, "-")
		}),
		layout.Rigid(layout.Spacer{Width: unit.Dp(2)}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return t.iconButton(gtx, th, &t.zoomInBtn, "+")
		}),
		layout.Rigid(layout.Spacer{Width: unit.Dp(4)}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return t.textButton(gtx, th, &t.fitBtn, "Fit")
		}),
	)
}

func (t *Toolbar) layoutExportControls(gtx layout.Context, th *material.Theme) layout.Dimensions {
	return layout.Flex{Axis: layout.Horizontal, Spacing: layout.SpaceStart}.Layout(gtx,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return t.textButton(gtx, th, &t.suggestBtn, "Suggest")
		}),
		layout.Rigid(layout.Spacer{Width: unit.Dp(4)}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return t.textButton(gtx, th, &t.copyBtn, "Copy")
		}),
		layout.Rigid(layout.Spacer{Width: unit.Dp(8)}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return t.textButton(gtx, th, &t.exportBtn, "Files")
		}),
		layout.Rigid(layout.Spacer{Width: unit.Dp(2)}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return t.textButton(gtx, th, &t.archiveBtn, "Zip")
		}),
		layout.Rigid(layout.Spacer{Width: unit.Dp(2)}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return t.textButton(gtx, th, &t.sheetBtn, "Sheet")
		}),
	)
}

func (t *Toolbar) layoutOpenControls(gtx layout.Context, th *material.Theme) layout.Dimensions {
	return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle, Spacing: layout.SpaceStart}.Layout(gtx,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			gtx.Constraints.Min.X = gtx.Dp(240)
			gtx.Constraints.Max.X = gtx.Dp(240)
			return t.layoutPathField(gtx, th)
		}),
		layout.Rigid(layout.Spacer{Width: unit.Dp(4)}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return t.textButton(gtx, th, &t.openBtn, "Open")
		}),
	)
}

func (t *Toolbar) layoutPathField(gtx layout.Context, th *material.Theme) layout.Dimensions {
	return layout.Background{}.Layout(gtx,
		func(gtx layout.Context) layout.Dimensions {
			rect := image.Rect(0, 0, gtx.Constraints.Min.X, gtx.Constraints.Min.Y)
			paint.FillShape(gtx.Ops, color.NRGBA{R: 30, G: 32, B: 36, A: 255}, clip.Rect(rect).Op())
			return layout.Dimensions{Size: gtx.Constraints.Min}
		},
		func(gtx layout.Context) layout.Dimensions {
			return layout.UniformInset(unit.Dp(6)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
				ed := material.Editor(th, &t.pathField, "image path or URL")
				ed.Color = color.NRGBA{R: 220, G: 220, B: 220, A: 255}
				ed.HintColor = color.NRGBA{R: 120, G: 125, B: 130, A: 255}
				return ed.Layout(gtx)
			})
		},
	)
}

func (t *Toolbar) layoutSeparator(gtx layout.Context) layout.Dimensions {
	return layout.Inset{Left: unit.Dp(8), Right: unit.Dp(8)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		rect := image.Rect(0, 0, 1, 24)
		paint.FillShape(gtx.Ops, color.NRGBA{R: 60, G: 65, B: 70, A: 255}, clip.Rect(rect).Op())
		return layout.Dimensions{Size: image.Point{X: 1, Y: 24}}
	})
}

func (t *Toolbar) iconButton(gtx layout.Context, th *material.Theme, btn *widget.Clickable, icon string) layout.Dimensions {
	return t.buttonBase(gtx, th, btn, icon, 32, false)
}

func (t *Toolbar) textButton(gtx layout.Context, th *material.Theme, btn *widget.Clickable, text string) layout.Dimensions {
	return t.buttonBase(gtx, th, btn, text, 56, false)
}

func (t *Toolbar) modeButton(gtx layout.Context, th *material.Theme, btn *widget.Clickable, text string, active bool) layout.Dimensions {
	return t.buttonBase(gtx, th, btn, text, 44, active)
}

func (t *Toolbar) buttonBase(gtx layout.Context, th *material.Theme, btn *widget.Clickable, text string, width int, active bool) layout.Dimensions {
	bg := color.NRGBA{R: 55, G: 58, B: 65, A: 255}
	if active {
		bg = color.NRGBA{R: 80, G: 130, B: 180, A: 255}
	}
	if btn.Hovered() {
		bg.R = minU8(bg.R+15, 255)
		bg.G = minU8(bg.G+15, 255)
		bg.B = minU8(bg.B+15, 255)
	}

	return btn.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Background{}.Layout(gtx,
			func(gtx layout.Context) layout.Dimensions {
				gtx.Constraints.Min = image.Point{X: width, Y: 28}
				rect := image.Rect(0, 0, gtx.Constraints.Min.X, gtx.Constraints.Min.Y)
				paint.FillShape(gtx.Ops, bg, clip.Rect(rect).Op())
				return layout.Dimensions{Size: gtx.Constraints.Min}
			},
			func(gtx layout.Context) layout.Dimensions {
				gtx.Constraints.Min = image.Point{X: width, Y: 28}
				return layout.Center.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
					label := material.Label(th, 12, text)
					label.Color = color.NRGBA{R: 220, G: 220, B: 220, A: 255}
					return label.Layout(gtx)
				})
			},
		)
	})
}

func (t *Toolbar) handleClicks(gtx layout.Context) {
	// Modes
	for t.rectModeBtn.Clicked(gtx) {
		t.state.Machine.SetMode(editor.ModeRectangle)
	}
	for t.polyModeBtn.Clicked(gtx) {
		t.state.Machine.SetMode(editor.ModePolygon)
	}

	// Selection
	for t.cropBtn.Clicked(gtx) {
		t.state.Crop()
	}
	for t.undoBtn.Clicked(gtx) {
		t.state.UndoPoint()
	}
	for t.clearBtn.Clicked(gtx) {
		t.state.ClearSelection()
	}

	// View
	for t.zoomInBtn.Clicked(gtx) {
		t.state.ZoomIn()
	}
	for t.zoomOutBtn.Clicked(gtx) {
		t.state.ZoomOut()
	}
	for t.fitBtn.Clicked(gtx) {
		t.state.FitView()
	}

	// Assist
	for t.suggestBtn.Clicked(gtx) {
		t.state.SuggestCrop()
	}
	for t.copyBtn.Clicked(gtx) {
		t.state.CopyLastCrop()
	}

	// Export
	for t.exportBtn.Clicked(gtx) {
		t.state.ExportFiles()
	}
	for t.archiveBtn.Clicked(gtx) {
		t.state.ExportArchive()
	}
	for t.sheetBtn.Clicked(gtx) {
		t.state.ExportSheet()
	}

	// Open
	for t.openBtn.Clicked(gtx) {
		t.state.LoadImage(strings.TrimSpace(t.pathField.Text()))
	}
	for {
		e, ok := t.pathField.Update(gtx)
		if !ok {
			break
		}
		if se, ok := e.(widget.SubmitEvent); ok {
			t.state.LoadImage(strings.TrimSpace(se.Text))
		}
	}
}

func minU8(a, b uint8) uint8 {
	if a < b {
		return a
	}
	return b
}
