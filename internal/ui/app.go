// Package ui implements the Gio-based crop editor interface.
package ui

import (
	"image/color"

	"gioui.org/app"
	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/paint"
	"gioui.org/widget/material"

	"github.com/cropdeck/cropdeck/internal/config"
	"github.com/cropdeck/cropdeck/internal/editor"
	"github.com/cropdeck/cropdeck/internal/ui/state"
	"github.com/cropdeck/cropdeck/internal/ui/widgets"
)

// App is the main editor application.
type App struct {
	state     *state.State
	theme     *material.Theme
	workspace *widgets.Workspace
	toolbar   *widgets.Toolbar
	croplist  *widgets.CropList
	statusbar *widgets.StatusBar
}

// NewApp creates a new editor application.
func NewApp(cfg *config.Config) *App {
	th := material.NewTheme()
	st := state.NewState(cfg)

	return &App{
		state:     st,
		theme:     th,
		workspace: widgets.NewWorkspace(st),
		toolbar:   widgets.NewToolbar(st),
		croplist:  widgets.NewCropList(st),
		statusbar: widgets.NewStatusBar(st),
	}
}

// State exposes the shared editor state.
func (a *App) State() *state.State {
	return a.state
}

// Run starts the application event loop.
func (a *App) Run(w *app.Window) error {
	var ops op.Ops

	// Event filter tag for keyboard input
	tag := new(int)

	for {
		switch e := w.Event().(type) {
		case app.DestroyEvent:
			return e.Err

		case app.FrameEvent:
			gtx := app.NewContext(&ops, e)

			// Apply results of background work before drawing
			a.state.Drain()

			// Handle keyboard events
			for {
				ev, ok := gtx.Event(key.Filter{Focus: tag, Optional: key.ModCtrl | key.ModShift})
				if !ok {
					break
				}
				if ke, ok := ev.(key.Event); ok && ke.State == key.Press {
					a.handleKeyEvent(ke)
				}
			}

			// Request focus for keyboard input
			event.Op(gtx.Ops, tag)

			a.layout(gtx)
			e.Frame(gtx.Ops)
		}
	}
}

func (a *App) handleKeyEvent(e key.Event) {
	switch e.Name {
	case key.NameReturn, key.NameEnter:
		a.state.Crop()
	case key.NameEscape:
		a.state.ClearSelection()
	case key.NameDeleteBackward:
		a.state.UndoPoint()
	case "R":
		a.state.FitView()
	case "1":
		a.state.Machine.SetMode(editor.ModeRectangle)
	case "2":
		a.state.Machine.SetMode(editor.ModePolygon)
	case "+", "=":
		a.state.ZoomIn()
	case "-":
		a.state.ZoomOut()
	case "C":
		if e.Modifiers.Contain(key.ModCtrl) {
			a.state.CopyLastCrop()
		}
	}
}

func (a *App) layout(gtx layout.Context) layout.Dimensions {
	// Fill background
	paint.Fill(gtx.Ops, color.NRGBA{R: 30, G: 30, B: 35, A: 255})

	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		// Toolbar at top
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return a.toolbar.Layout(gtx, a.theme)
		}),
		// Main content area
		layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
			return layout.Flex{Axis: layout.Horizontal}.Layout(gtx,
				// Workspace (image view)
				layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
					return a.workspace.Layout(gtx, a.theme)
				}),
				// Crop panel
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					return a.croplist.Layout(gtx, a.theme)
				}),
			)
		}),
		// Status bar at bottom
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return a.statusbar.Layout(gtx, a.theme)
		}),
	)
}
