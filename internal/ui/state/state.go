// Package state manages the editor state shared by the UI widgets.
package state

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"log"
	"path/filepath"
	"sync"
	"time"

	"gioui.org/op/paint"
	"golang.design/x/clipboard"

	"github.com/cropdeck/cropdeck/internal/config"
	"github.com/cropdeck/cropdeck/internal/editor"
	"github.com/cropdeck/cropdeck/internal/export"
	"github.com/cropdeck/cropdeck/internal/extract"
	"github.com/cropdeck/cropdeck/internal/geom"
	"github.com/cropdeck/cropdeck/internal/imgio"
	"github.com/cropdeck/cropdeck/internal/session"
	"github.com/cropdeck/cropdeck/internal/suggest"
	"github.com/cropdeck/cropdeck/internal/viewport"
)

// State holds all editor state. Widgets mutate it on the UI thread;
// background tasks hand their results back through Do.
type State struct {
	Config *config.Config

	View    *viewport.Transform
	Machine *editor.Machine
	Session *session.Session

	// Source is the open image, nil until a load completes.
	Source *imgio.Source
	ImgOp  paint.ImageOp

	// ViewSize is the workspace size from the last laid-out frame.
	ViewSize image.Point

	// Hover is the pointer position in image coordinates.
	Hover      geom.Point
	HoverValid bool

	Loading      bool
	Status       string
	SelectedCrop string

	fitted  bool
	suggest *suggest.Client

	invalidate func()

	mu      sync.Mutex
	pending []func()

	clipboardOnce sync.Once
	clipboardErr  error
}

// NewState creates editor state from the configuration.
func NewState(cfg *config.Config) *State {
	machine := editor.NewMachine()
	machine.CloseRadius = cfg.Editor.CloseRadiusPx

	return &State{
		Config:  cfg,
		View:    viewport.New(),
		Machine: machine,
		Session: session.New(""),
		Status:  "Open an image to start",
	}
}

// SetInvalidate registers the window wake-up used after background work.
func (s *State) SetInvalidate(fn func()) {
	s.invalidate = fn
}

// Do queues fn to run on the UI thread at the start of the next frame.
func (s *State) Do(fn func()) {
	s.mu.Lock()
	s.pending = append(s.pending, fn)
	s.mu.Unlock()
	if s.invalidate != nil {
		s.invalidate()
	}
}

// Drain applies queued mutations. Called once per frame before layout.
func (s *State) Drain() {
	s.mu.Lock()
	fns := s.pending
	s.pending = nil
	s.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

// FitViewIfNeeded fits the image once the workspace size is known.
// Runs every frame; does nothing after the initial fit.
func (s *State) FitViewIfNeeded() {
	if s.fitted || s.Source == nil || s.ViewSize.X == 0 || s.ViewSize.Y == 0 {
		return
	}
	s.View.FitToContainer(float64(s.Source.Width), float64(s.Source.Height),
		float64(s.ViewSize.X), float64(s.ViewSize.Y))
	s.fitted = true
}

// LoadImage decodes a file path or URL in the background and swaps in
// a fresh session for the new source.
func (s *State) LoadImage(pathOrURL string) {
	if pathOrURL == "" {
		return
	}
	s.Loading = true
	s.Status = "Loading " + pathOrURL
	go func() {
		src, err := imgio.Load(context.Background(), pathOrURL)
		s.Do(func() {
			s.Loading = false
			if err != nil {
				log.Printf("load image: %v", err)
				s.Status = "Load failed: " + err.Error()
				return
			}
			s.setSource(src)
			s.Status = fmt.Sprintf("Loaded %s (%dx%d)", src.Name, src.Width, src.Height)
		})
	}()
}

func (s *State) setSource(src *imgio.Source) {
	s.Source = src
	s.ImgOp = paint.NewImageOp(src.Image)
	s.Session = session.New(src.Name)
	s.Session.SetThumbSize(s.Config.Thumbnail.Width, s.Config.Thumbnail.Height)
	s.Machine.Clear()
	s.SelectedCrop = ""
	s.HoverValid = false
	s.fitted = false
}

// CanEdit reports whether selection input should reach the machine.
func (s *State) CanEdit() bool {
	return s.Source != nil && !s.Loading
}

// Crop extracts the current selection into the session. An unmet
// precondition leaves the selection and the session untouched.
func (s *State) Crop() {
	if s.Source == nil {
		return
	}
	ex, ok := extract.Apply(s.Source.Image, s.Machine.Selection())
	if !ok {
		return
	}
	crop := s.Session.Add(ex)
	s.Machine.Clear()
	s.SelectedCrop = crop.ID
	b := crop.Image.Bounds()
	s.Status = fmt.Sprintf("Crop #%d (%dx%d)", crop.Number, b.Dx(), b.Dy())
}

// ClearSelection drops the active selection.
func (s *State) ClearSelection() {
	s.Machine.Clear()
}

// UndoPoint removes the last polygon vertex.
func (s *State) UndoPoint() {
	s.Machine.UndoPoint()
}

// RemoveCrop deletes a crop from the session.
func (s *State) RemoveCrop(id string) {
	if s.Session.Remove(id) && s.SelectedCrop == id {
		s.SelectedCrop = ""
	}
}

// ClearCrops empties the crop list.
func (s *State) ClearCrops() {
	s.Session.Clear()
	s.SelectedCrop = ""
}

// WheelZoom applies one scroll step anchored at the view center.
// Scrolling toward the user zooms out, matching the toolbar direction.
func (s *State) WheelZoom(scrollY float32) {
	if scrollY == 0 || s.Source == nil {
		return
	}
	step := s.Config.Editor.WheelZoomStep
	if scrollY > 0 {
		s.zoomBy(1 / step)
	} else {
		s.zoomBy(step)
	}
}

// ZoomIn is the toolbar/keyboard zoom-in command.
func (s *State) ZoomIn() {
	if s.Source != nil {
		s.zoomBy(s.Config.Editor.ButtonZoomStep)
	}
}

// ZoomOut is the toolbar/keyboard zoom-out command.
func (s *State) ZoomOut() {
	if s.Source != nil {
		s.zoomBy(1 / s.Config.Editor.ButtonZoomStep)
	}
}

func (s *State) zoomBy(factor float64) {
	s.View.ZoomAtCenter(factor, float64(s.ViewSize.X), float64(s.ViewSize.Y))
}

// FitView re-fits the image to the workspace.
func (s *State) FitView() {
	if s.Source == nil || s.ViewSize.X == 0 || s.ViewSize.Y == 0 {
		return
	}
	s.View.FitToContainer(float64(s.Source.Width), float64(s.Source.Height),
		float64(s.ViewSize.X), float64(s.ViewSize.Y))
}

// CopyLastCrop puts the newest crop on the system clipboard as PNG.
func (s *State) CopyLastCrop() {
	crop := s.Session.Latest()
	if crop == nil {
		s.Status = "Nothing to copy"
		return
	}
	s.clipboardOnce.Do(func() {
		s.clipboardErr = clipboard.Init()
		if s.clipboardErr != nil {
			log.Printf("clipboard unavailable: %v", s.clipboardErr)
		}
	})
	if s.clipboardErr != nil {
		s.Status = "Clipboard unavailable"
		return
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, crop.Image); err != nil {
		s.Status = "Copy failed: " + err.Error()
		return
	}
	clipboard.Write(clipboard.FmtImage, buf.Bytes())
	s.Status = fmt.Sprintf("Copied crop #%d", crop.Number)
}

func (s *State) exportOptions() export.Options {
	return export.Options{
		Format:   s.Config.Export.Format,
		Quality:  s.Config.Export.Quality,
		Lossless: s.Config.Export.Lossless,
	}
}

// snapshotCrops copies the crop list so background exports are immune
// to removals happening in the UI.
func (s *State) snapshotCrops() []*session.Crop {
	return append([]*session.Crop(nil), s.Session.Crops()...)
}

// ExportFiles writes every crop plus the crops.json manifest to the
// configured output directory in the background.
func (s *State) ExportFiles() {
	crops := s.snapshotCrops()
	if len(crops) == 0 {
		s.Status = "Nothing to export"
		return
	}
	dir := s.Config.Export.OutputDir
	opts := s.exportOptions()
	s.Status = "Exporting files"
	go func() {
		paths, err := export.SaveAll(dir, crops, opts)
		s.Do(func() {
			if err != nil {
				log.Printf("export files: %v", err)
				s.Status = "Export failed: " + err.Error()
				return
			}
			s.Status = fmt.Sprintf("Exported %d files to %s", len(paths), dir)
		})
	}()
}

// ExportArchive writes a zip of all crops in the background.
func (s *State) ExportArchive() {
	crops := s.snapshotCrops()
	if len(crops) == 0 {
		s.Status = "Nothing to export"
		return
	}
	path := filepath.Join(s.Config.Export.OutputDir,
		export.Stem(s.Session.Source())+"_crops.zip")
	s.Status = "Exporting archive"
	go func() {
		err := export.SaveArchive(path, crops)
		s.Do(func() {
			if err != nil {
				log.Printf("export archive: %v", err)
				s.Status = "Export failed: " + err.Error()
				return
			}
			s.Status = "Exported " + path
		})
	}()
}

// ExportSheet writes a contact sheet of all crops in the background.
func (s *State) ExportSheet() {
	crops := s.snapshotCrops()
	if len(crops) == 0 {
		s.Status = "Nothing to export"
		return
	}
	path := filepath.Join(s.Config.Export.OutputDir,
		export.Stem(s.Session.Source())+"_sheet.png")
	s.Status = "Exporting contact sheet"
	go func() {
		err := export.ContactSheet(path, crops)
		s.Do(func() {
			if err != nil {
				log.Printf("export sheet: %v", err)
				s.Status = "Export failed: " + err.Error()
				return
			}
			s.Status = "Exported " + path
		})
	}()
}

// SuggestCrop asks the configured vision model for a subject box and
// drafts a rectangle selection from the answer.
func (s *State) SuggestCrop() {
	if s.Source == nil {
		return
	}
	if !s.Config.Suggest.Enabled {
		s.Status = "Suggest is disabled in config"
		return
	}
	if s.suggest == nil {
		client, err := suggest.New(s.Config.Suggest.Host, s.Config.Suggest.Model,
			time.Duration(s.Config.Suggest.TimeoutSec)*time.Second)
		if err != nil {
			s.Status = "Suggest unavailable: " + err.Error()
			return
		}
		s.suggest = client
	}
	src := s.Source
	s.Status = "Asking " + s.Config.Suggest.Model + " for a subject box"
	go func() {
		box, err := s.suggest.SubjectBox(context.Background(), src.Image)
		s.Do(func() {
			if err != nil {
				log.Printf("suggest: %v", err)
				s.Status = "Suggest failed: " + err.Error()
				return
			}
			if s.Source != src {
				// The image changed while the model was thinking.
				return
			}
			// SetMode clears any selection from the other mode first.
			s.Machine.SetMode(editor.ModeRectangle)
			s.Machine.SetSelection(editor.RectSelection(box.Rect(src.Width, src.Height)))
			s.Status = "Suggested selection ready"
		})
	}()
}
