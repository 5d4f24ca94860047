// Package session accumulates the crops extracted from an open image.
package session

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	"github.com/cropdeck/cropdeck/internal/editor"
	"github.com/cropdeck/cropdeck/internal/extract"
)

// Default thumbnail bounds for crop list entries.
const (
	DefaultThumbWidth  = 160
	DefaultThumbHeight = 120
)

// Crop is one extracted crop and its provenance.
type Crop struct {
	ID        string
	Number    int
	Mode      editor.Mode
	Selection editor.Selection
	Image     *image.NRGBA
	Thumb     *image.NRGBA
	Source    string
}

// Record returns the crop's export metadata.
func (c *Crop) Record() Record {
	return Record{
		OriginalFileName: c.Source,
		CropNumber:       c.Number,
		Mode:             c.Mode.String(),
		Selection:        c.Selection,
	}
}

// Session owns the crops produced from one source image. Crop numbers
// are 1-based and never reused within a session, so removing a crop
// does not renumber the rest.
type Session struct {
	source  string
	counter int
	crops   []*Crop

	thumbW int
	thumbH int
}

// New creates an empty session for the named source image.
func New(source string) *Session {
	return &Session{
		source: source,
		thumbW: DefaultThumbWidth,
		thumbH: DefaultThumbHeight,
	}
}

// SetThumbSize overrides the thumbnail bounds for subsequent crops.
func (s *Session) SetThumbSize(w, h int) {
	if w > 0 && h > 0 {
		s.thumbW, s.thumbH = w, h
	}
}

// Source returns the session's source image name.
func (s *Session) Source() string { return s.source }

// Add stores an extraction as the next crop and returns its record.
func (s *Session) Add(ex extract.Extraction) *Crop {
	s.counter++
	c := &Crop{
		ID:        fmt.Sprintf("c%d", s.counter),
		Number:    s.counter,
		Mode:      ex.Mode,
		Selection: ex.Selection,
		Image:     ex.Image,
		Thumb:     imaging.Fit(ex.Image, s.thumbW, s.thumbH, imaging.Lanczos),
		Source:    s.source,
	}
	s.crops = append(s.crops, c)
	return c
}

// Crops returns the stored crops in creation order.
func (s *Session) Crops() []*Crop { return s.crops }

// Len returns the number of stored crops.
func (s *Session) Len() int { return len(s.crops) }

// Latest returns the most recently added crop, or nil.
func (s *Session) Latest() *Crop {
	if len(s.crops) == 0 {
		return nil
	}
	return s.crops[len(s.crops)-1]
}

// Get returns the crop with the given id, or nil.
func (s *Session) Get(id string) *Crop {
	for _, c := range s.crops {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// Remove deletes the crop with the given id.
func (s *Session) Remove(id string) bool {
	for i, c := range s.crops {
		if c.ID == id {
			s.crops = append(s.crops[:i], s.crops[i+1:]...)
			return true
		}
	}
	return false
}

// Clear drops all crops. The counter keeps advancing so exported file
// names stay unique across a session.
func (s *Session) Clear() {
	s.crops = nil
}

// Records returns the export metadata for every crop in order.
func (s *Session) Records() []Record {
	records := make([]Record, 0, len(s.crops))
	for _, c := range s.crops {
		records = append(records, c.Record())
	}
	return records
}
