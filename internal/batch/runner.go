// Package batch replays saved crop manifests against source images
// without the editor UI.
package batch

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cropdeck/cropdeck/internal/editor"
	"github.com/cropdeck/cropdeck/internal/export"
	"github.com/cropdeck/cropdeck/internal/extract"
	"github.com/cropdeck/cropdeck/internal/imgio"
	"github.com/cropdeck/cropdeck/internal/session"
)

// Runner replays a crops.json manifest and writes the resulting crops.
type Runner struct {
	// ImageDir is where the source images named by the manifest live.
	// Empty means the manifest's own directory.
	ImageDir string
	// OutDir receives the crop files.
	OutDir  string
	Options export.Options
}

// LoadManifest reads and parses a crops.json manifest.
func LoadManifest(path string) ([]session.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	var records []session.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	return records, nil
}

// Run replays every record in the manifest, keeping the crop numbers
// the manifest assigns. It returns the number of crops written.
func (r *Runner) Run(ctx context.Context, manifestPath string) (int, error) {
	records, err := LoadManifest(manifestPath)
	if err != nil {
		return 0, err
	}
	if len(records) == 0 {
		return 0, fmt.Errorf("manifest %s has no records", manifestPath)
	}

	imageDir := r.ImageDir
	if imageDir == "" {
		imageDir = filepath.Dir(manifestPath)
	}

	sources := make(map[string]*imgio.Source)
	written := 0
	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return written, err
		}

		mode, err := editor.ParseMode(rec.Mode)
		if err != nil {
			return written, fmt.Errorf("crop %d: %w", rec.CropNumber, err)
		}
		if err := checkModeAgreement(mode, rec.Selection); err != nil {
			return written, fmt.Errorf("crop %d: %w", rec.CropNumber, err)
		}

		src, ok := sources[rec.OriginalFileName]
		if !ok {
			loaded, err := imgio.LoadFile(filepath.Join(imageDir, rec.OriginalFileName))
			if err != nil {
				return written, fmt.Errorf("crop %d: %w", rec.CropNumber, err)
			}
			src = loaded
			sources[rec.OriginalFileName] = src
		}

		ex, ok := extract.Apply(src.Image, rec.Selection)
		if !ok {
			return written, fmt.Errorf("crop %d: selection produces no pixels", rec.CropNumber)
		}

		crop := &session.Crop{
			ID:        fmt.Sprintf("c%d", rec.CropNumber),
			Number:    rec.CropNumber,
			Mode:      ex.Mode,
			Selection: ex.Selection,
			Image:     ex.Image,
			Source:    rec.OriginalFileName,
		}
		if _, err := export.SaveCrop(r.OutDir, crop, r.Options); err != nil {
			return written, fmt.Errorf("crop %d: %w", rec.CropNumber, err)
		}
		written++
	}

	return written, nil
}

func checkModeAgreement(mode editor.Mode, sel editor.Selection) error {
	switch mode {
	case editor.ModeRectangle:
		if sel.Kind != editor.KindRectangle {
			return fmt.Errorf("mode rectangle with %s selection", sel.Kind)
		}
	case editor.ModePolygon:
		if sel.Kind != editor.KindPolygon {
			return fmt.Errorf("mode polygon with %s selection", sel.Kind)
		}
	}
	return nil
}
