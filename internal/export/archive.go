package export

import (
	"archive/zip"
	"encoding/json"
	"fmt"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"github.com/cropdeck/cropdeck/internal/session"
)

// WriteArchive streams the crops to w as a zip archive. The manifest
// entry crops.json comes first, followed by one PNG per crop.
func WriteArchive(w io.Writer, crops []*session.Crop) error {
	if len(crops) == 0 {
		return fmt.Errorf("no crops to archive")
	}

	zw := zip.NewWriter(w)

	records := make([]session.Record, 0, len(crops))
	for _, c := range crops {
		records = append(records, c.Record())
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}
	entry, err := zw.Create("crops.json")
	if err != nil {
		return err
	}
	if _, err := entry.Write(data); err != nil {
		return err
	}

	for _, c := range crops {
		entry, err := zw.Create(FileName(c.Source, c.Number, "png"))
		if err != nil {
			return err
		}
		if err := png.Encode(entry, c.Image); err != nil {
			return fmt.Errorf("failed to encode crop %d: %w", c.Number, err)
		}
	}

	return zw.Close()
}

// SaveArchive writes the zip archive to path.
func SaveArchive(path string, crops []*session.Crop) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create archive: %w", err)
	}
	if err := WriteArchive(f, crops); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
