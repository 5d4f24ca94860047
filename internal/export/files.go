// Package export writes finished crops to disk as loose files, a zip
// archive, or a contact sheet.
package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"

	"github.com/cropdeck/cropdeck/internal/session"
)

// Options control the on-disk encoding of crop images.
type Options struct {
	Format   string
	Quality  int
	Lossless bool
}

// Stem returns the base name of a source file without its extension.
func Stem(name string) string {
	base := filepath.Base(name)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// FileName builds the output name for a crop, e.g. photo_crop_3.png.
func FileName(source string, number int, format string) string {
	return fmt.Sprintf("%s_crop_%d.%s", Stem(source), number, normalizeFormat(format))
}

func normalizeFormat(format string) string {
	switch strings.ToLower(format) {
	case "":
		return "png"
	case "jpeg":
		return "jpg"
	default:
		return strings.ToLower(format)
	}
}

// SaveCrop writes one crop image under dir and returns the written path.
func SaveCrop(dir string, crop *session.Crop, opts Options) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(dir, FileName(crop.Source, crop.Number, opts.Format))

	switch normalizeFormat(opts.Format) {
	case "webp":
		f, err := os.Create(path)
		if err != nil {
			return "", err
		}
		defer f.Close()
		wopts := &webp.Options{Lossless: opts.Lossless, Quality: float32(opts.Quality)}
		if err := webp.Encode(f, crop.Image, wopts); err != nil {
			return "", fmt.Errorf("failed to encode webp: %w", err)
		}
	case "jpg":
		if err := imaging.Save(crop.Image, path, imaging.JPEGQuality(opts.Quality)); err != nil {
			return "", err
		}
	default:
		if err := imaging.Save(crop.Image, path); err != nil {
			return "", err
		}
	}

	return path, nil
}

// SaveAll writes every crop plus a crops.json manifest and returns the
// written paths, manifest last.
func SaveAll(dir string, crops []*session.Crop, opts Options) ([]string, error) {
	if len(crops) == 0 {
		return nil, fmt.Errorf("no crops to save")
	}

	paths := make([]string, 0, len(crops)+1)
	records := make([]session.Record, 0, len(crops))
	for _, c := range crops {
		p, err := SaveCrop(dir, c, opts)
		if err != nil {
			return paths, fmt.Errorf("failed to save crop %d: %w", c.Number, err)
		}
		paths = append(paths, p)
		records = append(records, c.Record())
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return paths, fmt.Errorf("failed to marshal manifest: %w", err)
	}
	manifest := filepath.Join(dir, "crops.json")
	if err := os.WriteFile(manifest, data, 0644); err != nil {
		return paths, fmt.Errorf("failed to write manifest: %w", err)
	}

	return append(paths, manifest), nil
}
