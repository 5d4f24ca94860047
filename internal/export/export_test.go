package export

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"

	"github.com/cropdeck/cropdeck/internal/editor"
	"github.com/cropdeck/cropdeck/internal/extract"
	"github.com/cropdeck/cropdeck/internal/geom"
	"github.com/cropdeck/cropdeck/internal/session"
)

func sessionWithCrops(t *testing.T, n int) *session.Session {
	t.Helper()
	src := image.NewNRGBA(image.Rect(0, 0, 120, 90))
	for y := 0; y < 90; y++ {
		for x := 0; x < 120; x++ {
			src.SetNRGBA(x, y, color.NRGBA{R: 180, G: 40, B: 90, A: 255})
		}
	}
	s := session.New("shot.png")
	for i := 0; i < n; i++ {
		sel := editor.RectSelection(geom.Rect{X: float64(i) * 5, Y: 4, Width: 40, Height: 30})
		ex, ok := extract.Apply(src, sel)
		if !ok {
			t.Fatalf("extract %d failed", i)
		}
		s.Add(ex)
	}
	return s
}

func TestFileName(t *testing.T) {
	tests := []struct {
		source string
		number int
		format string
		want   string
	}{
		{"photo.png", 1, "png", "photo_crop_1.png"},
		{"dir/photo.old.jpg", 2, "jpeg", "photo.old_crop_2.jpg"},
		{"shot.webp", 3, "", "shot_crop_3.png"},
		{"shot", 10, "webp", "shot_crop_10.webp"},
	}
	for _, tt := range tests {
		if got := FileName(tt.source, tt.number, tt.format); got != tt.want {
			t.Errorf("FileName(%q, %d, %q) = %q, want %q", tt.source, tt.number, tt.format, got, tt.want)
		}
	}
}

func TestSaveCropPNG(t *testing.T) {
	crop := sessionWithCrops(t, 1).Latest()
	dir := t.TempDir()

	path, err := SaveCrop(dir, crop, Options{Format: "png", Quality: 90})
	if err != nil {
		t.Fatalf("SaveCrop: %v", err)
	}
	if filepath.Base(path) != "shot_crop_1.png" {
		t.Errorf("path = %q", path)
	}
	img, err := imaging.Open(path)
	if err != nil {
		t.Fatalf("open saved crop: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 40 || b.Dy() != 30 {
		t.Errorf("saved size = %dx%d, want 40x30", b.Dx(), b.Dy())
	}
}

func TestSaveCropJPEG(t *testing.T) {
	crop := sessionWithCrops(t, 1).Latest()
	dir := t.TempDir()

	path, err := SaveCrop(dir, crop, Options{Format: "jpeg", Quality: 85})
	if err != nil {
		t.Fatalf("SaveCrop: %v", err)
	}
	if filepath.Base(path) != "shot_crop_1.jpg" {
		t.Errorf("path = %q, want jpg extension", path)
	}
	if _, err := imaging.Open(path); err != nil {
		t.Errorf("open saved crop: %v", err)
	}
}

func TestSaveCropWebP(t *testing.T) {
	crop := sessionWithCrops(t, 1).Latest()
	dir := t.TempDir()

	path, err := SaveCrop(dir, crop, Options{Format: "webp", Quality: 80, Lossless: true})
	if err != nil {
		t.Fatalf("SaveCrop: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	img, err := webp.Decode(f)
	if err != nil {
		t.Fatalf("decode webp: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 40 || b.Dy() != 30 {
		t.Errorf("saved size = %dx%d, want 40x30", b.Dx(), b.Dy())
	}
}

func TestSaveAllWritesManifest(t *testing.T) {
	s := sessionWithCrops(t, 3)
	dir := t.TempDir()

	paths, err := SaveAll(dir, s.Crops(), Options{Format: "png", Quality: 90})
	if err != nil {
		t.Fatalf("SaveAll: %v", err)
	}
	if len(paths) != 4 {
		t.Fatalf("len(paths) = %d, want 3 crops + manifest", len(paths))
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			t.Errorf("missing output %s: %v", p, err)
		}
	}

	data, err := os.ReadFile(filepath.Join(dir, "crops.json"))
	if err != nil {
		t.Fatalf("read manifest: %v", err)
	}
	var records []session.Record
	if err := json.Unmarshal(data, &records); err != nil {
		t.Fatalf("parse manifest: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("len(records) = %d, want 3", len(records))
	}
	for i, r := range records {
		if r.CropNumber != i+1 {
			t.Errorf("records[%d].CropNumber = %d, want %d", i, r.CropNumber, i+1)
		}
		if r.OriginalFileName != "shot.png" {
			t.Errorf("records[%d].OriginalFileName = %q", i, r.OriginalFileName)
		}
	}
}

func TestSaveAllEmpty(t *testing.T) {
	if _, err := SaveAll(t.TempDir(), nil, Options{}); err == nil {
		t.Errorf("empty session should error")
	}
}

func TestWriteArchive(t *testing.T) {
	s := sessionWithCrops(t, 2)

	var buf bytes.Buffer
	if err := WriteArchive(&buf, s.Crops()); err != nil {
		t.Fatalf("WriteArchive: %v", err)
	}

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("read archive: %v", err)
	}
	if len(zr.File) != 3 {
		t.Fatalf("len(entries) = %d, want manifest + 2 crops", len(zr.File))
	}
	if zr.File[0].Name != "crops.json" {
		t.Errorf("first entry = %q, want crops.json", zr.File[0].Name)
	}

	entry, err := zr.Open("shot_crop_2.png")
	if err != nil {
		t.Fatalf("open crop entry: %v", err)
	}
	defer entry.Close()
	img, err := png.Decode(entry)
	if err != nil {
		t.Fatalf("decode crop entry: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 40 || b.Dy() != 30 {
		t.Errorf("entry size = %dx%d, want 40x30", b.Dx(), b.Dy())
	}
}

func TestWriteArchiveEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteArchive(&buf, nil); err == nil {
		t.Errorf("empty archive should error")
	}
}

func TestSaveArchive(t *testing.T) {
	s := sessionWithCrops(t, 1)
	path := filepath.Join(t.TempDir(), "crops.zip")

	if err := SaveArchive(path, s.Crops()); err != nil {
		t.Fatalf("SaveArchive: %v", err)
	}
	if _, err := zip.OpenReader(path); err != nil {
		t.Errorf("archive unreadable: %v", err)
	}
}

func TestContactSheetLayout(t *testing.T) {
	s := sessionWithCrops(t, 5)
	path := filepath.Join(t.TempDir(), "sheet.png")

	if err := ContactSheet(path, s.Crops()); err != nil {
		t.Fatalf("ContactSheet: %v", err)
	}
	img, err := imaging.Open(path)
	if err != nil {
		t.Fatalf("open sheet: %v", err)
	}

	// Five crops fill a 3x2 grid.
	wantW := 3*(sheetCellW+sheetPad) + sheetPad
	wantH := 2*(sheetCellH+sheetLabelH+sheetPad) + sheetPad
	if b := img.Bounds(); b.Dx() != wantW || b.Dy() != wantH {
		t.Errorf("sheet size = %dx%d, want %dx%d", b.Dx(), b.Dy(), wantW, wantH)
	}
}

func TestContactSheetEmpty(t *testing.T) {
	if err := ContactSheet(filepath.Join(t.TempDir(), "sheet.png"), nil); err == nil {
		t.Errorf("empty sheet should error")
	}
}
