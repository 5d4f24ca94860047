// Package main provides a benchmark runner for selection extraction.
// Times rectangle and polygon crops across image sizes and collects
// the results as a CSV plus a summary table.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"image"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/cropdeck/cropdeck/internal/editor"
	"github.com/cropdeck/cropdeck/internal/extract"
	"github.com/cropdeck/cropdeck/internal/geom"
)

// BenchmarkResult stores the timing of one extraction case.
type BenchmarkResult struct {
	Timestamp string
	GoVersion string
	OS        string
	Arch      string
	Image     string
	Selection string
	OutPixels int
	Runs      int
	AvgMs     float64
	MinMs     float64
	MaxMs     float64
	MPixPerS  float64
}

type benchCase struct {
	name string
	sel  editor.Selection
}

// makeSource builds a synthetic gradient image so extraction touches
// realistic, non-uniform pixel data.
func makeSource(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(x * 255 / w),
				G: uint8(y * 255 / h),
				B: uint8((x + y) * 255 / (w + h)),
				A: 255,
			})
		}
	}
	return img
}

// makeCases builds the selection suite for a w x h source.
func makeCases(w, h int) []benchCase {
	fw := float64(w)
	fh := float64(h)

	return []benchCase{
		{
			name: "rect-full",
			sel:  editor.RectSelection(geom.Rect{X: 0, Y: 0, Width: fw, Height: fh}),
		},
		{
			name: "rect-center",
			sel:  editor.RectSelection(geom.Rect{X: fw / 4, Y: fh / 4, Width: fw / 2, Height: fh / 2}),
		},
		{
			name: "polygon-triangle",
			sel: editor.PolygonSelection(
				geom.Point{X: fw / 2, Y: fh * 0.1},
				geom.Point{X: fw * 0.9, Y: fh * 0.9},
				geom.Point{X: fw * 0.1, Y: fh * 0.9},
			),
		},
		{
			name: "polygon-hexagon",
			sel:  editor.PolygonSelection(ringPoints(fw/2, fh/2, math.Min(fw, fh)*0.4, 6)...),
		},
		{
			name: "polygon-ring24",
			sel:  editor.PolygonSelection(ringPoints(fw/2, fh/2, math.Min(fw, fh)*0.45, 24)...),
		},
	}
}

func ringPoints(cx, cy, radius float64, n int) []geom.Point {
	pts := make([]geom.Point, n)
	for i := 0; i < n; i++ {
		angle := 2 * math.Pi * float64(i) / float64(n)
		pts[i] = geom.Point{
			X: cx + radius*math.Cos(angle),
			Y: cy + radius*math.Sin(angle),
		}
	}
	return pts
}

func runCase(src *image.NRGBA, c benchCase, runs int) *BenchmarkResult {
	bounds := src.Bounds()
	result := &BenchmarkResult{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		GoVersion: runtime.Version(),
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
		Image:     fmt.Sprintf("%dx%d", bounds.Dx(), bounds.Dy()),
		Selection: c.name,
		Runs:      runs,
		MinMs:     math.MaxFloat64,
	}

	var totalMs float64
	for i := 0; i < runs; i++ {
		start := time.Now()
		ex, ok := extract.Apply(src, c.sel)
		elapsed := float64(time.Since(start).Microseconds()) / 1000.0

		if !ok {
			fmt.Fprintf(os.Stderr, "Extraction failed for %s on %s\n", c.name, result.Image)
			os.Exit(1)
		}
		if i == 0 {
			b := ex.Image.Bounds()
			result.OutPixels = b.Dx() * b.Dy()
		}

		totalMs += elapsed
		if elapsed < result.MinMs {
			result.MinMs = elapsed
		}
		if elapsed > result.MaxMs {
			result.MaxMs = elapsed
		}
	}

	result.AvgMs = totalMs / float64(runs)
	if result.AvgMs > 0 {
		result.MPixPerS = float64(result.OutPixels) / (result.AvgMs / 1000.0) / 1e6
	}
	return result
}

func writeCSV(results []*BenchmarkResult, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{
		"timestamp", "go_version", "os", "arch",
		"image", "selection", "out_pixels", "runs",
		"avg_ms", "min_ms", "max_ms", "mpix_per_s",
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, r := range results {
		row := []string{
			r.Timestamp, r.GoVersion, r.OS, r.Arch,
			r.Image, r.Selection, fmt.Sprintf("%d", r.OutPixels), fmt.Sprintf("%d", r.Runs),
			fmt.Sprintf("%.3f", r.AvgMs), fmt.Sprintf("%.3f", r.MinMs),
			fmt.Sprintf("%.3f", r.MaxMs), fmt.Sprintf("%.2f", r.MPixPerS),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func printSummary(results []*BenchmarkResult) {
	fmt.Println("\n=== EXTRACTION BENCHMARK ===")
	fmt.Printf("%-12s %-18s %12s %10s %10s %10s %10s\n",
		"Image", "Selection", "OutPixels", "Avg(ms)", "Min(ms)", "Max(ms)", "MPix/s")
	fmt.Println(strings.Repeat("-", 88))

	for _, r := range results {
		fmt.Printf("%-12s %-18s %12d %10.3f %10.3f %10.3f %10.2f\n",
			r.Image, r.Selection, r.OutPixels, r.AvgMs, r.MinMs, r.MaxMs, r.MPixPerS)
	}
}

func main() {
	runs := flag.Int("runs", 20, "Runs per case")
	sizes := flag.String("sizes", "640x480,1280x960,2560x1920", "Comma-separated WxH image sizes")
	outputFile := flag.String("output", "evidence/extract_bench.csv", "Output CSV file")
	flag.Parse()

	var results []*BenchmarkResult

	for _, size := range strings.Split(*sizes, ",") {
		var w, h int
		if _, err := fmt.Sscanf(strings.TrimSpace(size), "%dx%d", &w, &h); err != nil || w <= 0 || h <= 0 {
			fmt.Fprintf(os.Stderr, "Bad size %q, expected WxH\n", size)
			os.Exit(1)
		}

		src := makeSource(w, h)
		for _, c := range makeCases(w, h) {
			r := runCase(src, c, *runs)
			results = append(results, r)
			fmt.Printf("%s %s: avg %.3fms over %d runs\n", r.Image, r.Selection, r.AvgMs, r.Runs)
		}
	}

	if err := os.MkdirAll(filepath.Dir(*outputFile), 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output directory: %v\n", err)
		os.Exit(1)
	}
	if err := writeCSV(results, *outputFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing CSV: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
	fmt.Printf("\nResults written to %s\n", *outputFile)
}
