// Package main provides sample image generation for the crop editor.
// Generates deterministic test images with configurable parameters.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
)

// SceneParams defines parameters for scene generation.
type SceneParams struct {
	Seed   int64
	Width  int
	Height int
	Shapes int
	Label  string
}

// drawScene renders one deterministic scene: a gradient backdrop,
// scattered shapes, and a prominent subject ellipse off center.
func drawScene(params SceneParams) (*gg.Context, error) {
	rng := rand.New(rand.NewSource(params.Seed))
	w := float64(params.Width)
	h := float64(params.Height)

	dc := gg.NewContext(params.Width, params.Height)

	// Background gradient
	grad := gg.NewLinearGradient(0, 0, w, h)
	grad.AddColorStop(0, gradColor(rng))
	grad.AddColorStop(1, gradColor(rng))
	dc.SetFillStyle(grad)
	dc.DrawRectangle(0, 0, w, h)
	dc.Fill()

	// Scattered shapes
	for i := 0; i < params.Shapes; i++ {
		x := rng.Float64() * w
		y := rng.Float64() * h
		size := 10 + rng.Float64()*60
		dc.SetRGBA(rng.Float64(), rng.Float64(), rng.Float64(), 0.5+rng.Float64()*0.4)

		switch rng.Intn(3) {
		case 0:
			dc.DrawCircle(x, y, size/2)
			dc.Fill()
		case 1:
			dc.DrawRectangle(x, y, size*1.6, size)
			dc.Fill()
		default:
			dc.SetLineWidth(1 + rng.Float64()*4)
			dc.DrawLine(x, y, x+(rng.Float64()-0.5)*200, y+(rng.Float64()-0.5)*200)
			dc.Stroke()
		}
	}

	// Subject ellipse, offset from center so fit and suggest have
	// something to find
	cx := w * (0.35 + rng.Float64()*0.3)
	cy := h * (0.35 + rng.Float64()*0.3)
	dc.SetRGBA(0.95, 0.75, 0.25, 0.95)
	dc.DrawEllipse(cx, cy, w*0.12, h*0.15)
	dc.Fill()
	dc.SetRGBA(0.15, 0.15, 0.18, 1)
	dc.SetLineWidth(3)
	dc.DrawEllipse(cx, cy, w*0.12, h*0.15)
	dc.Stroke()

	// Corner label
	f, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	face := truetype.NewFace(f, &truetype.Options{
		Size:    14,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	dc.SetFontFace(face)
	dc.SetRGB(0.9, 0.9, 0.92)
	dc.DrawString(params.Label, 12, h-12)

	return dc, nil
}

func gradColor(rng *rand.Rand) color.RGBA {
	return color.RGBA{
		R: uint8(25 + rng.Intn(75)),
		G: uint8(25 + rng.Intn(75)),
		B: uint8(40 + rng.Intn(90)),
		A: 255,
	}
}

func main() {
	seed := flag.Int64("seed", 42, "Random seed for deterministic generation")
	width := flag.Int("width", 1280, "Image width in pixels")
	height := flag.Int("height", 960, "Image height in pixels")
	count := flag.Int("count", 3, "Number of images to generate")
	shapes := flag.Int("shapes", 40, "Number of scattered shapes per image")
	previews := flag.Bool("previews", false, "Also write half-size previews")
	outputDir := flag.String("output", "testdata/samples", "Output directory")
	flag.Parse()

	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output directory: %v\n", err)
		os.Exit(1)
	}

	for i := 0; i < *count; i++ {
		name := fmt.Sprintf("sample_%d_%dx%d", *seed+int64(i), *width, *height)
		params := SceneParams{
			Seed:   *seed + int64(i),
			Width:  *width,
			Height: *height,
			Shapes: *shapes,
			Label:  name,
		}

		dc, err := drawScene(params)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error rendering %s: %v\n", name, err)
			os.Exit(1)
		}

		path := filepath.Join(*outputDir, name+".png")
		if err := dc.SavePNG(path); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", path, err)
			os.Exit(1)
		}
		fmt.Printf("Generated: %s (%dx%d, %d shapes)\n", path, *width, *height, *shapes)

		if *previews {
			preview := imaging.Resize(dc.Image(), *width/2, 0, imaging.Lanczos)
			previewPath := filepath.Join(*outputDir, name+"_preview.jpg")
			if err := imaging.Save(preview, previewPath, imaging.JPEGQuality(85)); err != nil {
				fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", previewPath, err)
				os.Exit(1)
			}
			fmt.Printf("Generated: %s\n", previewPath)
		}
	}
}
