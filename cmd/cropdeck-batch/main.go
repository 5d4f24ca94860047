// Command cropdeck-batch replays a crop manifest without the GUI.
// It re-extracts every recorded selection from the source images and
// writes the crop files to an output directory.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/cropdeck/cropdeck/internal/batch"
	"github.com/cropdeck/cropdeck/internal/export"
)

func main() {
	manifest := flag.String("manifest", "", "Path to a crops.json manifest (required)")
	images := flag.String("images", "", "Directory holding the source images (default: manifest directory)")
	out := flag.String("out", "./crops", "Output directory for crop files")
	format := flag.String("format", "png", "Output format: png, jpg or webp")
	quality := flag.Int("quality", 90, "JPEG/WebP quality (1-100)")
	lossless := flag.Bool("lossless", false, "Lossless WebP encoding")
	flag.Parse()

	if *manifest == "" {
		fmt.Fprintln(os.Stderr, "Usage: cropdeck-batch -manifest crops.json [-images dir] [-out dir]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	runner := &batch.Runner{
		ImageDir: *images,
		OutDir:   *out,
		Options: export.Options{
			Format:   *format,
			Quality:  *quality,
			Lossless: *lossless,
		},
	}

	start := time.Now()
	n, err := runner.Run(context.Background(), *manifest)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %d crops to %s in %v\n", n, *out, time.Since(start))
}
