// Package imgio loads source rasters from disk or over HTTP.
package imgio

import (
	"context"
	"fmt"
	"image"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"

	// WebP sources decode through the registered format as well.
	_ "golang.org/x/image/webp"
)

// Source is a decoded raster plus its display name.
type Source struct {
	Image  *image.NRGBA
	Name   string
	Width  int
	Height int
}

// Load resolves the argument as a URL when it carries an http scheme,
// and as a file path otherwise.
func Load(ctx context.Context, pathOrURL string) (*Source, error) {
	if strings.HasPrefix(pathOrURL, "http://") || strings.HasPrefix(pathOrURL, "https://") {
		return LoadURL(ctx, pathOrURL)
	}
	return LoadFile(pathOrURL)
}

// LoadFile decodes the image at the given path. WebP files that the
// registered decoders reject are retried with the webp package.
func LoadFile(fsPath string) (*Source, error) {
	img, err := imaging.Open(fsPath)
	if err != nil {
		f, ferr := os.Open(fsPath)
		if ferr != nil {
			return nil, fmt.Errorf("open image: %w", ferr)
		}
		defer f.Close()

		wimg, werr := webp.Decode(f)
		if werr != nil {
			return nil, fmt.Errorf("decode image %s: %w", fsPath, err)
		}
		img = wimg
	}
	return newSource(img, filepath.Base(fsPath)), nil
}

// LoadURL fetches and decodes an image over HTTP.
func LoadURL(ctx context.Context, rawURL string) (*Source, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch image: unexpected status %s", resp.Status)
	}

	img, _, err := image.Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("decode image from %s: %w", rawURL, err)
	}

	name := path.Base(req.URL.Path)
	if name == "." || name == "/" || name == "" {
		name = "download"
	}
	return newSource(img, name), nil
}

// newSource clones the decoded image into a zero-origin NRGBA raster.
func newSource(img image.Image, name string) *Source {
	n := imaging.Clone(img)
	b := n.Bounds()
	return &Source{Image: n, Name: name, Width: b.Dx(), Height: b.Dy()}
}
