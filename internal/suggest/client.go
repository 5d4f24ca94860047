// Package suggest asks a local vision model for a starting selection.
package suggest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/jmorganca/ollama/api"

	"github.com/cropdeck/cropdeck/internal/geom"
)

const defaultTimeout = 300 * time.Second

const subjectPrompt = `Locate the single most prominent subject in this image. ` +
	`Respond with only a JSON object of the form {"x":0.1,"y":0.2,"w":0.5,"h":0.4} ` +
	`where x,y is the top-left corner of the subject bounding box and w,h its size, ` +
	`all as fractions of the image width and height. No prose, no code fences.`

// Box is a bounding box in normalized image coordinates, 0..1.
type Box struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Validate checks that the box has area and stays inside the unit
// square, with a small tolerance for model rounding.
func (b Box) Validate() error {
	if b.W <= 0 || b.H <= 0 {
		return fmt.Errorf("box has no area: w=%v h=%v", b.W, b.H)
	}
	if b.X < 0 || b.Y < 0 || b.X+b.W > 1.001 || b.Y+b.H > 1.001 {
		return fmt.Errorf("box out of range: x=%v y=%v w=%v h=%v", b.X, b.Y, b.W, b.H)
	}
	return nil
}

// Rect scales the box to pixel coordinates for an image of the given size.
func (b Box) Rect(imgW, imgH int) geom.Rect {
	return geom.Rect{
		X:      b.X * float64(imgW),
		Y:      b.Y * float64(imgH),
		Width:  b.W * float64(imgW),
		Height: b.H * float64(imgH),
	}
}

// Client wraps the Ollama API client
type Client struct {
	client  *api.Client
	model   string
	timeout time.Duration
}

// New creates a client for the Ollama host, keeping only scheme and
// host from the URL. A zero timeout falls back to five minutes, enough
// for vision models running on CPU.
func New(host, model string, timeout time.Duration) (*Client, error) {
	parsed, err := url.Parse(host)
	if err != nil {
		return nil, fmt.Errorf("invalid ollama URL: %w", err)
	}
	base := &url.URL{
		Scheme: parsed.Scheme,
		Host:   parsed.Host,
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		client:  api.NewClient(base, http.DefaultClient),
		model:   model,
		timeout: timeout,
	}, nil
}

// SubjectBox sends the image to the model and returns the suggested
// subject bounding box in normalized coordinates.
func (c *Client) SubjectBox(ctx context.Context, img image.Image) (Box, error) {
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return Box{}, fmt.Errorf("failed to encode image: %w", err)
	}

	streamFalse := false
	req := &api.ChatRequest{
		Model: c.model,
		Messages: []api.Message{
			{
				Role:    "user",
				Content: subjectPrompt,
				Images:  []api.ImageData{api.ImageData(buf.Bytes())},
			},
		},
		Stream: &streamFalse,
	}

	var content string
	err := c.client.Chat(ctx, req, func(resp api.ChatResponse) error {
		content = resp.Message.Content
		return nil
	})
	if err != nil {
		return Box{}, fmt.Errorf("ollama chat error: %w", err)
	}
	if content == "" {
		return Box{}, fmt.Errorf("empty response from ollama")
	}

	return parseBox(content)
}

// parseBox extracts the bounding box JSON from a model response.
func parseBox(raw string) (Box, error) {
	raw = sanitizeModelJSON(raw)
	if !strings.HasPrefix(raw, "{") {
		return Box{}, fmt.Errorf("no JSON object in model response")
	}

	var box Box
	if err := json.Unmarshal([]byte(raw), &box); err != nil {
		return Box{}, fmt.Errorf("failed to parse model response: %w", err)
	}
	if err := box.Validate(); err != nil {
		return Box{}, err
	}
	return box, nil
}

// sanitizeModelJSON removes code fences, comments, and trailing commas
// from a JSON response and keeps only the outermost object.
func sanitizeModelJSON(raw string) string {
	raw = strings.TrimSpace(raw)

	if strings.HasPrefix(raw, "```") {
		if i := strings.Index(raw, "\n"); i >= 0 {
			raw = raw[i+1:]
		}
		if j := strings.LastIndex(raw, "```"); j >= 0 {
			raw = raw[:j]
		}
	}
	raw = strings.TrimSpace(raw)
	raw = strings.Trim(raw, "`")

	reBlock := regexp.MustCompile(`(?s)/\*.*?\*/`)
	raw = reBlock.ReplaceAllString(raw, "")
	reLine := regexp.MustCompile(`(?m)^\s*//.*$`)
	raw = reLine.ReplaceAllString(raw, "")

	reTrailing := regexp.MustCompile(`,(\s*[}\]])`)
	raw = reTrailing.ReplaceAllString(raw, "$1")

	if start := strings.Index(raw, "{"); start >= 0 {
		if end := strings.LastIndex(raw, "}"); end > start {
			raw = raw[start : end+1]
		}
	}
	return strings.TrimSpace(raw)
}
