package assets

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/skip2/go-qrcode"
	"github.com/sticktoon/badge-engine/pkg/badgeformat"
)

// Resolver loads the bitmap for an image or QR element's content
// reference: a data URL, a local file path, an HTTP URL, or a QR-service
// URL (which is rendered locally so exports stay deterministic and
// offline-safe).
type Resolver struct {
	client *http.Client
}

// NewResolver creates a resolver with a sane network timeout.
func NewResolver() *Resolver {
	return &Resolver{
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

// Resolve loads the image behind a content reference.
func (r *Resolver) Resolve(ctx context.Context, content string) (image.Image, error) {
	switch {
	case content == "":
		return nil, fmt.Errorf("empty content reference")
	case strings.HasPrefix(content, "data:"):
		return decodeDataURL(content)
	case strings.HasPrefix(content, QRServiceBase):
		return renderQRLocally(content)
	case strings.HasPrefix(content, "http://"), strings.HasPrefix(content, "https://"):
		return r.fetch(ctx, content)
	default:
		return loadFile(strings.TrimPrefix(content, "file://"))
	}
}

func decodeDataURL(dataURL string) (image.Image, error) {
	_, encoded, found := strings.Cut(dataURL, ",")
	if !found {
		return nil, fmt.Errorf("malformed data URL")
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("failed to decode data URL: %w", err)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image data: %w", err)
	}
	return img, nil
}

func renderQRLocally(serviceURL string) (image.Image, error) {
	params, ok := ParseQRImageURL(serviceURL)
	if !ok {
		return nil, fmt.Errorf("unrecognized QR service URL")
	}

	qr, err := qrcode.New(params.Data, qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR code: %w", err)
	}

	qr.ForegroundColor = badgeformat.BackgroundColor(params.Foreground)
	qr.BackgroundColor = badgeformat.BackgroundColor(params.Background)
	if params.Margin == 0 {
		qr.DisableBorder = true
	}

	return qr.Image(params.Size), nil
}

func (r *Resolver) fetch(ctx context.Context, rawURL string) (image.Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("image fetch returned status %d", resp.StatusCode)
	}

	img, _, err := image.Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to decode fetched image: %w", err)
	}
	return img, nil
}

func loadFile(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image file: %w", err)
	}
	return img, nil
}
