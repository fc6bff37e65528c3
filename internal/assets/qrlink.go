// Package assets resolves element content references to pixel data and
// talks to the external image collaborators (QR rendering service, AI
// mockup generator).
package assets

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/sticktoon/badge-engine/pkg/badgeformat"
)

// QRServiceBase is the external QR rendering service endpoint.
const QRServiceBase = "https://api.qrserver.com/v1/create-qr-code/"

// QRParams describes one QR image request against the external service.
type QRParams struct {
	Data       string
	Foreground string // hex color
	Background string // hex color or the transparent sentinel
	Size       int    // pixels, square
	Margin     int    // quiet-zone modules
}

// QRImageURL builds the QR service URL for a destination. Colors are
// encoded as decimal R-G-B triplets; the transparent background sentinel
// encodes as white.
func QRImageURL(p QRParams) string {
	if p.Foreground == "" {
		p.Foreground = "#000000"
	}
	if p.Size == 0 {
		p.Size = 200
	}

	q := url.Values{}
	q.Set("data", p.Data)
	q.Set("color", badgeformat.DecimalTriplet(p.Foreground))
	q.Set("bgcolor", badgeformat.DecimalTriplet(p.Background))
	q.Set("size", fmt.Sprintf("%dx%d", p.Size, p.Size))
	q.Set("margin", strconv.Itoa(p.Margin))

	return QRServiceBase + "?" + q.Encode()
}

// ParseQRImageURL recognizes a QR service URL and recovers its request
// parameters, so QR elements can be rasterized locally and
// deterministically instead of round-tripping through the network.
func ParseQRImageURL(raw string) (QRParams, bool) {
	if !strings.HasPrefix(raw, QRServiceBase) {
		return QRParams{}, false
	}

	u, err := url.Parse(raw)
	if err != nil {
		return QRParams{}, false
	}
	q := u.Query()

	p := QRParams{
		Data:       q.Get("data"),
		Foreground: tripletToHex(q.Get("color"), "#000000"),
		Background: tripletToHex(q.Get("bgcolor"), "#FFFFFF"),
		Size:       200,
	}
	if sz := q.Get("size"); sz != "" {
		if w, _, ok := strings.Cut(sz, "x"); ok {
			if n, err := strconv.Atoi(w); err == nil && n > 0 {
				p.Size = n
			}
		}
	}
	if m := q.Get("margin"); m != "" {
		if n, err := strconv.Atoi(m); err == nil {
			p.Margin = n
		}
	}
	if p.Data == "" {
		return QRParams{}, false
	}
	return p, true
}

func tripletToHex(triplet, fallback string) string {
	parts := strings.Split(triplet, "-")
	if len(parts) != 3 {
		return fallback
	}
	var rgb [3]int
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 || n > 255 {
			return fallback
		}
		rgb[i] = n
	}
	return fmt.Sprintf("#%02X%02X%02X", rgb[0], rgb[1], rgb[2])
}
