// Package renderer flattens a badge design into print-ready bitmaps.
package renderer

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"github.com/sticktoon/badge-engine/pkg/badgeformat"
)

// AssetSource loads the bitmap behind an image or QR content reference.
type AssetSource interface {
	Resolve(ctx context.Context, content string) (image.Image, error)
}

// Renderer rasterizes designs at the fixed print resolution.
type Renderer struct {
	assets AssetSource
}

// New creates a renderer backed by the given asset source.
func New(assets AssetSource) *Renderer {
	return &Renderer{assets: assets}
}

// Render flattens the design into the print-resolution bitmap: a square
// canvas clipped to the inscribed badge circle, elements painted in
// ascending z-order. Image elements that fail to load are skipped so the
// export stays best-effort.
func (r *Renderer) Render(ctx context.Context, design *badgeformat.Design) (image.Image, error) {
	size := badgeformat.CanvasSize
	dc := gg.NewContext(size, size)

	// Everything outside the inscribed circle stays transparent in the
	// raster; the press trims against the same diameter.
	half := float64(size) / 2
	dc.DrawCircle(half, half, half)
	dc.Clip()

	// The transparent sentinel prints as white: paper has no "no
	// background" case distinct from white.
	dc.SetColor(badgeformat.BackgroundColor(design.Background))
	dc.DrawRectangle(0, 0, float64(size), float64(size))
	dc.Fill()

	for _, el := range badgeformat.SortedByZIndex(design.Elements) {
		if err := r.drawElement(ctx, dc, &el); err != nil {
			// Best-effort export: a broken asset must not abort the badge.
			log.Printf("Warning: skipping element %s: %v", el.ID, err)
		}
	}

	return dc.Image(), nil
}

// RenderDataURL renders the design and serializes it as a PNG data URL,
// the artifact handed to the cart collaborator.
func (r *Renderer) RenderDataURL(ctx context.Context, design *badgeformat.Design) (string, error) {
	img, err := r.Render(ctx, design)
	if err != nil {
		return "", err
	}

	return EncodeDataURL(img)
}

// EncodeDataURL serializes an image as a PNG data URL.
func EncodeDataURL(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("failed to encode PNG: %w", err)
	}

	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

func (r *Renderer) drawElement(ctx context.Context, dc *gg.Context, el *badgeformat.Element) error {
	switch el.Type {
	case badgeformat.TypeText:
		return r.drawText(dc, el)
	case badgeformat.TypeImage, badgeformat.TypeQR:
		return r.drawBitmap(ctx, dc, el)
	default:
		return fmt.Errorf("unsupported element type: %s", el.Type)
	}
}

func (r *Renderer) drawText(dc *gg.Context, el *badgeformat.Element) error {
	dc.Push()
	defer dc.Pop()

	dc.RotateAbout(gg.Radians(el.Rotation), el.CenterX(), el.CenterY())

	// Font size tracks the element box; bold black, centered both ways.
	fontSize := 0.7 * el.Height
	if path := boldFontPath(); path != "" {
		if err := dc.LoadFontFace(path, fontSize); err != nil {
			log.Printf("Warning: failed to load font %s: %v", path, err)
		}
	}

	dc.SetColor(color.Black)
	dc.DrawStringAnchored(el.Content, el.CenterX(), el.CenterY(), 0.5, 0.5)
	return nil
}

func (r *Renderer) drawBitmap(ctx context.Context, dc *gg.Context, el *badgeformat.Element) error {
	img, err := r.assets.Resolve(ctx, el.Content)
	if err != nil {
		return err
	}

	// Stretch to exactly the element box. Aspect preservation, where the
	// user wanted it, is already baked into the stored width/height.
	stretched := imaging.Resize(img, int(el.Width), int(el.Height), imaging.Lanczos)

	dc.Push()
	defer dc.Pop()

	dc.RotateAbout(gg.Radians(el.Rotation), el.CenterX(), el.CenterY())
	dc.DrawImage(stretched, int(el.X), int(el.Y))
	return nil
}
