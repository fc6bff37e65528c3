package renderer

import (
	"context"
	"image"
	"math"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"github.com/sticktoon/badge-engine/pkg/badgeformat"
)

// RenderPreview produces the on-screen rendition: the print raster scaled
// to display resolution times the session zoom, with the dashed
// printable-boundary circle overlaid. Zoom is a pure view transform; the
// underlying element geometry is untouched.
func (r *Renderer) RenderPreview(ctx context.Context, design *badgeformat.Design, zoom float64) (image.Image, error) {
	printImg, err := r.Render(ctx, design)
	if err != nil {
		return nil, err
	}

	size := int(math.Round(float64(badgeformat.DisplayCanvasSize) * zoom))
	if size < 1 {
		size = 1
	}
	scaled := imaging.Resize(printImg, size, size, imaging.Lanczos)

	dc := gg.NewContext(size, size)
	dc.DrawImage(scaled, 0, 0)

	// Dashed circle marking the printable boundary. Purely a visual cue:
	// nothing stops elements from sitting outside it.
	half := float64(size) / 2
	dc.SetRGBA(0.4, 0.4, 0.4, 0.9)
	dc.SetLineWidth(1)
	dc.SetDash(4, 4)
	dc.DrawCircle(half, half, half-1)
	dc.Stroke()

	return dc.Image(), nil
}
