package renderer

import (
	"context"
	"image"
	"image/color"
	"log"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
	"github.com/fogleman/gg"
	"github.com/sticktoon/badge-engine/pkg/badgeformat"
)

// ProofSheet renders the print-shop proof: the badge raster on the outer
// bleed sheet with the design name and a Code 128 job reference below,
// so a finished run can be matched back to its order.
func (r *Renderer) ProofSheet(ctx context.Context, design *badgeformat.Design, jobRef string) (image.Image, error) {
	badgeImg, err := r.Render(ctx, design)
	if err != nil {
		return nil, err
	}

	sheetWidth := badgeformat.OuterSize
	footerHeight := 180
	sheetHeight := badgeformat.OuterSize + footerHeight

	dc := gg.NewContext(sheetWidth, sheetHeight)
	dc.SetColor(color.White)
	dc.Clear()

	// Badge centered on the bleed area
	offset := (badgeformat.OuterSize - badgeformat.CanvasSize) / 2
	dc.DrawImage(badgeImg, offset, offset)

	// Trim line at the badge diameter
	half := float64(badgeformat.OuterSize) / 2
	dc.SetRGB(0.6, 0.6, 0.6)
	dc.SetLineWidth(1)
	dc.SetDash(6, 4)
	dc.DrawCircle(half, half, float64(badgeformat.CanvasSize)/2)
	dc.Stroke()
	dc.SetDash()

	textY := float64(badgeformat.OuterSize) + 30
	if path := boldFontPath(); path != "" {
		if err := dc.LoadFontFace(path, 24); err != nil {
			log.Printf("Warning: failed to load font %s: %v", path, err)
		}
	}
	dc.SetColor(color.Black)
	name := design.Name
	if name == "" {
		name = "Untitled badge"
	}
	dc.DrawStringAnchored(name, float64(sheetWidth)/2, textY, 0.5, 0.5)

	if jobRef != "" {
		code, err := code128.Encode(jobRef)
		if err != nil {
			return nil, err
		}

		scaled, err := barcode.Scale(code, sheetWidth-200, 80)
		if err != nil {
			return nil, err
		}

		x := (sheetWidth - scaled.Bounds().Dx()) / 2
		dc.DrawImage(scaled, x, int(textY)+30)
	}

	return dc.Image(), nil
}
