package assets

import (
	"bytes"
	"context"
	"encoding/base64"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/fogleman/gg"
	"github.com/sticktoon/badge-engine/pkg/badgeformat"
)

func TestQRImageURL_Params(t *testing.T) {
	u := QRImageURL(QRParams{
		Data:       "https://sticktoon.example/p/42",
		Foreground: "#000000",
		Background: "#FFFFFF",
		Size:       200,
		Margin:     2,
	})

	if !strings.HasPrefix(u, QRServiceBase) {
		t.Errorf("Expected service base prefix, got %s", u)
	}
	for _, want := range []string{"color=0-0-0", "bgcolor=255-255-255", "size=200x200", "margin=2"} {
		if !strings.Contains(u, want) {
			t.Errorf("Expected URL to contain %q, got %s", want, u)
		}
	}
}

func TestQRImageURL_TransparentMatchesWhite(t *testing.T) {
	white := QRImageURL(QRParams{Data: "x", Background: "#FFFFFF"})
	transparent := QRImageURL(QRParams{Data: "x", Background: badgeformat.BackgroundTransparent})

	if white != transparent {
		t.Errorf("Expected identical URLs for white and transparent backgrounds:\n%s\n%s", white, transparent)
	}
}

func TestParseQRImageURL_RoundTrip(t *testing.T) {
	original := QRParams{
		Data:       "https://example.com",
		Foreground: "#FF0000",
		Background: "#FFFFFF",
		Size:       300,
		Margin:     1,
	}

	parsed, ok := ParseQRImageURL(QRImageURL(original))
	if !ok {
		t.Fatal("Expected QR service URL to be recognized")
	}

	if parsed.Data != original.Data {
		t.Errorf("Expected data %q, got %q", original.Data, parsed.Data)
	}
	if parsed.Foreground != "#FF0000" || parsed.Background != "#FFFFFF" {
		t.Errorf("Colors did not survive: %s / %s", parsed.Foreground, parsed.Background)
	}
	if parsed.Size != 300 || parsed.Margin != 1 {
		t.Errorf("Expected size 300 margin 1, got %d / %d", parsed.Size, parsed.Margin)
	}
}

func TestParseQRImageURL_Foreign(t *testing.T) {
	if _, ok := ParseQRImageURL("https://example.com/image.png"); ok {
		t.Error("Expected foreign URL to be rejected")
	}
}

func TestResolve_QRServiceURL(t *testing.T) {
	r := NewResolver()

	img, err := r.Resolve(context.Background(), QRImageURL(QRParams{Data: "hello", Size: 200}))
	if err != nil {
		t.Fatalf("Failed to resolve QR URL: %v", err)
	}

	if img.Bounds().Dx() != 200 || img.Bounds().Dy() != 200 {
		t.Errorf("Expected 200x200 QR image, got %dx%d", img.Bounds().Dx(), img.Bounds().Dy())
	}
}

func TestResolve_DataURL(t *testing.T) {
	// Build a small known PNG
	ctx := gg.NewContext(8, 8)
	ctx.SetColor(color.RGBA{R: 255, A: 255})
	ctx.Clear()

	var buf bytes.Buffer
	if err := png.Encode(&buf, ctx.Image()); err != nil {
		t.Fatalf("Failed to encode fixture: %v", err)
	}
	dataURL := "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())

	r := NewResolver()
	img, err := r.Resolve(context.Background(), dataURL)
	if err != nil {
		t.Fatalf("Failed to resolve data URL: %v", err)
	}
	if img.Bounds().Dx() != 8 {
		t.Errorf("Expected 8px image, got %d", img.Bounds().Dx())
	}
}

func TestResolve_Empty(t *testing.T) {
	r := NewResolver()
	if _, err := r.Resolve(context.Background(), ""); err == nil {
		t.Error("Expected error for empty content")
	}
}

func TestResolve_MissingFile(t *testing.T) {
	r := NewResolver()
	if _, err := r.Resolve(context.Background(), "/tmp/definitely_missing.png"); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestGeneratorFunc(t *testing.T) {
	g := GeneratorFunc(func(ctx context.Context, prompt string) (string, error) {
		return "https://cdn.example/" + prompt + ".png", nil
	})

	url, err := g.Generate(context.Background(), "dragon")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if url != "https://cdn.example/dragon.png" {
		t.Errorf("Unexpected URL: %s", url)
	}
}
