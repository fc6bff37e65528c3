package badgeformat

import "testing"

func TestParseHexColor(t *testing.T) {
	c, err := ParseHexColor("#FF8000")
	if err != nil {
		t.Fatalf("Failed to parse color: %v", err)
	}
	if c.R != 255 || c.G != 128 || c.B != 0 || c.A != 255 {
		t.Errorf("Expected 255/128/0/255, got %d/%d/%d/%d", c.R, c.G, c.B, c.A)
	}
}

func TestParseHexColor_ShortForm(t *testing.T) {
	c, err := ParseHexColor("#F80")
	if err != nil {
		t.Fatalf("Failed to parse short color: %v", err)
	}
	if c.R != 255 || c.G != 136 || c.B != 0 {
		t.Errorf("Expected 255/136/0, got %d/%d/%d", c.R, c.G, c.B)
	}
}

func TestParseHexColor_Invalid(t *testing.T) {
	for _, bad := range []string{"FF8000", "#FF80", "#GGGGGG", ""} {
		if _, err := ParseHexColor(bad); err == nil {
			t.Errorf("Expected error for %q", bad)
		}
	}
}

func TestBackgroundColor_TransparentIsWhite(t *testing.T) {
	c := BackgroundColor(BackgroundTransparent)
	if c.R != 255 || c.G != 255 || c.B != 255 {
		t.Errorf("Expected white, got %d/%d/%d", c.R, c.G, c.B)
	}
}

func TestDecimalTriplet(t *testing.T) {
	if got := DecimalTriplet("#000000"); got != "0-0-0" {
		t.Errorf("Expected '0-0-0', got '%s'", got)
	}

	// White and the transparent sentinel must encode identically
	white := DecimalTriplet("#FFFFFF")
	transparent := DecimalTriplet(BackgroundTransparent)
	if white != "255-255-255" {
		t.Errorf("Expected '255-255-255', got '%s'", white)
	}
	if white != transparent {
		t.Errorf("Expected transparent to match white, got '%s' vs '%s'", transparent, white)
	}
}
