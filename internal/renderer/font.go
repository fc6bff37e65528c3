package renderer

import "os"

// Bold faces preferred for badge text, in lookup order.
var boldFontPaths = []string{
	"/usr/share/fonts/truetype/dejavu/DejaVuSans-Bold.ttf",
	"/usr/share/fonts/truetype/liberation/LiberationSans-Bold.ttf",
	"/System/Library/Fonts/Supplemental/Arial Bold.ttf",
	"/System/Library/Fonts/Helvetica.ttc",
	"C:\\Windows\\Fonts\\arialbd.ttf",
}

// boldFontPath returns the first available bold system font, or "" when
// none is found (gg falls back to its built-in face).
func boldFontPath() string {
	for _, path := range boldFontPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
