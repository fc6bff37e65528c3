// Package badgeformat defines the types for the .badge design file format
package badgeformat

import (
	"math"
	"sort"
)

// Physical print constants. The badge is a 58mm circle with a 70mm outer
// bleed, printed at 300 DPI and previewed at 96 DPI. The pixel sizes below
// are derived from those measurements and must not drift: element
// coordinates are stored in print-canvas pixels and the print shop trims
// against the same numbers.
const (
	BadgeDiameterMM = 58.0
	OuterDiameterMM = 70.0
	PrintDPI        = 300.0
	DisplayDPI      = 96.0
	MMPerInch       = 25.4
)

// Derived canvas sizes in pixels.
var (
	CanvasSize        = int(math.Round(BadgeDiameterMM * PrintDPI / MMPerInch)) // 685
	OuterSize         = int(math.Round(OuterDiameterMM * PrintDPI / MMPerInch)) // 827
	DisplayCanvasSize = int(math.Floor(BadgeDiameterMM * DisplayDPI / MMPerInch)) // 219
	DisplayOuterSize  = int(math.Floor(OuterDiameterMM * DisplayDPI / MMPerInch)) // 264
)

// Editing limits.
const (
	MinElementSize = 20.0
	MinZoom        = 0.5
	MaxZoom        = 3.0
	ZoomInStep     = 1.1
	ZoomOutStep    = 0.9
)

// BackgroundTransparent is the sentinel background value. The export format
// has no alpha-masked print equivalent, so it rasterizes as white.
const BackgroundTransparent = "transparent"

// Element types.
const (
	TypeText  = "text"
	TypeImage = "image"
	TypeQR    = "qr"
)

// Design represents the root structure of a .badge file
type Design struct {
	Version     string     `json:"version"`
	Name        string     `json:"name,omitempty"`
	Description string     `json:"description,omitempty"`
	CreatedWith string     `json:"created_with,omitempty"`
	Background  string     `json:"background,omitempty"` // hex color or "transparent"
	Variables   []Variable `json:"variables,omitempty"`
	Elements    []Element  `json:"elements"`
}

// Element is one placed layer on the badge canvas.
type Element struct {
	ID       string  `json:"id"`
	Type     string  `json:"type"` // text, image, qr
	Content  string  `json:"content"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Rotation float64 `json:"rotation"` // degrees
	ZIndex   int     `json:"z_index"`
}

// Variable is a template placeholder usable inside text element content,
// written as {{name}}. Batch runs substitute one value set per badge.
type Variable struct {
	Name         string `json:"name"`
	DefaultValue string `json:"default_value,omitempty"`
	Description  string `json:"description,omitempty"`
}

// CenterX returns the element's horizontal center in canvas space.
func (e *Element) CenterX() float64 { return e.X + e.Width/2 }

// CenterY returns the element's vertical center in canvas space.
func (e *Element) CenterY() float64 { return e.Y + e.Height/2 }

// CloneElements deep-copies an element slice. History snapshots and
// copy-out accessors rely on this to avoid shared mutable references.
func CloneElements(elements []Element) []Element {
	if elements == nil {
		return nil
	}
	out := make([]Element, len(elements))
	copy(out, elements)
	return out
}

// SortedByZIndex returns a new slice ordered for rendering (ascending
// z-index, higher values draw later). Insertion order is irrelevant.
func SortedByZIndex(elements []Element) []Element {
	out := CloneElements(elements)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ZIndex < out[j].ZIndex
	})
	return out
}

// MaxZIndex returns the highest z-index in the set, or 0 if empty.
func MaxZIndex(elements []Element) int {
	max := 0
	for _, e := range elements {
		if e.ZIndex > max {
			max = e.ZIndex
		}
	}
	return max
}
