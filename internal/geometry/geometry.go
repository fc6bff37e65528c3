// Package geometry provides the pure transform math for badge elements.
// All functions return new values and never mutate their inputs.
package geometry

import (
	"math"

	"github.com/sticktoon/badge-engine/pkg/badgeformat"
)

// Drag moves an element by a pointer delta relative to its geometry at
// interaction start. No clamping: elements may leave the visible circle
// and are clipped at render time only.
func Drag(start badgeformat.Element, dx, dy float64) badgeformat.Element {
	start.X += dx
	start.Y += dy
	return start
}

// Resize grows or shrinks an element by a pointer delta relative to its
// geometry at interaction start. Width and height move independently,
// each floored at the minimum element size.
func Resize(start badgeformat.Element, dx, dy float64) badgeformat.Element {
	start.Width = math.Max(badgeformat.MinElementSize, start.Width+dx)
	start.Height = math.Max(badgeformat.MinElementSize, start.Height+dy)
	return start
}

// ScaleStep applies a discrete uniform-scale step: width changes by delta,
// height follows to preserve the aspect ratio, and the element shifts by
// half the size change on each axis so the scale appears centered.
func ScaleStep(el badgeformat.Element, delta float64) badgeformat.Element {
	newWidth := math.Max(badgeformat.MinElementSize, el.Width+delta)
	newHeight := newWidth / (el.Width / el.Height)

	el.X -= (newWidth - el.Width) / 2
	el.Y -= (newHeight - el.Height) / 2
	el.Width = newWidth
	el.Height = newHeight
	return el
}

// RotationFromPointer computes the rotation, in degrees, of an element
// whose center is at (centerX, centerY) while the pointer holds the
// rotate handle at (pointerX, pointerY). The handle sits above the
// element's center, so the raw atan2 angle is offset by 90 degrees.
func RotationFromPointer(pointerX, pointerY, centerX, centerY float64) float64 {
	angle := math.Atan2(pointerY-centerY, pointerX-centerX)
	return angle*180/math.Pi + 90
}

// CenterHorizontal centers an element on the canvas X axis.
func CenterHorizontal(el badgeformat.Element) badgeformat.Element {
	el.X = (float64(badgeformat.CanvasSize) - el.Width) / 2
	return el
}

// CenterVertical centers an element on the canvas Y axis.
func CenterVertical(el badgeformat.Element) badgeformat.Element {
	el.Y = (float64(badgeformat.CanvasSize) - el.Height) / 2
	return el
}

// BringUp swaps the z-index of the element with the element immediately
// above it in z-order. It is a transposition: no other element is
// renumbered. Returns a new slice; if the element is missing or already
// on top, the input is returned unchanged.
func BringUp(elements []badgeformat.Element, id string) []badgeformat.Element {
	return swapZ(elements, id, true)
}

// SendDown swaps the z-index of the element with the element immediately
// below it in z-order.
func SendDown(elements []badgeformat.Element, id string) []badgeformat.Element {
	return swapZ(elements, id, false)
}

func swapZ(elements []badgeformat.Element, id string, up bool) []badgeformat.Element {
	self := -1
	for i, e := range elements {
		if e.ID == id {
			self = i
			break
		}
	}
	if self == -1 {
		return elements
	}

	// Find the nearest neighbor in the requested direction.
	neighbor := -1
	for i, e := range elements {
		if i == self {
			continue
		}
		if up {
			if e.ZIndex > elements[self].ZIndex &&
				(neighbor == -1 || e.ZIndex < elements[neighbor].ZIndex) {
				neighbor = i
			}
		} else {
			if e.ZIndex < elements[self].ZIndex &&
				(neighbor == -1 || e.ZIndex > elements[neighbor].ZIndex) {
				neighbor = i
			}
		}
	}
	if neighbor == -1 {
		return elements
	}

	out := badgeformat.CloneElements(elements)
	out[self].ZIndex, out[neighbor].ZIndex = out[neighbor].ZIndex, out[self].ZIndex
	return out
}

// ClampZoom clamps a zoom factor to the allowed preview range.
func ClampZoom(zoom float64) float64 {
	if zoom < badgeformat.MinZoom {
		return badgeformat.MinZoom
	}
	if zoom > badgeformat.MaxZoom {
		return badgeformat.MaxZoom
	}
	return zoom
}

// ZoomStep applies one wheel tick to a zoom factor and clamps the result.
func ZoomStep(zoom float64, in bool) float64 {
	if in {
		return ClampZoom(zoom * badgeformat.ZoomInStep)
	}
	return ClampZoom(zoom * badgeformat.ZoomOutStep)
}
