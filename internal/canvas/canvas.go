// Package canvas owns the canonical element set of one badge editing
// session: the layered elements, the selection, and the background.
//
// The store never checkpoints itself. Callers that want a mutation to be
// undoable push a history checkpoint first.
package canvas

import (
	"strings"

	"github.com/google/uuid"
	"github.com/sticktoon/badge-engine/internal/geometry"
	"github.com/sticktoon/badge-engine/pkg/badgeformat"
)

const defaultBackground = "#FFFFFF"

// Canvas is the element store for one editing session. It is not
// goroutine safe; the owning session serializes access.
type Canvas struct {
	elements   []badgeformat.Element
	selectedID string
	background string
	history    History
}

// New creates an empty canvas with a white background.
func New() *Canvas {
	return &Canvas{background: defaultBackground}
}

// FromDesign creates a canvas pre-populated from a saved design.
func FromDesign(design *badgeformat.Design) *Canvas {
	c := New()
	if design.Background != "" {
		c.background = design.Background
	}
	c.elements = badgeformat.CloneElements(design.Elements)
	return c
}

// Elements returns a copy of the element set in insertion order.
func (c *Canvas) Elements() []badgeformat.Element {
	return badgeformat.CloneElements(c.elements)
}

// Len returns the number of live elements. The layers tab shows this
// count and it must track every add and remove immediately.
func (c *Canvas) Len() int {
	return len(c.elements)
}

// Element returns the element with the given id.
func (c *Canvas) Element(id string) (badgeformat.Element, bool) {
	for _, e := range c.elements {
		if e.ID == id {
			return e, true
		}
	}
	return badgeformat.Element{}, false
}

// SelectedID returns the id of the selected element, or "".
func (c *Canvas) SelectedID() string {
	return c.selectedID
}

// Selected returns the selected element.
func (c *Canvas) Selected() (badgeformat.Element, bool) {
	if c.selectedID == "" {
		return badgeformat.Element{}, false
	}
	return c.Element(c.selectedID)
}

// Select sets the selection. An empty id deselects; an unknown id is a
// silent no-op.
func (c *Canvas) Select(id string) {
	if id == "" {
		c.selectedID = ""
		return
	}
	if _, ok := c.Element(id); ok {
		c.selectedID = id
	}
}

// Background returns the badge background value.
func (c *Canvas) Background() string {
	return c.background
}

// SetBackground sets the badge background (hex color or the transparent
// sentinel).
func (c *Canvas) SetBackground(value string) {
	c.background = value
}

// AddText places a text element at the default centered position and
// selects it. Empty or whitespace-only content is rejected silently.
func (c *Canvas) AddText(content string) (badgeformat.Element, bool) {
	if strings.TrimSpace(content) == "" {
		return badgeformat.Element{}, false
	}

	half := float64(badgeformat.CanvasSize) / 2
	el := badgeformat.Element{
		ID:      uuid.New().String(),
		Type:    badgeformat.TypeText,
		Content: content,
		X:       half - 50,
		Y:       half - 20,
		Width:   100,
		Height:  40,
		ZIndex:  badgeformat.MaxZIndex(c.elements) + 1,
	}
	c.elements = append(c.elements, el)
	c.selectedID = el.ID
	return el, true
}

// AddImage places an image element covering the whole badge (full-bleed
// default) and selects it.
func (c *Canvas) AddImage(ref string) (badgeformat.Element, bool) {
	if ref == "" {
		return badgeformat.Element{}, false
	}

	el := badgeformat.Element{
		ID:      uuid.New().String(),
		Type:    badgeformat.TypeImage,
		Content: ref,
		X:       0,
		Y:       0,
		Width:   float64(badgeformat.CanvasSize),
		Height:  float64(badgeformat.CanvasSize),
		ZIndex:  badgeformat.MaxZIndex(c.elements) + 1,
	}
	c.elements = append(c.elements, el)
	c.selectedID = el.ID
	return el, true
}

// AddQR places a QR element at the default centered 200x200 box and
// selects it. The content is the already-built QR image URL.
func (c *Canvas) AddQR(imageURL string) (badgeformat.Element, bool) {
	if imageURL == "" {
		return badgeformat.Element{}, false
	}

	el := badgeformat.Element{
		ID:      uuid.New().String(),
		Type:    badgeformat.TypeQR,
		Content: imageURL,
		X:       (float64(badgeformat.CanvasSize) - 200) / 2,
		Y:       (float64(badgeformat.CanvasSize) - 200) / 2,
		Width:   200,
		Height:  200,
		ZIndex:  badgeformat.MaxZIndex(c.elements) + 1,
	}
	c.elements = append(c.elements, el)
	c.selectedID = el.ID
	return el, true
}

// Remove deletes an element by id. Removing the selected element clears
// the selection.
func (c *Canvas) Remove(id string) bool {
	for i, e := range c.elements {
		if e.ID == id {
			c.elements = append(c.elements[:i], c.elements[i+1:]...)
			if c.selectedID == id {
				c.selectedID = ""
			}
			return true
		}
	}
	return false
}

// Clear empties the canvas, drops the selection, and resets the
// background to white. Confirmation is the caller's concern.
func (c *Canvas) Clear() {
	c.elements = nil
	c.selectedID = ""
	c.background = defaultBackground
}

// Update replaces an element's stored state, matched by id. This is how
// interaction geometry writes land in the store.
func (c *Canvas) Update(el badgeformat.Element) bool {
	for i, e := range c.elements {
		if e.ID == el.ID {
			c.elements[i] = el
			return true
		}
	}
	return false
}

// BringUp swaps the element one step up in z-order.
func (c *Canvas) BringUp(id string) {
	c.elements = geometry.BringUp(c.elements, id)
}

// SendDown swaps the element one step down in z-order.
func (c *Canvas) SendDown(id string) {
	c.elements = geometry.SendDown(c.elements, id)
}

// Checkpoint pushes the current element set onto the undo stack.
func (c *Canvas) Checkpoint() {
	c.history.Checkpoint(c.elements)
}

// Undo restores the most recent checkpoint. Returns false when the undo
// stack is empty.
func (c *Canvas) Undo() bool {
	restored, ok := c.history.Undo(c.elements)
	if !ok {
		return false
	}
	c.setElements(restored)
	return true
}

// Redo reverses the most recent undo.
func (c *Canvas) Redo() bool {
	restored, ok := c.history.Redo(c.elements)
	if !ok {
		return false
	}
	c.setElements(restored)
	return true
}

// UndoDepth returns the number of undoable checkpoints.
func (c *Canvas) UndoDepth() int {
	return c.history.UndoDepth()
}

// RedoDepth returns the number of redoable states.
func (c *Canvas) RedoDepth() int {
	return c.history.RedoDepth()
}

func (c *Canvas) setElements(elements []badgeformat.Element) {
	c.elements = elements
	if c.selectedID != "" {
		if _, ok := c.Element(c.selectedID); !ok {
			c.selectedID = ""
		}
	}
}

// Design snapshots the canvas as a saveable design document.
func (c *Canvas) Design(name string) *badgeformat.Design {
	return &badgeformat.Design{
		Version:     "1.0",
		Name:        name,
		CreatedWith: "badge-engine",
		Background:  c.background,
		Elements:    badgeformat.CloneElements(c.elements),
	}
}
