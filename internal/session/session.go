// Package session wraps one live badge-editing canvas with the pointer
// interaction state machine and the zoom view state.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sticktoon/badge-engine/internal/assets"
	"github.com/sticktoon/badge-engine/internal/canvas"
	"github.com/sticktoon/badge-engine/internal/geometry"
	"github.com/sticktoon/badge-engine/pkg/badgeformat"
)

// Mode is the active pointer gesture type. Modes are mutually exclusive:
// one interaction at a time per session.
type Mode string

const (
	ModeNone   Mode = "none"
	ModeDrag   Mode = "drag"
	ModeResize Mode = "resize"
	ModeRotate Mode = "rotate"
)

// Handle identifies which control the pointer grabbed on pointer-down.
type Handle string

const (
	HandleBody   Handle = "body"   // element body: drag
	HandleResize Handle = "resize" // corner handle: free-form resize
	HandleRotate Handle = "rotate" // top handle: rotate
)

// ErrGenerationBusy is returned when a mockup generation is requested
// while a previous one is still pending. Generations are serialized per
// session rather than racing to append elements.
var ErrGenerationBusy = errors.New("mockup generation already in progress")

type interaction struct {
	mode   Mode
	id     string
	startX float64 // pointer position at interaction start
	startY float64
	start  badgeformat.Element // element geometry at interaction start
}

// Session is one editing session: a canvas plus interaction and view
// state. All methods are safe for concurrent use; the engine serializes
// them the way a browser tab's event loop would.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu         sync.Mutex
	canvas     *canvas.Canvas
	zoom       float64
	active     interaction
	generating bool
	generator  assets.Generator
}

// New creates a blank session.
func New(generator assets.Generator) *Session {
	return &Session{
		ID:        uuid.New().String(),
		CreatedAt: time.Now(),
		canvas:    canvas.New(),
		zoom:      1.0,
		generator: generator,
	}
}

// FromDesign creates a session pre-loaded with a saved design.
func FromDesign(design *badgeformat.Design, generator assets.Generator) *Session {
	s := New(generator)
	s.canvas = canvas.FromDesign(design)
	return s
}

// --- Pointer interaction ---

// PointerDown starts an interaction over an element or one of its
// handles, selecting the element. A pointer-down while another
// interaction is active ends the previous one first (pointer-up always
// precedes a new pointer-down in a real event stream; this guards the
// out-of-order case).
func (s *Session) PointerDown(elementID string, handle Handle, px, py float64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	el, ok := s.canvas.Element(elementID)
	if !ok {
		return false
	}

	s.canvas.Select(elementID)

	mode := ModeDrag
	switch handle {
	case HandleResize:
		mode = ModeResize
	case HandleRotate:
		mode = ModeRotate
	}

	s.active = interaction{
		mode:   mode,
		id:     elementID,
		startX: px,
		startY: py,
		start:  el,
	}
	return true
}

// PointerMove feeds a pointer position into the active interaction and
// writes the resulting geometry to the store. Silent no-op when idle.
func (s *Session) PointerMove(px, py float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active.mode == ModeNone || s.active.mode == "" {
		return
	}

	dx := px - s.active.startX
	dy := py - s.active.startY

	var updated badgeformat.Element
	switch s.active.mode {
	case ModeDrag:
		updated = geometry.Drag(s.active.start, dx, dy)
	case ModeResize:
		updated = geometry.Resize(s.active.start, dx, dy)
	case ModeRotate:
		current, ok := s.canvas.Element(s.active.id)
		if !ok {
			return
		}
		current.Rotation = geometry.RotationFromPointer(px, py, current.CenterX(), current.CenterY())
		updated = current
	default:
		return
	}

	s.canvas.Update(updated)
}

// PointerUp ends the active interaction. The last computed geometry is
// final; there is no snap or commit step.
func (s *Session) PointerUp() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = interaction{mode: ModeNone}
}

// Mode returns the active interaction mode.
func (s *Session) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active.mode == "" {
		return ModeNone
	}
	return s.active.mode
}

// Wheel applies one zoom tick. Zoom scales the preview only; element
// geometry and export pixels never change with it.
func (s *Session) Wheel(in bool) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.zoom = geometry.ZoomStep(s.zoom, in)
	return s.zoom
}

// Zoom returns the current preview zoom factor.
func (s *Session) Zoom() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.zoom
}

// --- Element operations ---

// AddText adds a text element. Empty input: silent no-op.
func (s *Session) AddText(content string) (badgeformat.Element, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.canvas.AddText(content)
}

// AddImage adds a full-bleed image element from a content reference.
func (s *Session) AddImage(ref string) (badgeformat.Element, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.canvas.AddImage(ref)
}

// AddQR builds the QR-service URL for a destination and places a QR
// element. Empty destination: silent no-op.
func (s *Session) AddQR(destination, foreground, background string) (badgeformat.Element, bool) {
	if destination == "" {
		return badgeformat.Element{}, false
	}

	url := assets.QRImageURL(assets.QRParams{
		Data:       destination,
		Foreground: foreground,
		Background: background,
		Size:       200,
	})

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.canvas.AddQR(url)
}

// Select sets the selection; empty id deselects (background click).
func (s *Session) Select(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.canvas.Select(id)
}

// DeleteSelected checkpoints and removes the selected element.
func (s *Session) DeleteSelected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.canvas.SelectedID()
	if id == "" {
		return false
	}
	s.canvas.Checkpoint()
	return s.canvas.Remove(id)
}

// Clear empties the canvas. The confirmation outcome is supplied by the
// caller; a declined clear changes nothing, including the undo stack.
// The checkpoint lands only once the action is confirmed.
func (s *Session) Clear(confirmed bool) bool {
	if !confirmed {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.canvas.Checkpoint()
	s.canvas.Clear()
	return true
}

// Reset is the full-reset tool: same effect as a confirmed clear, no
// confirmation gate.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.canvas.Checkpoint()
	s.canvas.Clear()
}

// CenterSelected checkpoints and centers the selected element on the
// requested axes.
func (s *Session) CenterSelected(horizontal, vertical bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	el, ok := s.canvas.Selected()
	if !ok || (!horizontal && !vertical) {
		return false
	}

	s.canvas.Checkpoint()
	if horizontal {
		el = geometry.CenterHorizontal(el)
	}
	if vertical {
		el = geometry.CenterVertical(el)
	}
	return s.canvas.Update(el)
}

// ScaleSelected applies a discrete uniform-scale step to the selected
// element (the side-panel size stepper).
func (s *Session) ScaleSelected(delta float64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	el, ok := s.canvas.Selected()
	if !ok {
		return false
	}
	return s.canvas.Update(geometry.ScaleStep(el, delta))
}

// BringUpSelected swaps the selected element one step up in z-order.
func (s *Session) BringUpSelected() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id := s.canvas.SelectedID(); id != "" {
		s.canvas.BringUp(id)
	}
}

// SendDownSelected swaps the selected element one step down in z-order.
func (s *Session) SendDownSelected() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id := s.canvas.SelectedID(); id != "" {
		s.canvas.SendDown(id)
	}
}

// SetBackground sets the badge background.
func (s *Session) SetBackground(value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.canvas.SetBackground(value)
}

// Undo restores the most recent checkpoint.
func (s *Session) Undo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.canvas.Undo()
}

// Redo reverses the most recent undo.
func (s *Session) Redo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.canvas.Redo()
}

// --- State access ---

// Elements returns a copy of the element set.
func (s *Session) Elements() []badgeformat.Element {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.canvas.Elements()
}

// SelectedID returns the selected element id, or "".
func (s *Session) SelectedID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.canvas.SelectedID()
}

// Len returns the live element count (the layers-tab badge).
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.canvas.Len()
}

// Background returns the badge background value.
func (s *Session) Background() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.canvas.Background()
}

// UndoDepth returns the number of undoable checkpoints.
func (s *Session) UndoDepth() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.canvas.UndoDepth()
}

// Design snapshots the session as a design document.
func (s *Session) Design(name string) *badgeformat.Design {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.canvas.Design(name)
}

// --- Mockup generation ---

// Generate asks the mockup collaborator for an image and appends it as a
// full-bleed image element. Concurrent calls are rejected with
// ErrGenerationBusy instead of racing.
func (s *Session) Generate(ctx context.Context, prompt string) (badgeformat.Element, error) {
	if s.generator == nil {
		return badgeformat.Element{}, errors.New("no mockup generator configured")
	}

	s.mu.Lock()
	if s.generating {
		s.mu.Unlock()
		return badgeformat.Element{}, ErrGenerationBusy
	}
	s.generating = true
	s.mu.Unlock()

	url, err := s.generator.Generate(ctx, prompt)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.generating = false

	if err != nil {
		return badgeformat.Element{}, err
	}

	el, ok := s.canvas.AddImage(url)
	if !ok {
		return badgeformat.Element{}, errors.New("generator returned empty image URL")
	}
	return el, nil
}

// Generating reports whether a mockup generation is pending.
func (s *Session) Generating() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generating
}
