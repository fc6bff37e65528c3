package session

import (
	"context"
	"math"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sticktoon/badge-engine/internal/assets"
	"github.com/sticktoon/badge-engine/pkg/badgeformat"
)

func TestAddAndDragScenario(t *testing.T) {
	s := New(nil)

	el, ok := s.AddText("HI")
	if !ok {
		t.Fatal("Expected text element to be added")
	}

	half := float64(badgeformat.CanvasSize) / 2
	if el.X != half-50 || el.Y != half-20 || el.Width != 100 || el.Height != 40 {
		t.Fatalf("Unexpected default box: (%v, %v) %vx%v", el.X, el.Y, el.Width, el.Height)
	}

	// Drag by (30, -10)
	s.PointerDown(el.ID, HandleBody, 400, 400)
	s.PointerMove(430, 390)
	s.PointerUp()

	got, _ := findElement(s.Elements(), el.ID)
	if got.X != half-20 || got.Y != half-30 {
		t.Errorf("Expected (%v, %v) after drag, got (%v, %v)", half-20, half-30, got.X, got.Y)
	}
}

func findElement(elements []badgeformat.Element, id string) (badgeformat.Element, bool) {
	for _, e := range elements {
		if e.ID == id {
			return e, true
		}
	}
	return badgeformat.Element{}, false
}

func TestPointerDown_Selects(t *testing.T) {
	s := New(nil)
	a, _ := s.AddText("a")
	b, _ := s.AddText("b")

	if s.SelectedID() != b.ID {
		t.Fatal("Expected last added element selected")
	}

	s.PointerDown(a.ID, HandleBody, 0, 0)
	if s.SelectedID() != a.ID {
		t.Error("Expected pointer-down to select the element")
	}
	if s.Mode() != ModeDrag {
		t.Errorf("Expected drag mode, got %s", s.Mode())
	}
	s.PointerUp()
}

func TestPointerMove_Idle(t *testing.T) {
	s := New(nil)
	el, _ := s.AddText("still")

	// No interaction active: moves are silently ignored
	s.PointerMove(500, 500)

	got, _ := findElement(s.Elements(), el.ID)
	if got.X != el.X || got.Y != el.Y {
		t.Error("Expected geometry untouched without an active interaction")
	}
}

func TestResizeInteraction_Floor(t *testing.T) {
	s := New(nil)
	el, _ := s.AddText("shrink")

	s.PointerDown(el.ID, HandleResize, 0, 0)
	s.PointerMove(-1000, -1000)
	s.PointerUp()

	got, _ := findElement(s.Elements(), el.ID)
	if got.Width != badgeformat.MinElementSize || got.Height != badgeformat.MinElementSize {
		t.Errorf("Expected floored size, got %vx%v", got.Width, got.Height)
	}
}

func TestResizeInteraction_IndependentAxes(t *testing.T) {
	s := New(nil)
	el, _ := s.AddText("stretch")

	s.PointerDown(el.ID, HandleResize, 100, 100)
	s.PointerMove(150, 110) // dx=50, dy=10
	s.PointerUp()

	got, _ := findElement(s.Elements(), el.ID)
	if got.Width != 150 || got.Height != 50 {
		t.Errorf("Expected 150x50, got %vx%v", got.Width, got.Height)
	}
}

func TestRotateInteraction(t *testing.T) {
	s := New(nil)
	el, _ := s.AddText("spin")

	got, _ := findElement(s.Elements(), el.ID)
	cx, cy := got.CenterX(), got.CenterY()

	// Hold the rotate handle directly right of the element center
	s.PointerDown(el.ID, HandleRotate, cx, cy-50)
	s.PointerMove(cx+80, cy)
	s.PointerUp()

	got, _ = findElement(s.Elements(), el.ID)
	if math.Abs(got.Rotation-90) > 1e-9 {
		t.Errorf("Expected 90 degrees, got %v", got.Rotation)
	}
}

func TestNewPointerDown_EndsPriorInteraction(t *testing.T) {
	s := New(nil)
	a, _ := s.AddText("a")
	b, _ := s.AddText("b")

	s.PointerDown(a.ID, HandleBody, 0, 0)
	s.PointerDown(b.ID, HandleBody, 10, 10)
	s.PointerMove(40, 10)
	s.PointerUp()

	gotA, _ := findElement(s.Elements(), a.ID)
	gotB, _ := findElement(s.Elements(), b.ID)
	if gotA.X != a.X {
		t.Error("Expected first element untouched after interaction switch")
	}
	if gotB.X != b.X+30 {
		t.Errorf("Expected second element dragged by 30, got %v", gotB.X-b.X)
	}
}

func TestWheelZoom(t *testing.T) {
	s := New(nil)

	if z := s.Wheel(true); math.Abs(z-1.1) > 1e-9 {
		t.Errorf("Expected zoom 1.1, got %v", z)
	}

	// Zoom never leaks into element geometry. 1.1^12 > 3.0, so the last
	// steps pin the zoom at the ceiling.
	el, _ := s.AddText("fixed")
	for i := 0; i < 11; i++ {
		s.Wheel(true)
	}
	got, _ := findElement(s.Elements(), el.ID)
	if got.Width != 100 {
		t.Error("Zoom changed element geometry")
	}
	if s.Zoom() != badgeformat.MaxZoom {
		t.Errorf("Expected zoom ceiling, got %v", s.Zoom())
	}
}

func TestClear_Declined(t *testing.T) {
	s := New(nil)
	s.AddText("one")
	s.AddText("two")
	s.AddText("three")

	if s.Clear(false) {
		t.Error("Expected declined clear to report false")
	}
	if s.Len() != 3 {
		t.Errorf("Expected 3 elements untouched, got %d", s.Len())
	}
	if s.UndoDepth() != 0 {
		t.Errorf("Expected undo stack untouched, got depth %d", s.UndoDepth())
	}
}

func TestClear_Confirmed(t *testing.T) {
	s := New(nil)
	s.AddText("gone")
	s.SetBackground("#123456")

	if !s.Clear(true) {
		t.Fatal("Expected confirmed clear to proceed")
	}
	if s.Len() != 0 || s.Background() != "#FFFFFF" {
		t.Error("Expected empty white canvas")
	}

	// The clear is undoable
	if !s.Undo() {
		t.Fatal("Expected undo after clear")
	}
	if s.Len() != 1 {
		t.Errorf("Expected element restored, got %d", s.Len())
	}
}

func TestDeleteSelected(t *testing.T) {
	s := New(nil)
	s.AddText("keep")
	s.AddText("delete")

	if !s.DeleteSelected() {
		t.Fatal("Expected delete to succeed")
	}
	if s.Len() != 1 {
		t.Errorf("Expected 1 element, got %d", s.Len())
	}

	s.Select("")
	if s.DeleteSelected() {
		t.Error("Expected delete without selection to no-op")
	}
}

func TestCenterSelected(t *testing.T) {
	s := New(nil)
	el, _ := s.AddText("center me")

	s.PointerDown(el.ID, HandleBody, 0, 0)
	s.PointerMove(111, 77)
	s.PointerUp()

	if !s.CenterSelected(true, true) {
		t.Fatal("Expected centering to succeed")
	}

	got, _ := findElement(s.Elements(), el.ID)
	want := float64(badgeformat.CanvasSize) / 2
	if math.Abs(got.CenterX()-want) > 1e-9 || math.Abs(got.CenterY()-want) > 1e-9 {
		t.Errorf("Expected center (%v, %v), got (%v, %v)", want, want, got.CenterX(), got.CenterY())
	}
}

func TestScaleSelected(t *testing.T) {
	s := New(nil)
	s.AddText("grow")

	if !s.ScaleSelected(40) {
		t.Fatal("Expected scale to succeed")
	}

	got, _ := findElement(s.Elements(), s.SelectedID())
	if got.Width != 140 {
		t.Errorf("Expected width 140, got %v", got.Width)
	}
	// 100x40 aspect: height follows
	if math.Abs(got.Height-56) > 1e-9 {
		t.Errorf("Expected height 56, got %v", got.Height)
	}
}

func TestLayerSwapSelected(t *testing.T) {
	s := New(nil)
	a, _ := s.AddText("bottom")
	b, _ := s.AddText("top")

	s.Select(a.ID)
	s.BringUpSelected()

	gotA, _ := findElement(s.Elements(), a.ID)
	gotB, _ := findElement(s.Elements(), b.ID)
	if gotA.ZIndex <= gotB.ZIndex {
		t.Errorf("Expected %s above %s, got %d vs %d", a.ID, b.ID, gotA.ZIndex, gotB.ZIndex)
	}

	s.SendDownSelected()
	gotA, _ = findElement(s.Elements(), a.ID)
	gotB, _ = findElement(s.Elements(), b.ID)
	if gotA.ZIndex >= gotB.ZIndex {
		t.Error("Expected round trip to restore z-order")
	}
}

func TestAddQR_BuildsServiceURL(t *testing.T) {
	s := New(nil)

	el, ok := s.AddQR("https://sticktoon.example/p/7", "#000000", badgeformat.BackgroundTransparent)
	if !ok {
		t.Fatal("Expected QR element to be added")
	}

	if !strings.HasPrefix(el.Content, assets.QRServiceBase) {
		t.Errorf("Expected QR service URL content, got %s", el.Content)
	}
	if !strings.Contains(el.Content, "bgcolor=255-255-255") {
		t.Errorf("Expected transparent background encoded as white, got %s", el.Content)
	}
}

func TestAddQR_RejectsEmpty(t *testing.T) {
	s := New(nil)
	if _, ok := s.AddQR("", "#000000", "#FFFFFF"); ok {
		t.Error("Expected empty destination to be rejected")
	}
}

func TestGenerate_AppendsImage(t *testing.T) {
	gen := assets.GeneratorFunc(func(ctx context.Context, prompt string) (string, error) {
		return "https://cdn.example/mockup.png", nil
	})
	s := New(gen)

	el, err := s.Generate(context.Background(), "cat sticker")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if el.Type != badgeformat.TypeImage {
		t.Errorf("Expected image element, got %s", el.Type)
	}
	if s.Len() != 1 {
		t.Errorf("Expected 1 element, got %d", s.Len())
	}
}

func TestGenerate_Serialized(t *testing.T) {
	release := make(chan struct{})
	gen := assets.GeneratorFunc(func(ctx context.Context, prompt string) (string, error) {
		<-release
		return "https://cdn.example/slow.png", nil
	})
	s := New(gen)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		s.Generate(context.Background(), "first")
	}()

	// Wait for the first generation to be in flight
	for i := 0; i < 100 && !s.Generating(); i++ {
		time.Sleep(time.Millisecond)
	}
	if !s.Generating() {
		t.Fatal("Expected first generation to be pending")
	}

	if _, err := s.Generate(context.Background(), "second"); err != ErrGenerationBusy {
		t.Errorf("Expected ErrGenerationBusy, got %v", err)
	}

	close(release)
	wg.Wait()

	if s.Len() != 1 {
		t.Errorf("Expected exactly one generated element, got %d", s.Len())
	}
}

func TestManager_Lifecycle(t *testing.T) {
	m := NewManager(nil)

	var opened, closed int
	m.OnSessionOpened(func(*Session) { opened++ })
	m.OnSessionClosed(func(string) { closed++ })

	s := m.Open()
	if m.Get(s.ID) != s {
		t.Error("Expected to retrieve the opened session")
	}
	if m.Count() != 1 {
		t.Errorf("Expected 1 session, got %d", m.Count())
	}

	if !m.Close(s.ID) {
		t.Error("Expected close to succeed")
	}
	if m.Get(s.ID) != nil {
		t.Error("Expected session gone after close")
	}
	if opened != 1 || closed != 1 {
		t.Errorf("Expected callbacks 1/1, got %d/%d", opened, closed)
	}
}

func TestManager_OpenFromDesign(t *testing.T) {
	m := NewManager(nil)

	design := &badgeformat.Design{
		Version:    "1.0",
		Background: "#222222",
		Elements: []badgeformat.Element{
			{ID: "a", Type: badgeformat.TypeText, Content: "hi", Width: 100, Height: 40, ZIndex: 1},
		},
	}

	s := m.OpenFromDesign(design)
	if s.Len() != 1 || s.Background() != "#222222" {
		t.Error("Expected session loaded from design")
	}
}
