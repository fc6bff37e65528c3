package canvas

import (
	"testing"

	"github.com/sticktoon/badge-engine/pkg/badgeformat"
)

func TestAddText_Defaults(t *testing.T) {
	c := New()

	el, ok := c.AddText("HI")
	if !ok {
		t.Fatal("Expected text element to be added")
	}

	half := float64(badgeformat.CanvasSize) / 2
	if el.X != half-50 || el.Y != half-20 {
		t.Errorf("Expected default position (%v, %v), got (%v, %v)", half-50, half-20, el.X, el.Y)
	}
	if el.Width != 100 || el.Height != 40 {
		t.Errorf("Expected default box 100x40, got %vx%v", el.Width, el.Height)
	}
	if el.Rotation != 0 {
		t.Errorf("Expected rotation 0, got %v", el.Rotation)
	}
	if el.ZIndex != 1 {
		t.Errorf("Expected z-index 1 on empty canvas, got %d", el.ZIndex)
	}
	if c.SelectedID() != el.ID {
		t.Error("Expected new text element to be selected")
	}
}

func TestAddText_RejectsEmpty(t *testing.T) {
	c := New()

	if _, ok := c.AddText(""); ok {
		t.Error("Expected empty text to be rejected")
	}
	if _, ok := c.AddText("   \t"); ok {
		t.Error("Expected whitespace-only text to be rejected")
	}
	if c.Len() != 0 {
		t.Errorf("Expected no elements, got %d", c.Len())
	}
}

func TestAddImage_FullBleed(t *testing.T) {
	c := New()

	el, ok := c.AddImage("file:///tmp/photo.png")
	if !ok {
		t.Fatal("Expected image element to be added")
	}

	size := float64(badgeformat.CanvasSize)
	if el.X != 0 || el.Y != 0 || el.Width != size || el.Height != size {
		t.Errorf("Expected full-bleed placement, got (%v, %v) %vx%v", el.X, el.Y, el.Width, el.Height)
	}
}

func TestAddQR_Defaults(t *testing.T) {
	c := New()

	el, ok := c.AddQR("https://qr.example/render?data=x")
	if !ok {
		t.Fatal("Expected QR element to be added")
	}

	want := (float64(badgeformat.CanvasSize) - 200) / 2
	if el.X != want || el.Y != want {
		t.Errorf("Expected centered placement at %v, got (%v, %v)", want, el.X, el.Y)
	}
	if el.Width != 200 || el.Height != 200 {
		t.Errorf("Expected 200x200, got %vx%v", el.Width, el.Height)
	}
}

func TestAdd_ZIndexAboveExisting(t *testing.T) {
	c := New()

	first, _ := c.AddText("one")
	second, _ := c.AddText("two")

	if second.ZIndex <= first.ZIndex {
		t.Errorf("Expected new element above existing, got %d <= %d", second.ZIndex, first.ZIndex)
	}
}

func TestLen_TracksAddAndRemove(t *testing.T) {
	c := New()

	a, _ := c.AddText("a")
	c.AddText("b")
	c.AddQR("https://example.com/qr")
	if c.Len() != 3 {
		t.Errorf("Expected 3 elements, got %d", c.Len())
	}

	c.Remove(a.ID)
	if c.Len() != 2 {
		t.Errorf("Expected 2 elements after remove, got %d", c.Len())
	}
}

func TestRemove_ClearsSelection(t *testing.T) {
	c := New()

	el, _ := c.AddText("bye")
	if !c.Remove(el.ID) {
		t.Fatal("Expected removal to succeed")
	}
	if c.SelectedID() != "" {
		t.Error("Expected selection cleared after removing selected element")
	}
}

func TestRemove_Unknown(t *testing.T) {
	c := New()
	c.AddText("keep")

	if c.Remove("missing") {
		t.Error("Expected removal of unknown id to fail")
	}
	if c.Len() != 1 {
		t.Error("Expected element count unchanged")
	}
}

func TestSelect(t *testing.T) {
	c := New()
	a, _ := c.AddText("a")
	c.AddText("b")

	c.Select(a.ID)
	if c.SelectedID() != a.ID {
		t.Errorf("Expected selection %s, got %s", a.ID, c.SelectedID())
	}

	// Unknown id: silent no-op
	c.Select("missing")
	if c.SelectedID() != a.ID {
		t.Error("Expected selection unchanged for unknown id")
	}

	// Empty id deselects (canvas background click)
	c.Select("")
	if c.SelectedID() != "" {
		t.Error("Expected deselection")
	}
}

func TestClear_ResetsBackground(t *testing.T) {
	c := New()
	c.SetBackground("#FF0000")
	c.AddText("gone")

	c.Clear()

	if c.Len() != 0 {
		t.Errorf("Expected empty canvas, got %d elements", c.Len())
	}
	if c.SelectedID() != "" {
		t.Error("Expected selection cleared")
	}
	if c.Background() != "#FFFFFF" {
		t.Errorf("Expected white background, got %s", c.Background())
	}
}

func TestUpdate(t *testing.T) {
	c := New()
	el, _ := c.AddText("move me")

	el.X = 42
	el.Rotation = 30
	if !c.Update(el) {
		t.Fatal("Expected update to succeed")
	}

	got, _ := c.Element(el.ID)
	if got.X != 42 || got.Rotation != 30 {
		t.Errorf("Expected updated geometry, got X=%v rotation=%v", got.X, got.Rotation)
	}
}

func TestFromDesign(t *testing.T) {
	design := &badgeformat.Design{
		Version:    "1.0",
		Background: "#00FF00",
		Elements: []badgeformat.Element{
			{ID: "a", Type: badgeformat.TypeText, Content: "hi", Width: 100, Height: 40, ZIndex: 1},
		},
	}

	c := FromDesign(design)

	if c.Len() != 1 {
		t.Errorf("Expected 1 element, got %d", c.Len())
	}
	if c.Background() != "#00FF00" {
		t.Errorf("Expected background carried over, got %s", c.Background())
	}
}

func TestDesign_Snapshot(t *testing.T) {
	c := New()
	c.SetBackground("#0000FF")
	c.AddText("snapshot")

	design := c.Design("My Badge")

	if design.Version != "1.0" || design.Name != "My Badge" {
		t.Errorf("Unexpected design header: %s %s", design.Version, design.Name)
	}
	if design.Background != "#0000FF" || len(design.Elements) != 1 {
		t.Error("Design snapshot did not capture canvas state")
	}

	// Snapshot must be independent of the live canvas
	design.Elements[0].X = 999
	got, _ := c.Element(design.Elements[0].ID)
	if got.X == 999 {
		t.Error("Design snapshot shares storage with the canvas")
	}
}
