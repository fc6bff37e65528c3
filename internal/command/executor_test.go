package command

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/sticktoon/badge-engine/internal/assets"
	"github.com/sticktoon/badge-engine/internal/cart"
	"github.com/sticktoon/badge-engine/internal/export"
	"github.com/sticktoon/badge-engine/internal/registry"
	"github.com/sticktoon/badge-engine/internal/renderer"
	"github.com/sticktoon/badge-engine/internal/session"
)

type noopSubmitter struct{}

func (noopSubmitter) Submit(ctx context.Context, item cart.Item) error { return nil }

func newTestExecutor(t *testing.T) (*Executor, *session.Manager) {
	t.Helper()

	reg, err := registry.New(filepath.Join(t.TempDir(), "designs.json"))
	if err != nil {
		t.Fatalf("failed to create registry: %v", err)
	}

	sessions := session.NewManager(nil)
	r := renderer.New(assets.NewResolver())
	queue := export.NewQueue(sessions, r, noopSubmitter{}, 3)
	t.Cleanup(queue.Stop)

	return NewExecutor(sessions, reg, queue, r), sessions
}

func writeTestDesign(t *testing.T) string {
	t.Helper()

	design := `{
		"version": "1.0",
		"background": "#FF0000",
		"elements": [
			{"id": "t1", "type": "text", "content": "Hello", "x": 100, "y": 100, "width": 200, "height": 60, "rotation": 0, "zIndex": 0}
		]
	}`

	path := filepath.Join(t.TempDir(), "test.badge")
	if err := os.WriteFile(path, []byte(design), 0644); err != nil {
		t.Fatalf("failed to write design file: %v", err)
	}
	return path
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"session list", []string{"session", "list"}},
		{`design save s1 "Birthday badge"`, []string{"design", "save", "s1", "Birthday badge"}},
		{"  render   a.badge  out.png ", []string{"render", "a.badge", "out.png"}},
		{"", nil},
		{`validate 'my design.badge'`, []string{"validate", "my design.badge"}},
	}

	for _, tt := range tests {
		got := parseCommand(tt.input)
		if len(got) == 0 && len(tt.want) == 0 {
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("parseCommand(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestExecuteUnknownCommand(t *testing.T) {
	exec, _ := newTestExecutor(t)

	result := exec.Execute("teleport")
	if result.Success {
		t.Error("unknown command should fail")
	}
	if !strings.Contains(result.Error, "unknown command") {
		t.Errorf("unexpected error: %s", result.Error)
	}

	result = exec.Execute("   ")
	if result.Success || result.Error != "empty command" {
		t.Errorf("empty command should fail, got %+v", result)
	}
}

func TestValidateCommand(t *testing.T) {
	exec, _ := newTestExecutor(t)
	path := writeTestDesign(t)

	result := exec.Execute("validate " + path)
	if !result.Success {
		t.Fatalf("validate failed: %s", result.Error)
	}
	if result.Data["elements"] != 1 {
		t.Errorf("expected 1 element, got %v", result.Data["elements"])
	}

	bad := filepath.Join(t.TempDir(), "bad.badge")
	os.WriteFile(bad, []byte(`{"version": "2.0", "elements": []}`), 0644)

	result = exec.Execute("validate " + bad)
	if result.Success {
		t.Error("unsupported version should fail validation")
	}
}

func TestRenderCommand(t *testing.T) {
	exec, _ := newTestExecutor(t)
	path := writeTestDesign(t)
	out := filepath.Join(t.TempDir(), "out.png")

	result := exec.Execute("render " + path + " " + out)
	if !result.Success {
		t.Fatalf("render failed: %s", result.Error)
	}

	info, err := os.Stat(out)
	if err != nil {
		t.Fatalf("output PNG was not written: %v", err)
	}
	if info.Size() == 0 {
		t.Error("output PNG is empty")
	}
}

func TestSessionCommands(t *testing.T) {
	exec, sessions := newTestExecutor(t)

	result := exec.Execute("session open")
	if !result.Success {
		t.Fatalf("session open failed: %s", result.Error)
	}
	sessionID := result.Data["session_id"].(string)

	sess := sessions.Get(sessionID)
	if sess == nil {
		t.Fatal("opened session should be retrievable")
	}
	sess.AddText("Hi")

	result = exec.Execute("session show " + sessionID)
	if !result.Success {
		t.Fatalf("session show failed: %s", result.Error)
	}
	elements := result.Data["elements"].([]map[string]interface{})
	if len(elements) != 1 {
		t.Errorf("expected 1 element in session, got %d", len(elements))
	}

	result = exec.Execute("session close " + sessionID)
	if !result.Success {
		t.Fatalf("session close failed: %s", result.Error)
	}

	result = exec.Execute("session close " + sessionID)
	if result.Success {
		t.Error("closing a closed session should fail")
	}
}

func TestDesignCommands(t *testing.T) {
	exec, sessions := newTestExecutor(t)

	sess := sessions.Open()
	sess.AddText("Keepsake")

	result := exec.Execute(`design save ` + sess.ID + ` "My badge"`)
	if !result.Success {
		t.Fatalf("design save failed: %s", result.Error)
	}
	designID := result.Data["design_id"].(string)

	result = exec.Execute("design load " + designID)
	if !result.Success {
		t.Fatalf("design load failed: %s", result.Error)
	}
	loadedID := result.Data["session_id"].(string)
	if loaded := sessions.Get(loadedID); loaded == nil || loaded.Len() != 1 {
		t.Error("loaded session should carry the saved elements")
	}

	result = exec.Execute(`design rename ` + designID + ` "Renamed"`)
	if !result.Success {
		t.Fatalf("design rename failed: %s", result.Error)
	}

	result = exec.Execute("design remove " + designID)
	if !result.Success {
		t.Fatalf("design remove failed: %s", result.Error)
	}

	result = exec.Execute("design load " + designID)
	if result.Success {
		t.Error("loading a removed design should fail")
	}
}

func TestExportCommand(t *testing.T) {
	exec, sessions := newTestExecutor(t)

	sess := sessions.Open()
	sess.AddText("Cart me")

	result := exec.Execute(`export ` + sess.ID + ` "Cart badge" 5`)
	if !result.Success {
		t.Fatalf("export failed: %s", result.Error)
	}
	jobID := result.Data["job_id"].(string)

	result = exec.Execute("job status " + jobID)
	if !result.Success {
		t.Fatalf("job status failed: %s", result.Error)
	}

	result = exec.Execute("export missing-session x")
	if result.Success {
		t.Error("export for a missing session should fail")
	}

	result = exec.Execute("export " + sess.ID + " badge abc")
	if result.Success {
		t.Error("non-numeric quantity should fail")
	}
}

func TestHelpCommand(t *testing.T) {
	exec, _ := newTestExecutor(t)

	result := exec.Execute("help")
	if !result.Success {
		t.Fatal("help should succeed")
	}
	for _, cmd := range []string{"render", "validate", "session", "design", "export", "job"} {
		if !strings.Contains(result.Message, cmd) {
			t.Errorf("help text should mention %q", cmd)
		}
	}
}
