package command

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/fogleman/gg"

	"github.com/sticktoon/badge-engine/pkg/badgeformat"
)

// handleRender handles render commands
// Usage: render <design-path> <output.png>
func (e *Executor) handleRender(args []string) *Result {
	if len(args) < 2 {
		return &Result{
			Success: false,
			Error:   "usage: render <design-path> <output.png>",
		}
	}

	designPath := args[0]
	outputPath := args[1]

	design, err := loadDesign(designPath)
	if err != nil {
		return &Result{
			Success: false,
			Error:   fmt.Sprintf("failed to load design: %v", err),
		}
	}

	img, err := e.renderer.Render(context.Background(), design)
	if err != nil {
		return &Result{
			Success: false,
			Error:   fmt.Sprintf("failed to render design: %v", err),
		}
	}

	if err := gg.SavePNG(outputPath, img); err != nil {
		return &Result{
			Success: false,
			Error:   fmt.Sprintf("failed to write %s: %v", outputPath, err),
		}
	}

	return &Result{
		Success: true,
		Message: fmt.Sprintf("Rendered %s to %s", designPath, outputPath),
		Data: map[string]interface{}{
			"output": outputPath,
			"size":   badgeformat.CanvasSize,
		},
	}
}

// handleValidate handles validate commands
// Usage: validate <design-path>
func (e *Executor) handleValidate(args []string) *Result {
	if len(args) < 1 {
		return &Result{
			Success: false,
			Error:   "usage: validate <design-path>",
		}
	}

	design, err := loadDesign(args[0])
	if err != nil {
		return &Result{
			Success: false,
			Error:   fmt.Sprintf("invalid design: %v", err),
		}
	}

	return &Result{
		Success: true,
		Message: fmt.Sprintf("Design is valid: %d element(s)", len(design.Elements)),
		Data: map[string]interface{}{
			"elements":   len(design.Elements),
			"background": design.Background,
		},
	}
}

// handleSession handles session commands
// Usage: session list | open | close <id> | show <id>
func (e *Executor) handleSession(args []string) *Result {
	if len(args) == 0 {
		return &Result{
			Success: false,
			Error:   "usage: session <list|open|close|show>",
		}
	}

	subcommand := args[0]

	switch subcommand {
	case "list":
		sessions := e.sessions.All()
		sessionList := make([]map[string]interface{}, len(sessions))
		for i, s := range sessions {
			sessionList[i] = map[string]interface{}{
				"id":         s.ID,
				"elements":   s.Len(),
				"selected":   s.SelectedID(),
				"created_at": s.CreatedAt,
			}
		}
		return &Result{
			Success: true,
			Message: fmt.Sprintf("Found %d session(s)", len(sessions)),
			Data: map[string]interface{}{
				"sessions": sessionList,
			},
		}

	case "open":
		sess := e.sessions.Open()
		return &Result{
			Success: true,
			Message: fmt.Sprintf("Opened session: %s", sess.ID),
			Data: map[string]interface{}{
				"session_id": sess.ID,
			},
		}

	case "close":
		if len(args) < 2 {
			return &Result{
				Success: false,
				Error:   "usage: session close <id>",
			}
		}
		if !e.sessions.Close(args[1]) {
			return &Result{
				Success: false,
				Error:   fmt.Sprintf("session not found: %s", args[1]),
			}
		}
		return &Result{
			Success: true,
			Message: fmt.Sprintf("Closed session: %s", args[1]),
		}

	case "show":
		if len(args) < 2 {
			return &Result{
				Success: false,
				Error:   "usage: session show <id>",
			}
		}
		sess := e.sessions.Get(args[1])
		if sess == nil {
			return &Result{
				Success: false,
				Error:   fmt.Sprintf("session not found: %s", args[1]),
			}
		}
		elements := sess.Elements()
		elementList := make([]map[string]interface{}, len(elements))
		for i, el := range elements {
			elementList[i] = map[string]interface{}{
				"id":       el.ID,
				"type":     el.Type,
				"x":        el.X,
				"y":        el.Y,
				"width":    el.Width,
				"height":   el.Height,
				"rotation": el.Rotation,
				"z_index":  el.ZIndex,
			}
		}
		return &Result{
			Success: true,
			Data: map[string]interface{}{
				"session_id": sess.ID,
				"background": sess.Background(),
				"selected":   sess.SelectedID(),
				"elements":   elementList,
			},
		}

	default:
		return &Result{
			Success: false,
			Error:   fmt.Sprintf("unknown session subcommand: %s. Use: list, open, close, show", subcommand),
		}
	}
}

// handleDesign handles design registry commands
// Usage: design list | save <session-id> <name> | load <design-id> | rename <id> <name> | remove <id>
func (e *Executor) handleDesign(args []string) *Result {
	if len(args) == 0 {
		return &Result{
			Success: false,
			Error:   "usage: design <list|save|load|rename|remove>",
		}
	}

	subcommand := args[0]

	switch subcommand {
	case "list":
		entries := e.registry.All()
		designList := make([]map[string]interface{}, len(entries))
		for i, entry := range entries {
			designList[i] = map[string]interface{}{
				"id":         entry.ID,
				"name":       entry.Name,
				"elements":   len(entry.Design.Elements),
				"updated_at": entry.UpdatedAt,
			}
		}
		return &Result{
			Success: true,
			Message: fmt.Sprintf("Found %d design(s)", len(entries)),
			Data: map[string]interface{}{
				"designs": designList,
			},
		}

	case "save":
		if len(args) < 3 {
			return &Result{
				Success: false,
				Error:   "usage: design save <session-id> <name>",
			}
		}
		sess := e.sessions.Get(args[1])
		if sess == nil {
			return &Result{
				Success: false,
				Error:   fmt.Sprintf("session not found: %s", args[1]),
			}
		}
		designID, err := e.registry.Save(sess.Design(args[2]))
		if err != nil {
			return &Result{
				Success: false,
				Error:   fmt.Sprintf("failed to save design: %v", err),
			}
		}
		return &Result{
			Success: true,
			Message: fmt.Sprintf("Saved design: %s", designID),
			Data: map[string]interface{}{
				"design_id": designID,
			},
		}

	case "load":
		if len(args) < 2 {
			return &Result{
				Success: false,
				Error:   "usage: design load <design-id>",
			}
		}
		entry := e.registry.Get(args[1])
		if entry == nil {
			return &Result{
				Success: false,
				Error:   fmt.Sprintf("design not found: %s", args[1]),
			}
		}
		sess := e.sessions.OpenFromDesign(entry.Design)
		return &Result{
			Success: true,
			Message: fmt.Sprintf("Opened session %s from design %s", sess.ID, entry.ID),
			Data: map[string]interface{}{
				"session_id": sess.ID,
				"design_id":  entry.ID,
			},
		}

	case "rename":
		if len(args) < 3 {
			return &Result{
				Success: false,
				Error:   "usage: design rename <id> <name>",
			}
		}
		if !e.registry.SetName(args[1], args[2]) {
			return &Result{
				Success: false,
				Error:   fmt.Sprintf("design not found: %s", args[1]),
			}
		}
		return &Result{
			Success: true,
			Message: fmt.Sprintf("Renamed design %s to %s", args[1], args[2]),
		}

	case "remove":
		if len(args) < 2 {
			return &Result{
				Success: false,
				Error:   "usage: design remove <id>",
			}
		}
		if !e.registry.Remove(args[1]) {
			return &Result{
				Success: false,
				Error:   fmt.Sprintf("design not found: %s", args[1]),
			}
		}
		return &Result{
			Success: true,
			Message: fmt.Sprintf("Removed design: %s", args[1]),
		}

	default:
		return &Result{
			Success: false,
			Error:   fmt.Sprintf("unknown design subcommand: %s. Use: list, save, load, rename, remove", subcommand),
		}
	}
}

// handleExport handles export commands
// Usage: export <session-id> <name> [quantity]
func (e *Executor) handleExport(args []string) *Result {
	if len(args) < 2 {
		return &Result{
			Success: false,
			Error:   "usage: export <session-id> <name> [quantity]",
		}
	}

	sessionID := args[0]
	name := args[1]

	if e.sessions.Get(sessionID) == nil {
		return &Result{
			Success: false,
			Error:   fmt.Sprintf("session not found: %s", sessionID),
		}
	}

	quantity := 1
	if len(args) >= 3 {
		var err error
		quantity, err = strconv.Atoi(args[2])
		if err != nil {
			return &Result{
				Success: false,
				Error:   fmt.Sprintf("invalid quantity: %s", args[2]),
			}
		}
	}

	jobID := e.queue.Enqueue(sessionID, name, "", quantity)

	return &Result{
		Success: true,
		Message: fmt.Sprintf("Export job queued: %s", jobID),
		Data: map[string]interface{}{
			"job_id":     jobID,
			"session_id": sessionID,
		},
	}
}

// handleJob handles job commands
// Usage: job list | status <id> | clear
func (e *Executor) handleJob(args []string) *Result {
	if len(args) == 0 {
		return &Result{
			Success: false,
			Error:   "usage: job <list|status|clear>",
		}
	}

	subcommand := args[0]

	switch subcommand {
	case "list":
		jobs := e.queue.GetAllJobs()
		jobList := make([]map[string]interface{}, len(jobs))
		for i, job := range jobs {
			jobList[i] = map[string]interface{}{
				"id":         job.ID,
				"session_id": job.SessionID,
				"status":     job.Status,
				"retries":    job.Retries,
				"created_at": job.CreatedAt,
			}
			if job.Error != nil {
				jobList[i]["error"] = job.Error.Error()
			}
		}
		return &Result{
			Success: true,
			Message: fmt.Sprintf("Found %d job(s)", len(jobs)),
			Data: map[string]interface{}{
				"jobs": jobList,
			},
		}

	case "status":
		if len(args) < 2 {
			return &Result{
				Success: false,
				Error:   "usage: job status <id>",
			}
		}
		jobID := args[1]
		job := e.queue.GetJob(jobID)
		if job == nil {
			return &Result{
				Success: false,
				Error:   fmt.Sprintf("job not found: %s", jobID),
			}
		}
		jobData := map[string]interface{}{
			"id":         job.ID,
			"session_id": job.SessionID,
			"status":     job.Status,
			"retries":    job.Retries,
			"created_at": job.CreatedAt,
		}
		if job.Error != nil {
			jobData["error"] = job.Error.Error()
		}
		return &Result{
			Success: true,
			Data:    jobData,
		}

	case "clear":
		e.queue.ClearCompleted()
		return &Result{
			Success: true,
			Message: "Cleared completed jobs",
		}

	default:
		return &Result{
			Success: false,
			Error:   fmt.Sprintf("unknown job subcommand: %s. Use: list, status, clear", subcommand),
		}
	}
}

// handleHelp handles help command
func (e *Executor) handleHelp(args []string) *Result {
	helpText := `Available Commands:

  render <design-path> <output.png>
    Rasterize a badge design to a PNG file

  validate <design-path>
    Check a badge design file against the schema

  session list
    List all open editing sessions

  session open
    Open a new editing session

  session close <id>
    Close an editing session

  session show <id>
    Show the elements of a session

  design list
    List saved designs

  design save <session-id> <name>
    Save a session's current design under a name

  design load <design-id>
    Open a new session from a saved design

  design rename <id> <name>
    Rename a saved design

  design remove <id>
    Delete a saved design

  export <session-id> <name> [quantity]
    Queue a session's design for the cart

  job list
    List all export jobs

  job status <id>
    Get status of a specific job

  job clear
    Clear completed jobs from the queue

  help
    Show this help message

Examples:
  render ./party.badge out.png
  validate ./party.badge
  design save session-123 "Birthday badge"
  export session-123 "Birthday badge" 10
  job status job-456
`

	return &Result{
		Success: true,
		Message: helpText,
	}
}

// loadDesign loads a design from a file path or URL and validates it.
func loadDesign(path string) (*badgeformat.Design, error) {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return loadDesignFromURL(path)
	}
	return badgeformat.ParseFile(path)
}

// loadDesignFromURL loads a design from a URL
func loadDesignFromURL(url string) (*badgeformat.Design, error) {
	resp, err := http.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch design from URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch design: HTTP %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read design from URL: %w", err)
	}

	design, err := badgeformat.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse design: %w", err)
	}

	return design, nil
}
