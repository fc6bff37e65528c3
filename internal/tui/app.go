// Package tui is the server-side dashboard for watching sessions and
// export jobs while the engine runs.
package tui

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/sticktoon/badge-engine/internal/command"
	"github.com/sticktoon/badge-engine/internal/export"
	"github.com/sticktoon/badge-engine/internal/session"
)

// App is the dashboard application using tview
type App struct {
	App      *tview.Application
	sessions *session.Manager
	queue    *export.Queue
	executor *command.Executor
	port     string

	// Main layout
	flex *tview.Flex

	// Panels
	sessionsList *tview.List
	jobsTable    *tview.Table
	statusBox    *tview.TextView
	logsArea     *tview.TextView
	commandInput *tview.InputField

	// State
	logs      []string
	maxLogs   int
	startTime time.Time
}

// NewApp creates a new tview-based dashboard
func NewApp(sessions *session.Manager, queue *export.Queue, executor *command.Executor, port string) *App {
	app := tview.NewApplication()

	t := &App{
		App:       app,
		sessions:  sessions,
		queue:     queue,
		executor:  executor,
		port:      port,
		logs:      make([]string, 0),
		maxLogs:   100,
		startTime: time.Now(),
	}

	t.setupUI()
	return t
}

func (t *App) setupUI() {
	// Create panels
	t.sessionsList = tview.NewList()
	t.sessionsList.SetBorder(true)
	t.sessionsList.SetTitle("Editing Sessions")

	t.jobsTable = tview.NewTable()
	t.jobsTable.SetBorder(true)
	t.jobsTable.SetTitle("Export Jobs")

	t.statusBox = tview.NewTextView()
	t.statusBox.SetBorder(true)
	t.statusBox.SetTitle("Server Status")
	t.statusBox.SetDynamicColors(true)

	t.logsArea = tview.NewTextView()
	t.logsArea.SetBorder(true)
	t.logsArea.SetTitle("Server Logs")
	t.logsArea.SetDynamicColors(true)
	t.logsArea.SetScrollable(true)
	t.logsArea.SetChangedFunc(func() {
		t.App.Draw()
	})

	t.commandInput = tview.NewInputField().
		SetLabel("> ").
		SetFieldWidth(0).
		SetPlaceholder("Type a command (e.g., 'help')").
		SetDoneFunc(func(key tcell.Key) {
			if key == tcell.KeyEnter {
				t.executeCommand(t.commandInput.GetText())
				t.commandInput.SetText("")
			}
		})

	// Top row: Sessions, Jobs, Status
	topRow := tview.NewFlex().
		AddItem(t.sessionsList, 0, 1, false).
		AddItem(t.jobsTable, 0, 1, false).
		AddItem(t.statusBox, 0, 1, false)

	// Bottom: Logs and command
	bottom := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(t.logsArea, 0, 3, false).
		AddItem(t.commandInput, 1, 0, true)

	// Main layout
	t.flex = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(topRow, 0, 1, false).
		AddItem(bottom, 0, 1, false)

	// Set up key bindings
	t.App.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		// Let the command input consume everything while it has focus
		if t.commandInput.HasFocus() {
			if event.Key() == tcell.KeyEsc {
				t.App.SetFocus(t.sessionsList)
				return nil
			}
			return event
		}

		switch event.Key() {
		case tcell.KeyCtrlC, tcell.KeyEsc:
			t.App.Stop()
			return nil
		case tcell.KeyRune:
			switch event.Rune() {
			case ':':
				t.App.SetFocus(t.commandInput)
				return nil
			case 'q':
				t.App.Stop()
				return nil
			}
		}
		return event
	})

	t.App.SetRoot(t.flex, true)
}

// Run starts the dashboard
func (t *App) Run() error {
	// Initial refresh
	t.refreshAll()

	// Start refresh ticker
	go t.refreshTicker()

	// Initial log
	t.AddLog("🎨 Badge Engine starting...", "info")

	return t.App.Run()
}

func (t *App) refreshTicker() {
	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		t.App.QueueUpdateDraw(func() {
			t.refreshAll()
		})
	}
}

func (t *App) refreshAll() {
	t.refreshSessions()
	t.refreshJobs()
	t.refreshStatus()
}

func (t *App) refreshSessions() {
	t.sessionsList.Clear()

	sessions := t.sessions.All()

	if len(sessions) == 0 {
		t.sessionsList.AddItem("No open sessions", "", 0, nil)
		return
	}

	for _, s := range sessions {
		age := time.Since(s.CreatedAt).Truncate(time.Second)
		details := fmt.Sprintf("%d element(s) • %s old", s.Len(), age)

		displayText := fmt.Sprintf("🟢 %s", s.ID)
		t.sessionsList.AddItem(displayText, details, 0, nil)
	}
}

func (t *App) refreshJobs() {
	t.jobsTable.Clear()

	// Header
	t.jobsTable.SetCell(0, 0, tview.NewTableCell("Status").SetAlign(tview.AlignCenter).SetSelectable(false))
	t.jobsTable.SetCell(0, 1, tview.NewTableCell("Session").SetAlign(tview.AlignCenter).SetSelectable(false))
	t.jobsTable.SetCell(0, 2, tview.NewTableCell("Retries").SetAlign(tview.AlignCenter).SetSelectable(false))
	t.jobsTable.SetCell(0, 3, tview.NewTableCell("Time").SetAlign(tview.AlignCenter).SetSelectable(false))

	jobs := t.queue.GetAllJobs()

	// Count stats
	queued := 0
	working := 0
	completed := 0
	failed := 0

	for i, job := range jobs {
		row := i + 1
		statusIcon := getStatusIcon(job.Status)

		t.jobsTable.SetCell(row, 0, tview.NewTableCell(statusIcon+" "+job.Status))
		t.jobsTable.SetCell(row, 1, tview.NewTableCell(job.SessionID))
		t.jobsTable.SetCell(row, 2, tview.NewTableCell(fmt.Sprintf("%d", job.Retries)))

		timeStr := time.Since(job.CreatedAt).Truncate(time.Second).String()
		t.jobsTable.SetCell(row, 3, tview.NewTableCell(timeStr))

		switch job.Status {
		case export.StatusQueued:
			queued++
		case export.StatusRendering, export.StatusSubmitting:
			working++
		case export.StatusCompleted:
			completed++
		case export.StatusFailed:
			failed++
		}
	}

	// Add summary row
	if len(jobs) > 0 {
		summaryRow := len(jobs) + 1
		summary := fmt.Sprintf("[%d] Queued [%d] Working [%d] Completed [%d] Failed",
			queued, working, completed, failed)
		cell := tview.NewTableCell(summary)
		cell.SetSelectable(false)
		t.jobsTable.SetCell(summaryRow, 0, cell)
		t.jobsTable.SetCell(summaryRow, 1, tview.NewTableCell(""))
		t.jobsTable.SetCell(summaryRow, 2, tview.NewTableCell(""))
		t.jobsTable.SetCell(summaryRow, 3, tview.NewTableCell(""))
	}
}

func (t *App) refreshStatus() {
	uptime := time.Since(t.startTime)
	hours := int(uptime.Hours())
	minutes := int(uptime.Minutes()) % 60

	status := fmt.Sprintf(`[green]🟢 Running[white]

Uptime: %dh %dm
API: :%s
Sessions: %d open
Jobs: %d total`, hours, minutes, t.port, t.sessions.Count(), len(t.queue.GetAllJobs()))

	t.statusBox.SetText(status)
}

func (t *App) executeCommand(cmd string) {
	cmd = strings.TrimSpace(cmd)
	if cmd == "" {
		return
	}

	t.AddLog(fmt.Sprintf("> %s", cmd), "command")

	switch strings.ToLower(cmd) {
	case "clear":
		t.logs = make([]string, 0)
		t.logsArea.Clear()
		return
	case "refresh":
		t.AddLog("Refreshing all panels...", "info")
		t.refreshAll()
		return
	case "quit", "q":
		t.App.Stop()
		return
	}

	result := t.executor.Execute(cmd)

	if !result.Success {
		t.AddLog(result.Error, "error")
		return
	}

	if result.Message != "" {
		t.AddLog(result.Message, "info")
	}
	if result.Data != nil {
		if data, err := json.MarshalIndent(result.Data, "", "  "); err == nil {
			t.AddLog(string(data), "info")
		}
	}

	t.refreshAll()
}

// AddLog adds a log entry
func (t *App) AddLog(message string, level string) {
	var color string
	var icon string

	switch level {
	case "error":
		color = "[red]"
		icon = "❌"
	case "warning":
		color = "[yellow]"
		icon = "⚠️"
	case "command":
		color = "[cyan]"
		icon = ">"
	default:
		color = "[white]"
		icon = "ℹ️"
	}

	timeStr := time.Now().Format("15:04:05")
	logEntry := fmt.Sprintf("%s[%s] %s %s[white]\n", color, timeStr, icon, message)

	t.logs = append(t.logs, logEntry)
	if len(t.logs) > t.maxLogs {
		t.logs = t.logs[len(t.logs)-t.maxLogs:]
	}

	// Update logs area
	t.logsArea.Clear()
	for _, log := range t.logs {
		fmt.Fprint(t.logsArea, log)
	}

	// Auto-scroll to bottom
	t.logsArea.ScrollToEnd()
}

func getStatusIcon(status string) string {
	switch status {
	case export.StatusQueued:
		return "⏳"
	case export.StatusRendering, export.StatusSubmitting:
		return "🟡"
	case export.StatusCompleted:
		return "✅"
	case export.StatusFailed:
		return "❌"
	default:
		return "⚪"
	}
}

// LogWriter creates an io.Writer that writes to the logs panel
func (t *App) LogWriter() io.Writer {
	return &logWriter{app: t}
}

type logWriter struct {
	app *App
}

func (w *logWriter) Write(p []byte) (n int, err error) {
	message := strings.TrimSpace(string(p))
	if message != "" {
		w.app.AddLog(message, "info")
	}
	return len(p), nil
}
