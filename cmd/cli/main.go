package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sticktoon/badge-engine/internal/assets"
	"github.com/sticktoon/badge-engine/pkg/badgeformat"
)

const (
	defaultServerURL = "http://localhost:12212"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	headingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func main() {
	var serverURL string
	flag.StringVar(&serverURL, "server", defaultServerURL, "Server URL")
	flag.StringVar(&serverURL, "s", defaultServerURL, "Server URL (short)")
	flag.Parse()

	if flag.NArg() == 0 {
		printUsage()
		os.Exit(1)
	}

	args := flag.Args()

	// Check for a --compose flag: build a temporary design file from the
	// element arguments and substitute it into the command
	var command string
	var tempFile string
	var err error

	composeIndex := -1
	for i, arg := range args {
		if arg == "--compose" {
			composeIndex = i
			break
		}
	}

	if composeIndex >= 0 {
		composeArgs := args[composeIndex+1:]
		tempFile, err = createComposedDesign(composeArgs)
		if err != nil {
			fmt.Fprintln(os.Stderr, errorStyle.Render(fmt.Sprintf("Error composing design: %v", err)))
			os.Exit(1)
		}
		defer os.Remove(tempFile) // Clean up temp file

		// Reconstruct command with temp file path instead of --compose args
		newArgs := append(args[:composeIndex], tempFile)
		newArgs = append(newArgs, composeOutputArgs(composeArgs)...)
		command = strings.Join(quoteArgs(newArgs), " ")
	} else {
		command = strings.Join(quoteArgs(args), " ")
	}

	result := executeCommand(serverURL, command)

	if result.Success {
		printSuccess(result)
		os.Exit(0)
	} else {
		printError(result)
		os.Exit(1)
	}
}

// quoteArgs re-quotes arguments containing spaces so the server-side
// command parser sees them as single tokens.
func quoteArgs(args []string) []string {
	quoted := make([]string, len(args))
	for i, arg := range args {
		if strings.Contains(arg, " ") {
			quoted[i] = `"` + arg + `"`
		} else {
			quoted[i] = arg
		}
	}
	return quoted
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `StickToon Badge Engine CLI

Usage:
  badge-cli [flags] <command>

Flags:
  -s, -server <url>    Server URL (default: %s)

Commands:
  render <design-path> <output.png>
    Rasterize a badge design to a PNG file

  render --compose <elements...> --out <output.png>
    Compose a design from command-line arguments and render it
    Compose elements:
      text:"Hello World"              - Text element
      text:"Hi" x:100 y:200           - Text with explicit position
      qr:https://example.com          - QR code element
      image:./logo.png                - Image element
      bg:#FF0000                      - Canvas background color

  validate <design-path>
    Check a badge design file against the schema

  session list | open | close <id> | show <id>
    Manage editing sessions

  design list | save <session-id> <name> | load <design-id> | rename <id> <name> | remove <id>
    Manage saved designs

  export <session-id> <name> [quantity]
    Queue a session's design for the cart

  job list | status <id> | clear
    Inspect export jobs

  help
    Show help message

Examples:
  badge-cli render ./party.badge out.png
  badge-cli render --compose text:"Happy 30th!" bg:#FFD700 --out out.png
  badge-cli validate ./party.badge
  badge-cli design save session-123 "Birthday badge"
  badge-cli export session-123 "Birthday badge" 10
  badge-cli -s http://localhost:8080 session list

`, defaultServerURL)
}

type CommandResult struct {
	Success bool                   `json:"success"`
	Message string                 `json:"message,omitempty"`
	Data    map[string]interface{} `json:"data,omitempty"`
	Error   string                 `json:"error,omitempty"`
}

func executeCommand(serverURL, command string) *CommandResult {
	url := strings.TrimSuffix(serverURL, "/") + "/command"

	reqBody := map[string]string{
		"command": command,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return &CommandResult{
			Success: false,
			Error:   fmt.Sprintf("failed to marshal request: %v", err),
		}
	}

	resp, err := http.Post(url, "application/json", strings.NewReader(string(jsonData)))
	if err != nil {
		return &CommandResult{
			Success: false,
			Error:   fmt.Sprintf("failed to connect to server: %v", err),
		}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &CommandResult{
			Success: false,
			Error:   fmt.Sprintf("failed to read response: %v", err),
		}
	}

	var result CommandResult
	if err := json.Unmarshal(body, &result); err != nil {
		return &CommandResult{
			Success: false,
			Error:   fmt.Sprintf("failed to parse response: %v", err),
		}
	}

	// The server flattens Data into the response object
	var flat map[string]interface{}
	if err := json.Unmarshal(body, &flat); err == nil && result.Data == nil {
		delete(flat, "success")
		delete(flat, "message")
		delete(flat, "error")
		if len(flat) > 0 {
			result.Data = flat
		}
	}

	return &result
}

func printSuccess(result *CommandResult) {
	if result.Message != "" {
		fmt.Println(successStyle.Render(result.Message))
	}

	if result.Data != nil {
		// Pretty print data
		if sessions, ok := result.Data["sessions"].([]interface{}); ok {
			fmt.Println(headingStyle.Render("\nSessions:"))
			for _, s := range sessions {
				if sess, ok := s.(map[string]interface{}); ok {
					fmt.Printf("  %s: %v element(s)\n", sess["id"], sess["elements"])
				}
			}
		}

		if designs, ok := result.Data["designs"].([]interface{}); ok {
			fmt.Println(headingStyle.Render("\nDesigns:"))
			for _, d := range designs {
				if design, ok := d.(map[string]interface{}); ok {
					fmt.Printf("  %s: %s (%v element(s))\n",
						design["id"], design["name"], design["elements"])
				}
			}
		}

		if jobs, ok := result.Data["jobs"].([]interface{}); ok {
			fmt.Println(headingStyle.Render("\nJobs:"))
			for _, j := range jobs {
				if job, ok := j.(map[string]interface{}); ok {
					fmt.Printf("  %s: %s (session: %s)\n",
						job["id"], job["status"], job["session_id"])
				}
			}
		}

		if jobID, ok := result.Data["job_id"].(string); ok {
			fmt.Printf("Job ID: %s\n", jobID)
		}

		if sessionID, ok := result.Data["session_id"].(string); ok {
			fmt.Printf("Session ID: %s\n", sessionID)
		}

		if designID, ok := result.Data["design_id"].(string); ok {
			fmt.Printf("Design ID: %s\n", designID)
		}

		if output, ok := result.Data["output"].(string); ok {
			fmt.Printf("Output: %s\n", dimStyle.Render(output))
		}
	}
}

func printError(result *CommandResult) {
	if result.Error != "" {
		fmt.Fprintln(os.Stderr, errorStyle.Render("Error: "+result.Error))
	} else if result.Message != "" {
		fmt.Fprintln(os.Stderr, errorStyle.Render(result.Message))
	}
}

// composeOutputArgs extracts the value of the --out flag from compose args.
func composeOutputArgs(composeArgs []string) []string {
	for i, arg := range composeArgs {
		if arg == "--out" && i+1 < len(composeArgs) {
			return []string{composeArgs[i+1]}
		}
	}
	return nil
}

// createComposedDesign parses compose arguments and creates a temporary design file.
// Each element starts with a typed argument (text:, qr:, image:, bg:) and can be
// followed by position and size properties (x:, y:, width:, height:, rotation:).
func createComposedDesign(composeArgs []string) (string, error) {
	if len(composeArgs) == 0 {
		return "", fmt.Errorf("no compose arguments provided")
	}

	design := &badgeformat.Design{
		Version:     "1.0",
		CreatedWith: "badge-cli",
	}

	var current *badgeformat.Element

	flush := func() {
		if current != nil {
			design.Elements = append(design.Elements, *current)
			current = nil
		}
	}

	for i := 0; i < len(composeArgs); i++ {
		arg := composeArgs[i]

		if arg == "--out" {
			i++ // skip the output path, it is not part of the design
			continue
		}

		colonIndex := strings.Index(arg, ":")
		if colonIndex == -1 {
			return "", fmt.Errorf("expected 'name:value', got: %s", arg)
		}

		name := arg[:colonIndex]
		value := strings.Trim(arg[colonIndex+1:], `"'`)

		switch name {
		case "text":
			flush()
			current = newComposedElement(len(design.Elements), badgeformat.TypeText, value)
		case "image":
			flush()
			current = newComposedElement(len(design.Elements), badgeformat.TypeImage, value)
		case "qr":
			flush()
			url := assets.QRImageURL(assets.QRParams{
				Data:       value,
				Foreground: "#000000",
				Background: badgeformat.BackgroundTransparent,
				Size:       200,
			})
			current = newComposedElement(len(design.Elements), badgeformat.TypeQR, url)
		case "bg":
			flush()
			design.Background = value
		case "x", "y", "width", "height", "rotation":
			if current == nil {
				return "", fmt.Errorf("property '%s' must follow an element", arg)
			}
			num, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return "", fmt.Errorf("invalid number in '%s'", arg)
			}
			switch name {
			case "x":
				current.X = num
			case "y":
				current.Y = num
			case "width":
				current.Width = num
			case "height":
				current.Height = num
			case "rotation":
				current.Rotation = num
			}
		default:
			return "", fmt.Errorf("unknown compose argument: %s", arg)
		}
	}

	flush()

	if len(design.Elements) == 0 {
		return "", fmt.Errorf("composed design has no elements")
	}

	// Create temporary file
	tmpFile, err := os.CreateTemp("", "badge-composed-*.badge")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %v", err)
	}
	defer tmpFile.Close()

	// Write JSON to file
	encoder := json.NewEncoder(tmpFile)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(design); err != nil {
		os.Remove(tmpFile.Name())
		return "", fmt.Errorf("failed to write design JSON: %v", err)
	}

	return tmpFile.Name(), nil
}

// newComposedElement builds an element with the same default geometry the
// editor uses when placing a new element.
func newComposedElement(index int, elementType, content string) *badgeformat.Element {
	half := float64(badgeformat.CanvasSize) / 2

	el := &badgeformat.Element{
		ID:      fmt.Sprintf("el-%d", index+1),
		Type:    elementType,
		Content: content,
		ZIndex:  index,
	}

	switch elementType {
	case badgeformat.TypeText:
		el.Width, el.Height = 100, 40
		el.X, el.Y = half-50, half-20
	case badgeformat.TypeQR:
		el.Width, el.Height = 200, 200
		el.X, el.Y = half-100, half-100
	case badgeformat.TypeImage:
		el.Width, el.Height = float64(badgeformat.CanvasSize), float64(badgeformat.CanvasSize)
	}

	return el
}
