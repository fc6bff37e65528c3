package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	"github.com/sticktoon/badge-engine/internal/api"
	"github.com/sticktoon/badge-engine/internal/assets"
	"github.com/sticktoon/badge-engine/internal/cart"
	"github.com/sticktoon/badge-engine/internal/command"
	"github.com/sticktoon/badge-engine/internal/export"
	"github.com/sticktoon/badge-engine/internal/registry"
	"github.com/sticktoon/badge-engine/internal/renderer"
	"github.com/sticktoon/badge-engine/internal/session"
	"github.com/sticktoon/badge-engine/internal/tui"
)

// Version is set during build via ldflags
var Version = "dev"

func main() {
	port := getPort()
	registryPath := getRegistryPath()

	// Initialize design registry
	reg, err := registry.New(registryPath)
	if err != nil {
		log.Fatalf("Failed to create design registry: %v", err)
	}

	// Optional AI image generation backend
	var generator assets.Generator
	if endpoint := os.Getenv("GENERATOR_ENDPOINT"); endpoint != "" {
		generator = assets.NewHTTPGenerator(endpoint)
	}

	// Session manager
	sessions := session.NewManager(generator)

	// Rasterizer with remote asset resolution
	r := renderer.New(assets.NewResolver())

	// Cart collaborator
	cartClient := cart.NewClient(getCartEndpoint())

	// Create export queue with 3 retries
	queue := export.NewQueue(sessions, r, cartClient, 3)
	defer queue.Stop()

	executor := command.NewExecutor(sessions, reg, queue, r)

	// Create TUI app (using tview)
	tuiApp := tui.NewApp(sessions, queue, executor, port)

	// Set up log capture to TUI
	logWriter := tuiApp.LogWriter()
	log.SetOutput(io.MultiWriter(os.Stderr, logWriter))

	// Create API server
	server := api.NewServer(sessions, reg, queue, r)

	// Set up session event callbacks to log to TUI and notify WS clients
	sessions.OnSessionOpened(func(s *session.Session) {
		tuiApp.AddLog(fmt.Sprintf("🟢 Session opened: %s", s.ID), "info")
		server.BroadcastSessionOpened(s)
	})

	sessions.OnSessionClosed(func(id string) {
		tuiApp.AddLog(fmt.Sprintf("🔴 Session closed: %s", id), "info")
		server.BroadcastSessionClosed(id)
	})

	// Start server in goroutine
	serverErrChan := make(chan error, 1)
	go func() {
		addr := fmt.Sprintf("0.0.0.0:%s", port)
		tuiApp.AddLog(fmt.Sprintf("🚀 Starting API server on %s", addr), "info")
		if err := server.Run(addr); err != nil {
			serverErrChan <- err
		}
	}()

	// Start TUI
	tuiApp.AddLog("🎨 Badge Engine starting...", "info")
	if saved := len(reg.All()); saved > 0 {
		tuiApp.AddLog(fmt.Sprintf("✅ Loaded %d saved design(s)", saved), "info")
	}

	// Set up signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Run TUI (blocking)
	tuiDone := make(chan struct{})
	go func() {
		if err := tuiApp.Run(); err != nil {
			log.Printf("TUI error: %v", err)
		}
		close(tuiDone)
	}()

	// Wait for either TUI to quit, server error, or signal
	select {
	case err := <-serverErrChan:
		log.Fatalf("Server error: %v", err)
	case <-sigChan:
		// Signal received, shutdown gracefully
		tuiApp.AddLog("🛑 Shutting down...", "info")
		os.Exit(0)
	case <-tuiDone:
		// TUI quit, shutdown gracefully
		os.Exit(0)
	}
}

func getPort() string {
	if port := os.Getenv("SERVER_PORT"); port != "" {
		return port
	}

	// Check command line args
	for i, arg := range os.Args {
		if arg == "--port" && i+1 < len(os.Args) {
			return os.Args[i+1]
		}
	}

	return "12212"
}

func getCartEndpoint() string {
	if endpoint := os.Getenv("CART_ENDPOINT"); endpoint != "" {
		return endpoint
	}
	return "http://localhost:3000/api/cart"
}

// getRegistryPath returns the path to the design registry file.
// It tries to place it next to the executable, or falls back to current directory.
func getRegistryPath() string {
	if path := os.Getenv("DESIGN_REGISTRY"); path != "" {
		return path
	}

	// First, try to get the executable path and place registry next to it
	if exePath, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exePath)
		registryPath := filepath.Join(exeDir, "design_registry.json")

		// Check if we can write to the executable directory
		if testDir := exeDir; testDir != "" {
			if info, err := os.Stat(testDir); err == nil && info.IsDir() {
				// Try to create a test file to check write permissions
				testFile := filepath.Join(testDir, ".badge-engine-write-test")
				if f, err := os.Create(testFile); err == nil {
					f.Close()
					os.Remove(testFile)
					return registryPath
				}
			}
		}
	}

	// Fallback: use current directory
	if wd, err := os.Getwd(); err == nil {
		return filepath.Join(wd, "design_registry.json")
	}

	// Last resort: use home directory config (Unix) or AppData (Windows)
	var configDir string
	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			configDir = filepath.Join(appData, "badge-engine")
		} else {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "badge-engine")
		}
	} else {
		// Unix-like systems
		if home := os.Getenv("HOME"); home != "" {
			configDir = filepath.Join(home, ".config", "badge-engine")
		}
	}

	if configDir != "" {
		// Create directory if it doesn't exist
		os.MkdirAll(configDir, 0755)
		return filepath.Join(configDir, "design_registry.json")
	}

	// Absolute last resort: current directory (shouldn't reach here)
	return "design_registry.json"
}
