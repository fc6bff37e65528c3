// Package api handles HTTP and WebSocket API endpoints
package api

import (
	"bytes"
	"fmt"
	"image/png"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sticktoon/badge-engine/internal/command"
	"github.com/sticktoon/badge-engine/internal/export"
	"github.com/sticktoon/badge-engine/internal/registry"
	"github.com/sticktoon/badge-engine/internal/renderer"
	"github.com/sticktoon/badge-engine/internal/session"
	"github.com/sticktoon/badge-engine/internal/template"
	"github.com/sticktoon/badge-engine/pkg/badgeformat"
)

// Server is the API server
type Server struct {
	router   *gin.Engine
	sessions *session.Manager
	registry *registry.Registry
	queue    *export.Queue
	renderer *renderer.Renderer
	executor *command.Executor
	upgrader websocket.Upgrader
}

// NewServer creates a new API server
func NewServer(sessions *session.Manager, reg *registry.Registry, queue *export.Queue, r *renderer.Renderer) *Server {
	// Set Gin to release mode
	gin.SetMode(gin.ReleaseMode)

	router := gin.Default()

	// CORS middleware
	router.Use(corsMiddleware())

	server := &Server{
		router:   router,
		sessions: sessions,
		registry: reg,
		queue:    queue,
		renderer: r,
		executor: command.NewExecutor(sessions, reg, queue, r),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // Allow all origins
			},
		},
	}

	server.setupRoutes()

	return server
}

func (s *Server) setupRoutes() {
	// Sessions
	s.router.GET("/sessions", s.handleGetSessions)
	s.router.POST("/sessions", s.handleOpenSession)
	s.router.GET("/session/:id", s.handleGetSession)
	s.router.DELETE("/session/:id", s.handleCloseSession)

	// Element operations
	s.router.POST("/session/:id/text", s.handleAddText)
	s.router.POST("/session/:id/image", s.handleAddImage)
	s.router.POST("/session/:id/qr", s.handleAddQR)
	s.router.POST("/session/:id/generate", s.handleGenerate)
	s.router.POST("/session/:id/select", s.handleSelect)
	s.router.DELETE("/session/:id/selected", s.handleDeleteSelected)
	s.router.POST("/session/:id/center", s.handleCenter)
	s.router.POST("/session/:id/scale", s.handleScale)
	s.router.POST("/session/:id/layer", s.handleLayer)
	s.router.POST("/session/:id/background", s.handleSetBackground)
	s.router.POST("/session/:id/zoom", s.handleZoom)

	// Canvas operations
	s.router.POST("/session/:id/clear", s.handleClear)
	s.router.POST("/session/:id/reset", s.handleReset)
	s.router.POST("/session/:id/undo", s.handleUndo)
	s.router.POST("/session/:id/redo", s.handleRedo)

	// Rendering
	s.router.GET("/session/:id/render", s.handleRenderSession)
	s.router.GET("/session/:id/preview", s.handlePreviewSession)
	s.router.GET("/session/:id/proof", s.handleProofSession)
	s.router.POST("/render", s.handleRenderDesign)
	s.router.POST("/render/batch", s.handleRenderBatch)

	// Cart export
	s.router.POST("/session/:id/cart", s.handleAddToCart)
	s.router.GET("/jobs", s.handleGetJobs)
	s.router.GET("/job/:id", s.handleGetJob)

	// Design registry
	s.router.GET("/designs", s.handleGetDesigns)
	s.router.POST("/designs", s.handleSaveDesign)
	s.router.GET("/design/:id", s.handleGetDesign)
	s.router.POST("/design/:id/name", s.handleSetDesignName)
	s.router.POST("/design/:id/session", s.handleOpenFromDesign)
	s.router.DELETE("/design/:id", s.handleRemoveDesign)

	// Command endpoint
	s.router.POST("/command", s.handleCommand)

	// WebSocket
	s.router.GET("/ws", s.handleWebSocket)

	// Health check
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
}

// session returns the session for the :id route param, or writes a 404.
func (s *Server) session(c *gin.Context) *session.Session {
	sess := s.sessions.Get(c.Param("id"))
	if sess == nil {
		c.JSON(404, gin.H{"error": "session not found"})
		return nil
	}
	return sess
}

// sessionState is the JSON shape of a session returned by state-changing handlers.
func sessionState(sess *session.Session) gin.H {
	return gin.H{
		"session_id": sess.ID,
		"background": sess.Background(),
		"selected":   sess.SelectedID(),
		"zoom":       sess.Zoom(),
		"elements":   sess.Elements(),
	}
}

// handleGetSessions returns all open sessions
func (s *Server) handleGetSessions(c *gin.Context) {
	sessions := s.sessions.All()

	sessionList := make([]gin.H, len(sessions))
	for i, sess := range sessions {
		sessionList[i] = gin.H{
			"id":         sess.ID,
			"elements":   sess.Len(),
			"created_at": sess.CreatedAt,
		}
	}

	c.JSON(200, gin.H{"sessions": sessionList})
}

// handleOpenSession opens a new editing session, optionally from a design
func (s *Server) handleOpenSession(c *gin.Context) {
	var req struct {
		DesignID string              `json:"design_id"`
		Design   *badgeformat.Design `json:"design"`
	}

	// Body is optional, a blank session needs neither field
	_ = c.ShouldBindJSON(&req)

	var sess *session.Session

	switch {
	case req.DesignID != "":
		entry := s.registry.Get(req.DesignID)
		if entry == nil {
			c.JSON(404, gin.H{"error": "design not found"})
			return
		}
		sess = s.sessions.OpenFromDesign(entry.Design)
	case req.Design != nil:
		if err := badgeformat.Validate(req.Design); err != nil {
			c.JSON(400, gin.H{"error": fmt.Sprintf("invalid design: %v", err)})
			return
		}
		sess = s.sessions.OpenFromDesign(req.Design)
	default:
		sess = s.sessions.Open()
	}

	c.JSON(200, sessionState(sess))
}

// handleGetSession returns the full state of a session
func (s *Server) handleGetSession(c *gin.Context) {
	sess := s.session(c)
	if sess == nil {
		return
	}

	state := sessionState(sess)
	state["undo_depth"] = sess.UndoDepth()
	state["created_at"] = sess.CreatedAt

	c.JSON(200, state)
}

// handleCloseSession closes a session
func (s *Server) handleCloseSession(c *gin.Context) {
	if !s.sessions.Close(c.Param("id")) {
		c.JSON(404, gin.H{"error": "session not found"})
		return
	}

	c.JSON(200, gin.H{"success": true})
}

// handleAddText adds a text element to a session
func (s *Server) handleAddText(c *gin.Context) {
	sess := s.session(c)
	if sess == nil {
		return
	}

	var req struct {
		Content string `json:"content" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "content is required"})
		return
	}

	el, ok := sess.AddText(req.Content)
	if !ok {
		c.JSON(400, gin.H{"error": "content must not be blank"})
		return
	}

	c.JSON(200, gin.H{"element": el, "state": sessionState(sess)})
}

// handleAddImage adds an image element to a session
func (s *Server) handleAddImage(c *gin.Context) {
	sess := s.session(c)
	if sess == nil {
		return
	}

	var req struct {
		Content string `json:"content" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "content is required"})
		return
	}

	el, ok := sess.AddImage(req.Content)
	if !ok {
		c.JSON(400, gin.H{"error": "image reference must not be blank"})
		return
	}

	c.JSON(200, gin.H{"element": el, "state": sessionState(sess)})
}

// handleAddQR adds a QR code element to a session
func (s *Server) handleAddQR(c *gin.Context) {
	sess := s.session(c)
	if sess == nil {
		return
	}

	var req struct {
		Destination string `json:"destination" binding:"required"`
		Foreground  string `json:"foreground"`
		Background  string `json:"background"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "destination is required"})
		return
	}

	if req.Foreground == "" {
		req.Foreground = "#000000"
	}
	if req.Background == "" {
		req.Background = badgeformat.BackgroundTransparent
	}

	el, ok := sess.AddQR(req.Destination, req.Foreground, req.Background)
	if !ok {
		c.JSON(400, gin.H{"error": "destination must not be blank"})
		return
	}

	c.JSON(200, gin.H{"element": el, "state": sessionState(sess)})
}

// handleGenerate requests an AI-generated image for a session
func (s *Server) handleGenerate(c *gin.Context) {
	sess := s.session(c)
	if sess == nil {
		return
	}

	var req struct {
		Prompt string `json:"prompt" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "prompt is required"})
		return
	}

	el, err := sess.Generate(c.Request.Context(), req.Prompt)
	if err == session.ErrGenerationBusy {
		c.JSON(409, gin.H{"error": "a generation is already in progress"})
		return
	}
	if err != nil {
		c.JSON(502, gin.H{"error": fmt.Sprintf("generation failed: %v", err)})
		return
	}

	c.JSON(200, gin.H{"element": el, "state": sessionState(sess)})
}

// handleSelect selects an element (or deselects with an empty id)
func (s *Server) handleSelect(c *gin.Context) {
	sess := s.session(c)
	if sess == nil {
		return
	}

	var req struct {
		ElementID string `json:"element_id"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	sess.Select(req.ElementID)

	c.JSON(200, sessionState(sess))
}

// handleDeleteSelected removes the selected element
func (s *Server) handleDeleteSelected(c *gin.Context) {
	sess := s.session(c)
	if sess == nil {
		return
	}

	if !sess.DeleteSelected() {
		c.JSON(400, gin.H{"error": "no element selected"})
		return
	}

	c.JSON(200, sessionState(sess))
}

// handleCenter centers the selected element on the canvas
func (s *Server) handleCenter(c *gin.Context) {
	sess := s.session(c)
	if sess == nil {
		return
	}

	var req struct {
		Horizontal bool `json:"horizontal"`
		Vertical   bool `json:"vertical"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	if !sess.CenterSelected(req.Horizontal, req.Vertical) {
		c.JSON(400, gin.H{"error": "no element selected"})
		return
	}

	c.JSON(200, sessionState(sess))
}

// handleScale scales the selected element keeping its aspect ratio
func (s *Server) handleScale(c *gin.Context) {
	sess := s.session(c)
	if sess == nil {
		return
	}

	var req struct {
		Delta float64 `json:"delta" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "delta is required"})
		return
	}

	if !sess.ScaleSelected(req.Delta) {
		c.JSON(400, gin.H{"error": "no element selected"})
		return
	}

	c.JSON(200, sessionState(sess))
}

// handleLayer moves the selected element one layer up or down
func (s *Server) handleLayer(c *gin.Context) {
	sess := s.session(c)
	if sess == nil {
		return
	}

	var req struct {
		Direction string `json:"direction" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "direction is required"})
		return
	}

	switch req.Direction {
	case "up":
		sess.BringUpSelected()
	case "down":
		sess.SendDownSelected()
	default:
		c.JSON(400, gin.H{"error": "direction must be 'up' or 'down'"})
		return
	}

	c.JSON(200, sessionState(sess))
}

// handleSetBackground sets the canvas background color
func (s *Server) handleSetBackground(c *gin.Context) {
	sess := s.session(c)
	if sess == nil {
		return
	}

	var req struct {
		Value string `json:"value" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "value is required"})
		return
	}

	sess.SetBackground(req.Value)

	c.JSON(200, sessionState(sess))
}

// handleZoom steps the session zoom in or out
func (s *Server) handleZoom(c *gin.Context) {
	sess := s.session(c)
	if sess == nil {
		return
	}

	var req struct {
		Direction string `json:"direction" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "direction is required"})
		return
	}

	var zoom float64
	switch req.Direction {
	case "in":
		zoom = sess.Wheel(true)
	case "out":
		zoom = sess.Wheel(false)
	default:
		c.JSON(400, gin.H{"error": "direction must be 'in' or 'out'"})
		return
	}

	c.JSON(200, gin.H{"zoom": zoom})
}

// handleClear clears the canvas, gated on explicit confirmation
func (s *Server) handleClear(c *gin.Context) {
	sess := s.session(c)
	if sess == nil {
		return
	}

	var req struct {
		Confirmed bool `json:"confirmed"`
	}

	_ = c.ShouldBindJSON(&req)

	cleared := sess.Clear(req.Confirmed)

	c.JSON(200, gin.H{"cleared": cleared, "state": sessionState(sess)})
}

// handleReset clears the canvas without a confirmation gate
func (s *Server) handleReset(c *gin.Context) {
	sess := s.session(c)
	if sess == nil {
		return
	}

	sess.Reset()

	c.JSON(200, sessionState(sess))
}

// handleUndo undoes the latest canvas change
func (s *Server) handleUndo(c *gin.Context) {
	sess := s.session(c)
	if sess == nil {
		return
	}

	ok := sess.Undo()

	c.JSON(200, gin.H{"undone": ok, "state": sessionState(sess)})
}

// handleRedo reapplies the latest undone change
func (s *Server) handleRedo(c *gin.Context) {
	sess := s.session(c)
	if sess == nil {
		return
	}

	ok := sess.Redo()

	c.JSON(200, gin.H{"redone": ok, "state": sessionState(sess)})
}

// handleRenderSession rasterizes a session at print resolution
func (s *Server) handleRenderSession(c *gin.Context) {
	sess := s.session(c)
	if sess == nil {
		return
	}

	img, err := s.renderer.Render(c.Request.Context(), sess.Design(""))
	if err != nil {
		c.JSON(500, gin.H{"error": fmt.Sprintf("failed to render badge: %v", err)})
		return
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		c.JSON(500, gin.H{"error": fmt.Sprintf("failed to encode PNG: %v", err)})
		return
	}

	c.Data(200, "image/png", buf.Bytes())
}

// handlePreviewSession rasterizes a session at display resolution
func (s *Server) handlePreviewSession(c *gin.Context) {
	sess := s.session(c)
	if sess == nil {
		return
	}

	zoom := sess.Zoom()
	if q := c.Query("zoom"); q != "" {
		parsed, err := strconv.ParseFloat(q, 64)
		if err != nil {
			c.JSON(400, gin.H{"error": "invalid zoom"})
			return
		}
		zoom = parsed
	}

	img, err := s.renderer.RenderPreview(c.Request.Context(), sess.Design(""), zoom)
	if err != nil {
		c.JSON(500, gin.H{"error": fmt.Sprintf("failed to render preview: %v", err)})
		return
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		c.JSON(500, gin.H{"error": fmt.Sprintf("failed to encode PNG: %v", err)})
		return
	}

	c.Data(200, "image/png", buf.Bytes())
}

// handleProofSession renders a print-shop proof sheet for a session,
// with trim marks and a reference barcode
func (s *Server) handleProofSession(c *gin.Context) {
	sess := s.session(c)
	if sess == nil {
		return
	}

	name := c.Query("name")

	img, err := s.renderer.ProofSheet(c.Request.Context(), sess.Design(name), sess.ID)
	if err != nil {
		c.JSON(500, gin.H{"error": fmt.Sprintf("failed to render proof sheet: %v", err)})
		return
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		c.JSON(500, gin.H{"error": fmt.Sprintf("failed to encode PNG: %v", err)})
		return
	}

	c.Data(200, "image/png", buf.Bytes())
}

// handleRenderDesign rasterizes a design sent in the request body,
// expanding template variables when values are provided
func (s *Server) handleRenderDesign(c *gin.Context) {
	var req struct {
		Design *badgeformat.Design `json:"design" binding:"required"`
		Values map[string]string   `json:"values"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "design is required"})
		return
	}

	if err := badgeformat.Validate(req.Design); err != nil {
		c.JSON(400, gin.H{"error": fmt.Sprintf("invalid design: %v", err)})
		return
	}

	design := template.Expand(req.Design, req.Values)

	img, err := s.renderer.Render(c.Request.Context(), design)
	if err != nil {
		c.JSON(500, gin.H{"error": fmt.Sprintf("failed to render badge: %v", err)})
		return
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		c.JSON(500, gin.H{"error": fmt.Sprintf("failed to encode PNG: %v", err)})
		return
	}

	c.Data(200, "image/png", buf.Bytes())
}

// handleRenderBatch rasterizes one badge per value set, for
// personalized runs of the same design
func (s *Server) handleRenderBatch(c *gin.Context) {
	var req struct {
		Design    *badgeformat.Design `json:"design" binding:"required"`
		ValueSets []map[string]string `json:"value_sets" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "design and value_sets are required"})
		return
	}

	if err := badgeformat.Validate(req.Design); err != nil {
		c.JSON(400, gin.H{"error": fmt.Sprintf("invalid design: %v", err)})
		return
	}

	designs := template.ExpandBatch(req.Design, req.ValueSets)

	badges := make([]gin.H, len(designs))
	for i, design := range designs {
		dataURL, err := s.renderer.RenderDataURL(c.Request.Context(), design)
		if err != nil {
			c.JSON(500, gin.H{"error": fmt.Sprintf("failed to render badge %d: %v", i+1, err)})
			return
		}
		badges[i] = gin.H{
			"name":  design.Name,
			"image": dataURL,
		}
	}

	c.JSON(200, gin.H{"badges": badges})
}

// handleAddToCart queues a session's design for cart submission
func (s *Server) handleAddToCart(c *gin.Context) {
	sess := s.session(c)
	if sess == nil {
		return
	}

	var req struct {
		Name     string `json:"name"`
		Details  string `json:"details"`
		Quantity int    `json:"quantity"`
	}

	_ = c.ShouldBindJSON(&req)

	jobID := s.queue.Enqueue(sess.ID, req.Name, req.Details, req.Quantity)

	c.JSON(200, gin.H{
		"success": true,
		"job_id":  jobID,
	})
}

// handleGetJobs returns all export jobs
func (s *Server) handleGetJobs(c *gin.Context) {
	jobs := s.queue.GetAllJobs()

	// Convert to JSON-safe format
	jobsData := make([]map[string]interface{}, len(jobs))
	for i, job := range jobs {
		jobsData[i] = jobJSON(job)
	}

	c.JSON(200, gin.H{"jobs": jobsData})
}

// handleGetJob returns a specific export job
func (s *Server) handleGetJob(c *gin.Context) {
	job := s.queue.GetJob(c.Param("id"))
	if job == nil {
		c.JSON(404, gin.H{"error": "job not found"})
		return
	}

	c.JSON(200, jobJSON(job))
}

func jobJSON(job *export.Job) map[string]interface{} {
	data := map[string]interface{}{
		"id":         job.ID,
		"session_id": job.SessionID,
		"status":     job.Status,
		"retries":    job.Retries,
		"created_at": job.CreatedAt,
	}
	if job.Error != nil {
		data["error"] = job.Error.Error()
	}
	if job.ItemID != "" {
		data["item_id"] = job.ItemID
	}
	return data
}

// handleGetDesigns returns all saved designs
func (s *Server) handleGetDesigns(c *gin.Context) {
	entries := s.registry.All()

	designList := make([]gin.H, len(entries))
	for i, entry := range entries {
		designList[i] = gin.H{
			"id":         entry.ID,
			"name":       entry.Name,
			"elements":   len(entry.Design.Elements),
			"created_at": entry.CreatedAt,
			"updated_at": entry.UpdatedAt,
		}
	}

	c.JSON(200, gin.H{"designs": designList})
}

// handleSaveDesign saves a session's current design to the registry
func (s *Server) handleSaveDesign(c *gin.Context) {
	var req struct {
		SessionID string `json:"session_id" binding:"required"`
		Name      string `json:"name"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "session_id is required"})
		return
	}

	sess := s.sessions.Get(req.SessionID)
	if sess == nil {
		c.JSON(404, gin.H{"error": "session not found"})
		return
	}

	designID, err := s.registry.Save(sess.Design(req.Name))
	if err != nil {
		c.JSON(400, gin.H{"error": fmt.Sprintf("failed to save design: %v", err)})
		return
	}

	c.JSON(200, gin.H{
		"success":   true,
		"design_id": designID,
	})
}

// handleGetDesign returns a saved design
func (s *Server) handleGetDesign(c *gin.Context) {
	entry := s.registry.Get(c.Param("id"))
	if entry == nil {
		c.JSON(404, gin.H{"error": "design not found"})
		return
	}

	c.JSON(200, gin.H{
		"id":         entry.ID,
		"name":       entry.Name,
		"design":     entry.Design,
		"created_at": entry.CreatedAt,
		"updated_at": entry.UpdatedAt,
	})
}

// handleSetDesignName renames a saved design
func (s *Server) handleSetDesignName(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "name is required"})
		return
	}

	if !s.registry.SetName(c.Param("id"), req.Name) {
		c.JSON(404, gin.H{"error": "design not found"})
		return
	}

	c.JSON(200, gin.H{"success": true})
}

// handleOpenFromDesign opens a new session seeded from a saved design
func (s *Server) handleOpenFromDesign(c *gin.Context) {
	entry := s.registry.Get(c.Param("id"))
	if entry == nil {
		c.JSON(404, gin.H{"error": "design not found"})
		return
	}

	sess := s.sessions.OpenFromDesign(entry.Design)

	c.JSON(200, sessionState(sess))
}

// handleRemoveDesign deletes a saved design
func (s *Server) handleRemoveDesign(c *gin.Context) {
	if !s.registry.Remove(c.Param("id")) {
		c.JSON(404, gin.H{"error": "design not found"})
		return
	}

	c.JSON(200, gin.H{"success": true})
}

// handleCommand handles command execution requests
func (s *Server) handleCommand(c *gin.Context) {
	var req struct {
		Command string `json:"command" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "command is required"})
		return
	}

	result := s.executor.Execute(req.Command)

	if result.Success {
		statusCode := 200
		response := gin.H{
			"success": true,
		}
		if result.Message != "" {
			response["message"] = result.Message
		}
		if result.Data != nil {
			for k, v := range result.Data {
				response[k] = v
			}
		}
		c.JSON(statusCode, response)
	} else {
		c.JSON(400, gin.H{
			"success": false,
			"error":   result.Error,
		})
	}
}

// Run starts the API server
func (s *Server) Run(addr string) error {
	// Server started - log will be handled by caller
	return s.router.Run(addr)
}

// Router exposes the underlying gin engine, used by tests.
func (s *Server) Router() http.Handler {
	return s.router
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
