// Package export runs the add-to-cart pipeline: rasterize a session's
// design and hand the payload to the cart collaborator, asynchronously
// and with retries.
package export

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sticktoon/badge-engine/internal/cart"
	"github.com/sticktoon/badge-engine/internal/renderer"
	"github.com/sticktoon/badge-engine/internal/session"
)

// Job statuses.
const (
	StatusQueued     = "queued"
	StatusRendering  = "rendering"
	StatusSubmitting = "submitting"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// Submitter delivers a finished item to the cart.
type Submitter interface {
	Submit(ctx context.Context, item cart.Item) error
}

// Job is one export request.
type Job struct {
	ID        string
	SessionID string
	Name      string
	Details   string
	Quantity  int
	Status    string
	Retries   int
	Error     error
	ItemID    string // cart item id once submitted
	CreatedAt time.Time
}

// Queue manages export jobs with retry logic.
type Queue struct {
	jobs       []*Job
	mu         sync.Mutex
	sessions   *session.Manager
	renderer   *renderer.Renderer
	cart       Submitter
	maxRetries int
	ctx        context.Context
	cancel     context.CancelFunc
	wg         sync.WaitGroup
}

// NewQueue creates an export queue and starts its worker.
func NewQueue(sessions *session.Manager, r *renderer.Renderer, cartClient Submitter, maxRetries int) *Queue {
	ctx, cancel := context.WithCancel(context.Background())

	q := &Queue{
		jobs:       make([]*Job, 0),
		sessions:   sessions,
		renderer:   r,
		cart:       cartClient,
		maxRetries: maxRetries,
		ctx:        ctx,
		cancel:     cancel,
	}

	q.wg.Add(1)
	go q.worker()

	return q
}

// Enqueue adds an export job for a session and returns the job ID.
func (q *Queue) Enqueue(sessionID, name, details string, quantity int) string {
	q.mu.Lock()
	defer q.mu.Unlock()

	job := &Job{
		ID:        fmt.Sprintf("job_%d", time.Now().UnixNano()),
		SessionID: sessionID,
		Name:      name,
		Details:   details,
		Quantity:  quantity,
		Status:    StatusQueued,
		CreatedAt: time.Now(),
	}
	q.jobs = append(q.jobs, job)

	return job.ID
}

func (q *Queue) worker() {
	defer q.wg.Done()

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-q.ctx.Done():
			return
		case <-ticker.C:
			q.processNextJob()
		}
	}
}

func (q *Queue) processNextJob() {
	q.mu.Lock()

	var job *Job
	for _, j := range q.jobs {
		if j.Status == StatusQueued {
			job = j
			job.Status = StatusRendering
			break
		}
	}

	q.mu.Unlock()

	if job == nil {
		return
	}

	itemID, err := q.runJob(job)

	q.mu.Lock()
	defer q.mu.Unlock()

	if err != nil {
		job.Retries++
		job.Error = err

		if job.Retries >= q.maxRetries {
			job.Status = StatusFailed
		} else {
			job.Status = StatusQueued
		}
	} else {
		job.Status = StatusCompleted
		job.ItemID = itemID
		job.Error = nil
	}
}

func (q *Queue) runJob(job *Job) (string, error) {
	sess := q.sessions.Get(job.SessionID)
	if sess == nil {
		return "", fmt.Errorf("session not found: %s", job.SessionID)
	}

	design := sess.Design(job.Name)

	dataURL, err := q.renderer.RenderDataURL(q.ctx, design)
	if err != nil {
		return "", fmt.Errorf("failed to render badge: %w", err)
	}

	q.setStatus(job, StatusSubmitting)

	item := cart.NewItem(job.Name, dataURL, job.Details, job.Quantity)
	if err := q.cart.Submit(q.ctx, item); err != nil {
		return "", err
	}

	return item.ID, nil
}

func (q *Queue) setStatus(job *Job, status string) {
	q.mu.Lock()
	job.Status = status
	q.mu.Unlock()
}

// GetJob returns a job by ID, or nil.
func (q *Queue) GetJob(jobID string) *Job {
	q.mu.Lock()
	defer q.mu.Unlock()

	for _, job := range q.jobs {
		if job.ID == jobID {
			jobCopy := *job
			return &jobCopy
		}
	}

	return nil
}

// GetAllJobs returns all jobs.
func (q *Queue) GetAllJobs() []*Job {
	q.mu.Lock()
	defer q.mu.Unlock()

	jobs := make([]*Job, len(q.jobs))
	for i, job := range q.jobs {
		jobCopy := *job
		jobs[i] = &jobCopy
	}

	return jobs
}

// ClearCompleted removes completed jobs from the queue.
func (q *Queue) ClearCompleted() {
	q.mu.Lock()
	defer q.mu.Unlock()

	filtered := make([]*Job, 0)
	for _, job := range q.jobs {
		if job.Status != StatusCompleted {
			filtered = append(filtered, job)
		}
	}

	q.jobs = filtered
}

// Stop stops the queue worker.
func (q *Queue) Stop() {
	q.cancel()
	q.wg.Wait()
}
