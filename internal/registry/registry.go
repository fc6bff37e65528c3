// Package registry manages persistent saved designs and custom names
package registry

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sticktoon/badge-engine/pkg/badgeformat"
)

// Registry stores saved badge designs on disk.
type Registry struct {
	filePath string
	data     map[string]*DesignEntry
	mu       sync.RWMutex
}

// DesignEntry is one saved design with its metadata.
type DesignEntry struct {
	ID        string              `json:"id"`
	Name      string              `json:"name"`
	Design    *badgeformat.Design `json:"design"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

// New creates a Registry backed by the given JSON file.
func New(filePath string) (*Registry, error) {
	r := &Registry{
		filePath: filePath,
		data:     make(map[string]*DesignEntry),
	}

	if err := r.load(); err != nil {
		// A missing file is fine - it is created on first save
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load design registry: %w", err)
		}
	}

	return r, nil
}

// Save stores a design and returns its persistent ID.
func (r *Registry) Save(design *badgeformat.Design) (string, error) {
	if err := badgeformat.Validate(design); err != nil {
		return "", fmt.Errorf("refusing to save invalid design: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	entry := &DesignEntry{
		ID:        uuid.New().String(),
		Name:      design.Name,
		Design:    design,
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.data[entry.ID] = entry

	if err := r.save(); err != nil {
		return "", fmt.Errorf("failed to persist design: %w", err)
	}
	return entry.ID, nil
}

// Get returns a saved design entry by ID, or nil.
func (r *Registry) Get(id string) *DesignEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.data[id]
	if !ok {
		return nil
	}
	entryCopy := *entry
	return &entryCopy
}

// SetName renames a saved design.
func (r *Registry) SetName(id, name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.data[id]
	if !ok {
		return false
	}

	entry.Name = name
	if entry.Design != nil {
		entry.Design.Name = name
	}
	entry.UpdatedAt = time.Now()
	if err := r.save(); err != nil {
		// Non-critical: the rename holds in memory and persists on the
		// next successful save.
		log.Printf("Warning: failed to persist design registry: %v", err)
	}
	return true
}

// Remove deletes a saved design.
func (r *Registry) Remove(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.data[id]; !ok {
		return false
	}
	delete(r.data, id)
	if err := r.save(); err != nil {
		// Non-critical, see SetName
		log.Printf("Warning: failed to persist design registry: %v", err)
	}
	return true
}

// All returns all saved entries, newest first.
func (r *Registry) All() []*DesignEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*DesignEntry, 0, len(r.data))
	for _, entry := range r.data {
		entryCopy := *entry
		out = append(out, &entryCopy)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (r *Registry) load() error {
	data, err := os.ReadFile(r.filePath)
	if err != nil {
		return err
	}

	return json.Unmarshal(data, &r.data)
}

func (r *Registry) save() error {
	data, err := json.MarshalIndent(r.data, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(r.filePath, data, 0644)
}
