// Package store persists named visualization snapshots for the serve
// deployment.
//
// A snapshot captures the source text that was visualized, the mode it
// was rendered in, and the resulting DOT, so a saved visualization can
// be re-rendered or shared later. Two backends are provided: MongoDB
// for multi-instance deployments and an in-memory store for standalone
// use and tests.
package store

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Snapshot is a saved visualization.
type Snapshot struct {
	ID        string    `json:"id" bson:"_id"`
	Name      string    `json:"name" bson:"name"`
	Mode      string    `json:"mode" bson:"mode"` // "ast" or "cfg"
	Source    string    `json:"source" bson:"source"`
	DOT       string    `json:"dot" bson:"dot"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// Store is the interface for snapshot storage backends.
type Store interface {
	// Put stores a snapshot. An empty ID is assigned one.
	Put(ctx context.Context, s *Snapshot) error

	// Get retrieves a snapshot by ID. Missing snapshots return a
	// SNAPSHOT_NOT_FOUND coded error.
	Get(ctx context.Context, id string) (*Snapshot, error)

	// List returns all snapshots, newest first.
	List(ctx context.Context) ([]Snapshot, error)

	// Delete removes a snapshot. Deleting a missing ID is not an error.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}

// NewID allocates a snapshot identity.
func NewID() string {
	return uuid.NewString()
}
