// Package session stores crop sessions: named focus selections on an
// image, together with the layer partition computed for them.
//
// A session lets a user come back to a crop later, or share it between
// the CLI and the HTTP API. Implementations for different backends:
//   - memory: In-memory storage for development/testing
//   - file: File-based storage for CLI applications
//   - mongo: MongoDB-backed storage for server deployments
//
// # Usage
//
// Create a session store:
//
//	// Development
//	store := session.NewMemoryStore()
//
//	// CLI
//	store, err := session.NewFileStore("")  // Uses ~/.config/tkfmw/sessions/
//
//	// Server
//	store, err := session.NewMongoStore(ctx, session.MongoConfig{
//	    URI:      "mongodb://localhost:27017",
//	    Database: "tkfmw",
//	})
//
// Manage sessions:
//
//	sess := session.New("photo.png", imageHash, layer, session.DefaultTTL)
//	if err := store.Set(ctx, sess); err != nil {
//	    return err
//	}
//
//	sess, err := store.Get(ctx, id)
//	switch {
//	case errors.Is(err, session.ErrNotFound):
//	    // no such session
//	case errors.Is(err, session.ErrExpired):
//	    // session outlived its TTL
//	}
package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/jiro4989/tkfmw/pkg/geometry"
)

// DefaultTTL is how long sessions live unless configured otherwise.
const DefaultTTL = 30 * 24 * time.Hour

// Sentinel errors for session operations.
var (
	// ErrNotFound is returned when a session does not exist.
	ErrNotFound = errors.New("session not found")

	// ErrExpired is returned when a session has exceeded its TTL.
	ErrExpired = errors.New("session expired")
)

// Session is a saved focus selection on an image.
type Session struct {
	// ID is a UUID assigned at creation.
	ID string `json:"id" bson:"_id"`

	// Image is the source image path or name the selection refers to.
	Image string `json:"image" bson:"image"`

	// ImageHash is the content hash of the source image, so a replaced
	// file invalidates the selection.
	ImageHash string `json:"image_hash" bson:"image_hash"`

	// Layer is the partition computed for the focus selection.
	Layer geometry.Layer `json:"layer" bson:"layer"`

	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	ExpiresAt time.Time `json:"expires_at" bson:"expires_at"`
}

// New creates a session with a fresh UUID. A non-positive ttl uses
// DefaultTTL.
func New(image, imageHash string, layer geometry.Layer, ttl time.Duration) *Session {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	now := time.Now().UTC()
	return &Session{
		ID:        uuid.NewString(),
		Image:     image,
		ImageHash: imageHash,
		Layer:     layer,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

// Focus returns the session's focus rectangle.
func (s *Session) Focus() geometry.Rect {
	return s.Layer.Focus
}

// IsExpired reports whether the session has outlived its TTL.
func (s *Session) IsExpired() bool {
	return !s.ExpiresAt.IsZero() && time.Now().After(s.ExpiresAt)
}

// Store persists sessions.
type Store interface {
	// Get retrieves a session by ID. Returns ErrNotFound if it does not
	// exist and ErrExpired if it exists but has outlived its TTL.
	Get(ctx context.Context, id string) (*Session, error)

	// Set stores or replaces a session.
	Set(ctx context.Context, sess *Session) error

	// Delete removes a session. Deleting a missing session is not an error.
	Delete(ctx context.Context, id string) error

	// Cleanup removes expired sessions and returns how many were removed.
	Cleanup(ctx context.Context) (int, error)

	// Close releases backend resources.
	Close(ctx context.Context) error
}
