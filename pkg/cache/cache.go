// Package cache provides the render cache used by the CLI and the HTTP
// API. Layouts and rendered artifacts are keyed by a hash of their full
// input, so identical requests are served from disk or redis instead of
// recomputing geometry.
package cache

import (
	"context"
	"time"
)

// Default TTLs per entry type. Layouts are pure functions of their input
// and could live forever; the TTLs bound disk growth.
const (
	TTLLayout   = 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a byte-oriented key-value store with per-entry TTL.
type Cache interface {
	// Get retrieves a value. The bool reports whether the key was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores a value. A zero ttl means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases any backend resources.
	Close() error
}

// LayoutKeyOpts are the inputs that change a computed layout.
type LayoutKeyOpts struct {
	AlignStem bool
}

// ArtifactKeyOpts are the inputs that change a rendered artifact.
type ArtifactKeyOpts struct {
	Format    string
	Sequence  string
	ThemeHash string
}

// Keyer generates cache keys for the pipeline stages.
type Keyer interface {
	// LayoutKey generates a key for a computed layout.
	LayoutKey(notation string, opts LayoutKeyOpts) string
	// ArtifactKey generates a key for a rendered artifact.
	ArtifactKey(notation string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes all key components with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// LayoutKey generates a key for a computed layout.
func (k *DefaultKeyer) LayoutKey(notation string, opts LayoutKeyOpts) string {
	return hashKey("layout", notation, opts.AlignStem)
}

// ArtifactKey generates a key for a rendered artifact.
func (k *DefaultKeyer) ArtifactKey(notation string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", notation, opts.Format, opts.Sequence, opts.ThemeHash)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)
