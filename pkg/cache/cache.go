// Package cache stores computed routes and rendered graphs.
//
// Two backends implement [Cache]: [FileCache] for the CLI, keeping entries
// under the user's cache directory, and [RedisCache] for the HTTP server.
// [NullCache] disables caching. Keys are produced by a [Keyer] so that the
// same inputs always map to the same entry.
package cache

import (
	"context"
	"time"
)

// Default entry lifetimes.
const (
	RouteTTL = 30 * 24 * time.Hour
	GraphTTL = 7 * 24 * time.Hour
)

// Cache is a byte-oriented key/value store with expiring entries.
type Cache interface {
	// Get returns the entry for key. The bool is false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the backend's resources.
	Close() error
}

// Keyer generates cache keys.
type Keyer interface {
	// RouteKey keys an optimized route by the hash of its problem.
	RouteKey(problemHash string) string

	// GraphKey keys a rendered prerequisite graph.
	GraphKey(configHash string, opts GraphKeyOpts) string
}

// GraphKeyOpts are the render options that change a graph's output.
type GraphKeyOpts struct {
	Format   string   `json:"format"`
	Selected []string `json:"selected,omitempty"`
}

// DefaultKeyer is the standard [Keyer].
type DefaultKeyer struct{}

// NewDefaultKeyer creates a DefaultKeyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// RouteKey returns "route:<hash>".
func (DefaultKeyer) RouteKey(problemHash string) string {
	return "route:" + problemHash
}

// GraphKey hashes the config hash together with the render options.
func (DefaultKeyer) GraphKey(configHash string, opts GraphKeyOpts) string {
	return hashKey("graph", configHash, opts)
}
