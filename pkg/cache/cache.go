// Package cache provides pluggable result caching for the visualization
// pipeline.
//
// Conversions and rendered artifacts are deterministic in their inputs,
// so they cache well: the CLI uses a file cache under the XDG cache
// directory, the serve deployment uses Redis, and tests use the null
// cache. Keys are derived from content hashes plus the options that
// affect the result, so differently-configured runs never collide.
package cache

import (
	"context"
	"time"
)

// Cache is the interface implemented by all cache backends.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a TTL. A zero TTL means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// TTLs per cached item class.
const (
	// TTLGraph is the lifetime of converted graph artifacts.
	TTLGraph = 7 * 24 * time.Hour

	// TTLArtifact is the lifetime of rendered SVG/PNG outputs.
	TTLArtifact = 30 * 24 * time.Hour

	// TTLText is the lifetime of pretty-printed text outputs.
	TTLText = 30 * 24 * time.Hour
)

// =============================================================================
// Keyer - Cache Key Derivation
// =============================================================================

// GraphKeyOpts are the options that affect a conversion result.
type GraphKeyOpts struct {
	Mode    string // "ast" or "cfg"
	Catalog string // fingerprint of the effective catalog
}

// ArtifactKeyOpts are the options that affect a rendered artifact.
type ArtifactKeyOpts struct {
	Format  string
	RankDir string
	Title   string
}

// TextKeyOpts are the options that affect pretty-printed output.
type TextKeyOpts struct {
	ShowExplanations bool
	Plain            bool
	Catalog          string // fingerprint of the effective catalog
}

// Keyer derives cache keys for the pipeline stages.
type Keyer interface {
	// GraphKey keys a converted graph by source hash, mode, and the
	// effective catalog.
	GraphKey(sourceHash string, opts GraphKeyOpts) string

	// ArtifactKey keys a rendered output by DOT hash and render options.
	ArtifactKey(dotHash string, opts ArtifactKeyOpts) string

	// TextKey keys pretty-printed text by source hash and print options.
	TextKey(sourceHash string, opts TextKeyOpts) string
}

// DefaultKeyer is the standard key derivation.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// GraphKey generates a key for converted graph caching.
func (k *DefaultKeyer) GraphKey(sourceHash string, opts GraphKeyOpts) string {
	return hashKey("graph", sourceHash, opts)
}

// ArtifactKey generates a key for rendered artifact caching.
func (k *DefaultKeyer) ArtifactKey(dotHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", dotHash, opts)
}

// TextKey generates a key for pretty-printed text caching.
func (k *DefaultKeyer) TextKey(sourceHash string, opts TextKeyOpts) string {
	return hashKey("text", sourceHash, opts)
}

// ScopedKeyer wraps a Keyer with a prefix for multi-tenant isolation,
// used by the serve deployment to namespace cache entries per client.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer that prepends prefix to all keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// GraphKey generates a prefixed key for converted graph caching.
func (k *ScopedKeyer) GraphKey(sourceHash string, opts GraphKeyOpts) string {
	return k.prefix + k.inner.GraphKey(sourceHash, opts)
}

// ArtifactKey generates a prefixed key for rendered artifact caching.
func (k *ScopedKeyer) ArtifactKey(dotHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(dotHash, opts)
}

// TextKey generates a prefixed key for pretty-printed text caching.
func (k *ScopedKeyer) TextKey(sourceHash string, opts TextKeyOpts) string {
	return k.prefix + k.inner.TextKey(sourceHash, opts)
}
