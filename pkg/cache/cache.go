// Package cache provides content-addressed caching for generated cells,
// resolved layouts, and rendered artifacts.
//
// Cell geometry is a pure function of (technology, component type,
// parameters), a resolved layout is a pure function of the design source
// plus resolver options, and an artifact is a pure function of the layout
// plus render options. Each stage can therefore be cached under a key
// derived from its inputs, and a cached entry never goes stale as long as
// the inputs hash the same.
//
// Backends share the Cache interface: FileCache for local CLI usage,
// RedisCache for shared server deployments, and NullCache to disable
// caching entirely.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// Default TTLs per entry kind. Cell geometry is deterministic and keyed by
// its full inputs, so entries could live forever; the TTLs bound disk and
// Redis growth rather than correctness.
const (
	// TTLCell is the lifetime of generated component cells.
	TTLCell = 30 * 24 * time.Hour

	// TTLLayout is the lifetime of resolved layouts.
	TTLLayout = 7 * 24 * time.Hour

	// TTLArtifact is the lifetime of rendered artifacts (GDS, SVG, ...).
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is the storage interface shared by all backends.
//
// Get returns (data, true, nil) on a hit and (nil, false, nil) on a miss;
// errors are reserved for backend failures, never for absent keys.
type Cache interface {
	// Get retrieves a value. The bool reports whether the key was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a TTL. A zero or negative TTL stores the
	// value without expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Keyer derives cache keys from pipeline inputs. Implementations must be
// deterministic: equal inputs yield equal keys across processes.
type Keyer interface {
	// CellKey returns the key for a generated component cell.
	// Parameters are hashed in a canonical order, so two parameter maps
	// with equal contents produce the same key.
	CellKey(technology, ctype string, params map[string]any) string

	// LayoutKey returns the key for a resolved layout, derived from the
	// design source hash and the resolver options that shaped it.
	LayoutKey(designHash string, opts LayoutKeyOpts) string

	// ArtifactKey returns the key for a rendered artifact, derived from
	// the layout hash and the render options that shaped it.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts captures the resolver options that affect placement.
type LayoutKeyOpts struct {
	// MatingOffset is the port mating angle in degrees.
	MatingOffset float64 `json:"mating_offset"`

	// Tolerance is the placement consistency tolerance.
	Tolerance float64 `json:"tolerance"`
}

// ArtifactKeyOpts captures the render options that affect output bytes.
type ArtifactKeyOpts struct {
	// Format is the artifact format (gds, svg, json, dot, png).
	Format string `json:"format"`

	// DBUnit is the GDS database unit in design units, zero otherwise.
	DBUnit float64 `json:"db_unit,omitempty"`

	// Scale is the SVG pixel scale, zero otherwise.
	Scale float64 `json:"scale,omitempty"`

	// ShowPorts toggles port markers in SVG previews.
	ShowPorts bool `json:"show_ports,omitempty"`

	// Detailed toggles verbose labels in connectivity diagrams.
	Detailed bool `json:"detailed,omitempty"`
}

// DefaultKeyer derives keys by hashing the canonical JSON encoding of the
// inputs. Keys are prefixed by kind (cell:, lay:, art:) so a shared
// backend can be inspected and flushed per kind.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// CellKey generates a key for a generated component cell.
func (k *DefaultKeyer) CellKey(technology, ctype string, params map[string]any) string {
	return hashKey("cell", technology, ctype, canonicalParams(params))
}

// LayoutKey generates a key for a resolved layout.
func (k *DefaultKeyer) LayoutKey(designHash string, opts LayoutKeyOpts) string {
	return hashKey("lay", designHash, opts)
}

// ArtifactKey generates a key for a rendered artifact.
func (k *DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("art", layoutHash, opts)
}

// canonicalParams converts a parameter map into a sorted [key, value] list
// so that map iteration order cannot leak into the hash. encoding/json
// already sorts map keys, but numbers arriving via YAML may be int or
// float64 depending on how they were written; normalizing to float64 keeps
// "length: 100" and "length: 100.0" on the same key.
func canonicalParams(params map[string]any) map[string]any {
	if len(params) == 0 {
		return nil
	}
	out := make(map[string]any, len(params))
	for k, v := range params {
		switch n := v.(type) {
		case int:
			out[k] = float64(n)
		case int64:
			out[k] = float64(n)
		case float32:
			out[k] = float64(n)
		default:
			out[k] = v
		}
	}
	return out
}

// hashKey generates a cache key by hashing the components.
// The key format is: prefix:hash(parts...)
func hashKey(prefix string, parts ...interface{}) string {
	data, _ := json.Marshal(parts)
	hash := sha256.Sum256(data)
	// Use full SHA-256 hash (64 hex chars / 256 bits) to prevent collisions
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)
