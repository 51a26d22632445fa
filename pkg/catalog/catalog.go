// Package catalog stores converted designs.
//
// A catalog entry pairs the design source with the layout it produced
// and metadata about the rendered artifacts, so a conversion can be
// inspected or re-downloaded later without re-running the pipeline.
//
// Two backends implement the Store interface:
//   - memory: in-process storage for development and tests
//   - mongo: MongoDB-backed storage for server deployments
//
// # Usage
//
//	store := catalog.NewMemoryStore()
//	doc := catalog.NewDocument(d, layoutJSON, artifacts)
//	if err := store.Put(ctx, doc); err != nil {
//	    return err
//	}
//	entries, err := store.List(ctx)
package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/rfgds/rfgds/pkg/design"
)

// Sentinel errors for catalog operations.
var (
	// ErrNotFound is returned when a document does not exist.
	ErrNotFound = errors.New("design not found")
)

// Document is one stored conversion: the design as submitted, the
// layout it produced, and what was rendered from it.
type Document struct {
	ID         string         `json:"id" bson:"_id"`
	Name       string         `json:"name" bson:"name"`
	Technology string         `json:"technology" bson:"technology"`
	Units      string         `json:"units" bson:"units"`
	Components int            `json:"components" bson:"components"`
	Source     []byte         `json:"source" bson:"source"`
	Layout     []byte         `json:"layout" bson:"layout"`
	Artifacts  []ArtifactInfo `json:"artifacts,omitempty" bson:"artifacts,omitempty"`
	CreatedAt  time.Time      `json:"created_at" bson:"created_at"`
}

// ArtifactInfo describes one rendered artifact without embedding its
// bytes; artifacts are re-rendered (or cache-served) on demand.
type ArtifactInfo struct {
	Format string `json:"format" bson:"format"`
	Size   int    `json:"size" bson:"size"`
}

// Summary is the listing view of a document: everything but the
// source and layout payloads.
type Summary struct {
	ID         string    `json:"id" bson:"_id"`
	Name       string    `json:"name" bson:"name"`
	Technology string    `json:"technology" bson:"technology"`
	Components int       `json:"components" bson:"components"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
}

// Summary returns the listing view of the document.
func (d *Document) Summary() Summary {
	return Summary{
		ID:         d.ID,
		Name:       d.Name,
		Technology: d.Technology,
		Components: d.Components,
		CreatedAt:  d.CreatedAt,
	}
}

// NewDocument builds a catalog document for a converted design. The ID
// is a fresh UUID; CreatedAt is the current time.
func NewDocument(d *design.Design, source, layoutJSON []byte, artifacts map[string][]byte) *Document {
	doc := &Document{
		ID:         uuid.NewString(),
		Name:       d.Name,
		Technology: d.Technology,
		Units:      d.Units,
		Components: len(d.Components),
		Source:     source,
		Layout:     layoutJSON,
		CreatedAt:  time.Now().UTC(),
	}
	for format, data := range artifacts {
		doc.Artifacts = append(doc.Artifacts, ArtifactInfo{Format: format, Size: len(data)})
	}
	return doc
}

// Store is the interface for catalog storage backends.
type Store interface {
	// Put stores a document, overwriting any existing document with
	// the same ID.
	Put(ctx context.Context, doc *Document) error

	// Get retrieves a document by ID. Returns ErrNotFound if it does
	// not exist.
	Get(ctx context.Context, id string) (*Document, error)

	// List returns summaries of all documents, newest first.
	List(ctx context.Context) ([]Summary, error)

	// Delete removes a document. Returns ErrNotFound if it does not
	// exist.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}
