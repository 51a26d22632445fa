package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/rfgds/rfgds/pkg/design"
)

func testDesign(t *testing.T) *design.Design {
	t.Helper()
	d, err := design.Parse([]byte("name: lowpass\ntechnology: generic\ncomponents:\n  - {name: l1, type: microstrip_line, parameters: {length: 10, width: 2}, position: [0, 0]}\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return d
}

func TestNewDocument(t *testing.T) {
	d := testDesign(t)
	source := []byte("name: lowpass\n")
	layoutJSON := []byte(`{"name":"lowpass"}`)
	artifacts := map[string][]byte{"gds": make([]byte, 42), "svg": make([]byte, 7)}

	doc := NewDocument(d, source, layoutJSON, artifacts)

	if doc.ID == "" {
		t.Error("ID should be generated")
	}
	if doc.Name != "lowpass" {
		t.Errorf("Name = %q, want lowpass", doc.Name)
	}
	if doc.Technology != "generic" {
		t.Errorf("Technology = %q, want generic", doc.Technology)
	}
	if doc.Components != 1 {
		t.Errorf("Components = %d, want 1", doc.Components)
	}
	if len(doc.Artifacts) != 2 {
		t.Fatalf("Artifacts = %d entries, want 2", len(doc.Artifacts))
	}
	for _, a := range doc.Artifacts {
		want := len(artifacts[a.Format])
		if a.Size != want {
			t.Errorf("Artifact %s size = %d, want %d", a.Format, a.Size, want)
		}
	}
	if doc.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}

	// Distinct conversions get distinct IDs.
	if other := NewDocument(d, source, layoutJSON, nil); other.ID == doc.ID {
		t.Error("IDs should be unique per document")
	}
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	defer store.Close(ctx)

	doc := NewDocument(testDesign(t), []byte("src"), []byte("{}"), nil)
	if err := store.Put(ctx, doc); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, err := store.Get(ctx, doc.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if diff := cmp.Diff(doc, got); diff != "" {
		t.Errorf("Get mismatch (-want +got):\n%s", diff)
	}
}

func TestMemoryStoreGetMissing(t *testing.T) {
	store := NewMemoryStore()
	if _, err := store.Get(context.Background(), "no-such-id"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get missing = %v, want ErrNotFound", err)
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	doc := NewDocument(testDesign(t), nil, nil, nil)
	if err := store.Put(ctx, doc); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := store.Delete(ctx, doc.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := store.Get(ctx, doc.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after delete = %v, want ErrNotFound", err)
	}
	if err := store.Delete(ctx, doc.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Second delete = %v, want ErrNotFound", err)
	}
}

func TestMemoryStoreListNewestFirst(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	d := testDesign(t)

	older := NewDocument(d, nil, nil, nil)
	older.CreatedAt = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := NewDocument(d, nil, nil, nil)
	newer.CreatedAt = time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	for _, doc := range []*Document{older, newer} {
		if err := store.Put(ctx, doc); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
	}

	got, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("List = %d entries, want 2", len(got))
	}
	if got[0].ID != newer.ID || got[1].ID != older.ID {
		t.Errorf("List order = [%s, %s], want newest first", got[0].ID, got[1].ID)
	}
}

func TestMemoryStoreCopies(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	doc := NewDocument(testDesign(t), nil, nil, nil)
	if err := store.Put(ctx, doc); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	// Mutating the caller's document must not affect the stored copy.
	doc.Name = "mutated"
	got, err := store.Get(ctx, doc.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Name == "mutated" {
		t.Error("store should hold a copy, not the caller's pointer")
	}
}
