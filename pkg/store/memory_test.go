package store

import (
	"context"
	"testing"
	"time"

	"github.com/matzehuels/astscope/pkg/errors"
)

func TestMemoryStore_PutGet(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	defer s.Close(ctx)

	snap := &Snapshot{
		ID:        NewID(),
		Name:      "demo",
		Mode:      "ast",
		Source:    "x := 42",
		DOT:       "digraph G {}",
		CreatedAt: time.Now().UTC(),
	}
	if err := s.Put(ctx, snap); err != nil {
		t.Fatalf("Put error: %v", err)
	}

	got, err := s.Get(ctx, snap.ID)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got.Name != "demo" || got.Source != "x := 42" {
		t.Errorf("Get returned %+v", got)
	}
}

func TestMemoryStore_GetMissing(t *testing.T) {
	s := NewMemoryStore()

	_, err := s.Get(context.Background(), "nope")
	if err == nil {
		t.Fatal("expected error for missing snapshot")
	}
	if !errors.Is(err, errors.ErrCodeSnapshotNotFound) {
		t.Errorf("error code = %v, want SNAPSHOT_NOT_FOUND", errors.GetCode(err))
	}
}

func TestMemoryStore_ListNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	old := &Snapshot{ID: "old", CreatedAt: time.Now().Add(-time.Hour)}
	recent := &Snapshot{ID: "recent", CreatedAt: time.Now()}
	if err := s.Put(ctx, old); err != nil {
		t.Fatal(err)
	}
	if err := s.Put(ctx, recent); err != nil {
		t.Fatal(err)
	}

	snaps, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(snaps) != 2 {
		t.Fatalf("List returned %d snapshots, want 2", len(snaps))
	}
	if snaps[0].ID != "recent" {
		t.Errorf("first snapshot = %s, want the most recent", snaps[0].ID)
	}
}

func TestMemoryStore_Delete(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	snap := &Snapshot{ID: "x", CreatedAt: time.Now()}
	if err := s.Put(ctx, snap); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete(ctx, "x"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, err := s.Get(ctx, "x"); err == nil {
		t.Error("deleted snapshot should be gone")
	}
}

func TestMemoryStore_PutOverwrites(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	if err := s.Put(ctx, &Snapshot{ID: "x", Name: "first", CreatedAt: time.Now()}); err != nil {
		t.Fatal(err)
	}
	if err := s.Put(ctx, &Snapshot{ID: "x", Name: "second", CreatedAt: time.Now()}); err != nil {
		t.Fatal(err)
	}

	got, err := s.Get(ctx, "x")
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "second" {
		t.Errorf("Name = %q, want the overwritten value", got.Name)
	}
}

func TestNewID_Unique(t *testing.T) {
	if NewID() == NewID() {
		t.Error("NewID should produce unique identifiers")
	}
}
