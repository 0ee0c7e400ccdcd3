// Playnext - Game Library Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playnext

package store

import (
	"context"
	"errors"
	"testing"

	"github.com/dgraph-io/badger/v4"

	"github.com/tomtom215/playnext/internal/config"
)

func createTestBadgerDB(t *testing.T) *badger.DB {
	t.Helper()

	db, err := Open(&config.StorageConfig{Path: t.TempDir()})
	if err != nil {
		t.Fatalf("Failed to open BadgerDB: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestExclusionAddListRemove(t *testing.T) {
	s := NewExclusionStore(createTestBadgerDB(t))
	ctx := context.Background()

	for _, id := range []int{620, 10, 1145360} {
		if err := s.Add(ctx, "u1", id); err != nil {
			t.Fatalf("Add(%d): %v", id, err)
		}
	}

	ids, err := s.List(ctx, "u1")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	want := []int{10, 620, 1145360}
	if len(ids) != len(want) {
		t.Fatalf("List = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("List[%d] = %d, want %d", i, ids[i], want[i])
		}
	}

	if err := s.Remove(ctx, "u1", 620); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	ok, err := s.Contains(ctx, "u1", 620)
	if err != nil || ok {
		t.Errorf("Contains after Remove = %v, %v", ok, err)
	}
}

func TestExclusionIdempotent(t *testing.T) {
	s := NewExclusionStore(createTestBadgerDB(t))
	ctx := context.Background()

	if err := s.Add(ctx, "u1", 42); err != nil {
		t.Fatal(err)
	}
	if err := s.Add(ctx, "u1", 42); err != nil {
		t.Fatalf("second Add: %v", err)
	}
	ids, _ := s.List(ctx, "u1")
	if len(ids) != 1 {
		t.Errorf("List = %v, want exactly one entry", ids)
	}

	if err := s.Remove(ctx, "u1", 999); err != nil {
		t.Errorf("Remove of absent pair: %v", err)
	}
}

func TestExclusionUsersAreIsolated(t *testing.T) {
	s := NewExclusionStore(createTestBadgerDB(t))
	ctx := context.Background()

	_ = s.Add(ctx, "1", 100)
	_ = s.Add(ctx, "12", 200)

	ids, _ := s.List(ctx, "1")
	if len(ids) != 1 || ids[0] != 100 {
		t.Errorf("List(1) = %v, want [100] (prefix of user 12 must not leak)", ids)
	}

	ids, _ = s.List(ctx, "nobody")
	if ids == nil || len(ids) != 0 {
		t.Errorf("List(nobody) = %#v, want empty slice", ids)
	}
}

func TestExclusionValidation(t *testing.T) {
	s := NewExclusionStore(createTestBadgerDB(t))
	ctx := context.Background()

	tests := []struct {
		user  string
		appID int
	}{
		{"", 1},
		{"u1", 0},
		{"u1", -5},
		{"a:b", 1},
	}
	for _, tt := range tests {
		if err := s.Add(ctx, tt.user, tt.appID); !errors.Is(err, ErrInvalidEntry) {
			t.Errorf("Add(%q, %d) = %v, want ErrInvalidEntry", tt.user, tt.appID, err)
		}
	}
}

func TestExclusionsSurviveReopen(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.StorageConfig{Path: dir}
	ctx := context.Background()

	db, err := Open(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if err := NewExclusionStore(db).Add(ctx, "u1", 7); err != nil {
		t.Fatal(err)
	}
	if err := db.Close(); err != nil {
		t.Fatal(err)
	}

	db, err = Open(cfg)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	ok, err := NewExclusionStore(db).Contains(ctx, "u1", 7)
	if err != nil || !ok {
		t.Errorf("Contains after reopen = %v, %v; want true", ok, err)
	}
}
