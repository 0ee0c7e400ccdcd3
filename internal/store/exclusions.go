// Playnext - Game Library Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playnext

package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
)

const exclusionKeyPrefix = "exclusion:"

// ErrInvalidEntry is returned for an empty user ID or a non-positive app ID.
var ErrInvalidEntry = errors.New("store: invalid exclusion entry")

// exclusionRecord is the value stored under each key.
type exclusionRecord struct {
	CreatedAt time.Time `json:"created_at"`
}

// ExclusionStore is the durable set of (user, app) exclusions.
type ExclusionStore struct {
	db *badger.DB
}

// NewExclusionStore wraps an open badger database.
func NewExclusionStore(db *badger.DB) *ExclusionStore {
	return &ExclusionStore{db: db}
}

func userPrefix(steamID string) []byte {
	return []byte(exclusionKeyPrefix + steamID + ":")
}

func exclusionKey(steamID string, appID int) []byte {
	return append(userPrefix(steamID), strconv.Itoa(appID)...)
}

func validate(steamID string, appID int) error {
	if steamID == "" || strings.Contains(steamID, ":") || appID <= 0 {
		return fmt.Errorf("%w: user=%q appid=%d", ErrInvalidEntry, steamID, appID)
	}
	return nil
}

// List returns the app IDs excluded by steamID in ascending order.
func (s *ExclusionStore) List(ctx context.Context, steamID string) ([]int, error) {
	prefix := userPrefix(steamID)
	ids := make([]int, 0)

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			raw := strings.TrimPrefix(string(it.Item().Key()), string(prefix))
			id, err := strconv.Atoi(raw)
			if err != nil {
				return fmt.Errorf("corrupt exclusion key %q: %w", it.Item().Key(), err)
			}
			ids = append(ids, id)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list exclusions: %w", err)
	}

	sort.Ints(ids)
	return ids, nil
}

// Add excludes appID for steamID. Adding an existing pair keeps the
// original timestamp.
func (s *ExclusionStore) Add(ctx context.Context, steamID string, appID int) error {
	if err := validate(steamID, appID); err != nil {
		return err
	}
	key := exclusionKey(steamID, appID)

	return s.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(key)
		if err == nil {
			return nil
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("get exclusion: %w", err)
		}

		val, err := json.Marshal(exclusionRecord{CreatedAt: time.Now().UTC()})
		if err != nil {
			return fmt.Errorf("marshal exclusion: %w", err)
		}
		if err := txn.Set(key, val); err != nil {
			return fmt.Errorf("set exclusion: %w", err)
		}
		return nil
	})
}

// Remove deletes the pair. Removing an absent pair is not an error.
func (s *ExclusionStore) Remove(ctx context.Context, steamID string, appID int) error {
	if err := validate(steamID, appID); err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Delete(exclusionKey(steamID, appID)); err != nil {
			return fmt.Errorf("delete exclusion: %w", err)
		}
		return nil
	})
}

// Contains reports whether appID is excluded for steamID.
func (s *ExclusionStore) Contains(ctx context.Context, steamID string, appID int) (bool, error) {
	found := false
	err := s.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(exclusionKey(steamID, appID))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		found = true
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("get exclusion: %w", err)
	}
	return found, nil
}
