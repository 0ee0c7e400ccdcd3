// Playnext - Game Library Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playnext

package services

import (
	"context"
	"errors"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/tomtom215/playnext/internal/logging"
)

const gcDiscardRatio = 0.5

// ValueLogGC is satisfied by *badger.DB.
type ValueLogGC interface {
	RunValueLogGC(discardRatio float64) error
	IsClosed() bool
}

// BadgerGCService reclaims badger value-log space on an interval.
type BadgerGCService struct {
	db       ValueLogGC
	interval time.Duration
}

// NewBadgerGCService creates the service. A non-positive interval becomes
// ten minutes.
func NewBadgerGCService(db ValueLogGC, interval time.Duration) *BadgerGCService {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	return &BadgerGCService{db: db, interval: interval}
}

// Serve implements suture.Service.
func (s *BadgerGCService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.collect()
		}
	}
}

// collect runs GC until badger reports nothing left to rewrite.
func (s *BadgerGCService) collect() {
	if s.db.IsClosed() {
		return
	}
	rewrites := 0
	for {
		err := s.db.RunValueLogGC(gcDiscardRatio)
		if err == nil {
			rewrites++
			continue
		}
		if !errors.Is(err, badger.ErrNoRewrite) && !errors.Is(err, badger.ErrRejected) &&
			!errors.Is(err, badger.ErrGCInMemoryMode) {
			logging.Warn().Err(err).Str("component", "store").Msg("Badger value-log GC failed")
		}
		break
	}
	if rewrites > 0 {
		logging.Debug().Str("component", "store").Int("rewrites", rewrites).Msg("Badger value-log GC")
	}
}

func (s *BadgerGCService) String() string { return "badger-gc" }
