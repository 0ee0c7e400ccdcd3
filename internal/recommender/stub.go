// Playnext - Game Library Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playnext

package recommender

import (
	"context"

	"github.com/tomtom215/playnext/internal/logging"
	"github.com/tomtom215/playnext/internal/metrics"
	"github.com/tomtom215/playnext/internal/models"
)

// stub is a provider without an implementation. It answers every request
// with an empty result and empty metrics.
type stub struct {
	name string
}

func newStub(name string) *stub {
	return &stub{name: name}
}

func (s *stub) Name() string { return s.name }

func (s *stub) GetRecommendations(ctx context.Context, _ []models.Candidate, _ string, _ Options) ([]models.Recommendation, models.Metrics, error) {
	s.notImplemented(ctx, "recommend")
	return []models.Recommendation{}, models.Metrics{}, nil
}

func (s *stub) PickOne(ctx context.Context, _ []models.Candidate, _ string, _ Options) (models.Recommendation, models.Metrics, error) {
	s.notImplemented(ctx, "pick_one")
	return nil, models.Metrics{}, nil
}

func (s *stub) notImplemented(ctx context.Context, op string) {
	metrics.RecommenderRequests.WithLabelValues(s.name, op, "not_implemented").Inc()
	logging.Ctx(ctx).Warn().Str("provider", s.name).Msg("Recommender provider not yet implemented")
}
