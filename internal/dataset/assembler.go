// Playnext - Game Library Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playnext

package dataset

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/playnext/internal/cache"
	"github.com/tomtom215/playnext/internal/logging"
	"github.com/tomtom215/playnext/internal/metrics"
	"github.com/tomtom215/playnext/internal/models"
)

const (
	// MaxCandidates bounds the list sent to a backend.
	MaxCandidates = 10

	// ListingLimit bounds the library listing shown to the user.
	ListingLimit = 50

	// enrichConcurrency bounds parallel completion/detail lookups per request.
	enrichConcurrency = 4
)

// ErrUpstreamUnavailable means the user's library could not be obtained.
var ErrUpstreamUnavailable = errors.New("game library unavailable")

// LibraryProvider fetches a user's owned games.
type LibraryProvider interface {
	GetOwnedGames(ctx context.Context, steamID string) (*models.Library, error)
}

// DetailProvider fetches store metadata. (nil, nil) means no details exist.
type DetailProvider interface {
	GetAppDetails(ctx context.Context, appID int) (*models.GameDetail, error)
}

// CompletionProvider fetches completion estimates. (nil, nil) means no match.
type CompletionProvider interface {
	Search(ctx context.Context, name string) (*models.CompletionEstimate, error)
}

// ExclusionLister returns the app IDs a user excluded.
type ExclusionLister interface {
	List(ctx context.Context, steamID string) ([]int, error)
}

// Assembler builds candidate lists and library listings.
type Assembler struct {
	library    LibraryProvider
	details    DetailProvider
	completion CompletionProvider
	exclusions ExclusionLister
	tables     *cache.Tables
	logger     zerolog.Logger
}

// NewAssembler wires the providers to a set of cache tables.
func NewAssembler(library LibraryProvider, details DetailProvider, completion CompletionProvider,
	exclusions ExclusionLister, tables *cache.Tables) *Assembler {
	return &Assembler{
		library:    library,
		details:    details,
		completion: completion,
		exclusions: exclusions,
		tables:     tables,
		logger:     logging.WithComponent("dataset"),
	}
}

// Library returns the user's library, fetching it when the cache has no
// fresh entry. Only successful fetches are cached.
func (a *Assembler) Library(ctx context.Context, steamID string) (*models.Library, error) {
	if lib, ok := a.tables.Library.Get(steamID); ok {
		return lib, nil
	}

	lib, err := a.library.GetOwnedGames(ctx, steamID)
	if err != nil {
		logging.Ctx(ctx).Error().Err(err).Str("steam_id", steamID).Msg("Failed to fetch owned games")
		return nil, fmt.Errorf("%w: %w", ErrUpstreamUnavailable, err)
	}
	if lib == nil {
		return nil, ErrUpstreamUnavailable
	}

	a.tables.Library.Put(steamID, lib)
	return lib, nil
}

// Refresh drops the user's cached library and every cached completion and
// detail entry (for all users), then fetches the library again.
func (a *Assembler) Refresh(ctx context.Context, steamID string) (*models.Library, error) {
	a.tables.Library.Delete(steamID)
	a.tables.ClearEnrichment()
	return a.Library(ctx, steamID)
}

// LastRefreshed reports when the user's library was last fetched.
func (a *Assembler) LastRefreshed(steamID string) (time.Time, bool) {
	return a.tables.Library.FetchedAt(steamID)
}

// ListGames returns up to limit owned games, most played first, each
// flagged with whether the user excluded it.
func (a *Assembler) ListGames(ctx context.Context, steamID string, limit int) ([]models.LibraryGame, error) {
	lib, err := a.Library(ctx, steamID)
	if err != nil {
		return nil, err
	}
	excluded, err := a.excludedSet(ctx, steamID)
	if err != nil {
		return nil, err
	}

	games := make([]models.OwnedGame, len(lib.Games))
	copy(games, lib.Games)
	sortByPlaytime(games)
	if limit > 0 && len(games) > limit {
		games = games[:limit]
	}

	out := make([]models.LibraryGame, 0, len(games))
	for _, g := range games {
		_, isExcluded := excluded[g.AppID]
		out = append(out, models.LibraryGame{OwnedGame: g, IsExcluded: isExcluded})
	}
	return out, nil
}

// BuildCandidates produces the sanitized candidate list for steamID.
//
// When applyCompletionFilter is set, games whose playtime already exceeds a
// positive main-story estimate are dropped. playtimeCapHours <= 0 means no
// cap; otherwise only games with at most that many hours remain.
func (a *Assembler) BuildCandidates(ctx context.Context, steamID string, applyCompletionFilter bool, playtimeCapHours int) ([]models.Candidate, error) {
	lib, err := a.Library(ctx, steamID)
	if err != nil {
		return nil, err
	}
	excluded, err := a.excludedSet(ctx, steamID)
	if err != nil {
		return nil, err
	}

	games := selectGames(lib.Games, excluded, playtimeCapHours)
	enriched := a.enrich(ctx, games)

	candidates := make([]models.Candidate, 0, len(enriched))
	for _, e := range enriched {
		if e.skip {
			continue
		}
		if applyCompletionFilter && e.completion != nil && e.completion.MainStory > 0 &&
			e.game.PlaytimeHours() > e.completion.MainStory {
			continue
		}
		candidates = append(candidates, toCandidate(e))
	}

	metrics.DatasetCandidates.Observe(float64(len(candidates)))
	logging.Ctx(ctx).Debug().Str("steam_id", steamID).Int("library_size", len(lib.Games)).
		Int("candidates", len(candidates)).Msg("Candidates built")
	return candidates, nil
}

func (a *Assembler) excludedSet(ctx context.Context, steamID string) (map[int]struct{}, error) {
	ids, err := a.exclusions.List(ctx, steamID)
	if err != nil {
		return nil, fmt.Errorf("failed to load exclusions: %w", err)
	}
	set := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set, nil
}

// selectGames applies steps 2 to 6 and returns a new slice.
func selectGames(all []models.OwnedGame, excluded map[int]struct{}, playtimeCapHours int) []models.OwnedGame {
	capMinutes := playtimeCapHours * 60

	games := make([]models.OwnedGame, 0, len(all))
	for _, g := range all {
		if _, ok := excluded[g.AppID]; ok {
			continue
		}
		if g.PlaytimeForever <= 0 {
			continue
		}
		if playtimeCapHours > 0 && g.PlaytimeForever > capMinutes {
			continue
		}
		games = append(games, g)
	}

	sortByPlaytime(games)
	if len(games) > MaxCandidates {
		games = games[:MaxCandidates]
	}
	return games
}

func sortByPlaytime(games []models.OwnedGame) {
	sort.SliceStable(games, func(i, j int) bool {
		return games[i].PlaytimeForever > games[j].PlaytimeForever
	})
}

type enrichedGame struct {
	game       models.OwnedGame
	completion *models.CompletionEstimate
	detail     *models.GameDetail
	skip       bool
}

// enrich looks up completion and detail data for each game. Lookups run
// concurrently but results keep the input order.
func (a *Assembler) enrich(ctx context.Context, games []models.OwnedGame) []enrichedGame {
	out := make([]enrichedGame, len(games))

	var g errgroup.Group
	g.SetLimit(enrichConcurrency)
	for i := range games {
		i := i
		g.Go(func() error {
			out[i] = a.enrichOne(ctx, games[i])
			return nil
		})
	}
	_ = g.Wait()

	return out
}

func (a *Assembler) enrichOne(ctx context.Context, game models.OwnedGame) enrichedGame {
	if game.AppID == 0 || game.Name == "" {
		return enrichedGame{game: game, skip: true}
	}
	return enrichedGame{
		game:       game,
		completion: a.lookupCompletion(ctx, game.Name),
		detail:     a.lookupDetail(ctx, game.AppID),
	}
}

func (a *Assembler) lookupCompletion(ctx context.Context, name string) *models.CompletionEstimate {
	if est, ok := a.tables.Completion.Get(name); ok {
		return est
	}
	est, err := a.completion.Search(ctx, name)
	if err != nil {
		a.logger.Debug().Err(err).Str("name", name).Msg("Completion lookup failed")
		return nil
	}
	if est != nil {
		a.tables.Completion.Put(name, est)
	}
	return est
}

func (a *Assembler) lookupDetail(ctx context.Context, appID int) *models.GameDetail {
	if d, ok := a.tables.Detail.Get(appID); ok {
		return d
	}
	d, err := a.details.GetAppDetails(ctx, appID)
	if err != nil {
		a.logger.Debug().Err(err).Int("appid", appID).Msg("Store details lookup failed")
		return nil
	}
	if d != nil {
		a.tables.Detail.Put(appID, d)
	}
	return d
}

func toCandidate(e enrichedGame) models.Candidate {
	genres, categories := []string{}, []string{}
	if e.detail != nil {
		if e.detail.Genres != nil {
			genres = e.detail.Genres
		}
		if e.detail.Categories != nil {
			categories = e.detail.Categories
		}
	}
	return models.Candidate{
		Name:          e.game.Name,
		PlaytimeHours: roundTenth(e.game.PlaytimeHours()),
		Completion:    e.completion,
		Genres:        genres,
		Categories:    categories,
	}
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
