// Playnext - Game Library Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playnext

package dataset

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/tomtom215/playnext/internal/cache"
	"github.com/tomtom215/playnext/internal/models"
)

// ============================================================================
// Fakes
// ============================================================================

type fakeLibrary struct {
	lib   *models.Library
	err   error
	calls int32
}

func (f *fakeLibrary) GetOwnedGames(ctx context.Context, steamID string) (*models.Library, error) {
	atomic.AddInt32(&f.calls, 1)
	return f.lib, f.err
}

type fakeDetails struct {
	mu      sync.Mutex
	byID    map[int]*models.GameDetail
	failIDs map[int]bool
	calls   map[int]int
}

func (f *fakeDetails) GetAppDetails(ctx context.Context, appID int) (*models.GameDetail, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.calls == nil {
		f.calls = map[int]int{}
	}
	f.calls[appID]++
	if f.failIDs[appID] {
		return nil, errors.New("store unavailable")
	}
	return f.byID[appID], nil
}

type fakeCompletion struct {
	mu        sync.Mutex
	byName    map[string]*models.CompletionEstimate
	failNames map[string]bool
	calls     map[string]int
}

func (f *fakeCompletion) Search(ctx context.Context, name string) (*models.CompletionEstimate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.calls == nil {
		f.calls = map[string]int{}
	}
	f.calls[name]++
	if f.failNames[name] {
		return nil, errors.New("hltb unavailable")
	}
	return f.byName[name], nil
}

type fakeExclusions map[int]bool

func (f fakeExclusions) List(ctx context.Context, steamID string) ([]int, error) {
	ids := make([]int, 0, len(f))
	for id := range f {
		ids = append(ids, id)
	}
	return ids, nil
}

type failingExclusions struct{}

func (failingExclusions) List(ctx context.Context, steamID string) ([]int, error) {
	return nil, errors.New("badger closed")
}

type fixture struct {
	library    *fakeLibrary
	details    *fakeDetails
	completion *fakeCompletion
	tables     *cache.Tables
	assembler  *Assembler
}

func newFixture(games []models.OwnedGame, excluded fakeExclusions) *fixture {
	f := &fixture{
		library:    &fakeLibrary{lib: &models.Library{GameCount: len(games), Games: games}},
		details:    &fakeDetails{byID: map[int]*models.GameDetail{}},
		completion: &fakeCompletion{byName: map[string]*models.CompletionEstimate{}},
		tables:     cache.NewTables(time.Hour),
	}
	if excluded == nil {
		excluded = fakeExclusions{}
	}
	f.assembler = NewAssembler(f.library, f.details, f.completion, excluded, f.tables)
	return f
}

func names(cs []models.Candidate) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.Name
	}
	return out
}

func equalNames(got []models.Candidate, want ...string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range want {
		if got[i].Name != want[i] {
			return false
		}
	}
	return true
}

var scenarioLibrary = []models.OwnedGame{
	{AppID: 1, Name: "Dota 2", PlaytimeForever: 6000},
	{AppID: 2, Name: "Portal 2", PlaytimeForever: 120},
	{AppID: 3, Name: "Idle Game", PlaytimeForever: 0},
}

// ============================================================================
// Scenarios
// ============================================================================

func TestBuildCandidatesScenarioNoCap(t *testing.T) {
	f := newFixture(scenarioLibrary, fakeExclusions{3: true})

	got, err := f.assembler.BuildCandidates(context.Background(), "u1", false, 0)
	if err != nil {
		t.Fatalf("BuildCandidates: %v", err)
	}
	if !equalNames(got, "Dota 2", "Portal 2") {
		t.Errorf("candidates = %v, want [Dota 2 Portal 2]", names(got))
	}
	if got[0].PlaytimeHours != 100 || got[1].PlaytimeHours != 2 {
		t.Errorf("playtime hours = %v, %v", got[0].PlaytimeHours, got[1].PlaytimeHours)
	}
}

func TestBuildCandidatesScenarioCap(t *testing.T) {
	f := newFixture(scenarioLibrary, fakeExclusions{3: true})

	got, err := f.assembler.BuildCandidates(context.Background(), "u1", false, 5)
	if err != nil {
		t.Fatalf("BuildCandidates: %v", err)
	}
	if !equalNames(got, "Portal 2") {
		t.Errorf("candidates = %v, want [Portal 2]", names(got))
	}
}

func TestBuildCandidatesScenarioCompletionFilter(t *testing.T) {
	f := newFixture([]models.OwnedGame{{AppID: 2, Name: "Portal 2", PlaytimeForever: 360}}, nil)
	f.completion.byName["Portal 2"] = &models.CompletionEstimate{Name: "Portal 2", MainStory: 3}

	got, err := f.assembler.BuildCandidates(context.Background(), "u1", true, 0)
	if err != nil {
		t.Fatalf("BuildCandidates: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("candidates = %v, want none", names(got))
	}

	// Same data with the filter off keeps the game.
	got, _ = f.assembler.BuildCandidates(context.Background(), "u1", false, 0)
	if !equalNames(got, "Portal 2") {
		t.Errorf("unfiltered candidates = %v, want [Portal 2]", names(got))
	}
}

func TestCompletionFilterIgnoresZeroMainStory(t *testing.T) {
	f := newFixture([]models.OwnedGame{{AppID: 9, Name: "Stardew Valley", PlaytimeForever: 9000}}, nil)
	f.completion.byName["Stardew Valley"] = &models.CompletionEstimate{Name: "Stardew Valley", MainStory: 0}

	got, _ := f.assembler.BuildCandidates(context.Background(), "u1", true, 0)
	if !equalNames(got, "Stardew Valley") {
		t.Errorf("candidates = %v, want game kept when main_story is 0", names(got))
	}
}

func TestCompletionFilterRunsAfterTruncation(t *testing.T) {
	games := make([]models.OwnedGame, 0, 12)
	for i := 1; i <= 12; i++ {
		games = append(games, models.OwnedGame{AppID: i, Name: fmt.Sprintf("Game %02d", i), PlaytimeForever: 1000 - i})
	}
	f := newFixture(games, nil)
	f.completion.byName["Game 01"] = &models.CompletionEstimate{MainStory: 1}

	got, _ := f.assembler.BuildCandidates(context.Background(), "u1", true, 0)
	if len(got) != 9 {
		t.Errorf("len = %d, want 9 (filter applied after truncating to 10)", len(got))
	}
	for _, c := range got {
		if c.Name == "Game 11" || c.Name == "Game 12" {
			t.Errorf("%s should have been truncated before filtering", c.Name)
		}
	}
}

// ============================================================================
// Properties
// ============================================================================

func TestBuildCandidatesProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for run := 0; run < 50; run++ {
		n := rng.Intn(40)
		games := make([]models.OwnedGame, n)
		excluded := fakeExclusions{}
		for i := range games {
			games[i] = models.OwnedGame{
				AppID:           i + 1,
				Name:            fmt.Sprintf("Game %d", i+1),
				PlaytimeForever: rng.Intn(4) * rng.Intn(3000),
			}
			if rng.Intn(4) == 0 {
				excluded[i+1] = true
			}
		}
		capHours := rng.Intn(3) * rng.Intn(40)

		f := newFixture(games, excluded)
		got, err := f.assembler.BuildCandidates(context.Background(), "u1", false, capHours)
		if err != nil {
			t.Fatalf("run %d: %v", run, err)
		}
		if len(got) > MaxCandidates {
			t.Fatalf("run %d: %d candidates, want <= %d", run, len(got), MaxCandidates)
		}

		byName := map[string]models.OwnedGame{}
		for _, g := range games {
			byName[g.Name] = g
		}
		prev := -1
		for _, c := range got {
			g := byName[c.Name]
			if excluded[g.AppID] {
				t.Errorf("run %d: excluded app %d returned", run, g.AppID)
			}
			if g.PlaytimeForever == 0 {
				t.Errorf("run %d: unplayed %s returned", run, g.Name)
			}
			if capHours > 0 && g.PlaytimeForever > capHours*60 {
				t.Errorf("run %d: %s exceeds cap %dh", run, g.Name, capHours)
			}
			if prev >= 0 && g.PlaytimeForever > prev {
				t.Errorf("run %d: candidates not sorted by playtime", run)
			}
			prev = g.PlaytimeForever
		}
	}
}

func TestSortIsStable(t *testing.T) {
	games := []models.OwnedGame{
		{AppID: 1, Name: "A", PlaytimeForever: 60},
		{AppID: 2, Name: "B", PlaytimeForever: 120},
		{AppID: 3, Name: "C", PlaytimeForever: 60},
		{AppID: 4, Name: "D", PlaytimeForever: 60},
	}
	f := newFixture(games, nil)

	got, _ := f.assembler.BuildCandidates(context.Background(), "u1", false, 0)
	if !equalNames(got, "B", "A", "C", "D") {
		t.Errorf("order = %v, want [B A C D]", names(got))
	}
}

func TestRoundsPlaytimeToOneDecimal(t *testing.T) {
	f := newFixture([]models.OwnedGame{{AppID: 1, Name: "Hades", PlaytimeForever: 757}}, nil)

	got, _ := f.assembler.BuildCandidates(context.Background(), "u1", false, 0)
	if len(got) != 1 || got[0].PlaytimeHours != 12.6 {
		t.Errorf("PlaytimeHours = %v, want 12.6", got)
	}
}

// ============================================================================
// Enrichment
// ============================================================================

func TestEnrichmentAttachesData(t *testing.T) {
	f := newFixture([]models.OwnedGame{{AppID: 1145360, Name: "Hades", PlaytimeForever: 600}}, nil)
	f.completion.byName["Hades"] = &models.CompletionEstimate{Name: "Hades", MainStory: 22.5}
	f.details.byID[1145360] = &models.GameDetail{Genres: []string{"Action"}, Categories: []string{"Single-player"}}

	got, _ := f.assembler.BuildCandidates(context.Background(), "u1", false, 0)
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	c := got[0]
	if c.Completion == nil || c.Completion.MainStory != 22.5 {
		t.Errorf("Completion = %+v", c.Completion)
	}
	if len(c.Genres) != 1 || c.Genres[0] != "Action" || len(c.Categories) != 1 {
		t.Errorf("Genres/Categories = %v / %v", c.Genres, c.Categories)
	}
}

func TestEnrichmentFailuresDegrade(t *testing.T) {
	games := []models.OwnedGame{
		{AppID: 1, Name: "Broken", PlaytimeForever: 300},
		{AppID: 2, Name: "Fine", PlaytimeForever: 200},
	}
	f := newFixture(games, nil)
	f.completion.failNames = map[string]bool{"Broken": true}
	f.details.failIDs = map[int]bool{1: true}
	f.completion.byName["Fine"] = &models.CompletionEstimate{MainStory: 10}
	f.details.byID[2] = &models.GameDetail{Genres: []string{"RPG"}, Categories: []string{}}

	got, err := f.assembler.BuildCandidates(context.Background(), "u1", false, 0)
	if err != nil {
		t.Fatalf("enrichment failures must not fail the request: %v", err)
	}
	if !equalNames(got, "Broken", "Fine") {
		t.Fatalf("candidates = %v", names(got))
	}
	if got[0].Completion != nil || got[0].Genres == nil || len(got[0].Genres) != 0 || got[0].Categories == nil {
		t.Errorf("degraded candidate = %+v, want nil completion and empty lists", got[0])
	}
	if got[1].Completion == nil || got[1].Genres[0] != "RPG" {
		t.Errorf("healthy candidate affected by sibling failure: %+v", got[1])
	}
}

func TestEnrichmentCachesOnlyFoundValues(t *testing.T) {
	games := []models.OwnedGame{
		{AppID: 1, Name: "Known", PlaytimeForever: 300},
		{AppID: 2, Name: "Unknown", PlaytimeForever: 200},
	}
	f := newFixture(games, nil)
	f.completion.byName["Known"] = &models.CompletionEstimate{MainStory: 5}
	f.details.byID[1] = &models.GameDetail{Genres: []string{}, Categories: []string{}}

	for i := 0; i < 3; i++ {
		if _, err := f.assembler.BuildCandidates(context.Background(), "u1", false, 0); err != nil {
			t.Fatal(err)
		}
	}

	if f.completion.calls["Known"] != 1 || f.details.calls[1] != 1 {
		t.Errorf("found values fetched %d/%d times, want 1/1", f.completion.calls["Known"], f.details.calls[1])
	}
	if f.completion.calls["Unknown"] != 3 || f.details.calls[2] != 3 {
		t.Errorf("absent values fetched %d/%d times, want 3/3", f.completion.calls["Unknown"], f.details.calls[2])
	}
}

func TestSkipsGamesWithoutIDOrName(t *testing.T) {
	games := []models.OwnedGame{
		{AppID: 0, Name: "No ID", PlaytimeForever: 300},
		{AppID: 5, Name: "", PlaytimeForever: 200},
		{AppID: 6, Name: "Valid", PlaytimeForever: 100},
	}
	f := newFixture(games, nil)

	got, _ := f.assembler.BuildCandidates(context.Background(), "u1", false, 0)
	if !equalNames(got, "Valid") {
		t.Errorf("candidates = %v, want [Valid]", names(got))
	}
}

// ============================================================================
// Library resolution
// ============================================================================

func TestUpstreamFailure(t *testing.T) {
	f := newFixture(nil, nil)
	f.library.lib = nil
	f.library.err = errors.New("steam down")

	_, err := f.assembler.BuildCandidates(context.Background(), "u1", false, 0)
	if !errors.Is(err, ErrUpstreamUnavailable) {
		t.Fatalf("error = %v, want ErrUpstreamUnavailable", err)
	}
	if f.tables.Library.Len() != 0 {
		t.Error("failed fetch must not be cached")
	}
}

func TestNilLibraryIsUpstreamFailure(t *testing.T) {
	f := newFixture(nil, nil)
	f.library.lib = nil

	if _, err := f.assembler.Library(context.Background(), "u1"); !errors.Is(err, ErrUpstreamUnavailable) {
		t.Errorf("error = %v, want ErrUpstreamUnavailable", err)
	}
}

func TestExclusionStoreFailure(t *testing.T) {
	f := newFixture(scenarioLibrary, nil)
	f.assembler.exclusions = failingExclusions{}

	_, err := f.assembler.BuildCandidates(context.Background(), "u1", false, 0)
	if err == nil || errors.Is(err, ErrUpstreamUnavailable) {
		t.Errorf("error = %v, want exclusion store error", err)
	}
}

func TestLibraryIsCachedUntilStale(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	f := newFixture(scenarioLibrary, nil)
	f.tables = cache.NewTablesWithClock(time.Hour, clock)
	f.assembler.tables = f.tables

	ctx := context.Background()
	_, _ = f.assembler.BuildCandidates(ctx, "u1", false, 0)
	_, _ = f.assembler.BuildCandidates(ctx, "u1", false, 0)
	if f.library.calls != 1 {
		t.Errorf("library fetched %d times within TTL, want 1", f.library.calls)
	}

	now = now.Add(time.Hour)
	_, _ = f.assembler.BuildCandidates(ctx, "u1", false, 0)
	if f.library.calls != 2 {
		t.Errorf("library fetched %d times after TTL, want 2", f.library.calls)
	}
}

func TestRefresh(t *testing.T) {
	f := newFixture(scenarioLibrary, nil)
	ctx := context.Background()

	_, _ = f.assembler.BuildCandidates(ctx, "u1", false, 0)
	f.tables.Library.Put("u2", &models.Library{})
	f.tables.Completion.Put("Other User Game", &models.CompletionEstimate{})

	if _, err := f.assembler.Refresh(ctx, "u1"); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if f.library.calls != 2 {
		t.Errorf("library fetched %d times, want 2 (refresh refetches)", f.library.calls)
	}
	if f.tables.Completion.Len() != 0 || f.tables.Detail.Len() != 0 {
		t.Error("refresh must clear enrichment tables for all users")
	}
	if _, ok := f.tables.Library.Get("u2"); !ok {
		t.Error("refresh must not drop other users' libraries")
	}
	if _, ok := f.assembler.LastRefreshed("u1"); !ok {
		t.Error("LastRefreshed should report the refetched library")
	}
}

func TestRefreshFailureLeavesNoLibrary(t *testing.T) {
	f := newFixture(scenarioLibrary, nil)
	ctx := context.Background()
	_, _ = f.assembler.Library(ctx, "u1")

	f.library.lib, f.library.err = nil, errors.New("steam down")
	if _, err := f.assembler.Refresh(ctx, "u1"); !errors.Is(err, ErrUpstreamUnavailable) {
		t.Fatalf("error = %v, want ErrUpstreamUnavailable", err)
	}
	if _, ok := f.assembler.LastRefreshed("u1"); ok {
		t.Error("library entry should be gone after a failed refresh")
	}
}

// ============================================================================
// Listing
// ============================================================================

func TestListGames(t *testing.T) {
	games := make([]models.OwnedGame, 0, 60)
	for i := 1; i <= 60; i++ {
		games = append(games, models.OwnedGame{AppID: i, Name: fmt.Sprintf("Game %d", i), PlaytimeForever: i})
	}
	f := newFixture(games, fakeExclusions{60: true, 1: true})

	got, err := f.assembler.ListGames(context.Background(), "u1", ListingLimit)
	if err != nil {
		t.Fatalf("ListGames: %v", err)
	}
	if len(got) != ListingLimit {
		t.Fatalf("len = %d, want %d", len(got), ListingLimit)
	}
	if got[0].AppID != 60 || !got[0].IsExcluded {
		t.Errorf("first = %+v, want app 60 flagged excluded", got[0])
	}
	if got[1].IsExcluded {
		t.Errorf("second = %+v, want not excluded", got[1])
	}
	if got[49].AppID != 11 {
		t.Errorf("last = %d, want 11", got[49].AppID)
	}

	// Listing must not reorder the cached library.
	lib, _ := f.assembler.Library(context.Background(), "u1")
	if lib.Games[0].AppID != 1 {
		t.Error("ListGames mutated the cached library")
	}
}
