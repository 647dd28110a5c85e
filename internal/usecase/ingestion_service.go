package usecase

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"path"
	"sync"

	crerr "github.com/cockroachdb/errors"
	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/laliga-stats/external/fbref"
	"github.com/riskibarqy/laliga-stats/internal/domain/slug"
	"github.com/riskibarqy/laliga-stats/internal/domain/teamstats"
	"github.com/riskibarqy/laliga-stats/internal/platform/logging"
	"github.com/riskibarqy/laliga-stats/internal/platform/table"
)

const (
	defaultIngestWorkers = 4
	maxIngestWorkers     = 64

	// MatchPagesDir holds one saved report per match, named after the
	// last segment of its URL.
	MatchPagesDir = "matches"
)

// ProcessedURLs is the set of match URLs already present in the raw
// tables. Ingestion skips them and adds what it appends.
type ProcessedURLs struct {
	mu   sync.RWMutex
	urls map[string]struct{}
}

func NewProcessedURLs(urls ...string) *ProcessedURLs {
	p := &ProcessedURLs{urls: make(map[string]struct{}, len(urls))}
	for _, u := range urls {
		p.Add(u)
	}
	return p
}

func (p *ProcessedURLs) Has(url string) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	_, ok := p.urls[url]
	return ok
}

func (p *ProcessedURLs) Add(url string) {
	if url == "" {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.urls[url] = struct{}{}
}

func (p *ProcessedURLs) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.urls)
}

// Page is one saved match report.
type Page struct {
	URL  string
	Name string
}

// MatchPages maps match URLs to their saved report names.
func MatchPages(urls []string) []Page {
	out := make([]Page, 0, len(urls))
	for _, u := range urls {
		seg := slug.Segment(u)
		if seg == "" {
			continue
		}
		out = append(out, Page{URL: u, Name: path.Join(MatchPagesDir, seg+".html")})
	}
	return out
}

// IngestResult counts what one ingestion pass did.
type IngestResult struct {
	Requested  int `json:"requested"`
	Skipped    int `json:"skipped"`
	Missing    int `json:"missing"`
	Failed     int `json:"failed"`
	Empty      int `json:"empty"`
	Parsed     int `json:"parsed"`
	TeamRows   int `json:"team_rows"`
	PlayerRows int `json:"player_rows"`
	Workers    int `json:"workers"`
}

// ExtractReport counts the season level tables.
type ExtractReport struct {
	Fixtures int          `json:"fixtures"`
	Players  int          `json:"players"`
	Matches  IngestResult `json:"matches"`
}

// IngestionService turns saved fbref pages into raw tables.
type IngestionService struct {
	pages      fs.FS
	store      TableStore
	maxWorkers int
	logger     *logging.Logger
}

func NewIngestionService(pages fs.FS, store TableStore, maxWorkers int, logger *logging.Logger) *IngestionService {
	return &IngestionService{
		pages:      pages,
		store:      store,
		maxWorkers: maxWorkers,
		logger:     logger.Named("extract"),
	}
}

// ExtractFixtures parses the schedule page and writes the fixtures table.
func (s *IngestionService) ExtractFixtures(ctx context.Context, page io.Reader) (*table.Table, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IngestionService.ExtractFixtures")
	defer span.End()

	fixtures, err := fbref.ParseFixtures(page)
	if err != nil {
		return nil, fmt.Errorf("parse fixtures page: %w", err)
	}
	if err := s.store.Write(ctx, FileFixtures, fixtures); err != nil {
		return nil, fmt.Errorf("write fixtures: %w", err)
	}
	s.logger.InfoContext(ctx, "fixtures extracted", "rows", fixtures.Len(), "file", FileFixtures)
	return fixtures, nil
}

// ExtractPlayers parses the league standard stats page and writes the
// player roster table.
func (s *IngestionService) ExtractPlayers(ctx context.Context, page io.Reader) (*table.Table, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IngestionService.ExtractPlayers")
	defer span.End()

	players, err := fbref.ParseStandardPlayers(page)
	if err != nil {
		return nil, fmt.Errorf("parse players page: %w", err)
	}
	if err := s.store.Write(ctx, FilePlayers, players); err != nil {
		return nil, fmt.Errorf("write players: %w", err)
	}
	s.logger.InfoContext(ctx, "players extracted", "rows", players.Len(), "file", FilePlayers)
	return players, nil
}

// HasPage reports whether name exists in the pages directory.
func (s *IngestionService) HasPage(name string) bool {
	_, err := fs.Stat(s.pages, name)
	return err == nil
}

// ExtractPage opens name from the pages directory and runs extract on it.
func (s *IngestionService) ExtractPage(ctx context.Context, name string, extract func(context.Context, io.Reader) (*table.Table, error)) (*table.Table, error) {
	f, err := s.pages.Open(name)
	if err != nil {
		return nil, fmt.Errorf("%w: open page %s: %v", ErrDependencyUnavailable, name, err)
	}
	defer f.Close()
	return extract(ctx, f)
}

// LoadProcessedURLs reads the URLs already present in the raw tables.
func (s *IngestionService) LoadProcessedURLs(ctx context.Context) (*ProcessedURLs, error) {
	processed := NewProcessedURLs()
	sources := []struct {
		name string
		col  string
	}{
		{FileTeamRaw, teamstats.RawColumns[2]},
		{FilePlayerRaw, fbref.ColRawMatchURL},
	}
	for _, src := range sources {
		t, err := s.store.Read(ctx, src.name)
		if crerr.Is(err, table.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", src.name, err)
		}
		for _, u := range t.Distinct(src.col) {
			processed.Add(u)
		}
	}
	return processed, nil
}

type pageOutcome struct {
	match   fbref.Match
	missing bool
	err     error
}

// IngestMatches parses match reports on a worker pool and appends their
// rows to the raw tables in input order. Pages already in processed are
// skipped; appended pages are added to it.
func (s *IngestionService) IngestMatches(ctx context.Context, pages []Page, processed *ProcessedURLs) (IngestResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IngestionService.IngestMatches")
	defer span.End()

	if processed == nil {
		processed = NewProcessedURLs()
	}

	result := IngestResult{Requested: len(pages)}
	todo := make([]Page, 0, len(pages))
	seen := make(map[string]struct{}, len(pages))
	for _, p := range pages {
		if _, dup := seen[p.URL]; dup || processed.Has(p.URL) {
			result.Skipped++
			continue
		}
		seen[p.URL] = struct{}{}
		todo = append(todo, p)
	}
	if len(todo) == 0 {
		return result, nil
	}

	workerCount := normalizeIngestWorkerCount(s.maxWorkers, len(todo))
	result.Workers = workerCount

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return IngestResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	outcomes := make([]pageOutcome, len(todo))
	var workers sync.WaitGroup
	for i, p := range todo {
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			outcomes[i] = s.parsePage(ctx, p)
		}); err != nil {
			workers.Done()
			workers.Wait()
			return IngestResult{}, fmt.Errorf("submit page to worker pool: %w", err)
		}
	}
	workers.Wait()

	teamRaw := table.New("team_raw", teamstats.RawColumns...)
	var playerTables []*table.Table
	var appended []string
	for i, out := range outcomes {
		switch {
		case out.missing:
			result.Missing++
			s.logger.WarnContext(ctx, "match page missing", "url", todo[i].URL, "page", todo[i].Name)
			continue
		case out.err != nil:
			result.Failed++
			s.logger.WarnContext(ctx, "match page failed", "url", todo[i].URL, "error", out.err)
			continue
		case out.match.Empty():
			result.Empty++
			s.logger.WarnContext(ctx, "match page has no stats tables", "url", todo[i].URL)
			continue
		}

		result.Parsed++
		for _, row := range out.match.TeamRows {
			teamRaw.Append(row.Cells()...)
		}
		if out.match.Players.Len() > 0 {
			playerTables = append(playerTables, out.match.Players)
		}
		appended = append(appended, todo[i].URL)
	}

	playerRaw := table.Concat("players_raw", playerTables...)
	if playerRaw.Len() > 0 {
		playerRaw = playerRaw.Front(nonBookkeeping(playerRaw.Columns)...)
	}
	result.TeamRows = teamRaw.Len()
	result.PlayerRows = playerRaw.Len()

	if teamRaw.Len() > 0 {
		if _, err := s.store.Append(ctx, FileTeamRaw, teamRaw); err != nil {
			return IngestResult{}, fmt.Errorf("append team raw rows: %w", err)
		}
	}
	if playerRaw.Len() > 0 {
		if _, err := s.store.Append(ctx, FilePlayerRaw, playerRaw); err != nil {
			return IngestResult{}, fmt.Errorf("append player raw rows: %w", err)
		}
	}
	for _, u := range appended {
		processed.Add(u)
	}

	recordCounts(span, map[string]int{"parsed": result.Parsed, "missing": result.Missing, "failed": result.Failed})
	s.logger.InfoContext(ctx, "match pages ingested",
		"requested", result.Requested,
		"skipped", result.Skipped,
		"parsed", result.Parsed,
		"missing", result.Missing,
		"failed", result.Failed,
		"team_rows", result.TeamRows,
		"player_rows", result.PlayerRows,
	)
	return result, nil
}

func (s *IngestionService) parsePage(ctx context.Context, p Page) pageOutcome {
	if err := ctx.Err(); err != nil {
		return pageOutcome{err: err}
	}
	f, err := s.pages.Open(p.Name)
	if err != nil {
		if crerr.Is(err, fs.ErrNotExist) {
			return pageOutcome{missing: true}
		}
		return pageOutcome{err: err}
	}
	defer f.Close()

	m, err := fbref.ParseMatch(f, p.URL)
	if err != nil {
		return pageOutcome{err: err}
	}
	return pageOutcome{match: m}
}

// nonBookkeeping orders stat columns ahead of stat_type, team and match_url.
func nonBookkeeping(cols []string) []string {
	out := make([]string, 0, len(cols))
	for _, c := range cols {
		switch c {
		case fbref.ColStatType, fbref.ColTeam, fbref.ColRawMatchURL:
		default:
			out = append(out, c)
		}
	}
	return append(out, fbref.ColStatType, fbref.ColTeam, fbref.ColRawMatchURL)
}

func normalizeIngestWorkerCount(requested, tasks int) int {
	if requested <= 0 {
		requested = defaultIngestWorkers
	}
	if requested > maxIngestWorkers {
		requested = maxIngestWorkers
	}
	if tasks > 0 && requested > tasks {
		requested = tasks
	}
	return requested
}
