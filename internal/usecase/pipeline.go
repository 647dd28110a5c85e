package usecase

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bytedance/sonic"
	"github.com/riskibarqy/laliga-stats/external/fbref"
	"github.com/riskibarqy/laliga-stats/internal/domain/teamstats"
	"github.com/riskibarqy/laliga-stats/internal/platform/logging"
)

// RunReport collects the counts of every stage that ran.
type RunReport struct {
	StartedAt  time.Time                  `json:"started_at"`
	FinishedAt time.Time                  `json:"finished_at"`
	Stages     []string                   `json:"stages"`
	Catalog    *CatalogReport             `json:"catalog,omitempty"`
	Extract    *ExtractReport             `json:"extract,omitempty"`
	Reassemble *teamstats.ReassembleStats `json:"reassemble,omitempty"`
	Link       *LinkReport                `json:"link,omitempty"`
	Finalize   *FinalizeReport            `json:"finalize,omitempty"`
	Load       *LoadReport                `json:"load,omitempty"`
}

type PipelineOptions struct {
	FixturesPage string
	PlayersPage  string
	ReportPath   string
}

// Pipeline runs the stages in dependency order. Each stage only talks to
// the others through the tables in the store.
type Pipeline struct {
	store      TableStore
	catalog    *CatalogService
	ingestion  *IngestionService
	reassemble *ReassembleService
	link       *LinkService
	finalize   *FinalizeService
	load       *LoadService
	opts       PipelineOptions
	logger     *logging.Logger
}

func NewPipeline(
	store TableStore,
	catalog *CatalogService,
	ingestion *IngestionService,
	reassemble *ReassembleService,
	link *LinkService,
	finalize *FinalizeService,
	load *LoadService,
	opts PipelineOptions,
	logger *logging.Logger,
) *Pipeline {
	return &Pipeline{
		store:      store,
		catalog:    catalog,
		ingestion:  ingestion,
		reassemble: reassemble,
		link:       link,
		finalize:   finalize,
		load:       load,
		opts:       opts,
		logger:     logger.Named("pipeline"),
	}
}

// Catalog writes the team catalog and, when a player roster has been
// extracted, the player ids.
func (p *Pipeline) Catalog(ctx context.Context) (CatalogReport, error) {
	teams, err := p.catalog.BuildTeams(ctx)
	if err != nil {
		return CatalogReport{}, err
	}
	if !p.store.Exists(ctx, FilePlayers) {
		p.logger.WarnContext(ctx, "player roster not extracted, skipping player ids", "file", FilePlayers)
		return CatalogReport{Teams: len(teams)}, nil
	}

	roster, err := p.catalog.Roster(ctx)
	if err != nil {
		return CatalogReport{}, err
	}
	return p.catalog.BuildPlayers(ctx, roster)
}

// Extract parses the saved schedule, the player roster page and every
// match report the schedule links to.
func (p *Pipeline) Extract(ctx context.Context) (ExtractReport, error) {
	var report ExtractReport

	fixtures, err := p.ingestion.ExtractPage(ctx, p.opts.FixturesPage, p.ingestion.ExtractFixtures)
	if err != nil {
		return ExtractReport{}, err
	}
	report.Fixtures = fixtures.Len()

	if p.ingestion.HasPage(p.opts.PlayersPage) {
		players, err := p.ingestion.ExtractPage(ctx, p.opts.PlayersPage, p.ingestion.ExtractPlayers)
		if err != nil {
			return ExtractReport{}, err
		}
		report.Players = players.Len()
	} else {
		p.logger.WarnContext(ctx, "players page missing", "page", p.opts.PlayersPage)
	}

	processed, err := p.ingestion.LoadProcessedURLs(ctx)
	if err != nil {
		return ExtractReport{}, err
	}
	matches, err := p.ingestion.IngestMatches(ctx, MatchPages(fbref.MatchURLs(fixtures)), processed)
	if err != nil {
		return ExtractReport{}, err
	}
	report.Matches = matches
	return report, nil
}

func (p *Pipeline) Reassemble(ctx context.Context) (teamstats.ReassembleStats, error) {
	roster, err := p.catalog.Roster(ctx)
	if err != nil {
		return teamstats.ReassembleStats{}, err
	}
	return p.reassemble.Reassemble(ctx, roster)
}

func (p *Pipeline) Link(ctx context.Context) (LinkReport, error) {
	roster, err := p.catalog.Roster(ctx)
	if err != nil {
		return LinkReport{}, err
	}
	return p.link.Link(ctx, roster)
}

func (p *Pipeline) Finalize(ctx context.Context) (FinalizeReport, error) {
	roster, err := p.catalog.Roster(ctx)
	if err != nil {
		return FinalizeReport{}, err
	}
	return p.finalize.Finalize(ctx, roster)
}

func (p *Pipeline) Load(ctx context.Context) (LoadReport, error) {
	if p.load == nil {
		return LoadReport{}, fmt.Errorf("%w: load is not configured", ErrDependencyUnavailable)
	}
	return p.load.Load(ctx)
}

// Run executes every stage. The report is written even when a stage
// fails, holding the stages that completed.
func (p *Pipeline) Run(ctx context.Context, withLoad bool) (RunReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.Pipeline.Run")
	defer span.End()

	report := RunReport{StartedAt: time.Now().UTC()}
	err := p.run(ctx, withLoad, &report)
	report.FinishedAt = time.Now().UTC()

	if writeErr := p.WriteReport(ctx, report); writeErr != nil {
		if err == nil {
			return report, writeErr
		}
		p.logger.WarnContext(ctx, "write run report", "error", writeErr)
	}
	return report, err
}

func (p *Pipeline) run(ctx context.Context, withLoad bool, report *RunReport) error {
	extract, err := p.Extract(ctx)
	if err != nil {
		return fmt.Errorf("extract: %w", err)
	}
	report.Extract = &extract
	report.Stages = append(report.Stages, "extract")

	catalog, err := p.Catalog(ctx)
	if err != nil {
		return fmt.Errorf("catalog: %w", err)
	}
	report.Catalog = &catalog
	report.Stages = append(report.Stages, "catalog")

	reassembled, err := p.Reassemble(ctx)
	if err != nil {
		return fmt.Errorf("reassemble: %w", err)
	}
	report.Reassemble = &reassembled
	report.Stages = append(report.Stages, "reassemble")

	linked, err := p.Link(ctx)
	if err != nil {
		return fmt.Errorf("link: %w", err)
	}
	report.Link = &linked
	report.Stages = append(report.Stages, "link")

	finalized, err := p.Finalize(ctx)
	if err != nil {
		return fmt.Errorf("finalize: %w", err)
	}
	report.Finalize = &finalized
	report.Stages = append(report.Stages, "finalize")

	if !withLoad {
		return nil
	}
	loaded, err := p.Load(ctx)
	if err != nil {
		return fmt.Errorf("load: %w", err)
	}
	report.Load = &loaded
	report.Stages = append(report.Stages, "load")
	return nil
}

// WriteReport stores report as indented JSON at the configured path.
func (p *Pipeline) WriteReport(ctx context.Context, report RunReport) error {
	if p.opts.ReportPath == "" {
		return nil
	}
	body, err := sonic.ConfigStd.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("encode run report: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(p.opts.ReportPath), 0o755); err != nil {
		return fmt.Errorf("create report dir: %w", err)
	}
	if err := os.WriteFile(p.opts.ReportPath, append(body, '\n'), 0o644); err != nil {
		return fmt.Errorf("write run report: %w", err)
	}
	p.logger.InfoContext(ctx, "run report written", "path", p.opts.ReportPath, "stages", report.Stages)
	return nil
}
