package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/riskibarqy/laliga-stats/internal/config"
	"github.com/riskibarqy/laliga-stats/internal/domain/team"
	"github.com/riskibarqy/laliga-stats/internal/infrastructure/csvfile"
	"github.com/riskibarqy/laliga-stats/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/laliga-stats/internal/infrastructure/repository/postgres"
	idgen "github.com/riskibarqy/laliga-stats/internal/platform/id"
	"github.com/riskibarqy/laliga-stats/internal/platform/logging"
	"github.com/riskibarqy/laliga-stats/internal/usecase"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

// Stage names accepted by RunStage.
const (
	StageCatalog    = "catalog"
	StageExtract    = "extract"
	StageReassemble = "reassemble"
	StageLink       = "link"
	StageFinalize   = "finalize"
	StageLoad       = "load"
	StageRun        = "run"
)

var Stages = []string{StageCatalog, StageExtract, StageReassemble, StageLink, StageFinalize, StageLoad, StageRun}

const dbPingTimeout = 5 * time.Second

var appTracer = otel.Tracer("laliga-stats/internal/app")

// App is the pipeline wired for one process.
type App struct {
	cfg      config.Config
	logger   *logging.Logger
	db       *sqlx.DB
	pipeline *usecase.Pipeline
}

// New wires the stage services over the data directory. The team catalog
// always comes from the built-in seed; the database, when enabled, is only
// the load target.
func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}

	store := csvfile.NewStore(cfg.DataDir, csvfile.Options{BOM: cfg.CSVBOM})

	a := &App{cfg: cfg, logger: logger}
	repos := memoryRepositories()
	if cfg.DBEnabled {
		db, err := openDB(ctx, cfg)
		if err != nil {
			return nil, err
		}
		a.db = db
		repos = postgresRepositories(db)
		logger.Info("load target", "kind", "postgres", "db_name", dbNameFromURL(cfg.DBURL))
	} else {
		logger.Debug("load target", "kind", "memory")
	}

	a.pipeline = usecase.NewPipeline(
		store,
		usecase.NewCatalogService(memory.NewTeamRepository(memory.SeedTeams()), store, idgen.NewMD5Generator(), logger),
		usecase.NewIngestionService(os.DirFS(cfg.PagesDir), store, cfg.IngestMaxWorkers, logger),
		usecase.NewReassembleService(store, cfg.NoisePrefixes, logger),
		usecase.NewLinkService(store, team.NewReclaimer(cfg.SuffixReclaimMap), cfg.NoisePrefixes, logger),
		usecase.NewFinalizeService(store, logger),
		usecase.NewLoadService(store, repos, logger),
		usecase.PipelineOptions{
			FixturesPage: cfg.FixturesPage,
			PlayersPage:  cfg.PlayersPage,
			ReportPath:   cfg.ReportPath,
		},
		logger,
	)
	return a, nil
}

// RunStage runs one named stage, or the whole pipeline for "run", and
// returns its report.
func (a *App) RunStage(ctx context.Context, stage string) (any, error) {
	ctx, span := appTracer.Start(ctx, "stage."+stage)
	defer span.End()
	span.SetAttributes(attribute.String("stage", stage), attribute.Bool("db_enabled", a.cfg.DBEnabled))

	var (
		report any
		err    error
	)
	switch stage {
	case StageCatalog:
		report, err = a.pipeline.Catalog(ctx)
	case StageExtract:
		report, err = a.pipeline.Extract(ctx)
	case StageReassemble:
		report, err = a.pipeline.Reassemble(ctx)
	case StageLink:
		report, err = a.pipeline.Link(ctx)
	case StageFinalize:
		report, err = a.pipeline.Finalize(ctx)
	case StageLoad:
		report, err = a.pipeline.Load(ctx)
	case StageRun:
		report, err = a.pipeline.Run(ctx, a.cfg.DBEnabled)
	default:
		return nil, fmt.Errorf("%w: unknown stage %q", usecase.ErrInvalidInput, stage)
	}
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return report, nil
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

func openDB(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	dbURL := NormalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)
	db, err := otelsqlx.Open("postgres", dbURL,
		otelsql.WithAttributes(attribute.String("db.system", "postgresql")),
		otelsql.WithDBName(dbNameFromURL(dbURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, dbPingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: ping postgres: %v", usecase.ErrDependencyUnavailable, err)
	}
	return db, nil
}

func memoryRepositories() usecase.LoadRepositories {
	return usecase.LoadRepositories{
		Teams:       memory.NewTeamRepository(nil),
		Players:     memory.NewPlayerRepository(nil),
		Fixtures:    memory.NewFixtureRepository(nil),
		TeamStats:   memory.NewTeamStatsRepository(),
		PlayerStats: memory.NewPlayerStatsRepository(),
	}
}

func postgresRepositories(db *sqlx.DB) usecase.LoadRepositories {
	return usecase.LoadRepositories{
		Teams:       postgres.NewTeamRepository(db),
		Players:     postgres.NewPlayerRepository(db),
		Fixtures:    postgres.NewFixtureRepository(db),
		TeamStats:   postgres.NewTeamStatsRepository(db),
		PlayerStats: postgres.NewPlayerStatsRepository(db),
	}
}
