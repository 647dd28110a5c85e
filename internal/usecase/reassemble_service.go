package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/laliga-stats/internal/domain/slug"
	"github.com/riskibarqy/laliga-stats/internal/domain/team"
	"github.com/riskibarqy/laliga-stats/internal/domain/teamstats"
	"github.com/riskibarqy/laliga-stats/internal/platform/logging"
	"github.com/riskibarqy/laliga-stats/internal/platform/table"
)

// ReassembleService rebuilds match records from the flat team raw table.
type ReassembleService struct {
	store         TableStore
	noisePrefixes []string
	logger        *logging.Logger
}

func NewReassembleService(store TableStore, noisePrefixes []string, logger *logging.Logger) *ReassembleService {
	if len(noisePrefixes) == 0 {
		noisePrefixes = slug.DefaultNoisePrefixes
	}
	return &ReassembleService{
		store:         store,
		noisePrefixes: noisePrefixes,
		logger:        logger.Named("reassemble"),
	}
}

// Resolver returns the URL resolver the scan uses: team words from the
// slug matched against roster, month from the slug.
func (s *ReassembleService) Resolver(roster team.Roster) teamstats.ResolveFunc {
	return func(url string) (string, string, string, bool) {
		home, away, ok := roster.MatchTeams(slug.TeamWords(url, s.noisePrefixes))
		if !ok {
			return "", "", "", false
		}
		return home.Name, away.Name, slug.MonthOf(url), true
	}
}

// ReassembleTable scans raw in row order.
func (s *ReassembleService) ReassembleTable(ctx context.Context, raw *table.Table, roster team.Roster) (*table.Table, teamstats.ReassembleStats, error) {
	_, span := startUsecaseSpan(ctx, "usecase.ReassembleService.ReassembleTable")
	defer span.End()

	if err := raw.Require(teamstats.RawColumns[:3]...); err != nil {
		return nil, teamstats.ReassembleStats{}, err
	}

	r := teamstats.NewReassembler(s.Resolver(roster))
	cols := make([]string, len(teamstats.RawColumns))
	for i := 0; i < raw.Len(); i++ {
		for c, name := range teamstats.RawColumns {
			cols[c] = raw.Value(i, name)
		}
		r.Feed(teamstats.RawRowFromCells(cols))
	}
	records, stats := r.Close()

	out := table.New("normalized_fbref", teamstats.RecordColumns...)
	for _, rec := range records {
		out.AppendMap(rec.Values())
	}
	recordCounts(span, map[string]int{"rows": stats.Rows, "emitted": stats.Emitted, "unresolved_starts": stats.UnresolvedStarts})
	return out, stats, nil
}

// Reassemble reads the team raw table and writes the normalized stats table.
func (s *ReassembleService) Reassemble(ctx context.Context, roster team.Roster) (teamstats.ReassembleStats, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ReassembleService.Reassemble")
	defer span.End()

	raw, err := s.store.Read(ctx, FileTeamRaw)
	if err != nil {
		return teamstats.ReassembleStats{}, fmt.Errorf("read team raw rows: %w", err)
	}
	out, stats, err := s.ReassembleTable(ctx, raw, roster)
	if err != nil {
		return teamstats.ReassembleStats{}, fmt.Errorf("reassemble team stats: %w", err)
	}
	if err := s.store.Write(ctx, FileNormalizedStats, out); err != nil {
		return teamstats.ReassembleStats{}, fmt.Errorf("write normalized stats: %w", err)
	}

	if stats.UnresolvedStarts > 0 {
		s.logger.WarnContext(ctx, "match starts with unresolved teams skipped", "count", stats.UnresolvedStarts)
	}
	s.logger.InfoContext(ctx, "team stats reassembled", "rows", stats.Rows, "matches", stats.Emitted, "file", FileNormalizedStats)
	return stats, nil
}
