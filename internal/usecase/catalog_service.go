package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/laliga-stats/internal/domain/team"
	idgen "github.com/riskibarqy/laliga-stats/internal/platform/id"
	"github.com/riskibarqy/laliga-stats/internal/platform/logging"
	"github.com/riskibarqy/laliga-stats/internal/platform/table"
)

// CatalogReport summarizes the catalog stage.
type CatalogReport struct {
	Teams          int      `json:"teams"`
	Players        int      `json:"players"`
	UnmappedSquads []string `json:"unmapped_squads,omitempty"`
}

// CatalogService owns the team catalog and the player id assignment.
type CatalogService struct {
	teamRepo team.Repository
	store    TableStore
	ids      idgen.Generator
	logger   *logging.Logger
}

func NewCatalogService(teamRepo team.Repository, store TableStore, ids idgen.Generator, logger *logging.Logger) *CatalogService {
	if ids == nil {
		ids = idgen.NewMD5Generator()
	}
	return &CatalogService{
		teamRepo: teamRepo,
		store:    store,
		ids:      ids,
		logger:   logger.Named("catalog"),
	}
}

// BuildTeams assigns team ids to the catalog and writes it out.
func (s *CatalogService) BuildTeams(ctx context.Context) ([]team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogService.BuildTeams")
	defer span.End()

	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	if len(teams) == 0 {
		return nil, fmt.Errorf("%w: team catalog is empty", ErrNotFound)
	}

	out := table.New("teams", colEquipo, colEstadio, colCiudad, colCapacidad, colTeamID)
	for i := range teams {
		teams[i].Name = strings.TrimSpace(teams[i].Name)
		teams[i].ID = s.ids.TeamID(teams[i].Name)
		out.Append(teams[i].Name, teams[i].Stadium, teams[i].City, strconv.Itoa(teams[i].Capacity), teams[i].ID)
	}

	if err := s.store.Write(ctx, FileTeamsCatalog, out); err != nil {
		return nil, fmt.Errorf("write team catalog: %w", err)
	}
	s.logger.InfoContext(ctx, "team catalog written", "teams", len(teams), "file", FileTeamsCatalog)
	return teams, nil
}

// Roster loads the written catalog, falling back to the repository when
// the catalog has not been built yet.
func (s *CatalogService) Roster(ctx context.Context) (team.Roster, error) {
	t, err := readRequired(ctx, s.store, FileTeamsCatalog, colEquipo, colTeamID)
	if err == nil {
		teams := make([]team.Team, 0, t.Len())
		for i := 0; i < t.Len(); i++ {
			teams = append(teams, team.Team{Name: t.Value(i, colEquipo), ID: t.Value(i, colTeamID)})
		}
		return team.NewRoster(teams), nil
	}
	if !crerr.Is(err, table.ErrNotFound) {
		return team.Roster{}, fmt.Errorf("read team catalog: %w", err)
	}

	teams, err := s.BuildTeams(ctx)
	if err != nil {
		return team.Roster{}, err
	}
	return team.NewRoster(teams), nil
}

// AssignPlayers adds player_id and team_id to a player table. Squads the
// roster does not know are reported, their players keep an empty team_id.
func (s *CatalogService) AssignPlayers(ctx context.Context, players *table.Table, roster team.Roster) (*table.Table, CatalogReport, error) {
	_, span := startUsecaseSpan(ctx, "usecase.CatalogService.AssignPlayers")
	defer span.End()

	if err := players.Require(colPlayer, colSquad); err != nil {
		return nil, CatalogReport{}, err
	}

	unmapped := make(map[string]struct{})
	var unmappedOrder []string

	players.AddColumn(colPlayerID, func(row int) string {
		return s.ids.PlayerID(players.Value(row, colPlayer))
	})
	players.AddColumn(colTeamID, func(row int) string {
		squad := players.Value(row, colSquad)
		if e, ok := roster.Lookup(squad); ok {
			return e.ID
		}
		if _, seen := unmapped[squad]; !seen {
			unmapped[squad] = struct{}{}
			unmappedOrder = append(unmappedOrder, squad)
		}
		return ""
	})

	out := players.Front(colPlayerID, colTeamID)
	report := CatalogReport{Teams: roster.Len(), Players: out.Len(), UnmappedSquads: unmappedOrder}
	return out, report, nil
}

// BuildPlayers runs AssignPlayers over the extracted player roster.
func (s *CatalogService) BuildPlayers(ctx context.Context, roster team.Roster) (CatalogReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogService.BuildPlayers")
	defer span.End()

	players, err := s.store.Read(ctx, FilePlayers)
	if err != nil {
		return CatalogReport{}, fmt.Errorf("read players: %w", err)
	}
	out, report, err := s.AssignPlayers(ctx, players, roster)
	if err != nil {
		return CatalogReport{}, fmt.Errorf("assign player ids: %w", err)
	}
	if len(report.UnmappedSquads) > 0 {
		s.logger.WarnContext(ctx, "squads without team id", "squads", report.UnmappedSquads)
	}

	if err := s.store.Write(ctx, FilePlayersWithIDs, out); err != nil {
		return CatalogReport{}, fmt.Errorf("write players: %w", err)
	}
	s.logger.InfoContext(ctx, "player ids assigned", "players", report.Players, "file", FilePlayersWithIDs)
	return report, nil
}
