package usecase

import (
	"context"

	"github.com/riskibarqy/laliga-stats/internal/platform/table"
)

// TableStore reads and writes the named tables stages exchange.
type TableStore interface {
	Exists(ctx context.Context, name string) bool
	Read(ctx context.Context, name string) (*table.Table, error)
	Write(ctx context.Context, name string, t *table.Table) error
	Append(ctx context.Context, name string, t *table.Table) ([]string, error)
}

// Table names inside the data directory.
const (
	FileTeamsCatalog        = "equipos_final_ids.csv"
	FilePlayers             = "jugadores_laliga.csv"
	FilePlayersWithIDs      = "jugadores_laliga_ids_FINAL.csv"
	FileFixtures            = "laliga_fixtures.csv"
	FileTeamRaw             = "team_raw.csv"
	FilePlayerRaw           = "jugadores_raw.csv"
	FileNormalizedStats     = "normalized_fbref.csv"
	FileFixturesWithID      = "laliga_partidos_with_id.csv"
	FileStatsWithID         = "normalized_estadisticas_equipos_with_id.csv"
	FilePlayerRawWithID     = "jugadores_raw_with_id.csv"
	FileMatchesFinal        = "PARTIDOS_FINAL.csv"
	FileTeamStatsFinal      = "TEAM_STATS_FINAL.csv"
	FileTeamMatchStatsFinal = "TEAM_MATCH_STATS_FINAL.csv"
	FilePlayerStatsFinal    = "PLAYER_STATS_FINAL.csv"
)

// Shared column names.
const (
	colID         = "id"
	colTeamID     = "team_id"
	colPlayerID   = "player_id"
	colHomeTeamID = "home_team_id"
	colAwayTeamID = "away_team_id"
	colPlayer     = "Player"
	colSquad      = "Squad"
)

// Catalog columns.
const (
	colEquipo    = "equipo"
	colEstadio   = "estadio"
	colCiudad    = "ciudad"
	colCapacidad = "capacidad"
)

func readRequired(ctx context.Context, store TableStore, name string, cols ...string) (*table.Table, error) {
	t, err := store.Read(ctx, name)
	if err != nil {
		return nil, err
	}
	if err := t.Require(cols...); err != nil {
		return nil, err
	}
	return t, nil
}
