package usecase

import (
	"testing"
	"testing/fstest"

	"github.com/riskibarqy/laliga-stats/internal/domain/team"
	"github.com/riskibarqy/laliga-stats/internal/infrastructure/csvfile"
	"github.com/riskibarqy/laliga-stats/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/laliga-stats/internal/platform/logging"
	"github.com/riskibarqy/laliga-stats/internal/platform/table"
)

const (
	urlGironaRayo = "https://fbref.com/en/matches/abc123/Girona-Rayo-Vallecano-August-15-2025-La-Liga"
	urlClasico    = "https://fbref.com/en/matches/def456/El-Clasico-Real-Madrid-Barcelona-October-26-2025-La-Liga"
)

const schedulePage = `<html><body>
<table id="sched_2025-2026_12_1"><thead><tr><th>Wk</th></tr></thead><tbody>
<tr>
  <th data-stat="gameweek">1</th><td data-stat="dayofweek">Fri</td><td data-stat="date">2025-08-15</td>
  <td data-stat="start_time">19:00</td><td data-stat="home_team">Girona</td><td data-stat="score">1–3</td>
  <td data-stat="away_team">Rayo Vallecano</td><td data-stat="venue">Estadi Municipal de Montilivi</td>
  <td data-stat="match_report"><a href="/en/matches/abc123/Girona-Rayo-Vallecano-August-15-2025-La-Liga">Match Report</a></td>
</tr>
<tr>
  <th data-stat="gameweek">1</th><td data-stat="dayofweek">Sat</td><td data-stat="date">2025-08-16</td>
  <td data-stat="start_time">21:30</td><td data-stat="home_team">Mallorca</td><td data-stat="score"></td>
  <td data-stat="away_team">Barcelona</td><td data-stat="venue">Estadi Mallorca Son Moix</td>
  <td data-stat="match_report"><a href="/en/stathead/matchup/">Head-to-Head</a></td>
</tr>
</tbody></table></body></html>`

const playersPage = `<html><body><div id="all_stats_standard"><!--
<table id="stats_standard"><thead>
<tr><th>Rk</th><th>Player</th><th>Nation</th><th>Pos</th><th>Team</th><th>Age</th></tr>
</thead><tbody>
<tr><th>1</th><td>Lamine Yamal</td><td>es ESP</td><td>FW</td><td>Barcelona</td><td>18</td></tr>
<tr><th>2</th><td>Kylian Mbappé</td><td>fr FRA</td><td>FW</td><td>Real Madrid</td><td>26</td></tr>
<tr><th>3</th><td>Viktor Tsyhankov</td><td>ua UKR</td><td>FW,MF</td><td>Girona</td><td>27</td></tr>
<tr><th>4</th><td>Juan Cruz</td><td>ar ARG</td><td>FW</td><td>Leganés</td><td>25</td></tr>
</tbody></table>
--></div></body></html>`

const matchPage = `<html><body>
<div class="scorebox">
  <div><strong><a>Girona</a></strong><div class="scores"><div class="score">1</div></div></div>
  <div><strong><a>Rayo Vallecano</a></strong><div class="scores"><div class="score">3</div></div></div>
  <div class="scorebox_meta"><div>Friday August 15, 2025</div></div>
</div>
<div id="team_stats"><table>
<tr><th>Girona</th><th>Rayo Vallecano</th></tr>
<tr><th colspan="2">Possession</th></tr>
<tr><td><div><strong>61%</strong></div></td><td><div><strong>39%</strong></div></td></tr>
<tr><th colspan="2">Shots on Target</th></tr>
<tr><td>3 of 12 — 25%</td><td>40% — 4 of 10</td></tr>
<tr><th colspan="2">Saves</th></tr>
<tr><td>1 of 5 — 20%</td><td>3</td></tr>
</table></div>
<div id="div_stats_9024a00a_summary"><table><thead>
<tr class="over_header"><th colspan="2"></th><th colspan="2">Performance</th></tr>
<tr><th>Player</th><th>Pos</th><th>Gls</th><th>Ast</th></tr>
</thead><tbody>
<tr><th>Viktor Tsyhankov</th><td>RW</td><td>1</td><td>0</td></tr>
</tbody><tfoot><tr><th>14 Players</th><td></td><td>1</td><td>0</td></tr></tfoot></table></div>
<div id="div_stats_9024a00a_passing"><table><thead><tr><th>Player</th><th>Cmp</th></tr></thead>
<tbody><tr><th>Viktor Tsyhankov</th><td>40</td></tr></tbody></table></div>
<div id="div_stats_98e8af82_passing"><table><thead><tr><th>Player</th><th>Cmp</th></tr></thead>
<tbody><tr><th>Isi Palazón</th><td>31</td></tr></tbody></table></div>
</body></html>`

func pagePath(url string) string {
	return MatchPages([]string{url})[0].Name
}

func testPages() fstest.MapFS {
	return fstest.MapFS{
		"fixtures.html":         {Data: []byte(schedulePage)},
		"players.html":          {Data: []byte(playersPage)},
		pagePath(urlGironaRayo): {Data: []byte(matchPage)},
	}
}

func newTestStore(t *testing.T) *csvfile.Store {
	t.Helper()
	return csvfile.NewStore(t.TempDir(), csvfile.Options{})
}

func seededRoster() team.Roster {
	return team.NewRoster(memory.SeedTeams())
}

func newTestCatalog(store TableStore) *CatalogService {
	return NewCatalogService(memory.NewTeamRepository(memory.SeedTeams()), store, nil, logging.NewNop())
}

func tableOf(name string, cols []string, rows ...[]string) *table.Table {
	t := table.New(name, cols...)
	for _, row := range rows {
		t.Append(row...)
	}
	return t
}
