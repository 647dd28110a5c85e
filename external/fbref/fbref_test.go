package fbref

import (
	"reflect"
	"strings"
	"testing"

	crerr "github.com/cockroachdb/errors"
)

const schedulePage = `<html><head><link rel="canonical" href="https://fbref.com/en/comps/12/schedule/La-Liga-Scores-and-Fixtures"></head><body>
<table id="sched_2025-2026_12_1"><thead><tr><th>Wk</th></tr></thead><tbody>
<tr>
  <th data-stat="gameweek">1</th><td data-stat="dayofweek">Fri</td><td data-stat="date"><a>2025-08-15</a></td>
  <td data-stat="start_time">19:00</td><td data-stat="home_team"><a>Girona</a></td><td data-stat="score">1–3</td>
  <td data-stat="away_team"><a>Rayo  Vallecano</a></td><td data-stat="venue">Estadi Municipal de Montilivi</td>
  <td data-stat="match_report"><a href="/en/matches/abc123/Girona-Rayo-Vallecano-August-15-2025-La-Liga">Match Report</a></td>
</tr>
<tr class="spacer"><td></td></tr>
<tr class="thead"><th>Wk</th></tr>
<tr>
  <th data-stat="gameweek">1</th><td data-stat="dayofweek">Sat</td><td data-stat="date">2025-08-16</td>
  <td data-stat="start_time">21:30</td><td data-stat="home_team">Mallorca</td><td data-stat="score"></td>
  <td data-stat="away_team">Barcelona</td><td data-stat="venue">Estadi Mallorca Son Moix</td>
  <td data-stat="match_report"><a href="/en/stathead/matchup/">Head-to-Head</a></td>
</tr>
</tbody></table></body></html>`

func TestParseFixtures(t *testing.T) {
	t.Parallel()

	got, err := ParseFixtures(strings.NewReader(schedulePage))
	if err != nil {
		t.Fatalf("parse fixtures: %v", err)
	}
	if got.Len() != 2 {
		t.Fatalf("expected 2 fixtures, got=%d", got.Len())
	}
	if got.Value(0, ColAway) != "Rayo Vallecano" {
		t.Fatalf("unexpected away team %q", got.Value(0, ColAway))
	}
	if got.Value(0, ColMatchURL) != "https://fbref.com/en/matches/abc123/Girona-Rayo-Vallecano-August-15-2025-La-Liga" {
		t.Fatalf("unexpected match url %q", got.Value(0, ColMatchURL))
	}
	if got.Value(1, ColMatchURL) != "" {
		t.Fatalf("non match links must be ignored, got %q", got.Value(1, ColMatchURL))
	}
	if urls := MatchURLs(got); len(urls) != 1 {
		t.Fatalf("expected one match url, got %v", urls)
	}
}

func TestParseFixtures_MissingTable(t *testing.T) {
	t.Parallel()

	_, err := ParseFixtures(strings.NewReader("<html><body><p>nothing</p></body></html>"))
	if !crerr.Is(err, ErrTableNotFound) {
		t.Fatalf("expected ErrTableNotFound, got %v", err)
	}
}

const playersPage = `<html><body><div id="all_stats_standard"><!--
<table id="stats_standard"><thead>
<tr class="over_header"><th colspan="5"></th><th colspan="2">Performance</th></tr>
<tr><th>Rk</th><th>Player</th><th>Nation</th><th>Pos</th><th>Team</th><th>Gls</th><th>Gls</th></tr>
</thead><tbody>
<tr><th>1</th><td>Lamine Yamal</td><td>es ESP</td><td>FW</td><td>Barcelona</td><td>2</td><td>0.5</td></tr>
<tr class="thead"><th>Rk</th><td>Player</td></tr>
<tr><th>2</th><td>Kylian Mbappé</td><td>fr FRA</td><td>FW</td><td>Real Madrid</td><td>5</td><td>1.2</td></tr>
</tbody></table>
--></div></body></html>`

func TestParseStandardPlayers(t *testing.T) {
	t.Parallel()

	got, err := ParseStandardPlayers(strings.NewReader(playersPage))
	if err != nil {
		t.Fatalf("parse players: %v", err)
	}
	wantCols := []string{"Player", "Nation", "Pos", "Squad", "Gls", "Gls.1"}
	if !reflect.DeepEqual(got.Columns, wantCols) {
		t.Fatalf("unexpected columns %v", got.Columns)
	}
	if got.Len() != 2 {
		t.Fatalf("expected 2 players, got=%d", got.Len())
	}
	if got.Value(1, "Squad") != "Real Madrid" || got.Value(1, "Player") != "Kylian Mbappé" {
		t.Fatalf("unexpected row %v", got.Rows[1])
	}
}

const matchPage = `<html><head><link rel="canonical" href="https://fbref.com/en/matches/abc123/Girona-Rayo-Vallecano-August-15-2025-La-Liga"></head><body>
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
</table></div>
<div id="div_stats_9024a00a_summary"><table><thead>
<tr class="over_header"><th colspan="2"></th><th colspan="2">Performance</th></tr>
<tr><th>Player</th><th>Pos</th><th>Gls</th><th>Ast</th></tr>
</thead><tbody>
<tr><th>Viktor Tsyhankov</th><td>RW</td><td>1</td><td>0</td></tr>
<tr><th>Bench</th><td></td><td></td><td></td></tr>
</tbody><tfoot><tr><th>14 Players</th><td></td><td>1</td><td>0</td></tr></tfoot></table></div>
<div id="div_stats_keeper_9024a00a"><table><thead><tr><th>Player</th></tr></thead><tbody><tr><td>Gazzaniga</td></tr></tbody></table></div>
<div id="div_stats_98e8af82_passing"><table><thead><tr><th>Player</th><th>Cmp</th></tr></thead>
<tbody><tr><th>Isi Palazón</th><td>31</td></tr></tbody></table></div>
</body></html>`

func TestParseMatch(t *testing.T) {
	t.Parallel()

	got, err := ParseMatch(strings.NewReader(matchPage), "")
	if err != nil {
		t.Fatalf("parse match: %v", err)
	}
	if got.URL != "https://fbref.com/en/matches/abc123/Girona-Rayo-Vallecano-August-15-2025-La-Liga" {
		t.Fatalf("expected canonical url, got %q", got.URL)
	}
	if got.Scorebox.HomeTeam != "Girona" || got.Scorebox.AwayTeam != "Rayo Vallecano" || got.Scorebox.Score != "1-3" {
		t.Fatalf("unexpected scorebox %+v", got.Scorebox)
	}

	if len(got.TeamRows) != 4 {
		t.Fatalf("expected 4 team rows, got=%d", len(got.TeamRows))
	}
	if got.TeamRows[0].Home != "Possession" || got.TeamRows[0].Away != "Possession" {
		t.Fatalf("label row not spread: %+v", got.TeamRows[0])
	}
	if got.TeamRows[1].Home != "61%" || got.TeamRows[1].Away != "39%" {
		t.Fatalf("unexpected possession row %+v", got.TeamRows[1])
	}
	if got.TeamRows[3].Filler[0] != "Girona" {
		t.Fatalf("filler must carry scorebox, got %v", got.TeamRows[3].Filler)
	}

	players := got.Players
	if players.Len() != 3 {
		t.Fatalf("expected 3 player rows, got=%d (%v)", players.Len(), players.Rows)
	}
	wantCols := []string{"Player", "Pos", "Performance_Gls", "Performance_Ast", ColStatType, ColTeam, "Cmp", ColRawMatchURL}
	if !reflect.DeepEqual(players.Columns, wantCols) {
		t.Fatalf("unexpected columns %v", players.Columns)
	}
	if players.Value(1, "Player") != "14 Players" {
		t.Fatalf("expected totals row kept, got %q", players.Value(1, "Player"))
	}
	if players.Value(2, ColTeam) != "98e8af82" || players.Value(2, ColStatType) != "98e8af82_passing" {
		t.Fatalf("unexpected bookkeeping %v", players.Rows[2])
	}
	if players.Value(0, ColRawMatchURL) != got.URL {
		t.Fatalf("match url not stamped")
	}
	if got.Empty() {
		t.Fatalf("page must not be empty")
	}
}

func TestParseMatch_EmptyPage(t *testing.T) {
	t.Parallel()

	got, err := ParseMatch(strings.NewReader("<html><body></body></html>"), "https://fbref.com/en/matches/x")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !got.Empty() {
		t.Fatalf("expected empty match")
	}
}

func TestDedupe(t *testing.T) {
	t.Parallel()

	got := dedupe([]string{"Gls", "Ast", "Gls", "Gls"})
	want := []string{"Gls", "Ast", "Gls.1", "Gls.2"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected %v", got)
	}
}

const sameTeamMatchPage = `<html><body>
<div id="div_stats_9024a00a_summary"><table><thead>
<tr class="over_header"><th colspan="1"></th><th colspan="1">Performance</th></tr>
<tr><th>Player</th><th>Gls</th></tr>
</thead><tbody><tr><th>Viktor Tsyhankov</th><td>1</td></tr></tbody></table></div>
<div id="div_stats_9024a00a_passing"><table><thead><tr><th>Player</th><th>Cmp</th></tr></thead>
<tbody><tr><th>Viktor Tsyhankov</th><td>40</td></tr></tbody></table></div>
</body></html>`

func TestParseMatch_PlayerInSeveralStatTables(t *testing.T) {
	t.Parallel()

	url := "https://fbref.com/en/matches/abc123/Girona-Rayo-Vallecano-August-15-2025-La-Liga"
	got, err := ParseMatch(strings.NewReader(sameTeamMatchPage), url)
	if err != nil {
		t.Fatalf("parse match: %v", err)
	}

	players := got.Players
	if players.Len() != 2 {
		t.Fatalf("expected one row per stat table, got=%d (%v)", players.Len(), players.Rows)
	}
	for i, statType := range []string{"9024a00a_summary", "9024a00a_passing"} {
		if players.Value(i, ColPlayer) != "Viktor Tsyhankov" || players.Value(i, ColTeam) != "9024a00a" {
			t.Fatalf("unexpected row %d: %v", i, players.Rows[i])
		}
		if players.Value(i, ColStatType) != statType {
			t.Fatalf("row %d stat type = %q, want %q", i, players.Value(i, ColStatType), statType)
		}
	}
	if players.Value(0, "Performance_Gls") != "1" || players.Value(0, "Cmp") != "" {
		t.Fatalf("summary row carries only its own stats: %v", players.Rows[0])
	}
	if players.Value(1, "Cmp") != "40" || players.Value(1, "Performance_Gls") != "" {
		t.Fatalf("passing row carries only its own stats: %v", players.Rows[1])
	}
}
