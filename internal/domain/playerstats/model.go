package playerstats

// MatchStat is one player's line in one match. Stats keeps every stat
// column the source table carried, keyed by its flattened header.
type MatchStat struct {
	MatchID  int64  `validate:"gt=0"`
	PlayerID string `validate:"required,startswith=PLY-"`
	Stats    map[string]string
}

// Key identifies a player's line within a match.
type Key struct {
	MatchID  int64
	PlayerID string
}

func (m MatchStat) Key() Key {
	return Key{MatchID: m.MatchID, PlayerID: m.PlayerID}
}
