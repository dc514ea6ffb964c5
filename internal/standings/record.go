package standings

// Record holds the aggregate totals for one ranked entity: a player for
// most formats, a named team for team battles.
type Record struct {
	EntityID  string
	Name      string
	Wins      int
	Losses    int
	GamesWon  int
	GamesLost int
}

func (r *Record) GamesDiff() int {
	return r.GamesWon - r.GamesLost
}

func (r *Record) WinPercentage() float64 {
	total := r.Wins + r.Losses
	if total == 0 {
		return 0
	}
	return float64(r.Wins) / float64(total)
}

// Result is a decided match outcome. Winner is 1 or 2 and is already
// resolved through any tiebreaker; the raw scores may be equal.
type Result struct {
	Score1 int
	Score2 int
	Winner int
}
