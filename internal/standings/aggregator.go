package standings

// ApplyResult folds a match outcome into the two sides' records. When the
// match had a previous result, that result's contribution is subtracted
// before the new one is added. The reversal is what makes re-scoring an
// idempotent, order-independent correction: applying the same result twice
// is a no-op, and correcting A→B→A restores the exact prior records.
//
// A nil newRes clears a previously recorded result without replacing it.
func ApplyResult(records map[string]*Record, sideA, sideB []string, oldRes, newRes *Result) {
	if oldRes != nil {
		applyResult(records, sideA, sideB, *oldRes, -1)
	}
	if newRes != nil {
		applyResult(records, sideA, sideB, *newRes, +1)
	}
}

func applyResult(records map[string]*Record, sideA, sideB []string, res Result, sign int) {
	applySide(records, sideA, 1, res, sign)
	applySide(records, sideB, 2, res, sign)
}

func applySide(records map[string]*Record, side []string, team int, res Result, sign int) {
	for _, id := range side {
		r, ok := records[id]
		if !ok {
			continue
		}
		if res.Winner == team {
			r.Wins += sign
		} else {
			r.Losses += sign
		}
		if team == 1 {
			r.GamesWon += sign * res.Score1
			r.GamesLost += sign * res.Score2
		} else {
			r.GamesWon += sign * res.Score2
			r.GamesLost += sign * res.Score1
		}
	}
}
