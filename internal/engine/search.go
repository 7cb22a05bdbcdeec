package engine

import "math"

// chooseMove runs the alpha-beta root for the side to move. Every legal
// column is scored and only a strictly better score replaces the
// candidate, so earlier (more central) columns keep priority on ties.
func chooseMove(state *GameState, depth int) (int, error) {
	player := state.toMove
	bestCol := -1
	alpha := math.MinInt32 / 2
	beta := math.MaxInt32 / 2
	for _, col := range state.LegalMoves() {
		child := state.Clone()
		outcome, err := child.Play(col)
		if err != nil {
			return 0, err
		}
		var val int
		switch {
		case outcome.Won:
			val = winScore - 1
		case child.IsFull():
			val = 0 // forced draw
		default:
			val = -negamax(&child, depth-1, -beta, -alpha, player.Opponent())
		}
		if val > alpha {
			alpha = val
			bestCol = col
		}
	}
	if bestCol < 0 {
		return 0, ErrNoMoves
	}
	return bestCol, nil
}

// negamax explores to the remaining depth and returns the best score
// achievable for player. Child wins are rewarded by remaining depth so
// nearer wins outscore distant ones.
func negamax(state *GameState, depth, alpha, beta int, player Player) int {
	if depth <= 0 || state.IsFull() {
		return evaluate(state, player)
	}

	best := math.MinInt32 / 2

	for _, col := range state.LegalMoves() {
		child := state.Clone()
		// Columns come from LegalMoves, the play cannot fail.
		outcome, _ := child.Play(col)
		var score int
		switch {
		case outcome.Won:
			score = winScore - 1 + depth
		case child.IsFull():
			score = 0
		default:
			score = -negamax(&child, depth-1, -beta, -alpha, player.Opponent())
		}
		if score > best {
			best = score
		}
		if score > alpha {
			alpha = score
		}
		if alpha >= beta {
			break
		}
	}
	return best
}
