package engine

import "math/bits"

// winScore dominates any sum the positional heuristics can reach while
// leaving plenty of headroom below the alpha-beta bounds.
const winScore = 1_000_000

// evaluate scores a position from player's perspective. Terminal wins
// short-circuit; otherwise the score mixes center-column control with
// partial ownership of still-open winning lines. Lines holding pieces
// of both players are dead and contribute nothing.
func evaluate(state *GameState, player Player) int {
	mine := state.players[player]
	theirs := state.players[player.Opponent()]
	if hasWon(mine) {
		return winScore
	}
	if hasWon(theirs) {
		return -winScore
	}

	score := 3*bits.OnesCount64(mine&centerMask) - 3*bits.OnesCount64(theirs&centerMask)

	for _, mask := range winMasks {
		mineCount := bits.OnesCount64(mine & mask)
		theirsCount := bits.OnesCount64(theirs & mask)
		if mineCount > 0 && theirsCount > 0 {
			continue // blocked line
		}
		switch {
		case mineCount == 3:
			score += 50
		case mineCount == 2:
			score += 10
		case mineCount == 1:
			score += 2
		case theirsCount == 3:
			score -= 50
		case theirsCount == 2:
			score -= 10
		case theirsCount == 1:
			score -= 2
		}
	}
	return score
}
