package engine

import (
	"fmt"
	"strings"
)

// ParseHistory decodes a move history string such as "R3B3R2" into an
// ordered move list. Tokens are two characters: a case-insensitive
// player tag (R or B) followed by a column digit 0-6. An empty or
// whitespace-only string decodes to an empty history. Validation here
// is purely lexical; column-full conflicts surface during replay.
func ParseHistory(history string) ([]TypedMove, error) {
	if strings.TrimSpace(history) == "" {
		return nil, nil
	}
	chars := []rune(history)
	moves := make([]TypedMove, 0, len(chars)/2)
	idx := 0
	for idx < len(chars) {
		var player Player
		switch chars[idx] {
		case 'R', 'r':
			player = PlayerRed
		case 'B', 'b':
			player = PlayerBlue
		default:
			return nil, &ParseMoveError{
				Position: idx,
				Reason:   fmt.Sprintf("expected R or B, found %c", chars[idx]),
			}
		}
		idx++
		if idx >= len(chars) {
			return nil, &ParseMoveError{
				Position: idx,
				Reason:   "missing column number",
			}
		}
		columnChar := chars[idx]
		if columnChar < '0' || columnChar > '9' {
			return nil, &ParseMoveError{
				Position: idx,
				Reason:   fmt.Sprintf("expected column digit, found %c", columnChar),
			}
		}
		column := int(columnChar - '0')
		if column >= Width {
			return nil, &ParseMoveError{
				Position: idx,
				Reason:   fmt.Sprintf("column must be 0-%d", Width-1),
			}
		}
		moves = append(moves, TypedMove{Player: player, Column: column})
		idx++
	}
	return moves, nil
}
