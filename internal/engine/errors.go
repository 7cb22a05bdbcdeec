package engine

import (
	"errors"
	"fmt"
)

// ErrNoMoves is returned when a move is requested on a full board.
var ErrNoMoves = errors.New("no legal moves remain")

// ParseMoveError reports a malformed move history string, pointing at
// the offending character.
type ParseMoveError struct {
	Position int
	Reason   string
}

func (e *ParseMoveError) Error() string {
	return fmt.Sprintf("invalid move string at position %d: %s", e.Position, e.Reason)
}

// ColumnFullError reports a placement into a column that already holds
// six pieces.
type ColumnFullError struct {
	Column int
}

func (e *ColumnFullError) Error() string {
	return fmt.Sprintf("column %d is full", e.Column)
}

// ColumnOutOfBoundsError reports a placement outside columns 0-6.
type ColumnOutOfBoundsError struct {
	Column int
}

func (e *ColumnOutOfBoundsError) Error() string {
	return fmt.Sprintf("column %d is out of bounds", e.Column)
}

// DepthError reports a requested search depth outside the supported
// range.
type DepthError struct {
	Depth int
}

func (e *DepthError) Error() string {
	return fmt.Sprintf("depth %d is out of range (1-15)", e.Depth)
}
