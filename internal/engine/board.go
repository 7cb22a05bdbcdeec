package engine

// TypedMove is one decoded history token: which player dropped into
// which column.
type TypedMove struct {
	Player Player
	Column int
}

// MoveOutcome describes a single completed placement.
type MoveOutcome struct {
	Player Player
	Column int
	Won    bool
}

// GameState is a bitboard position: one occupancy mask per player plus
// per-column fill heights. States are small values; the search clones
// one per explored branch instead of undoing moves.
type GameState struct {
	players [2]uint64
	heights [Width]int
	toMove  Player
	moves   int
}

// NewGameState returns an empty board with toMove playing first.
func NewGameState(toMove Player) GameState {
	return GameState{toMove: toMove}
}

// Replay builds a board from decoded history moves. Each move is placed
// for its declared player regardless of strict alternation, and toMove
// ends up as the opponent of the last mover (Red on an empty history).
// The first illegal placement aborts the replay with its error.
func Replay(moves []TypedMove) (GameState, error) {
	if len(moves) == 0 {
		return NewGameState(PlayerRed), nil
	}
	state := NewGameState(moves[0].Player)
	for _, mv := range moves {
		if _, err := state.Place(mv.Player, mv.Column); err != nil {
			return GameState{}, err
		}
	}
	state.toMove = moves[len(moves)-1].Player.Opponent()
	return state, nil
}

// Place drops a piece for player into column, updating the occupancy
// mask, heights, move count and turn. The outcome reports whether the
// drop completed four in a row.
func (s *GameState) Place(player Player, column int) (MoveOutcome, error) {
	if column < 0 || column >= Width {
		return MoveOutcome{}, &ColumnOutOfBoundsError{Column: column}
	}
	height := s.heights[column]
	if height >= Height {
		return MoveOutcome{}, &ColumnFullError{Column: column}
	}
	s.players[player] |= bitFor(column, height)
	s.heights[column]++
	s.moves++
	won := hasWon(s.players[player])
	s.toMove = player.Opponent()
	return MoveOutcome{Player: player, Column: column, Won: won}, nil
}

// Play drops a piece for the side to move.
func (s *GameState) Play(column int) (MoveOutcome, error) {
	return s.Place(s.toMove, column)
}

// LegalMoves lists playable columns center-first.
func (s *GameState) LegalMoves() []int {
	cols := make([]int, 0, Width)
	for _, col := range moveOrder {
		if s.heights[col] < Height {
			cols = append(cols, col)
		}
	}
	return cols
}

// Bits returns player's occupancy mask.
func (s *GameState) Bits(player Player) uint64 {
	return s.players[player]
}

// ToMove returns the side to move.
func (s *GameState) ToMove() Player {
	return s.toMove
}

// MovesPlayed returns the number of pieces on the board.
func (s *GameState) MovesPlayed() int {
	return s.moves
}

// IsFull reports whether all 42 cells are occupied.
func (s *GameState) IsFull() bool {
	return s.moves >= MaxCells
}

// Clone returns an independent copy of the state.
func (s *GameState) Clone() GameState {
	return *s
}
