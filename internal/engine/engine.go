// Package engine computes best moves for Connect Four positions. It is
// fully stateless: callers feed a move history string (e.g. "B3R3B2R4")
// and a search depth in plies (1-15), and the engine answers for the
// side whose turn is next after that history.
package engine

// MoveRequest is the engine input: a move history string and a search
// depth in plies.
type MoveRequest struct {
	Position string `json:"position"`
	Level    int    `json:"level"`
}

// MoveResponse carries the chosen column.
type MoveResponse struct {
	Column int `json:"column"`
}

// BestMove validates the request, replays the history into a board and
// returns the column the search judges best for the side to move.
func BestMove(req MoveRequest) (MoveResponse, error) {
	if req.Level < 1 || req.Level > 15 {
		return MoveResponse{}, &DepthError{Depth: req.Level}
	}
	moves, err := ParseHistory(req.Position)
	if err != nil {
		return MoveResponse{}, err
	}
	state, err := Replay(moves)
	if err != nil {
		return MoveResponse{}, err
	}
	column, err := chooseMove(&state, req.Level)
	if err != nil {
		return MoveResponse{}, err
	}
	return MoveResponse{Column: column}, nil
}
