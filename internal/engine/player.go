package engine

// Player identifies one of the two sides. Red moves first in a fresh
// game.
type Player int

const (
	PlayerRed Player = iota
	PlayerBlue
)

// Opponent returns the other side.
func (p Player) Opponent() Player {
	if p == PlayerRed {
		return PlayerBlue
	}
	return PlayerRed
}

func (p Player) String() string {
	if p == PlayerRed {
		return "red"
	}
	return "blue"
}
