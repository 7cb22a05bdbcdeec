package engine

import (
	"errors"
	"testing"
)

func TestChooseMovePrefersCenterOpening(t *testing.T) {
	t.Parallel()

	state := NewGameState(PlayerRed)
	col, err := chooseMove(&state, 1)
	if err != nil {
		t.Fatalf("chooseMove returned error: %v", err)
	}
	if col != 3 {
		t.Fatalf("opening move = %d, want center column 3", col)
	}
}

func TestChooseMoveFullBoard(t *testing.T) {
	t.Parallel()

	state := NewGameState(PlayerRed)
	for col := 0; col < Width; col++ {
		for row := 0; row < Height; row++ {
			if _, err := state.Play(col); err != nil {
				t.Fatalf("Play(%d) returned error: %v", col, err)
			}
		}
	}
	_, err := chooseMove(&state, 5)
	if !errors.Is(err, ErrNoMoves) {
		t.Fatalf("chooseMove on full board = %v, want ErrNoMoves", err)
	}
}

func TestChooseMoveAlwaysLegal(t *testing.T) {
	t.Parallel()

	state := mustReplay(t, "R3B3R2B4")
	for depth := 1; depth <= 8; depth++ {
		working := state.Clone()
		col, err := chooseMove(&working, depth)
		if err != nil {
			t.Fatalf("depth %d: chooseMove returned error: %v", depth, err)
		}
		if col < 0 || col >= Width {
			t.Fatalf("depth %d: chose column %d outside the board", depth, col)
		}
		check := state.Clone()
		if _, err := check.Play(col); err != nil {
			t.Fatalf("depth %d: chose unplayable column %d: %v", depth, col, err)
		}
	}
}

func TestChooseMoveDoesNotMutateInput(t *testing.T) {
	t.Parallel()

	state := mustReplay(t, "R3B3")
	before := state
	if _, err := chooseMove(&state, 4); err != nil {
		t.Fatalf("chooseMove returned error: %v", err)
	}
	if state != before {
		t.Fatalf("chooseMove mutated its input state: %+v != %+v", state, before)
	}
}
