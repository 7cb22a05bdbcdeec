package engine

import "testing"

func TestEvaluateEmptyBoard(t *testing.T) {
	t.Parallel()

	state := NewGameState(PlayerRed)
	if got := evaluate(&state, PlayerRed); got != 0 {
		t.Fatalf("evaluate(empty, red) = %d, want 0", got)
	}
	if got := evaluate(&state, PlayerBlue); got != 0 {
		t.Fatalf("evaluate(empty, blue) = %d, want 0", got)
	}
}

func TestEvaluateTerminalWin(t *testing.T) {
	t.Parallel()

	state := mustReplay(t, "B0R1B0R1B0R1B0")
	if got := evaluate(&state, PlayerBlue); got != winScore {
		t.Fatalf("evaluate(won, blue) = %d, want %d", got, winScore)
	}
	if got := evaluate(&state, PlayerRed); got != -winScore {
		t.Fatalf("evaluate(won, red) = %d, want %d", got, -winScore)
	}
}

func TestEvaluateSingleCenterPiece(t *testing.T) {
	t.Parallel()

	// One red piece at the bottom of the center column: 3 for center
	// control plus 2 for each of the seven open lines through the cell
	// (four horizontal, one vertical, one per diagonal).
	state := mustReplay(t, "R3")
	if got := evaluate(&state, PlayerRed); got != 17 {
		t.Fatalf("evaluate(R3, red) = %d, want 17", got)
	}
	if got := evaluate(&state, PlayerBlue); got != -17 {
		t.Fatalf("evaluate(R3, blue) = %d, want -17", got)
	}
}

func TestEvaluateAntisymmetric(t *testing.T) {
	t.Parallel()

	histories := []string{
		"R3",
		"R3B3",
		"B2R2B1R3",
		"R0B0R1B1R2",
		"B0R3B1R4B2R5",
	}
	for _, history := range histories {
		state := mustReplay(t, history)
		red := evaluate(&state, PlayerRed)
		blue := evaluate(&state, PlayerBlue)
		if red != -blue {
			t.Errorf("evaluate(%q): red = %d, blue = %d, want negations", history, red, blue)
		}
	}
}

func TestEvaluatePrefersCenter(t *testing.T) {
	t.Parallel()

	center := mustReplay(t, "R3")
	edge := mustReplay(t, "R0")
	if evaluate(&center, PlayerRed) <= evaluate(&edge, PlayerRed) {
		t.Fatalf("center drop scored %d, edge drop %d, want center higher",
			evaluate(&center, PlayerRed), evaluate(&edge, PlayerRed))
	}
}

func TestEvaluateBlockedLineScoresNothing(t *testing.T) {
	t.Parallel()

	// Red owns three on the bottom row. Blue landing on column 3 kills
	// the 0-3 line, so the position must score lower for red.
	open := mustReplay(t, "R0R1R2")
	blocked := mustReplay(t, "R0R1R2B3")
	if evaluate(&blocked, PlayerRed) >= evaluate(&open, PlayerRed) {
		t.Fatalf("blocked three scored %d, open three %d, want blocked lower",
			evaluate(&blocked, PlayerRed), evaluate(&open, PlayerRed))
	}
}
