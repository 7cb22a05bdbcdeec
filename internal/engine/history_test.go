package engine

import (
	"errors"
	"testing"
)

func TestParseHistory(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		history string
		want    []TypedMove
	}{
		{
			name:    "empty string",
			history: "",
			want:    nil,
		},
		{
			name:    "whitespace only",
			history: "   \t",
			want:    nil,
		},
		{
			name:    "single move",
			history: "R3",
			want:    []TypedMove{{Player: PlayerRed, Column: 3}},
		},
		{
			name:    "alternating moves",
			history: "B2R2B1R3",
			want: []TypedMove{
				{Player: PlayerBlue, Column: 2},
				{Player: PlayerRed, Column: 2},
				{Player: PlayerBlue, Column: 1},
				{Player: PlayerRed, Column: 3},
			},
		},
		{
			name:    "lowercase tags",
			history: "r0b6",
			want: []TypedMove{
				{Player: PlayerRed, Column: 0},
				{Player: PlayerBlue, Column: 6},
			},
		},
		{
			name:    "repeated player trusted as declared",
			history: "R1R2R3",
			want: []TypedMove{
				{Player: PlayerRed, Column: 1},
				{Player: PlayerRed, Column: 2},
				{Player: PlayerRed, Column: 3},
			},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseHistory(tc.history)
			if err != nil {
				t.Fatalf("ParseHistory(%q) returned error: %v", tc.history, err)
			}
			if len(got) != len(tc.want) {
				t.Fatalf("ParseHistory(%q) = %v, want %v", tc.history, got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Fatalf("ParseHistory(%q)[%d] = %v, want %v", tc.history, i, got[i], tc.want[i])
				}
			}
		})
	}
}

func TestParseHistoryErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		history    string
		wantPos    int
		wantReason string
	}{
		{
			name:       "bad player tag",
			history:    "X3",
			wantPos:    0,
			wantReason: "expected R or B, found X",
		},
		{
			name:       "missing column digit",
			history:    "R",
			wantPos:    1,
			wantReason: "missing column number",
		},
		{
			name:       "missing column digit after valid token",
			history:    "R0B",
			wantPos:    3,
			wantReason: "missing column number",
		},
		{
			name:       "non-digit column",
			history:    "RX",
			wantPos:    1,
			wantReason: "expected column digit, found X",
		},
		{
			name:       "column beyond board width",
			history:    "R7",
			wantPos:    1,
			wantReason: "column must be 0-6",
		},
		{
			name:       "error position counts earlier tokens",
			history:    "R0B1Z2",
			wantPos:    4,
			wantReason: "expected R or B, found Z",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := ParseHistory(tc.history)
			if err == nil {
				t.Fatalf("ParseHistory(%q) succeeded, want parse error", tc.history)
			}
			var parseErr *ParseMoveError
			if !errors.As(err, &parseErr) {
				t.Fatalf("ParseHistory(%q) error = %v, want *ParseMoveError", tc.history, err)
			}
			if parseErr.Position != tc.wantPos {
				t.Errorf("error position = %d, want %d", parseErr.Position, tc.wantPos)
			}
			if parseErr.Reason != tc.wantReason {
				t.Errorf("error reason = %q, want %q", parseErr.Reason, tc.wantReason)
			}
		})
	}
}

func TestParseHistoryErrorMessage(t *testing.T) {
	t.Parallel()

	_, err := ParseHistory("R9")
	if err == nil {
		t.Fatal("ParseHistory(\"R9\") succeeded, want parse error")
	}
	want := "invalid move string at position 1: column must be 0-6"
	if err.Error() != want {
		t.Fatalf("error message = %q, want %q", err.Error(), want)
	}
}
