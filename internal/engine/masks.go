package engine

// Board geometry. Each column owns seven bits of the occupancy mask:
// six playable rows plus a sentinel row on top that is never occupied,
// so the shift-based win checks cannot run across column boundaries.
const (
	Width     = 7
	Height    = 6
	colHeight = Height + 1
	MaxCells  = Width * Height
)

// moveOrder lists columns center-first so alpha-beta sees the strongest
// branches early.
var moveOrder = [Width]int{3, 2, 4, 1, 5, 0, 6}

var (
	// winMasks holds every four-in-a-row line on the board as a bitmask.
	winMasks []uint64
	// centerMask covers the six playable cells of the center column.
	centerMask uint64
)

func init() {
	winMasks = generateWinMasks()
	for row := 0; row < Height; row++ {
		centerMask |= bitFor(Width/2, row)
	}
}

// bitFor maps a cell to its bit in a player's occupancy mask.
func bitFor(col, row int) uint64 {
	return 1 << uint(col*colHeight+row)
}

func generateWinMasks() []uint64 {
	masks := make([]uint64, 0, 69)
	// Horizontal
	for row := 0; row < Height; row++ {
		for col := 0; col <= Width-4; col++ {
			var mask uint64
			for offset := 0; offset < 4; offset++ {
				mask |= bitFor(col+offset, row)
			}
			masks = append(masks, mask)
		}
	}
	// Vertical
	for col := 0; col < Width; col++ {
		for row := 0; row <= Height-4; row++ {
			var mask uint64
			for offset := 0; offset < 4; offset++ {
				mask |= bitFor(col, row+offset)
			}
			masks = append(masks, mask)
		}
	}
	// Diagonal \
	for col := 0; col <= Width-4; col++ {
		for row := 0; row <= Height-4; row++ {
			var mask uint64
			for offset := 0; offset < 4; offset++ {
				mask |= bitFor(col+offset, row+offset)
			}
			masks = append(masks, mask)
		}
	}
	// Diagonal /
	for col := 0; col <= Width-4; col++ {
		for row := 3; row < Height; row++ {
			var mask uint64
			for offset := 0; offset < 4; offset++ {
				mask |= bitFor(col+offset, row-offset)
			}
			masks = append(masks, mask)
		}
	}
	return masks
}

// hasWon reports whether a single player's occupancy mask contains four
// aligned pieces. Four shift/AND pairs, one per direction; the sentinel
// row keeps runs from wrapping between columns.
func hasWon(bits uint64) bool {
	// Vertical
	m := bits & (bits >> 1)
	if m&(m>>2) != 0 {
		return true
	}
	// Horizontal
	m = bits & (bits >> colHeight)
	if m&(m>>(2*colHeight)) != 0 {
		return true
	}
	// Diagonal /
	m = bits & (bits >> (colHeight - 1))
	if m&(m>>(2*(colHeight-1))) != 0 {
		return true
	}
	// Diagonal \
	m = bits & (bits >> (colHeight + 1))
	if m&(m>>(2*(colHeight+1))) != 0 {
		return true
	}
	return false
}
