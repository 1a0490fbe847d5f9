package board

import (
	"fmt"

	apperrors "github.com/louisbranch/seabattle.space/internal/platform/errors"
)

// requiredFleet is the run-length histogram a valid placement must produce:
// one 4-length ship, two 3-length, three 2-length, four 1-length.
var requiredFleet = map[int]int{1: 4, 2: 3, 3: 2, 4: 1}

// maxShipLength is the longest ship in the fleet.
const maxShipLength = 4

// ValidatePlacement checks a submitted board against the required fleet
// composition: every ship a straight horizontal or vertical run of length 1-4,
// no two ships adjacent (including diagonals), and the run-length histogram
// exactly matching the fleet.
func ValidatePlacement(b *Board) error {
	if b == nil {
		return placementError("board is required", "missing board")
	}

	// Trace each contiguous run once, preferring horizontal continuation.
	var runID [Size][Size]int
	lengths := map[int]int{}
	nextRun := 0
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if b[r][c] != CellShip || runID[r][c] != 0 {
				continue
			}
			nextRun++
			length := 0
			if c+1 < Size && b[r][c+1] == CellShip {
				for cc := c; cc < Size && b[r][cc] == CellShip; cc++ {
					runID[r][cc] = nextRun
					length++
				}
			} else {
				for rr := r; rr < Size && b[rr][c] == CellShip; rr++ {
					runID[rr][c] = nextRun
					length++
				}
			}
			if length > maxShipLength {
				return placementError(
					fmt.Sprintf("ship of length %d exceeds maximum %d", length, maxShipLength),
					"ship is too long")
			}
			lengths[length]++
		}
	}

	// Two ship cells touching across different runs means ships are adjacent
	// or a run bends; both are illegal.
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if b[r][c] != CellShip {
				continue
			}
			for dr := -1; dr <= 1; dr++ {
				for dc := -1; dc <= 1; dc++ {
					if dr == 0 && dc == 0 {
						continue
					}
					nr, nc := r+dr, c+dc
					if nr < 0 || nr >= Size || nc < 0 || nc >= Size {
						continue
					}
					if b[nr][nc] == CellShip && runID[nr][nc] != runID[r][c] {
						return placementError(
							fmt.Sprintf("ships touch at (%d,%d) and (%d,%d)", r, c, nr, nc),
							"ships must not touch")
					}
				}
			}
		}
	}

	for length, want := range requiredFleet {
		if lengths[length] != want {
			return placementError(
				fmt.Sprintf("fleet has %d ships of length %d, want %d", lengths[length], length, want),
				"wrong fleet composition")
		}
	}
	for length := range lengths {
		if _, ok := requiredFleet[length]; !ok {
			return placementError(
				fmt.Sprintf("unexpected ship of length %d", length),
				"wrong fleet composition")
		}
	}

	return nil
}

func placementError(message, reason string) error {
	return apperrors.WithMetadata(apperrors.CodePlacementInvalid, message,
		map[string]string{"reason": reason})
}
