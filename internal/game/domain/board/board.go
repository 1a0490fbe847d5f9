// Package board models a player's 10x10 grid and the rules that act on it:
// fleet placement validation and shot resolution.
package board

import (
	apperrors "github.com/louisbranch/seabattle.space/internal/platform/errors"
)

// Size is the board edge length.
const Size = 10

// CellState is the state of a single board cell. The numeric values are part
// of the wire contract with clients.
type CellState int8

const (
	CellEmpty CellState = 0
	CellShip  CellState = 1
	CellMiss  CellState = 2
	CellHit   CellState = 3
)

// Board is a fixed 10x10 grid of cell states. The zero value is an empty board.
type Board [Size][Size]CellState

// Position addresses one cell with zero-based coordinates.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// InBounds reports whether the position lies on the board.
func (p Position) InBounds() bool {
	return p.Row >= 0 && p.Row < Size && p.Col >= 0 && p.Col < Size
}

// Shot is one recorded shot in a player's shot log.
type Shot struct {
	Row int  `json:"row"`
	Col int  `json:"col"`
	Hit bool `json:"isHit"`
}

// FromCells builds a board from the row-major integer grid clients submit.
func FromCells(cells [][]int) (*Board, error) {
	if len(cells) != Size {
		return nil, apperrors.WithMetadata(apperrors.CodePlacementInvalid,
			"board must have 10 rows", map[string]string{"reason": "wrong dimensions"})
	}
	var b Board
	for r, row := range cells {
		if len(row) != Size {
			return nil, apperrors.WithMetadata(apperrors.CodePlacementInvalid,
				"board rows must have 10 cells", map[string]string{"reason": "wrong dimensions"})
		}
		for c, cell := range row {
			switch CellState(cell) {
			case CellEmpty, CellShip:
				b[r][c] = CellState(cell)
			default:
				// Clients submit placements, not shot results.
				return nil, apperrors.WithMetadata(apperrors.CodePlacementInvalid,
					"placement cells must be empty or ship", map[string]string{"reason": "unexpected cell state"})
			}
		}
	}
	return &b, nil
}

// Redacted returns a copy with unshot ship cells hidden, suitable for showing
// an opponent's board to a viewer.
func (b *Board) Redacted() *Board {
	if b == nil {
		return nil
	}
	out := *b
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if out[r][c] == CellShip {
				out[r][c] = CellEmpty
			}
		}
	}
	return &out
}

// ShipCells counts cells still holding an unhit ship.
func (b *Board) ShipCells() int {
	count := 0
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if b[r][c] == CellShip {
				count++
			}
		}
	}
	return count
}
