package board

import (
	"strconv"

	apperrors "github.com/louisbranch/seabattle.space/internal/platform/errors"
)

// Outcome is the result of a resolved shot.
type Outcome string

const (
	OutcomeMiss      Outcome = "miss"
	OutcomeHit       Outcome = "hit"
	OutcomeDestroyed Outcome = "destroyed"
	OutcomeWin       Outcome = "win"
)

// IsHit reports whether the outcome landed on a ship.
func (o Outcome) IsHit() bool {
	return o == OutcomeHit || o == OutcomeDestroyed || o == OutcomeWin
}

// Resolve applies one shot to the target board and returns the outcome along
// with the shot record to append to the acting player's log.
//
// The duplicate-shot guard runs against the player's own shot log, not the
// cell state: the same physical cell carries different meaning on each
// player's view of the board.
func Resolve(target *Board, prior []Shot, pos Position) (Outcome, Shot, error) {
	if !pos.InBounds() {
		return "", Shot{}, apperrors.WithMetadata(apperrors.CodeShotInvalidPosition,
			"shot position outside board", positionMetadata(pos))
	}
	for _, s := range prior {
		if s.Row == pos.Row && s.Col == pos.Col {
			return "", Shot{}, apperrors.WithMetadata(apperrors.CodeShotAlreadyTaken,
				"position already shot", positionMetadata(pos))
		}
	}

	switch target[pos.Row][pos.Col] {
	case CellEmpty:
		target[pos.Row][pos.Col] = CellMiss
		return OutcomeMiss, Shot{Row: pos.Row, Col: pos.Col, Hit: false}, nil

	case CellShip:
		target[pos.Row][pos.Col] = CellHit
		shot := Shot{Row: pos.Row, Col: pos.Col, Hit: true}
		if !shipSunk(target, pos) {
			return OutcomeHit, shot, nil
		}
		// Win is checked first and unconditionally; destroyed only applies
		// while other ships survive.
		if target.ShipCells() == 0 {
			return OutcomeWin, shot, nil
		}
		return OutcomeDestroyed, shot, nil

	default:
		// Unreachable while the shot-log guard holds.
		return "", Shot{}, apperrors.WithMetadata(apperrors.CodeUnknown,
			"cell already resolved", positionMetadata(pos))
	}
}

// shipSunk walks the connected hit-run starting at the freshly hit cell,
// moving only across 4-adjacent ship or hit cells. Any reachable unhit ship
// cell means the ship still floats. The queue never exceeds the largest ship,
// so the traversal is effectively constant-time.
func shipSunk(b *Board, start Position) bool {
	directions := [4][2]int{{0, 1}, {1, 0}, {0, -1}, {-1, 0}}
	var visited [Size][Size]bool
	queue := []Position{start}
	visited[start.Row][start.Col] = true

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, d := range directions {
			next := Position{Row: cur.Row + d[0], Col: cur.Col + d[1]}
			if !next.InBounds() || visited[next.Row][next.Col] {
				continue
			}
			switch b[next.Row][next.Col] {
			case CellShip:
				return false
			case CellHit:
				visited[next.Row][next.Col] = true
				queue = append(queue, next)
			}
		}
	}
	return true
}

func positionMetadata(pos Position) map[string]string {
	return map[string]string{
		"row": strconv.Itoa(pos.Row),
		"col": strconv.Itoa(pos.Col),
	}
}
