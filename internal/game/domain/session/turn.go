package session

import (
	"github.com/louisbranch/seabattle.space/internal/game/domain/board"
	apperrors "github.com/louisbranch/seabattle.space/internal/platform/errors"
)

// canShoot is the turn-legality rule: shots are only legal while the game is
// in progress and only for the player holding the turn.
func canShoot(state State, currentTurn, playerName string) error {
	if state != StateInProgress || currentTurn != playerName {
		return apperrors.WithMetadata(apperrors.CodeShotOutOfTurn,
			"shot attempted out of turn",
			map[string]string{"player": playerName, "current_turn": currentTurn})
	}
	return nil
}

// retainsTurn is the turn-transition rule: a miss always cedes the turn; any
// hit outcome keeps the shooter firing.
func retainsTurn(outcome board.Outcome) bool {
	return outcome.IsHit()
}
