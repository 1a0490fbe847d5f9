// Package errors provides structured error handling with i18n support.
package errors

import "net/http"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Game lifecycle errors
	CodeGameNotFound       Code = "GAME_NOT_FOUND"
	CodeGameCreateFailed   Code = "GAME_CREATE_FAILED"
	CodeGameJoinRejected   Code = "GAME_JOIN_REJECTED"
	CodeGameNotParticipant Code = "GAME_NOT_PARTICIPANT"

	// Placement errors
	CodePlacementInvalid Code = "PLACEMENT_INVALID"

	// Shot errors
	CodeShotOutOfTurn       Code = "SHOT_OUT_OF_TURN"
	CodeShotInvalidPosition Code = "SHOT_INVALID_POSITION"
	CodeShotAlreadyTaken    Code = "SHOT_ALREADY_TAKEN"

	// Player name errors
	CodePlayerNameEmpty Code = "PLAYER_NAME_EMPTY"

	// Auth errors
	CodeUserAlreadyExists      Code = "USER_ALREADY_EXISTS"
	CodeUserInvalidCredentials Code = "USER_INVALID_CREDENTIALS"
	CodeUserTokenInvalid       Code = "USER_TOKEN_INVALID"

	// Storage errors
	CodeNotFound Code = "NOT_FOUND"
)

// HTTPStatus maps domain codes to HTTP status codes for transport responses.
func (c Code) HTTPStatus() int {
	switch c {
	// Bad request - validation failures, bad input
	case CodePlacementInvalid,
		CodeShotInvalidPosition,
		CodePlayerNameEmpty:
		return http.StatusBadRequest

	// Conflict - state doesn't allow the operation
	case CodeGameJoinRejected,
		CodeShotOutOfTurn,
		CodeShotAlreadyTaken,
		CodeUserAlreadyExists:
		return http.StatusConflict

	// Not found
	case CodeGameNotFound,
		CodeNotFound:
		return http.StatusNotFound

	// Forbidden - caller is not a party to the session
	case CodeGameNotParticipant:
		return http.StatusForbidden

	// Unauthorized
	case CodeUserInvalidCredentials,
		CodeUserTokenInvalid:
		return http.StatusUnauthorized

	default:
		return http.StatusInternalServerError
	}
}
