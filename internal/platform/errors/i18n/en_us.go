package i18n

// Message keys must match the codes defined in internal/platform/errors/codes.go.
// These are duplicated as strings to avoid an import cycle.
const (
	CodeUnknown                = "UNKNOWN"
	CodeGameNotFound           = "GAME_NOT_FOUND"
	CodeGameCreateFailed       = "GAME_CREATE_FAILED"
	CodeGameJoinRejected       = "GAME_JOIN_REJECTED"
	CodeGameNotParticipant     = "GAME_NOT_PARTICIPANT"
	CodePlacementInvalid       = "PLACEMENT_INVALID"
	CodeShotOutOfTurn          = "SHOT_OUT_OF_TURN"
	CodeShotInvalidPosition    = "SHOT_INVALID_POSITION"
	CodeShotAlreadyTaken       = "SHOT_ALREADY_TAKEN"
	CodePlayerNameEmpty        = "PLAYER_NAME_EMPTY"
	CodeUserAlreadyExists      = "USER_ALREADY_EXISTS"
	CodeUserInvalidCredentials = "USER_INVALID_CREDENTIALS"
	CodeUserTokenInvalid       = "USER_TOKEN_INVALID"
	CodeNotFound               = "NOT_FOUND"
)

var messagesEnUS = map[Code]string{
	CodeUnknown:                "Something went wrong. Please try again.",
	CodeGameNotFound:           "Game {{.game_id}} was not found.",
	CodeGameCreateFailed:       "The game could not be created. Please try again.",
	CodeGameJoinRejected:       "You cannot join this game. It may be full or already started.",
	CodeGameNotParticipant:     "You are not a player in this game.",
	CodePlacementInvalid:       "Invalid ship placement: {{.reason}}.",
	CodeShotOutOfTurn:          "It is not your turn.",
	CodeShotInvalidPosition:    "Position ({{.row}}, {{.col}}) is outside the board.",
	CodeShotAlreadyTaken:       "You already fired at ({{.row}}, {{.col}}).",
	CodePlayerNameEmpty:        "A player name is required.",
	CodeUserAlreadyExists:      "A user with this name already exists.",
	CodeUserInvalidCredentials: "Invalid username or password.",
	CodeUserTokenInvalid:       "Your session is invalid. Please sign in again.",
	CodeNotFound:               "The requested record was not found.",

	LabelVictory: "Victory",
	LabelDefeat:  "Defeat",
}
