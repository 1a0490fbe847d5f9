package ws

import (
	"encoding/json"
	"time"
)

// Command is one inbound client message.
type Command struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Event is one outbound server message.
type Event struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

// Command types.
const (
	CmdCreateGame     = "create_game"
	CmdJoinGame       = "join_game"
	CmdGetLobbies     = "get_lobbies"
	CmdPlaceFleet     = "place_fleet"
	CmdSetReady       = "set_ready"
	CmdShoot          = "shoot"
	CmdGetState       = "get_state"
	CmdGetHistory     = "get_history"
	CmdGetLeaderboard = "get_leaderboard"
)

// Event types.
const (
	EvtGameCreated        = "game_created"
	EvtLobbiesUpdated     = "lobbies_updated"
	EvtGameUpdated        = "game_updated"
	EvtGameStarted        = "game_started"
	EvtTurnChanged        = "turn_changed"
	EvtShotResult         = "shot_result"
	EvtGameEnded          = "game_ended"
	EvtPlayerDisconnected = "player_disconnected"
	EvtHistory            = "history"
	EvtLeaderboard        = "leaderboard"
	EvtError              = "error"
)

type createGamePayload struct {
	PlayerName  string `json:"playerName"`
	IsOpenLobby bool   `json:"isOpenLobby"`
}

type joinGamePayload struct {
	GameID     string `json:"gameId"`
	PlayerName string `json:"playerName"`
}

type placeFleetPayload struct {
	GameID     string  `json:"gameId"`
	PlayerName string  `json:"playerName"`
	Board      [][]int `json:"board"`
}

type setReadyPayload struct {
	GameID     string `json:"gameId"`
	PlayerName string `json:"playerName"`
}

type shootPayload struct {
	GameID     string `json:"gameId"`
	PlayerName string `json:"playerName"`
	Row        int    `json:"row"`
	Col        int    `json:"col"`
}

type getStatePayload struct {
	GameID string `json:"gameId"`
}

type getHistoryPayload struct {
	PlayerName string `json:"playerName"`
	Count      int    `json:"count,omitempty"`
}

type getLeaderboardPayload struct {
	TopN int `json:"topN,omitempty"`
}

type turnChangedPayload struct {
	GameID      string `json:"gameId"`
	CurrentTurn string `json:"currentTurn"`
}

type shotResultPayload struct {
	GameID  string `json:"gameId"`
	Shooter string `json:"shooter"`
	Row     int    `json:"row"`
	Col     int    `json:"col"`
	Outcome string `json:"outcome"`
}

type gameEndedPayload struct {
	GameID string `json:"gameId"`
	Winner string `json:"winner"`
}

type playerDisconnectedPayload struct {
	GameID string `json:"gameId"`
	Player string `json:"player"`
}

type historyEntryPayload struct {
	OpponentUsername string    `json:"opponentUsername"`
	Result           string    `json:"result"`
	GameID           string    `json:"gameId"`
	FinishedAt       time.Time `json:"finishedAt"`
}

type leaderboardEntryPayload struct {
	PlayerUsername string `json:"playerUsername"`
	Rating         int    `json:"rating"`
	Wins           int    `json:"wins"`
	Losses         int    `json:"losses"`
	TotalGames     int    `json:"totalGames"`
}

type errorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
