package session

import (
	"time"

	"github.com/louisbranch/seabattle.space/internal/game/domain/board"
)

// Snapshot is a viewer-personalized copy of a session, safe to hand to a
// transport layer. The viewer's own board is included in full; the opponent's
// board only reveals cells the viewer has already shot at.
type Snapshot struct {
	ID              string        `json:"id"`
	CreatorName     string        `json:"creatorName"`
	JoinerName      string        `json:"joinerName,omitempty"`
	CreatorBoard    *board.Board  `json:"creatorBoard"`
	JoinerBoard     *board.Board  `json:"joinerBoard"`
	State           State         `json:"state"`
	CurrentTurn     string        `json:"currentTurn,omitempty"`
	Winner          string        `json:"winner,omitempty"`
	IsOpenLobby     bool          `json:"isOpenLobby"`
	CreatorReady    bool          `json:"creatorReady"`
	JoinerReady     bool          `json:"joinerReady"`
	CreatorBoardSet bool          `json:"creatorBoardSet"`
	JoinerBoardSet  bool          `json:"joinerBoardSet"`
	CreatedAt       time.Time     `json:"createdAt"`
	IsCreator       bool          `json:"isCreator"`
	MyShots         []board.Shot  `json:"myShots"`
	OpponentShots   []board.Shot  `json:"opponentShots"`
}

// Summary is the lobby-listing view of a session.
type Summary struct {
	ID          string    `json:"id"`
	CreatorName string    `json:"creatorName"`
	State       State     `json:"state"`
	IsOpenLobby bool      `json:"isOpenLobby"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Snapshot renders the session for one viewer. A viewer who is not a
// participant sees both boards redacted and no shot logs.
func (s *Session) Snapshot(viewer string) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		ID:              s.id,
		CreatorName:     s.creatorName,
		JoinerName:      s.joinerName,
		State:           s.state,
		CurrentTurn:     s.currentTurn,
		Winner:          s.winner,
		IsOpenLobby:     s.isOpenLobby,
		CreatorReady:    s.creatorReady,
		JoinerReady:     s.joinerReady,
		CreatorBoardSet: s.creatorBoardSet,
		JoinerBoardSet:  s.joinerBoardSet,
		CreatedAt:       s.createdAt,
	}

	switch viewer {
	case s.creatorName:
		snap.IsCreator = true
		snap.CreatorBoard = cloneBoard(s.creatorBoard)
		snap.JoinerBoard = s.joinerBoard.Redacted()
		snap.MyShots = cloneShots(s.creatorShots)
		snap.OpponentShots = cloneShots(s.joinerShots)
	case s.joinerName:
		snap.CreatorBoard = s.creatorBoard.Redacted()
		snap.JoinerBoard = cloneBoard(s.joinerBoard)
		snap.MyShots = cloneShots(s.joinerShots)
		snap.OpponentShots = cloneShots(s.creatorShots)
	default:
		snap.CreatorBoard = s.creatorBoard.Redacted()
		snap.JoinerBoard = s.joinerBoard.Redacted()
	}
	return snap
}

// Summary renders the lobby-listing view.
func (s *Session) Summary() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Summary{
		ID:          s.id,
		CreatorName: s.creatorName,
		State:       s.state,
		IsOpenLobby: s.isOpenLobby,
		CreatedAt:   s.createdAt,
	}
}

// OpenLobby reports whether the session is publicly joinable: flagged open,
// still waiting for an opponent, and unseated.
func (s *Session) OpenLobby() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isOpenLobby && s.state == StateWaitingForOpponent && s.joinerName == ""
}

func cloneBoard(b *board.Board) *board.Board {
	if b == nil {
		return nil
	}
	out := *b
	return &out
}

func cloneShots(shots []board.Shot) []board.Shot {
	out := make([]board.Shot, len(shots))
	copy(out, shots)
	return out
}
