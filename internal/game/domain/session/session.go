// Package session holds the two-player match aggregate: boards, shot logs,
// readiness, turn arbitration, and the lifecycle state machine.
package session

import (
	"sync"
	"time"

	"github.com/louisbranch/seabattle.space/internal/game/domain/board"
	apperrors "github.com/louisbranch/seabattle.space/internal/platform/errors"
)

// State is a session lifecycle phase. Phases advance strictly forward:
// waiting_for_opponent -> waiting_for_ready -> in_progress -> finished.
type State string

const (
	StateWaitingForOpponent State = "waiting_for_opponent"
	StateWaitingForReady    State = "waiting_for_ready"
	StateInProgress         State = "in_progress"
	StateFinished           State = "finished"
)

// Session is one match from creation to finish. All mutating and reading
// methods serialize on an internal mutex, so one session never interleaves
// two operations; distinct sessions do not contend.
type Session struct {
	mu sync.Mutex

	id          string
	creatorName string
	joinerName  string
	isOpenLobby bool
	createdAt   time.Time

	state State

	creatorBoard    *board.Board
	joinerBoard     *board.Board
	creatorBoardSet bool
	joinerBoardSet  bool
	creatorReady    bool
	joinerReady     bool
	creatorShots    []board.Shot
	joinerShots     []board.Shot

	currentTurn string
	winner      string
}

// New creates a session in waiting_for_opponent. The creator is pre-assigned
// the first turn; it takes effect once play starts.
func New(id, creatorName string, isOpenLobby bool, createdAt time.Time) *Session {
	return &Session{
		id:          id,
		creatorName: creatorName,
		isOpenLobby: isOpenLobby,
		createdAt:   createdAt,
		state:       StateWaitingForOpponent,
		currentTurn: creatorName,
	}
}

// ID returns the session identifier. Immutable after creation.
func (s *Session) ID() string {
	return s.id
}

// Join seats the second player and advances to waiting_for_ready.
func (s *Session) Join(joinerName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateWaitingForOpponent || s.joinerName != "" {
		return apperrors.WithMetadata(apperrors.CodeGameJoinRejected,
			"session not joinable", map[string]string{"game_id": s.id})
	}
	if joinerName == "" || joinerName == s.creatorName {
		return apperrors.WithMetadata(apperrors.CodeGameJoinRejected,
			"joiner name invalid", map[string]string{"game_id": s.id})
	}

	s.joinerName = joinerName
	s.state = StateWaitingForReady
	return nil
}

// PlaceFleet validates and stores a player's board. Re-submission after the
// board is set is a no-op, not an error.
func (s *Session) PlaceFleet(playerName string, b *board.Board) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch playerName {
	case s.creatorName:
		if s.creatorBoardSet {
			return nil
		}
		if err := board.ValidatePlacement(b); err != nil {
			return err
		}
		s.creatorBoard = b
		s.creatorBoardSet = true
	case s.joinerName:
		if playerName == "" {
			return s.notParticipant(playerName)
		}
		if s.joinerBoardSet {
			return nil
		}
		if err := board.ValidatePlacement(b); err != nil {
			return err
		}
		s.joinerBoard = b
		s.joinerBoardSet = true
	default:
		return s.notParticipant(playerName)
	}
	return nil
}

// SetReady flags a player ready. Once both players are ready and both boards
// are placed, the session advances to in_progress with the creator to move.
func (s *Session) SetReady(playerName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch playerName {
	case s.creatorName:
		s.creatorReady = true
	case s.joinerName:
		if playerName == "" {
			return s.notParticipant(playerName)
		}
		s.joinerReady = true
	default:
		return s.notParticipant(playerName)
	}

	if s.state == StateWaitingForReady &&
		s.creatorReady && s.joinerReady &&
		s.creatorBoardSet && s.joinerBoardSet {
		s.state = StateInProgress
		if s.currentTurn == "" {
			s.currentTurn = s.creatorName
		}
	}
	return nil
}

// Shoot resolves a shot by playerName against the opponent's board. On a miss
// the turn passes to the opponent; any hit outcome retains it. A win finishes
// the session and records the winner.
func (s *Session) Shoot(playerName string, pos board.Position) (board.Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if playerName != s.creatorName && (playerName != s.joinerName || playerName == "") {
		return "", s.notParticipant(playerName)
	}
	if err := canShoot(s.state, s.currentTurn, playerName); err != nil {
		return "", err
	}

	target := s.joinerBoard
	shots := &s.creatorShots
	if playerName == s.joinerName {
		target = s.creatorBoard
		shots = &s.joinerShots
	}

	outcome, shot, err := board.Resolve(target, *shots, pos)
	if err != nil {
		return "", err
	}
	*shots = append(*shots, shot)

	if !retainsTurn(outcome) {
		s.currentTurn = s.opponentOf(playerName)
	}
	if outcome == board.OutcomeWin {
		s.state = StateFinished
		s.winner = playerName
	}
	return outcome, nil
}

// Participant reports whether name is one of the two seated players.
func (s *Session) Participant(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return name != "" && (name == s.creatorName || name == s.joinerName)
}

// Opponent returns the other seated player, or "" if name is not seated or
// no opponent has joined.
func (s *Session) Opponent(name string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.opponentOf(name)
}

func (s *Session) opponentOf(name string) string {
	switch name {
	case s.creatorName:
		return s.joinerName
	case s.joinerName:
		return s.creatorName
	default:
		return ""
	}
}

func (s *Session) notParticipant(playerName string) error {
	return apperrors.WithMetadata(apperrors.CodeGameNotParticipant,
		"player is not part of this game",
		map[string]string{"game_id": s.id, "player": playerName})
}
