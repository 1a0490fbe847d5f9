// Package app implements the game service operations on top of the session
// registry and the persistence layer.
package app

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/louisbranch/seabattle.space/internal/game/domain/board"
	"github.com/louisbranch/seabattle.space/internal/game/domain/session"
	"github.com/louisbranch/seabattle.space/internal/game/registry"
	"github.com/louisbranch/seabattle.space/internal/game/storage"
	apperrors "github.com/louisbranch/seabattle.space/internal/platform/errors"
	"github.com/louisbranch/seabattle.space/internal/platform/id"
)

// DefaultLeaderboardSize bounds the leaderboard query.
const DefaultLeaderboardSize = 50

// DefaultHistorySize bounds the per-player history query.
const DefaultHistorySize = 100

// Service coordinates live sessions with persistent rankings, histories, and
// audit records. Live match state stays in memory; only finished-match
// results touch the store.
type Service struct {
	registry *registry.Registry
	store    storage.Store

	// now and newID are swappable for tests.
	now   func() time.Time
	newID func() (string, error)
}

// NewService wires a game service over the given store.
func NewService(store storage.Store) *Service {
	return &Service{
		registry: registry.New(),
		store:    store,
		now:      func() time.Time { return time.Now().UTC() },
		newID:    id.NewID,
	}
}

// CreateSession opens a new match for playerName. An open lobby is listed
// publicly; a private match is joinable by ID only.
func (s *Service) CreateSession(ctx context.Context, playerName string, isOpenLobby bool) (session.Snapshot, error) {
	playerName = strings.TrimSpace(playerName)
	if playerName == "" {
		return session.Snapshot{}, apperrors.New(apperrors.CodePlayerNameEmpty, "player name is required")
	}

	// An ID collision is vanishingly rare; retry once before giving up.
	var sess *session.Session
	for attempt := 0; attempt < 2; attempt++ {
		gameID, err := s.newID()
		if err != nil {
			return session.Snapshot{}, apperrors.Wrap(apperrors.CodeGameCreateFailed, "generate session id", err)
		}
		sess = session.New(gameID, playerName, isOpenLobby, s.now())
		if err := s.registry.Add(sess); err == nil {
			break
		}
		sess = nil
	}
	if sess == nil {
		return session.Snapshot{}, apperrors.New(apperrors.CodeGameCreateFailed, "could not allocate a session id")
	}

	s.emitAudit(ctx, "game.created", sess.ID(), playerName)
	return sess.Snapshot(playerName), nil
}

// JoinSession seats playerName as the second player of gameID.
func (s *Service) JoinSession(ctx context.Context, gameID, playerName string) (session.Snapshot, error) {
	playerName = strings.TrimSpace(playerName)
	if playerName == "" {
		return session.Snapshot{}, apperrors.New(apperrors.CodePlayerNameEmpty, "player name is required")
	}
	sess, err := s.registry.Get(gameID)
	if err != nil {
		return session.Snapshot{}, err
	}
	if err := sess.Join(playerName); err != nil {
		return session.Snapshot{}, err
	}

	s.emitAudit(ctx, "game.joined", gameID, playerName)
	return sess.Snapshot(playerName), nil
}

// PlaceFleet validates and stores playerName's board for gameID.
func (s *Service) PlaceFleet(ctx context.Context, gameID, playerName string, cells [][]int) (session.Snapshot, error) {
	sess, err := s.registry.Get(gameID)
	if err != nil {
		return session.Snapshot{}, err
	}
	b, err := board.FromCells(cells)
	if err != nil {
		return session.Snapshot{}, err
	}
	if err := sess.PlaceFleet(playerName, b); err != nil {
		return session.Snapshot{}, err
	}

	s.emitAudit(ctx, "game.fleet_placed", gameID, playerName)
	return sess.Snapshot(playerName), nil
}

// SetReady flags playerName ready for gameID. The returned snapshot reflects
// a possible transition to in_progress.
func (s *Service) SetReady(ctx context.Context, gameID, playerName string) (session.Snapshot, error) {
	sess, err := s.registry.Get(gameID)
	if err != nil {
		return session.Snapshot{}, err
	}
	if err := sess.SetReady(playerName); err != nil {
		return session.Snapshot{}, err
	}

	s.emitAudit(ctx, "game.player_ready", gameID, playerName)
	return sess.Snapshot(playerName), nil
}

// ShotResult reports one resolved shot to the caller.
type ShotResult struct {
	Outcome  board.Outcome
	Position board.Position
	Snapshot session.Snapshot
}

// Shoot resolves playerName's shot in gameID. A winning shot finishes the
// match and settles rankings and histories before returning; settlement
// failures are logged but never undo the match outcome.
func (s *Service) Shoot(ctx context.Context, gameID, playerName string, pos board.Position) (ShotResult, error) {
	sess, err := s.registry.Get(gameID)
	if err != nil {
		return ShotResult{}, err
	}
	outcome, err := sess.Shoot(playerName, pos)
	if err != nil {
		return ShotResult{}, err
	}

	s.emitAudit(ctx, "game.shot_fired", gameID, playerName)
	if outcome == board.OutcomeWin {
		s.settleMatch(ctx, sess, playerName)
		s.emitAudit(ctx, "game.finished", gameID, playerName)
	}

	return ShotResult{
		Outcome:  outcome,
		Position: pos,
		Snapshot: sess.Snapshot(playerName),
	}, nil
}

// GetSession returns the session snapshot personalized for viewer.
func (s *Service) GetSession(ctx context.Context, gameID, viewer string) (session.Snapshot, error) {
	sess, err := s.registry.Get(gameID)
	if err != nil {
		return session.Snapshot{}, err
	}
	return sess.Snapshot(viewer), nil
}

// ListOpenLobbies lists publicly joinable sessions, most recent first.
func (s *Service) ListOpenLobbies(ctx context.Context) []session.Summary {
	return s.registry.OpenLobbies()
}

// RemoveSession drops a finished or abandoned session from the registry.
func (s *Service) RemoveSession(gameID string) {
	s.registry.Remove(gameID)
}

// settleMatch writes the winner's and loser's rating and history records.
// Each write failure is logged and skipped so one bad record never blocks
// the rest of the settlement.
func (s *Service) settleMatch(ctx context.Context, sess *session.Session, winner string) {
	loser := sess.Opponent(winner)
	finishedAt := s.now()

	if err := s.applyRating(ctx, winner, true, finishedAt); err != nil {
		log.Printf("settle %s: winner rating: %v", sess.ID(), err)
	}
	if err := s.applyRating(ctx, loser, false, finishedAt); err != nil {
		log.Printf("settle %s: loser rating: %v", sess.ID(), err)
	}
	if err := s.store.AppendHistory(ctx, storage.HistoryRecord{
		PlayerUsername:   winner,
		OpponentUsername: loser,
		Result:           storage.ResultVictory,
		GameID:           sess.ID(),
		FinishedAt:       finishedAt,
	}); err != nil {
		log.Printf("settle %s: winner history: %v", sess.ID(), err)
	}
	if err := s.store.AppendHistory(ctx, storage.HistoryRecord{
		PlayerUsername:   loser,
		OpponentUsername: winner,
		Result:           storage.ResultDefeat,
		GameID:           sess.ID(),
		FinishedAt:       finishedAt,
	}); err != nil {
		log.Printf("settle %s: loser history: %v", sess.ID(), err)
	}
}

// Leaderboard returns the top topN ladder standings. A non-positive or
// oversized topN falls back to DefaultLeaderboardSize.
func (s *Service) Leaderboard(ctx context.Context, topN int) ([]storage.RankingRecord, error) {
	return s.store.ListTopRankings(ctx, clampLimit(topN, DefaultLeaderboardSize))
}

// PlayerHistory returns up to count of playerName's finished matches, most
// recent first. A non-positive or oversized count falls back to
// DefaultHistorySize.
func (s *Service) PlayerHistory(ctx context.Context, playerName string, count int) ([]storage.HistoryRecord, error) {
	playerName = strings.TrimSpace(playerName)
	if playerName == "" {
		return nil, apperrors.New(apperrors.CodePlayerNameEmpty, "player name is required")
	}
	return s.store.ListHistoryByPlayer(ctx, playerName, clampLimit(count, DefaultHistorySize))
}

// clampLimit bounds a caller-supplied page size to (0, fallback].
func clampLimit(requested, fallback int) int {
	if requested <= 0 || requested > fallback {
		return fallback
	}
	return requested
}
