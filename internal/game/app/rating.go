package app

import (
	"context"
	"errors"
	"time"

	"github.com/louisbranch/seabattle.space/internal/game/storage"
)

// Ladder constants. Every player starts at the baseline; ratings never drop
// below zero.
const (
	initialRating = 1000
	winDelta      = 15
	lossDelta     = 10
)

// applyRating folds one match result into a player's standing, creating the
// baseline record for a first-time player.
func (s *Service) applyRating(ctx context.Context, playerName string, won bool, at time.Time) error {
	rec, err := s.store.GetRanking(ctx, playerName)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		rec = storage.RankingRecord{PlayerUsername: playerName, Rating: initialRating}
	case err != nil:
		return err
	}

	if won {
		rec.Rating += winDelta
		rec.Wins++
	} else {
		rec.Rating -= lossDelta
		if rec.Rating < 0 {
			rec.Rating = 0
		}
		rec.Losses++
	}
	rec.TotalGames++
	rec.UpdatedAt = at

	return s.store.PutRanking(ctx, rec)
}
