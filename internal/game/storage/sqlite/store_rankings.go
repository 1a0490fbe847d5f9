package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/louisbranch/seabattle.space/internal/game/storage"
)

// GetRanking returns one player's ladder standing.
func (s *Store) GetRanking(ctx context.Context, playerUsername string) (storage.RankingRecord, error) {
	if err := ctx.Err(); err != nil {
		return storage.RankingRecord{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.RankingRecord{}, fmt.Errorf("storage is not configured")
	}
	playerUsername = strings.TrimSpace(playerUsername)
	if playerUsername == "" {
		return storage.RankingRecord{}, fmt.Errorf("player username is required")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT player_username, rating, wins, losses, total_games, updated_at
		 FROM player_rankings
		 WHERE player_username = ?`,
		playerUsername,
	)

	var r storage.RankingRecord
	var updatedAt int64
	if err := row.Scan(&r.PlayerUsername, &r.Rating, &r.Wins, &r.Losses, &r.TotalGames, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.RankingRecord{}, storage.ErrNotFound
		}
		return storage.RankingRecord{}, fmt.Errorf("get ranking: %w", err)
	}
	r.UpdatedAt = fromMillis(updatedAt)
	return r, nil
}

// PutRanking upserts one player's ladder standing.
func (s *Store) PutRanking(ctx context.Context, r storage.RankingRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(r.PlayerUsername) == "" {
		return fmt.Errorf("player username is required")
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO player_rankings (player_username, rating, wins, losses, total_games, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(player_username) DO UPDATE SET
		   rating = excluded.rating,
		   wins = excluded.wins,
		   losses = excluded.losses,
		   total_games = excluded.total_games,
		   updated_at = excluded.updated_at`,
		r.PlayerUsername,
		r.Rating,
		r.Wins,
		r.Losses,
		r.TotalGames,
		toMillis(r.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("put ranking: %w", err)
	}
	return nil
}

// ListTopRankings returns the leaderboard: rating descending, wins breaking
// ties, username keeping the order deterministic.
func (s *Store) ListTopRankings(ctx context.Context, limit int) ([]storage.RankingRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be positive")
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT player_username, rating, wins, losses, total_games, updated_at
		 FROM player_rankings
		 ORDER BY rating DESC, wins DESC, player_username ASC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list top rankings: %w", err)
	}
	defer rows.Close()

	var out []storage.RankingRecord
	for rows.Next() {
		var r storage.RankingRecord
		var updatedAt int64
		if err := rows.Scan(&r.PlayerUsername, &r.Rating, &r.Wins, &r.Losses, &r.TotalGames, &updatedAt); err != nil {
			return nil, fmt.Errorf("list top rankings: %w", err)
		}
		r.UpdatedAt = fromMillis(updatedAt)
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list top rankings: %w", err)
	}
	return out, nil
}
