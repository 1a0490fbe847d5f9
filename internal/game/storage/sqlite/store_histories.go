package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/louisbranch/seabattle.space/internal/game/storage"
)

// AppendHistory records one finished match from one player's perspective.
func (s *Store) AppendHistory(ctx context.Context, h storage.HistoryRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(h.PlayerUsername) == "" {
		return fmt.Errorf("player username is required")
	}
	if strings.TrimSpace(h.GameID) == "" {
		return fmt.Errorf("game id is required")
	}
	if h.Result != storage.ResultVictory && h.Result != storage.ResultDefeat {
		return fmt.Errorf("result %q is not a known outcome", h.Result)
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO game_histories (player_username, opponent_username, result, game_id, finished_at)
		 VALUES (?, ?, ?, ?, ?)`,
		h.PlayerUsername,
		h.OpponentUsername,
		h.Result,
		h.GameID,
		toMillis(h.FinishedAt),
	)
	if err != nil {
		return fmt.Errorf("append history: %w", err)
	}
	return nil
}

// ListHistoryByPlayer returns a player's finished matches, most recent first.
func (s *Store) ListHistoryByPlayer(ctx context.Context, playerUsername string, limit int) ([]storage.HistoryRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	playerUsername = strings.TrimSpace(playerUsername)
	if playerUsername == "" {
		return nil, fmt.Errorf("player username is required")
	}
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be positive")
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT player_username, opponent_username, result, game_id, finished_at
		 FROM game_histories
		 WHERE player_username = ?
		 ORDER BY finished_at DESC, id DESC
		 LIMIT ?`,
		playerUsername,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	defer rows.Close()

	var out []storage.HistoryRecord
	for rows.Next() {
		var h storage.HistoryRecord
		var finishedAt int64
		if err := rows.Scan(&h.PlayerUsername, &h.OpponentUsername, &h.Result, &h.GameID, &finishedAt); err != nil {
			return nil, fmt.Errorf("list history: %w", err)
		}
		h.FinishedAt = fromMillis(finishedAt)
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	return out, nil
}
