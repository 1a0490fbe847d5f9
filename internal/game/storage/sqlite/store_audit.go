package sqlite

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/louisbranch/seabattle.space/internal/game/storage"
)

// AppendAuditEvent records one operational audit event.
func (s *Store) AppendAuditEvent(ctx context.Context, evt storage.AuditEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(evt.EventName) == "" {
		return fmt.Errorf("event name is required")
	}
	if evt.Timestamp.IsZero() {
		evt.Timestamp = time.Now().UTC()
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO audit_events (event_name, game_id, player, trace_id, span_id, timestamp)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		evt.EventName,
		evt.GameID,
		evt.Player,
		evt.TraceID,
		evt.SpanID,
		toMillis(evt.Timestamp),
	)
	if err != nil {
		return fmt.Errorf("append audit event: %w", err)
	}
	return nil
}
