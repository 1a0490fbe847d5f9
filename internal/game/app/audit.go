package app

import (
	"context"
	"log"

	"go.opentelemetry.io/otel/trace"

	"github.com/louisbranch/seabattle.space/internal/game/storage"
)

// emitAudit records an operational event tagged with the active trace, if
// any. Audit writes never fail the calling operation.
func (s *Service) emitAudit(ctx context.Context, eventName, gameID, player string) {
	evt := storage.AuditEvent{
		EventName: eventName,
		GameID:    gameID,
		Player:    player,
		Timestamp: s.now(),
	}
	if span := trace.SpanFromContext(ctx); span.SpanContext().IsValid() {
		evt.TraceID = span.SpanContext().TraceID().String()
		evt.SpanID = span.SpanContext().SpanID().String()
	}
	if err := s.store.AppendAuditEvent(ctx, evt); err != nil {
		log.Printf("audit %s for %s: %v", eventName, gameID, err)
	}
}
