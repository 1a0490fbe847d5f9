// Package storage defines persistence contracts for game service state:
// player rankings, match histories, user accounts, and audit events.
package storage

import (
	"context"
	"time"

	apperrors "github.com/louisbranch/seabattle.space/internal/platform/errors"
)

// ErrNotFound indicates a requested persistence record is missing. Callers
// use this to differentiate a legitimate "no such record" state from
// transport or data corruption failures.
var ErrNotFound = apperrors.New(apperrors.CodeNotFound, "record not found")

// Match results as stored in history records.
const (
	ResultVictory = "victory"
	ResultDefeat  = "defeat"
)

// RankingRecord captures one player's standing on the ladder.
type RankingRecord struct {
	PlayerUsername string
	Rating         int
	Wins           int
	Losses         int
	TotalGames     int
	UpdatedAt      time.Time
}

// HistoryRecord captures one finished match from one player's perspective.
// A finished match produces two records, one per participant.
type HistoryRecord struct {
	PlayerUsername   string
	OpponentUsername string
	Result           string
	GameID           string
	FinishedAt       time.Time
}

// UserRecord captures one registered account. PasswordHash is a bcrypt hash,
// never the plaintext password.
type UserRecord struct {
	Username     string
	PasswordHash string
	Locale       string
	CreatedAt    time.Time
}

// AuditEvent captures one operational event for incident analysis. TraceID
// and SpanID tie the record back to the originating request trace.
type AuditEvent struct {
	EventName string
	GameID    string
	Player    string
	TraceID   string
	SpanID    string
	Timestamp time.Time
}

// RankingStore owns ladder standings and the leaderboard query.
type RankingStore interface {
	// GetRanking returns a player's standing. Returns ErrNotFound for a
	// player who has never finished a match.
	GetRanking(ctx context.Context, playerUsername string) (RankingRecord, error)
	// PutRanking upserts a player's standing.
	PutRanking(ctx context.Context, r RankingRecord) error
	// ListTopRankings returns up to limit standings ordered by rating
	// descending, wins descending, then username ascending.
	ListTopRankings(ctx context.Context, limit int) ([]RankingRecord, error)
}

// HistoryStore owns per-player finished-match records.
type HistoryStore interface {
	AppendHistory(ctx context.Context, h HistoryRecord) error
	// ListHistoryByPlayer returns a player's records, most recent first.
	ListHistoryByPlayer(ctx context.Context, playerUsername string, limit int) ([]HistoryRecord, error)
}

// UserStore owns registered accounts.
type UserStore interface {
	// PutUser inserts an account. Returns CodeUserAlreadyExists if the
	// username is taken.
	PutUser(ctx context.Context, u UserRecord) error
	// GetUser returns an account by username. Returns ErrNotFound if the
	// account does not exist.
	GetUser(ctx context.Context, username string) (UserRecord, error)
}

// AuditStore persists operational audit events.
type AuditStore interface {
	AppendAuditEvent(ctx context.Context, evt AuditEvent) error
}

// Store aggregates every persistence contract the game service needs.
type Store interface {
	RankingStore
	HistoryStore
	UserStore
	AuditStore
}
