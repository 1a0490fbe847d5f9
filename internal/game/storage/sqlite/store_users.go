package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/louisbranch/seabattle.space/internal/game/storage"
	apperrors "github.com/louisbranch/seabattle.space/internal/platform/errors"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

// PutUser inserts a new account. A taken username surfaces as
// CodeUserAlreadyExists rather than a raw constraint error.
func (s *Store) PutUser(ctx context.Context, u storage.UserRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	username := strings.TrimSpace(u.Username)
	if username == "" {
		return fmt.Errorf("username is required")
	}
	if u.PasswordHash == "" {
		return fmt.Errorf("password hash is required")
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO users (username, password_hash, locale, created_at)
		 VALUES (?, ?, ?, ?)`,
		username,
		u.PasswordHash,
		u.Locale,
		toMillis(u.CreatedAt),
	)
	if err != nil {
		if isUserUniqueViolation(err) {
			return apperrors.WithMetadata(apperrors.CodeUserAlreadyExists,
				"username is already registered",
				map[string]string{"username": username})
		}
		return fmt.Errorf("put user: %w", err)
	}
	return nil
}

// GetUser returns one account by username.
func (s *Store) GetUser(ctx context.Context, username string) (storage.UserRecord, error) {
	if err := ctx.Err(); err != nil {
		return storage.UserRecord{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.UserRecord{}, fmt.Errorf("storage is not configured")
	}
	username = strings.TrimSpace(username)
	if username == "" {
		return storage.UserRecord{}, fmt.Errorf("username is required")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT username, password_hash, locale, created_at
		 FROM users
		 WHERE username = ?`,
		username,
	)

	var u storage.UserRecord
	var createdAt int64
	if err := row.Scan(&u.Username, &u.PasswordHash, &u.Locale, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.UserRecord{}, storage.ErrNotFound
		}
		return storage.UserRecord{}, fmt.Errorf("get user: %w", err)
	}
	u.CreatedAt = fromMillis(createdAt)
	return u, nil
}

func isUserUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	message := strings.ToLower(err.Error())
	return strings.Contains(message, "unique constraint failed") &&
		strings.Contains(message, "users.username")
}
