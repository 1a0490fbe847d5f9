// Package auth issues and verifies account tokens for the game service.
// Accounts are username plus bcrypt password hash; tokens are short-lived
// HS256 JWTs carrying the username as subject.
package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/louisbranch/seabattle.space/internal/game/storage"
	apperrors "github.com/louisbranch/seabattle.space/internal/platform/errors"
)

const (
	tokenIssuer     = "seabattle.space"
	defaultTokenTTL = 24 * time.Hour

	minPasswordLength = 6
)

// Manager owns account registration, login, and token verification.
type Manager struct {
	store    storage.UserStore
	secret   []byte
	tokenTTL time.Duration

	now func() time.Time
}

// NewManager creates an auth manager signing tokens with secret.
func NewManager(store storage.UserStore, secret []byte) (*Manager, error) {
	if len(secret) == 0 {
		return nil, errors.New("token secret is required")
	}
	return &Manager{
		store:    store,
		secret:   secret,
		tokenTTL: defaultTokenTTL,
		now:      func() time.Time { return time.Now().UTC() },
	}, nil
}

// Register creates an account and returns a fresh token for it.
func (m *Manager) Register(ctx context.Context, username, password, locale string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return "", apperrors.New(apperrors.CodePlayerNameEmpty, "username is required")
	}
	if len(password) < minPasswordLength {
		return "", apperrors.WithMetadata(apperrors.CodeUserInvalidCredentials,
			"password is too short",
			map[string]string{"min_length": "6"})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", apperrors.Wrap(apperrors.CodeUnknown, "hash password", err)
	}
	if err := m.store.PutUser(ctx, storage.UserRecord{
		Username:     username,
		PasswordHash: string(hash),
		Locale:       locale,
		CreatedAt:    m.now(),
	}); err != nil {
		return "", err
	}
	return m.issueToken(username)
}

// Login verifies credentials and returns a fresh token. An unknown username
// and a wrong password both map to the same code, so callers cannot probe
// for registered names.
func (m *Manager) Login(ctx context.Context, username, password string) (string, error) {
	username = strings.TrimSpace(username)
	rec, err := m.store.GetUser(ctx, username)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", apperrors.New(apperrors.CodeUserInvalidCredentials, "invalid username or password")
		}
		return "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(rec.PasswordHash), []byte(password)); err != nil {
		return "", apperrors.New(apperrors.CodeUserInvalidCredentials, "invalid username or password")
	}
	return m.issueToken(username)
}

// VerifyToken parses and validates a token, returning its username.
func (m *Manager) VerifyToken(token string) (string, error) {
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return "", apperrors.Wrap(apperrors.CodeUserTokenInvalid, "verify token", err)
	}
	if claims.Subject == "" {
		return "", apperrors.New(apperrors.CodeUserTokenInvalid, "token subject is required")
	}
	return claims.Subject, nil
}

func (m *Manager) issueToken(username string) (string, error) {
	now := m.now()
	claims := jwt.RegisteredClaims{
		Issuer:    tokenIssuer,
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.tokenTTL)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", apperrors.Wrap(apperrors.CodeUnknown, "sign token", err)
	}
	return signed, nil
}
