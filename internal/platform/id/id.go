// Package id generates opaque identifiers for games and history rows.
//
// Identifiers are UUIDv4 bytes encoded as lowercase unpadded base32, giving a
// 26-character string that is URL-safe and case-insensitive.
package id

import (
	"encoding/base32"
	"strings"

	"github.com/google/uuid"
)

var encoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// NewID returns a fresh 26-character identifier.
func NewID() (string, error) {
	u, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	return strings.ToLower(encoding.EncodeToString(u[:])), nil
}
