package id

import (
	"encoding/hex"
	"regexp"

	"github.com/google/uuid"
)

var reHex32 = regexp.MustCompile(`^[a-f0-9]{32}$`)

// NewID32 returns a UUIDv7 as exactly 32 lowercase hex characters (no
// separators/prefixes). Ids created later sort after earlier ones.
// Used as the public identifier of users, customers and loans.
func NewID32() string {
	u, err := uuid.NewV7()
	if err != nil {
		u = uuid.New()
	}
	return hex.EncodeToString(u[:])
}

// Valid reports whether s has the NewID32 shape.
func Valid(s string) bool { return reHex32.MatchString(s) }
