// Package guidx generates the 32-character uppercase hexadecimal
// identifiers used as record keys.
package guidx

import (
	"encoding/hex"
	"strings"

	"github.com/google/uuid"
)

// New returns a fresh GUID: a random v4 UUID rendered as 32 uppercase
// hex characters with no separators.
func New() string {
	u := uuid.New()
	return strings.ToUpper(hex.EncodeToString(u[:]))
}
