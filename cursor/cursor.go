// Package cursor implements the opaque pagination tokens shared by every
// list method. Tokens are versioned so the encoding can evolve without
// silently reinterpreting cursors issued by an older build; a token is valid
// only for the exact listing it was produced from and decoding rejects
// anything malformed or foreign.
package cursor

import (
	"encoding/base64"
	"encoding/json"
	"time"

	"github.com/openassistants/assistants-mcp-go/mcperr"
)

// Version is the current cursor schema version. Decode rejects tokens with
// any other version rather than guessing at their layout.
const Version = 1

// State is the position marker carried inside a token. List names the
// listing the cursor was issued from, Index is the offset of the next item to
// return, Total the size of the listing at issuance, IssuedAt the unix time
// of issuance.
type State struct {
	Version  int    `json:"v"`
	List     string `json:"l"`
	Index    int    `json:"i"`
	Total    int    `json:"n"`
	IssuedAt int64  `json:"ts"`
}

// Encode serializes a state into an opaque token. The version stamp is
// applied here; callers never set it.
func Encode(s State) string {
	s.Version = Version
	if s.IssuedAt == 0 {
		s.IssuedAt = time.Now().Unix()
	}
	b, _ := json.Marshal(s)
	return base64.RawURLEncoding.EncodeToString(b)
}

// Decode parses a token back into a State. Any malformed, truncated, or
// wrong-version token yields a CursorError; a default page is never returned
// silently.
func Decode(token string) (State, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return State{}, &mcperr.CursorError{Reason: "not a valid token"}
	}
	var s State
	if err := json.Unmarshal(raw, &s); err != nil {
		return State{}, &mcperr.CursorError{Reason: "malformed token payload"}
	}
	if s.Version != Version {
		return State{}, &mcperr.CursorError{Reason: "unknown cursor version"}
	}
	if s.Index < 0 || s.Total < 0 || s.Index > s.Total {
		return State{}, &mcperr.CursorError{Reason: "position out of range"}
	}
	return s, nil
}
