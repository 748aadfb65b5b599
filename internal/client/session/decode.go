package session

import (
	"encoding/base64"
	"encoding/json"
	"strings"
)

// DisplayClaims are the fields the client shows for a logged-in user. They
// come from an UNVERIFIED token payload and must never drive an access
// decision.
type DisplayClaims struct {
	Email string
	Name  string
}

// DecodePayload extracts display claims from a compact token without any
// signature or expiry check. It splits on ".", base64url-decodes the middle
// segment, and reads the email and name under the key spellings different
// token producers have used. Any malformation reports ok=false instead of an
// error; the caller degrades to an unauthenticated display state.
func DecodePayload(tok string) (claims DisplayClaims, ok bool) {
	parts := strings.Split(tok, ".")
	if len(parts) < 2 {
		return DisplayClaims{}, false
	}

	raw, err := decodeBase64URL(parts[1])
	if err != nil {
		return DisplayClaims{}, false
	}

	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return DisplayClaims{}, false
	}

	claims.Email = firstString(payload, "email", "Email")
	claims.Name = firstString(payload, "name", "nombre", "Nombre")
	return claims, true
}

// decodeBase64URL decodes a base64url segment, restoring standard padding by
// length mod 4: 2 -> "==", 3 -> "=", otherwise none.
func decodeBase64URL(s string) ([]byte, error) {
	switch len(s) % 4 {
	case 2:
		s += "=="
	case 3:
		s += "="
	}
	return base64.URLEncoding.DecodeString(s)
}

// firstString returns the first of keys present in m with a string value.
func firstString(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if v, ok := m[k].(string); ok {
			return v
		}
	}
	return ""
}
