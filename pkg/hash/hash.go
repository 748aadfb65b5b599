// Package hash provides the password digest used by the identity flows.
//
// The digest is a deterministic, unsalted SHA-256 of the trimmed cleartext,
// encoded as uppercase hex. Identical input always yields an identical
// digest, which is what the login comparison relies on. Trimming happens
// here, on every path, so a credential hashed at registration time compares
// equal at login time regardless of stray surrounding whitespace.
package hash

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strings"
)

// Digest returns the uppercase hex SHA-256 of the trimmed cleartext.
func Digest(cleartext string) string {
	sum := sha256.Sum256([]byte(strings.TrimSpace(cleartext)))
	return strings.ToUpper(hex.EncodeToString(sum[:]))
}

// Verify reports whether cleartext hashes to digest. The comparison is
// constant-time so the result does not leak how many bytes matched.
func Verify(cleartext, digest string) bool {
	return subtle.ConstantTimeCompare([]byte(Digest(cleartext)), []byte(digest)) == 1
}
