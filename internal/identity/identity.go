// Package identity derives the short hash identifier that marks the target
// product inside review text.
package identity

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// HashIDLength is the number of digest characters in a derived identifier.
const HashIDLength = 8

// Identity is the subject string together with its derived values.
type Identity struct {
	Subject string `json:"subject"`
	Digest  string `json:"digest"`
	HashID  string `json:"hash_id"`
}

// Derive hashes subject with SHA-256 and takes the first HashIDLength hex
// characters, uppercased, as the derived identifier.
func Derive(subject string) Identity {
	digest := Digest(subject)
	return Identity{
		Subject: subject,
		Digest:  digest,
		HashID:  strings.ToUpper(digest[:HashIDLength]),
	}
}

// Digest returns the lowercase hex SHA-256 of s.
func Digest(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

// Digits returns every decimal digit of the subject, in order.
func (id Identity) Digits() string {
	var b strings.Builder
	for _, r := range id.Subject {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// MentionedIn reports whether text contains the derived identifier,
// ignoring case. A nil text never matches.
func (id Identity) MentionedIn(text *string) bool {
	if text == nil {
		return false
	}
	lower := cases.Lower(language.Und)
	return strings.Contains(lower.String(*text), lower.String(id.HashID))
}
