// Package id generates identifiers for pipeline runs.
package id

import (
	"fmt"
	"strings"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// RunPrefix marks run identifiers.
const RunPrefix = "run"

const (
	alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	size     = 12
)

// Generate returns prefix-<12 lowercase alphanumerics>, e.g. "run-4f9k2m0qz7ab".
func Generate(prefix string) (string, error) {
	id, err := gonanoid.Generate(alphabet, size)
	if err != nil {
		return "", fmt.Errorf("generate nanoid: %w", err)
	}
	return prefix + "-" + id, nil
}

// MustGenerate is like Generate but panics if ID generation fails.
func MustGenerate(prefix string) string {
	id, err := Generate(prefix)
	if err != nil {
		panic(fmt.Sprintf("failed to generate ID: %v", err))
	}
	return id
}

// NewRunID returns a fresh run identifier.
func NewRunID() (string, error) {
	return Generate(RunPrefix)
}

// IsRunID reports whether s has the shape produced by NewRunID.
func IsRunID(s string) bool {
	rest, ok := strings.CutPrefix(s, RunPrefix+"-")
	if !ok || len(rest) != size {
		return false
	}
	for _, r := range rest {
		if !strings.ContainsRune(alphabet, r) {
			return false
		}
	}
	return true
}
