// Package flags composes the three output tokens and writes the flags file.
package flags

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/listenupapp/reviewaudit/internal/domain"
	"github.com/listenupapp/reviewaudit/internal/errors"
	"github.com/listenupapp/reviewaudit/internal/identity"
)

// CodeLength is the number of digest characters embedded in FLAG3.
const CodeLength = 10

// Compose derives the flags from the located book, the identity and the
// ranked top words.
func Compose(target *domain.TargetBook, id identity.Identity, topWords []string) domain.Flags {
	return domain.Flags{
		Flag1: identity.Digest(target.TitlePrefix),
		Flag2: fmt.Sprintf("FLAG2{%s}", id.HashID),
		Flag3: fmt.Sprintf("FLAG3{%s}", WordCode(topWords, id.Digits())),
	}
}

// WordCode hashes the cleaned words followed by digits and keeps the first
// CodeLength hex characters.
func WordCode(words []string, digits string) string {
	lower := cases.Lower(language.Und)
	var b strings.Builder
	for _, w := range words {
		b.WriteString(strings.ReplaceAll(lower.String(w), " ", ""))
	}
	b.WriteString(digits)
	return identity.Digest(b.String())[:CodeLength]
}

// Lines renders the flags file body.
func Lines(f domain.Flags) string {
	return fmt.Sprintf("FLAG1 = %s\nFLAG2 = %s\nFLAG3 = %s\n", f.Flag1, f.Flag2, f.Flag3)
}

// Write stores the flags at path. The content goes to a temporary file in
// the same directory that is renamed over path, so readers never observe a
// partial file.
func Write(path string, f domain.Flags) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return errors.Wrapf(err, errors.CodeInternal, "create temp file in %s", dir)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(Lines(f)); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return errors.Wrapf(err, errors.CodeInternal, "write %s", tmpName)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return errors.Wrapf(err, errors.CodeInternal, "close %s", tmpName)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		_ = os.Remove(tmpName)
		return errors.Wrapf(err, errors.CodeInternal, "chmod %s", tmpName)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return errors.Wrapf(err, errors.CodeInternal, "rename flags file to %s", path)
	}
	return nil
}
