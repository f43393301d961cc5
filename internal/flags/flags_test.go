package flags

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listenupapp/reviewaudit/internal/domain"
	"github.com/listenupapp/reviewaudit/internal/identity"
)

func target(title string) *domain.TargetBook {
	return &domain.TargetBook{Key: "B000TEST", TitlePrefix: domain.TitlePrefix(title)}
}

func TestCompose(t *testing.T) {
	id := identity.Derive("STU032")
	f := Compose(target("Ein Buch"), id, []string{"alpha", "beta", "gamma"})

	assert.Equal(t, "351483b86c1e37f8c719d269af59abdcc72646cc36adb221fe036a568fbcb666", f.Flag1)
	assert.Equal(t, "FLAG2{F853BFAD}", f.Flag2)
	assert.Equal(t, "FLAG3{30c35513ff}", f.Flag3)
}

func TestCompose_Deterministic(t *testing.T) {
	id := identity.Derive("STU032")
	words := []string{"quiet", "ending", "patience"}
	assert.Equal(t, Compose(target("Some Title"), id, words), Compose(target("Some Title"), id, words))
}

func TestWordCode(t *testing.T) {
	base := []string{"alpha", "beta", "gamma"}
	code := WordCode(base, "032")
	assert.Len(t, code, CodeLength)

	// Case and inner spaces are cleaned before hashing.
	assert.Equal(t, code, WordCode([]string{"Al pha", "BETA", "gam ma"}, "032"))

	for i := range base {
		changed := append([]string(nil), base...)
		changed[i] += "x"
		assert.NotEqual(t, code, WordCode(changed, "032"), "word %d", i)
	}
	assert.NotEqual(t, code, WordCode([]string{"beta", "alpha", "gamma"}, "032"))
	assert.NotEqual(t, code, WordCode(base, "033"))
}

func TestWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "flags.txt")
	f := domain.Flags{Flag1: "abc", Flag2: "FLAG2{X}", Flag3: "FLAG3{0123456789}"}

	require.NoError(t, Write(path, f))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	assert.Equal(t, []string{
		"FLAG1 = abc",
		"FLAG2 = FLAG2{X}",
		"FLAG3 = FLAG3{0123456789}",
	}, lines)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file must not remain")
}

func TestWrite_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flags.txt")
	require.NoError(t, os.WriteFile(path, []byte("stale\n"), 0o600))

	require.NoError(t, Write(path, domain.Flags{Flag1: "a", Flag2: "b", Flag3: "c"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "FLAG1 = a\nFLAG2 = b\nFLAG3 = c\n", string(data))
}

func TestWrite_MissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "flags.txt")
	err := Write(path, domain.Flags{})
	require.Error(t, err)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}
