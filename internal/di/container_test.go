package di

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/samber/do/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listenupapp/reviewaudit/internal/config"
	"github.com/listenupapp/reviewaudit/internal/di/providers"
	"github.com/listenupapp/reviewaudit/internal/errors"
)

func writeInputs(t *testing.T) config.Flags {
	t.Helper()
	for _, k := range []string{
		config.EnvEnvironment, config.EnvLogLevel, config.EnvLogFormat, config.EnvBooksPath,
		config.EnvReviewsPath, config.EnvFlagsPath, config.EnvSubject, config.EnvConfigFile,
	} {
		t.Setenv(k, "")
	}

	dir := t.TempDir()
	books := filepath.Join(dir, "books.csv")
	reviews := filepath.Join(dir, "reviews.csv")
	require.NoError(t, os.WriteFile(books, []byte("parent_asin,title,average_rating,rating_number\nP1,Book,5.0,1234\n"), 0o600))
	require.NoError(t, os.WriteFile(reviews, []byte("rating,text,parent_asin\n5,nothing here,P1\n"), 0o600))

	return config.Flags{
		BooksPath:   books,
		ReviewsPath: reviews,
		FlagsPath:   filepath.Join(dir, "flags.txt"),
		EnvFile:     filepath.Join(dir, "none.env"),
		LogLevel:    "error",
	}
}

func TestBootstrap_WiresPipeline(t *testing.T) {
	injector := NewContainer(writeInputs(t))

	p, log, err := Bootstrap(injector)
	require.NoError(t, err)
	require.NotNil(t, p)
	require.NotNil(t, log)

	store, err := do.Invoke[*providers.StoreHandle](injector)
	require.NoError(t, err)

	// The fixture has no review carrying the identifier.
	_, err = p.Run(context.Background())
	assert.True(t, errors.Is(err, errors.ErrNoMatchingReviews), "got %v", err)

	n, err := store.CountBooks(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_ = injector.Shutdown()
}

func TestBootstrap_ConfigError(t *testing.T) {
	flags := writeInputs(t)
	flags.BooksPath = filepath.Join(t.TempDir(), "missing.csv")

	_, _, err := Bootstrap(NewContainer(flags))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrValidation), "got %v", err)
}
