package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_IsMatchesByCode(t *testing.T) {
	err := NoMatchingReviews("no review mentions F853BFAD")

	assert.True(t, Is(err, ErrNoMatchingReviews))
	assert.False(t, Is(err, ErrNoMatchingBooks))
}

func TestError_IsThroughWrapping(t *testing.T) {
	err := fmt.Errorf("locate: %w", NoKeyIntersection("nothing shared"))

	assert.True(t, Is(err, ErrNoKeyIntersection))

	var domainErr *Error
	if assert.True(t, As(err, &domainErr)) {
		assert.Equal(t, CodeNoKeyIntersection, domainErr.Code)
		assert.Equal(t, "nothing shared", domainErr.Message)
	}
}

func TestError_WrapKeepsCause(t *testing.T) {
	cause := stderrors.New("disk full")
	err := Wrap(cause, CodeInternal, "write flags")

	assert.Equal(t, "write flags: disk full", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.True(t, Is(err, ErrInternal))
}

func TestError_WithDetails(t *testing.T) {
	err := InsufficientLabelsf("got %d labeled reviews", 3).WithDetails(map[string]int{"labeled": 3})

	assert.Equal(t, "got 3 labeled reviews", err.Error())
	assert.Equal(t, map[string]int{"labeled": 3}, err.Details)
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"precondition", NoMatchingBooks("x"), 2},
		{"labels", InsufficientLabelsf("x"), 2},
		{"vocabulary", DegenerateVocabulary("x"), 2},
		{"genuine", NoGenuineReviews("x"), 2},
		{"column", MissingColumnf("reviews: %s", "text"), 3},
		{"validation", Validation("x"), 3},
		{"internal", Internal("x"), 1},
		{"plain error", stderrors.New("boom"), 1},
		{"wrapped domain", fmt.Errorf("run: %w", NoGenuineReviews("x")), 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}
