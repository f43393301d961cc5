package identity

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var hashIDPattern = regexp.MustCompile(`^[0-9A-F]{8}$`)

func TestDerive_KnownSubject(t *testing.T) {
	id := Derive("STU032")

	assert.Equal(t, "STU032", id.Subject)
	assert.Equal(t, "f853bfad98066274f0801962c83351210130354e4bcfeeb27b6cc960ad9c5369", id.Digest)
	assert.Equal(t, "F853BFAD", id.HashID)
}

func TestDerive_Deterministic(t *testing.T) {
	subjects := []string{"STU032", "", "student-007", "ÜNİCODE-42"}

	for _, s := range subjects {
		t.Run(s, func(t *testing.T) {
			first := Derive(s)
			second := Derive(s)
			require.Equal(t, first, second)
			assert.Len(t, first.Digest, 64)
			assert.Regexp(t, hashIDPattern, first.HashID)
		})
	}
}

func TestIdentity_Digits(t *testing.T) {
	tests := []struct {
		subject string
		want    string
	}{
		{"STU032", "032"},
		{"A1B2C3", "123"},
		{"none", ""},
		{"٣x7", "٣7"},
	}

	for _, tt := range tests {
		t.Run(tt.subject, func(t *testing.T) {
			assert.Equal(t, tt.want, Derive(tt.subject).Digits())
		})
	}
}

func TestIdentity_MentionedIn(t *testing.T) {
	id := Derive("STU032")
	text := func(s string) *string { return &s }

	assert.True(t, id.MentionedIn(text("code F853BFAD inside")))
	assert.True(t, id.MentionedIn(text("lowercase f853bfad works")))
	assert.True(t, id.MentionedIn(text("mixed F853bFaD")))
	assert.True(t, id.MentionedIn(text("xxf853bfadyy")))
	assert.False(t, id.MentionedIn(text("F853BFA")))
	assert.False(t, id.MentionedIn(nil))
}
