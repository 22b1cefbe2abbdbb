package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseSearchTermDate(t *testing.T) {
	term := ParseSearchTerm("2026-09-01")
	assert.True(t, term.IsTime)
	assert.Equal(t, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), term.At)
}

func TestParseSearchTermDatetime(t *testing.T) {
	want := time.Date(2026, 9, 1, 20, 30, 0, 0, time.UTC)

	term := ParseSearchTerm("2026-09-01T20:30:00")
	assert.True(t, term.IsTime)
	assert.Equal(t, want, term.At)

	term = ParseSearchTerm("2026-09-01 20:30:00")
	assert.True(t, term.IsTime)
	assert.Equal(t, want, term.At)
}

func TestParseSearchTermText(t *testing.T) {
	term := ParseSearchTerm("The Musical Hop")
	assert.False(t, term.IsTime)
	assert.Equal(t, "The Musical Hop", term.Text)
}

func TestParseSearchTermTrimsWhitespace(t *testing.T) {
	term := ParseSearchTerm("  fyre  ")
	assert.False(t, term.IsTime)
	assert.Equal(t, "fyre", term.Text)

	term = ParseSearchTerm(" 2026-09-01 ")
	assert.True(t, term.IsTime)
}

func TestParseSearchTermEmptyIsText(t *testing.T) {
	term := ParseSearchTerm("")
	assert.False(t, term.IsTime)
	assert.Equal(t, "", term.Text)
}

func TestParseSearchTermAlmostDate(t *testing.T) {
	// Not a full date: stays a text query.
	term := ParseSearchTerm("2026-09")
	assert.False(t, term.IsTime)
	assert.Equal(t, "2026-09", term.Text)
}
