package main

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 40))
	assert.Equal(t, "exactly-forty", truncate("exactly-forty", 13))
	assert.Equal(t, "abcde...", truncate("abcdefghij", 8))
}

func TestTruncateMultibyte(t *testing.T) {
	s := strings.Repeat("é", 10) + strings.Repeat("漢", 10)

	got := truncate(s, 8)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, strings.Repeat("é", 5)+"...", got)
}
