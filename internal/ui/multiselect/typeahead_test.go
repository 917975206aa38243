package multiselect

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBestMatch(t *testing.T) {
	texts := []string{"Luke Skywalker", "Han Solo", "Princess Leia", "Chewbacca", "Obiwan Kenobi", "Yoda"}

	assert.Equal(t, 1, bestMatch("han", texts))
	assert.Equal(t, 5, bestMatch("Y", texts))
	assert.Equal(t, 3, bestMatch("chwe", texts), "closest by edit distance")
	assert.Equal(t, -1, bestMatch("", texts))
	assert.Equal(t, -1, bestMatch("x", nil))
}

func TestPrefixRunes(t *testing.T) {
	assert.Equal(t, "◎ R", prefixRunes("◎ R2D2", 3))
	assert.Equal(t, "ab", prefixRunes("ab", 5))
}
