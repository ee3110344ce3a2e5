package shared

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHeader(t *testing.T) {
	h := Header()

	assert.True(t, strings.HasPrefix(h, "/*\n"))
	assert.True(t, strings.HasSuffix(h, " */\n"))
	assert.Contains(t, h, "auto-generated")
	assert.Contains(t, h, "Do not modify it")
}

func TestValidTarget(t *testing.T) {
	for _, name := range []string{"polynomial", "trig", "all"} {
		assert.NoError(t, ValidTarget(name), name)
	}
	assert.Error(t, ValidTarget("cubic"))
	assert.Equal(t, []string{"polynomial", "trig"}, Targets())
}
