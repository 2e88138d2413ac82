package ui

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigureColor_PlainForNonTerminal(t *testing.T) {
	var buf bytes.Buffer
	assert.False(t, IsTerminal(&buf))

	ConfigureColor(&buf, false)
	assert.Equal(t, "done", Ok.Render("done"))
	assert.Equal(t, "gone", Removed.Render("gone"))
}
