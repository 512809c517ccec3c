package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"maskeraser"
)

func TestParseRect(t *testing.T) {
	rect, err := parseRect("10, 20,30,40.5")
	require.NoError(t, err)
	assert.Equal(t, maskeraser.Rectangle{X: 10, Y: 20, W: 30, H: 40.5}, rect)

	_, err = parseRect("10,20,30")
	assert.Error(t, err)

	_, err = parseRect("10,20,foo,40")
	assert.Error(t, err)
}
