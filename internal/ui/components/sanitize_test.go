package components

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeOneLineStripsOscAndNewlines(t *testing.T) {
	input := "\x1b]8;;https://evil\x07click\x1b]8;;\x07\nline\tmore"
	out := SanitizeOneLine(input)

	assert.False(t, strings.Contains(out, "\x1b"))
	assert.False(t, strings.Contains(out, "\n"))
	assert.False(t, strings.Contains(out, "\t"))
	assert.Equal(t, "click line more", out)
}

func TestSanitizeTextRemovesBidiControls(t *testing.T) {
	out := SanitizeText("safe‮exe.txt")
	assert.NotContains(t, out, "‮")
}

func TestSanitizeTextStripsColorCodes(t *testing.T) {
	assert.Equal(t, "Asha", SanitizeText("\x1b[31mAsha\x1b[0m"))
}

func TestSanitizeTextKeepsNewlines(t *testing.T) {
	assert.Equal(t, "Class 5\nRoll 12", SanitizeText("Class 5\nRoll 12"))
}
