package menu

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/itaimoorali/sys-setup/internal/orchestrator"
)

func TestParseSelectionSingleDigits(t *testing.T) {
	sel, quit, invalid := ParseSelection("1,3,5")
	assert.False(t, quit)
	assert.Empty(t, invalid)
	assert.Equal(t, orchestrator.Selection{Formulas: true, Extensions: true, DotFiles: true}, sel)
}

func TestParseSelectionTrimsTokens(t *testing.T) {
	sel, quit, invalid := ParseSelection(" 2 ,  4 ")
	assert.False(t, quit)
	assert.Empty(t, invalid)
	assert.Equal(t, orchestrator.Selection{Casks: true, Settings: true}, sel)
}

func TestParseSelectionAll(t *testing.T) {
	sel, quit, invalid := ParseSelection("6")
	assert.False(t, quit)
	assert.Empty(t, invalid)
	assert.Equal(t, orchestrator.All(), sel)
}

func TestParseSelectionQuit(t *testing.T) {
	sel, quit, invalid := ParseSelection("7")
	assert.True(t, quit)
	assert.Empty(t, invalid)
	assert.True(t, sel.Empty())
}

func TestParseSelectionQuitWinsImmediately(t *testing.T) {
	// Quit is unconditional even when mixed with valid tokens.
	_, quit, _ := ParseSelection("1,7,3")
	assert.True(t, quit)
}

func TestParseSelectionInvalidTokensDoNotAbort(t *testing.T) {
	sel, quit, invalid := ParseSelection("abc,2,99")
	assert.False(t, quit)
	assert.Equal(t, []string{"abc", "99"}, invalid)
	assert.Equal(t, orchestrator.Selection{Casks: true}, sel)
}

func TestParseSelectionNoValidTokens(t *testing.T) {
	sel, quit, invalid := ParseSelection("x,,0")
	assert.False(t, quit)
	assert.Equal(t, []string{"x", "0"}, invalid)
	assert.True(t, sel.Empty())
}

func TestParseSelectionEmptyInput(t *testing.T) {
	sel, quit, invalid := ParseSelection("")
	assert.False(t, quit)
	assert.Empty(t, invalid)
	assert.True(t, sel.Empty())
}
