package progress

import (
	"bytes"
	"testing"

	"github.com/briandowns/spinner"
	"github.com/stretchr/testify/assert"
)

func TestDetectTerminalCapabilities_NonTerminal(t *testing.T) {
	t.Parallel()

	caps := DetectTerminalCapabilities(&bytes.Buffer{})

	assert.False(t, caps.IsTTY)
	assert.False(t, caps.SupportsColor)
	assert.False(t, caps.SupportsUnicode)
	assert.Zero(t, caps.Width)
}

func TestSpinnerSet(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		caps TerminalCapabilities
		want []string
	}{
		"unicode": {caps: TerminalCapabilities{SupportsUnicode: true}, want: spinner.CharSets[14]},
		"ascii":   {caps: TerminalCapabilities{}, want: spinner.CharSets[9]},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, SpinnerSet(tt.caps))
		})
	}
}

func TestStart_NoTerminalDrawsNothing(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	stop := Start(&buf, false, " Fetching changelog...")
	stop()

	assert.Empty(t, buf.String())
}
