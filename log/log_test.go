package log

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	testCases := []struct {
		in   string
		want slog.Level
	}{
		{"trace", LevelTrace},
		{"DEBUG", LevelDebug},
		{"info", LevelInfo},
		{"warning", LevelWarn},
		{"error", LevelError},
		{"crit", LevelCrit},
	}
	for _, tc := range testCases {
		lvl, err := ParseLevel(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, lvl, tc.in)

		// LevelString names round-trip through ParseLevel
		back, err := ParseLevel(LevelString(lvl))
		require.NoError(t, err, tc.in)
		assert.Equal(t, lvl, back, tc.in)
	}
	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestModuleFiltering(t *testing.T) {
	var buf bytes.Buffer
	old := Root()
	SetDefault(NewLogger(NewTerminalHandlerWithLevel(&buf, LevelTrace, false)))
	defer SetDefault(old)

	DisableModule(WalkerModule)
	Trace(WalkerModule, "descend", "offset", 3)
	assert.Empty(t, buf.String())

	EnableModule(WalkerModule)
	defer DisableModule(WalkerModule)
	Trace(WalkerModule, "descend", "offset", 3)
	out := buf.String()
	assert.Contains(t, out, "descend")
	assert.Contains(t, out, "offset=3")
	assert.Contains(t, out, "module=walker")
}

func TestTerminalHandlerLevelGate(t *testing.T) {
	var buf bytes.Buffer
	h := NewTerminalHandlerWithLevel(&buf, LevelWarn, false)
	lg := NewLogger(h)
	lg.Info(VerifierModule, "below threshold")
	assert.Empty(t, buf.String())
	lg.Error(VerifierModule, "rejected", "offset", 0)
	assert.Contains(t, buf.String(), "ERROR")
	assert.Contains(t, buf.String(), "rejected")
}
