package logging_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/katalvlaran/remoteness/logging"
)

func TestNew(t *testing.T) {
	cases := []struct {
		level string
		dev   bool
		want  zapcore.Level
	}{
		{"debug", true, zapcore.DebugLevel},
		{"info", false, zapcore.InfoLevel},
		{"WARN", false, zapcore.WarnLevel},
		{"error", true, zapcore.ErrorLevel},
	}
	for _, tc := range cases {
		t.Run(tc.level, func(t *testing.T) {
			l, err := logging.New(tc.level, tc.dev)
			require.NoError(t, err)
			assert.True(t, l.Core().Enabled(tc.want))
			if tc.want > zapcore.DebugLevel {
				assert.False(t, l.Core().Enabled(tc.want-1))
			}
		})
	}
}

func TestNewBadLevel(t *testing.T) {
	_, err := logging.New("loud", false)
	assert.Error(t, err)
}

func TestNop(t *testing.T) {
	assert.False(t, logging.Nop().Core().Enabled(zapcore.ErrorLevel))
	assert.NotNil(t, logging.OrNop(nil))
	l := logging.Nop()
	assert.Same(t, l, logging.OrNop(l))
}
