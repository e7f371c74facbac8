package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger(t *testing.T) {
	t.Run("requires a prefix", func(t *testing.T) {
		_, err := New("", "", nil)
		assert.Error(t, err)
	})

	t.Run("json entries carry the component", func(t *testing.T) {
		t.Setenv("LOG_FORMAT", "json")
		t.Setenv("LOG_LEVEL", "info")
		var buf bytes.Buffer

		l, err := New("CARVER", "\033[36m", &buf)
		require.NoError(t, err)
		l.With("seed", 42).Info("carved maze")
		l.Debug("hidden")
		l.Warn("cache unavailable")

		out := buf.String()
		assert.Contains(t, out, `"component":"CARVER"`)
		assert.Contains(t, out, `"seed":42`)
		assert.Contains(t, out, `"msg":"carved maze"`)
		assert.Contains(t, out, `"level":"warning","msg":"cache unavailable"`)
		assert.NotContains(t, out, "hidden")
	})

	t.Run("debug level", func(t *testing.T) {
		t.Setenv("LOG_FORMAT", "text")
		t.Setenv("LOG_LEVEL", "debug")
		var buf bytes.Buffer

		l, err := New("APP", "", &buf)
		require.NoError(t, err)
		l.Debug("visible")
		assert.Contains(t, buf.String(), "visible")
	})
}
