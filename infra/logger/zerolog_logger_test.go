package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestZerologLoggerFields(t *testing.T) {
	var buf bytes.Buffer
	z := zerolog.New(&buf).With().Str("component", "test").Logger()
	l := &ZerologLogger{log: z}

	l.Infof("estimating order %s", "o1")
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "test", entry["component"])
	require.Equal(t, "estimating order o1", entry["message"])
}

func TestZerologLoggerDebugw(t *testing.T) {
	var buf bytes.Buffer
	z := zerolog.New(&buf).Level(zerolog.DebugLevel)
	l := &ZerologLogger{log: z}

	l.Debugw("applied", map[string]any{"order_id": "o1", "generation": 3})
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "o1", entry["order_id"])
	require.EqualValues(t, 3, entry["generation"])
}
