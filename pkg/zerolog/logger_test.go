package zerolog

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()
	var out []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		entry := map[string]interface{}{}
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		out = append(out, entry)
	}
	return out
}

func TestLogger_Fields(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("blogd", &buf)

	log.Info("user registered", "username", "alice", 42, "ignored", "error", errors.New("boom"), "dangling")

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 1)
	e := entries[0]
	assert.Equal(t, "info", e["level"])
	assert.Equal(t, "user registered", e["message"])
	assert.Equal(t, "blogd", e["service"])
	assert.Equal(t, "alice", e["username"])
	assert.Equal(t, "boom", e["error"])
	assert.NotContains(t, e, "dangling")
}

func TestLogger_SetLevel(t *testing.T) {
	tests := []struct {
		name      string
		level     string
		wantDebug bool
		wantInfo  bool
	}{
		{name: "debug", level: "debug", wantDebug: true, wantInfo: true},
		{name: "upper case", level: "DEBUG", wantDebug: true, wantInfo: true},
		{name: "warn", level: "warn", wantDebug: false, wantInfo: false},
		{name: "unknown falls back to info", level: "chatty", wantDebug: false, wantInfo: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			log := NewWithWriter("blogd", &buf)
			log.SetLevel(tt.level)

			log.Debug("debug line")
			log.Info("info line")

			out := buf.String()
			assert.Equal(t, tt.wantDebug, strings.Contains(out, "debug line"))
			assert.Equal(t, tt.wantInfo, strings.Contains(out, "info line"))
		})
	}
}

func TestLogger_WithContext(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("blogd", &buf)

	child := log.WithContext(map[string]interface{}{"request_id": "abc"})
	child.Warn("slow request")
	log.Error("plain")

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 2)
	assert.Equal(t, "abc", entries[0]["request_id"])
	assert.Equal(t, "warn", entries[0]["level"])
	assert.NotContains(t, entries[1], "request_id")
}
