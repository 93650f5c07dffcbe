package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeKVsRedactsSecrets(t *testing.T) {
	got := sanitizeKVs([]interface{}{
		"api_key", "sk-live-123",
		"resume", "data:application/pdf;base64,JVBERi0xLjQK",
		"flow", "parse_resume",
		"dangling",
	})

	require.Len(t, got, 7)
	assert.Equal(t, "[REDACTED]", got[1])
	assert.Equal(t, "[REDACTED]", got[3])
	assert.Equal(t, "parse_resume", got[5])
	assert.Equal(t, "dangling", got[6])
}

func TestSanitizeKVsHashesUserIDs(t *testing.T) {
	got := sanitizeKVs([]interface{}{"user_id", "firebase-uid-1"})

	require.Len(t, got, 2)
	hashed, ok := got[1].(string)
	require.True(t, ok)
	assert.Regexp(t, `^hash:[0-9a-f]{12}$`, hashed)
	assert.Equal(t, hashed, hashValue("firebase-uid-1"))
}

func TestNewTestModeDiscards(t *testing.T) {
	log, err := New("test")
	require.NoError(t, err)
	log.Info("dropped", "k", "v")
	log.With("service", "x").Warn("also dropped")
}
