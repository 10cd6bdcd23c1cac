package audit

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntryFlattensDetails(t *testing.T) {
	e := Entry{
		Timestamp: time.Date(2024, 6, 15, 12, 0, 0, int(500*time.Millisecond), time.UTC),
		Action:    ActionLoginSuccess,
		Details:   map[string]any{"ip": "203.0.113.9"},
	}

	data, err := json.Marshal(e)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "LOGIN_SUCCESS", raw["action"])
	assert.Equal(t, "203.0.113.9", raw["ip"])
	assert.Equal(t, "2024-06-15T12:00:00.500Z", raw["timestamp"])

	var back Entry
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, e.Action, back.Action)
	assert.Equal(t, "203.0.113.9", back.Details["ip"])
	assert.True(t, e.Timestamp.Equal(back.Timestamp))
}

func TestEntryUnmarshalTolerantOfPlainRFC3339(t *testing.T) {
	var e Entry
	require.NoError(t, e.UnmarshalJSON([]byte(`{"timestamp":"2024-06-15T12:00:00Z","action":"LOGIN_SUCCESS"}`)))
	assert.Equal(t, ActionLoginSuccess, e.Action)
	assert.Nil(t, e.Details)
}
