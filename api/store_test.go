package api

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerializeDeserializeTaskRoundTrip(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)
	completed := now.Add(2 * time.Second)

	original := &ScanTask{
		ID:          "a3f5c62e-1234-4f72-a84a-1c2d3e4f5678",
		Status:      "completed",
		Target:      "scanme.nmap.org",
		Ports:       "22,80,443",
		Techniques:  []string{"tcp", "syn"},
		Results:     []PortResult{{Port: 22, State: "Open", Method: "TCP SYN scan"}},
		ElapsedSecs: 1.2345,
		CreatedAt:   now,
		CompletedAt: &completed,
		Error:       "",
	}

	data, err := serializeTask(original)
	require.NoError(t, err)

	flattened := make(map[string]string, len(data))
	for k, v := range data {
		flattened[k] = v.(string)
	}

	got, err := deserializeTask(flattened)
	require.NoError(t, err)

	assert.Equal(t, original.ID, got.ID)
	assert.Equal(t, original.Status, got.Status)
	assert.Equal(t, original.Target, got.Target)
	assert.Equal(t, original.Ports, got.Ports)
	assert.Equal(t, original.Techniques, got.Techniques)
	assert.Equal(t, original.Results, got.Results)
	assert.Equal(t, original.ElapsedSecs, got.ElapsedSecs)
	assert.True(t, original.CreatedAt.Equal(got.CreatedAt))
	require.NotNil(t, got.CompletedAt)
	assert.True(t, original.CompletedAt.Equal(*got.CompletedAt))
}

func TestDeserializeTaskWithoutOptionalFields(t *testing.T) {
	got, err := deserializeTask(map[string]string{
		"id":     "abc",
		"status": "pending",
		"target": "example.com",
	})
	require.NoError(t, err)

	assert.Equal(t, "abc", got.ID)
	assert.Nil(t, got.CompletedAt)
	assert.Empty(t, got.Results)
	assert.Zero(t, got.ElapsedSecs)
}
