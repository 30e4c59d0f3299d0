package ingestion

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetadata_JSONMarshaling(t *testing.T) {
	metadata := &Metadata{
		File:      "20250624_61383_SeniorDevOpsEngineer.txt",
		Timestamp: "2025-06-24T00:00:00Z",
		Hash:      "abcd1234",
		Chars:     42,
	}

	jsonBytes, err := metadata.ToJSON()
	require.NoError(t, err)
	assert.Contains(t, string(jsonBytes), "\n  \"file\"")

	var unmarshaled Metadata
	require.NoError(t, json.Unmarshal(jsonBytes, &unmarshaled))
	assert.Equal(t, *metadata, unmarshaled)
}

func TestComputeHash(t *testing.T) {
	hash1 := computeHash("test content")
	hash2 := computeHash("different content")

	assert.Len(t, hash1, 64)
	assert.NotEqual(t, hash1, hash2)
	assert.Equal(t, hash1, computeHash("test content"))
}

func TestNewMetadata(t *testing.T) {
	metadata := NewMetadata("Köln", "/data/Stellenbeschreibung/20250624_x.txt")

	assert.Equal(t, "20250624_x.txt", metadata.File)
	assert.Equal(t, 4, metadata.Chars)
	assert.Equal(t, computeHash("Köln"), metadata.Hash)

	_, err := time.Parse(time.RFC3339, metadata.Timestamp)
	assert.NoError(t, err)
}
