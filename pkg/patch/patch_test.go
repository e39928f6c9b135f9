package patch_test

import (
	"encoding/json"
	"testing"

	"eco3/pkg/patch"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type doc struct {
	Title   patch.Field[string] `json:"title"`
	Content patch.Field[string] `json:"content"`
}

func TestFieldAbsent(t *testing.T) {
	var d doc
	require.NoError(t, json.Unmarshal([]byte(`{}`), &d))
	assert.False(t, d.Title.Set)
	assert.False(t, d.Content.Set)

	updates := map[string]any{}
	d.Title.Apply(updates, "title")
	assert.Empty(t, updates)
}

func TestFieldNull(t *testing.T) {
	var d doc
	require.NoError(t, json.Unmarshal([]byte(`{"content":null}`), &d))
	require.True(t, d.Content.Set)
	assert.False(t, d.Content.Valid)

	updates := map[string]any{}
	d.Content.Apply(updates, "content")
	require.Contains(t, updates, "content")
	assert.Nil(t, updates["content"])
}

func TestFieldValue(t *testing.T) {
	var d doc
	require.NoError(t, json.Unmarshal([]byte(`{"title":"solar panels"}`), &d))
	require.True(t, d.Title.Set)
	require.True(t, d.Title.Valid)
	assert.Equal(t, "solar panels", d.Title.Value)

	updates := map[string]any{}
	d.Title.Apply(updates, "title")
	assert.Equal(t, "solar panels", updates["title"])
}
