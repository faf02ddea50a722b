package placement

import (
	"errors"
	"testing"

	"sseol-server/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeEnvelope(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantLen int
		wantErr bool
	}{
		{"strict", `{"placements": [{"imageIndex": 0}]}`, 1, false},
		{"wrapped in prose", "Sure!\n{\"placements\": [{\"imageIndex\": 0}, {\"imageIndex\": 1}]}\nDone.", 2, false},
		{"fenced", "```json\n{\"placements\": []}\n```", 0, false},
		{"not json", "not json", 0, true},
		{"missing placements", `{"result": []}`, 0, true},
		{"placements not array", `{"placements": {"imageIndex": 0}}`, 0, true},
		{"top-level array", `[{"imageIndex": 0}]`, 0, true},
		{"truncated", `{"placements": [{"imageIndex": 0}, {"imageInd`, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, err := DecodeEnvelope(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, domain.ErrMalformedResponse))
				return
			}
			require.NoError(t, err)
			assert.Len(t, entries, tt.wantLen)
		})
	}
}

func TestValidator_ClampsLenientEntry(t *testing.T) {
	scenes := makeScenes(2, 3)
	raw := `{"placements": [{"imageIndex": 1, "type": "statement-scope", "sceneIndex": 99, "statementIndices": [-1, 50], "confidence": 5, "reason": ""}]}`

	got := NewValidator(nil).Parse(raw, scenes, 2)

	require.Len(t, got, 1)
	p := got[0]
	assert.Equal(t, 1, p.ImageIndex)
	assert.Equal(t, domain.PlacementStatementScope, p.Type)
	assert.Equal(t, 1, p.SceneIndex)
	assert.Equal(t, []int{2}, p.StatementIndices)
	assert.Equal(t, 1.0, p.Confidence)
	assert.NotEmpty(t, p.Reason)
}

func TestValidator_FirstSeenWins(t *testing.T) {
	scenes := makeScenes(1, 1)
	raw := `{"placements": [
		{"imageIndex": 0, "type": "scene-scope", "sceneIndex": 0, "confidence": 0.2, "reason": "first"},
		{"imageIndex": 0, "type": "scene-scope", "sceneIndex": 1, "confidence": 0.99, "reason": "second"}
	]}`

	got := NewValidator(nil).Parse(raw, scenes, 1)

	require.Len(t, got, 1)
	assert.Equal(t, "first", got[0].Reason)
	assert.Equal(t, 0, got[0].SceneIndex)
	assert.Equal(t, 0.2, got[0].Confidence)
}

func TestValidator_DropsInvalidEntries(t *testing.T) {
	scenes := makeScenes(2, 2)
	raw := `{"placements": [
		"not an object",
		42,
		{"type": "scene-scope", "sceneIndex": 0},
		{"imageIndex": "1", "sceneIndex": 0},
		{"imageIndex": -1, "sceneIndex": 0},
		{"imageIndex": 3, "sceneIndex": 0},
		{"imageIndex": 0.5, "sceneIndex": 0},
		{"imageIndex": 2, "sceneIndex": 1, "reason": "ok"}
	]}`

	got := NewValidator(nil).Parse(raw, scenes, 3)

	require.Len(t, got, 1)
	assert.Equal(t, 2, got[0].ImageIndex)
	assert.Equal(t, 1, got[0].SceneIndex)
	assert.Equal(t, "ok", got[0].Reason)
}

func TestValidator_Defaults(t *testing.T) {
	scenes := makeScenes(2, 0, 3)
	raw := `{"placements": [
		{"imageIndex": 0},
		{"imageIndex": 1, "type": "banner", "sceneIndex": "2", "confidence": "high"},
		{"imageIndex": 2, "type": "statement-scope", "sceneIndex": 2},
		{"imageIndex": 3, "type": "statement-scope", "sceneIndex": 1, "statementIndices": [0]},
		{"imageIndex": 4, "type": "scene-scope", "sceneIndex": -4, "statementIndices": [1], "confidence": -0.5},
		{"imageIndex": 5, "type": "statement-scope", "sceneIndex": 2.7, "statementIndices": [2, 2.9, 1, "x"]}
	]}`

	got := NewValidator(nil).Parse(raw, scenes, 6)
	require.Len(t, got, 6)

	t.Run("missing fields", func(t *testing.T) {
		p := got[0]
		assert.Equal(t, domain.PlacementSceneScope, p.Type)
		assert.Equal(t, 0, p.SceneIndex)
		assert.Equal(t, 0.7, p.Confidence)
		assert.NotEmpty(t, p.Reason)
		assert.Nil(t, p.StatementIndices)
	})

	t.Run("unknown type and non-numeric fields", func(t *testing.T) {
		p := got[1]
		assert.Equal(t, domain.PlacementSceneScope, p.Type)
		assert.Equal(t, 0, p.SceneIndex)
		assert.Equal(t, 0.7, p.Confidence)
	})

	t.Run("statement scope without indices defaults to first statement", func(t *testing.T) {
		p := got[2]
		assert.Equal(t, domain.PlacementStatementScope, p.Type)
		assert.Equal(t, []int{0}, p.StatementIndices)
	})

	t.Run("statement scope in scene without statements becomes scene scope", func(t *testing.T) {
		p := got[3]
		assert.Equal(t, domain.PlacementSceneScope, p.Type)
		assert.Equal(t, 1, p.SceneIndex)
		assert.Nil(t, p.StatementIndices)
	})

	t.Run("scene scope drops statement indices and clamps", func(t *testing.T) {
		p := got[4]
		assert.Equal(t, domain.PlacementSceneScope, p.Type)
		assert.Equal(t, 0, p.SceneIndex)
		assert.Nil(t, p.StatementIndices)
		assert.Equal(t, 0.0, p.Confidence)
	})

	t.Run("fractional indices are floored and deduplicated", func(t *testing.T) {
		p := got[5]
		assert.Equal(t, 2, p.SceneIndex)
		assert.Equal(t, []int{2, 1}, p.StatementIndices)
	})
}

func TestValidator_NeverFails(t *testing.T) {
	v := NewValidator(nil)
	for _, raw := range []string{"", "null", "{}", `{"placements": null}`, "not json", `{"placements": [null, [], {}]}`} {
		got := v.Parse(raw, makeScenes(1), 2)
		assert.NotNil(t, got, raw)
		assert.Empty(t, got, raw)
	}
}

func TestValidator_RangeSafety(t *testing.T) {
	scenes := makeScenes(1, 4, 2)
	raw := `{"placements": [
		{"imageIndex": 0, "type": "statement-scope", "sceneIndex": 1e300, "statementIndices": [1e300]},
		{"imageIndex": 1, "type": "statement-scope", "sceneIndex": 1, "statementIndices": [0, 3, 7]}
	]}`

	got := NewValidator(nil).Parse(raw, scenes, 2)
	require.Len(t, got, 2)

	for _, p := range got {
		require.GreaterOrEqual(t, p.SceneIndex, 0)
		require.Less(t, p.SceneIndex, len(scenes))
		for _, si := range p.StatementIndices {
			assert.GreaterOrEqual(t, si, 0)
			assert.Less(t, si, len(scenes[p.SceneIndex].Statements))
		}
	}
	assert.Equal(t, 2, got[0].SceneIndex)
	assert.Equal(t, []int{1}, got[0].StatementIndices)
	assert.Equal(t, []int{0, 3}, got[1].StatementIndices)
}
