package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   string
		wantOK bool
	}{
		{"strict object", `{"a":1}`, `{"a":1}`, true},
		{"surrounded by prose", "Here you go: {\"a\": [1,2]} hope it helps", `{"a": [1,2]}`, true},
		{"fenced block", "```json\n{\"a\":1}\n```", `{"a":1}`, true},
		{"not json", "not json", "", false},
		{"truncated", `{"a": [1, 2`, "", false},
		{"empty", "   ", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractJSONObject(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRepairJSONObject_ClosesTruncatedOutput(t *testing.T) {
	got, ok := RepairJSONObject(`{"description": "비 오는 거리", "subjects": ["우산", "사람"`)
	require.True(t, ok)
	assert.Equal(t, `{"description": "비 오는 거리", "subjects": ["우산", "사람"]}`, got)

	got, ok = RepairJSONObject(`{"description": "끝나지 않은`)
	require.True(t, ok)
	assert.Equal(t, `{"description": "끝나지 않은"}`, got)
}

func TestRepairJSONObject_IgnoresBracketsInsideStrings(t *testing.T) {
	got, ok := RepairJSONObject(`{"description": "a } b { c", "mood": "calm"`)
	require.True(t, ok)
	assert.Equal(t, `{"description": "a } b { c", "mood": "calm"}`, got)
}

func TestStringShort(t *testing.T) {
	assert.Equal(t, "안녕하세요", StringShort("안녕하세요", 5))
	assert.Equal(t, "안녕...", StringShort("안녕하세요 세계", 5))
	assert.Equal(t, "...", StringShort("abcdef", 2))
}

func TestReadSecretOrEnv(t *testing.T) {
	dir := t.TempDir()
	oldDir := secretsDir
	secretsDir = dir
	t.Cleanup(func() { secretsDir = oldDir })

	t.Setenv("TEST_API_KEY", "from-env")
	assert.Equal(t, "from-env", ReadSecretOrEnv("test_api_key", "TEST_API_KEY"))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "test_api_key"), []byte("  from-file\n"), 0o600))
	assert.Equal(t, "from-file", ReadSecretOrEnv("test_api_key", "TEST_API_KEY"))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "empty_key"), []byte("  "), 0o600))
	_, err := ReadSecret("empty_key")
	assert.Error(t, err)
}

func TestContentHash(t *testing.T) {
	a := ContentHash([]byte("image-a"))
	assert.Len(t, a, 64)
	assert.Equal(t, a, ContentHash([]byte("image-a")))
	assert.NotEqual(t, a, ContentHash([]byte("image-b")))
}
