package placement

import (
	"testing"

	"sseol-server/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeScenes(statementCounts ...int) []domain.Scene {
	scenes := make([]domain.Scene, len(statementCounts))
	for i, n := range statementCounts {
		scenes[i].Index = i
		for j := 0; j < n; j++ {
			scenes[i].Statements = append(scenes[i].Statements, domain.Statement{Index: j, DisplayText: "대사"})
		}
	}
	return scenes
}

func TestProportionalScene(t *testing.T) {
	tests := []struct {
		name                    string
		index, total, scenes, want int
	}{
		{"first image", 0, 3, 3, 0},
		{"one per scene middle", 1, 3, 3, 1},
		{"one per scene last", 2, 3, 3, 2},
		{"more images than scenes", 5, 10, 3, 1},
		{"last of many", 9, 10, 3, 2},
		{"more scenes than images", 1, 2, 10, 5},
		{"no scenes", 2, 3, 0, 0},
		{"no images", 0, 0, 4, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ProportionalScene(tt.index, tt.total, tt.scenes))
		})
	}
}

func TestFallback_NoScenes(t *testing.T) {
	placements := Fallback(3, 0)

	require.Len(t, placements, 3)
	for i, p := range placements {
		assert.Equal(t, i, p.ImageIndex)
		assert.Equal(t, 0, p.SceneIndex)
		assert.Equal(t, domain.PlacementSceneScope, p.Type)
		assert.Equal(t, 0.3, p.Confidence)
		assert.NotEmpty(t, p.Reason)
		assert.Nil(t, p.StatementIndices)
	}
}

func TestFallback_SpreadsProportionally(t *testing.T) {
	placements := Fallback(4, 2)

	scenes := make([]int, 0, len(placements))
	for _, p := range placements {
		scenes = append(scenes, p.SceneIndex)
	}
	assert.Equal(t, []int{0, 0, 1, 1}, scenes)
	assert.Equal(t, Fallback(4, 2), placements)
}

func TestFallback_Empty(t *testing.T) {
	assert.Empty(t, Fallback(0, 5))
}
