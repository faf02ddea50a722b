package scenes

import (
	"testing"

	"sseol-server/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func statementTexts(s domain.Scene) []string {
	out := make([]string, 0, len(s.Statements))
	for _, st := range s.Statements {
		out = append(out, st.DisplayText)
	}
	return out
}

func TestParse_Empty(t *testing.T) {
	assert.Empty(t, Parse(""))
	assert.Empty(t, Parse("\n\n   \n"))
	assert.NotNil(t, Parse(""))
}

func TestParse_BlankLinesSeparateScenes(t *testing.T) {
	text := "비가 내렸다.\n그는 우산을 폈다.\n\n\n카페 문이 열렸다.\r\n그녀가 웃었다.\n"

	got := Parse(text)

	require.Len(t, got, 2)
	assert.Equal(t, 0, got[0].Index)
	assert.Equal(t, 1, got[1].Index)
	assert.Equal(t, []string{"비가 내렸다.", "그는 우산을 폈다."}, statementTexts(got[0]))
	assert.Equal(t, []string{"카페 문이 열렸다.", "그녀가 웃었다."}, statementTexts(got[1]))
	for _, scene := range got {
		for i, st := range scene.Statements {
			assert.Equal(t, i, st.Index)
		}
	}
}

func TestParse_DropsHeadersAndListMarkers(t *testing.T) {
	text := "[장면 1]\n- 아침이 밝았다.\n* 알람이 울렸다.\n\n#2\n1. 지하철은 붐볐다.\n2) 그는 졸았다.\n\nScene 3:\n장면 4: 이건 헤더가 아니다."

	got := Parse(text)

	require.Len(t, got, 3)
	assert.Equal(t, []string{"아침이 밝았다.", "알람이 울렸다."}, statementTexts(got[0]))
	assert.Equal(t, []string{"지하철은 붐볐다.", "그는 졸았다."}, statementTexts(got[1]))
	assert.Equal(t, []string{"장면 4: 이건 헤더가 아니다."}, statementTexts(got[2]))
}

func TestParse_HeaderOnlySceneIsSkipped(t *testing.T) {
	got := Parse("[Scene 1]\n\n첫 문장.")

	require.Len(t, got, 1)
	assert.Equal(t, 0, got[0].Index)
	assert.Equal(t, []string{"첫 문장."}, statementTexts(got[0]))
}
