package gemini_test

import (
	"context"
	"testing"

	"github.com/fwojciec/pressdoc"
	"github.com/fwojciec/pressdoc/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableNarrator_Narrate_SkipsEmptyTable(t *testing.T) {
	t.Parallel()

	narrator := gemini.NewTableNarrator(nil, "") // nil client ok for this test

	sentences, err := narrator.Narrate(context.Background(), pressdoc.ParsedTable{Header: []string{}, Rows: [][]string{}})

	require.NoError(t, err)
	assert.Empty(t, sentences)
}

func TestBuildConfig_SetsSystemInstruction(t *testing.T) {
	t.Parallel()

	config := gemini.BuildConfig()

	require.NotNil(t, config.SystemInstruction)
	require.Len(t, config.SystemInstruction.Parts, 1)
	assert.Contains(t, config.SystemInstruction.Parts[0].Text, "병합된 테이블 데이터")
	require.NotNil(t, config.Temperature)
	assert.InDelta(t, 0.3, *config.Temperature, 0.001)
	assert.Equal(t, "application/json", config.ResponseMIMEType)
}

func TestBuildPrompt(t *testing.T) {
	t.Parallel()

	prompt, err := gemini.BuildPrompt([][]string{{"구분", "여객"}, {"출발", "50만"}})

	require.NoError(t, err)
	assert.Equal(t, "테이블 데이터:\n[[\"구분\",\"여객\"],[\"출발\",\"50만\"]]", prompt)
}

func TestParseSentences(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "JSON array",
			text: `["출발 여객은 50만 명이다.", "도착 여객은 50만 명이다."]`,
			want: []string{"출발 여객은 50만 명이다.", "도착 여객은 50만 명이다."},
		},
		{
			name: "fenced JSON array",
			text: "```json\n[\"출발 여객은 50만 명이다.\"]\n```",
			want: []string{"출발 여객은 50만 명이다."},
		},
		{
			name: "trailing comma falls back to lines",
			text: "[\n\"데이터1\",\n\"데이터2\",\n]",
			want: []string{"데이터1", "데이터2"},
		},
		{
			name: "bulleted lines",
			text: "- 데이터1\n\n* 데이터2\n",
			want: []string{"데이터1", "데이터2"},
		},
		{
			name: "empty response",
			text: "  ",
			want: []string{},
		},
		{
			name: "drops blank array items",
			text: `["데이터1", " ", ""]`,
			want: []string{"데이터1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, gemini.ParseSentences(tt.text))
		})
	}
}
