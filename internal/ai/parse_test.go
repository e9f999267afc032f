package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantOK  bool
	}{
		{
			name:   "bare object",
			raw:    `{"bias_score": 42}`,
			want:   `{"bias_score": 42}`,
			wantOK: true,
		},
		{
			name:   "json fence",
			raw:    "```json\n{\"bias_score\": 42}\n```",
			want:   `{"bias_score": 42}`,
			wantOK: true,
		},
		{
			name:   "plain fence",
			raw:    "```\n{\"a\": 1}\n```",
			want:   `{"a": 1}`,
			wantOK: true,
		},
		{
			name:   "prose around object",
			raw:    "Here is the analysis you asked for: {\"a\": 1} Hope that helps!",
			want:   `{"a": 1}`,
			wantOK: true,
		},
		{
			name:   "no object",
			raw:    "I cannot analyze this article.",
			wantOK: false,
		},
		{
			name:   "malformed object",
			raw:    `{"a": }`,
			wantOK: false,
		},
		{
			name:   "empty reply",
			raw:    "",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractJSON(tt.raw)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestField(t *testing.T) {
	doc := `{"bias_score": 65, "nested": {"label": "Conservative"}}`

	assert.Equal(t, int64(65), Field(doc, "bias_score").Int())
	assert.Equal(t, "Conservative", Field(doc, "nested.label").String())
	assert.False(t, Field(doc, "missing").Exists())
}

func TestStringSlice(t *testing.T) {
	doc := `{"key_indicators": ["border security", 42, "law and order", null]}`

	got := StringSlice(doc, "key_indicators")
	require.Len(t, got, 2)
	assert.Equal(t, []string{"border security", "law and order"}, got)

	assert.Nil(t, StringSlice(doc, "missing"))
}
