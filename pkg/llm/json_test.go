package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{
			name:  "bare object",
			input: `{"title": "x"}`,
			want:  `{"title": "x"}`,
		},
		{
			name:  "bare array",
			input: `[{"a": 1}, {"a": 2}]`,
			want:  `[{"a": 1}, {"a": 2}]`,
		},
		{
			name:  "fenced code block",
			input: "Sure:\n```json\n[{\"title\": \"x\"}]\n```\nHope that helps.",
			want:  `[{"title": "x"}]`,
		},
		{
			name:  "object embedded in prose",
			input: `The answer is {"done": true} as requested.`,
			want:  `{"done": true}`,
		},
		{
			name:  "nested structures stay balanced",
			input: `prefix [{"items": [1, 2, {"k": "v"}]}] suffix`,
			want:  `[{"items": [1, 2, {"k": "v"}]}]`,
		},
		{
			name:  "braces inside strings do not break balancing",
			input: `{"text": "a } inside"}`,
			want:  `{"text": "a } inside"}`,
		},
		{
			name:    "plain prose",
			input:   "no structured data here",
			wantErr: true,
		},
		{
			name:    "unterminated object",
			input:   `{"title": "x"`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractJSON(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
