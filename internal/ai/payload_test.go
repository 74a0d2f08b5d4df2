package ai

import (
	"github.com/stretchr/testify/require"
	"testing"
)

func TestExtractPayload(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "plain JSON",
			text: `{"score": 80}`,
			want: `{"score": 80}`,
		},
		{
			name: "json fence",
			text: "```json\n{\"score\": 80}\n```",
			want: `{"score": 80}`,
		},
		{
			name: "bare fence",
			text: "```\n{\"score\": 80}\n```",
			want: `{"score": 80}`,
		},
		{
			name: "surrounding whitespace",
			text: "\n\n  ```json\n{\"score\": 80}\n```  \n",
			want: `{"score": 80}`,
		},
		{
			name: "unterminated fence",
			text: "```json\n{\"score\": 80}",
			want: `{"score": 80}`,
		},
		{
			name: "single-line fence",
			text: "```{\"score\": 80}```",
			want: `{"score": 80}`,
		},
		{
			name: "single-line fence with language tag",
			text: "```json{\"score\": 80}```",
			want: `{"score": 80}`,
		},
		{
			name: "empty",
			text: "   ",
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ExtractPayload(tt.text))
		})
	}
}
