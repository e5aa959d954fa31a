package gemini

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestExtractText(t *testing.T) {
	tests := []struct {
		name string
		resp *genai.GenerateContentResponse
		want string
	}{
		{
			name: "nil response",
			resp: nil,
			want: "",
		},
		{
			name: "no candidates",
			resp: &genai.GenerateContentResponse{},
			want: "",
		},
		{
			name: "aggregated parts",
			resp: &genai.GenerateContentResponse{
				Candidates: []*genai.Candidate{
					{Content: genai.NewContentFromParts([]*genai.Part{
						genai.NewPartFromText("Hello, "),
						genai.NewPartFromText("world"),
					}, genai.RoleModel)},
				},
			},
			want: "Hello, world",
		},
		{
			name: "first candidate empty",
			resp: &genai.GenerateContentResponse{
				Candidates: []*genai.Candidate{
					{Content: nil},
					{Content: genai.NewContentFromText("A latte it is!", genai.RoleModel)},
				},
			},
			want: "A latte it is!",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractText(tt.resp))
		})
	}
}

func TestClosedClientFails(t *testing.T) {
	c, err := NewClient(context.Background(), "test-key", "", 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultModel, c.Model())

	require.NoError(t, c.Close())

	_, err = c.Generate(context.Background(), "hello")
	assert.ErrorContains(t, err, "closed")
}
