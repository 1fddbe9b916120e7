package options

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSingleSource(t *testing.T) {
	tests := []struct {
		name    string
		sources []Source
		wantErr string
	}{
		{
			name:    "exactly one",
			sources: []Source{{"WithDocumentFilePath", false}, {"WithDocument", true}},
		},
		{
			name:    "none",
			sources: []Source{{"WithDocumentFilePath", false}, {"WithDocument", false}},
			wantErr: "must specify a document source (use WithDocumentFilePath or WithDocument)",
		},
		{
			name:    "several",
			sources: []Source{{"file", true}, {"url", false}, {"content", true}},
			wantErr: "must specify exactly one document source (got 2 of file, url, or content)",
		},
		{
			name:    "no sources at all",
			wantErr: "must specify a document source (use )",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSingleSource("document", tt.sources...)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())
		})
	}
}

func TestCountSet(t *testing.T) {
	assert.Equal(t, 0, CountSet())
	assert.Equal(t, 2, CountSet(Source{"a", true}, Source{"b", false}, Source{"c", true}))
}

func TestJoinOr(t *testing.T) {
	assert.Equal(t, "", JoinOr(nil))
	assert.Equal(t, "a", JoinOr([]string{"a"}))
	assert.Equal(t, "a or b", JoinOr([]string{"a", "b"}))
	assert.Equal(t, "a, b, or c", JoinOr([]string{"a", "b", "c"}))
}
