package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"artifact-registry-service/internal/core/domain"
)

func TestClassifySource(t *testing.T) {
	cases := []struct {
		url  string
		kind domain.SourceKind
		ok   bool
	}{
		{"https://huggingface.co/google-bert/bert-base-uncased", domain.SourceKindHubModel, true},
		{"https://huggingface.co/datasets/bookcorpus/bookcorpus", domain.SourceKindHubDataset, true},
		{"https://github.com/google-research/bert", domain.SourceKindRepository, true},
		{"https://gitlab.com/some/repo", "", false},
		{"not a url at all ::", "", false},
		{"https://example.org/model", "", false},
	}
	for _, tc := range cases {
		kind, ok := ClassifySource(tc.url)
		assert.Equal(t, tc.ok, ok, tc.url)
		if tc.ok {
			assert.Equal(t, tc.kind, kind, tc.url)
		}
	}
}
