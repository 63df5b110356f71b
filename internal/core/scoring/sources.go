package scoring

import (
	"net/url"
	"strings"

	"artifact-registry-service/internal/core/domain"
)

// ClassifySource maps a provenance URL to the source kind a fetcher
// understands. Unknown hosts are skipped rather than failed: an artifact may
// legitimately reference sources the registry cannot inspect.
func ClassifySource(raw string) (domain.SourceKind, bool) {
	parsed, err := url.Parse(raw)
	if err != nil {
		return "", false
	}
	host := strings.ToLower(parsed.Hostname())
	path := strings.ToLower(parsed.Path)

	switch {
	case strings.HasSuffix(host, "huggingface.co"):
		if strings.Contains(path, "/datasets/") || strings.HasPrefix(path, "/datasets") {
			return domain.SourceKindHubDataset, true
		}
		return domain.SourceKindHubModel, true
	case strings.HasSuffix(host, "github.com"):
		return domain.SourceKindRepository, true
	default:
		return "", false
	}
}
