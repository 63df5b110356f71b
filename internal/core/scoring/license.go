package scoring

import (
	"strings"

	"artifact-registry-service/internal/core/domain"
)

// licenseMetric checks the model's license for LGPLv2.1 compatibility.
type licenseMetric struct{}

func (licenseMetric) Name() string { return MetricLicense }

func (licenseMetric) Compute(snaps *domain.SnapshotSet) (float64, error) {
	if snaps.Model == nil {
		if err := snaps.FetchErr(domain.SourceKindHubModel); err != nil {
			return 0, err
		}
		return 0, nil
	}

	if snaps.Model.License != "" {
		return licenseIdentifierScore(snaps.Model.License), nil
	}

	readme := snaps.Model.Readme
	if id, ok := frontMatterLicense(readme); ok {
		return licenseIdentifierScore(id), nil
	}
	// Front matter exists but carries no license field: treat as undeclared.
	if strings.HasPrefix(strings.TrimSpace(readme), "---") {
		return 0, nil
	}
	return licenseTextScore(readme), nil
}

// acceptedLicenses holds SPDX identifiers and common names compatible with
// LGPLv2.1.
var acceptedLicenses = map[string]struct{}{
	"mit": {}, "mit license": {},
	"apache": {}, "apache-2.0": {}, "apache 2.0": {}, "apache license": {},
	"bsd": {}, "bsd-2-clause": {}, "bsd-3-clause": {}, "bsd license": {},
	"gpl-2.0": {}, "gpl-2.0-only": {}, "gpl-2.0-or-later": {}, "gplv2": {},
	"gpl-3.0": {}, "gpl-3.0-only": {}, "gpl-3.0-or-later": {}, "gplv3": {},
	"lgpl-2.1": {}, "lgpl-2.1-only": {}, "lgpl-2.1-or-later": {}, "lgplv2.1": {},
	"lgpl-3.0": {}, "lgpl-3.0-only": {}, "lgpl-3.0-or-later": {}, "lgplv3": {},
	"cc0": {}, "cc0-1.0": {}, "creative commons zero": {},
	"unlicense": {}, "public domain": {},
}

func licenseIdentifierScore(id string) float64 {
	if _, ok := acceptedLicenses[strings.ToLower(strings.TrimSpace(id))]; ok {
		return 1.0
	}
	return 0.0
}

var licenseTextPatterns = []string{
	"mit license", "mit",
	"apache license", "apache", "apache-2.0", "apache 2.0",
	"bsd license", "bsd",
	"gpl-2.0", "gplv2", "gpl v2", "gnu general public license version 2",
	"lgpl-2.1", "lgplv2.1", "lgpl v2.1",
	"lgpl-3.0", "lgplv3", "lgpl v3",
	"cc0", "cc0-1.0", "creative commons zero",
}

func licenseTextScore(text string) float64 {
	lower := strings.ToLower(text)
	for _, p := range licenseTextPatterns {
		if strings.Contains(lower, p) {
			return 1.0
		}
	}
	return 0.0
}

// frontMatterLicense extracts a license: field from YAML front matter, if
// the readme opens with a --- block.
func frontMatterLicense(readme string) (string, bool) {
	trimmed := strings.TrimSpace(readme)
	if !strings.HasPrefix(trimmed, "---") {
		return "", false
	}
	parts := strings.SplitN(trimmed, "---", 3)
	if len(parts) < 2 {
		return "", false
	}
	for _, line := range strings.Split(parts[1], "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(strings.ToLower(line), "license:") {
			val := strings.TrimSpace(line[len("license:"):])
			return strings.Trim(val, `"'`), true
		}
	}
	return "", false
}
