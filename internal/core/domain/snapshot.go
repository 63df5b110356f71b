package domain

import "time"

// SourceKind distinguishes the provenance sources a fetcher understands.
type SourceKind string

const (
	SourceKindHubModel   SourceKind = "hub-model"
	SourceKindHubDataset SourceKind = "hub-dataset"
	SourceKindRepository SourceKind = "repository"
)

// FileInfo is one entry of a source's file tree summary.
type FileInfo struct {
	Path string `json:"path"`
	Size int64  `json:"size"`
}

// Snapshot is the structured provenance data fetched from one external
// source. It is read-only once built; metrics share a snapshot without
// copying it.
type Snapshot struct {
	Kind         SourceKind `json:"kind"`
	URL          string     `json:"url"`
	Name         string     `json:"name"`
	Description  string     `json:"description"`
	License      string     `json:"license"`
	Readme       string     `json:"readme"`
	Files        []FileInfo `json:"files"`
	Tags         []string   `json:"tags"`
	Downloads    int64      `json:"downloads"`
	Likes        int64      `json:"likes"`
	Stars        int64      `json:"stars"`
	Contributors int        `json:"contributors"`
	HasIssues    bool       `json:"has_issues"`
	HasWiki      bool       `json:"has_wiki"`
	Homepage     string     `json:"homepage"`
	LastModified time.Time  `json:"last_modified"`
}

// TotalSizeMB sums the file tree sizes in megabytes.
func (s *Snapshot) TotalSizeMB() float64 {
	var total int64
	for _, f := range s.Files {
		total += f.Size
	}
	return float64(total) / (1024 * 1024)
}

// SnapshotSet is the read-only input shared by all metrics of one scoring
// pass. A nil field means the artifact declared no such source or the fetch
// failed; Errs keeps the failure per kind for the stored record.
type SnapshotSet struct {
	Model   *Snapshot
	Dataset *Snapshot
	Code    *Snapshot
	Errs    map[SourceKind]error
}

// FetchErr returns the recorded fetch failure for a kind, or nil.
func (s *SnapshotSet) FetchErr(kind SourceKind) error {
	if s.Errs == nil {
		return nil
	}
	return s.Errs[kind]
}
