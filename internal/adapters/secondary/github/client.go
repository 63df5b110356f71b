package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"artifact-registry-service/internal/config"
	"artifact-registry-service/internal/core/domain"
)

// Client fetches code-repository provenance snapshots from the GitHub REST
// API. Same discipline as the hub client: idempotent GETs, bounded timeout,
// short-TTL response cache, rate limiter tuned for the unauthenticated
// quota unless a token is configured.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	cache   *cache.Cache
	limiter *rate.Limiter
}

func NewClient(cfg *config.GitHubConfig) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	ttl := cfg.CacheTTL
	if ttl == 0 {
		ttl = 5 * time.Minute
	}
	rps := cfg.RatePerSecond
	if rps <= 0 {
		rps = 1
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		token:   cfg.Token,
		http:    &http.Client{Timeout: timeout},
		cache:   cache.New(ttl, 2*ttl),
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

type repoAPIResponse struct {
	FullName        string    `json:"full_name"`
	Description     string    `json:"description"`
	StargazersCount int64     `json:"stargazers_count"`
	HasIssues       bool      `json:"has_issues"`
	HasWiki         bool      `json:"has_wiki"`
	Homepage        string    `json:"homepage"`
	UpdatedAt       time.Time `json:"updated_at"`
	License         *struct {
		SPDXID string `json:"spdx_id"`
	} `json:"license"`
}

type contentEntry struct {
	Path string `json:"path"`
	Size int64  `json:"size"`
	Type string `json:"type"`
}

func (c *Client) Fetch(ctx context.Context, rawURL string, kind domain.SourceKind) (*domain.Snapshot, error) {
	if kind != domain.SourceKindRepository {
		return nil, domain.ErrUnsupportedKind
	}

	repoPath := repoPathFromURL(rawURL)
	if repoPath == "" {
		return nil, fmt.Errorf("%w: cannot extract owner/repo from %q", domain.ErrFetchMalformed, rawURL)
	}

	cacheKey := "repo#" + repoPath
	if cached, ok := c.cache.Get(cacheKey); ok {
		return cached.(*domain.Snapshot), nil
	}

	var api repoAPIResponse
	if err := c.getJSON(ctx, c.baseURL+"/repos/"+repoPath, &api); err != nil {
		return nil, err
	}

	snap := &domain.Snapshot{
		Kind:         domain.SourceKindRepository,
		URL:          rawURL,
		Name:         api.FullName,
		Description:  api.Description,
		Stars:        api.StargazersCount,
		HasIssues:    api.HasIssues,
		HasWiki:      api.HasWiki,
		Homepage:     api.Homepage,
		LastModified: api.UpdatedAt,
	}
	if api.License != nil {
		snap.License = api.License.SPDXID
	}

	// Contributors, readme, and top-level contents are best-effort.
	var contributors []struct {
		Login string `json:"login"`
	}
	if err := c.getJSON(ctx, c.baseURL+"/repos/"+repoPath+"/contributors?per_page=100", &contributors); err != nil {
		log.WithError(err).WithField("repo", repoPath).Debug("contributor list unavailable")
		snap.Contributors = 1
	} else {
		snap.Contributors = len(contributors)
	}

	readme, err := c.getRaw(ctx, c.baseURL+"/repos/"+repoPath+"/readme")
	if err != nil {
		log.WithError(err).WithField("repo", repoPath).Debug("repo readme unavailable")
	}
	snap.Readme = readme

	var contents []contentEntry
	if err := c.getJSON(ctx, c.baseURL+"/repos/"+repoPath+"/contents", &contents); err != nil {
		log.WithError(err).WithField("repo", repoPath).Debug("repo contents unavailable")
	}
	for _, e := range contents {
		if e.Type == "dir" {
			snap.Files = append(snap.Files, domain.FileInfo{Path: e.Path + "/"})
			continue
		}
		snap.Files = append(snap.Files, domain.FileInfo{Path: e.Path, Size: e.Size})
	}

	c.cache.SetDefault(cacheKey, snap)
	return snap, nil
}

func (c *Client) getJSON(ctx context.Context, reqURL string, out interface{}) error {
	body, err := c.get(ctx, reqURL, "application/vnd.github+json")
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrFetchMalformed, err)
	}
	return nil
}

func (c *Client) getRaw(ctx context.Context, reqURL string) (string, error) {
	body, err := c.get(ctx, reqURL, "application/vnd.github.raw+json")
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func (c *Client) get(ctx context.Context, reqURL, accept string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrFetchUnavailable, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrFetchMalformed, err)
	}
	req.Header.Set("Accept", accept)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrFetchUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrFetchUnavailable, err)
		}
		return body, nil
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", domain.ErrFetchNotFound, reqURL)
	default:
		return nil, fmt.Errorf("%w: %s returned %d", domain.ErrFetchUnavailable, reqURL, resp.StatusCode)
	}
}

// repoPathFromURL extracts owner/repo from a GitHub repository URL.
func repoPathFromURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	parts := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	if len(parts) >= 2 && parts[0] != "" && parts[1] != "" {
		return parts[0] + "/" + strings.TrimSuffix(parts[1], ".git")
	}
	return ""
}
