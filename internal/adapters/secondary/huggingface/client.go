package huggingface

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

// Client fetches model and dataset provenance snapshots from a Hugging Face
// style hub. All calls are idempotent GETs with a bounded timeout; responses
// are cached for a short TTL so one upstream hit serves every metric of a
// scoring pass, and a rate limiter keeps bursts inside the hub's API quota.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	cache   *cache.Cache
	limiter *rate.Limiter
}

func NewClient(cfg *config.HubConfig) *Client {
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
		rps = 5
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

func (c *Client) Fetch(ctx context.Context, rawURL string, kind domain.SourceKind) (*domain.Snapshot, error) {
	switch kind {
	case domain.SourceKindHubModel:
		return c.fetchModel(ctx, rawURL)
	case domain.SourceKindHubDataset:
		return c.fetchDataset(ctx, rawURL)
	default:
		return nil, domain.ErrUnsupportedKind
	}
}

type hubAPIResponse struct {
	ID           string                 `json:"id"`
	Downloads    int64                  `json:"downloads"`
	Likes        int64                  `json:"likes"`
	Tags         []string               `json:"tags"`
	Description  string                 `json:"description"`
	LastModified time.Time              `json:"lastModified"`
	CardData     map[string]interface{} `json:"cardData"`
}

type treeEntry struct {
	Type string `json:"type"`
	Path string `json:"path"`
	Size int64  `json:"size"`
}

func (c *Client) fetchModel(ctx context.Context, rawURL string) (*domain.Snapshot, error) {
	id := modelIDFromURL(rawURL)
	if id == "" {
		return nil, fmt.Errorf("%w: cannot extract model id from %q", domain.ErrFetchMalformed, rawURL)
	}

	cacheKey := "model#" + id
	if cached, ok := c.cache.Get(cacheKey); ok {
		return cached.(*domain.Snapshot), nil
	}

	var api hubAPIResponse
	if err := c.getJSON(ctx, c.baseURL+"/api/models/"+id, &api); err != nil {
		return nil, err
	}

	snap := &domain.Snapshot{
		Kind:         domain.SourceKindHubModel,
		URL:          rawURL,
		Name:         api.ID,
		Description:  api.Description,
		License:      cardLicense(api.CardData),
		Tags:         api.Tags,
		Downloads:    api.Downloads,
		Likes:        api.Likes,
		LastModified: api.LastModified,
	}

	// File tree and readme are best-effort; the API document alone is a
	// usable snapshot.
	var tree []treeEntry
	if err := c.getJSON(ctx, c.baseURL+"/api/models/"+id+"/tree/main", &tree); err != nil {
		log.WithError(err).WithField("model", id).Debug("hub file tree unavailable")
	}
	snap.Files = filesFromTree(tree)

	readme, err := c.getText(ctx, c.baseURL+"/"+id+"/raw/main/README.md")
	if err != nil {
		log.WithError(err).WithField("model", id).Debug("hub readme unavailable")
	}
	snap.Readme = readme

	c.cache.SetDefault(cacheKey, snap)
	return snap, nil
}

func (c *Client) fetchDataset(ctx context.Context, rawURL string) (*domain.Snapshot, error) {
	id := datasetIDFromURL(rawURL)
	if id == "" {
		return nil, fmt.Errorf("%w: cannot extract dataset id from %q", domain.ErrFetchMalformed, rawURL)
	}

	cacheKey := "dataset#" + id
	if cached, ok := c.cache.Get(cacheKey); ok {
		return cached.(*domain.Snapshot), nil
	}

	var api hubAPIResponse
	if err := c.getJSON(ctx, c.baseURL+"/api/datasets/"+id, &api); err != nil {
		return nil, err
	}

	snap := &domain.Snapshot{
		Kind:         domain.SourceKindHubDataset,
		URL:          rawURL,
		Name:         api.ID,
		Description:  api.Description,
		License:      cardLicense(api.CardData),
		Tags:         api.Tags,
		Downloads:    api.Downloads,
		Likes:        api.Likes,
		LastModified: api.LastModified,
	}

	var tree []treeEntry
	if err := c.getJSON(ctx, c.baseURL+"/api/datasets/"+id+"/tree/main", &tree); err != nil {
		log.WithError(err).WithField("dataset", id).Debug("hub file tree unavailable")
	}
	snap.Files = filesFromTree(tree)

	readme, err := c.getText(ctx, c.baseURL+"/datasets/"+id+"/raw/main/README.md")
	if err != nil {
		log.WithError(err).WithField("dataset", id).Debug("hub readme unavailable")
	}
	snap.Readme = readme

	c.cache.SetDefault(cacheKey, snap)
	return snap, nil
}

func (c *Client) getJSON(ctx context.Context, reqURL string, out interface{}) error {
	body, err := c.get(ctx, reqURL)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrFetchMalformed, err)
	}
	return nil
}

func (c *Client) getText(ctx context.Context, reqURL string) (string, error) {
	body, err := c.get(ctx, reqURL)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func (c *Client) get(ctx context.Context, reqURL string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrFetchUnavailable, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrFetchMalformed, err)
	}
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

func cardLicense(cardData map[string]interface{}) string {
	if lic, ok := cardData["license"].(string); ok {
		return lic
	}
	return ""
}

func filesFromTree(tree []treeEntry) []domain.FileInfo {
	files := make([]domain.FileInfo, 0, len(tree))
	for _, e := range tree {
		if e.Type != "" && e.Type != "file" {
			continue
		}
		files = append(files, domain.FileInfo{Path: e.Path, Size: e.Size})
	}
	return files
}

// modelIDFromURL extracts owner/name from a hub model page URL.
func modelIDFromURL(rawURL string) string {
	parts := pathParts(rawURL)
	if len(parts) >= 2 {
		return parts[0] + "/" + parts[1]
	}
	return ""
}

// datasetIDFromURL extracts the dataset id from a /datasets/... URL.
func datasetIDFromURL(rawURL string) string {
	parts := pathParts(rawURL)
	if len(parts) == 0 || parts[0] != "datasets" {
		return ""
	}
	if len(parts) >= 3 {
		return parts[1] + "/" + parts[2]
	}
	if len(parts) == 2 {
		return parts[1]
	}
	return ""
}

func pathParts(rawURL string) []string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil
	}
	trimmed := strings.Trim(parsed.Path, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}
