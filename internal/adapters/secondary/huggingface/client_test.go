package huggingface

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"artifact-registry-service/internal/config"
	"artifact-registry-service/internal/core/domain"
)

func newHubServer(t *testing.T, hits *int64) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/models/google-bert/bert-base-uncased", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(hits, 1)
		w.Write([]byte(`{
			"id": "google-bert/bert-base-uncased",
			"downloads": 2000000,
			"likes": 900,
			"tags": ["fill-mask", "pytorch"],
			"cardData": {"license": "apache-2.0"}
		}`))
	})
	mux.HandleFunc("/api/models/google-bert/bert-base-uncased/tree/main", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"type": "file", "path": "model.safetensors", "size": 440473133},
			{"type": "directory", "path": "onnx"}
		]`))
	})
	mux.HandleFunc("/google-bert/bert-base-uncased/raw/main/README.md", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("# BERT base\n\nUsage examples."))
	})
	mux.HandleFunc("/api/datasets/bookcorpus/bookcorpus", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id": "bookcorpus/bookcorpus", "downloads": 50000, "tags": ["text"]}`))
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	return httptest.NewServer(mux)
}

func newTestClient(baseURL string) *Client {
	return NewClient(&config.HubConfig{
		BaseURL:       baseURL,
		RatePerSecond: 1000,
		Burst:         100,
	})
}

func TestFetchModel_ParsesSnapshot(t *testing.T) {
	var hits int64
	srv := newHubServer(t, &hits)
	defer srv.Close()

	client := newTestClient(srv.URL)
	snap, err := client.Fetch(context.Background(),
		"https://huggingface.co/google-bert/bert-base-uncased", domain.SourceKindHubModel)
	require.NoError(t, err)

	assert.Equal(t, domain.SourceKindHubModel, snap.Kind)
	assert.Equal(t, "google-bert/bert-base-uncased", snap.Name)
	assert.Equal(t, "apache-2.0", snap.License)
	assert.Equal(t, int64(2000000), snap.Downloads)
	assert.Equal(t, int64(900), snap.Likes)
	assert.Contains(t, snap.Readme, "Usage examples")

	// Directory entries are excluded from the file list.
	require.Len(t, snap.Files, 1)
	assert.Equal(t, "model.safetensors", snap.Files[0].Path)
	assert.Equal(t, int64(440473133), snap.Files[0].Size)
}

func TestFetchModel_CachesByID(t *testing.T) {
	var hits int64
	srv := newHubServer(t, &hits)
	defer srv.Close()

	client := newTestClient(srv.URL)
	url := "https://huggingface.co/google-bert/bert-base-uncased"

	_, err := client.Fetch(context.Background(), url, domain.SourceKindHubModel)
	require.NoError(t, err)
	_, err = client.Fetch(context.Background(), url, domain.SourceKindHubModel)
	require.NoError(t, err)

	assert.Equal(t, int64(1), atomic.LoadInt64(&hits), "second fetch must be served from cache")
}

func TestFetchDataset_MissingReadmeAndTreeStillSucceeds(t *testing.T) {
	var hits int64
	srv := newHubServer(t, &hits)
	defer srv.Close()

	client := newTestClient(srv.URL)
	snap, err := client.Fetch(context.Background(),
		"https://huggingface.co/datasets/bookcorpus/bookcorpus", domain.SourceKindHubDataset)
	require.NoError(t, err)

	assert.Equal(t, domain.SourceKindHubDataset, snap.Kind)
	assert.Equal(t, int64(50000), snap.Downloads)
	assert.Empty(t, snap.Readme)
	assert.Empty(t, snap.Files)
}

func TestFetch_UnknownModelIsNotFound(t *testing.T) {
	var hits int64
	srv := newHubServer(t, &hits)
	defer srv.Close()

	client := newTestClient(srv.URL)
	_, err := client.Fetch(context.Background(),
		"https://huggingface.co/no-such/model", domain.SourceKindHubModel)
	assert.ErrorIs(t, err, domain.ErrFetchNotFound)
}

func TestFetch_ServerErrorIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	_, err := client.Fetch(context.Background(),
		"https://huggingface.co/google-bert/bert-base-uncased", domain.SourceKindHubModel)
	assert.ErrorIs(t, err, domain.ErrFetchUnavailable)
}

func TestFetch_UnsupportedKind(t *testing.T) {
	client := newTestClient("http://localhost:0")
	_, err := client.Fetch(context.Background(), "https://huggingface.co/x/y", domain.SourceKindRepository)
	assert.ErrorIs(t, err, domain.ErrUnsupportedKind)
}

func TestFetch_BareHostURLIsMalformed(t *testing.T) {
	client := newTestClient("http://localhost:0")
	_, err := client.Fetch(context.Background(), "https://huggingface.co/", domain.SourceKindHubModel)
	assert.ErrorIs(t, err, domain.ErrFetchMalformed)
}

func TestDatasetIDFromURL(t *testing.T) {
	cases := map[string]string{
		"https://huggingface.co/datasets/bookcorpus/bookcorpus": "bookcorpus/bookcorpus",
		"https://huggingface.co/datasets/squad":                 "squad",
		"https://huggingface.co/google-bert/bert-base-uncased":  "",
	}
	for url, want := range cases {
		assert.Equal(t, want, datasetIDFromURL(url), url)
	}
}
