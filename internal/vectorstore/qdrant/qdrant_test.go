package qdrant

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vendorrag/internal/domain"
)

// fakeQdrant records the collection lifecycle calls and serves a canned
// search result.
type fakeQdrant struct {
	deleted      bool
	createBody   map[string]any
	upsertBodies []map[string]any
	searchBody   map[string]any
}

func (f *fakeQdrant) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodDelete && r.URL.Path == "/collections/products":
			f.deleted = true
			w.Write([]byte(`{"result":true}`))
		case r.Method == http.MethodPut && r.URL.Path == "/collections/products":
			require.NoError(t, json.NewDecoder(r.Body).Decode(&f.createBody))
			w.Write([]byte(`{"result":true}`))
		case r.Method == http.MethodPut && r.URL.Path == "/collections/products/points":
			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			f.upsertBodies = append(f.upsertBodies, body)
			w.Write([]byte(`{"result":{"status":"completed"}}`))
		case r.Method == http.MethodPost && r.URL.Path == "/collections/products/points/search":
			require.NoError(t, json.NewDecoder(r.Body).Decode(&f.searchBody))
			w.Write([]byte(`{"result":[{"id":2,"score":0.04},{"id":0,"score":0.25}]}`))
		default:
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}
}

func newTestStorage(t *testing.T) (*Storage, *fakeQdrant) {
	t.Helper()
	fake := &fakeQdrant{}
	srv := httptest.NewServer(fake.handler(t))
	t.Cleanup(srv.Close)
	return NewStorage(Config{URL: srv.URL, Collection: "products"}), fake
}

func TestInitRecreatesCollection(t *testing.T) {
	s, fake := newTestStorage(t)

	require.NoError(t, s.Init(3))

	assert.True(t, fake.deleted)
	vectors := fake.createBody["vectors"].(map[string]any)
	assert.Equal(t, float64(3), vectors["size"])
	assert.Equal(t, "Euclid", vectors["distance"])
}

func TestInitRejectsInvalidDimension(t *testing.T) {
	s, _ := newTestStorage(t)
	assert.Error(t, s.Init(0))
	assert.Error(t, s.Init(-1))
}

func TestAddAssignsSequentialPositions(t *testing.T) {
	s, fake := newTestStorage(t)
	require.NoError(t, s.Init(2))

	require.NoError(t, s.Add([][]float64{{1, 0}, {0, 1}}))
	require.NoError(t, s.Add([][]float64{{1, 1}}))

	require.Len(t, fake.upsertBodies, 2)
	first := fake.upsertBodies[0]["points"].([]any)
	second := fake.upsertBodies[1]["points"].([]any)
	require.Len(t, first, 2)
	require.Len(t, second, 1)
	assert.Equal(t, float64(0), first[0].(map[string]any)["id"])
	assert.Equal(t, float64(1), first[1].(map[string]any)["id"])
	assert.Equal(t, float64(2), second[0].(map[string]any)["id"])
}

func TestAddRejectsDimensionMismatch(t *testing.T) {
	s, _ := newTestStorage(t)
	require.NoError(t, s.Init(2))

	assert.Error(t, s.Add([][]float64{{1, 0, 0}}))
}

func TestSearch(t *testing.T) {
	s, fake := newTestStorage(t)
	require.NoError(t, s.Init(2))
	require.NoError(t, s.Add([][]float64{{1, 0}, {0, 1}, {1, 1}}))

	matches, err := s.Search([]float64{1, 1}, 10)
	require.NoError(t, err)

	assert.Equal(t, []domain.Match{{Position: 2, Distance: 0.04}, {Position: 0, Distance: 0.25}}, matches)
	assert.Equal(t, float64(3), fake.searchBody["limit"], "limit is clamped to the indexed count")
}
