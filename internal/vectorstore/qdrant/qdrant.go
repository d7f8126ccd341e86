package qdrant

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"vendorrag/internal/domain"
)

// Storage is a minimal REST client to Qdrant. The collection is created
// with Euclid distance so that scores line up with the in-memory store's
// L2 semantics. Point ids double as corpus positions; the retriever owns
// the position-to-metadata correspondence, so no payload is stored beyond
// the position itself.
type Storage struct {
	url        string
	apiKey     string
	collection string
	dimension  int
	count      int
	client     *http.Client
}

type Config struct {
	URL        string
	APIKey     string
	Collection string
	Timeout    time.Duration
}

func NewStorage(cfg Config) *Storage {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Storage{
		url:        cfg.URL,
		apiKey:     cfg.APIKey,
		collection: cfg.Collection,
		client:     &http.Client{Timeout: timeout},
	}
}

func (s *Storage) Init(dimension int) error {
	if dimension <= 0 {
		return errors.New("invalid dimension")
	}
	s.dimension = dimension
	s.count = 0
	// Recreate the collection: the index is built once per run and is
	// append-never afterwards.
	req, _ := http.NewRequest(http.MethodDelete, fmt.Sprintf("%s/collections/%s", s.url, s.collection), nil)
	if s.apiKey != "" {
		req.Header.Set("api-key", s.apiKey)
	}
	if resp, err := s.client.Do(req); err == nil {
		_ = resp.Body.Close()
	}
	body := map[string]any{
		"vectors": map[string]any{
			"size":     dimension,
			"distance": "Euclid",
		},
	}
	return s.putJSON(fmt.Sprintf("%s/collections/%s", s.url, s.collection), body)
}

func (s *Storage) Add(vectors [][]float64) error {
	if len(vectors) == 0 {
		return nil
	}
	points := make([]map[string]any, len(vectors))
	for i, v := range vectors {
		if len(v) != s.dimension {
			return errors.New("vector dimension mismatch")
		}
		position := s.count + i
		points[i] = map[string]any{
			"id":      position,
			"vector":  v,
			"payload": map[string]any{"position": position},
		}
	}
	body := map[string]any{"points": points}
	if err := s.putJSON(fmt.Sprintf("%s/collections/%s/points?wait=true", s.url, s.collection), body); err != nil {
		return err
	}
	s.count += len(vectors)
	return nil
}

func (s *Storage) Search(vector []float64, k int) ([]domain.Match, error) {
	if k <= 0 {
		k = 5
	}
	if k > s.count {
		k = s.count
	}
	req := map[string]any{
		"vector": vector,
		"limit":  k,
	}
	var resp struct {
		Result []struct {
			ID    int     `json:"id"`
			Score float64 `json:"score"`
		} `json:"result"`
	}
	if err := s.postJSON(fmt.Sprintf("%s/collections/%s/points/search", s.url, s.collection), req, &resp); err != nil {
		return nil, err
	}
	matches := make([]domain.Match, 0, len(resp.Result))
	for _, r := range resp.Result {
		matches = append(matches, domain.Match{Position: r.ID, Distance: r.Score})
	}
	return matches, nil
}

func (s *Storage) putJSON(url string, body any) error {
	data, _ := json.Marshal(body)
	req, _ := http.NewRequest(http.MethodPut, url, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("api-key", s.apiKey)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("qdrant PUT %s failed: %s", url, resp.Status)
	}
	return nil
}

func (s *Storage) postJSON(url string, body any, out any) error {
	data, _ := json.Marshal(body)
	req, _ := http.NewRequest(http.MethodPost, url, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("api-key", s.apiKey)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("qdrant POST %s failed: %s", url, resp.Status)
	}
	if out != nil {
		dec := json.NewDecoder(resp.Body)
		return dec.Decode(out)
	}
	return nil
}
