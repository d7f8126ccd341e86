package memory

import (
	"errors"
	"sort"
	"sync"

	"vendorrag/internal/domain"
)

// Storage is a flat in-memory vector store using brute-force squared
// Euclidean (L2) distance. Results are ranked by ascending distance with
// ties broken by insertion order.
type Storage struct {
	mu        sync.RWMutex
	dimension int
	vectors   [][]float64
}

func NewStorage() *Storage { return &Storage{} }

func (s *Storage) Init(dimension int) error {
	if dimension <= 0 {
		return errors.New("invalid dimension")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dimension = dimension
	s.vectors = nil
	return nil
}

func (s *Storage) Add(vectors [][]float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, v := range vectors {
		if len(v) != s.dimension {
			return errors.New("vector dimension mismatch")
		}
	}
	s.vectors = append(s.vectors, vectors...)
	return nil
}

func (s *Storage) Search(vector []float64, k int) ([]domain.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if k <= 0 {
		k = 5
	}
	if k > len(s.vectors) {
		k = len(s.vectors)
	}
	matches := make([]domain.Match, len(s.vectors))
	for i := range s.vectors {
		matches[i] = domain.Match{Position: i, Distance: l2sq(s.vectors[i], vector)}
	}
	// stable: equal distances keep insertion order
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].Distance < matches[j].Distance })
	return matches[:k], nil
}

func l2sq(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}
