package vectorstore

import "vendorrag/internal/domain"

// Storage persists embedding vectors and serves nearest-neighbor lookups.
// Positions are assigned by insertion order, starting at zero.
type Storage interface {
	Init(dimension int) error
	Add(vectors [][]float64) error
	Search(vector []float64, k int) ([]domain.Match, error)
}
