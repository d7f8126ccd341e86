package service

import (
	"errors"

	"vendorrag/internal/catalog"
	"vendorrag/internal/composer"
	"vendorrag/internal/domain"
	"vendorrag/internal/estimator"
	"vendorrag/internal/filter"
	"vendorrag/internal/index"
	"vendorrag/internal/ingest"
	"vendorrag/internal/planner"
)

// Service wires the retrieval pipeline: plan, estimate, search, filter,
// compose. One instance serves one immutable corpus; Ingest runs once
// before any Query.
type Service struct {
	retriever    *index.Retriever
	planner      *planner.Planner
	filters      *filter.Engine
	estimator    *estimator.Estimator
	catalog      *catalog.Catalog
	composer     *composer.Composer
	applyFilters bool
}

func New(retriever *index.Retriever, pl *planner.Planner, fl *filter.Engine, est *estimator.Estimator, cat *catalog.Catalog, comp *composer.Composer, applyFilters bool) *Service {
	return &Service{
		retriever:    retriever,
		planner:      pl,
		filters:      fl,
		estimator:    est,
		catalog:      cat,
		composer:     comp,
		applyFilters: applyFilters,
	}
}

// Ingest loads scraped records from the paths and builds the index.
// Returns the number of indexed documents. An empty corpus is an error:
// querying without an index is not a recoverable state.
func (s *Service) Ingest(paths []string) (int, error) {
	records, err := ingest.Load(paths)
	if err != nil {
		return 0, err
	}
	return s.retriever.Build(records)
}

// Query answers one free-text query. External-service failures during
// retrieval degrade into a displayable answer rather than an error; the
// only error path is querying before the index is built.
func (s *Service) Query(query string, k int) (domain.Answer, error) {
	if s.retriever.Size() == 0 {
		return domain.Answer{}, errors.New("index not built")
	}

	req := s.planner.Extract(query)
	var estimates []domain.MaterialEstimate
	if req.HasProjectSpecs() {
		estimates = s.estimator.Estimate(req)
	}

	results, err := s.retriever.Search(query, k)
	if err != nil {
		return domain.Answer{
			Text:      "Error retrieving results: " + err.Error(),
			Sources:   []string{},
			Estimates: estimates,
		}, nil
	}
	if s.applyFilters {
		results = s.filters.Apply(results, query)
	}

	materials := s.catalog.Materials(req.FacilityType)
	return s.composer.Compose(query, results, req, estimates, materials), nil
}
