package index

import (
	"errors"
	"fmt"

	"vendorrag/internal/document"
	"vendorrag/internal/domain"
	"vendorrag/internal/vectorstore"
)

// Retriever owns the correspondence between index positions and the
// (document text, metadata) pair each position was built from. The two
// slices stay length-aligned and insertion-ordered for the lifetime of the
// index; there is no mutation path after Build.
type Retriever struct {
	embedder  domain.Embedder
	store     vectorstore.Storage
	documents []string
	metadata  []domain.Record
}

func New(embedder domain.Embedder, store vectorstore.Storage) *Retriever {
	return &Retriever{embedder: embedder, store: store}
}

// Build flattens the records into embedding documents, embeds them and
// loads the vector store. Records with no extractable text are skipped; a
// degenerate embedding would corrupt neighbor distances for everything
// else. An empty corpus is a configuration error, not a retryable one.
func (r *Retriever) Build(records []domain.Record) (int, error) {
	var documents []string
	var metadata []domain.Record
	for _, rec := range records {
		text, ok := document.Build(rec)
		if !ok {
			continue
		}
		documents = append(documents, text)
		metadata = append(metadata, rec)
	}
	if len(documents) == 0 {
		return 0, errors.New("no documents to index")
	}
	if err := r.embedder.Prepare(documents); err != nil {
		return 0, fmt.Errorf("preparing embedder: %w", err)
	}
	vectors := make([][]float64, len(documents))
	for i, doc := range documents {
		vec, err := r.embedder.Embed(doc)
		if err != nil {
			return 0, fmt.Errorf("embedding document %d: %w", i, err)
		}
		vectors[i] = vec
	}
	if err := r.store.Init(len(vectors[0])); err != nil {
		return 0, err
	}
	if err := r.store.Add(vectors); err != nil {
		return 0, err
	}
	r.documents = documents
	r.metadata = metadata
	return len(documents), nil
}

// Search embeds the query with the index's own embedder and returns the k
// nearest documents by ascending distance. k is clamped to the corpus size.
func (r *Retriever) Search(query string, k int) ([]domain.SearchResult, error) {
	if len(r.documents) == 0 {
		return nil, errors.New("index not built or no documents loaded")
	}
	if k > len(r.documents) {
		k = len(r.documents)
	}
	vec, err := r.embedder.Embed(query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}
	matches, err := r.store.Search(vec, k)
	if err != nil {
		return nil, err
	}
	results := make([]domain.SearchResult, 0, len(matches))
	for _, m := range matches {
		if m.Position < 0 || m.Position >= len(r.metadata) {
			continue
		}
		results = append(results, domain.SearchResult{
			Document: r.documents[m.Position],
			Meta:     r.metadata[m.Position],
			Distance: m.Distance,
		})
	}
	return results, nil
}

// Size returns the number of indexed documents.
func (r *Retriever) Size() int { return len(r.documents) }
