package domain

// Embedder converts free text into a numeric vector representation.
// Implementations may require a preparation phase over the corpus.
// The same embedder instance must serve both index build and querying;
// mixing embedding spaces silently produces meaningless distances.
type Embedder interface {
	Name() string
	Prepare(corpus []string) error
	Dimension() int
	Embed(text string) ([]float64, error)
}

// Match is a raw nearest-neighbor hit before metadata resolution.
// Positions are assigned by insertion order and never reused; the caller
// owns the position-to-metadata correspondence.
type Match struct {
	Position int
	Distance float64
}

// Generator produces an answer text for a fully assembled prompt.
type Generator interface {
	Generate(prompt string, maxTokens int) (string, error)
}
