package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "tfidf", cfg.Embedder.Type)
	assert.Equal(t, "memory", cfg.VectorStore.Type)
	assert.Equal(t, "https://api.groq.com/openai/v1", cfg.Generator.BaseURL)
	assert.Equal(t, "GROQ_API_KEY", cfg.Generator.APIKeyEnv)
	assert.Equal(t, "llama-3.3-70b-versatile", cfg.Generator.Model)
	assert.Equal(t, 0.7, cfg.Generator.Temperature)
	assert.Equal(t, 10, cfg.Retrieval.TopK)
	assert.Equal(t, 3, cfg.Retrieval.MaxContextDocs)
	assert.Equal(t, 6000.0, cfg.Estimator.CementPerCubicMeterRs)
	assert.Equal(t, 0.08, cfg.Estimator.BrickPerUnitRs)
	assert.Equal(t, []string{"Navi Mumbai"}, cfg.KnownPlaces)
}

func TestLoadAppliesOverridesAndFillsGaps(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
embedder:
  type: openai
  openai:
    model: custom-embed
vector_store:
  type: qdrant
  qdrant:
    url: http://localhost:6333
    collection: products
retrieval:
  top_k: 5
estimator:
  cement_per_cubic_meter_rs: 7500
known_places:
  - Pune
  - Navi Mumbai
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "openai", cfg.Embedder.Type)
	assert.Equal(t, "custom-embed", cfg.Embedder.OpenAI.Model)
	assert.Equal(t, "https://api.openai.com/v1", cfg.Embedder.OpenAI.BaseURL)
	assert.Equal(t, "OPENAI_API_KEY", cfg.Embedder.OpenAI.APIKeyEnv)
	assert.Equal(t, "qdrant", cfg.VectorStore.Type)
	assert.Equal(t, "http://localhost:6333", cfg.VectorStore.Qdrant.URL)
	assert.Equal(t, 5, cfg.Retrieval.TopK)
	assert.Equal(t, 500, cfg.Retrieval.DocCharBudget, "unset fields still get defaults")
	assert.Equal(t, 7500.0, cfg.Estimator.CementPerCubicMeterRs)
	assert.Equal(t, 0.08, cfg.Estimator.BrickPerUnitRs)
	assert.Equal(t, []string{"Pune", "Navi Mumbai"}, cfg.KnownPlaces)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("embedder: [broken"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "config.yaml")
	cfg := defaultConfig()
	cfg.Retrieval.TopK = 7
	cfg.CatalogPath = "catalog.json"

	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7, loaded.Retrieval.TopK)
	assert.Equal(t, "catalog.json", loaded.CatalogPath)
	assert.Equal(t, cfg.Generator.Model, loaded.Generator.Model)
}
