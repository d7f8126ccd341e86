package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vendorrag/internal/catalog"
	"vendorrag/internal/composer"
	"vendorrag/internal/embedding/tfidf"
	"vendorrag/internal/estimator"
	"vendorrag/internal/filter"
	"vendorrag/internal/index"
	"vendorrag/internal/planner"
	"vendorrag/internal/vectorstore/memory"
)

type recordingGenerator struct {
	calls      int
	lastPrompt string
}

func (g *recordingGenerator) Generate(prompt string, maxTokens int) (string, error) {
	g.calls++
	g.lastPrompt = prompt
	return "generated answer", nil
}

const fixtureRecords = `[
  {
    "url": "https://example.com/cement",
    "title": "UltraTech OPC 53 Grade Cement",
    "price": "380",
    "price_unit": "per bag",
    "description": "High strength cement for industrial foundations",
    "details": {"brand": "UltraTech", "availability": "In Stock", "location": "Navi Mumbai"},
    "company_info": {"gst": "27AAACS1234A1Z5", "gst_registration_date": "01-04-2019", "full_address": "Plot 4, TTC Industrial Area, Navi Mumbai"},
    "reviews": [{"type": "overall_rating", "value": "4.5"}]
  },
  {
    "url": "https://example.com/bricks",
    "title": "Red Clay Bricks",
    "price": "8",
    "description": "Standard clay bricks for masonry walls",
    "details": {"brand": "LocalKiln", "availability": "Out of Stock"},
    "company_info": {"gst_registration_date": "15-06-2012", "full_address": "Kiln Road, Pune"},
    "reviews": [{"type": "overall_rating", "value": "3.2"}]
  },
  {
    "url": "https://example.com/transformer",
    "title": "33kV Power Transformer",
    "price": "1200000",
    "description": "Oil cooled distribution transformer for data center power systems",
    "details": {"brand": "PowerTech", "availability": "In Stock"}
  }
]`

func newTestService(t *testing.T, gen *recordingGenerator, applyFilters bool) *Service {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "records.json"), []byte(fixtureRecords), 0o644))

	cat := catalog.Default()
	places := []string{"Navi Mumbai"}
	retriever := index.New(tfidf.NewEmbedder(), memory.NewStorage())
	svc := New(
		retriever,
		planner.New(cat, places),
		filter.New(places),
		estimator.New(cat, estimator.DefaultCosts()),
		cat,
		composer.New(gen, composer.DefaultOptions()),
		applyFilters,
	)

	n, err := svc.Ingest([]string{dir})
	require.NoError(t, err)
	require.Equal(t, 3, n)
	return svc
}

func TestQueryBeforeIngest(t *testing.T) {
	gen := &recordingGenerator{}
	cat := catalog.Default()
	svc := New(
		index.New(tfidf.NewEmbedder(), memory.NewStorage()),
		planner.New(cat, nil),
		filter.New(nil),
		estimator.New(cat, estimator.DefaultCosts()),
		cat,
		composer.New(gen, composer.DefaultOptions()),
		true,
	)

	_, err := svc.Query("cement", 5)
	assert.Error(t, err)
	assert.Equal(t, 0, gen.calls)
}

func TestQueryEndToEnd(t *testing.T) {
	gen := &recordingGenerator{}
	svc := newTestService(t, gen, true)

	answer, err := svc.Query("cement for foundations.", 3)
	require.NoError(t, err)

	assert.Equal(t, "generated answer", answer.Text)
	assert.Equal(t, 1, gen.calls)
	assert.Contains(t, answer.Sources, "https://example.com/cement")
	assert.Contains(t, gen.lastPrompt, "UltraTech OPC 53 Grade Cement")
	assert.Contains(t, gen.lastPrompt, "Query: cement for foundations.")
}

func TestQueryFiltersCompose(t *testing.T) {
	gen := &recordingGenerator{}
	svc := newTestService(t, gen, true)

	// high rating + in stock drops the bricks record, keeps the cement one
	answer, err := svc.Query("high rating cement available in stock.", 3)
	require.NoError(t, err)

	assert.Equal(t, []string{"https://example.com/cement"}, answer.Sources)
	assert.Equal(t, 1, answer.Results)
}

func TestQueryFiltersDisabled(t *testing.T) {
	gen := &recordingGenerator{}
	svc := newTestService(t, gen, false)

	answer, err := svc.Query("high rating cement available in stock.", 3)
	require.NoError(t, err)

	assert.Equal(t, 3, answer.Results)
}

func TestQueryNoSurvivorsShortCircuits(t *testing.T) {
	gen := &recordingGenerator{}
	svc := newTestService(t, gen, true)

	// no record mentions fire retardancy, so filtering leaves nothing
	answer, err := svc.Query("fireproof cladding panels.", 3)
	require.NoError(t, err)

	assert.Equal(t, composer.NoResultsAnswer, answer.Text)
	assert.Empty(t, answer.Sources)
	assert.Equal(t, 0, gen.calls)
}

func TestQueryWithProjectSpecs(t *testing.T) {
	gen := &recordingGenerator{}
	svc := newTestService(t, gen, false)

	answer, err := svc.Query("Building a 25 MegaWatt datacenter of 2 Lacs SquareFoot, need transformers", 3)
	require.NoError(t, err)

	require.NotEmpty(t, answer.Estimates)
	assert.Contains(t, answer.Text, "Material Estimates:")
	assert.Contains(t, gen.lastPrompt, "Materials:")
}
