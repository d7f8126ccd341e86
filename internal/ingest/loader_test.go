package ingest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeArray(t *testing.T) {
	data := []byte(`[
		{"url": "https://example.com/1", "title": "Cement"},
		{"url": "https://example.com/2", "title": "Bricks"}
	]`)
	recs, err := Decode(data)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "Cement", recs[0].Title)
	assert.Equal(t, "https://example.com/2", recs[1].URL)
}

func TestDecodeSingleObject(t *testing.T) {
	data := []byte(`{
		"url": "https://example.com/1",
		"title": "Insulation",
		"details": {"brand": "ThermoShield"},
		"reviews": [{"type": "overall_rating", "value": "4.5"}]
	}`)
	recs, err := Decode(data)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "ThermoShield", recs[0].Details["brand"])
	rating, ok := recs[0].OverallRating()
	assert.True(t, ok)
	assert.Equal(t, "4.5", rating)
}

func TestDecodeInvalid(t *testing.T) {
	_, err := Decode([]byte(`{"title": `))
	assert.Error(t, err)
}

func TestLoadSkipsInvalidFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "good.json"),
		[]byte(`[{"url": "https://example.com/1", "title": "Cement"}]`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.json"),
		[]byte(`not json at all`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"),
		[]byte(`ignore me`), 0o644))

	recs, err := Load([]string{dir})
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "Cement", recs[0].Title)
}

func TestLoadNoFiles(t *testing.T) {
	dir := t.TempDir()
	_, err := Load([]string{dir})
	assert.Error(t, err)
}
