package ingest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"vendorrag/internal/domain"
)

// Load reads scraped records from the given paths. Each path may be a JSON
// file, a directory of JSON files, or a glob pattern. A file may hold either
// a single record object or an array of records. Files with invalid JSON are
// skipped with a logged warning; they never abort the run.
func Load(paths []string) ([]domain.Record, error) {
	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err == nil && info.IsDir() {
			matches, _ := filepath.Glob(filepath.Join(p, "*.json"))
			files = append(files, matches...)
			continue
		}
		matches, _ := filepath.Glob(p)
		if matches == nil {
			matches = []string{p}
		}
		files = append(files, matches...)
	}

	var records []domain.Record
	seenAny := false
	for _, f := range files {
		if !strings.HasSuffix(strings.ToLower(f), ".json") {
			continue
		}
		data, err := os.ReadFile(f)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", f, err)
		}
		seenAny = true
		recs, err := Decode(data)
		if err != nil {
			log.Printf("skipping invalid JSON in %s: %v", f, err)
			continue
		}
		records = append(records, recs...)
	}
	if !seenAny {
		return nil, fmt.Errorf("no .json files found in %v", paths)
	}
	return records, nil
}

// Decode parses a JSON payload holding either one record or an array.
func Decode(data []byte) ([]domain.Record, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var recs []domain.Record
		if err := json.Unmarshal(trimmed, &recs); err != nil {
			return nil, err
		}
		return recs, nil
	}
	var rec domain.Record
	if err := json.Unmarshal(trimmed, &rec); err != nil {
		return nil, err
	}
	return []domain.Record{rec}, nil
}
