package document

import (
	"fmt"
	"sort"
	"strings"

	"vendorrag/internal/domain"
)

const sellerUnavailable = "Seller information not available"

// Build flattens a scraped record into the text blob used for embedding.
// Sections are emitted in a fixed order: title, price, details, description,
// seller info, company info, first overall rating. Placeholder values
// ("-", empty strings, the seller sentinel) are skipped. The second return
// is false when nothing survives; such records carry no retrievable signal
// and must not be indexed.
func Build(rec domain.Record) (string, bool) {
	var parts []string

	if rec.Title != "" {
		parts = append(parts, "Title: "+rec.Title)
	}
	if rec.Price != "" {
		parts = append(parts, strings.TrimSpace("Price: "+rec.Price+" "+rec.PriceUnit))
	}
	for _, k := range sortedKeys(rec.Details) {
		v := rec.Details[k]
		if v == "" || strings.TrimSpace(v) == "-" {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", k, v))
	}
	if rec.Description != "" {
		parts = append(parts, "Description: "+rec.Description)
	}
	for _, k := range sortedKeys(rec.SellerInfo) {
		v := rec.SellerInfo[k]
		if k == "error" || v == "" || v == sellerUnavailable {
			continue
		}
		parts = append(parts, fmt.Sprintf("Seller %s: %s", k, v))
	}
	for _, k := range sortedKeys(rec.CompanyInfo) {
		v := rec.CompanyInfo[k]
		if v == "" {
			continue
		}
		parts = append(parts, fmt.Sprintf("Company %s: %s", k, v))
	}
	if rating, ok := rec.OverallRating(); ok {
		parts = append(parts, "Overall Rating: "+rating)
	}

	text := strings.Join(parts, " ")
	if strings.TrimSpace(text) == "" {
		return "", false
	}
	return text, true
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
