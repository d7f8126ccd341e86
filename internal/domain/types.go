package domain

// Review is one entry of a record's reviews section. Entries are
// distinguished by the Type tag; only the fields for that type are set.
// Known types: overall_rating, rating_distribution, performance_metric,
// individual_review. A scraper may also emit an entry holding only Error.
type Review struct {
	Type  string `json:"type,omitempty"`
	Error string `json:"error,omitempty"`

	// overall_rating, performance_metric
	Value  string `json:"value,omitempty"`
	Metric string `json:"metric,omitempty"`

	// rating_distribution
	Stars      string `json:"stars,omitempty"`
	Percentage string `json:"percentage,omitempty"`

	// individual_review
	Rating             string   `json:"rating,omitempty"`
	ReviewerName       string   `json:"reviewer_name,omitempty"`
	ReviewerLocation   string   `json:"reviewer_location,omitempty"`
	DateAndProduct     string   `json:"date_and_product,omitempty"`
	ReviewText         string   `json:"review_text,omitempty"`
	ResponseIndicators []string `json:"response_indicators,omitempty"`
}

// Record is a single scraped product/vendor entry as persisted by the
// scraping side. Detail keys vary per record and are not schema-constrained.
// Seller and company maps may carry an "error" sentinel key instead of
// real fields. Records are read-only once loaded.
type Record struct {
	URL         string            `json:"url"`
	Title       string            `json:"title"`
	Price       string            `json:"price,omitempty"`
	PriceUnit   string            `json:"price_unit,omitempty"`
	Description string            `json:"description,omitempty"`
	Details     map[string]string `json:"details,omitempty"`
	SellerInfo  map[string]string `json:"seller_info,omitempty"`
	CompanyInfo map[string]string `json:"company_info,omitempty"`
	Reviews     []Review          `json:"reviews,omitempty"`
}

// OverallRating returns the value of the first overall_rating review entry.
func (r Record) OverallRating() (string, bool) {
	for _, rev := range r.Reviews {
		if rev.Type == "overall_rating" {
			return rev.Value, true
		}
	}
	return "", false
}

// SearchResult is one retrieval hit: the flattened document text, the
// metadata snapshot of its source record, and the index distance.
// Lower distance means higher relevance.
type SearchResult struct {
	Document string
	Meta     Record
	Distance float64
}

// ProjectRequirements holds the structured hints extracted from a free-text
// query. Numeric fields are nil when the query does not mention them.
type ProjectRequirements struct {
	PowerCapacityMW *float64
	BuiltUpAreaSqFt *float64
	ProjectVolumeRs *float64
	Location        string
	FacilityType    string
}

// HasProjectSpecs reports whether any numeric requirement was extracted.
func (p ProjectRequirements) HasProjectSpecs() bool {
	return p.PowerCapacityMW != nil || p.BuiltUpAreaSqFt != nil || p.ProjectVolumeRs != nil
}

// MaterialEstimate is one estimated material/equipment line for a project.
type MaterialEstimate struct {
	Equipment     string
	Quantity      float64
	Unit          string
	CostCrores    float64
	Notes         string
	CatalogSource string
}

// Answer is the final composed response for one query.
type Answer struct {
	Text      string
	Sources   []string
	Results   int
	Estimates []MaterialEstimate
}
