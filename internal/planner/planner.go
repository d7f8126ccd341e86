package planner

import (
	"regexp"
	"strconv"
	"strings"

	"vendorrag/internal/catalog"
	"vendorrag/internal/domain"
)

const (
	lacs  = 100_000    // 1 Lac = 1e5
	crore = 10_000_000 // 1 Cr = 1e7
)

var (
	powerRe    = regexp.MustCompile(`(?i)(\d+)\s*Mega?Watt`)
	areaRe     = regexp.MustCompile(`(?i)(\d+)\s*Lacs?\s*SquareFoot`)
	volumeRe   = regexp.MustCompile(`(?i)(\d+)\s*Cr\s*(in\s*Rupees)?`)
	locationRe = regexp.MustCompile(`(?i)in\s+([\w\s]+)$`)
)

// Planner extracts structured project requirements from free-text queries.
// Extraction is heuristic: every field is optional and a pattern miss
// leaves the field absent, never errors.
type Planner struct {
	catalog     *catalog.Catalog
	knownPlaces []string
}

// New creates a planner. knownPlaces are canonical place names whose
// presence in a query overrides the generic trailing-"in" location clause.
func New(cat *catalog.Catalog, knownPlaces []string) *Planner {
	return &Planner{catalog: cat, knownPlaces: knownPlaces}
}

// Extract parses the query for power capacity (MW), built-up area (sqft),
// project volume (rupees), target location, and facility type.
func (p *Planner) Extract(query string) domain.ProjectRequirements {
	req := domain.ProjectRequirements{
		FacilityType: p.catalog.FacilityType(query),
	}

	if m := powerRe.FindStringSubmatch(query); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			req.PowerCapacityMW = &v
		}
	}
	if m := areaRe.FindStringSubmatch(query); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			v *= lacs
			req.BuiltUpAreaSqFt = &v
		}
	}
	if m := volumeRe.FindStringSubmatch(query); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			v *= crore
			req.ProjectVolumeRs = &v
		}
	}
	if m := locationRe.FindStringSubmatch(query); m != nil {
		req.Location = strings.TrimSpace(m[1])
	}
	// an explicit known place wins over the trailing-"in" clause
	lower := strings.ToLower(query)
	for _, place := range p.knownPlaces {
		if strings.Contains(lower, strings.ToLower(place)) {
			req.Location = place
			break
		}
	}
	return req
}
