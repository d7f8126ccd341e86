package filter

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"vendorrag/internal/domain"
)

// gstDateLayout matches the scraper's DD-MM-YYYY registration dates.
const gstDateLayout = "02-01-2006"

var trailingLocationRe = regexp.MustCompile(`in\s+([\w\s]+)$`)

// query carries the pre-computed views of the incoming query string that
// the criteria match against.
type query struct {
	lower    string
	location string // resolved target location, lower-cased; empty if none
}

// Criterion pairs a trigger with a keep-predicate. The trigger is matched
// against the query alone; when it fires, every result must satisfy the
// predicate to survive. Triggers are evaluated independently, so several
// criteria can fire on one query; they compose with logical AND. Parse
// failures in a predicate drop the result (fail closed), never pass it.
type Criterion struct {
	Name    string
	Trigger func(q query) bool
	Keep    func(r domain.SearchResult, q query) bool
}

// Engine narrows ranked search results by keyword-triggered criteria.
// It returns an order-preserving subsequence and never mutates metadata.
type Engine struct {
	criteria    []Criterion
	knownPlaces []string
}

// New creates a filter engine. knownPlaces are place names that trigger
// the location criterion even without a trailing "in <place>" clause.
func New(knownPlaces []string) *Engine {
	e := &Engine{knownPlaces: knownPlaces}
	e.criteria = []Criterion{
		{
			Name: "location",
			// location resolves only from a known place name or a
			// trailing "in <place>" clause, so a non-empty location is
			// the trigger
			Trigger: func(q query) bool { return q.location != "" },
			Keep: func(r domain.SearchResult, q query) bool {
				address := strings.ToLower(
					r.Meta.CompanyInfo["full_address"] + " " +
						r.Meta.SellerInfo["full_address"] + " " +
						r.Meta.Details["location"])
				return strings.Contains(address, q.location)
			},
		},
		{
			Name:    "gst-after-2017",
			Trigger: func(q query) bool { return strings.Contains(q.lower, "gst after 2017") },
			Keep: func(r domain.SearchResult, q query) bool {
				raw := r.Meta.CompanyInfo["gst_registration_date"]
				if raw == "" {
					return false
				}
				date, err := time.Parse(gstDateLayout, raw)
				if err != nil {
					return false
				}
				return date.Year() > 2017
			},
		},
		{
			Name: "high-rating",
			Trigger: func(q query) bool {
				return strings.Contains(q.lower, "high rating") || strings.Contains(q.lower, "rating")
			},
			Keep: func(r domain.SearchResult, q query) bool {
				for _, rev := range r.Meta.Reviews {
					if rev.Type != "overall_rating" {
						continue
					}
					if v, err := strconv.ParseFloat(strings.TrimSpace(rev.Value), 64); err == nil {
						return v >= 4.0
					}
				}
				return false
			},
		},
		{
			Name: "in-stock",
			Trigger: func(q query) bool {
				return strings.Contains(q.lower, "available in stock") || strings.Contains(q.lower, "in stock")
			},
			Keep: func(r domain.SearchResult, q query) bool {
				return strings.Contains(strings.ToLower(r.Meta.Details["availability"]), "in stock")
			},
		},
		{
			Name: "fire-retardant",
			Trigger: func(q query) bool {
				return strings.Contains(q.lower, "fire retardant") || strings.Contains(q.lower, "fireproof")
			},
			Keep: func(r domain.SearchResult, q query) bool {
				text := strings.ToLower(detailsText(r.Meta.Details) + " " + r.Meta.Description)
				return strings.Contains(text, "fire retardant") || strings.Contains(text, "fireproof")
			},
		},
	}
	return e
}

// Apply evaluates every triggered criterion against every result and keeps
// the results that pass all of them. Running Apply twice with the same
// query yields the same subsequence as running it once.
func (e *Engine) Apply(results []domain.SearchResult, rawQuery string) []domain.SearchResult {
	q := e.parse(rawQuery)
	filtered := make([]domain.SearchResult, 0, len(results))
	for _, r := range results {
		if e.keep(r, q) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

func (e *Engine) keep(r domain.SearchResult, q query) bool {
	for _, c := range e.criteria {
		if !c.Trigger(q) {
			continue
		}
		if !c.Keep(r, q) {
			return false
		}
	}
	return true
}

func (e *Engine) parse(rawQuery string) query {
	lower := strings.ToLower(rawQuery)
	q := query{lower: lower}
	for _, place := range e.knownPlaces {
		if strings.Contains(lower, strings.ToLower(place)) {
			q.location = strings.ToLower(place)
			break
		}
	}
	if q.location == "" {
		if m := trailingLocationRe.FindStringSubmatch(lower); m != nil {
			q.location = strings.TrimSpace(m[1])
		}
	}
	return q
}

func detailsText(details map[string]string) string {
	keys := make([]string, 0, len(details))
	for k := range details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	for _, k := range keys {
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(details[k])
		b.WriteString(" ")
	}
	return b.String()
}
