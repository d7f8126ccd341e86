package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
)

// DefaultFacility is the facility type assumed when a query names none.
const DefaultFacility = "Workspace"

// Catalog maps facility type -> category -> material names. It is used
// only for annotation and cross-referencing; estimation arithmetic never
// depends on it.
type Catalog struct {
	facilities map[string]map[string][]string
}

// Load reads a facility catalog from a JSON file shaped as
// {"Facility": {"Category": ["material", ...]}}. A missing path yields the
// built-in default catalog.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}
	var facilities map[string]map[string][]string
	if err := json.Unmarshal(data, &facilities); err != nil {
		return nil, fmt.Errorf("parsing catalog %s: %w", path, err)
	}
	return &Catalog{facilities: facilities}, nil
}

// Default returns the built-in catalog.
func Default() *Catalog {
	return &Catalog{facilities: map[string]map[string][]string{
		"Workspace": {
			"Structural": {"Reinforced Concrete (Foundation, Slabs)", "Structural Steel Framing"},
			"Envelope":   {"Concrete Masonry Unit (CMU)", "Curtain Wall Cladding Panels"},
			"Electrical": {"Electrical Infrastructure (LV Panels, Cabling)", "Emergency Power Systems (DG Sets, UPS)"},
			"Mechanical": {"HVAC Systems (Chillers, AHUs)", "Fire Suppression Systems"},
		},
		"DataCenter": {
			"Structural": {"Reinforced Concrete (Raft Foundation)", "Precast Concrete Panels"},
			"Electrical": {"Medium Voltage Power Distribution", "Emergency Power Systems (2N DG Sets)"},
			"Mechanical": {"HVAC Cooling Plant (Chillers, CRAHs)", "Hot Aisle Containment"},
		},
	}}
}

// FacilityType resolves the facility a query is about: the first catalog
// key whose lower-cased, space-stripped form appears in the lower-cased
// query. Falls back to DefaultFacility.
func (c *Catalog) FacilityType(query string) string {
	q := strings.ToLower(query)
	for _, facility := range c.facilityNames() {
		needle := strings.ReplaceAll(strings.ToLower(facility), " ", "")
		if strings.Contains(q, needle) {
			return facility
		}
	}
	return DefaultFacility
}

// categoryOrder lists categories from load-bearing outward. Cross-reference
// keyword lookups take the first hit, so structural entries must come first.
var categoryOrder = []string{"Structural", "Envelope", "Electrical", "Mechanical"}

// Materials returns every material listed for the facility, in stable
// category order. Unknown facilities fall back to the default facility.
func (c *Catalog) Materials(facility string) []string {
	cats := c.categories(facility)
	var out []string
	seen := make(map[string]bool, len(cats))
	for _, cat := range categoryOrder {
		if mats, ok := cats[cat]; ok {
			out = append(out, mats...)
			seen[cat] = true
		}
	}
	for _, cat := range sortedKeys(cats) {
		if !seen[cat] {
			out = append(out, cats[cat]...)
		}
	}
	return out
}

// FindMaterial returns the first material for the facility whose name
// contains any of the keywords (case-insensitive).
func (c *Catalog) FindMaterial(facility string, keywords ...string) (string, bool) {
	for _, mat := range c.Materials(facility) {
		lower := strings.ToLower(mat)
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				return mat, true
			}
		}
	}
	return "", false
}

func (c *Catalog) categories(facility string) map[string][]string {
	if cats, ok := c.facilities[facility]; ok {
		return cats
	}
	return c.facilities[DefaultFacility]
}

func (c *Catalog) facilityNames() []string {
	names := make([]string, 0, len(c.facilities))
	for name := range c.facilities {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
