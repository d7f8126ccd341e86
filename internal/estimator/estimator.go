package estimator

import (
	"fmt"
	"math"

	"vendorrag/internal/catalog"
	"vendorrag/internal/domain"
)

// Construction norm ratios. These are fixed; the per-unit costs are not
// (see Costs).
const (
	cementBagsPerSqFt  = 0.4
	cementBagsPerCubic = 30
	bricksPerSqFt      = 8
	mwPerSwitchgear    = 2.5
	mwPerTransformer   = 5
	coolingUnitsPerMW  = 2

	minSwitchgearLineups = 5
	minTransformerUnits  = 3
	minCoolingUnits      = 10
)

// Costs holds the per-unit cost constants used to turn quantities into
// currency estimates. The defaults carry no cited basis; they are kept
// configurable rather than hard-coded so deployments can correct them.
type Costs struct {
	CementPerCubicMeterRs float64 // rupees per cubic meter
	BrickPerUnitRs        float64 // rupees per brick
	SwitchgearLineupCr    float64 // crores per lineup
	TransformerUnitCr     float64 // crores per unit
	CoolingUnitCr         float64 // crores per unit
}

// DefaultCosts returns the standard per-unit cost constants.
func DefaultCosts() Costs {
	return Costs{
		CementPerCubicMeterRs: 6000,
		BrickPerUnitRs:        0.08,
		SwitchgearLineupCr:    0.2,
		TransformerUnitCr:     6.67,
		CoolingUnitCr:         0.3,
	}
}

// Estimator computes deterministic material quantity and cost estimates
// from extracted project requirements. It is stateless arithmetic keyed
// only by built-up area and power capacity; the catalog supplies
// best-effort cross-reference labels.
type Estimator struct {
	catalog *catalog.Catalog
	costs   Costs
}

func New(cat *catalog.Catalog, costs Costs) *Estimator {
	return &Estimator{catalog: cat, costs: costs}
}

// Estimate returns one entry per material category triggered by the
// requirements. Absent both area and power it returns nothing.
func (e *Estimator) Estimate(req domain.ProjectRequirements) []domain.MaterialEstimate {
	var estimates []domain.MaterialEstimate
	facility := req.FacilityType
	if facility == "" {
		facility = catalog.DefaultFacility
	}

	if req.BuiltUpAreaSqFt != nil {
		area := *req.BuiltUpAreaSqFt

		cubicMeters := area * cementBagsPerSqFt / cementBagsPerCubic
		estimates = append(estimates, domain.MaterialEstimate{
			Equipment:     "Cement - " + e.crossRef(facility, "Reinforced Concrete (Foundation, Slabs)", "concrete"),
			Quantity:      math.Round(cubicMeters),
			Unit:          "Cubic Meters",
			CostCrores:    cubicMeters * e.costs.CementPerCubicMeterRs / 100000,
			Notes:         "Based on standard construction norms (0.4 bags per square foot)",
			CatalogSource: e.crossRef(facility, "Reinforced Concrete (Foundation, Slabs)", "concrete"),
		})

		bricks := area * bricksPerSqFt
		estimates = append(estimates, domain.MaterialEstimate{
			Equipment:     "Bricks - " + e.crossRef(facility, "Concrete Masonry Unit (CMU)", "masonry", "cladding"),
			Quantity:      math.Round(bricks),
			Unit:          "Units",
			CostCrores:    bricks * e.costs.BrickPerUnitRs / 100000,
			Notes:         "Based on standard construction norms (8 bricks per square foot)",
			CatalogSource: e.crossRef(facility, "Concrete Masonry Unit (CMU)", "masonry", "cladding"),
		})
	}

	if req.PowerCapacityMW != nil {
		power := *req.PowerCapacityMW

		lineups := math.Max(minSwitchgearLineups, power/mwPerSwitchgear)
		estimates = append(estimates, domain.MaterialEstimate{
			Equipment:     "Medium Voltage Switchgear - " + e.crossRef(facility, "Electrical Infrastructure", "electrical", "power"),
			Quantity:      math.Round(lineups),
			Unit:          "LineUps",
			CostCrores:    lineups * e.costs.SwitchgearLineupCr,
			Notes:         fmt.Sprintf("Based on power capacity of %g MW", power),
			CatalogSource: e.crossRef(facility, "Electrical Infrastructure", "electrical", "power"),
		})

		units := math.Max(minTransformerUnits, power/mwPerTransformer)
		capacity := power / units
		estimates = append(estimates, domain.MaterialEstimate{
			Equipment:     "Transformers - " + e.crossRef(facility, "Emergency Power Systems", "power", "emergency"),
			Quantity:      math.Round(units),
			Unit:          fmt.Sprintf("Units (%.1fMVA)", capacity),
			CostCrores:    units * e.costs.TransformerUnitCr,
			Notes:         fmt.Sprintf("Based on power capacity of %g MW", power),
			CatalogSource: e.crossRef(facility, "Emergency Power Systems", "power", "emergency"),
		})

		cooling := math.Max(minCoolingUnits, power*coolingUnitsPerMW)
		estimates = append(estimates, domain.MaterialEstimate{
			Equipment:     "Chillers / CRAHs / CRACs - " + e.crossRef(facility, "HVAC Systems", "hvac", "cooling"),
			Quantity:      math.Round(cooling),
			Unit:          "Units",
			CostCrores:    cooling * e.costs.CoolingUnitCr,
			Notes:         fmt.Sprintf("Based on power capacity of %g MW", power),
			CatalogSource: e.crossRef(facility, "HVAC Systems", "hvac", "cooling"),
		})
	}

	return estimates
}

// crossRef annotates a category with the first matching catalog material,
// falling back to a generic label. Best effort only.
func (e *Estimator) crossRef(facility, fallback string, keywords ...string) string {
	if mat, ok := e.catalog.FindMaterial(facility, keywords...); ok {
		return mat
	}
	return fallback
}
