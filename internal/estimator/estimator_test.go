package estimator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vendorrag/internal/catalog"
	"vendorrag/internal/domain"
)

func newEstimator() *Estimator {
	return New(catalog.Default(), DefaultCosts())
}

func ptr(v float64) *float64 { return &v }

func TestEstimateEmptyRequirements(t *testing.T) {
	estimates := newEstimator().Estimate(domain.ProjectRequirements{FacilityType: "Workspace"})
	assert.Empty(t, estimates)

	// project volume alone triggers no material category
	estimates = newEstimator().Estimate(domain.ProjectRequirements{
		ProjectVolumeRs: ptr(1e9),
		FacilityType:    "Workspace",
	})
	assert.Empty(t, estimates)
}

func TestEstimateAreaOnly(t *testing.T) {
	estimates := newEstimator().Estimate(domain.ProjectRequirements{
		BuiltUpAreaSqFt: ptr(100000),
		FacilityType:    "Workspace",
	})
	require.Len(t, estimates, 2, "area yields cement and bricks only")

	cement, bricks := estimates[0], estimates[1]
	assert.Contains(t, cement.Equipment, "Cement")
	assert.InDelta(t, 1333, cement.Quantity, 0.5) // 100000 * 0.4 / 30
	assert.Equal(t, "Cubic Meters", cement.Unit)
	assert.InDelta(t, 80.0, cement.CostCrores, 0.01)

	assert.Contains(t, bricks.Equipment, "Bricks")
	assert.Equal(t, 800000.0, bricks.Quantity) // 100000 * 8
	assert.Equal(t, "Units", bricks.Unit)
	assert.InDelta(t, 0.64, bricks.CostCrores, 0.001)
}

func TestEstimatePowerOnly(t *testing.T) {
	estimates := newEstimator().Estimate(domain.ProjectRequirements{
		PowerCapacityMW: ptr(25),
		FacilityType:    "Workspace",
	})
	require.Len(t, estimates, 3)

	switchgear, transformers, cooling := estimates[0], estimates[1], estimates[2]
	assert.Contains(t, switchgear.Equipment, "Switchgear")
	assert.Equal(t, 10.0, switchgear.Quantity) // max(5, 25/2.5)
	assert.InDelta(t, 2.0, switchgear.CostCrores, 0.001)

	assert.Contains(t, transformers.Equipment, "Transformers")
	assert.Equal(t, 5.0, transformers.Quantity) // max(3, 25/5)
	assert.Equal(t, "Units (5.0MVA)", transformers.Unit)
	assert.InDelta(t, 33.35, transformers.CostCrores, 0.001)

	assert.Contains(t, cooling.Equipment, "Chillers")
	assert.Equal(t, 50.0, cooling.Quantity) // max(10, 25*2)
	assert.InDelta(t, 15.0, cooling.CostCrores, 0.001)
}

func TestEstimateMinimumFloors(t *testing.T) {
	estimates := newEstimator().Estimate(domain.ProjectRequirements{
		PowerCapacityMW: ptr(1),
		FacilityType:    "Workspace",
	})
	require.Len(t, estimates, 3)
	assert.Equal(t, 5.0, estimates[0].Quantity)  // switchgear floor
	assert.Equal(t, 3.0, estimates[1].Quantity)  // transformer floor
	assert.Equal(t, 10.0, estimates[2].Quantity) // cooling floor
}

func TestEstimateCatalogCrossReference(t *testing.T) {
	estimates := newEstimator().Estimate(domain.ProjectRequirements{
		BuiltUpAreaSqFt: ptr(50000),
		FacilityType:    "Workspace",
	})
	require.Len(t, estimates, 2)
	assert.Equal(t, "Reinforced Concrete (Foundation, Slabs)", estimates[0].CatalogSource)
	assert.Equal(t, "Concrete Masonry Unit (CMU)", estimates[1].CatalogSource)
}

func TestEstimateConfigurableCosts(t *testing.T) {
	costs := DefaultCosts()
	costs.CementPerCubicMeterRs = 12000
	est := New(catalog.Default(), costs)
	estimates := est.Estimate(domain.ProjectRequirements{
		BuiltUpAreaSqFt: ptr(100000),
		FacilityType:    "Workspace",
	})
	require.NotEmpty(t, estimates)
	assert.InDelta(t, 160.0, estimates[0].CostCrores, 0.01)
}
