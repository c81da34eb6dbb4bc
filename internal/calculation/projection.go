package calculation

import (
	"math"

	"github.com/rgehrsitz/hpcalc/internal/domain"
)

// MaxProjectionYears caps projections for absurd or infinite lifespans.
const MaxProjectionYears = 100

// Project builds the year-by-year cumulative position of switching, over the
// heat pump lifespan. Year 0 holds -netCost; each later year adds one year of
// savings on each tariff.
func Project(c domain.Config) domain.Projection {
	b := Evaluate(c)
	years := projectionYears(c.HeatPumpLifespan)

	p := domain.Projection{
		Years:                     make([]domain.ProjectionYear, 0, years+1),
		BoilerReplacementsAvoided: boilerReplacements(c.HeatPumpLifespan, c.BoilerLifespan),
	}

	for year := 0; year <= years; year++ {
		n := float64(year)
		standard := b.SavingStandard*n - b.NetCost
		smart := b.SavingSmart*n - b.NetCost

		if year > 0 && p.BreakEvenYearStandard == 0 && standard > 0 {
			p.BreakEvenYearStandard = year
		}
		if year > 0 && p.BreakEvenYearSmartTariff == 0 && smart > 0 {
			p.BreakEvenYearSmartTariff = year
		}

		p.Years = append(p.Years, domain.ProjectionYear{
			Year:                  year,
			CumulativeStandard:    whole(standard),
			CumulativeSmartTariff: whole(smart),
		})
	}

	return p
}

func projectionYears(lifespan float64) int {
	if math.IsNaN(lifespan) || lifespan <= 0 {
		return 0
	}
	if lifespan >= MaxProjectionYears {
		return MaxProjectionYears
	}
	return int(math.Floor(lifespan))
}

// boilerReplacements counts whole boiler lifetimes that fit in the heat pump
// lifespan.
func boilerReplacements(heatPumpLifespan, boilerLifespan float64) int {
	if math.IsNaN(boilerLifespan) || boilerLifespan <= 0 {
		return 0
	}
	n := math.Floor(float64(projectionYears(heatPumpLifespan)) / boilerLifespan)
	if math.IsNaN(n) {
		return 0
	}
	return int(n)
}
