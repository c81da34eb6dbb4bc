package domain

// ProjectionYear is the cumulative position at the end of one year of
// heat pump ownership. Year 0 is the install, when only the net cost counts.
type ProjectionYear struct {
	Year                  int    `json:"year" yaml:"year"`
	CumulativeStandard    Figure `json:"cumulativeStandard" yaml:"cumulative_standard"`
	CumulativeSmartTariff Figure `json:"cumulativeSmartTariff" yaml:"cumulative_smart_tariff"`
}

// Projection tracks the net financial position of switching over the heat
// pump's life.
type Projection struct {
	Years []ProjectionYear `json:"years" yaml:"years"`

	// First year the cumulative position is positive, 0 when it never is.
	BreakEvenYearStandard    int `json:"breakEvenYearStandard" yaml:"break_even_year_standard"`
	BreakEvenYearSmartTariff int `json:"breakEvenYearSmartTariff" yaml:"break_even_year_smart_tariff"`

	BoilerReplacementsAvoided int `json:"boilerReplacementsAvoided" yaml:"boiler_replacements_avoided"`
}

// Final returns the last projected year, or the zero value for an empty projection.
func (p Projection) Final() ProjectionYear {
	if len(p.Years) == 0 {
		return ProjectionYear{}
	}
	return p.Years[len(p.Years)-1]
}
