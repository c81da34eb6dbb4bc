package domain

// BUSGrantAmount is the flat Boiler Upgrade Scheme payment towards a heat pump.
const BUSGrantAmount = 7500

// EligibilityCheckerURL points at the combined grant eligibility checker.
const EligibilityCheckerURL = "https://greatbritishenergy.com/eligibility-checker/"

// Grant describes one grant programme. Amount is zero for schemes that are
// means-tested rather than flat.
type Grant struct {
	Key         string `json:"key" yaml:"key"`
	Name        string `json:"name" yaml:"name"`
	Amount      Figure `json:"amount,omitempty" yaml:"amount,omitempty"`
	Description string `json:"description" yaml:"description"`
	URL         string `json:"url" yaml:"url"`
}

// GrantCatalog is the fixed list of schemes attached to every report.
type GrantCatalog struct {
	Schemes            []Grant `json:"schemes" yaml:"schemes"`
	EligibilityChecker string  `json:"eligibilityChecker" yaml:"eligibility_checker"`
}

// Lookup returns the scheme with the given key.
func (gc GrantCatalog) Lookup(key string) (Grant, bool) {
	for _, g := range gc.Schemes {
		if g.Key == key {
			return g, true
		}
	}
	return Grant{}, false
}

// GrantSchemes builds the grant catalog. It does not depend on any input and
// a new slice is returned on every call.
func GrantSchemes() GrantCatalog {
	return GrantCatalog{
		Schemes: []Grant{
			{
				Key:         "bus",
				Name:        "Boiler Upgrade Scheme",
				Amount:      BUSGrantAmount,
				Description: "£7,500 towards heat pump - any homeowner",
				URL:         "https://greatbritishenergy.com/boiler-upgrade-scheme/",
			},
			{
				Key:         "eco4",
				Name:        "ECO4",
				Description: "Free heat pump if on qualifying benefits with EPC D-G",
				URL:         "https://greatbritishenergy.com/eco4-scheme/",
			},
		},
		EligibilityChecker: EligibilityCheckerURL,
	}
}
