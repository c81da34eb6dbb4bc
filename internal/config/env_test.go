package config

import (
	"testing"

	"github.com/rgehrsitz/hpcalc/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mapLookup(m map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

func TestEnvName(t *testing.T) {
	field, ok := domain.LookupField("hpTariffPrice")
	require.True(t, ok)
	assert.Equal(t, "HPCALC_HP_TARIFF_PRICE", EnvName(field))
}

func TestLookupEnvOverrides(t *testing.T) {
	overrides, err := lookupEnvOverrides(mapLookup(map[string]string{
		"HPCALC_GAS_PRICE": "0.07",
		"HPCALC_COP":       " 3.2 ",
		"HPCALC_BUS_GRANT": "",
		"GAS_PRICE":        "9",
	}))
	require.NoError(t, err)

	assert.Equal(t, map[string]float64{"gas_price": 0.07, "cop": 3.2}, overrides.Values())
}

func TestLookupEnvOverrides_InvalidNumber(t *testing.T) {
	_, err := lookupEnvOverrides(mapLookup(map[string]string{"HPCALC_COP": "three"}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HPCALC_COP")
}

func TestLookupEnvOverrides_NonFinite(t *testing.T) {
	for _, raw := range []string{"inf", "NaN", "-Infinity"} {
		t.Run(raw, func(t *testing.T) {
			_, err := lookupEnvOverrides(mapLookup(map[string]string{"HPCALC_COP": raw}))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "not a finite number")
		})
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("HPCALC_SOLAR_GENERATION", "2700")

	overrides, err := LoadEnvOverrides()
	require.NoError(t, err)
	assert.Equal(t, 2700.0, overrides.Values()["solar_generation"])
}

func TestReadEnvFile(t *testing.T) {
	path := writeFile(t, "hp.env", "# heat pump quote\nHPCALC_INSTALL_COST=10500\nHPCALC_BUS_GRANT=7500\nOTHER=1\n")

	overrides, err := ReadEnvFile(path)
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"install_cost": 10500, "bus_grant": 7500}, overrides.Values())

	_, err = ReadEnvFile(path + ".missing")
	assert.Error(t, err)
}

func TestLoadDotEnv_MissingNamedFile(t *testing.T) {
	assert.Error(t, LoadDotEnv("does-not-exist.env"))
}
