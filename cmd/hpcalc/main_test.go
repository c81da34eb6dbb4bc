package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	cmd.SetArgs(args)

	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)

	err := cmd.Execute()
	return out.String(), err
}

func writeScenarioFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "house.yaml")
	content := `base:
  gas_price: 0.061
scenarios:
  - name: solar
    description: 3 kW array
    overrides:
      solar_generation: 2700
  - name: pricey_tariff
    overrides:
      hp_tariff_price: 0.3
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRootCommand(t *testing.T) {
	cmd := newRootCmd()

	assert.Equal(t, "hpcalc", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)

	registered := map[string]bool{}
	for _, sub := range cmd.Commands() {
		registered[sub.Name()] = true
	}
	for _, name := range []string{"calculate", "defaults", "validate", "compare", "break-even", "project", "sensitivity", "serve", "version"} {
		assert.True(t, registered[name], "expected %s command", name)
	}
}

func TestRootCommand_Help(t *testing.T) {
	out, err := run(t, "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "HPCALC_<FIELD>")
}

func TestCalculate_JSON(t *testing.T) {
	out, err := run(t, "calculate", "-f", "json")
	require.NoError(t, err)

	var results struct {
		Base struct {
			Name   string `json:"name"`
			Report struct {
				Savings struct {
					AnnualSmartTariff    float64  `json:"annualSmartTariff"`
					PaybackYearsStandard *float64 `json:"paybackYearsStandard"`
					LifetimeSavings      float64  `json:"lifetimeSavings"`
				} `json:"savings"`
				Recommendation string `json:"recommendation"`
			} `json:"report"`
		} `json:"base"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &results))

	assert.Equal(t, "Base", results.Base.Name)
	assert.Equal(t, 167.0, results.Base.Report.Savings.AnnualSmartTariff)
	assert.Nil(t, results.Base.Report.Savings.PaybackYearsStandard)
	assert.Equal(t, -824.0, results.Base.Report.Savings.LifetimeSavings)
	assert.Equal(t, "Switch with smart tariff", results.Base.Report.Recommendation)
}

func TestCalculate_Console(t *testing.T) {
	out, err := run(t, "calculate", "--config", writeScenarioFile(t))
	require.NoError(t, err)

	assert.Contains(t, out, "GAS BOILER VS HEAT PUMP RUNNING COST COMPARISON")
	assert.Contains(t, out, "solar")
	assert.Contains(t, out, "pricey_tariff")
	assert.Contains(t, out, "SUMMARY & RECOMMENDATIONS")
}

func TestCalculate_SetOverride(t *testing.T) {
	out, err := run(t, "calculate", "-f", "csv", "--set", "solar_generation=2700")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], "340")
}

func TestCalculate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"bad format", []string{"calculate", "-f", "pdf"}, "unsupported format"},
		{"bad set", []string{"calculate", "--set", "wind_speed=3"}, "unknown config field"},
		{"scenario without file", []string{"calculate", "--scenario", "solar"}, "--config"},
		{"missing file", []string{"calculate", "--config", "does-not-exist.yaml"}, "failed to read file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNonFiniteInputsAreRejected(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"sensitivity range", []string{"sensitivity", "--parameter", "cop", "--range", "1-inf", "--steps", "3"}},
		{"sensitivity spec", []string{"sensitivity", "--parameter", "cop:2-NaN:3"}},
		{"break-even range", []string{"break-even", "--field", "cop", "--range", "1-inf"}},
		{"break-even set", []string{"break-even", "--field", "hp_tariff_price", "--set", "hp_tariff_price=inf"}},
		{"calculate set", []string{"calculate", "-f", "json", "--set", "cop=nan"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var err error
			require.NotPanics(t, func() { _, err = run(t, tt.args...) })
			require.Error(t, err)
			assert.Contains(t, err.Error(), "not a finite number")
		})
	}
}

func TestDefaults(t *testing.T) {
	out, err := run(t, "defaults")
	require.NoError(t, err)
	assert.Contains(t, out, "gas_usage: 12000")
	assert.Contains(t, out, "bus_grant: 7500")

	out, err = run(t, "defaults", "-f", "json", "--set", "cop=3")
	require.NoError(t, err)
	assert.Contains(t, out, `"cop": 3`)

	out, err = run(t, "defaults", "--fields")
	require.NoError(t, err)
	assert.Contains(t, out, "hpTariffPrice")
}

func TestValidate(t *testing.T) {
	out, err := run(t, "validate", writeScenarioFile(t))
	require.NoError(t, err)
	assert.Contains(t, out, "is valid (1 base override(s), 2 scenario(s))")

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("scenarios:\n  - name: a\n  - name: a\n"), 0644))
	_, err = run(t, "validate", bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must not repeat")
}

func TestCompare(t *testing.T) {
	out, err := run(t, "compare", "--with", "no_grant,solar_3kw", "-f", "csv")
	require.NoError(t, err)
	assert.Contains(t, out, "no_grant")
	assert.Contains(t, out, "solar_3kw")

	out, err = run(t, "compare", "--config", writeScenarioFile(t), "-f", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"pricey_tariff"`)

	out, err = run(t, "compare", "--list-templates")
	require.NoError(t, err)
	assert.Contains(t, out, "gas_price_up_20")

	_, err = run(t, "compare")
	assert.Error(t, err)
}

func TestBreakEven(t *testing.T) {
	out, err := run(t, "break-even", "--field", "hp_tariff_price")
	require.NoError(t, err)
	assert.Contains(t, out, "BREAK-EVEN ANALYSIS")
	assert.Contains(t, out, "0.2087")

	out, err = run(t, "break-even", "--field", "install_cost", "--goal", "payback", "--target-years", "10", "-f", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"field": "install_cost"`)

	out, err = run(t, "break-even")
	require.NoError(t, err)
	assert.Contains(t, out, "NOT REACHABLE")

	_, err = run(t, "break-even", "--field", "cop", "--range", "3-5")
	assert.Error(t, err)

	_, err = run(t, "break-even", "--goal", "fastest")
	assert.Error(t, err)
}

func TestProject(t *testing.T) {
	out, err := run(t, "project", "--config", writeScenarioFile(t), "--scenario", "solar", "-f", "csv")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 24) // header plus years 0 to 22
	assert.True(t, strings.HasPrefix(lines[1], "0,-4500,-4500"), lines[1])
}

func TestSensitivity(t *testing.T) {
	out, err := run(t, "sensitivity", "--parameter", "hp_tariff_price", "--range", "0.10-0.24", "--steps", "8", "-f", "csv")
	require.NoError(t, err)
	assert.Contains(t, out, "hp_tariff_price,0.24,-107,-124,never,-6859,-6035,Keep gas boiler for now")

	out, err = run(t, "sensitivity", "--parameter", "gas_price:0.04-0.10:4", "--parameter", "cop:2.5-4.5:5", "--analysis-type", "matrix")
	require.NoError(t, err)
	assert.Contains(t, out, "SENSITIVITY MATRIX ANALYSIS")

	out, err = run(t, "sensitivity", "--parameter-set", "prices")
	require.NoError(t, err)
	assert.Contains(t, out, "MOST SENSITIVE")

	_, err = run(t, "sensitivity")
	assert.Error(t, err)
}

func TestParseBounds(t *testing.T) {
	tests := []struct {
		spec    string
		lo, hi  float64
		wantErr bool
	}{
		{"0.10-0.24", 0.10, 0.24, false},
		{"-5-5", -5, 5, false},
		{"2000-", 0, 0, true},
		{"5-2", 0, 0, true},
		{"cheap-dear", 0, 0, true},
		{"7", 0, 0, true},
		{"1-inf", 0, 0, true},
		{"nan-5", 0, 0, true},
		{"-Inf-0", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			lo, hi, err := parseBounds(tt.spec)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.lo, lo)
			assert.Equal(t, tt.hi, hi)
		})
	}
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "hpcalc dev"))
}
