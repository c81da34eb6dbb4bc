package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func do(t *testing.T, method, path, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	router := NewRouter(zap.NewNop())

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	var response map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response), "body must be JSON")
	return w, response
}

func data(t *testing.T, response map[string]interface{}) map[string]interface{} {
	t.Helper()
	d, ok := response["data"].(map[string]interface{})
	require.True(t, ok, "expected data object, got %v", response)
	return d
}

func section(t *testing.T, m map[string]interface{}, key string) map[string]interface{} {
	t.Helper()
	s, ok := m[key].(map[string]interface{})
	require.True(t, ok, "expected %s object", key)
	return s
}

func TestHealth(t *testing.T) {
	w, response := do(t, http.MethodGet, "/healthz", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthy", data(t, response)["status"])
	assert.NotEmpty(t, w.Header().Get("Content-Type"))
}

func TestDefaults(t *testing.T) {
	w, response := do(t, http.MethodGet, "/api/v1/defaults", "")
	require.Equal(t, http.StatusOK, w.Code)

	d := data(t, response)
	cfg := section(t, d, "config")
	assert.Equal(t, 12000.0, cfg["gasUsage"])
	assert.Equal(t, 0.16, cfg["hpTariffPrice"])
	assert.Len(t, d["fields"], 13)
}

func TestTemplates(t *testing.T) {
	w, response := do(t, http.MethodGet, "/api/v1/templates", "")
	require.Equal(t, http.StatusOK, w.Code)

	templates, ok := response["data"].([]interface{})
	require.True(t, ok)
	names := make([]string, 0, len(templates))
	for _, tmpl := range templates {
		names = append(names, tmpl.(map[string]interface{})["name"].(string))
	}
	assert.Contains(t, names, "no_grant")
	assert.Contains(t, names, "solar_3kw")
}

func TestCalculate(t *testing.T) {
	t.Run("empty body uses defaults", func(t *testing.T) {
		w, response := do(t, http.MethodPost, "/api/v1/calculate", "")
		require.Equal(t, http.StatusOK, w.Code)

		report := section(t, data(t, response), "report")
		assert.Equal(t, 906.0, section(t, report, "gasBoiler")["annualCost"])
		assert.Equal(t, 739.0, section(t, report, "heatPump")["annualCostSmartTariff"])

		savings := section(t, report, "savings")
		assert.Equal(t, 167.0, savings["annualSmartTariff"])
		assert.Equal(t, 26.9, savings["paybackYearsSmartTariff"])
		assert.Nil(t, savings["paybackYearsStandard"], "a payback that never happens is null")
		assert.Equal(t, -824.0, savings["lifetimeSavings"])
		assert.Equal(t, "Switch with smart tariff", report["recommendation"])
	})

	t.Run("overrides apply", func(t *testing.T) {
		w, response := do(t, http.MethodPost, "/api/v1/calculate", `{"solarGeneration": 2700}`)
		require.Equal(t, http.StatusOK, w.Code)

		d := data(t, response)
		assert.Equal(t, 2700.0, section(t, d, "config")["solarGeneration"])
		savings := section(t, section(t, d, "report"), "savings")
		assert.Equal(t, 340.0, savings["annualSmartTariff"])
		assert.Equal(t, 13.2, savings["paybackYearsSmartTariff"])
		assert.Equal(t, 2977.0, savings["lifetimeSavings"])
	})

	t.Run("unknown field", func(t *testing.T) {
		w, response := do(t, http.MethodPost, "/api/v1/calculate", `{"windSpeed": 3}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "bad_request", response["error"])
		assert.Contains(t, section(t, response, "details")["body"], "windSpeed")
	})

	t.Run("malformed JSON", func(t *testing.T) {
		w, response := do(t, http.MethodPost, "/api/v1/calculate", `{"cop": `)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid JSON body", response["message"])
	})

	t.Run("wrong method", func(t *testing.T) {
		w, response := do(t, http.MethodGet, "/api/v1/calculate", "")
		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
		assert.Equal(t, "method_not_allowed", response["error"])
	})
}

func TestProject(t *testing.T) {
	w, response := do(t, http.MethodPost, "/api/v1/project", `{"solarGeneration": 2700}`)
	require.Equal(t, http.StatusOK, w.Code)

	projection := section(t, data(t, response), "projection")
	years := projection["years"].([]interface{})
	assert.Len(t, years, 23)
	assert.Equal(t, 14.0, projection["breakEvenYearSmartTariff"])
	assert.Equal(t, 0.0, projection["breakEvenYearStandard"])
	assert.Equal(t, 1.0, projection["boilerReplacementsAvoided"])
}

func TestCompare(t *testing.T) {
	t.Run("templates", func(t *testing.T) {
		w, response := do(t, http.MethodPost, "/api/v1/compare", `{"templates": ["no_grant", "solar_3kw"]}`)
		require.Equal(t, http.StatusOK, w.Code)

		d := data(t, response)
		assert.Len(t, d["alternativeResults"], 2)
		assert.NotEmpty(t, d["recommendations"])
		assert.Equal(t, 167.0, section(t, d, "baseResult")["annualSavingSmart"])
	})

	t.Run("missing templates", func(t *testing.T) {
		w, response := do(t, http.MethodPost, "/api/v1/compare", `{"overrides": {"cop": 3}}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, section(t, response, "details"), "CompareRequest.Templates")
	})

	t.Run("unknown template", func(t *testing.T) {
		w, response := do(t, http.MethodPost, "/api/v1/compare", `{"templates": ["no_grant", "geothermal"]}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, `unknown template "geothermal"`, section(t, response, "details")["templates[1]"])
	})
}

func TestBreakEven(t *testing.T) {
	t.Run("single field", func(t *testing.T) {
		w, response := do(t, http.MethodPost, "/api/v1/break-even", `{"field": "cop"}`)
		require.Equal(t, http.StatusOK, w.Code)

		d := data(t, response)
		assert.Equal(t, "cop", d["field"])
		assert.Equal(t, "above", d["direction"])
		assert.InDelta(t, 2.68287, d["value"], 1e-4)
	})

	t.Run("payback goal", func(t *testing.T) {
		w, response := do(t, http.MethodPost, "/api/v1/break-even",
			`{"field": "install_cost", "goal": "payback", "targetYears": 10}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.InDelta(t, 9170.807, data(t, response)["value"], 0.01)
	})

	t.Run("all fields", func(t *testing.T) {
		w, response := do(t, http.MethodPost, "/api/v1/break-even", `{}`)
		require.Equal(t, http.StatusOK, w.Code)

		d := data(t, response)
		assert.Len(t, d["results"], 6)
		assert.Contains(t, section(t, d, "unsolved"), "bus_grant")
	})

	t.Run("payback without target", func(t *testing.T) {
		w, response := do(t, http.MethodPost, "/api/v1/break-even", `{"field": "cop", "goal": "payback"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, section(t, response, "details"), "BreakEvenRequest.TargetYears")
	})

	t.Run("bad tariff", func(t *testing.T) {
		w, _ := do(t, http.MethodPost, "/api/v1/break-even", `{"field": "cop", "tariff": "economy7"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown field", func(t *testing.T) {
		w, response := do(t, http.MethodPost, "/api/v1/break-even", `{"field": "wind_speed"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "validate_request", section(t, response, "details")["operation"])
	})

	t.Run("range without root", func(t *testing.T) {
		w, response := do(t, http.MethodPost, "/api/v1/break-even", `{"field": "cop", "min": 3, "max": 5}`)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, "bracket", section(t, response, "details")["operation"])
	})
}

func TestNotFound(t *testing.T) {
	w, response := do(t, http.MethodGet, "/api/v2/calculate", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "not_found", response["error"])
}
