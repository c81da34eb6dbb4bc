package transform

import (
	"strings"
	"testing"

	"github.com/rgehrsitz/hpcalc/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateRegistry_RegisterAndGet(t *testing.T) {
	registry := NewTemplateRegistry()

	template := Template{
		Name:        "test_template",
		Description: "A test template",
		Transforms:  []ScenarioTransform{},
	}

	registry.Register(template)

	// Test exact match
	retrieved, ok := registry.Get("test_template")
	if !ok {
		t.Fatal("Expected to find template")
	}
	if retrieved.Name != template.Name {
		t.Errorf("Expected name %s, got %s", template.Name, retrieved.Name)
	}

	// Test case-insensitive
	_, ok = registry.Get("TEST_TEMPLATE")
	if !ok {
		t.Fatal("Expected case-insensitive lookup to work")
	}

	// Test not found
	_, ok = registry.Get("nonexistent")
	if ok {
		t.Error("Expected not to find nonexistent template")
	}
}

func TestTemplateRegistry_List(t *testing.T) {
	registry := NewTemplateRegistry()

	registry.Register(Template{Name: "template2", Description: "Second"})
	registry.Register(Template{Name: "template1", Description: "First"})

	assert.Equal(t, []string{"template1", "template2"}, registry.List())
}

func TestCreateBuiltInTemplates(t *testing.T) {
	registry := CreateBuiltInTemplates()

	expectedTemplates := []string{
		"no_grant",
		"solar_3kw",
		"solar_4kw",
		"gas_price_up_20",
		"elec_price_up_20",
		"high_cop",
		"low_cop",
		"high_demand",
		"cheap_install",
	}

	for _, name := range expectedTemplates {
		template, ok := registry.Get(name)
		if !ok {
			t.Errorf("Expected to find template: %s", name)
			continue
		}
		if len(template.Transforms) == 0 {
			t.Errorf("Template %s has no transforms", name)
		}
		if template.Description == "" {
			t.Errorf("Template %s has no description", name)
		}
	}

	assert.Len(t, registry.List(), len(expectedTemplates))
}

func TestApplyTemplate_BuiltIns(t *testing.T) {
	registry := CreateBuiltInTemplates()
	base := domain.DefaultConfig()

	tests := []struct {
		name  string
		check func(t *testing.T, c domain.Config)
	}{
		{"no_grant", func(t *testing.T, c domain.Config) { assert.Equal(t, 0.0, c.BUSGrant) }},
		{"solar_3kw", func(t *testing.T, c domain.Config) { assert.Equal(t, 2700.0, c.SolarGeneration) }},
		{"solar_4kw", func(t *testing.T, c domain.Config) { assert.Equal(t, 3600.0, c.SolarGeneration) }},
		{"gas_price_up_20", func(t *testing.T, c domain.Config) { assert.InDelta(t, 0.0732, c.GasPrice, 1e-12) }},
		{"elec_price_up_20", func(t *testing.T, c domain.Config) {
			assert.InDelta(t, 0.294, c.ElecPrice, 1e-12)
			assert.InDelta(t, 0.192, c.HPTariffPrice, 1e-12)
		}},
		{"high_cop", func(t *testing.T, c domain.Config) { assert.Equal(t, 4.0, c.COP) }},
		{"low_cop", func(t *testing.T, c domain.Config) { assert.Equal(t, 2.8, c.COP) }},
		{"high_demand", func(t *testing.T, c domain.Config) { assert.Equal(t, 15000.0, c.GasUsage) }},
		{"cheap_install", func(t *testing.T, c domain.Config) { assert.Equal(t, 10000.0, c.InstallCost) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			template, ok := registry.Get(tt.name)
			require.True(t, ok)

			result, err := ApplyTemplate(base, template)
			require.NoError(t, err)
			tt.check(t, result)
		})
	}
}

func TestParseTemplateList(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"", nil},
		{"no_grant", []string{"no_grant"}},
		{"no_grant,solar_3kw", []string{"no_grant", "solar_3kw"}},
		{" high_cop , low_cop ,", []string{"high_cop", "low_cop"}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, ParseTemplateList(tt.input), "input %q", tt.input)
	}
}

func TestGetTemplateHelp(t *testing.T) {
	help := GetTemplateHelp(CreateBuiltInTemplates())

	for _, category := range templateCategories {
		if !strings.Contains(help, category+":") {
			t.Errorf("Expected help to contain category %s", category)
		}
	}
	assert.Contains(t, help, "solar_3kw")
	assert.Contains(t, help, "hpcalc compare")

	assert.Equal(t, "No templates registered", GetTemplateHelp(NewTemplateRegistry()))
}

func TestTransformRegistry_ParseTransformSpec(t *testing.T) {
	registry := NewTransformRegistry()

	tr, err := registry.ParseTransformSpec("scale_parameter:field=gas_price,factor=1.5")
	require.NoError(t, err)
	scale, ok := tr.(*ScaleParameter)
	require.True(t, ok)
	assert.Equal(t, "gas_price", scale.Field)
	assert.Equal(t, 1.5, scale.Factor)

	tr, err = registry.ParseTransformSpec("remove_grant")
	require.NoError(t, err)
	assert.Equal(t, "remove_grant", tr.Name())

	tr, err = registry.ParseTransformSpec("add_solar: kw = 2.5")
	require.NoError(t, err)
	assert.Equal(t, 2.5, tr.(*AddSolar).KW)
}

func TestTransformRegistry_ParseTransformSpec_Errors(t *testing.T) {
	registry := NewTransformRegistry()

	specs := []string{
		"",
		"unknown_transform:x=1",
		"set_parameter:field=cop",
		"set_parameter:value=3",
		"set_parameter:field=cop,value=high",
		"add_solar:kw",
	}

	for _, spec := range specs {
		_, err := registry.ParseTransformSpec(spec)
		assert.Error(t, err, "spec %q", spec)
	}
}

func TestTransformRegistry_List(t *testing.T) {
	registry := NewTransformRegistry()

	assert.Equal(t, []string{"add_solar", "adjust_parameter", "remove_grant", "scale_parameter", "set_parameter"}, registry.List())
}
