package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadPricing_Defaults(t *testing.T) {
	p, err := LoadPricing("")
	require.NoError(t, err)

	assert.Equal(t, DefaultPricing(), p)
	assert.Equal(t, 0.10, p.DiscountRate)
	assert.True(t, p.ReverseCreditOnCancel)
}

func TestLoadPricing_FileAndEnvOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pricing.yaml")
	yamlBody := []byte(`
unitPrices:
  hazardous: 175
discountRate: 0.2
`)
	require.NoError(t, os.WriteFile(path, yamlBody, 0o600))

	t.Setenv("PRICING_UNITPRICES_ELECTRONIC", "120")
	t.Setenv("PRICING_REVERSECREDITONCANCEL", "false")

	p, err := LoadPricing(path)
	require.NoError(t, err)

	assert.Equal(t, 175.0, p.UnitPrices["hazardous"])
	assert.Equal(t, 120.0, p.UnitPrices["electronic"])
	// untouched entries keep their defaults
	assert.Equal(t, 40.0, p.UnitPrices["organic"])
	assert.Equal(t, 0.2, p.DiscountRate)
	assert.False(t, p.ReverseCreditOnCancel)
}

func TestLoadPricing_MissingFile(t *testing.T) {
	_, err := LoadPricing(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadPricing_InvalidDiscountRate(t *testing.T) {
	t.Setenv("PRICING_DISCOUNTRATE", "1.5")

	_, err := LoadPricing("")
	assert.Error(t, err)
}

func TestPricing_Weight(t *testing.T) {
	p := DefaultPricing()

	cases := []struct {
		count float64
		unit  string
		want  float64
	}{
		{count: 7, unit: "kg", want: 7},
		{count: 3, unit: "bins/bags", want: 30},
		{count: 2, unit: "ton", want: 2000},
		{count: 0.5, unit: "ton", want: 500},
		{count: 4, unit: "crates", want: 4},
		{count: 4, unit: "", want: 4},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, p.Weight(tc.count, tc.unit), "%v %s", tc.count, tc.unit)
	}
}

func TestPricing_Rates(t *testing.T) {
	p := DefaultPricing()

	assert.Equal(t, 0.0, p.PointsRate("general"))
	assert.Equal(t, 0.0, p.PointsRate("unknown"))
	assert.Equal(t, 2.0, p.PointsRate("electronic"))
	assert.Equal(t, 0.8, p.CO2Rate("hazardous"))
	assert.Equal(t, 150.0, p.UnitPrice("hazardous"))
	assert.Equal(t, 50.0, p.UnitPrice("unknown"))
}
