package config

import (
	"os"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

const pricingEnvPrefix = "PRICING_"

// Pricing is the tariff used to derive weight, eco points, CO2 and cost of a pickup.
// Keys of the per-type tables are waste type names (general, recyclable, ...).
type Pricing struct {
	UnitWeights           map[string]float64 `koanf:"unitWeights"`
	PointsPerKg           map[string]float64 `koanf:"pointsPerKg"`
	CO2PerKg              map[string]float64 `koanf:"co2PerKg"`
	UnitPrices            map[string]float64 `koanf:"unitPrices"`
	DefaultUnitPrice      float64            `koanf:"defaultUnitPrice"`
	DiscountRate          float64            `koanf:"discountRate"`
	ReverseCreditOnCancel bool               `koanf:"reverseCreditOnCancel"`
}

// DefaultPricing returns the built-in tariff.
func DefaultPricing() Pricing {
	return Pricing{
		UnitWeights: map[string]float64{
			"kg":        1,
			"bins/bags": 10,
			"ton":       1000,
		},
		PointsPerKg: map[string]float64{
			"general":    0,
			"recyclable": 1,
			"organic":    0.5,
			"electronic": 2,
			"hazardous":  1.5,
		},
		CO2PerKg: map[string]float64{
			"general":    0,
			"recyclable": 0.5,
			"organic":    0.3,
			"electronic": 1,
			"hazardous":  0.8,
		},
		UnitPrices: map[string]float64{
			"general":    50,
			"recyclable": 50,
			"organic":    40,
			"electronic": 100,
			"hazardous":  150,
		},
		DefaultUnitPrice:      50,
		DiscountRate:          0.10,
		ReverseCreditOnCancel: true,
	}
}

var pricingTopLevelKeys = map[string]string{
	"unitweights":           "unitWeights",
	"pointsperkg":           "pointsPerKg",
	"co2perkg":              "co2PerKg",
	"unitprices":            "unitPrices",
	"defaultunitprice":      "defaultUnitPrice",
	"discountrate":          "discountRate",
	"reversecreditoncancel": "reverseCreditOnCancel",
}

// LoadPricing starts from DefaultPricing, overlays the optional YAML file at path and then
// PRICING_* environment variables (PRICING_UNITPRICES_HAZARDOUS=200, PRICING_DISCOUNTRATE=0.15).
func LoadPricing(path string) (Pricing, error) {
	p := DefaultPricing()
	k := koanf.New(".")

	if strings.TrimSpace(path) != "" {
		if _, err := os.Stat(path); err != nil {
			return Pricing{}, errors.Wrapf(err, "pricing file %s", path)
		}
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Pricing{}, errors.Wrapf(err, "read pricing file %s failed", path)
		}
	}

	if err := k.Load(env.Provider(".", env.Opt{
		Prefix: pricingEnvPrefix,
		TransformFunc: func(key, value string) (string, any) {
			parts := strings.SplitN(strings.ToLower(strings.TrimPrefix(key, pricingEnvPrefix)), "_", 2)
			if canonical, ok := pricingTopLevelKeys[parts[0]]; ok {
				parts[0] = canonical
			}
			return strings.Join(parts, "."), value
		},
	}), nil); err != nil {
		return Pricing{}, errors.Wrap(err, "load pricing env variables failed")
	}

	if err := k.UnmarshalWithConf("", &p, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &p,
			WeaklyTypedInput: true,
			TagName:          "koanf",
			MatchName: func(mapKey, fieldName string) bool {
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return Pricing{}, errors.Wrap(err, "unmarshal pricing config failed")
	}

	if err := p.Validate(); err != nil {
		return Pricing{}, err
	}
	return p, nil
}

func (p Pricing) Validate() error {
	if p.DiscountRate < 0 || p.DiscountRate > 1 {
		return errors.Errorf("pricing discountRate must be within [0,1], got %v", p.DiscountRate)
	}
	if p.DefaultUnitPrice < 0 {
		return errors.Errorf("pricing defaultUnitPrice must be >= 0, got %v", p.DefaultUnitPrice)
	}
	for name, table := range map[string]map[string]float64{
		"unitWeights": p.UnitWeights,
		"pointsPerKg": p.PointsPerKg,
		"co2PerKg":    p.CO2PerKg,
		"unitPrices":  p.UnitPrices,
	} {
		for key, v := range table {
			if v < 0 {
				return errors.Errorf("pricing %s[%s] must be >= 0, got %v", name, key, v)
			}
		}
	}
	return nil
}

// Weight converts a quantity to kilograms. Unknown units are taken as kilograms.
func (p Pricing) Weight(count float64, unit string) float64 {
	if factor, ok := p.UnitWeights[strings.ToLower(strings.TrimSpace(unit))]; ok {
		return count * factor
	}
	return count
}

// PointsRate returns 0 for types missing from the table.
func (p Pricing) PointsRate(wasteType string) float64 {
	return p.PointsPerKg[wasteType]
}

func (p Pricing) CO2Rate(wasteType string) float64 {
	return p.CO2PerKg[wasteType]
}

func (p Pricing) UnitPrice(wasteType string) float64 {
	if price, ok := p.UnitPrices[wasteType]; ok {
		return price
	}
	return p.DefaultUnitPrice
}
