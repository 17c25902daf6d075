package pickup

import (
	"math"

	"ecowaste/internal/config"
	"ecowaste/internal/domain"
)

// Quote holds the derived fields written to a pickup at creation.
type Quote struct {
	Weight        float64
	PointsEarned  int64
	CO2Saved      float64
	Cost          float64
	FinalAmount   float64
	DiscountAdded float64
	PaymentStatus domain.PaymentStatus
}

// Calculator prices a pickup from the configured tariff tables.
type Calculator struct {
	pricing config.Pricing
}

func NewCalculator(pricing config.Pricing) *Calculator {
	return &Calculator{pricing: pricing}
}

func (c *Calculator) Quote(wasteType domain.WasteType, count float64, unit string, service domain.ServiceType) Quote {
	weight := c.pricing.Weight(count, unit)
	q := Quote{
		Weight:        weight,
		PointsEarned:  int64(math.Round(weight * c.pricing.PointsRate(string(wasteType)))),
		CO2Saved:      weight * c.pricing.CO2Rate(string(wasteType)),
		PaymentStatus: domain.PaymentPaid,
	}

	if service == domain.ServiceBusiness {
		// priced per counted unit, not per kg
		q.Cost = c.pricing.UnitPrice(string(wasteType)) * count
		q.FinalAmount = q.Cost
		q.DiscountAdded = math.Round(q.Cost * c.pricing.DiscountRate)
		q.PaymentStatus = domain.PaymentPending
	}
	return q
}
