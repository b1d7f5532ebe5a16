package domain

import "github.com/shopspring/decimal"

// MonthsPerYear is the length of every chart series the dashboard renders.
const MonthsPerYear = 12

type Metrics struct {
	TotalSales  decimal.Decimal `json:"totalSales"`
	TotalOrders int             `json:"totalOrders"`
	Variation   float64         `json:"variation"`
}

type Timeframe string

const (
	TimeframeMonthly   Timeframe = "monthly"
	TimeframeQuarterly Timeframe = "quarterly"
	TimeframeAnnually  Timeframe = "annually"
)

func (t Timeframe) Valid() bool {
	switch t {
	case TimeframeMonthly, TimeframeQuarterly, TimeframeAnnually:
		return true
	}
	return false
}

type Statistics struct {
	Sales   []float64 `json:"sales"`
	Revenue []float64 `json:"revenue"`
}

type MonthlySales struct {
	Sales []float64 `json:"sales"`
}

func ZeroSeries() []float64 {
	return make([]float64, MonthsPerYear)
}
