package dto

import (
	"github.com/shopspring/decimal"

	"petiscaria/internal/domain"
)

type MetricsResponse struct {
	TotalSales  decimal.Decimal `json:"totalSales"`
	TotalOrders int             `json:"totalOrders"`
	Variation   float64         `json:"variation"`
}

type SeriesResponse struct {
	Timeframe string    `json:"timeframe,omitempty"`
	Sales     []float64 `json:"sales"`
	Revenue   []float64 `json:"revenue,omitempty"`
}

type TargetResponse struct {
	Goal        *domain.Goal    `json:"goal"`
	TargetValue decimal.Decimal `json:"targetValue"`
	Revenue     decimal.Decimal `json:"revenue"`
	Percent     float64         `json:"percent"`
	Variation   float64         `json:"variation"`
}

type GoalRequest struct {
	Period      string          `json:"period"`
	TargetValue decimal.Decimal `json:"targetValue"`
	StartDate   string          `json:"startDate,omitempty"`
	EndDate     string          `json:"endDate,omitempty"`
}

type GoalListResponse struct {
	Count int           `json:"count"`
	Goals []domain.Goal `json:"goals"`
}

type TablesResponse struct {
	Total    int                `json:"total"`
	Occupied int                `json:"occupied"`
	Tables   []domain.TableSlot `json:"tables"`
}

func NewTablesResponse(slots []domain.TableSlot) TablesResponse {
	occupied := 0
	for _, s := range slots {
		if s.State == domain.TableOccupied {
			occupied++
		}
	}
	return TablesResponse{Total: len(slots), Occupied: occupied, Tables: slots}
}
