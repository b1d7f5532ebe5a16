package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type GoalPeriod string

const (
	GoalPeriodDaily   GoalPeriod = "daily"
	GoalPeriodMonthly GoalPeriod = "monthly"
	GoalPeriodCustom  GoalPeriod = "custom"
)

func (p GoalPeriod) Valid() bool {
	switch p {
	case GoalPeriodDaily, GoalPeriodMonthly, GoalPeriodCustom:
		return true
	}
	return false
}

// Goal is a sales target for a period. Custom periods carry explicit dates.
type Goal struct {
	ID          int             `json:"id,omitempty"`
	Period      GoalPeriod      `json:"period"`
	TargetValue decimal.Decimal `json:"targetValue"`
	StartDate   *Date           `json:"startDate"`
	EndDate     *Date           `json:"endDate"`
	Percent     float64         `json:"percent,omitempty"`
}

const dateLayout = "2006-01-02"

// Date is a calendar day encoded as YYYY-MM-DD.
type Date struct {
	time.Time
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("date must be YYYY-MM-DD: %w", err)
	}
	return Date{Time: t}, nil
}

func (d Date) String() string {
	return d.Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
