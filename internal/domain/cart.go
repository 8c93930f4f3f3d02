package domain

import (
	"errors"
	"time"
)

var ErrInvalidFrequency = errors.New("invalid recurring frequency")

type RecurringFrequency string

const (
	FrequencyNone         RecurringFrequency = ""
	FrequencyDaily        RecurringFrequency = "daily"
	FrequencyEveryTwoDays RecurringFrequency = "2days"
	FrequencyWeekly       RecurringFrequency = "weekly"
	FrequencyMonthly      RecurringFrequency = "monthly"
)

func (f RecurringFrequency) Valid() bool {
	switch f {
	case FrequencyNone, FrequencyDaily, FrequencyEveryTwoDays, FrequencyWeekly, FrequencyMonthly:
		return true
	}
	return false
}

// ParseFrequency accepts the wire names plus "none" for the absent frequency.
func ParseFrequency(s string) (RecurringFrequency, error) {
	if s == "none" {
		return FrequencyNone, nil
	}
	f := RecurringFrequency(s)
	if !f.Valid() {
		return FrequencyNone, ErrInvalidFrequency
	}
	return f, nil
}

// CartLine is a line item resolved against the catalog at snapshot time.
type CartLine struct {
	ProductID string             `json:"product_id"`
	Name      string             `json:"name"`
	UnitPrice int64              `json:"unit_price"`
	MRP       int64              `json:"mrp"`
	Image     string             `json:"image"`
	Weight    string             `json:"weight"`
	MartID    string             `json:"mart_id"`
	Quantity  int                `json:"quantity"`
	Recurring bool               `json:"recurring"`
	Frequency RecurringFrequency `json:"frequency,omitempty"`
	LineTotal int64              `json:"line_total"`
}

// CartSnapshot represents the full cart state at the moment it was read
type CartSnapshot struct {
	Lines      []CartLine `json:"lines"`
	ItemCount  int        `json:"item_count"`
	Subtotal   int64      `json:"subtotal"`
	CapturedAt time.Time  `json:"captured_at"`
}

func (s CartSnapshot) IsEmpty() bool {
	return len(s.Lines) == 0
}

// ItemCount sums line quantities.
func ItemCount(lines []CartLine) int {
	n := 0
	for _, l := range lines {
		n += l.Quantity
	}
	return n
}

// Subtotal sums unit price times quantity over all lines.
func Subtotal(lines []CartLine) int64 {
	var total int64
	for _, l := range lines {
		total += l.UnitPrice * int64(l.Quantity)
	}
	return total
}
