package view

import (
	"time"

	"github.com/MrJamesThe3rd/rentbook/internal/invoice"
)

// PeriodFilter cycles the invoice list between billing periods.
type PeriodFilter int

const (
	PeriodThisMonth PeriodFilter = iota
	PeriodLastMonth
	PeriodAll
)

func (p PeriodFilter) String() string {
	switch p {
	case PeriodThisMonth:
		return "This Month"
	case PeriodLastMonth:
		return "Last Month"
	case PeriodAll:
		return "All Time"
	}

	return "Unknown"
}

func (p PeriodFilter) Next() PeriodFilter {
	return (p + 1) % 3
}

// Filter converts the selection into a list filter relative to now.
func (p PeriodFilter) Filter(now time.Time) invoice.ListFilter {
	var ref time.Time

	switch p {
	case PeriodThisMonth:
		ref = now
	case PeriodLastMonth:
		ref = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -1, 0)
	default:
		return invoice.ListFilter{}
	}

	month, year := int(ref.Month()), ref.Year()

	return invoice.ListFilter{Month: &month, Year: &year}
}
