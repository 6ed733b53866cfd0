package partner

import (
	"time"

	"github.com/shopspring/decimal"
)

// DebtStatus classifies a client by the age of their oldest overdue installment
type DebtStatus string

const (
	DebtStatusRegular   DebtStatus = "regular"
	DebtStatusDebtor    DebtStatus = "debtor"
	DebtStatusDefaulter DebtStatus = "defaulter"
)

// DefaulterThresholdDays is the age in whole days at which a debtor becomes a defaulter
const DefaulterThresholdDays = 90

// IsValid checks if the status is a valid DebtStatus
func (s DebtStatus) IsValid() bool {
	switch s {
	case DebtStatusRegular, DebtStatusDebtor, DebtStatusDefaulter:
		return true
	}
	return false
}

// String returns the string representation of DebtStatus
func (s DebtStatus) String() string {
	return string(s)
}

// OverdueInstallment carries the minimal installment data the classifier
// needs. Defined here so the partner context does not depend on trade.
type OverdueInstallment struct {
	Amount  decimal.Decimal
	DueDate time.Time
}

// DebtSummary is the result of classifying a client's overdue installments
type DebtSummary struct {
	Status                   DebtStatus
	OverdueAmount            decimal.Decimal
	OverdueInstallmentsCount int
	FirstOverdueDate         *time.Time
	ComputedAt               time.Time
}

// BuildDebtSummary classifies a client from their pending-and-past-due
// installments. The caller is responsible for only passing installments with
// status pending and due date strictly before today.
//
// Classification is a pure function of the first overdue date and today:
// no overdue installments means regular; oldest overdue younger than 90 days
// means debtor; 90 days or older means defaulter.
func BuildDebtSummary(overdue []OverdueInstallment, today time.Time) DebtSummary {
	now := time.Now()
	if len(overdue) == 0 {
		return DebtSummary{
			Status:        DebtStatusRegular,
			OverdueAmount: decimal.Zero,
			ComputedAt:    now,
		}
	}

	total := decimal.Zero
	first := overdue[0].DueDate
	for _, inst := range overdue {
		total = total.Add(inst.Amount)
		if inst.DueDate.Before(first) {
			first = inst.DueDate
		}
	}

	status := DebtStatusDebtor
	if DaysBetween(first, today) >= DefaulterThresholdDays {
		status = DebtStatusDefaulter
	}

	firstDate := truncateToDate(first)
	return DebtSummary{
		Status:                   status,
		OverdueAmount:            total,
		OverdueInstallmentsCount: len(overdue),
		FirstOverdueDate:         &firstDate,
		ComputedAt:               now,
	}
}

// DaysBetween returns the number of whole calendar days from one date to
// another. Both values are truncated to their calendar date first, so the
// result never depends on time of day.
func DaysBetween(from, to time.Time) int {
	f := truncateToDate(from)
	t := truncateToDate(to)
	return int(t.Sub(f).Hours() / 24)
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
