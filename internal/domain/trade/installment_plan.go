package trade

import (
	"time"

	"github.com/gestor/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PlannedInstallment is one entry of a generated installment schedule
type PlannedInstallment struct {
	Amount  decimal.Decimal
	DueDate time.Time
}

// BuildInstallmentPlan splits a total into n monthly installments.
//
// Each installment is total/n rounded down to 2 decimal places, and the
// rounding remainder is pushed onto the final installment so the schedule
// always sums exactly to the total. The total must cover at least one cent
// per installment, so every generated amount is positive. Due dates use
// calendar-month arithmetic: the first installment falls due one month after
// the reference date, each subsequent one a month later.
func BuildInstallmentPlan(total decimal.Decimal, n int, from time.Time) ([]PlannedInstallment, error) {
	if n < 1 {
		return nil, shared.NewDomainError("INVALID_INSTALLMENTS", "Installments must be at least 1")
	}
	if !total.IsPositive() {
		return nil, shared.NewDomainError("INVALID_TOTAL", "Total must be positive")
	}
	if total.LessThan(decimal.New(int64(n), -2)) {
		return nil, shared.NewDomainError("INVALID_INSTALLMENTS", "Total cannot cover one cent per installment")
	}

	base := total.Div(decimal.NewFromInt(int64(n))).RoundDown(2)

	plan := make([]PlannedInstallment, n)
	for i := 0; i < n; i++ {
		amount := base
		if i == n-1 {
			amount = total.Sub(base.Mul(decimal.NewFromInt(int64(n - 1))))
		}
		plan[i] = PlannedInstallment{
			Amount:  amount,
			DueDate: from.AddDate(0, i+1, 0),
		}
	}
	return plan, nil
}

// ValidateInstallmentDetails checks a caller-supplied installment schedule
// against the declared installment count and sale total. The sum of amounts
// must match the total within one cent per installment of rounding tolerance.
func ValidateInstallmentDetails(details []PlannedInstallment, installments int, total decimal.Decimal) error {
	if len(details) != installments {
		return shared.NewDomainError("INVALID_INSTALLMENTS", "Installment details length does not match installment count")
	}

	sum := decimal.Zero
	for _, d := range details {
		if !d.Amount.IsPositive() {
			return shared.NewDomainError("INVALID_AMOUNT", "Installment amount must be positive")
		}
		if d.DueDate.IsZero() {
			return shared.NewDomainError("INVALID_DUE_DATE", "Installment due date is required")
		}
		sum = sum.Add(d.Amount)
	}

	tolerance := decimal.New(int64(installments), -2) // one cent per installment
	if sum.Sub(total).Abs().GreaterThan(tolerance) {
		return shared.NewDomainError("INVALID_AMOUNT", "Installment amounts do not sum to the sale total")
	}
	return nil
}
