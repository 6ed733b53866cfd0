package trade

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildInstallmentPlan(t *testing.T) {
	from := time.Date(2025, 8, 15, 0, 0, 0, 0, time.UTC)

	t.Run("splits evenly divisible total", func(t *testing.T) {
		plan, err := BuildInstallmentPlan(decimal.NewFromFloat(300.00), 3, from)

		require.NoError(t, err)
		require.Len(t, plan, 3)
		for _, p := range plan {
			assert.True(t, p.Amount.Equal(decimal.NewFromFloat(100.00)), "amount %s", p.Amount)
		}
		assert.Equal(t, time.Date(2025, 9, 15, 0, 0, 0, 0, time.UTC), plan[0].DueDate)
		assert.Equal(t, time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC), plan[1].DueDate)
		assert.Equal(t, time.Date(2025, 11, 15, 0, 0, 0, 0, time.UTC), plan[2].DueDate)
	})

	t.Run("pushes rounding remainder onto final installment", func(t *testing.T) {
		plan, err := BuildInstallmentPlan(decimal.NewFromFloat(100.00), 3, from)

		require.NoError(t, err)
		require.Len(t, plan, 3)
		assert.True(t, plan[0].Amount.Equal(decimal.NewFromFloat(33.33)))
		assert.True(t, plan[1].Amount.Equal(decimal.NewFromFloat(33.33)))
		assert.True(t, plan[2].Amount.Equal(decimal.NewFromFloat(33.34)))
	})

	t.Run("plan sums exactly to total with every amount positive", func(t *testing.T) {
		totals := []string{"100.00", "99.99", "0.12", "1234.56", "7.77", "0.15"}
		for _, ts := range totals {
			total, err := decimal.NewFromString(ts)
			require.NoError(t, err)
			for n := 1; n <= 12; n++ {
				if total.LessThan(decimal.New(int64(n), -2)) {
					continue
				}
				plan, err := BuildInstallmentPlan(total, n, from)
				require.NoError(t, err)

				sum := decimal.Zero
				for _, p := range plan {
					assert.True(t, p.Amount.GreaterThanOrEqual(decimal.New(1, -2)),
						"total %s over %d installments produced amount %s", total, n, p.Amount)
					sum = sum.Add(p.Amount)
				}
				assert.True(t, sum.Equal(total), "total %s over %d installments summed to %s", total, n, sum)
			}
		}
	})

	t.Run("rejects total below one cent per installment", func(t *testing.T) {
		_, err := BuildInstallmentPlan(decimal.NewFromFloat(0.05), 12, from)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "one cent per installment")
	})

	t.Run("single installment keeps full amount", func(t *testing.T) {
		plan, err := BuildInstallmentPlan(decimal.NewFromFloat(59.90), 1, from)

		require.NoError(t, err)
		require.Len(t, plan, 1)
		assert.True(t, plan[0].Amount.Equal(decimal.NewFromFloat(59.90)))
		assert.Equal(t, from.AddDate(0, 1, 0), plan[0].DueDate)
	})

	t.Run("rejects non-positive total", func(t *testing.T) {
		_, err := BuildInstallmentPlan(decimal.Zero, 3, from)
		assert.Error(t, err)
	})

	t.Run("rejects zero installments", func(t *testing.T) {
		_, err := BuildInstallmentPlan(decimal.NewFromInt(100), 0, from)
		assert.Error(t, err)
	})
}

func TestValidateInstallmentDetails(t *testing.T) {
	from := time.Date(2025, 8, 15, 0, 0, 0, 0, time.UTC)
	total := decimal.NewFromFloat(100.00)

	t.Run("accepts plan generated by BuildInstallmentPlan", func(t *testing.T) {
		plan, err := BuildInstallmentPlan(total, 3, from)
		require.NoError(t, err)

		assert.NoError(t, ValidateInstallmentDetails(plan, 3, total))
	})

	t.Run("accepts sum within one cent per installment", func(t *testing.T) {
		details := []PlannedInstallment{
			{Amount: decimal.NewFromFloat(33.33), DueDate: from},
			{Amount: decimal.NewFromFloat(33.33), DueDate: from},
			{Amount: decimal.NewFromFloat(33.33), DueDate: from},
		}
		assert.NoError(t, ValidateInstallmentDetails(details, 3, total))
	})

	t.Run("rejects length mismatch", func(t *testing.T) {
		plan, err := BuildInstallmentPlan(total, 3, from)
		require.NoError(t, err)

		assert.Error(t, ValidateInstallmentDetails(plan, 4, total))
	})

	t.Run("rejects sum outside tolerance", func(t *testing.T) {
		details := []PlannedInstallment{
			{Amount: decimal.NewFromFloat(30.00), DueDate: from},
			{Amount: decimal.NewFromFloat(30.00), DueDate: from},
			{Amount: decimal.NewFromFloat(30.00), DueDate: from},
		}
		assert.Error(t, ValidateInstallmentDetails(details, 3, total))
	})

	t.Run("rejects non-positive amounts", func(t *testing.T) {
		details := []PlannedInstallment{
			{Amount: decimal.NewFromFloat(100.00), DueDate: from},
			{Amount: decimal.Zero, DueDate: from},
		}
		assert.Error(t, ValidateInstallmentDetails(details, 2, total))
	})
}
