package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}

	return d
}

func TestPrice_BirthdayFirstOrderWithShipping(t *testing.T) {
	// 600 * 0.95 * 0.80 = 456; 456 < 500 so shipping applies: 461.
	quote := Price(dec("600"), Context{
		Birthday:   true,
		FirstOrder: true,
	})

	assert.True(t, dec("461").Equal(quote.Total), "total = %s", quote.Total)
	assert.True(t, dec("25").Equal(quote.DiscountApplied), "discount = %s", quote.DiscountApplied)
	assert.True(t, dec("46.1").Equal(quote.CoinsEarned), "coins = %s", quote.CoinsEarned)
	assert.False(t, quote.GroupDiscountConsumed)
}

func TestPrice_NoFlagsAboveThreshold(t *testing.T) {
	quote := Price(dec("600"), Context{})

	assert.True(t, dec("600").Equal(quote.Total))
	assert.True(t, quote.DiscountApplied.IsZero())
	assert.True(t, dec("60").Equal(quote.CoinsEarned))
}

func TestPrice_NoFlagsBelowThreshold(t *testing.T) {
	quote := Price(dec("100"), Context{})

	assert.True(t, dec("105").Equal(quote.Total))
	assert.True(t, quote.DiscountApplied.IsZero())
}

func TestPrice_GroupDiscountConsumedInFull(t *testing.T) {
	quote := Price(dec("1000"), Context{
		GroupDiscountPercent: dec("10"),
	})

	assert.True(t, dec("900").Equal(quote.Total))
	assert.True(t, dec("10").Equal(quote.DiscountApplied))
	assert.True(t, quote.GroupDiscountConsumed)
}

func TestPrice_DiscountsCompoundMultiplicatively(t *testing.T) {
	// 1000 * 0.90 * 0.95 * 0.80 * 0.80 = 547.2, not 1000 * (1-0.45).
	quote := Price(dec("1000"), Context{
		GroupDiscountPercent: dec("10"),
		Birthday:             true,
		RoleDiscount:         true,
		FirstOrder:           true,
	})

	assert.True(t, dec("547.2").Equal(quote.Total), "total = %s", quote.Total)
	assert.True(t, dec("45").Equal(quote.DiscountApplied))
}

func TestPrice_ShippingJudgedOnDiscountedTotal(t *testing.T) {
	// 520 * 0.95 = 494 < 500: shipping applies even though the subtotal
	// was above the threshold.
	quote := Price(dec("520"), Context{Birthday: true})

	assert.True(t, dec("499").Equal(quote.Total), "total = %s", quote.Total)
}

func TestPrice_TotalNeverNegative(t *testing.T) {
	quote := Price(dec("0"), Context{
		GroupDiscountPercent: dec("100"),
		Birthday:             true,
		RoleDiscount:         true,
		FirstOrder:           true,
	})

	require.False(t, quote.Total.IsNegative())
	// 0 stays 0 through every percentage step, then shipping lifts it to 5.
	assert.True(t, dec("5").Equal(quote.Total))
}

func TestPipeline_OrderIsFixed(t *testing.T) {
	names := make([]string, 0)
	for _, step := range Pipeline() {
		names = append(names, step.Name)
	}

	assert.Equal(t, []string{
		"group-discount",
		"birthday-discount",
		"role-discount",
		"first-order-discount",
		"shipping-fee",
		"floor",
	}, names)
}

func TestApplyPercent_FullConsumptionZeroesTotal(t *testing.T) {
	quote := Price(dec("400"), Context{GroupDiscountPercent: dec("100")})

	// 100% group discount leaves 0, then the shipping fee applies.
	assert.True(t, dec("5").Equal(quote.Total))
	assert.True(t, dec("100").Equal(quote.DiscountApplied))
}
