// Package pricing implements the order pricing pipeline: a fixed, ordered
// set of discount rules applied to a cart subtotal. Every rule after the
// first operates on the already-discounted running total, so percentage
// discounts compound multiplicatively; the shipping fee is the only
// additive step. All arithmetic is exact decimal; callers convert to float
// only at the storage boundary.
package pricing

import "github.com/shopspring/decimal"

// Rule constants. These are business constants, not tunables.
const (
	// BirthdayDiscountPercent applies when the order month matches the
	// user's birth month.
	BirthdayDiscountPercent = 5
	// RoleDiscountPercent applies to ambassadors, coordinators and admins.
	RoleDiscountPercent = 20
	// FirstOrderDiscountPercent applies to a user's very first order.
	FirstOrderDiscountPercent = 20
	// ShippingFeeThreshold is the total under which shipping is charged.
	ShippingFeeThreshold = 500
	// ShippingFee is the flat surcharge added below the threshold.
	ShippingFee = 5
	// LowStockThreshold is the stock level below which an operational
	// alert is raised after a decrement.
	LowStockThreshold = 5
	// CoordinatorSpendThreshold is the done-order spend an ambassador needs
	// before applying for the coordinator role.
	CoordinatorSpendThreshold = 5000
	// GroupRewardDiscountPercent is the balance credited to each ambassador
	// of the monthly top selling group.
	GroupRewardDiscountPercent = 10
)

// CoinRate is the share of the final payment total credited back as coins.
var CoinRate = decimal.NewFromFloat(0.10)

// Context carries the user flags the pipeline branches on.
type Context struct {
	// GroupDiscountPercent is the user's group-competition balance.
	// Consumed in full when > 0; never partially drawn down.
	GroupDiscountPercent decimal.Decimal
	// Birthday is true when the order month matches the birth month.
	Birthday bool
	// RoleDiscount is true for ambassador and above.
	RoleDiscount bool
	// FirstOrder is true when the user has no prior orders.
	FirstOrder bool
}

// Quote is the priced result of running the pipeline.
type Quote struct {
	Subtotal decimal.Decimal
	// Total is the final payable amount, clamped to a minimum of zero.
	Total decimal.Decimal
	// DiscountApplied is the cumulative percentage points applied across
	// all discount steps (a percentage sum, not a currency amount).
	DiscountApplied decimal.Decimal
	// CoinsEarned is the loyalty credit for this order.
	CoinsEarned decimal.Decimal
	// GroupDiscountConsumed is true when a group balance was spent and
	// must be zeroed on the user.
	GroupDiscountConsumed bool
}

// Step is one pricing rule: given the running total and the context it
// returns the new running total and the percentage points it applied.
// Steps are pure; they never touch stores.
type Step struct {
	Name  string
	Apply func(running decimal.Decimal, ctx Context) (next decimal.Decimal, percent decimal.Decimal)
}

var hundred = decimal.NewFromInt(100)

// applyPercent reduces running by p percent.
func applyPercent(running, p decimal.Decimal) decimal.Decimal {
	return running.Mul(hundred.Sub(p)).Div(hundred)
}

// Pipeline returns the pricing steps in their mandatory order.
func Pipeline() []Step {
	return []Step{
		{
			Name: "group-discount",
			Apply: func(running decimal.Decimal, ctx Context) (decimal.Decimal, decimal.Decimal) {
				if ctx.GroupDiscountPercent.IsPositive() {
					return applyPercent(running, ctx.GroupDiscountPercent), ctx.GroupDiscountPercent
				}

				return running, decimal.Zero
			},
		},
		{
			Name: "birthday-discount",
			Apply: func(running decimal.Decimal, ctx Context) (decimal.Decimal, decimal.Decimal) {
				if ctx.Birthday {
					p := decimal.NewFromInt(BirthdayDiscountPercent)

					return applyPercent(running, p), p
				}

				return running, decimal.Zero
			},
		},
		{
			Name: "role-discount",
			Apply: func(running decimal.Decimal, ctx Context) (decimal.Decimal, decimal.Decimal) {
				if ctx.RoleDiscount {
					p := decimal.NewFromInt(RoleDiscountPercent)

					return applyPercent(running, p), p
				}

				return running, decimal.Zero
			},
		},
		{
			Name: "first-order-discount",
			Apply: func(running decimal.Decimal, ctx Context) (decimal.Decimal, decimal.Decimal) {
				if ctx.FirstOrder {
					p := decimal.NewFromInt(FirstOrderDiscountPercent)

					return applyPercent(running, p), p
				}

				return running, decimal.Zero
			},
		},
		{
			// Shipping is additive and judged on the exact running total,
			// before any rounding.
			Name: "shipping-fee",
			Apply: func(running decimal.Decimal, _ Context) (decimal.Decimal, decimal.Decimal) {
				if running.LessThan(decimal.NewFromInt(ShippingFeeThreshold)) {
					return running.Add(decimal.NewFromInt(ShippingFee)), decimal.Zero
				}

				return running, decimal.Zero
			},
		},
		{
			Name: "floor",
			Apply: func(running decimal.Decimal, _ Context) (decimal.Decimal, decimal.Decimal) {
				if running.IsNegative() {
					return decimal.Zero, decimal.Zero
				}

				return running, decimal.Zero
			},
		},
	}
}

// Price runs the full pipeline over the subtotal.
func Price(subtotal decimal.Decimal, ctx Context) Quote {
	running := subtotal
	discount := decimal.Zero

	for _, step := range Pipeline() {
		var applied decimal.Decimal
		running, applied = step.Apply(running, ctx)
		discount = discount.Add(applied)
	}

	return Quote{
		Subtotal:              subtotal,
		Total:                 running,
		DiscountApplied:       discount,
		CoinsEarned:           running.Mul(CoinRate),
		GroupDiscountConsumed: ctx.GroupDiscountPercent.IsPositive(),
	}
}
