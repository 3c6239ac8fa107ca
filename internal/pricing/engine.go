package pricing

import "github.com/shopspring/decimal"

// Result aggregates the computed pricing components for one cart line.
// PaidUnits + FreeUnits always equals AdjustedQty.
type Result struct {
	UnitPrice   decimal.Decimal
	LineTotal   decimal.Decimal
	PaidUnits   int
	FreeUnits   int
	AdjustedQty int
}

var hundred = decimal.NewFromInt(100)

// Compute derives the unit price, line total, and paid/free split for a base
// price, requested quantity, and parsed offer. It is pure and never fails:
// zero or negative inputs degrade to a zeroed result. Monetary values are
// rounded half-up to 2 decimal places at each step so repeated evaluation of
// the same inputs is bit-identical.
func Compute(basePrice decimal.Decimal, quantity int, offer Offer) Result {
	if quantity <= 0 || basePrice.IsNegative() {
		unit := basePrice
		if unit.IsNegative() {
			unit = decimal.Zero
		}
		adjusted := quantity
		if adjusted < 0 {
			adjusted = 0
		}
		return Result{UnitPrice: unit, LineTotal: decimal.Zero, AdjustedQty: adjusted}
	}

	adjusted := AutoAdjustQuantity(quantity, offer)

	switch offer.Kind {
	case OfferPercent:
		factor := decimal.NewFromInt(int64(100 - offer.Percent)).Div(hundred)
		unit := basePrice.Mul(factor).Round(2)
		return Result{
			UnitPrice:   unit,
			LineTotal:   unit.Mul(decimal.NewFromInt(int64(quantity))).Round(2),
			PaidUnits:   quantity,
			AdjustedQty: adjusted,
		}

	case OfferBuyXGetY:
		group := offer.Buy + offer.Free
		if group < 1 {
			group = 1
		}
		q := adjusted
		fullGroups := q / group
		remainder := q - fullGroups*group
		paid := fullGroups*offer.Buy + min(remainder, offer.Buy)
		free := q - paid

		paidTotal := basePrice.Mul(decimal.NewFromInt(int64(paid)))
		divisor := q
		if divisor < 1 {
			divisor = 1
		}
		// Blended per-unit price: unit * q reproduces paid * base. The
		// quotient is rounded once, after the division.
		unit := paidTotal.Div(decimal.NewFromInt(int64(divisor))).Round(2)
		return Result{
			UnitPrice:   unit,
			LineTotal:   paidTotal.Round(2),
			PaidUnits:   paid,
			FreeUnits:   free,
			AdjustedQty: adjusted,
		}

	default:
		return Result{
			UnitPrice:   basePrice,
			LineTotal:   basePrice.Mul(decimal.NewFromInt(int64(quantity))).Round(2),
			PaidUnits:   quantity,
			AdjustedQty: adjusted,
		}
	}
}

// ComputeForDescriptor prices a quantity against a raw offer descriptor. It is
// the standalone entry point used by storefront listings and effective-price
// previews.
func ComputeForDescriptor(basePrice decimal.Decimal, quantity int, descriptor string) Result {
	return Compute(basePrice, quantity, ParseOffer(descriptor))
}
