package service

import (
	"tasterealm/order-svc/internal/domain"

	"github.com/shopspring/decimal"
)

const CurrencySymbol = "₹"

var (
	TaxRate               = decimal.RequireFromString("0.05")
	DeliveryFee           = decimal.NewFromInt(40)
	FreeDeliveryThreshold = decimal.NewFromInt(500)
)

type Quote struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Delivery decimal.Decimal
	Discount decimal.Decimal
	Total    decimal.Decimal
}

// DeliveryFor is free for takeaway and for subtotals over the threshold.
func DeliveryFor(subtotal decimal.Decimal, orderType domain.OrderType) decimal.Decimal {
	if orderType == domain.OrderTypeTakeaway || subtotal.GreaterThan(FreeDeliveryThreshold) {
		return decimal.Zero
	}
	return DeliveryFee
}

// Price derives the order totals. The discount is capped at the gross amount so the
// total never drops below zero.
func Price(subtotal decimal.Decimal, orderType domain.OrderType, discount decimal.Decimal) Quote {
	tax := subtotal.Mul(TaxRate).Round(2)
	delivery := DeliveryFor(subtotal, orderType)
	gross := subtotal.Add(tax).Add(delivery)

	if discount.IsNegative() {
		discount = decimal.Zero
	}
	if discount.GreaterThan(gross) {
		discount = gross
	}

	return Quote{
		Subtotal: subtotal.Round(2),
		Tax:      tax,
		Delivery: delivery,
		Discount: discount,
		Total:    gross.Sub(discount).Round(2),
	}
}

func FormatMoney(amount decimal.Decimal) string {
	return CurrencySymbol + amount.StringFixed(2)
}

func FormatDelivery(fee decimal.Decimal) string {
	if fee.IsZero() {
		return "FREE"
	}
	return FormatMoney(fee)
}
