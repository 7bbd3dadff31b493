package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

type PromoKind string

const (
	PromoPercentOff   PromoKind = "percent_off"
	PromoFixedOff     PromoKind = "fixed_off"
	PromoFreeDelivery PromoKind = "free_delivery"
)

var (
	ErrMissingPromoCode = errors.New("missing code")
	ErrInvalidPromoCode = errors.New("invalid code")
)

type PromoCode struct {
	Code  string
	Kind  PromoKind
	Value decimal.Decimal
}

var promoCodes = map[string]PromoCode{
	"WELCOME10":  {Code: "WELCOME10", Kind: PromoPercentOff, Value: decimal.RequireFromString("0.10")},
	"TASTE15":    {Code: "TASTE15", Kind: PromoPercentOff, Value: decimal.RequireFromString("0.15")},
	"FIRSTORDER": {Code: "FIRSTORDER", Kind: PromoFixedOff, Value: decimal.NewFromInt(50)},
	// Waives the flat delivery fee whatever the order type.
	"FREESHIP": {Code: "FREESHIP", Kind: PromoFreeDelivery, Value: DeliveryFee},
}

type Discount struct {
	Code    string          `json:"code"`
	Kind    PromoKind       `json:"kind"`
	Amount  decimal.Decimal `json:"amount"`
	Message string          `json:"message"`
}

// ApplyPromo resolves a promo code against the current subtotal.
func ApplyPromo(code string, subtotal decimal.Decimal) (Discount, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return Discount{}, ErrMissingPromoCode
	}

	promo, ok := promoCodes[code]
	if !ok {
		return Discount{}, fmt.Errorf("%w: %s", ErrInvalidPromoCode, code)
	}

	discount := Discount{Code: promo.Code, Kind: promo.Kind}
	switch promo.Kind {
	case PromoPercentOff:
		discount.Amount = subtotal.Mul(promo.Value).Round(2)
	default:
		discount.Amount = promo.Value
	}

	if promo.Kind == PromoFreeDelivery {
		discount.Message = "Free delivery applied!"
	} else {
		discount.Message = fmt.Sprintf("Promo code applied! %s discount", FormatMoney(discount.Amount))
	}
	return discount, nil
}
