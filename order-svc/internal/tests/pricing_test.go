package tests

import (
	"tasterealm/order-svc/internal/domain"
	"tasterealm/order-svc/internal/service"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestApplyPromo(t *testing.T) {
	tests := []struct {
		name        string
		code        string
		subtotal    string
		wantKind    service.PromoKind
		wantAmount  string
		wantMessage string
		wantErr     error
	}{
		{
			name:        "WELCOME10 on 1000",
			code:        "WELCOME10",
			subtotal:    "1000",
			wantKind:    service.PromoPercentOff,
			wantAmount:  "100",
			wantMessage: "Promo code applied! ₹100.00 discount",
		},
		{
			name:        "TASTE15 rounds to paise",
			code:        "TASTE15",
			subtotal:    "333.33",
			wantKind:    service.PromoPercentOff,
			wantAmount:  "50",
			wantMessage: "Promo code applied! ₹50.00 discount",
		},
		{
			name:       "FIRSTORDER is flat",
			code:       "FIRSTORDER",
			subtotal:   "20",
			wantKind:   service.PromoFixedOff,
			wantAmount: "50",
		},
		{
			name:       "FIRSTORDER on a large order",
			code:       "FIRSTORDER",
			subtotal:   "5000",
			wantKind:   service.PromoFixedOff,
			wantAmount: "50",
		},
		{
			name:        "FREESHIP",
			code:        "FREESHIP",
			subtotal:    "200",
			wantKind:    service.PromoFreeDelivery,
			wantAmount:  "40",
			wantMessage: "Free delivery applied!",
		},
		{
			name:       "case and whitespace insensitive",
			code:       "  welcome10 ",
			subtotal:   "250",
			wantKind:   service.PromoPercentOff,
			wantAmount: "25",
		},
		{
			name:     "unknown code",
			code:     "XYZ",
			subtotal: "1000",
			wantErr:  service.ErrInvalidPromoCode,
		},
		{
			name:     "empty code",
			code:     "   ",
			subtotal: "1000",
			wantErr:  service.ErrMissingPromoCode,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			discount, err := service.ApplyPromo(testCase.code, dec(testCase.subtotal))

			if testCase.wantErr != nil {
				assert.ErrorIs(t, err, testCase.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testCase.wantKind, discount.Kind)
			assert.True(t, dec(testCase.wantAmount).Equal(discount.Amount), "amount %s", discount.Amount)
			if testCase.wantMessage != "" {
				assert.Equal(t, testCase.wantMessage, discount.Message)
			}
		})
	}
}

func TestDeliveryFor(t *testing.T) {
	tests := []struct {
		name      string
		subtotal  string
		orderType domain.OrderType
		want      string
	}{
		{name: "takeaway small", subtotal: "100", orderType: domain.OrderTypeTakeaway, want: "0"},
		{name: "takeaway large", subtotal: "900", orderType: domain.OrderTypeTakeaway, want: "0"},
		{name: "delivery below threshold", subtotal: "499.99", orderType: domain.OrderTypeDelivery, want: "40"},
		{name: "delivery at threshold", subtotal: "500", orderType: domain.OrderTypeDelivery, want: "40"},
		{name: "delivery above threshold", subtotal: "500.01", orderType: domain.OrderTypeDelivery, want: "0"},
		{name: "delivery empty cart", subtotal: "0", orderType: domain.OrderTypeDelivery, want: "40"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			got := service.DeliveryFor(dec(testCase.subtotal), testCase.orderType)
			assert.True(t, dec(testCase.want).Equal(got), "delivery %s", got)
		})
	}
}

func TestPrice(t *testing.T) {
	tests := []struct {
		name      string
		subtotal  string
		orderType domain.OrderType
		discount  string
		want      service.Quote
	}{
		{
			name:      "delivery with fee",
			subtotal:  "300",
			orderType: domain.OrderTypeDelivery,
			discount:  "0",
			want:      service.Quote{Subtotal: dec("300"), Tax: dec("15"), Delivery: dec("40"), Discount: dec("0"), Total: dec("355")},
		},
		{
			name:      "free delivery over threshold with percent promo",
			subtotal:  "1000",
			orderType: domain.OrderTypeDelivery,
			discount:  "100",
			want:      service.Quote{Subtotal: dec("1000"), Tax: dec("50"), Delivery: dec("0"), Discount: dec("100"), Total: dec("950")},
		},
		{
			name:      "tax rounded to two places",
			subtotal:  "99.5",
			orderType: domain.OrderTypeTakeaway,
			discount:  "0",
			want:      service.Quote{Subtotal: dec("99.5"), Tax: dec("4.98"), Delivery: dec("0"), Discount: dec("0"), Total: dec("104.48")},
		},
		{
			name:      "discount larger than gross is capped",
			subtotal:  "20",
			orderType: domain.OrderTypeTakeaway,
			discount:  "50",
			want:      service.Quote{Subtotal: dec("20"), Tax: dec("1"), Delivery: dec("0"), Discount: dec("21"), Total: dec("0")},
		},
		{
			name:      "negative discount ignored",
			subtotal:  "100",
			orderType: domain.OrderTypeTakeaway,
			discount:  "-10",
			want:      service.Quote{Subtotal: dec("100"), Tax: dec("5"), Delivery: dec("0"), Discount: dec("0"), Total: dec("105")},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			got := service.Price(dec(testCase.subtotal), testCase.orderType, dec(testCase.discount))

			assert.True(t, testCase.want.Subtotal.Equal(got.Subtotal), "subtotal %s", got.Subtotal)
			assert.True(t, testCase.want.Tax.Equal(got.Tax), "tax %s", got.Tax)
			assert.True(t, testCase.want.Delivery.Equal(got.Delivery), "delivery %s", got.Delivery)
			assert.True(t, testCase.want.Discount.Equal(got.Discount), "discount %s", got.Discount)
			assert.True(t, testCase.want.Total.Equal(got.Total), "total %s", got.Total)
			assert.False(t, got.Total.IsNegative())
		})
	}
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "₹355.00", service.FormatMoney(dec("355")))
	assert.Equal(t, "₹4.98", service.FormatMoney(dec("4.975").Round(2)))
	assert.Equal(t, "FREE", service.FormatDelivery(decimal.Zero))
	assert.Equal(t, "₹40.00", service.FormatDelivery(service.DeliveryFee))
}
