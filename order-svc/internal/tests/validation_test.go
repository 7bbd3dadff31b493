package tests

import (
	"tasterealm/order-svc/internal/domain"
	"tasterealm/order-svc/internal/service"
	"testing"

	"github.com/stretchr/testify/assert"
)

func validForm() service.CheckoutForm {
	return service.CheckoutForm{
		Name:        "Asha Rao",
		Phone:       "98765 43210",
		Email:       "asha@example.com",
		Address:     "12 MG Road, Bengaluru",
		OrderType:   domain.OrderTypeDelivery,
		Payment:     domain.PaymentCash,
		AcceptTerms: true,
	}
}

func TestValidateCheckoutForm(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(*service.CheckoutForm)
		wantFields []string
	}{
		{
			name:   "valid form",
			mutate: func(f *service.CheckoutForm) {},
		},
		{
			name:       "nine digit phone",
			mutate:     func(f *service.CheckoutForm) { f.Phone = "987654321" },
			wantFields: []string{service.FieldPhone},
		},
		{
			name:   "ten digit phone with punctuation",
			mutate: func(f *service.CheckoutForm) { f.Phone = "(987) 654-3210" },
		},
		{
			name:   "twelve digit phone with country code",
			mutate: func(f *service.CheckoutForm) { f.Phone = "+91 98765 43210" },
		},
		{
			name:       "twelve digit phone with other country code",
			mutate:     func(f *service.CheckoutForm) { f.Phone = "449876543210" },
			wantFields: []string{service.FieldPhone},
		},
		{
			name:       "bad email",
			mutate:     func(f *service.CheckoutForm) { f.Email = "asha@example" },
			wantFields: []string{service.FieldEmail},
		},
		{
			name:       "short name",
			mutate:     func(f *service.CheckoutForm) { f.Name = " A " },
			wantFields: []string{service.FieldName},
		},
		{
			name:       "short address",
			mutate:     func(f *service.CheckoutForm) { f.Address = "MG Road" },
			wantFields: []string{service.FieldAddress},
		},
		{
			name:       "unknown payment",
			mutate:     func(f *service.CheckoutForm) { f.Payment = "cheque" },
			wantFields: []string{service.FieldPayment},
		},
		{
			name:       "terms not accepted",
			mutate:     func(f *service.CheckoutForm) { f.AcceptTerms = false },
			wantFields: []string{service.FieldTerms},
		},
		{
			name: "every violation reported at once",
			mutate: func(f *service.CheckoutForm) {
				*f = service.CheckoutForm{}
			},
			wantFields: []string{
				service.FieldName, service.FieldPhone, service.FieldEmail, service.FieldAddress,
				service.FieldOrderType, service.FieldPayment, service.FieldTerms,
			},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			form := validForm()
			testCase.mutate(&form)

			errs := service.ValidateCheckoutForm(form)

			if len(testCase.wantFields) == 0 {
				assert.Nil(t, errs)
				return
			}
			assert.Len(t, errs, len(testCase.wantFields))
			for _, field := range testCase.wantFields {
				assert.Contains(t, errs, field)
			}
		})
	}
}

func TestValidateCheckoutForm_RequiredMessages(t *testing.T) {
	errs := service.ValidateCheckoutForm(service.CheckoutForm{})

	assert.Equal(t, "This field is required", errs[service.FieldName])
	assert.Equal(t, "This field is required", errs[service.FieldPhone])
	assert.Equal(t, "You must accept the terms and conditions", errs[service.FieldTerms])
}

func TestFormatPhoneNumber(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "9876543210", want: "98765 43210"},
		{input: "+91-98765-43210", want: "+91 98765 43210"},
		{input: "12345", want: "12345"},
	}

	for _, testCase := range tests {
		t.Run(testCase.input, func(t *testing.T) {
			assert.Equal(t, testCase.want, service.FormatPhoneNumber(testCase.input))
		})
	}
}

func TestIsValidEmail(t *testing.T) {
	assert.True(t, service.IsValidEmail("a@b.co"))
	assert.False(t, service.IsValidEmail("a b@c.in"))
	assert.False(t, service.IsValidEmail("@c.in"))
	assert.False(t, service.IsValidEmail("plain"))
}
