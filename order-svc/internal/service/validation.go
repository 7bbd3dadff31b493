package service

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"tasterealm/order-svc/internal/domain"
)

const (
	FieldName      = "name"
	FieldPhone     = "phone"
	FieldEmail     = "email"
	FieldAddress   = "address"
	FieldOrderType = "orderType"
	FieldPayment   = "payment"
	FieldTerms     = "terms"

	msgRequired = "This field is required"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	nonDigits    = regexp.MustCompile(`\D`)
)

type CheckoutForm struct {
	Name         string               `json:"name"`
	Phone        string               `json:"phone"`
	Email        string               `json:"email"`
	Address      string               `json:"address"`
	OrderType    domain.OrderType     `json:"orderType"`
	Instructions string               `json:"instructions"`
	Payment      domain.PaymentMethod `json:"payment"`
	AcceptTerms  bool                 `json:"terms"`
}

// FieldErrors maps a form field to the message shown next to it.
type FieldErrors map[string]string

type ValidationError struct {
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	return "please fix the errors in the form before submitting"
}

// ValidateCheckoutForm reports every violated field at once.
func ValidateCheckoutForm(form CheckoutForm) FieldErrors {
	errs := FieldErrors{}

	name := strings.TrimSpace(form.Name)
	switch {
	case name == "":
		errs[FieldName] = msgRequired
	case utf8.RuneCountInString(name) < 2:
		errs[FieldName] = "Name must be at least 2 characters long"
	}

	phone := strings.TrimSpace(form.Phone)
	switch {
	case phone == "":
		errs[FieldPhone] = msgRequired
	case !IsValidIndianPhone(phone):
		errs[FieldPhone] = "Please enter a valid Indian phone number"
	}

	email := strings.TrimSpace(form.Email)
	switch {
	case email == "":
		errs[FieldEmail] = msgRequired
	case !IsValidEmail(email):
		errs[FieldEmail] = "Please enter a valid email address"
	}

	address := strings.TrimSpace(form.Address)
	switch {
	case address == "":
		errs[FieldAddress] = msgRequired
	case utf8.RuneCountInString(address) < 10:
		errs[FieldAddress] = "Please enter a complete address"
	}

	switch {
	case form.OrderType == "":
		errs[FieldOrderType] = msgRequired
	case !form.OrderType.Valid():
		errs[FieldOrderType] = "Please select a valid order type"
	}

	switch {
	case form.Payment == "":
		errs[FieldPayment] = msgRequired
	case !form.Payment.Valid():
		errs[FieldPayment] = "Please select a valid payment method"
	}

	if !form.AcceptTerms {
		errs[FieldTerms] = "You must accept the terms and conditions"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

func NormalizePhone(phone string) string {
	return nonDigits.ReplaceAllString(phone, "")
}

// IsValidIndianPhone accepts 10 digits, or 12 digits with the 91 country code.
func IsValidIndianPhone(phone string) bool {
	digits := NormalizePhone(phone)
	return len(digits) == 10 || (len(digits) == 12 && strings.HasPrefix(digits, "91"))
}

// FormatPhoneNumber renders "98765 43210" or "+91 98765 43210".
func FormatPhoneNumber(phone string) string {
	digits := NormalizePhone(phone)
	switch len(digits) {
	case 10:
		return digits[:5] + " " + digits[5:]
	case 12:
		return "+" + digits[:2] + " " + digits[2:7] + " " + digits[7:]
	default:
		return digits
	}
}
