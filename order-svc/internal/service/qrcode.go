package service

import (
	"fmt"
	"net/url"

	"github.com/skip2/go-qrcode"
)

type QRGenerator interface {
	Generate(orderNumber string) ([]byte, error)
}

type DefaultQRGenerator struct {
	BaseURL string
}

// Generate encodes a link to the order confirmation page as a 256px PNG.
func (g DefaultQRGenerator) Generate(orderNumber string) ([]byte, error) {
	qrData := fmt.Sprintf("%s/order.html?order=%s", g.BaseURL, url.QueryEscape(orderNumber))
	return qrcode.Encode(qrData, qrcode.Medium, 256)
}
