package domain

import "time"

type Category string

const (
	CategoryVeg       Category = "veg"
	CategoryNonVeg    Category = "nonveg"
	CategoryBreads    Category = "breads"
	CategoryRice      Category = "rice"
	CategoryBeverages Category = "beverages"
	CategorySweets    Category = "sweets"
)

var categoryLabels = map[Category]string{
	CategoryVeg:       "Vegetarian",
	CategoryNonVeg:    "Non-Vegetarian",
	CategoryBreads:    "Bread",
	CategoryRice:      "Rice Dish",
	CategoryBeverages: "Beverage",
	CategorySweets:    "Sweet",
}

// Label returns the display name of the category, or the raw value when unknown.
func (c Category) Label() string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return string(c)
}

type OrderType string

const (
	OrderTypeDelivery OrderType = "delivery"
	OrderTypeTakeaway OrderType = "takeaway"
)

func (t OrderType) Valid() bool {
	return t == OrderTypeDelivery || t == OrderTypeTakeaway
}

func (t OrderType) Label() string {
	if t == OrderTypeDelivery {
		return "Delivery"
	}
	return "Takeaway"
}

type PaymentMethod string

const (
	PaymentCash    PaymentMethod = "cash"
	PaymentCard    PaymentMethod = "card"
	PaymentDigital PaymentMethod = "digital"
)

var paymentLabels = map[PaymentMethod]string{
	PaymentCash:    "Cash on Delivery",
	PaymentCard:    "Credit/Debit Card",
	PaymentDigital: "Digital Wallet",
}

func (p PaymentMethod) Valid() bool {
	_, ok := paymentLabels[p]
	return ok
}

func (p PaymentMethod) Label() string {
	if label, ok := paymentLabels[p]; ok {
		return label
	}
	return string(p)
}

// MenuItem is one dish of the catalog shown by the menu browser.
type MenuItem struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description" yaml:"description"`
	Price       float64  `json:"price" yaml:"price"`
	Image       string   `json:"image" yaml:"image"`
	Category    Category `json:"category" yaml:"category"`
}

// CartItem is a line of the cart. At most one CartItem per ID lives in a cart.
type CartItem struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Price    float64  `json:"price"`
	Image    string   `json:"image"`
	Category Category `json:"category"`
	Quantity int      `json:"quantity"`
}

type Customer struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

// OrderRecord is the immutable snapshot appended to the order log on checkout.
type OrderRecord struct {
	OrderNumber  string        `json:"orderNumber"`
	Customer     Customer      `json:"customer"`
	OrderType    OrderType     `json:"orderType"`
	Instructions string        `json:"instructions,omitempty"`
	Payment      PaymentMethod `json:"payment"`
	Items        []CartItem    `json:"items"`
	PromoCode    string        `json:"promoCode,omitempty"`
	Discount     float64       `json:"discount"`
	Subtotal     float64       `json:"subtotal"`
	Tax          float64       `json:"tax"`
	Delivery     float64       `json:"delivery"`
	Total        float64       `json:"total"`
	Timestamp    string        `json:"timestamp"`
}

// OrderEvent is published to the orders topic once an order completes.
type OrderEvent struct {
	Type        string           `json:"type"`
	OrderNumber string           `json:"order_number"`
	ProfileID   string           `json:"profile_id"`
	OrderType   OrderType        `json:"order_type"`
	Payment     PaymentMethod    `json:"payment"`
	Total       float64          `json:"total"`
	Items       []OrderEventItem `json:"items"`
	Timestamp   time.Time        `json:"timestamp"`
}

type OrderEventItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

const OrderPlacedEvent = "order_placed"
