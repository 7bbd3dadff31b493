package httpapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"tasterealm/order-svc/internal/domain"
	"tasterealm/order-svc/internal/service"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type Handler struct {
	Menu     service.MenuServiceInterface
	Sessions service.SessionProvider
	Auth     service.AuthServiceInterface
	QR       service.QRGenerator
}

func NewHandler(menu service.MenuServiceInterface, sessions service.SessionProvider, auth service.AuthServiceInterface, qr service.QRGenerator) *Handler {
	return &Handler{
		Menu:     menu,
		Sessions: sessions,
		Auth:     auth,
		QR:       qr,
	}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	r.HandleFunc("/api/profiles", h.createProfile).Methods("POST")

	r.HandleFunc("/api/menu", h.getMenu).Methods("GET")
	r.HandleFunc("/api/menu/{itemId}", h.getMenuItem).Methods("GET")

	r.HandleFunc("/api/profiles/{profileId}/cart", h.getCart).Methods("GET")
	r.HandleFunc("/api/profiles/{profileId}/cart/items", h.addCartItem).Methods("POST")
	r.HandleFunc("/api/profiles/{profileId}/cart/items/{itemId}", h.updateCartItem).Methods("PUT")
	r.HandleFunc("/api/profiles/{profileId}/cart/items/{itemId}", h.removeCartItem).Methods("DELETE")

	r.HandleFunc("/api/profiles/{profileId}/checkout", h.getCheckout).Methods("GET")
	r.HandleFunc("/api/profiles/{profileId}/checkout/order-type", h.setOrderType).Methods("PUT")
	r.HandleFunc("/api/profiles/{profileId}/checkout/promo", h.applyPromo).Methods("POST")
	r.HandleFunc("/api/profiles/{profileId}/checkout/submit", h.submitOrder).Methods("POST")

	r.HandleFunc("/api/profiles/{profileId}/orders", h.getOrders).Methods("GET")
	r.HandleFunc("/api/profiles/{profileId}/orders/{orderNumber}", h.getOrder).Methods("GET")
	r.HandleFunc("/api/profiles/{profileId}/orders/{orderNumber}/qrcode", h.getOrderQRCode).Methods("GET")

	r.HandleFunc("/api/auth/login", h.login).Methods("POST")
	r.HandleFunc("/api/auth/signup", h.signup).Methods("POST")
	r.HandleFunc("/api/auth/password-strength", h.passwordStrength).Methods("POST")
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "order-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) createProfile(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusCreated, map[string]string{"profile_id": uuid.NewString()})
}

func (h *Handler) getMenu(w http.ResponseWriter, r *http.Request) {
	items, err := h.Menu.List(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *Handler) getMenuItem(w http.ResponseWriter, r *http.Request) {
	item, err := h.Menu.Get(r.Context(), mux.Vars(r)["itemId"])
	if errors.Is(err, domain.ErrMenuItemNotFound) {
		http.Error(w, "Menu item not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *Handler) session(w http.ResponseWriter, r *http.Request) (*service.Session, bool) {
	profileID := mux.Vars(r)["profileId"]
	if _, err := uuid.Parse(profileID); err != nil {
		http.Error(w, "Invalid profile id", http.StatusBadRequest)
		return nil, false
	}

	session, err := h.Sessions.Session(r.Context(), profileID)
	if err != nil {
		log.Printf("[order-svc] session error: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return nil, false
	}
	return session, true
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, session.View.Current())
}

// addCartItem accepts a full cart record, or just {"id": ...} which is resolved
// against the menu (add from the preview modal).
func (h *Handler) addCartItem(w http.ResponseWriter, r *http.Request) {
	var item domain.CartItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		http.Error(w, "Invalid JSON format: "+err.Error(), http.StatusBadRequest)
		return
	}
	if item.ID == "" {
		http.Error(w, "Item id is required", http.StatusBadRequest)
		return
	}

	if item.Name == "" {
		menuItem, err := h.Menu.Get(r.Context(), item.ID)
		if errors.Is(err, domain.ErrMenuItemNotFound) {
			http.Error(w, "Menu item not found", http.StatusNotFound)
			return
		}
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		item = service.CartItemFromMenu(*menuItem)
	}

	session, ok := h.session(w, r)
	if !ok {
		return
	}
	if err := session.Cart.AddItem(r.Context(), item); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": item.Name + " added to cart!",
		"cart":    session.View.Current(),
	})
}

func (h *Handler) updateCartItem(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Quantity *int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Quantity == nil {
		http.Error(w, "Quantity is required", http.StatusBadRequest)
		return
	}

	session, ok := h.session(w, r)
	if !ok {
		return
	}
	if err := session.Cart.UpdateQuantity(r.Context(), mux.Vars(r)["itemId"], *payload.Quantity); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, session.View.Current())
}

func (h *Handler) removeCartItem(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	if err := session.Cart.RemoveItem(r.Context(), mux.Vars(r)["itemId"]); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, session.View.Current())
}

type checkoutResponse struct {
	State       service.CheckoutState `json:"state"`
	OrderType   domain.OrderType      `json:"orderType"`
	Items       int                   `json:"items"`
	Promo       *service.Discount     `json:"promo,omitempty"`
	PromoLocked bool                  `json:"promoLocked"`
	Errors      service.FieldErrors   `json:"errors,omitempty"`
	Totals      service.QuoteView     `json:"totals"`
}

func checkoutState(session *service.Session) checkoutResponse {
	promo := session.Checkout.Promo()
	return checkoutResponse{
		State:       session.Checkout.State(),
		OrderType:   session.Checkout.OrderType(),
		Items:       session.Cart.TotalItems(),
		Promo:       promo,
		PromoLocked: promo != nil,
		Errors:      session.Checkout.Errors(),
		Totals:      service.NewQuoteView(session.Checkout.Quote()),
	}
}

func (h *Handler) getCheckout(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, checkoutState(session))
}

func (h *Handler) setOrderType(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		OrderType domain.OrderType `json:"orderType"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid JSON format: "+err.Error(), http.StatusBadRequest)
		return
	}

	session, ok := h.session(w, r)
	if !ok {
		return
	}
	if _, err := session.Checkout.SetOrderType(payload.OrderType); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, checkoutState(session))
}

func (h *Handler) applyPromo(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid JSON format: "+err.Error(), http.StatusBadRequest)
		return
	}

	session, ok := h.session(w, r)
	if !ok {
		return
	}
	if _, err := session.Checkout.ApplyPromoOnce(payload.Code); err != nil {
		switch {
		case errors.Is(err, service.ErrPromoLocked):
			http.Error(w, err.Error(), http.StatusConflict)
		case errors.Is(err, service.ErrMissingPromoCode):
			http.Error(w, "Please enter a promo code", http.StatusBadRequest)
		case errors.Is(err, service.ErrInvalidPromoCode):
			http.Error(w, "Invalid promo code", http.StatusBadRequest)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}
	writeJSON(w, http.StatusOK, checkoutState(session))
}

func (h *Handler) submitOrder(w http.ResponseWriter, r *http.Request) {
	var form service.CheckoutForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		http.Error(w, "Invalid JSON format: "+err.Error(), http.StatusBadRequest)
		return
	}

	session, ok := h.session(w, r)
	if !ok {
		return
	}

	confirmation, err := session.Checkout.Submit(r.Context(), form)
	if err != nil {
		var validationErr *service.ValidationError
		switch {
		case errors.As(err, &validationErr):
			writeJSON(w, http.StatusBadRequest, map[string]interface{}{
				"error":  validationErr.Error(),
				"fields": validationErr.Fields,
			})
		case errors.Is(err, service.ErrEmptyCart):
			writeJSON(w, http.StatusUnprocessableEntity, map[string]string{
				"error":    err.Error(),
				"redirect": "menu.html",
			})
		case errors.Is(err, service.ErrSubmissionInFlight):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			log.Printf("[order-svc] submit failed for profile %s: %v", session.ProfileID, err)
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	confirmationResponse := struct {
		service.Confirmation
		QRCode string `json:"qrCode"`
	}{
		Confirmation: confirmation,
		QRCode:       "/api/profiles/" + session.ProfileID + "/orders/" + confirmation.OrderNumber + "/qrcode",
	}
	writeJSON(w, http.StatusCreated, confirmationResponse)
}

func (h *Handler) getOrders(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	orders, err := session.Orders(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	order, err := session.Order(r.Context(), mux.Vars(r)["orderNumber"])
	if errors.Is(err, domain.ErrOrderNotFound) {
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) getOrderQRCode(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	order, err := session.Order(r.Context(), mux.Vars(r)["orderNumber"])
	if errors.Is(err, domain.ErrOrderNotFound) {
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	qr, err := h.QR.Generate(order.OrderNumber)
	if err != nil {
		http.Error(w, "Failed to generate QR code", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	w.Write(qr)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req service.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON format: "+err.Error(), http.StatusBadRequest)
		return
	}
	result, err := h.Auth.Login(r.Context(), req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	var req service.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON format: "+err.Error(), http.StatusBadRequest)
		return
	}
	result, err := h.Auth.Signup(r.Context(), req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

func (h *Handler) passwordStrength(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid JSON format: "+err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, service.PasswordStrength(payload.Password))
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
