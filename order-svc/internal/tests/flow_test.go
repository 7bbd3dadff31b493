package tests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	httpapi "tasterealm/order-svc/internal/api/http"
	"tasterealm/order-svc/internal/domain"
	"tasterealm/order-svc/internal/service"
	"tasterealm/order-svc/internal/storage"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type flowClient struct {
	t    *testing.T
	base string
}

func (c flowClient) call(method, path string, body interface{}, out interface{}) int {
	c.t.Helper()
	var payload bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&payload).Encode(body))
	}
	req, err := http.NewRequest(method, c.base+path, &payload)
	require.NoError(c.t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(c.t, err)
	defer resp.Body.Close()

	if out != nil && resp.StatusCode < 300 {
		require.NoError(c.t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func newRedisBackedServer(t *testing.T, mr *miniredis.Miniredis) *httptest.Server {
	t.Helper()
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	menu, err := storage.ParseYAMLMenu([]byte(`
items:
  - id: butter-chicken
    name: Butter Chicken
    price: 329
    image: assests/menu/butter-chicken.jpg
    category: nonveg
  - id: gulab-jamun
    name: Gulab Jamun
    price: 89
    category: sweets
`))
	require.NoError(t, err)

	profiles := storage.NewProfileStorage(storage.NewRedisStore(client, 0))
	sessions := service.NewSessionManager(func(profileID string) (service.CartStore, service.OrderLog) {
		return profiles.Cart(profileID), profiles.Orders(profileID)
	}, service.CheckoutOptions{ProcessingDelay: time.Millisecond}, service.DefaultSessionIdleTTL)
	t.Cleanup(sessions.Close)

	handler := httpapi.NewHandler(
		service.NewMenuService(menu),
		sessions,
		service.NewAuthService(0),
		service.DefaultQRGenerator{BaseURL: "http://localhost"},
	)
	server := httptest.NewServer(httpapi.NewRouter(handler))
	t.Cleanup(server.Close)
	return server
}

func TestOrderFlow_RedisBacked(t *testing.T) {
	mr := miniredis.RunT(t)
	client := flowClient{t: t, base: newRedisBackedServer(t, mr).URL}

	var profile map[string]string
	require.Equal(t, http.StatusCreated, client.call("POST", "/api/profiles", nil, &profile))
	id := profile["profile_id"]

	var menu []domain.MenuItem
	require.Equal(t, http.StatusOK, client.call("GET", "/api/menu?category=sweets", nil, &menu))
	require.Len(t, menu, 1)

	for _, itemID := range []string{"butter-chicken", "gulab-jamun", "butter-chicken"} {
		require.Equal(t, http.StatusCreated, client.call("POST", "/api/profiles/"+id+"/cart/items", map[string]string{"id": itemID}, nil))
	}

	stored, err := mr.Get("profile:" + id + ":cart")
	require.NoError(t, err)
	assert.Contains(t, stored, `"quantity":2`)

	var checkout struct {
		Totals service.QuoteView `json:"totals"`
	}
	require.Equal(t, http.StatusOK, client.call("POST", "/api/profiles/"+id+"/checkout/promo", map[string]string{"code": "TASTE15"}, &checkout))
	assert.Equal(t, 747.0, checkout.Totals.Subtotal)
	assert.Equal(t, 0.0, checkout.Totals.Delivery)
	assert.Equal(t, 112.05, checkout.Totals.Discount)
	assert.Equal(t, 672.3, checkout.Totals.Total)

	var confirmation service.Confirmation
	require.Equal(t, http.StatusCreated, client.call("POST", "/api/profiles/"+id+"/checkout/submit", validForm(), &confirmation))
	assert.Regexp(t, orderNumberPattern, confirmation.OrderNumber)
	assert.Equal(t, "₹672.30", confirmation.TotalDisplay)

	stored, err = mr.Get("profile:" + id + ":cart")
	require.NoError(t, err)
	assert.Equal(t, "[]", stored)

	var orders []domain.OrderRecord
	require.Equal(t, http.StatusOK, client.call("GET", "/api/profiles/"+id+"/orders", nil, &orders))
	require.Len(t, orders, 1)
	assert.Equal(t, "TASTE15", orders[0].PromoCode)
	assert.Len(t, orders[0].Items, 2)

	resp, err := http.Get(client.base + "/api/profiles/" + id + "/orders/" + confirmation.OrderNumber + "/qrcode")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))

	restarted := flowClient{t: t, base: newRedisBackedServer(t, mr).URL}
	orders = nil
	require.Equal(t, http.StatusOK, restarted.call("GET", "/api/profiles/"+id+"/orders", nil, &orders))
	assert.Len(t, orders, 1)
}

func TestOrderFlow_CorruptCartStartsEmpty(t *testing.T) {
	const corruptProfile = "5c2e8f1a-3b4d-4e6f-a7b8-9c0d1e2f3a4b"
	mr := miniredis.RunT(t)
	require.NoError(t, mr.Set("profile:"+corruptProfile+":cart", "{{{"))
	client := flowClient{t: t, base: newRedisBackedServer(t, mr).URL}

	require.Equal(t, http.StatusBadRequest, client.call("GET", "/api/profiles/not-a-uuid/cart", nil, nil))

	var page service.CartPageView
	require.Equal(t, http.StatusOK, client.call("GET", "/api/profiles/"+corruptProfile+"/cart", nil, &page))
	assert.True(t, page.Empty)

	require.Equal(t, http.StatusCreated, client.call("POST", "/api/profiles/"+corruptProfile+"/cart/items", map[string]string{"id": "gulab-jamun"}, nil))
	stored, err := mr.Get("profile:"+corruptProfile+":cart")
	require.NoError(t, err)
	assert.Contains(t, stored, "gulab-jamun")
}
