package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"velora_back_end/internal/cart"
	"velora_back_end/internal/kvstore"
	"velora_back_end/internal/session"
)

const validCheckout = `{
	"shipping": {
		"firstName": "Jane", "lastName": "Doe", "email": "jane@example.com",
		"address": "1 rue de la Paix", "city": "Paris", "zipCode": "75001"
	}
}`

// testApp câble les handlers sur des stores mémoire, avec une session fixe
// injectée à la place du middleware cookie.
type testApp struct {
	router *gin.Engine
	sess   *session.Session
	eng    *cart.Engine
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	Init(kvstore.NewMemory())

	sessionStore := kvstore.NewMemory()
	sess := session.New("test-session", sessionStore)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("session", sess)
		c.Next()
	})
	r.POST("/api/checkout", PlaceOrder)
	r.POST("/api/checkout/promo", ApplyPromoCode)
	r.GET("/api/checkout/totals", GetCheckoutTotals)

	return &testApp{router: r, sess: sess, eng: cart.NewEngine(sessionStore)}
}

func (a *testApp) fillCart(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	products, err := Catalog.Products(ctx)
	require.NoError(t, err)
	_, err = a.eng.AddItem(ctx, products[0])
	require.NoError(t, err)
}

func (a *testApp) postJSON(path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	a.router.ServeHTTP(w, req)
	return w
}

func stubRelay(t *testing.T, status int) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
	}))
	t.Cleanup(srv.Close)
	t.Setenv("MAILER_URL", srv.URL)
}

func TestPlaceOrderHappyPath(t *testing.T) {
	stubRelay(t, http.StatusOK)
	app := newTestApp(t)
	app.fillCart(t)

	w := app.postJSON("/api/checkout", validCheckout)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		EmailSent bool `json:"email_sent"`
		Order     struct {
			ID     string `json:"id"`
			Status string `json:"status"`
		} `json:"order"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.EmailSent)
	assert.True(t, strings.HasPrefix(resp.Order.ID, "ORD-"))
	assert.Equal(t, "Processing", resp.Order.Status)

	// le panier est vidé après placement
	c, err := app.eng.Get(context.Background())
	require.NoError(t, err)
	assert.Empty(t, c.Items)
}

func TestPlaceOrderValidationAbortsWithoutMutation(t *testing.T) {
	stubRelay(t, http.StatusOK)
	app := newTestApp(t)
	app.fillCart(t)

	w := app.postJSON("/api/checkout", `{"shipping":{"firstName":"Jane"}}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// échec précoce : le panier n'est pas touché, aucune commande créée
	c, err := app.eng.Get(context.Background())
	require.NoError(t, err)
	assert.Len(t, c.Items, 1)

	all, err := Orders.All(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	stubRelay(t, http.StatusOK)
	app := newTestApp(t)

	w := app.postJSON("/api/checkout", validCheckout)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPlaceOrderInvalidPromo(t *testing.T) {
	stubRelay(t, http.StatusOK)
	app := newTestApp(t)
	app.fillCart(t)

	w := app.postJSON("/api/checkout", `{
		"shipping": {
			"firstName": "Jane", "lastName": "Doe", "email": "jane@example.com",
			"address": "1 rue de la Paix", "city": "Paris", "zipCode": "75001"
		},
		"promoCode": "NOPE"
	}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPlaceOrderEmailFailureStillCommits(t *testing.T) {
	// le relais répond 500 : la commande reste commise, avec avertissement
	stubRelay(t, http.StatusInternalServerError)
	app := newTestApp(t)
	app.fillCart(t)

	w := app.postJSON("/api/checkout", validCheckout)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		EmailSent bool   `json:"email_sent"`
		Warning   string `json:"warning"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.EmailSent)
	assert.NotEmpty(t, resp.Warning)

	all, err := Orders.All(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestPlaceOrderGuestAccountCreation(t *testing.T) {
	stubRelay(t, http.StatusOK)
	app := newTestApp(t)
	app.fillCart(t)

	w := app.postJSON("/api/checkout", `{
		"shipping": {
			"firstName": "Jane", "lastName": "Doe", "email": "jane@example.com",
			"address": "1 rue de la Paix", "city": "Paris", "zipCode": "75001"
		},
		"createAccount": {"name": "Jane Doe", "password": "secret"}
	}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		AccountCreated bool `json:"account_created"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.AccountCreated)

	// le compte est actif et porte la commande
	ctx := context.Background()
	user, err := app.sess.CurrentUser(ctx)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "jane@example.com", user.Email)
	assert.Len(t, user.Orders, 1)
}

func TestApplyPromoCode(t *testing.T) {
	stubRelay(t, http.StatusOK)
	app := newTestApp(t)

	w := app.postJSON("/api/checkout/promo", `{"code":"save10"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "10")

	w = app.postJSON("/api/checkout/promo", `{"code":"NOPE"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetCheckoutTotals(t *testing.T) {
	stubRelay(t, http.StatusOK)
	app := newTestApp(t)
	app.fillCart(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/checkout/totals?promo=SAVE10", nil)
	app.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var totals struct {
		Subtotal      float64 `json:"subtotal"`
		PromoDiscount float64 `json:"promoDiscount"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &totals))
	assert.InDelta(t, 299.99, totals.Subtotal, 0.001)
	assert.InDelta(t, 29.999, totals.PromoDiscount, 0.001)
}
