package router

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aevi-next/internal/config"
	"github.com/aevi-next/internal/models"
	"github.com/aevi-next/internal/provider"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupRouterTest(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	dsn := fmt.Sprintf("file:router_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := models.MigrateAll(db); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	cfg := &config.Config{}
	cfg.Server.Mode = "debug"
	cfg.Auth.SecretKey = "router-test-secret-key-0123456789abcdef"
	cfg.Auth.SessionExpireHours = 24
	cfg.Auth.ResetExpireMinutes = 30
	cfg.Auth.ConfirmExpireHours = 48
	cfg.Session.AuthCookie = "aevi_session"
	cfg.Session.CartCookie = "aevi_cart"

	container := provider.NewContainer(cfg)
	return SetupRouter(cfg, container), db
}

func seedRouterProduct(t *testing.T, db *gorm.DB, name, price string) *models.Product {
	t.Helper()
	product := models.Product{
		Name:    name,
		Price:   models.NewMoneyFromDecimal(decimal.RequireFromString(price)),
		InStock: true,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return &product
}

func extractCookie(t *testing.T, rec *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	res := rec.Result()
	defer res.Body.Close()
	for _, cookie := range res.Cookies() {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}

func TestProductsEndpoint(t *testing.T) {
	r, db := setupRouterTest(t)
	seedRouterProduct(t, db, "Face Oil", "39.99")

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var products []map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &products); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if len(products) != 1 {
		t.Fatalf("expected one product, got %d", len(products))
	}
}

func TestAnonymousCartFlow(t *testing.T) {
	r, db := setupRouterTest(t)
	product := seedRouterProduct(t, db, "Balm", "28.99")

	// First touch mints the cart cookie.
	rec := httptest.NewRecorder()
	body := strings.NewReader(fmt.Sprintf(`{"product_id": %d, "quantity": 2}`, product.ID))
	req := httptest.NewRequest(http.MethodPost, "/api/cart/add", body)
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("add expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	cartCookie := extractCookie(t, rec, "aevi_cart")
	if cartCookie == nil || cartCookie.Value == "" {
		t.Fatalf("cart cookie not set")
	}

	// The same cookie sees the cart back.
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	req.AddCookie(cartCookie)
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("list expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var summary struct {
		Items []struct {
			Quantity int `json:"quantity"`
		} `json:"items"`
		Count int `json:"count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &summary); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if summary.Count != 2 || len(summary.Items) != 1 {
		t.Fatalf("unexpected cart: %s", rec.Body.String())
	}

	// A different visitor sees nothing.
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	r.ServeHTTP(rec, req)
	if err := json.Unmarshal(rec.Body.Bytes(), &summary); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if len(summary.Items) != 0 {
		t.Fatalf("fresh visitor should have an empty cart: %s", rec.Body.String())
	}
}

func TestCartAddUnknownProduct(t *testing.T) {
	r, _ := setupRouterTest(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/cart/add", strings.NewReader(`{"product_id": 777}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "error") {
		t.Fatalf("expected error body, got: %s", rec.Body.String())
	}
}

func TestWishlistRequiresAuth(t *testing.T) {
	r, _ := setupRouterTest(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/wishlist", nil)
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestSignUpSignInAndCartMerge(t *testing.T) {
	r, db := setupRouterTest(t)
	product := seedRouterProduct(t, db, "Serum", "44.99")

	// Anonymous visitor fills a cart.
	rec := httptest.NewRecorder()
	body := strings.NewReader(fmt.Sprintf(`{"product_id": %d, "quantity": 1}`, product.ID))
	req := httptest.NewRequest(http.MethodPost, "/api/cart/add", body)
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("add expected 200, got %d", rec.Code)
	}
	cartCookie := extractCookie(t, rec, "aevi_cart")
	if cartCookie == nil {
		t.Fatalf("cart cookie not set")
	}

	// Sign-up carries the anonymous cart over.
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/signup",
		strings.NewReader(`{"email": "shopper@example.com", "password": "pw-123456"}`))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(cartCookie)
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("signup expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	authCookie := extractCookie(t, rec, "aevi_session")
	if authCookie == nil || authCookie.Value == "" {
		t.Fatalf("auth cookie not set on signup")
	}

	// The signed-in cart holds the merged line, even without the old
	// cart cookie.
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	req.AddCookie(authCookie)
	r.ServeHTTP(rec, req)
	var summary struct {
		Count int `json:"count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &summary); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if summary.Count != 1 {
		t.Fatalf("expected merged cart count 1, got %d: %s", summary.Count, rec.Body.String())
	}

	// Profile is reachable with the cookie.
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/user/profile", nil)
	req.AddCookie(authCookie)
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("profile expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	// Wrong password is a 401.
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/signin",
		strings.NewReader(`{"email": "shopper@example.com", "password": "wrong"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d: %s", rec.Code, rec.Body.String())
	}

	// Duplicate signup is a conflict.
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/signup",
		strings.NewReader(`{"email": "shopper@example.com", "password": "other"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestFormPostRedirects(t *testing.T) {
	r, db := setupRouterTest(t)

	rec := httptest.NewRecorder()
	form := "name=Alex&email=alex%40example.com&message=Hello"
	req := httptest.NewRequest(http.MethodPost, "/submit-contact", strings.NewReader(form))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("form post should redirect, got %d: %s", rec.Code, rec.Body.String())
	}

	// The JSON variant answers in JSON.
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/submit-contact",
		strings.NewReader(`{"name": "Alex", "email": "alex@example.com", "phone": "+4712345678", "message": "Hello"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("json post expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	// Both submissions landed, phone included.
	var lead models.Lead
	if err := db.Where("phone <> ''").First(&lead).Error; err != nil {
		t.Fatalf("lead lookup failed: %v", err)
	}
	if lead.Phone != "+4712345678" {
		t.Fatalf("phone not carried through, got %q", lead.Phone)
	}
}

func TestLogoutRequiresSession(t *testing.T) {
	r, _ := setupRouterTest(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/logout", nil)
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("unauthenticated logout expected 401, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestLogoutClearsSession(t *testing.T) {
	r, _ := setupRouterTest(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/signup",
		strings.NewReader(`{"email": "bye@example.com", "password": "pw-123456"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("signup expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	authCookie := extractCookie(t, rec, "aevi_session")
	if authCookie == nil {
		t.Fatalf("auth cookie not set")
	}

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/logout", nil)
	req.AddCookie(authCookie)
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("logout expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	cleared := extractCookie(t, rec, "aevi_session")
	if cleared == nil || cleared.Value != "" || cleared.MaxAge >= 0 {
		t.Fatalf("logout should expire the session cookie, got %+v", cleared)
	}
}

func TestNewsletterEndpoints(t *testing.T) {
	r, _ := setupRouterTest(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/subscribe-newsletter",
		strings.NewReader(`{"email": "fan@example.com"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("subscribe expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/subscribe-newsletter", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("missing email expected 400, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/newsletter/unsubscribe",
		strings.NewReader(`{"email": "fan@example.com"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("unsubscribe expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}
