package routes

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/lushka-backend/api/controllers"
	"github.com/angelmondragon/lushka-backend/api/middleware"
	"github.com/angelmondragon/lushka-backend/internal/cart"
	"github.com/angelmondragon/lushka-backend/internal/catalog"
	"github.com/angelmondragon/lushka-backend/internal/checkout"
	"github.com/angelmondragon/lushka-backend/internal/recommendation"
	"github.com/angelmondragon/lushka-backend/pkg/auth"
	"github.com/angelmondragon/lushka-backend/pkg/config"
	"github.com/angelmondragon/lushka-backend/pkg/logger"
	"github.com/angelmondragon/lushka-backend/pkg/metrics"
)

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "dev"},
		Session: config.SessionConfig{
			Secret: "router-secret",
			Issuer: "lushka",
			TTL:    time.Hour,
			Header: "X-Lushka-Session",
		},
		Cart:      config.CartConfig{FreshnessWindow: 24 * time.Hour, KeyPrefix: "lushka_cart"},
		WhatsApp:  config.WhatsAppConfig{BaseURL: "https://wa.me", Phone: "+573143638924", Timezone: "America/Bogota"},
		RateLimit: config.RateLimitConfig{Window: time.Minute, IPLimit: 3},
		CORS:      config.CORSConfig{Origins: []string{"http://localhost:4200"}},
	}
}

func newTestRouter(t *testing.T, cfg *config.Config) http.Handler {
	t.Helper()
	reg := prometheus.NewRegistry()
	m := metrics.NewStorefront(reg)
	c := catalog.Default()

	cartSvc, err := cart.NewService(cart.ServiceParams{
		Catalog:         c,
		Snapshots:       cart.NewMemoryStore(cfg.Cart.KeyPrefix, cfg.Cart.FreshnessWindow),
		FreshnessWindow: cfg.Cart.FreshnessWindow,
		Metrics:         m,
	})
	require.NoError(t, err)

	recSvc, err := recommendation.NewService(recommendation.ServiceParams{
		Catalog:     c,
		Recommender: recommendation.NewEngine(recommendation.NewRules(c), nil, nil, m),
		History:     recommendation.NewMemoryHistory(),
		Cart:        cartSvc,
	})
	require.NoError(t, err)

	checkoutSvc, err := checkout.NewService(checkout.ServiceParams{
		Config:  cfg.WhatsApp,
		Carts:   cartSvc,
		Metrics: m,
	})
	require.NoError(t, err)

	return NewRouter(cfg, logger.Nop(), reg, m, middleware.NewMemoryLimiter(nil), map[string]controllers.Pinger{}, Services{
		Catalog:         c,
		Cart:            cartSvc,
		Recommendations: recSvc,
		Checkout:        checkoutSvc,
	})
}

func request(t *testing.T, h http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rdr)
	req.RemoteAddr = "10.1.1.1:4000"
	if token != "" {
		req.Header.Set("X-Lushka-Session", token)
	}
	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, req)
	return resp
}

func mintSession(t *testing.T, h http.Handler) auth.Session {
	t.Helper()
	resp := request(t, h, http.MethodPost, "/api/v1/sessions", "", "")
	require.Equal(t, http.StatusCreated, resp.Code)
	var env struct {
		Data auth.Session `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return env.Data
}

func TestRouterHealthAndMetrics(t *testing.T) {
	h := newTestRouter(t, testConfig())

	assert.Equal(t, http.StatusOK, request(t, h, http.MethodGet, "/health/live", "", "").Code)
	assert.Equal(t, http.StatusOK, request(t, h, http.MethodGet, "/health/ready", "", "").Code)

	resp := request(t, h, http.MethodGet, "/metrics", "", "")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "lushka_http_request_duration_seconds")
}

func TestRouterPublicCatalog(t *testing.T) {
	h := newTestRouter(t, testConfig())

	assert.Equal(t, http.StatusOK, request(t, h, http.MethodGet, "/api/v1/catalog/categories", "", "").Code)
	assert.Equal(t, http.StatusOK, request(t, h, http.MethodGet, "/api/v1/catalog/products?featured=true", "", "").Code)
	assert.Equal(t, http.StatusOK, request(t, h, http.MethodGet, "/api/v1/catalog/bundles", "", "").Code)
	assert.Equal(t, http.StatusNotFound, request(t, h, http.MethodGet, "/api/v1/catalog/products/nope", "", "").Code)
}

func TestRouterRequiresSession(t *testing.T) {
	h := newTestRouter(t, testConfig())

	for _, path := range []string{"/api/v1/cart", "/api/v1/quiz", "/api/v1/recommendations"} {
		assert.Equal(t, http.StatusUnauthorized, request(t, h, http.MethodGet, path, "", "").Code, path)
		assert.Equal(t, http.StatusUnauthorized, request(t, h, http.MethodGet, path, "garbage", "").Code, path)
	}
}

func TestRouterCartToWhatsAppFlow(t *testing.T) {
	h := newTestRouter(t, testConfig())
	sess := mintSession(t, h)

	resp := request(t, h, http.MethodPost, "/api/v1/cart/items", sess.Token, `{"item_id":"aguacate","quantity":2}`)
	require.Equal(t, http.StatusOK, resp.Code)

	resp = request(t, h, http.MethodGet, "/api/v1/cart", sess.Token, "")
	require.Equal(t, http.StatusOK, resp.Code)
	var cartEnv struct {
		Data struct {
			ItemCount int `json:"item_count"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&cartEnv))
	assert.Equal(t, 2, cartEnv.Data.ItemCount)

	other := mintSession(t, h)
	resp = request(t, h, http.MethodGet, "/api/v1/cart/lookup/aguacate", other.Token, "")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"in_cart":false`, "carts are isolated per session")

	resp = request(t, h, http.MethodPost, "/api/v1/checkout/whatsapp", sess.Token, "")
	require.Equal(t, http.StatusOK, resp.Code)
	var handoff struct {
		Data checkout.Handoff `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&handoff))
	assert.True(t, strings.HasPrefix(handoff.Data.URL, "https://wa.me/+573143638924?text="))
	assert.Contains(t, handoff.Data.Message, "Nuevo Pedido - Lushka")
}

func TestRouterRateLimitsSessions(t *testing.T) {
	cfg := testConfig()
	h := newTestRouter(t, cfg)

	for i := 0; i < cfg.RateLimit.IPLimit; i++ {
		require.Equal(t, http.StatusCreated, request(t, h, http.MethodPost, "/api/v1/sessions", "", "").Code)
	}
	assert.Equal(t, http.StatusTooManyRequests, request(t, h, http.MethodPost, "/api/v1/sessions", "", "").Code)
}
