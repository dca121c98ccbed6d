package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/foodtruckos/backend/config"
	"github.com/foodtruckos/backend/models"
	"github.com/foodtruckos/backend/router"
	"github.com/foodtruckos/backend/services"
	"github.com/foodtruckos/backend/utils"
)

type stubProvider struct {
	sessionID string
}

func (p *stubProvider) CreateCheckoutSession(params services.CheckoutParams) (*services.CheckoutSession, error) {
	return &services.CheckoutSession{
		SessionID: p.sessionID,
		URL:       "https://checkout.example.com/" + p.sessionID,
	}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		Port:                "8080",
		StripeSecretKey:     "sk_test_dummy",
		StripeWebhookSecret: "whsec_test_secret",
		Currency:            "usd",
		JWTSecret:           "test-jwt-secret",
	}
}

func setupApp(t *testing.T) (*gorm.DB, *gin.Engine) {
	t.Helper()
	utils.InitLogger()
	gin.SetMode(gin.TestMode)

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:ctl_%s?mode=memory&cache=shared", name)), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, config.AutoMigrate(db))

	r := router.SetupRouter(db, testConfig(), &stubProvider{sessionID: "cs_test_1"})
	return db, r
}

func seedTenantWithMenu(t *testing.T, db *gorm.DB, slug string) (*models.Tenant, *models.MenuItem) {
	t.Helper()
	tenant := &models.Tenant{Name: slug, Slug: slug, IsActive: true}
	require.NoError(t, db.Create(tenant).Error)

	item := &models.MenuItem{
		TenantID:    tenant.ID,
		Name:        "Yak Burger",
		Price:       decimal.RequireFromString("8.99"),
		IsAvailable: true,
	}
	require.NoError(t, db.Create(item).Error)

	group := &models.ModifierGroup{TenantID: tenant.ID, MenuItemID: item.ID, Name: "Extras"}
	require.NoError(t, db.Create(group).Error)
	option := &models.ModifierOption{
		TenantID:        tenant.ID,
		ModifierGroupID: group.ID,
		Name:            "Cheese",
		PriceModifier:   decimal.RequireFromString("1.00"),
	}
	require.NoError(t, db.Create(option).Error)

	return tenant, item
}

func doJSON(r *gin.Engine, method, path, tenantSlug string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if tenantSlug != "" {
		req.Header.Set("X-Tenant-Slug", tenantSlug)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateAndGetOrderEndpoint(t *testing.T) {
	db, r := setupApp(t)
	_, item := seedTenantWithMenu(t, db, "everest")

	payload := map[string]interface{}{
		"customer_name": "Tenzing",
		"items": []map[string]interface{}{
			{
				"menu_item_id": item.ID,
				"quantity":     2,
				"modifiers": []map[string]string{
					{"modifier_group_name": "Extras", "modifier_option_name": "Cheese"},
				},
			},
		},
	}

	w := doJSON(r, http.MethodPost, "/api/orders", "everest", payload, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Data struct {
			ID          string `json:"id"`
			Status      string `json:"status"`
			TotalAmount string `json:"total_amount"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "NEW", resp.Data.Status)
	assert.Equal(t, "19.98", resp.Data.TotalAmount)

	w = doJSON(r, http.MethodGet, "/api/orders/"+resp.Data.ID, "everest", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCreateOrderUnknownItemEndpoint(t *testing.T) {
	db, r := setupApp(t)
	seedTenantWithMenu(t, db, "everest")

	payload := map[string]interface{}{
		"items": []map[string]interface{}{
			{"menu_item_id": "00000000-0000-0000-0000-000000000000", "quantity": 1},
		},
	}
	w := doJSON(r, http.MethodPost, "/api/orders", "everest", payload, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetOrderCrossTenantEndpoint(t *testing.T) {
	db, r := setupApp(t)
	_, item := seedTenantWithMenu(t, db, "everest")
	seedTenantWithMenu(t, db, "k2")

	payload := map[string]interface{}{
		"items": []map[string]interface{}{
			{"menu_item_id": item.ID, "quantity": 1},
		},
	}
	w := doJSON(r, http.MethodPost, "/api/orders", "everest", payload, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	w = doJSON(r, http.MethodGet, "/api/orders/"+resp.Data.ID, "k2", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUnknownTenantEndpoint(t *testing.T) {
	_, r := setupApp(t)

	w := doJSON(r, http.MethodGet, "/api/menu", "nope", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(r, http.MethodGet, "/api/menu", "", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCheckoutEndpoint(t *testing.T) {
	db, r := setupApp(t)
	_, item := seedTenantWithMenu(t, db, "everest")

	create := map[string]interface{}{
		"items": []map[string]interface{}{
			{"menu_item_id": item.ID, "quantity": 1},
		},
	}
	w := doJSON(r, http.MethodPost, "/api/orders", "everest", create, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var orderResp struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &orderResp))

	checkout := map[string]string{
		"order_id":    orderResp.Data.ID,
		"success_url": "https://truck.test/ok",
		"cancel_url":  "https://truck.test/cancel",
	}
	w = doJSON(r, http.MethodPost, "/api/checkout", "everest", checkout, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var checkoutResp struct {
		Data struct {
			CheckoutURL string `json:"checkout_url"`
			SessionID   string `json:"session_id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &checkoutResp))
	assert.Equal(t, "cs_test_1", checkoutResp.Data.SessionID)
	assert.NotEmpty(t, checkoutResp.Data.CheckoutURL)
}

func TestVolumeMetricsEndpoint(t *testing.T) {
	db, r := setupApp(t)
	seedTenantWithMenu(t, db, "everest")

	w := doJSON(r, http.MethodGet, "/api/metrics/volume", "everest", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			LoadState string `json:"load_state"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "LOW", resp.Data.LoadState)
}

func TestAdminAuthFlow(t *testing.T) {
	db, r := setupApp(t)
	tenant, _ := seedTenantWithMenu(t, db, "everest")

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.DefaultCost)
	require.NoError(t, err)
	user := &models.User{TenantID: tenant.ID, Email: "admin@everest.test", PasswordHash: string(hash)}
	require.NoError(t, db.Create(user).Error)

	// No token.
	w := doJSON(r, http.MethodGet, "/api/admin/orders", "everest", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Bad password.
	w = doJSON(r, http.MethodPost, "/api/admin/auth/login", "everest",
		map[string]string{"email": "admin@everest.test", "password": "wrong"}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Good login.
	w = doJSON(r, http.MethodPost, "/api/admin/auth/login", "everest",
		map[string]string{"email": "admin@everest.test", "password": "hunter2"}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var loginResp struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &loginResp))
	require.NotEmpty(t, loginResp.Data.Token)

	auth := map[string]string{"Authorization": "Bearer " + loginResp.Data.Token}
	w = doJSON(r, http.MethodGet, "/api/admin/orders", "everest", nil, auth)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodGet, "/api/admin/overview", "everest", nil, auth)
	assert.Equal(t, http.StatusOK, w.Code)

	// The token is pinned to its tenant.
	seedTenantWithMenu(t, db, "k2")
	w = doJSON(r, http.MethodGet, "/api/admin/orders", "k2", nil, auth)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminUpdateOrderStatusEndpoint(t *testing.T) {
	db, r := setupApp(t)
	tenant, item := seedTenantWithMenu(t, db, "everest")

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.DefaultCost)
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.User{
		TenantID: tenant.ID, Email: "admin@everest.test", PasswordHash: string(hash),
	}).Error)

	w := doJSON(r, http.MethodPost, "/api/orders", "everest", map[string]interface{}{
		"items": []map[string]interface{}{{"menu_item_id": item.ID, "quantity": 1}},
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	var orderResp struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &orderResp))

	w = doJSON(r, http.MethodPost, "/api/admin/auth/login", "everest",
		map[string]string{"email": "admin@everest.test", "password": "hunter2"}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var loginResp struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &loginResp))
	auth := map[string]string{"Authorization": "Bearer " + loginResp.Data.Token}

	w = doJSON(r, http.MethodPatch, "/api/admin/orders/"+orderResp.Data.ID+"/status", "everest",
		map[string]string{"status": "ACCEPTED"}, auth)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(r, http.MethodPatch, "/api/admin/orders/"+orderResp.Data.ID+"/status", "everest",
		map[string]string{"status": "LOST"}, auth)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWebhookEndpointRequiresSignature(t *testing.T) {
	_, r := setupApp(t)

	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/stripe",
		bytes.NewBufferString(`{"type":"checkout.session.completed"}`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/webhooks/stripe",
		bytes.NewBufferString(`{"type":"checkout.session.completed"}`))
	req.Header.Set("Stripe-Signature", "t=1,v1=deadbeef")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
