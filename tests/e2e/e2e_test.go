//go:build integration

package e2e

// End-to-end integration tests using real Postgres + Redis via testcontainers.
// Run with: go test -tags integration ./tests/e2e/... -v

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"parfumpos/internal/config"
	"parfumpos/internal/infra"
	"parfumpos/internal/model"
	"parfumpos/internal/router"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
	"golang.org/x/crypto/bcrypt"
)

// ── Helpers ──────────────────────────────────────────────────────────────────

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func do(t *testing.T, srv *httptest.Server, method, path string, body *bytes.Buffer, token string) *http.Response {
	t.Helper()
	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequest(method, srv.URL+path, body)
	} else {
		req, err = http.NewRequest(method, srv.URL+path, nil)
	}
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

// mutation mirrors the {success, message, data} envelope of write endpoints.
type mutation struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decodeMutation(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	var m mutation
	decodeJSON(t, resp, &m)
	require.True(t, m.Success)
	require.NoError(t, json.Unmarshal(m.Data, dest))
}

// ── Test Suite Setup ─────────────────────────────────────────────────────────

type testEnv struct {
	server *httptest.Server
	token  string // admin JWT
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcPostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcPostgres.WithDatabase("parfumpos_test"),
		tcPostgres.WithUsername("parfumpos"),
		tcPostgres.WithPassword("parfumpos"),
		tcPostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	pgURL, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	rdC, err := tcRedis.RunContainer(ctx,
		testcontainers.WithImage("redis:7-alpine"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdC.Terminate(ctx) })

	rdURL, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)

	cfg := &config.Config{
		Port:               8000,
		Env:                "test",
		JWTSecret:          "test-secret-key",
		JWTExpirationHours: 8,
		JWTRefreshHours:    24,
		DatabaseURL:        pgURL,
		RedisURL:           rdURL,
		WorkerPoolSize:     1,
		PDFStoragePath:     t.TempDir(),
		StoreName:          "ParfumPOS E2E",
		LowStockLimit:      5,
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	require.NoError(t, err)
	require.NoError(t, infra.RunMigrations(db))

	rdb, err := infra.NewRedis(cfg.RedisURL)
	require.NoError(t, err)

	// Seed admin user
	hash, err := bcrypt.GenerateFromPassword([]byte("admin-e2e-pass"), 12)
	require.NoError(t, err)
	require.NoError(t, db.Create(&model.User{
		Username:     "admin-e2e",
		Name:         "Admin E2E",
		PasswordHash: string(hash),
		Role:         "admin",
		Active:       true,
	}).Error)

	smtpCB := infra.NewBreaker(5, time.Minute)
	r := router.New(cfg, db, rdb, smtpCB)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	loginResp := do(t, srv, "POST", "/v1/auth/login",
		jsonBody(t, map[string]string{"username": "admin-e2e", "password": "admin-e2e-pass"}),
		"",
	)
	require.Equal(t, http.StatusOK, loginResp.StatusCode)
	var loginBody struct {
		AccessToken string `json:"access_token"`
	}
	decodeJSON(t, loginResp, &loginBody)
	require.NotEmpty(t, loginBody.AccessToken)

	return &testEnv{server: srv, token: loginBody.AccessToken}
}

type productData struct {
	ID       string `json:"id"`
	Variants []struct {
		ID    string `json:"id"`
		Stock int    `json:"stock"`
	} `json:"variants"`
}

func createProduct(t *testing.T, env *testEnv, name, code string, price float64, stock int) productData {
	t.Helper()
	resp := do(t, env.server, "POST", "/v1/products",
		jsonBody(t, map[string]any{
			"name": name,
			"variants": []map[string]any{
				{"name": "50ml", "product_code": code, "stock": stock, "price": price, "unit_code": "ml"},
			},
		}),
		env.token,
	)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var p productData
	decodeMutation(t, resp, &p)
	require.Len(t, p.Variants, 1)
	return p
}

func variantStock(t *testing.T, env *testEnv, productID string) int {
	t.Helper()
	resp := do(t, env.server, "GET", "/v1/products/"+productID, nil, env.token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var p productData
	decodeJSON(t, resp, &p)
	require.Len(t, p.Variants, 1)
	return p.Variants[0].Stock
}

// ── Tests ────────────────────────────────────────────────────────────────────

// Full checkout cycle: create product → hold cart → pay cash → stock deducted.
func TestE2E_FullCheckoutCycle(t *testing.T) {
	env := setupTestEnv(t)

	p := createProduct(t, env, "Musk EDP", "MUSK-50", 120000, 20)

	pendingResp := do(t, env.server, "POST", "/v1/checkout/transactions",
		jsonBody(t, map[string]any{
			"items": []map[string]any{
				{"item_id": p.Variants[0].ID, "qty": 3},
			},
		}),
		env.token,
	)
	require.Equal(t, http.StatusCreated, pendingResp.StatusCode)
	var pending struct {
		ID     string `json:"id"`
		Number int    `json:"number"`
		Status string `json:"status"`
	}
	decodeMutation(t, pendingResp, &pending)
	assert.Equal(t, "pending", pending.Status)
	assert.Equal(t, 1, pending.Number)

	payResp := do(t, env.server, "POST", "/v1/checkout/transactions/"+pending.ID+"/pay",
		jsonBody(t, map[string]any{"method": "cash", "tendered": "400000"}),
		env.token,
	)
	require.Equal(t, http.StatusOK, payResp.StatusCode)
	var paid struct {
		Status string `json:"status"`
		Total  string `json:"total"`
		Change string `json:"change"`
	}
	decodeMutation(t, payResp, &paid)
	assert.Equal(t, "paid", paid.Status)
	assert.Equal(t, "360000", paid.Total)
	assert.Equal(t, "40000", paid.Change)

	assert.Equal(t, 17, variantStock(t, env, p.ID))
}

// Voiding a paid transaction restores the stock it deducted.
func TestE2E_VoidRestoresStock(t *testing.T) {
	env := setupTestEnv(t)

	p := createProduct(t, env, "Oud EDP", "OUD-50", 150000, 10)

	pendingResp := do(t, env.server, "POST", "/v1/checkout/transactions",
		jsonBody(t, map[string]any{
			"items": []map[string]any{{"item_id": p.Variants[0].ID, "qty": 4}},
		}),
		env.token,
	)
	require.Equal(t, http.StatusCreated, pendingResp.StatusCode)
	var pending struct {
		ID string `json:"id"`
	}
	decodeMutation(t, pendingResp, &pending)

	payResp := do(t, env.server, "POST", "/v1/checkout/transactions/"+pending.ID+"/pay",
		jsonBody(t, map[string]any{"method": "transfer"}),
		env.token,
	)
	require.Equal(t, http.StatusOK, payResp.StatusCode)
	require.Equal(t, 6, variantStock(t, env, p.ID))

	voidResp := do(t, env.server, "DELETE", "/v1/checkout/transactions/"+pending.ID, nil, env.token)
	require.Equal(t, http.StatusOK, voidResp.StatusCode)

	assert.Equal(t, 10, variantStock(t, env, p.ID))
}

// A percent discount reduces the settled total.
func TestE2E_PercentDiscountApplied(t *testing.T) {
	env := setupTestEnv(t)

	p := createProduct(t, env, "Rose EDP", "ROSE-50", 100000, 10)

	discResp := do(t, env.server, "POST", "/v1/discounts",
		jsonBody(t, map[string]any{"name": "Grand Opening", "type": "percent", "value": "25"}),
		env.token,
	)
	require.Equal(t, http.StatusCreated, discResp.StatusCode)
	var disc struct {
		ID string `json:"id"`
	}
	decodeMutation(t, discResp, &disc)

	pendingResp := do(t, env.server, "POST", "/v1/checkout/transactions",
		jsonBody(t, map[string]any{
			"items": []map[string]any{{"item_id": p.Variants[0].ID, "qty": 2}},
		}),
		env.token,
	)
	require.Equal(t, http.StatusCreated, pendingResp.StatusCode)
	var pending struct {
		ID string `json:"id"`
	}
	decodeMutation(t, pendingResp, &pending)

	payResp := do(t, env.server, "POST", "/v1/checkout/transactions/"+pending.ID+"/pay",
		jsonBody(t, map[string]any{"method": "qris", "discount_id": disc.ID}),
		env.token,
	)
	require.Equal(t, http.StatusOK, payResp.StatusCode)
	var paid struct {
		DiscountTotal string `json:"discount_total"`
		Total         string `json:"total"`
	}
	decodeMutation(t, payResp, &paid)
	assert.Equal(t, "50000", paid.DiscountTotal)
	assert.Equal(t, "150000", paid.Total)
}

// Blend production consumes material stock and credits the result variant.
func TestE2E_BlendProduction(t *testing.T) {
	env := setupTestEnv(t)

	mat := createProduct(t, env, "Alcohol Base", "BASE-1L", 50000, 100)
	result := createProduct(t, env, "Citrus EDP", "CITRUS-50", 90000, 0)

	blendResp := do(t, env.server, "POST", "/v1/blends",
		jsonBody(t, map[string]any{
			"name":              "Citrus Batch 1",
			"result_variant_id": result.Variants[0].ID,
			"quantity":          10,
			"materials": []map[string]any{
				{"product_detail_id": mat.Variants[0].ID, "used_stock": 5},
			},
		}),
		env.token,
	)
	require.Equal(t, http.StatusCreated, blendResp.StatusCode)

	assert.Equal(t, 95, variantStock(t, env, mat.ID))
	assert.Equal(t, 10, variantStock(t, env, result.ID))
}

// Checkout search finds the created variant.
func TestE2E_CheckoutSearch(t *testing.T) {
	env := setupTestEnv(t)

	createProduct(t, env, "Vanilla EDP", "VAN-50", 110000, 8)

	resp := do(t, env.server, "GET", "/v1/checkout/search?q=vanilla", nil, env.token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var result struct {
		Data []struct {
			Name  string `json:"name"`
			Stock int    `json:"stock"`
		} `json:"data"`
	}
	decodeJSON(t, resp, &result)
	require.Len(t, result.Data, 1)
	assert.Equal(t, 8, result.Data[0].Stock)
}
