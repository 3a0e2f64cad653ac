//go:build integration

package e2e

// End-to-end integration tests using real Postgres + Redis via testcontainers.
// Run with: go test -tags integration ./tests/e2e/... -v
//
// Covered flows:
//   - Full table service cycle: seat → order lines → bill → settle → report
//   - Double-seating the same table is refused with 409
//   - Cancelling an order frees the table and keeps it out of reports
//   - Public menu endpoint works without a token and reflects catalog writes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"dinepos/internal/config"
	"dinepos/internal/infra"
	"dinepos/internal/model"
	"dinepos/internal/router"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
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

// ── Test Suite Setup ─────────────────────────────────────────────────────────

type testEnv struct {
	server *httptest.Server
	db     *gorm.DB
	token  string // admin JWT
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcPostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcPostgres.WithDatabase("dinepos_test"),
		tcPostgres.WithUsername("dinepos"),
		tcPostgres.WithPassword("dinepos"),
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
		RestaurantName:     "DinePOS E2E",
		Currency:           "$",
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	require.NoError(t, err)

	rdb, err := infra.NewRedis(cfg.RedisURL)
	require.NoError(t, err)

	// Seed admin operator
	hash, err := bcrypt.GenerateFromPassword([]byte("e2e-pass"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, db.Create(&model.User{
		Username:     "admin@e2e.test",
		Name:         "Admin E2E",
		PasswordHash: string(hash),
		Role:         model.RoleAdmin,
		Active:       true,
	}).Error)

	srv := httptest.NewServer(router.New(cfg, db, rdb))
	t.Cleanup(srv.Close)

	loginResp := do(t, srv, "POST", "/v1/auth/login",
		jsonBody(t, map[string]string{"username": "admin@e2e.test", "password": "e2e-pass"}),
		"",
	)
	require.Equal(t, http.StatusOK, loginResp.StatusCode)
	var loginBody struct {
		AccessToken string `json:"access_token"`
	}
	decodeJSON(t, loginResp, &loginBody)
	require.NotEmpty(t, loginBody.AccessToken)

	return &testEnv{server: srv, db: db, token: loginBody.AccessToken}
}

func (env *testEnv) seedTable(t *testing.T, number int) string {
	t.Helper()
	table := model.DiningTable{Number: number, Status: model.TableFree}
	require.NoError(t, env.db.Create(&table).Error)
	return table.ID.String()
}

// createProduct provisions a category+product pair through the API and
// returns the product id.
func (env *testEnv) createProduct(t *testing.T, category, name, price string) string {
	t.Helper()

	catResp := do(t, env.server, "POST", "/v1/categories",
		jsonBody(t, map[string]any{"name": category}), env.token)
	var cat struct {
		ID     string `json:"id"`
		Detail string `json:"detail"`
	}
	if catResp.StatusCode == http.StatusCreated {
		decodeJSON(t, catResp, &cat)
	} else {
		// Category may already exist from an earlier call in the same test.
		catResp.Body.Close()
		listResp := do(t, env.server, "GET", "/v1/categories", nil, env.token)
		var cats []struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		}
		decodeJSON(t, listResp, &cats)
		for _, c := range cats {
			if c.Name == category {
				cat.ID = c.ID
			}
		}
	}
	require.NotEmpty(t, cat.ID)

	prodResp := do(t, env.server, "POST", "/v1/products",
		jsonBody(t, map[string]any{
			"name":        name,
			"category_id": cat.ID,
			"unit_price":  price,
		}), env.token)
	require.Equal(t, http.StatusCreated, prodResp.StatusCode)
	var prod struct {
		ID string `json:"id"`
	}
	decodeJSON(t, prodResp, &prod)
	return prod.ID
}

type orderJSON struct {
	ID            string `json:"id"`
	Status        string `json:"status"`
	PaymentStatus string `json:"payment_status"`
	Total         string `json:"total"`
	TableNumber   int    `json:"table_number"`
	Lines         []struct {
		ID        string `json:"id"`
		Product   string `json:"product"`
		Quantity  int    `json:"quantity"`
		LineTotal string `json:"line_total"`
	} `json:"lines"`
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestE2E_FullServiceCycle(t *testing.T) {
	env := setupTestEnv(t)

	teaID := env.createProduct(t, "Beverages", "Tea", "5.00")
	coffeeID := env.createProduct(t, "Beverages", "Coffee", "8.00")
	tableID := env.seedTable(t, 3)

	// Seat the party
	createResp := do(t, env.server, "POST", "/v1/orders",
		jsonBody(t, map[string]string{"table_id": tableID}), env.token)
	require.Equal(t, http.StatusCreated, createResp.StatusCode)
	var order orderJSON
	decodeJSON(t, createResp, &order)
	assert.Equal(t, "active", order.Status)
	assert.Equal(t, "0", order.Total)

	// Seating the same table again is refused
	dupResp := do(t, env.server, "POST", "/v1/orders",
		jsonBody(t, map[string]string{"table_id": tableID}), env.token)
	assert.Equal(t, http.StatusConflict, dupResp.StatusCode)
	dupResp.Body.Close()

	// 3×Tea, 1×Coffee → 23
	lineResp := do(t, env.server, "POST", "/v1/orders/"+order.ID+"/lines",
		jsonBody(t, map[string]any{"product_id": teaID, "quantity": 3}), env.token)
	require.Equal(t, http.StatusOK, lineResp.StatusCode)
	decodeJSON(t, lineResp, &order)
	assert.Equal(t, "15", order.Total)

	lineResp = do(t, env.server, "POST", "/v1/orders/"+order.ID+"/lines",
		jsonBody(t, map[string]any{"product_id": coffeeID, "quantity": 1}), env.token)
	require.Equal(t, http.StatusOK, lineResp.StatusCode)
	decodeJSON(t, lineResp, &order)
	assert.Equal(t, "23", order.Total)
	assert.Len(t, order.Lines, 2)

	// Catalog price edits never change the open order
	// (snapshot taken at line insert).
	upResp := do(t, env.server, "PUT", "/v1/products/"+teaID,
		jsonBody(t, map[string]any{"unit_price": "99.00"}), env.token)
	require.Equal(t, http.StatusOK, upResp.StatusCode)
	upResp.Body.Close()

	getResp := do(t, env.server, "GET", "/v1/orders/"+order.ID, nil, env.token)
	require.Equal(t, http.StatusOK, getResp.StatusCode)
	decodeJSON(t, getResp, &order)
	assert.Equal(t, "23", order.Total)

	// Bill renders before payment
	billResp := do(t, env.server, "GET", "/v1/orders/"+order.ID+"/bill", nil, env.token)
	require.Equal(t, http.StatusOK, billResp.StatusCode)
	billResp.Body.Close()

	// Underpayment refused with 402
	shortResp := do(t, env.server, "POST", "/v1/orders/"+order.ID+"/settle",
		jsonBody(t, map[string]any{"tender": "cash", "amount_tendered": "20.00"}), env.token)
	assert.Equal(t, http.StatusPaymentRequired, shortResp.StatusCode)
	shortResp.Body.Close()

	// Settle with change
	settleResp := do(t, env.server, "POST", "/v1/orders/"+order.ID+"/settle",
		jsonBody(t, map[string]any{"tender": "cash", "amount_tendered": "25.00"}), env.token)
	require.Equal(t, http.StatusOK, settleResp.StatusCode)
	var settlement struct {
		Total  string `json:"total"`
		Change string `json:"change"`
	}
	decodeJSON(t, settleResp, &settlement)
	assert.Equal(t, "23", settlement.Total)
	assert.Equal(t, "2", settlement.Change)

	// Table is free again; settling twice is refused
	var table model.DiningTable
	require.NoError(t, env.db.First(&table, "number = ?", 3).Error)
	assert.Equal(t, model.TableFree, table.Status)

	againResp := do(t, env.server, "POST", "/v1/orders/"+order.ID+"/settle",
		jsonBody(t, map[string]any{"tender": "cash", "amount_tendered": "23.00"}), env.token)
	assert.Equal(t, http.StatusConflict, againResp.StatusCode)
	againResp.Body.Close()

	// Daily report shows exactly this order
	reportResp := do(t, env.server, "GET", "/v1/reports/daily", nil, env.token)
	require.Equal(t, http.StatusOK, reportResp.StatusCode)
	var report struct {
		OrderCount int    `json:"order_count"`
		TotalSales string `json:"total_sales"`
	}
	decodeJSON(t, reportResp, &report)
	assert.Equal(t, 1, report.OrderCount)
	assert.Equal(t, "23", report.TotalSales)
}

func TestE2E_CancelKeepsReportsClean(t *testing.T) {
	env := setupTestEnv(t)

	teaID := env.createProduct(t, "Beverages", "Tea", "5.00")
	tableID := env.seedTable(t, 1)

	createResp := do(t, env.server, "POST", "/v1/orders",
		jsonBody(t, map[string]string{"table_id": tableID}), env.token)
	require.Equal(t, http.StatusCreated, createResp.StatusCode)
	var order orderJSON
	decodeJSON(t, createResp, &order)

	lineResp := do(t, env.server, "POST", "/v1/orders/"+order.ID+"/lines",
		jsonBody(t, map[string]any{"product_id": teaID, "quantity": 2}), env.token)
	require.Equal(t, http.StatusOK, lineResp.StatusCode)
	lineResp.Body.Close()

	cancelResp := do(t, env.server, "DELETE", "/v1/orders/"+order.ID, nil, env.token)
	require.Equal(t, http.StatusNoContent, cancelResp.StatusCode)
	cancelResp.Body.Close()

	// Table is free and can be seated again immediately
	reseatResp := do(t, env.server, "POST", "/v1/orders",
		jsonBody(t, map[string]string{"table_id": tableID}), env.token)
	assert.Equal(t, http.StatusCreated, reseatResp.StatusCode)
	reseatResp.Body.Close()

	// The cancelled order never reaches the daily report
	reportResp := do(t, env.server, "GET", "/v1/reports/daily", nil, env.token)
	require.Equal(t, http.StatusOK, reportResp.StatusCode)
	var report struct {
		OrderCount int `json:"order_count"`
	}
	decodeJSON(t, reportResp, &report)
	assert.Equal(t, 0, report.OrderCount)
}

func TestE2E_PublicMenuAndCacheInvalidation(t *testing.T) {
	env := setupTestEnv(t)
	env.createProduct(t, "Beverages", "Tea", "5.00")

	// No token required
	menuResp := do(t, env.server, "GET", "/v1/menu", nil, "")
	require.Equal(t, http.StatusOK, menuResp.StatusCode)
	var menu struct {
		Categories []struct {
			Name     string `json:"name"`
			Products []struct {
				Name string `json:"name"`
			} `json:"products"`
		} `json:"categories"`
	}
	decodeJSON(t, menuResp, &menu)
	require.Len(t, menu.Categories, 1)
	require.Len(t, menu.Categories[0].Products, 1)

	// A catalog write drops the cached menu; the next read sees the update.
	env.createProduct(t, "Beverages", "Coffee", "8.00")
	menuResp = do(t, env.server, "GET", "/v1/menu", nil, "")
	require.Equal(t, http.StatusOK, menuResp.StatusCode)
	decodeJSON(t, menuResp, &menu)
	require.Len(t, menu.Categories, 1)
	assert.Len(t, menu.Categories[0].Products, 2)
}
