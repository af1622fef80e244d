package webapi_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bankhive/bankcore/config"
	"github.com/bankhive/bankcore/internal/fixtures"
	accountsvc "github.com/bankhive/bankcore/pkg/service/account"
	"github.com/bankhive/bankcore/pkg/service/auth"
	depositsvc "github.com/bankhive/bankcore/pkg/service/deposit"
	"github.com/bankhive/bankcore/pkg/service/ledger"
	loansvc "github.com/bankhive/bankcore/pkg/service/loan"
	"github.com/bankhive/bankcore/pkg/service/user"
	"github.com/bankhive/bankcore/webapi"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	uow, _ := fixtures.NewTestUoW(t)
	logger := slog.New(slog.DiscardHandler)
	cfg := &config.AppConfig{
		Jwt:       config.Jwt{Secret: "test-secret", Expiry: time.Hour},
		RateLimit: config.RateLimit{MaxRequests: 1000, Window: time.Second},
	}
	return webapi.NewApp(cfg, webapi.Services{
		Auth:    auth.NewService(uow, cfg.Jwt, logger),
		User:    user.NewService(uow, logger),
		Account: accountsvc.NewService(uow, logger),
		Ledger:  ledger.NewService(uow, logger),
		Deposit: depositsvc.NewService(uow, logger),
		Loan:    loansvc.NewService(uow, logger),
	})
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) (*http.Response, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var payload map[string]any
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &payload), "body: %s", raw)
	}
	return resp, payload
}

func registerAndLogin(t *testing.T, app *fiber.App, email string) string {
	t.Helper()
	resp, _ := doJSON(t, app, http.MethodPost, "/users", "", fiber.Map{
		"name": "Jamie", "surname": "Doe", "email": email, "password": "s3cret!",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp, payload := doJSON(t, app, http.MethodPost, "/auth/login", "", fiber.Map{
		"email": email, "password": "s3cret!",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	token, _ := payload["data"].(map[string]any)["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	app := newTestApp(t)
	resp, _ := doJSON(t, app, http.MethodGet, "/accounts", "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "missing bearer token")

	req := httptest.NewRequest(http.MethodGet, "/accounts", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	resp2, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp2.StatusCode)
}

func TestAccountLifecycleOverHTTP(t *testing.T) {
	app := newTestApp(t)
	token := registerAndLogin(t, app, "jamie@bank.test")

	resp, payload := doJSON(t, app, http.MethodPost, "/accounts", token, fiber.Map{
		"user_id": 1, "account_number": "1234567812345678", "balance": "1000.00", "type": "SAVINGS",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, "payload: %v", payload)
	data := payload["data"].(map[string]any)
	assert.Equal(t, "1234567812345678", data["account_number"])

	resp, payload = doJSON(t, app, http.MethodGet, "/accounts/1", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "SAVINGS", payload["data"].(map[string]any)["type"])

	t.Run("duplicate number yields 409", func(t *testing.T) {
		resp, _ := doJSON(t, app, http.MethodPost, "/accounts", token, fiber.Map{
			"user_id": 1, "account_number": "1234567812345678", "balance": "0.00", "type": "CHECKING",
		})
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})
	t.Run("malformed number yields 400", func(t *testing.T) {
		resp, _ := doJSON(t, app, http.MethodPost, "/accounts", token, fiber.Map{
			"user_id": 1, "account_number": "123", "balance": "0.00", "type": "CHECKING",
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
	t.Run("missing account yields 404", func(t *testing.T) {
		resp, _ := doJSON(t, app, http.MethodGet, "/accounts/999", token, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestTransferOverHTTP(t *testing.T) {
	app := newTestApp(t)
	token := registerAndLogin(t, app, "jamie@bank.test")

	for _, acct := range []fiber.Map{
		{"user_id": 1, "account_number": "1111222233334444", "balance": "1000.00", "type": "CHECKING"},
		{"user_id": 1, "account_number": "5555666677778888", "balance": "300.00", "type": "CHECKING"},
	} {
		resp, _ := doJSON(t, app, http.MethodPost, "/accounts", token, acct)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp, payload := doJSON(t, app, http.MethodPost, "/transactions", token, fiber.Map{
		"sender_account_id": 1, "beneficiary_account_id": 2, "amount": "300.00", "type": "OUTGOING",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, "payload: %v", payload)

	t.Run("insufficient funds yields 400", func(t *testing.T) {
		resp, _ := doJSON(t, app, http.MethodPost, "/transactions", token, fiber.Map{
			"sender_account_id": 1, "beneficiary_account_id": 2, "amount": "100000.00", "type": "OUTGOING",
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
	t.Run("sender balance reflects the transfer", func(t *testing.T) {
		resp, payload := doJSON(t, app, http.MethodGet, "/accounts/1", token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		raw, _ := payload["data"].(map[string]any)["balance"].(string)
		assert.True(t, decimal.RequireFromString(raw).Equal(decimal.RequireFromString("700.00")), "got %s", raw)
	})
	t.Run("filter by type", func(t *testing.T) {
		resp, payload := doJSON(t, app, http.MethodGet, "/transactions?type=OUTGOING", token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Len(t, payload["data"].([]any), 1)
	})
}
