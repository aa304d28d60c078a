package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/existflow/ironstore/internal/config"
	"github.com/existflow/ironstore/internal/token"
)

const testSecret = "test-secret"

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.DatabaseURL = ":memory:"
	cfg.TokenSecret = testSecret
	cfg.TokenTTL = "1h"

	s, err := New(cfg)
	require.NoError(t, err)

	ts := httptest.NewServer(s.Router())
	t.Cleanup(func() {
		ts.Close()
		s.Close()
	})
	return ts
}

type apiResponse struct {
	Success   bool                   `json:"success"`
	Message   string                 `json:"message"`
	Data      map[string]interface{} `json:"data"`
	ErrorCode string                 `json:"error_code"`
	Details   interface{}            `json:"details"`
	Timestamp string                 `json:"timestamp"`
}

func doJSON(t *testing.T, method, url, bearer string, body interface{}) (int, *apiResponse) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return resp.StatusCode, nil
	}

	out := &apiResponse{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	return resp.StatusCode, out
}

func registerUser(t *testing.T, ts *httptest.Server, email string) (userID, bearer string) {
	t.Helper()

	status, resp := doJSON(t, http.MethodPost, ts.URL+"/api/auth/register", "", map[string]interface{}{
		"email":    email,
		"password": "hunter22",
		"name":     "Test User",
		"age":      30,
	})
	require.Equal(t, http.StatusCreated, status)
	require.True(t, resp.Success)

	user := resp.Data["user"].(map[string]interface{})
	return user["id"].(string), resp.Data["token"].(string)
}

func createProduct(t *testing.T, ts *httptest.Server, bearer string, body map[string]interface{}) map[string]interface{} {
	t.Helper()

	status, resp := doJSON(t, http.MethodPost, ts.URL+"/api/products", bearer, body)
	require.Equal(t, http.StatusCreated, status)
	return resp.Data["product"].(map[string]interface{})
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)

	status, resp := doJSON(t, http.MethodGet, ts.URL+"/api/health", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.True(t, resp.Success)
}

func TestRegister(t *testing.T) {
	ts := newTestServer(t)

	status, resp := doJSON(t, http.MethodPost, ts.URL+"/api/auth/register", "", map[string]interface{}{
		"email":    "alice@example.com",
		"password": "hunter22",
		"name":     "Alice",
		"age":      28,
		"bio":      "widget enthusiast",
	})
	require.Equal(t, http.StatusCreated, status)
	require.True(t, resp.Success)

	user := resp.Data["user"].(map[string]interface{})
	assert.Contains(t, user["id"], "user_")
	assert.Equal(t, "alice@example.com", user["email"])
	assert.NotContains(t, user, "password_hash")
	assert.NotEmpty(t, resp.Data["token"])
}

func TestRegister_DuplicateEmailCaseInsensitive(t *testing.T) {
	ts := newTestServer(t)
	registerUser(t, ts, "alice@example.com")

	status, resp := doJSON(t, http.MethodPost, ts.URL+"/api/auth/register", "", map[string]interface{}{
		"email":    "ALICE@example.com",
		"password": "hunter22",
		"name":     "Alice Again",
		"age":      28,
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "DUPLICATE_EMAIL", resp.ErrorCode)
}

func TestRegister_Validation(t *testing.T) {
	ts := newTestServer(t)

	status, resp := doJSON(t, http.MethodPost, ts.URL+"/api/auth/register", "", map[string]interface{}{
		"email":    "not-an-email",
		"password": "tiny",
		"age":      12,
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_ERROR", resp.ErrorCode)

	// email format, password length, missing name, age bound
	details := resp.Details.([]interface{})
	assert.Len(t, details, 4)
}

func TestLogin(t *testing.T) {
	ts := newTestServer(t)
	userID, _ := registerUser(t, ts, "alice@example.com")

	status, resp := doJSON(t, http.MethodPost, ts.URL+"/api/auth/login", "", map[string]interface{}{
		"email":    "alice@example.com",
		"password": "hunter22",
	})
	require.Equal(t, http.StatusOK, status)

	user := resp.Data["user"].(map[string]interface{})
	assert.Equal(t, userID, user["id"])
	assert.NotEmpty(t, resp.Data["token"])
}

func TestLogin_WrongPassword(t *testing.T) {
	ts := newTestServer(t)
	registerUser(t, ts, "alice@example.com")

	status, resp := doJSON(t, http.MethodPost, ts.URL+"/api/auth/login", "", map[string]interface{}{
		"email":    "alice@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "INVALID_CREDENTIALS", resp.ErrorCode)
}

func TestVerify_RoundTripsUserID(t *testing.T) {
	ts := newTestServer(t)
	userID, bearer := registerUser(t, ts, "alice@example.com")

	status, resp := doJSON(t, http.MethodGet, ts.URL+"/api/auth/verify", bearer, nil)
	require.Equal(t, http.StatusOK, status)

	user := resp.Data["user"].(map[string]interface{})
	assert.Equal(t, userID, user["id"])
}

func TestAuth_MissingToken(t *testing.T) {
	ts := newTestServer(t)

	for _, route := range []string{"/api/auth/verify", "/api/users"} {
		status, resp := doJSON(t, http.MethodGet, ts.URL+route, "", nil)
		assert.Equal(t, http.StatusUnauthorized, status, route)
		assert.Equal(t, "AUTH_TOKEN_MISSING", resp.ErrorCode, route)
	}
}

func TestAuth_TamperedToken(t *testing.T) {
	ts := newTestServer(t)
	_, bearer := registerUser(t, ts, "alice@example.com")

	status, resp := doJSON(t, http.MethodGet, ts.URL+"/api/auth/verify", bearer+"x", nil)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "AUTH_TOKEN_INVALID", resp.ErrorCode)
}

func TestAuth_ExpiredToken(t *testing.T) {
	ts := newTestServer(t)
	registerUser(t, ts, "alice@example.com")

	expired, err := token.New([]byte(testSecret), -time.Hour).Issue("user_x", "x@example.com", "user")
	require.NoError(t, err)

	status, resp := doJSON(t, http.MethodGet, ts.URL+"/api/auth/verify", expired, nil)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "AUTH_TOKEN_INVALID", resp.ErrorCode)
}

func TestAuth_UnknownUser(t *testing.T) {
	ts := newTestServer(t)

	// Validly signed token for an id that was never registered
	ghost, err := token.New([]byte(testSecret), time.Hour).Issue("user_ghost", "ghost@example.com", "user")
	require.NoError(t, err)

	status, resp := doJSON(t, http.MethodGet, ts.URL+"/api/auth/verify", ghost, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "AUTH_USER_NOT_FOUND", resp.ErrorCode)
}

func TestListUsers(t *testing.T) {
	ts := newTestServer(t)
	_, bearer := registerUser(t, ts, "alice@example.com")
	registerUser(t, ts, "bob@example.com")

	status, resp := doJSON(t, http.MethodGet, ts.URL+"/api/users", bearer, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(2), resp.Data["total"])
}

func TestGetUser_NotFound(t *testing.T) {
	ts := newTestServer(t)
	_, bearer := registerUser(t, ts, "alice@example.com")

	status, resp := doJSON(t, http.MethodGet, ts.URL+"/api/users/user_missing", bearer, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "USER_NOT_FOUND", resp.ErrorCode)
}

func TestProduct_CreateAndFetchRoundTrip(t *testing.T) {
	ts := newTestServer(t)
	_, bearer := registerUser(t, ts, "alice@example.com")

	created := createProduct(t, ts, bearer, map[string]interface{}{
		"title":       "Widget",
		"price":       9.99,
		"in_stock":    true,
		"description": "a fine widget",
	})
	require.Contains(t, created["id"], "prod_")

	status, resp := doJSON(t, http.MethodGet, fmt.Sprintf("%s/api/products/%s", ts.URL, created["id"]), "", nil)
	require.Equal(t, http.StatusOK, status)

	fetched := resp.Data["product"].(map[string]interface{})
	assert.Equal(t, "Widget", fetched["title"])
	assert.Equal(t, 9.99, fetched["price"])
	assert.Equal(t, true, fetched["in_stock"])
	assert.Equal(t, "a fine widget", fetched["description"])
}

func TestProduct_CreateRequiresAuth(t *testing.T) {
	ts := newTestServer(t)

	status, resp := doJSON(t, http.MethodPost, ts.URL+"/api/products", "", map[string]interface{}{
		"title":    "Widget",
		"price":    1.0,
		"in_stock": true,
	})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "AUTH_TOKEN_MISSING", resp.ErrorCode)
}

func TestProduct_InvalidPayloadNeverPersisted(t *testing.T) {
	ts := newTestServer(t)
	_, bearer := registerUser(t, ts, "alice@example.com")

	cases := []map[string]interface{}{
		{"price": 1.0, "in_stock": true},                     // missing title
		{"title": "Widget", "price": -1.0, "in_stock": true}, // negative price
		{"title": "Widget", "price": "free", "in_stock": true},
	}
	for _, body := range cases {
		status, resp := doJSON(t, http.MethodPost, ts.URL+"/api/products", bearer, body)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "VALIDATION_ERROR", resp.ErrorCode)
	}

	status, resp := doJSON(t, http.MethodGet, ts.URL+"/api/products", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(0), resp.Data["total"])
}

func TestProduct_Update(t *testing.T) {
	ts := newTestServer(t)
	_, bearer := registerUser(t, ts, "alice@example.com")

	created := createProduct(t, ts, bearer, map[string]interface{}{
		"title":    "Widget",
		"price":    9.99,
		"in_stock": true,
	})

	url := fmt.Sprintf("%s/api/products/%s", ts.URL, created["id"])
	status, resp := doJSON(t, http.MethodPut, url, bearer, map[string]interface{}{
		"price":    4.99,
		"in_stock": false,
	})
	require.Equal(t, http.StatusOK, status)

	updated := resp.Data["product"].(map[string]interface{})
	assert.Equal(t, 4.99, updated["price"])
	assert.Equal(t, false, updated["in_stock"])
	assert.Equal(t, "Widget", updated["title"])
}

func TestProduct_UpdateValidation(t *testing.T) {
	ts := newTestServer(t)
	_, bearer := registerUser(t, ts, "alice@example.com")

	created := createProduct(t, ts, bearer, map[string]interface{}{
		"title":    "Widget",
		"price":    9.99,
		"in_stock": true,
	})
	url := fmt.Sprintf("%s/api/products/%s", ts.URL, created["id"])

	// empty patch
	status, resp := doJSON(t, http.MethodPut, url, bearer, map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_ERROR", resp.ErrorCode)

	// negative price
	status, resp = doJSON(t, http.MethodPut, url, bearer, map[string]interface{}{"price": -5.0})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_ERROR", resp.ErrorCode)
}

func TestProduct_UpdateNotFound(t *testing.T) {
	ts := newTestServer(t)
	_, bearer := registerUser(t, ts, "alice@example.com")

	status, resp := doJSON(t, http.MethodPut, ts.URL+"/api/products/prod_missing", bearer, map[string]interface{}{
		"price": 1.0,
	})
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "PRODUCT_NOT_FOUND", resp.ErrorCode)
}

func TestProduct_DeleteTwice(t *testing.T) {
	ts := newTestServer(t)
	_, bearer := registerUser(t, ts, "alice@example.com")

	created := createProduct(t, ts, bearer, map[string]interface{}{
		"title":    "Widget",
		"price":    9.99,
		"in_stock": true,
	})
	url := fmt.Sprintf("%s/api/products/%s", ts.URL, created["id"])

	status, _ := doJSON(t, http.MethodDelete, url, bearer, nil)
	assert.Equal(t, http.StatusNoContent, status)

	status, resp := doJSON(t, http.MethodDelete, url, bearer, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "PRODUCT_NOT_FOUND", resp.ErrorCode)
}

func TestProduct_GetNotFound(t *testing.T) {
	ts := newTestServer(t)

	status, resp := doJSON(t, http.MethodGet, ts.URL+"/api/products/prod_missing", "", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "PRODUCT_NOT_FOUND", resp.ErrorCode)
}

func TestAdminStats_RoleGate(t *testing.T) {
	ts := newTestServer(t)

	// First registered account holds the admin role
	_, adminBearer := registerUser(t, ts, "admin@example.com")
	_, userBearer := registerUser(t, ts, "bob@example.com")

	status, resp := doJSON(t, http.MethodGet, ts.URL+"/api/admin/stats", adminBearer, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(2), resp.Data["users"])
	assert.Equal(t, float64(0), resp.Data["products"])

	status, resp = doJSON(t, http.MethodGet, ts.URL+"/api/admin/stats", userBearer, nil)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "FORBIDDEN", resp.ErrorCode)
}
