package client

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/existflow/ironstore/internal/config"
	"github.com/existflow/ironstore/internal/model"
	"github.com/existflow/ironstore/server"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.DatabaseURL = ":memory:"
	cfg.TokenSecret = "client-test-secret"

	srv, err := server.New(cfg)
	require.NoError(t, err)

	ts := httptest.NewServer(srv.Router())
	t.Cleanup(func() {
		ts.Close()
		srv.Close()
	})

	return &Client{
		state:      &State{ServerURL: ts.URL},
		statePath:  filepath.Join(t.TempDir(), "client.json"),
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}
}

func TestRegisterLoginAndVerify(t *testing.T) {
	c := newTestClient(t)

	user, err := c.Register("alice@example.com", "hunter22", "Alice", 28, "")
	require.NoError(t, err)
	assert.True(t, c.IsLoggedIn())
	assert.Equal(t, "alice@example.com", user.Email)

	verified, err := c.Verify()
	require.NoError(t, err)
	assert.Equal(t, user.ID, verified.ID)

	require.NoError(t, c.Logout())
	assert.False(t, c.IsLoggedIn())

	again, err := c.Login("alice@example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, user.ID, again.ID)
}

func TestLogin_BadCredentials(t *testing.T) {
	c := newTestClient(t)

	_, err := c.Register("alice@example.com", "hunter22", "Alice", 28, "")
	require.NoError(t, err)

	_, err = c.Login("alice@example.com", "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "INVALID_CREDENTIALS")
}

func TestProductLifecycle(t *testing.T) {
	c := newTestClient(t)

	_, err := c.Register("alice@example.com", "hunter22", "Alice", 28, "")
	require.NoError(t, err)

	created, err := c.CreateProduct("Widget", 9.99, true, "a fine widget")
	require.NoError(t, err)

	fetched, err := c.Product(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Title, fetched.Title)
	assert.Equal(t, created.Price, fetched.Price)

	inStock := false
	updated, err := c.UpdateProduct(created.ID, &model.ProductPatch{InStock: &inStock})
	require.NoError(t, err)
	assert.False(t, updated.InStock)

	products, err := c.Products()
	require.NoError(t, err)
	assert.Len(t, products, 1)

	require.NoError(t, c.DeleteProduct(created.ID))

	err = c.DeleteProduct(created.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PRODUCT_NOT_FOUND")
}

func TestUsersAndStats(t *testing.T) {
	c := newTestClient(t)

	// First account gets the admin role
	_, err := c.Register("admin@example.com", "hunter22", "Admin", 40, "")
	require.NoError(t, err)

	users, err := c.Users()
	require.NoError(t, err)
	assert.Len(t, users, 1)

	userCount, productCount, err := c.Stats()
	require.NoError(t, err)
	assert.Equal(t, 1, userCount)
	assert.Equal(t, 0, productCount)
}
