// Package client is the HTTP client for the IronStore API, used by the
// CLI and the terminal browser. The session token is persisted to
// ~/.ironstore/client.json between invocations.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/existflow/ironstore/internal/model"
)

// State holds the persisted client session
type State struct {
	ServerURL string `json:"server_url"`
	Token     string `json:"token"`
	UserID    string `json:"user_id"`
}

// Client talks to the IronStore API
type Client struct {
	state      *State
	statePath  string
	httpClient *http.Client
}

// envelope mirrors the server's response shape
type envelope struct {
	Success   bool            `json:"success"`
	Message   string          `json:"message"`
	Data      json.RawMessage `json:"data"`
	ErrorCode string          `json:"error_code"`
}

// New creates a client, loading any persisted session
func New() (*Client, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	c := &Client{
		statePath:  filepath.Join(home, ".ironstore", "client.json"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	c.loadState()
	return c, nil
}

func (c *Client) loadState() {
	data, err := os.ReadFile(c.statePath)
	if err != nil {
		c.state = &State{ServerURL: "http://localhost:8080"}
		return
	}

	c.state = &State{}
	if json.Unmarshal(data, c.state) != nil || c.state.ServerURL == "" {
		c.state = &State{ServerURL: "http://localhost:8080"}
	}
}

func (c *Client) saveState() error {
	if err := os.MkdirAll(filepath.Dir(c.statePath), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c.state, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(c.statePath, data, 0600)
}

// SetServer sets the API server URL
func (c *Client) SetServer(url string) error {
	c.state.ServerURL = url
	return c.saveState()
}

// ServerURL returns the configured API server URL
func (c *Client) ServerURL() string {
	return c.state.ServerURL
}

// IsLoggedIn returns true if a session token is stored
func (c *Client) IsLoggedIn() bool {
	return c.state.Token != ""
}

// do performs a JSON request and decodes the envelope. Error responses
// are surfaced as Go errors carrying the server's message.
func (c *Client) do(method, path string, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, c.state.ServerURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.state.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.state.Token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return nil
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("unexpected response (%d): %w", resp.StatusCode, err)
	}

	if !env.Success {
		if env.ErrorCode != "" {
			return fmt.Errorf("%s (%s)", env.Message, env.ErrorCode)
		}
		return fmt.Errorf("%s", env.Message)
	}

	if out != nil && env.Data != nil {
		return json.Unmarshal(env.Data, out)
	}
	return nil
}

type authData struct {
	User  model.User `json:"user"`
	Token string     `json:"token"`
}

// Register creates a new account and stores the session
func (c *Client) Register(email, password, name string, age int, bio string) (*model.User, error) {
	body := map[string]interface{}{
		"email":    email,
		"password": password,
		"name":     name,
		"age":      age,
	}
	if bio != "" {
		body["bio"] = bio
	}

	var data authData
	if err := c.do(http.MethodPost, "/api/auth/register", body, &data); err != nil {
		return nil, err
	}

	c.state.Token = data.Token
	c.state.UserID = data.User.ID
	return &data.User, c.saveState()
}

// Login authenticates and stores the session
func (c *Client) Login(email, password string) (*model.User, error) {
	var data authData
	err := c.do(http.MethodPost, "/api/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, &data)
	if err != nil {
		return nil, err
	}

	c.state.Token = data.Token
	c.state.UserID = data.User.ID
	return &data.User, c.saveState()
}

// Logout clears the stored session
func (c *Client) Logout() error {
	c.state.Token = ""
	c.state.UserID = ""
	return c.saveState()
}

// Verify checks the stored token against the server
func (c *Client) Verify() (*model.User, error) {
	var data struct {
		User model.User `json:"user"`
	}
	if err := c.do(http.MethodGet, "/api/auth/verify", nil, &data); err != nil {
		return nil, err
	}
	return &data.User, nil
}

// Products returns the catalog
func (c *Client) Products() ([]model.Product, error) {
	var data struct {
		Products []model.Product `json:"products"`
		Total    int             `json:"total"`
	}
	if err := c.do(http.MethodGet, "/api/products", nil, &data); err != nil {
		return nil, err
	}
	return data.Products, nil
}

// Product fetches a single product
func (c *Client) Product(id string) (*model.Product, error) {
	var data struct {
		Product model.Product `json:"product"`
	}
	if err := c.do(http.MethodGet, "/api/products/"+id, nil, &data); err != nil {
		return nil, err
	}
	return &data.Product, nil
}

// CreateProduct adds a product to the catalog
func (c *Client) CreateProduct(title string, price float64, inStock bool, description string) (*model.Product, error) {
	body := map[string]interface{}{
		"title":    title,
		"price":    price,
		"in_stock": inStock,
	}
	if description != "" {
		body["description"] = description
	}

	var data struct {
		Product model.Product `json:"product"`
	}
	if err := c.do(http.MethodPost, "/api/products", body, &data); err != nil {
		return nil, err
	}
	return &data.Product, nil
}

// UpdateProduct applies a partial update
func (c *Client) UpdateProduct(id string, patch *model.ProductPatch) (*model.Product, error) {
	var data struct {
		Product model.Product `json:"product"`
	}
	if err := c.do(http.MethodPut, "/api/products/"+id, patch, &data); err != nil {
		return nil, err
	}
	return &data.Product, nil
}

// DeleteProduct removes a product
func (c *Client) DeleteProduct(id string) error {
	return c.do(http.MethodDelete, "/api/products/"+id, nil, nil)
}

// Users returns all users (requires auth)
func (c *Client) Users() ([]model.User, error) {
	var data struct {
		Users []model.User `json:"users"`
		Total int          `json:"total"`
	}
	if err := c.do(http.MethodGet, "/api/users", nil, &data); err != nil {
		return nil, err
	}
	return data.Users, nil
}

// Stats returns row counts (requires the admin role)
func (c *Client) Stats() (users, products int, err error) {
	var data struct {
		Users    int `json:"users"`
		Products int `json:"products"`
	}
	if err := c.do(http.MethodGet, "/api/admin/stats", nil, &data); err != nil {
		return 0, 0, err
	}
	return data.Users, data.Products, nil
}
