// Package client is a typed Go client for the sellerdesk API. It holds the
// bearer access token, keeps the refresh token in an HttpOnly cookie via a
// cookie jar, and transparently renews the access token once when a request
// comes back 401.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"sellerdesk/pkg/apierr"
	"sellerdesk/pkg/bundle"
	"sellerdesk/pkg/models"
)

// Client talks to one sellerdesk API instance. Safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client

	mu             sync.Mutex
	token          string
	onTokenRefresh func(token string)
}

// Option configures a Client
type Option func(*Client)

// WithToken sets the initial access token
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithHTTPClient replaces the underlying HTTP client. A cookie jar is
// attached if the given client has none, since refresh depends on it.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithOnTokenRefresh registers a callback invoked with every renewed access
// token so the caller can persist it.
func WithOnTokenRefresh(fn func(token string)) Option {
	return func(c *Client) { c.onTokenRefresh = fn }
}

// New creates a client for the API at baseURL (e.g. "https://api.example.com/api/v1").
func New(baseURL string, opts ...Option) (*Client, error) {
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.httpClient.Jar == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, err
		}
		c.httpClient.Jar = jar
	}
	return c, nil
}

// Token returns the current access token
func (c *Client) Token() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

func (c *Client) setToken(token string) {
	c.mu.Lock()
	c.token = token
	fn := c.onTokenRefresh
	c.mu.Unlock()
	if fn != nil {
		fn(token)
	}
}

// do sends one request and decodes the JSON response into out (which may be
// nil). On a 401 with a token present it refreshes the access token exactly
// once and retries the original request once.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	resp, err := c.send(ctx, method, path, body)
	if err != nil {
		return err
	}

	if resp.StatusCode == http.StatusUnauthorized && c.Token() != "" {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		if err := c.refresh(ctx); err != nil {
			return err
		}
		resp, err = c.send(ctx, method, path, body)
		if err != nil {
			return err
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp)
	}
	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apierr.Wrap(apierr.CodeInvalidJSON, "failed to decode response body", err)
	}
	return nil
}

func (c *Client) send(ctx context.Context, method, path string, body interface{}) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apierr.Wrap(apierr.CodeNetworkError, "request failed", err)
	}
	return resp, nil
}

// refresh renews the access token using the refresh cookie. A 403 means the
// cookie is missing, a 401 means it expired; either way the session is over
// and the caller should log in again.
func (c *Client) refresh(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/refresh", nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apierr.Wrap(apierr.CodeNetworkError, "token refresh failed", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusForbidden:
		return apierr.New(apierr.CodeRefreshTokenMissing, "no refresh token, please login again")
	case http.StatusUnauthorized:
		return apierr.New(apierr.CodeRefreshTokenExpired, "session expired, please login again")
	default:
		return apierr.New(apierr.CodeInternal, fmt.Sprintf("token refresh failed with status %d", resp.StatusCode))
	}

	var body struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return apierr.Wrap(apierr.CodeInvalidJSON, "failed to decode refresh response", err)
	}
	c.setToken(body.Token)
	return nil
}

func decodeError(resp *http.Response) error {
	var body struct {
		Error string      `json:"error"`
		Code  apierr.Code `json:"code"`
	}
	data, _ := io.ReadAll(resp.Body)
	if err := json.Unmarshal(data, &body); err != nil || body.Error == "" {
		return apierr.New(apierr.CodeInternal, fmt.Sprintf("unexpected status %d", resp.StatusCode))
	}
	if body.Code == "" {
		body.Code = apierr.CodeInternal
	}
	return apierr.New(body.Code, body.Error)
}

// LoginResponse is returned by Login
type LoginResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// Login authenticates and stores the access token on the client. The refresh
// token arrives as an HttpOnly cookie captured by the jar.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	var out LoginResponse
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", body, &out); err != nil {
		return nil, err
	}
	c.setToken(out.Token)
	return &out, nil
}

// Logout clears the refresh cookie server-side and drops the local token.
func (c *Client) Logout(ctx context.Context) error {
	if err := c.do(ctx, http.MethodPost, "/auth/logout", nil, nil); err != nil {
		return err
	}
	c.setToken("")
	return nil
}

// Profile returns the authenticated user
func (c *Client) Profile(ctx context.Context) (*models.User, error) {
	var out models.User
	if err := c.do(ctx, http.MethodGet, "/auth/profile", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListParams are the common pagination and search parameters
type ListParams struct {
	Page    int
	PerPage int
	Search  string
}

func (p ListParams) query() string {
	q := url.Values{}
	if p.Page > 0 {
		q.Set("page", fmt.Sprint(p.Page))
	}
	if p.PerPage > 0 {
		q.Set("limit", fmt.Sprint(p.PerPage))
	}
	if p.Search != "" {
		q.Set("search", p.Search)
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

// ListProducts returns a page of products
func (c *Client) ListProducts(ctx context.Context, params ListParams) (*models.PaginationResult[models.Product], error) {
	var out models.PaginationResult[models.Product]
	if err := c.do(ctx, http.MethodGet, "/products"+params.query(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetProduct returns one product by ID
func (c *Client) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var out models.Product
	if err := c.do(ctx, http.MethodGet, "/products/"+id.String(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateProduct creates a product
func (c *Client) CreateProduct(ctx context.Context, p *models.Product) (*models.Product, error) {
	var out models.Product
	if err := c.do(ctx, http.MethodPost, "/products", p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProduct updates a product
func (c *Client) UpdateProduct(ctx context.Context, id uuid.UUID, p *models.Product) (*models.Product, error) {
	var out models.Product
	if err := c.do(ctx, http.MethodPut, "/products/"+id.String(), p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteProduct deletes a product
func (c *Client) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/products/"+id.String(), nil, nil)
}

// ListBrands returns a page of brands
func (c *Client) ListBrands(ctx context.Context, params ListParams) (*models.PaginationResult[models.Brand], error) {
	var out models.PaginationResult[models.Brand]
	if err := c.do(ctx, http.MethodGet, "/brands"+params.query(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListListings returns a page of listings
func (c *Client) ListListings(ctx context.Context, params ListParams) (*models.PaginationResult[models.Listing], error) {
	var out models.PaginationResult[models.Listing]
	if err := c.do(ctx, http.MethodGet, "/listings"+params.query(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateListing creates a listing
func (c *Client) CreateListing(ctx context.Context, l *models.Listing) (*models.Listing, error) {
	var out models.Listing
	if err := c.do(ctx, http.MethodPost, "/listings", l, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GenerateCombinations asks the API for bundle suggestions over the given
// product IDs.
func (c *Client) GenerateCombinations(ctx context.Context, productIDs []uuid.UUID) ([]bundle.Combination, error) {
	var out struct {
		Combinations []bundle.Combination `json:"combinations"`
	}
	body := map[string][]uuid.UUID{"product_ids": productIDs}
	if err := c.do(ctx, http.MethodPost, "/listings/combinations", body, &out); err != nil {
		return nil, err
	}
	return out.Combinations, nil
}

// ListInventory returns a page of inventory records
func (c *Client) ListInventory(ctx context.Context, params ListParams) (*models.PaginationResult[models.Inventory], error) {
	var out models.PaginationResult[models.Inventory]
	if err := c.do(ctx, http.MethodGet, "/inventory"+params.query(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
