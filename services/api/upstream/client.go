// Package upstream talks to the REST backend the dashboard was first built
// against. It implements the same operations as the Postgres store so the
// API can front either one.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/qcdash/qc-dashboard/services/api/model"
)

// DefaultTimeout matches the dashboard's original request timeout.
const DefaultTimeout = 10 * time.Second

// Client calls the backend's /api/ routes.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// Option customizes a Client.
type Option func(*Client)

// WithToken sends the token as a bearer credential.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// New builds a client for baseURL, e.g. http://localhost:3000/api/.
func New(baseURL string, timeout time.Duration, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid upstream url %q", baseURL)
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	c := &Client{
		baseURL: strings.TrimRight(u.String(), "/") + "/",
		http:    &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Call sends body as JSON to path, relative to the base URL, and decodes
// the response into out when both are non-nil.
func (c *Client) Call(ctx context.Context, method, path string, body, out any) error {
	return c.do(ctx, method, path, body, out)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return connectionError(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return connectionError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return responseError(resp.StatusCode, http.StatusText(resp.StatusCode), data)
	}
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func (c *Client) ListCustomers(ctx context.Context) ([]model.Customer, error) {
	customers := make([]model.Customer, 0)
	if err := c.do(ctx, http.MethodGet, "Customers", nil, &customers); err != nil {
		return nil, err
	}
	return customers, nil
}

// GetCustomer has no dedicated route upstream; it searches the list.
func (c *Client) GetCustomer(ctx context.Context, id string) (model.Customer, error) {
	customers, err := c.ListCustomers(ctx)
	if err != nil {
		return model.Customer{}, err
	}
	for _, cu := range customers {
		if cu.ID == id {
			return cu, nil
		}
	}
	return model.Customer{}, model.ErrNotFound
}

func (c *Client) CreateCustomer(ctx context.Context, in model.CustomerInput) (model.Customer, error) {
	var out model.Customer
	err := c.do(ctx, http.MethodPost, "Customers", in, &out)
	return out, err
}

func (c *Client) UpdateCustomer(ctx context.Context, id string, in model.CustomerInput) (model.Customer, error) {
	if err := c.do(ctx, http.MethodPut, "Customers/"+url.PathEscape(id), in, nil); err != nil {
		return model.Customer{}, err
	}
	return c.GetCustomer(ctx, id)
}

func (c *Client) SetCustomerActive(ctx context.Context, id string, active bool) error {
	return c.do(ctx, http.MethodPatch, "Customers/"+url.PathEscape(id)+"/"+toggle(active), nil, nil)
}

func (c *Client) ListProducts(ctx context.Context) ([]model.Product, error) {
	products := make([]model.Product, 0)
	if err := c.do(ctx, http.MethodGet, "Products", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// GetProduct has no dedicated route upstream; it searches the list.
func (c *Client) GetProduct(ctx context.Context, id string) (model.Product, error) {
	products, err := c.ListProducts(ctx)
	if err != nil {
		return model.Product{}, err
	}
	for _, p := range products {
		if p.ID == id {
			return p, nil
		}
	}
	return model.Product{}, model.ErrNotFound
}

func (c *Client) CreateProduct(ctx context.Context, in model.ProductInput) (model.Product, error) {
	var out model.Product
	err := c.do(ctx, http.MethodPost, "Products", in, &out)
	return out, err
}

func (c *Client) UpdateProduct(ctx context.Context, id string, in model.ProductInput) (model.Product, error) {
	if err := c.do(ctx, http.MethodPut, "Products/"+url.PathEscape(id), in, nil); err != nil {
		return model.Product{}, err
	}
	return c.GetProduct(ctx, id)
}

func (c *Client) SetProductActive(ctx context.Context, id string, active bool) error {
	return c.do(ctx, http.MethodPatch, "Products/"+url.PathEscape(id)+"/"+toggle(active), nil, nil)
}

func (c *Client) ListProductDetails(ctx context.Context, productID string) ([]model.ProductDetail, error) {
	details := make([]model.ProductDetail, 0)
	if err := c.do(ctx, http.MethodGet, "Products/"+url.PathEscape(productID)+"/details", nil, &details); err != nil {
		return nil, err
	}
	return details, nil
}

func (c *Client) ListAllProductDetails(ctx context.Context) ([]model.ProductDetail, error) {
	details := make([]model.ProductDetail, 0)
	if err := c.do(ctx, http.MethodGet, "Products/all-details", nil, &details); err != nil {
		return nil, err
	}
	return details, nil
}

// CreateProductDetails posts one record at a time. A failed record does not
// stop the rest; the result counts both outcomes and the error is only
// returned when nothing was saved.
func (c *Client) CreateProductDetails(ctx context.Context, inputs []model.ProductDetailInput) (model.SaveResult, error) {
	var res model.SaveResult
	var last error
	for _, in := range inputs {
		if err := c.do(ctx, http.MethodPost, "Products/details", in, nil); err != nil {
			res.Errors++
			res.LastError = err.Error()
			last = err
			if ctx.Err() != nil {
				res.Errors += len(inputs) - res.Saved - res.Errors
				break
			}
			continue
		}
		res.Saved++
	}
	if res.Saved == 0 && last != nil {
		return res, last
	}
	return res, nil
}

func toggle(active bool) string {
	if active {
		return "activate"
	}
	return "deactivate"
}
