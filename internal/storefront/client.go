// Package storefront holds the client side of the shop: a thin HTTP client
// for the API plus the presentation logic the browser app runs, catalog
// filtering and the order-history view.
package storefront

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"storefront/internal/domain"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type apiError struct {
	Error string `json:"error"`
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return err
		}
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e apiError
		if json.NewDecoder(resp.Body).Decode(&e) == nil && e.Error != "" {
			return fmt.Errorf("api: %s", e.Error)
		}
		return fmt.Errorf("api returned status %d", resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) Products(ctx context.Context) ([]domain.Product, error) {
	var out []domain.Product
	if err := c.do(ctx, http.MethodGet, "/api/products", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

type ProductForm struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price"`
	ImageURL    string `json:"imageUrl"`
	Category    string `json:"category,omitempty"`
}

func (c *Client) CreateProduct(ctx context.Context, form ProductForm) (*domain.Product, error) {
	var out domain.Product
	if err := c.do(ctx, http.MethodPost, "/api/products", form, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateProduct(ctx context.Context, id string, form ProductForm) (*domain.Product, error) {
	var out domain.Product
	if err := c.do(ctx, http.MethodPut, "/api/products/"+url.PathEscape(id), form, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/products/"+url.PathEscape(id), nil, nil)
}

type OrderForm struct {
	ProductID    string `json:"productId"`
	BuyerName    string `json:"buyerName"`
	BuyerEmail   string `json:"buyerEmail"`
	BuyerAddress string `json:"buyerAddress"`
	BuyerCell    string `json:"buyerCell"`
	Quantity     string `json:"quantity"`
}

func (c *Client) PlaceOrder(ctx context.Context, form OrderForm) (*domain.Order, error) {
	var out domain.Order
	if err := c.do(ctx, http.MethodPost, "/api/orders", form, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) OrderByID(ctx context.Context, id string) ([]domain.Order, error) {
	var out []domain.Order
	q := url.Values{"orderId": {id}}
	if err := c.do(ctx, http.MethodGet, "/api/orders?"+q.Encode(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) OrdersByEmail(ctx context.Context, email string) ([]domain.Order, error) {
	var out []domain.Order
	q := url.Values{"buyerEmail": {email}}
	if err := c.do(ctx, http.MethodGet, "/api/orders?"+q.Encode(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CancelOrder(ctx context.Context, id string) (*domain.Order, error) {
	var out domain.Order
	body := map[string]string{"status": string(domain.StatusCancelled)}
	if err := c.do(ctx, http.MethodPut, "/api/orders/"+url.PathEscape(id), body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
