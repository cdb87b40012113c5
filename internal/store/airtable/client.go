// Package airtable implements store.Store against the hosted record service's
// REST API.
package airtable

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"storefront/internal/store"
)

type Client struct {
	baseURL    string
	apiKey     string
	baseID     string
	httpClient *http.Client
}

// New builds a client for one base. baseURL is overridable for tests; pass ""
// for the hosted endpoint.
func New(baseURL, apiKey, baseID string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = "https://api.airtable.com"
	}
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		baseID:     baseID,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) Table(name string) store.Table {
	return &table{client: c, name: name}
}

type table struct {
	client *Client
	name   string
}

type recordPayload struct {
	ID          string         `json:"id"`
	CreatedTime time.Time      `json:"createdTime"`
	Fields      map[string]any `json:"fields"`
}

type listPayload struct {
	Records []recordPayload `json:"records"`
	Offset  string          `json:"offset"`
}

func (p recordPayload) toRecord() store.Record {
	return store.Record{ID: p.ID, Fields: p.Fields, CreatedTime: p.CreatedTime}
}

func (t *table) url(id string) string {
	u := fmt.Sprintf("%s/v0/%s/%s", t.client.baseURL, url.PathEscape(t.client.baseID), url.PathEscape(t.name))
	if id != "" {
		u += "/" + url.PathEscape(id)
	}
	return u
}

func (t *table) do(ctx context.Context, method, rawURL string, body any, out any) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return err
		}
	}
	req, err := http.NewRequestWithContext(ctx, method, rawURL, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+t.client.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := t.client.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return store.ErrRecordNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("record store returned status %d", resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// Select fetches every page; the hosted API caps pages and hands back an
// offset cursor until the listing is exhausted.
func (t *table) Select(ctx context.Context, filterFormula string) ([]store.Record, error) {
	var out []store.Record
	offset := ""
	for {
		q := url.Values{}
		if filterFormula != "" {
			q.Set("filterByFormula", filterFormula)
		}
		if offset != "" {
			q.Set("offset", offset)
		}
		rawURL := t.url("")
		if enc := q.Encode(); enc != "" {
			rawURL += "?" + enc
		}

		var page listPayload
		if err := t.do(ctx, http.MethodGet, rawURL, nil, &page); err != nil {
			return nil, err
		}
		for _, r := range page.Records {
			out = append(out, r.toRecord())
		}
		if page.Offset == "" {
			return out, nil
		}
		offset = page.Offset
	}
}

func (t *table) Find(ctx context.Context, id string) (store.Record, error) {
	var p recordPayload
	if err := t.do(ctx, http.MethodGet, t.url(id), nil, &p); err != nil {
		return store.Record{}, err
	}
	return p.toRecord(), nil
}

func (t *table) Create(ctx context.Context, fields map[string]any) (store.Record, error) {
	var p recordPayload
	body := map[string]any{"fields": fields}
	if err := t.do(ctx, http.MethodPost, t.url(""), body, &p); err != nil {
		return store.Record{}, err
	}
	return p.toRecord(), nil
}

func (t *table) Update(ctx context.Context, id string, fields map[string]any) (store.Record, error) {
	var p recordPayload
	body := map[string]any{"fields": fields}
	if err := t.do(ctx, http.MethodPatch, t.url(id), body, &p); err != nil {
		return store.Record{}, err
	}
	return p.toRecord(), nil
}

func (t *table) Destroy(ctx context.Context, id string) error {
	return t.do(ctx, http.MethodDelete, t.url(id), nil, nil)
}

var _ store.Store = (*Client)(nil)
