package airtable

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"HeadlineSync/internal/config"
)

// Record is one row returned by the records API.
type Record struct {
	ID          string         `json:"id"`
	CreatedTime string         `json:"createdTime,omitempty"`
	Fields      map[string]any `json:"fields"`
}

type listResponse struct {
	Records []Record `json:"records"`
	Offset  string   `json:"offset"`
}

// ListQuery describes a filtered, sorted, optionally projected table read.
type ListQuery struct {
	FilterByFormula string
	SortField       string
	SortDirection   string
	Fields          []string
}

// Client is a minimal Airtable records API client scoped to one base.
type Client struct {
	baseURL string
	baseID  string
	apiKey  string
	http    *http.Client
	logger  *slog.Logger
}

// NewClient builds a client from configuration.
func NewClient(cfg config.AirtableConfig, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		baseID:  cfg.BaseID,
		apiKey:  cfg.APIKey,
		http:    &http.Client{Timeout: 20 * time.Second},
		logger:  logger,
	}
}

// ListRecords fetches every matching row of a table, transparently following
// the offset continuation cursor until the listing is exhausted.
func (c *Client) ListRecords(ctx context.Context, table string, q ListQuery) ([]Record, error) {
	var all []Record
	offset := ""

	for {
		page, err := c.listPage(ctx, table, q, offset)
		if err != nil {
			return nil, err
		}
		all = append(all, page.Records...)

		if page.Offset == "" {
			break
		}
		offset = page.Offset
	}

	c.logger.Debug("listed records", "table", table, "count", len(all))
	return all, nil
}

// CreateRecord inserts one row and returns it with its assigned identifier.
func (c *Client) CreateRecord(ctx context.Context, table string, fields map[string]any) (Record, error) {
	body := map[string]any{"fields": fields}

	var created Record
	if err := c.send(ctx, http.MethodPost, c.tableURL(table), body, &created); err != nil {
		return Record{}, fmt.Errorf("create record: %w", err)
	}
	if created.ID == "" {
		return Record{}, fmt.Errorf("create record: response carries no record id")
	}

	return created, nil
}

// UpdateRecord patches a partial field set onto one row by identifier.
func (c *Client) UpdateRecord(ctx context.Context, table, recordID string, fields map[string]any) (Record, error) {
	body := map[string]any{"fields": fields}

	var updated Record
	endpoint := c.tableURL(table) + "/" + url.PathEscape(recordID)
	if err := c.send(ctx, http.MethodPatch, endpoint, body, &updated); err != nil {
		return Record{}, fmt.Errorf("update record %s: %w", recordID, err)
	}

	return updated, nil
}

func (c *Client) listPage(ctx context.Context, table string, q ListQuery, offset string) (listResponse, error) {
	params := url.Values{}
	if q.FilterByFormula != "" {
		params.Set("filterByFormula", q.FilterByFormula)
	}
	if q.SortField != "" {
		params.Set("sort[0][field]", q.SortField)
		direction := q.SortDirection
		if direction == "" {
			direction = "asc"
		}
		params.Set("sort[0][direction]", direction)
	}
	for _, field := range q.Fields {
		params.Add("fields[]", field)
	}
	if offset != "" {
		params.Set("offset", offset)
	}

	endpoint := c.tableURL(table)
	if encoded := params.Encode(); encoded != "" {
		endpoint += "?" + encoded
	}

	var page listResponse
	if err := c.send(ctx, http.MethodGet, endpoint, nil, &page); err != nil {
		return listResponse{}, fmt.Errorf("list records: %w", err)
	}

	return page, nil
}

func (c *Client) tableURL(table string) string {
	return c.baseURL + "/" + url.PathEscape(c.baseID) + "/" + url.PathEscape(table)
}

func (c *Client) send(ctx context.Context, method, endpoint string, payload any, v any) error {
	var reader io.Reader
	if payload != nil {
		body, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal payload: %w", err)
		}
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("airtable error %s: %s", resp.Status, strings.TrimSpace(string(detail)))
	}

	if v == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}

// stringField reads a string value from a record's field map.
func stringField(fields map[string]any, key string) string {
	if value, ok := fields[key].(string); ok {
		return value
	}
	return ""
}

// intField reads a numeric value from a record's field map. The API decodes
// numbers as float64.
func intField(fields map[string]any, key string) int {
	switch value := fields[key].(type) {
	case float64:
		return int(value)
	case int:
		return value
	default:
		return 0
	}
}
