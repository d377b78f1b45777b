// Package cli is the terminal client for the dashboard API.
package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	api "github.com/glekoz/rvdesk/api/v1"
	"github.com/glekoz/rvdesk/internal/models"
)

// APIError - ответ сервера с кодом не 2xx.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server answered %d: %s", e.Status, e.Message)
}

func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

type ListQuery struct {
	Page     int
	PageSize int
	Q        string
	Target   string
}

func (q ListQuery) values() url.Values {
	v := url.Values{}
	if q.Page != 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.PageSize != 0 {
		v.Set("pageSize", strconv.Itoa(q.PageSize))
	}
	if q.Q != "" {
		v.Set("q", q.Q)
	}
	if q.Target != "" {
		v.Set("target", q.Target)
	}
	return v
}

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, rd)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		var e api.ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&e); err == nil {
			apiErr.Message = e.Error
		} else {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		return apiErr
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// Table asks the server for a page already cut to the columns that fit widthPx.
func (c *Client) Table(ctx context.Context, entity models.Entity, q ListQuery, widthPx int) (api.TableView, error) {
	v := q.values()
	v.Set("width", strconv.Itoa(widthPx))
	var tv api.TableView
	err := c.do(ctx, http.MethodGet, "/api/v1/tables/"+url.PathEscape(string(entity)), v, nil, &tv)
	return tv, err
}

func (c *Client) Equipment(ctx context.Context, q ListQuery) (api.EquipmentPage, error) {
	var p api.EquipmentPage
	err := c.do(ctx, http.MethodGet, "/api/v1/equipment", q.values(), nil, &p)
	return p, err
}

func (c *Client) SetEquipmentStatus(ctx context.Context, id int, status models.EquipmentStatus) (api.Equipment, error) {
	var e api.Equipment
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/v1/equipment/%d/status", id), nil,
		api.EquipmentStatusUpdate{Status: string(status)}, &e)
	return e, err
}

func (c *Client) Dashboard(ctx context.Context) (api.Dashboard, error) {
	var d api.Dashboard
	err := c.do(ctx, http.MethodGet, "/api/v1/dashboard", nil, nil, &d)
	return d, err
}

func fromAPIEquipment(e api.Equipment) models.Equipment {
	return models.Equipment{
		ID:        e.Id,
		Name:      e.Name,
		Status:    models.EquipmentStatus(e.Status),
		Usage:     e.Usage,
		Remaining: e.Remaining,
		LastCheck: e.LastCheck,
	}
}
