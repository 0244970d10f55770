package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/AliKaner/mc-case/internal/client/models"
	"resty.dev/v3"
)

// HTTPClient talks to a jsonplaceholder-style REST API.
type HTTPClient struct {
	rc *resty.Client
}

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	rc := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	return &HTTPClient{rc: rc}
}

func (c *HTTPClient) Close() error {
	return c.rc.Close()
}

// do sends the request and returns the raw body of a 2xx answer. Transport
// failures become ErrUnavailable, other statuses a *StatusError.
func (c *HTTPClient) do(ctx context.Context, method, path string, id *models.ID, body any) ([]byte, error) {
	req := c.rc.R().SetContext(ctx)
	if id != nil {
		req.SetPathParam("id", id.String())
	}
	if body != nil {
		req.SetBody(body)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w (%v)", ErrUnavailable, err)
	}

	raw := []byte(resp.String())
	if resp.IsError() || resp.StatusCode() >= 300 {
		return nil, newStatusError(resp.StatusCode(), errorMessage(raw))
	}
	return raw, nil
}

func errorMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return payload.Message
}

// decodeUsers accepts either a bare array or an object with a users field.
func decodeUsers(body []byte) ([]models.Record, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var users []models.Record
		if err := json.Unmarshal(trimmed, &users); err != nil {
			return nil, fmt.Errorf("decode users: %w", err)
		}
		return users, nil
	}

	var envelope struct {
		Users []models.Record `json:"users"`
	}
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	return envelope.Users, nil
}

func decodeUser(body []byte) (models.Record, error) {
	var rec models.Record
	if err := json.Unmarshal(body, &rec); err != nil {
		return models.Record{}, fmt.Errorf("decode user: %w", err)
	}
	return rec, nil
}

func (c *HTTPClient) FetchUsers(ctx context.Context) ([]models.Record, error) {
	body, err := c.do(ctx, http.MethodGet, "/users", nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeUsers(body)
}

func (c *HTTPClient) FetchUser(ctx context.Context, id models.ID) (models.Record, error) {
	body, err := c.do(ctx, http.MethodGet, "/users/{id}", &id, nil)
	if err != nil {
		return models.Record{}, err
	}
	return decodeUser(body)
}

func (c *HTTPClient) CreateUser(ctx context.Context, rec models.Record) (models.Record, error) {
	body, err := c.do(ctx, http.MethodPost, "/users", nil, rec)
	if err != nil {
		return models.Record{}, err
	}
	return decodeUser(body)
}

func (c *HTTPClient) PatchUser(ctx context.Context, id models.ID, patch models.Patch) (models.Record, error) {
	body, err := c.do(ctx, http.MethodPatch, "/users/{id}", &id, patch)
	if err != nil {
		return models.Record{}, err
	}
	return decodeUser(body)
}

func (c *HTTPClient) DeleteUser(ctx context.Context, id models.ID) error {
	_, err := c.do(ctx, http.MethodDelete, "/users/{id}", &id, nil)
	return err
}
