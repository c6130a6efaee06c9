// Package tui provides the Bubble Tea drill interface and its API client.
package tui

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"trireme_flashcards/internal/model"

	"github.com/google/uuid"
)

// Client はドリルAPIを呼び出す薄いHTTPクライアントです。
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// apiError はサーバーのエラーレスポンスをエラー値として扱うための型です。
type apiError struct {
	StatusCode int
	Detail     model.ErrorDetail
}

func (e *apiError) Error() string {
	if e.Detail.Message != "" {
		return e.Detail.Message
	}
	return fmt.Sprintf("server returned status %d", e.StatusCode)
}

func (c *Client) do(ctx context.Context, method, path string, reqBody, respBody interface{}) error {
	var bodyReader io.Reader
	if reqBody != nil {
		raw, err := json.Marshal(reqBody)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var errResp model.APIErrorResponse
		_ = json.Unmarshal(raw, &errResp)
		return &apiError{StatusCode: resp.StatusCode, Detail: errResp.Error}
	}

	if respBody != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, respBody); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// Login はトークンを取得してクライアントに保持します。
func (c *Client) Login(ctx context.Context, name, password string) error {
	var resp model.LoginResponse
	err := c.do(ctx, http.MethodPost, "/api/v1/auth/login",
		model.LoginRequest{Name: name, Password: password}, &resp)
	if err != nil {
		return err
	}
	c.token = resp.AccessToken
	return nil
}

func (c *Client) ListDecks(ctx context.Context) ([]model.DeckResponse, error) {
	var decks []model.DeckResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/decks", nil, &decks); err != nil {
		return nil, err
	}
	return decks, nil
}

func (c *Client) StartDrill(ctx context.Context, deckID uint) (*model.StartDrillResponse, error) {
	var resp model.StartDrillResponse
	path := fmt.Sprintf("/api/v1/decks/%d/drills", deckID)
	if err := c.do(ctx, http.MethodPost, path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Next(ctx context.Context, drillID uuid.UUID) (*model.DrillAdvanceResponse, error) {
	var resp model.DrillAdvanceResponse
	path := fmt.Sprintf("/api/v1/drills/%s/next", drillID)
	if err := c.do(ctx, http.MethodPost, path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Flip(ctx context.Context, drillID uuid.UUID) (*model.DrillCardView, error) {
	var resp model.DrillCardView
	path := fmt.Sprintf("/api/v1/drills/%s/flip", drillID)
	if err := c.do(ctx, http.MethodPost, path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Pass(ctx context.Context, drillID uuid.UUID) (*model.DrillProgressResponse, error) {
	var resp model.DrillProgressResponse
	path := fmt.Sprintf("/api/v1/drills/%s/pass", drillID)
	if err := c.do(ctx, http.MethodPost, path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Fail(ctx context.Context, drillID uuid.UUID) (*model.DrillProgressResponse, error) {
	var resp model.DrillProgressResponse
	path := fmt.Sprintf("/api/v1/drills/%s/fail", drillID)
	if err := c.do(ctx, http.MethodPost, path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) StopDrill(ctx context.Context, drillID uuid.UUID) error {
	path := fmt.Sprintf("/api/v1/drills/%s", drillID)
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}
