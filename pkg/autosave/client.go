package autosave

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go-dashboard/internal/features/preferences"
)

// Client talks to the dashboard preferences API.
type Client struct {
	BaseURL string
	UserID  string
	HTTP    *http.Client
}

func NewClient(baseURL, userID string) *Client {
	return &Client{
		BaseURL: baseURL,
		UserID:  userID,
		HTTP:    &http.Client{Timeout: 15 * time.Second},
	}
}

type preferencesResponse struct {
	Success     bool                             `json:"success"`
	Preferences *preferences.PreferencesDocument `json:"preferences"`
	Error       string                           `json:"error"`
}

// Get fetches the stored preferences. A user with no saved document
// yields (nil, nil).
func (c *Client) Get(ctx context.Context) (*preferences.PreferencesDocument, error) {
	u := fmt.Sprintf("%s/api/dashboard?userId=%s", c.BaseURL, url.QueryEscape(c.UserID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	var out preferencesResponse
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return out.Preferences, nil
}

// SaveLayout upserts one layout and returns the full saved document.
func (c *Client) SaveLayout(ctx context.Context, layout preferences.Layout) (*preferences.PreferencesDocument, error) {
	body, err := json.Marshal(map[string]interface{}{
		"userId": c.UserID,
		"layout": layout,
	})
	if err != nil {
		return nil, err
	}
	u := c.BaseURL + "/api/dashboard"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	var out preferencesResponse
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return out.Preferences, nil
}

// DeleteLayout removes a named layout.
func (c *Client) DeleteLayout(ctx context.Context, name string) (*preferences.PreferencesDocument, error) {
	u := fmt.Sprintf("%s/api/dashboard/layouts/%s?userId=%s", c.BaseURL, url.PathEscape(name), url.QueryEscape(c.UserID))
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, u, nil)
	if err != nil {
		return nil, err
	}
	var out preferencesResponse
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return out.Preferences, nil
}

// LoadOrDefault fetches preferences and falls back to a local default
// layout when the server has none or is unreachable. The fallback is
// not persisted; the first user-driven save will create the document.
func (c *Client) LoadOrDefault(ctx context.Context) *preferences.PreferencesDocument {
	doc, err := c.Get(ctx)
	if err == nil && doc != nil && len(doc.Layouts) > 0 {
		return doc
	}
	def := preferences.DefaultLayout()
	return &preferences.PreferencesDocument{
		Layouts:          []preferences.Layout{def},
		ActiveLayoutName: def.Name,
		GlobalSettings:   preferences.DefaultGlobalSettings(),
	}
}

func (c *Client) do(req *http.Request, out *preferencesResponse) error {
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response (%d): %w", resp.StatusCode, err)
	}
	if resp.StatusCode >= 400 {
		if out.Error != "" {
			return fmt.Errorf("server error (%d): %s", resp.StatusCode, out.Error)
		}
		return fmt.Errorf("server error (%d)", resp.StatusCode)
	}
	return nil
}
