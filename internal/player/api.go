package player

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"marquee/internal/registry"
	"marquee/internal/schedule"
)

// Client — HTTP-клиент дисплея. Любая сетевая ошибка возвращается как есть:
// протокол пейринга сам решает, когда повторить (всегда, тем же интервалом).
// Таймауты — забота транспорта, ядро их не настраивает.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTP:    http.DefaultClient,
	}
}

func (c *Client) postJSON(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s: unexpected status %d", path, resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return registry.ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s: unexpected status %d", path, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) Register(ctx context.Context, id Identity, name string) (registry.Device, error) {
	var out struct {
		Success bool            `json:"success"`
		Device  registry.Device `json:"device"`
	}
	err := c.postJSON(ctx, "/api/devices/register", map[string]string{
		"deviceId": id.DeviceID,
		"code":     id.Code,
		"name":     name,
	}, &out)
	return out.Device, err
}

func (c *Client) Poll(ctx context.Context, deviceID string) (registry.PollResult, error) {
	var out registry.PollResult
	err := c.getJSON(ctx, "/api/devices/poll/"+url.PathEscape(deviceID), &out)
	return out, err
}

func (c *Client) FetchConfig(ctx context.Context, projectID string) (map[string]any, error) {
	var out map[string]any
	err := c.getJSON(ctx, "/api/config?project="+url.QueryEscape(projectID), &out)
	return out, err
}

func (c *Client) FetchPromotions(ctx context.Context, projectID string) ([]map[string]any, error) {
	var out []map[string]any
	err := c.getJSON(ctx, "/api/promotions?project="+url.QueryEscape(projectID), &out)
	return out, err
}

func (c *Client) FetchSchedule(ctx context.Context, projectID string) ([]schedule.Rule, error) {
	var out []schedule.Rule
	err := c.getJSON(ctx, "/api/schedule?project="+url.QueryEscape(projectID), &out)
	return out, err
}
