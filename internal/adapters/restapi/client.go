package restapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"sync"
	"time"

	"bhasaconnect/internal/config"
	"bhasaconnect/internal/ports/apiclient"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// Client کلاینت مشترک HTTP برای همه سرویس‌ها؛ توکن Bearer اینجا تزریق می‌شود
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	mu        sync.RWMutex
	authToken string
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{},
	}
}

var _ apiclient.TokenInjector = (*Client)(nil)

func (c *Client) SetAuthToken(token string) {
	c.mu.Lock()
	c.authToken = token
	c.mu.Unlock()
}

func (c *Client) RemoveAuthToken() {
	c.mu.Lock()
	c.authToken = ""
	c.mu.Unlock()
}

func (c *Client) token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.authToken
}

// do یک فراخوانی JSON انجام می‌دهد و بدنه خام پاسخ را برمی‌گرداند
func (c *Client) do(ctx context.Context, method, endpoint string, body interface{}) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+endpoint, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if t := c.token(); t != "" {
		req.Header.Set("Authorization", "Bearer "+t)
	}

	return c.send(req)
}

// upload فراخوانی multipart با فیلد file؛ بدون Content-Type دستی JSON
func (c *Client) upload(ctx context.Context, endpoint string, up apiclient.Upload) ([]byte, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", up.FileName)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(up.Data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+endpoint, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	if t := c.token(); t != "" {
		req.Header.Set("Authorization", "Bearer "+t)
	}

	return c.send(req)
}

func (c *Client) send(req *http.Request) ([]byte, error) {
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, &apiclient.NetworkError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &apiclient.NetworkError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &apiclient.ApiError{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(raw),
		}
	}

	// بعضی endpointها با status 2xx ولی success=false جواب می‌دهند
	if s := gjson.GetBytes(raw, "success"); s.Exists() && !s.Bool() {
		return nil, &apiclient.ApiError{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(raw),
		}
	}

	return raw, nil
}

// errorMessage پیام خطا را از شکل‌های مختلف بدنه بیرون می‌کشد
func errorMessage(raw []byte) string {
	for _, key := range []string{"message", "detail", "error"} {
		if v := gjson.GetBytes(raw, key); v.Exists() && v.String() != "" {
			return v.String()
		}
	}
	return "An error occurred"
}

// unwrapData اگر پاسخ envelope باشد data را جدا می‌کند وگرنه کل بدنه را برمی‌گرداند
func unwrapData(raw []byte) []byte {
	if gjson.GetBytes(raw, "success").Exists() {
		if d := gjson.GetBytes(raw, "data"); d.Exists() {
			return []byte(d.Raw)
		}
	}
	return raw
}

// parseTime بک‌اند گاهی timezone نمی‌فرستد؛ مقدار غیرقابل‌خواندن لاگ می‌شود
func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05.999999", "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	if config.Logger != nil {
		config.Logger.Warn("⚠️ Unparseable timestamp from backend", zap.String("value", s))
	}
	return time.Time{}
}
