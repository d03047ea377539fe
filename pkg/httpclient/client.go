package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// ErrNotFound はキーがゲートウェイに存在しないことを表す。
var ErrNotFound = errors.New("key not found")

// StatusError はゲートウェイが2xx以外を返したことを表す。
type StatusError struct {
	// StatusCode はHTTPステータスコード。
	StatusCode int
	// Message はエラーエンベロープのerrorフィールド。
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("unexpected status %d", e.StatusCode)
	}
	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, e.Message)
}

// Client はkvgatewayのHTTPクライアント。
type Client struct {
	// httpClient は内部で使用するHTTPクライアント。
	httpClient *http.Client
	// baseURL はゲートウェイのベースURL。
	baseURL string
	// token が空でなければBearerトークンとして送る。
	token string
}

// Option はClientの設定を変更する。
type Option func(*Client)

// WithToken はリクエストにBearerトークンを付与する。
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// WithHTTPClient は内部で使用するHTTPクライアントを差し替える。
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// New は新しいクライアントを生成する。
// baseURLにはゲートウェイのベースURL（例: "http://localhost:4000"）を指定する。
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL: baseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Set はキーに値を書き込み、ゲートウェイの確認メッセージを返す。
func (c *Client) Set(ctx context.Context, key, value string) (string, error) {
	req := struct {
		Key   string `json:"key"`
		Value string `json:"value"`
	}{Key: key, Value: value}

	var resp struct {
		Message string `json:"message"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/set", req, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// Get はキーの値を返す。キーが無い場合は ErrNotFound を返す。
// "/" を含むキーはゲートウェイのルーティングに一致しない。
func (c *Client) Get(ctx context.Context, key string) (string, error) {
	var resp map[string]string
	err := c.doJSON(ctx, http.MethodGet, "/get/"+url.PathEscape(key), nil, &resp)
	if statusErr := (*StatusError)(nil); errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound {
		return "", fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	if err != nil {
		return "", err
	}
	value, ok := resp[key]
	if !ok {
		return "", fmt.Errorf("response does not contain key %q", key)
	}
	return value, nil
}

// Ping はゲートウェイとその先のストアの疎通を確認する。
func (c *Client) Ping(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodGet, "/health", nil, nil)
}

// doJSON はJSON形式のHTTPリクエストを実行する共通処理。
func (c *Client) doJSON(ctx context.Context, method, path string, body any, result any) error {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var envelope struct {
			Error string `json:"error"`
		}
		respBody, _ := io.ReadAll(resp.Body)
		_ = json.Unmarshal(respBody, &envelope)
		return &StatusError{StatusCode: resp.StatusCode, Message: envelope.Error}
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("decoding response body: %w", err)
		}
	}
	return nil
}
