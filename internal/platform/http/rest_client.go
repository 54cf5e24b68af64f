package http

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
)

// errorBodyLimit は StatusError に保持するボディの上限です。
const errorBodyLimit = 4096

// RequestInterceptor は送信直前のリクエストを書き換えます。
// エラーを返した場合、リクエストは送信されずそのエラーがそのまま呼び出し元へ返されます。
type RequestInterceptor func(req *http.Request) error

// RESTClient はベースURL・タイムアウト付きHTTPクライアント・リクエストインターセプターをまとめた、
// アプリケーション全体で1つだけ生成されるAPIクライアントです。
// レスポンス側のインターセプターは持たず、レスポンスの解釈は呼び出し側に任せます。
type RESTClient struct {
	baseURL      string
	client       *http.Client
	interceptors []RequestInterceptor
}

// NewRESTClient は指定されたベースURL（APIプレフィックスを含む）でRESTClientを生成します。
func NewRESTClient(baseURL string, client *http.Client, interceptors ...RequestInterceptor) *RESTClient {
	return &RESTClient{
		baseURL:      strings.TrimRight(baseURL, "/"),
		client:       client,
		interceptors: interceptors,
	}
}

// BaseURL はリクエストパスの基準となるベースURLを返します。
func (c *RESTClient) BaseURL() string {
	return c.baseURL
}

// NewRequest はベースURLにpathを連結したリクエストを生成します。
// pathは先頭の "/" の有無を問いません。queryがnilの場合はクエリ文字列を付与しません。
func (c *RESTClient) NewRequest(ctx context.Context, method, path string, query url.Values, body io.Reader) (*http.Request, error) {
	if path != "" && path[0] != '/' {
		path = "/" + path
	}
	u, err := url.Parse(c.baseURL + path)
	if err != nil {
		return nil, err
	}
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, err
	}
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", "application/json")
	}
	return req, nil
}

// Do はインターセプターを順に適用してからリクエストを送信します。
// 2xx以外のステータスは *StatusError として返し、その場合レスポンスボディは既に閉じられています。
// 2xxの場合、呼び出し側がレスポンスボディを閉じる責任を持ちます。
func (c *RESTClient) Do(req *http.Request) (*http.Response, error) {
	for _, intercept := range c.interceptors {
		if err := intercept(req); err != nil {
			return nil, err
		}
	}

	res, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		defer closeBody(res)
		// ボディの読み取り失敗はステータスエラーを優先し、Body に残す
		slurp, readErr := io.ReadAll(io.LimitReader(res.Body, errorBodyLimit))
		body := strings.TrimSpace(string(slurp))
		if readErr != nil {
			body = strings.TrimSpace(body + " (read body: " + readErr.Error() + ")")
		}
		return nil, &StatusError{StatusCode: res.StatusCode, Body: body}
	}
	return res, nil
}

// closeBody はレスポンスボディを読み捨てて閉じます。
func closeBody(res *http.Response) {
	_, _ = io.Copy(io.Discard, res.Body)
	if err := res.Body.Close(); err != nil {
		slog.Warn("failed to close response body", "error", err)
	}
}
