package http

import (
	"net"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// DefaultTimeout は未設定時に使うクライアント全体のタイムアウトです。
const DefaultTimeout = 15 * time.Second

// RoundTripperWrapper はクライアントのTransportを装飾します（メトリクス、テスト用の差し替えなど）。
type RoundTripperWrapper func(http.RoundTripper) http.RoundTripper

// NewHTTPClient はstock-pool APIの呼び出し用に設定されたHTTPクライアントを作成します。
//
// 設定:
//   - Proxy: 環境変数（HTTP_PROXYなど）が設定されている場合に使用
//   - Dialer.Timeout: TCP接続タイムアウト（デフォルトより短い）
//   - Dialer.KeepAlive: 再利用可能なTCP接続の維持期間
//   - MaxIdleConns: 最大アイドル接続数
//   - IdleConnTimeout: アイドル接続の維持期間
//   - TLSHandshakeTimeout: HTTPSハンドシェイクの最大時間
//   - Client.Timeout: リクエスト全体のタイムアウト（0以下ならDefaultTimeout）
//
// Transportは otelhttp でラップされます。OpenTelemetry SDK が未設定の場合は no-op です。
// wrappers は otelhttp の外側に、渡された順に適用されます。
func NewHTTPClient(timeout time.Duration, wrappers ...RoundTripperWrapper) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}

	var rt http.RoundTripper = otelhttp.NewTransport(t)
	for _, wrap := range wrappers {
		rt = wrap(rt)
	}
	return &http.Client{Timeout: timeout, Transport: rt}
}
