package stockapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/oapi-codegen/runtime"

	"stockpool/internal/feature/stockpool/domain/entity"
	"stockpool/internal/platform/externalapi/stockapi/dto"
)

// RESTClient はリクエストの生成と送信を行うHTTPクライアントのインターフェースです。
// *infrahttp.RESTClient が実装します。テストでは差し替え可能です。
type RESTClient interface {
	NewRequest(ctx context.Context, method, path string, query url.Values, body io.Reader) (*http.Request, error)
	Do(req *http.Request) (*http.Response, error)
}

// Client はstock-pool APIの各エンドポイントを1メソッドずつ公開します。
// 各メソッドはHTTPリクエストを1回だけ送信し、エンベロープの data をそのまま返します。
// 失敗時は診断ログを1件出力してからエラーを返します。成功時はログを出力しません。
type Client struct {
	rest   RESTClient
	logger *slog.Logger
}

// NewClient は指定されたRESTクライアントとロガーでClientを生成します。loggerがnilの場合はslog.Default()を使用します。
func NewClient(rest RESTClient, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{rest: rest, logger: logger}
}

// GetStockPools は株式プールの一覧を取得します。
func (c *Client) GetStockPools(ctx context.Context) ([]entity.StockPool, error) {
	return call[[]entity.StockPool](ctx, c, request{
		op:     "GetStockPools",
		failed: "failed to get stock pools",
		method: http.MethodGet,
		path:   "/stock-pools",
	})
}

// GetStocksByPoolID は指定プールに登録された銘柄の一覧を取得します。
func (c *Client) GetStocksByPoolID(ctx context.Context, poolID int64) ([]entity.StockInfo, error) {
	r := request{
		op:     "GetStocksByPoolID",
		failed: "failed to get stocks of pool",
		method: http.MethodGet,
		attrs:  []any{"poolId", poolID},
	}
	r.path, r.pathErr = buildPath("/stock-operations/{poolId}/stocks", "poolId", poolID)
	return call[[]entity.StockInfo](ctx, c, r)
}

// Get120MinIndicators は指定プールの銘柄について120分足の指標を取得します。
func (c *Client) Get120MinIndicators(ctx context.Context, poolID int64) ([]entity.Indicator, error) {
	r := request{
		op:     "Get120MinIndicators",
		failed: "failed to get 120-minute indicators of pool",
		method: http.MethodGet,
		attrs:  []any{"poolId", poolID},
	}
	r.path, r.pathErr = buildPath("/stock-indicators/{poolId}/analyze-120min-indicators", "poolId", poolID)
	return call[[]entity.Indicator](ctx, c, r)
}

// AddStockToPool は銘柄をプールに追加します。
// フォームデータ（application/x-www-form-urlencoded）で送信し、remarkは空でない場合のみ付与します。
func (c *Client) AddStockToPool(ctx context.Context, poolID int64, stockCode, remark string) error {
	form := url.Values{}
	form.Set("stockCode", stockCode)
	if remark != "" {
		form.Set("remark", remark)
	}
	r := request{
		op:     "AddStockToPool",
		failed: "failed to add stock to pool",
		method: http.MethodPost,
		form:   form,
		attrs:  []any{"poolId", poolID, "stockCode", stockCode},
	}
	r.path, r.pathErr = buildPath("/stock-operations/{poolId}/add-stock", "poolId", poolID)
	_, err := call[json.RawMessage](ctx, c, r)
	return err
}

// RemoveStockFromPool は銘柄をプールから削除します。stockCodeはクエリパラメータで渡します。
func (c *Client) RemoveStockFromPool(ctx context.Context, poolID int64, stockCode string) error {
	r := request{
		op:     "RemoveStockFromPool",
		failed: "failed to remove stock from pool",
		method: http.MethodDelete,
		query:  url.Values{"stockCode": {stockCode}},
		attrs:  []any{"poolId", poolID, "stockCode", stockCode},
	}
	r.path, r.pathErr = buildPath("/stock-operations/{poolId}/remove-stock", "poolId", poolID)
	_, err := call[json.RawMessage](ctx, c, r)
	return err
}

// FreezeStock は銘柄を凍結します。
func (c *Client) FreezeStock(ctx context.Context, symbol string) error {
	r := request{
		op:     "FreezeStock",
		failed: "failed to freeze stock",
		method: http.MethodPost,
		attrs:  []any{"symbol", symbol},
	}
	r.path, r.pathErr = buildPath("/stock-operations/freeze/{symbol}", "symbol", symbol)
	_, err := call[json.RawMessage](ctx, c, r)
	return err
}

// UnfreezeStock は銘柄の凍結を解除します。
func (c *Client) UnfreezeStock(ctx context.Context, symbol string) error {
	r := request{
		op:     "UnfreezeStock",
		failed: "failed to unfreeze stock",
		method: http.MethodPost,
		attrs:  []any{"symbol", symbol},
	}
	r.path, r.pathErr = buildPath("/stock-operations/unfreeze/{symbol}", "symbol", symbol)
	_, err := call[json.RawMessage](ctx, c, r)
	return err
}

// GetMyHoldingPoolID は「保有中」プールのIDを返します。サーバーが null を返した場合は nil です。
func (c *Client) GetMyHoldingPoolID(ctx context.Context) (*int64, error) {
	return call[*int64](ctx, c, request{
		op:     "GetMyHoldingPoolID",
		failed: "failed to get my-holding pool id",
		method: http.MethodGet,
		path:   "/stock-pools/my-holding",
	})
}

// GetStockRemarks は銘柄の備考を取得します。
func (c *Client) GetStockRemarks(ctx context.Context, stockCode string) (entity.StockRemarks, error) {
	r := request{
		op:     "GetStockRemarks",
		failed: "failed to get stock remarks",
		method: http.MethodGet,
		attrs:  []any{"stockCode", stockCode},
	}
	r.path, r.pathErr = buildPath("/stock-operations/remarks/{stockCode}", "stockCode", stockCode)
	return call[entity.StockRemarks](ctx, c, r)
}

// request はAPIへの1回のリクエスト定義です。
type request struct {
	op      string // 診断ログの操作ラベル
	failed  string // 失敗時のログメッセージ
	method  string
	path    string
	pathErr error
	query   url.Values
	form    url.Values
	attrs   []any
}

// call はリクエストを1回送信してエンベロープを検証し、data を返します。
// どの経路で失敗してもログは1件だけ出力し、エラーは変更せずに返します。
func call[T any](ctx context.Context, c *Client, r request) (T, error) {
	data, err := roundTrip[T](ctx, c.rest, c.logger, r)
	if err != nil {
		args := append([]any{"op", r.op}, r.attrs...)
		args = append(args, "error", err)
		c.logger.ErrorContext(ctx, r.failed, args...)
		return data, err
	}
	return data, nil
}

// roundTrip は code を先に検証し、成功時にのみ data をTへデコードします。
// 失敗時の data は形を問わず無視します。data が無いか null の場合はTのゼロ値です。
func roundTrip[T any](ctx context.Context, rest RESTClient, logger *slog.Logger, r request) (T, error) {
	var zero T
	if r.pathErr != nil {
		return zero, r.pathErr
	}

	var body io.Reader
	if r.form != nil {
		body = strings.NewReader(r.form.Encode())
	}
	req, err := rest.NewRequest(ctx, r.method, r.path, r.query, body)
	if err != nil {
		return zero, err
	}
	if r.form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	res, err := rest.Do(req)
	if err != nil {
		return zero, err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			logger.WarnContext(ctx, "failed to close response body", "op", r.op, "error", err)
		}
	}()

	var env dto.Envelope[json.RawMessage]
	if err := json.NewDecoder(res.Body).Decode(&env); err != nil {
		return zero, err
	}
	if env.Code != dto.CodeOK {
		return zero, &APIError{Code: env.Code, Message: env.Message}
	}
	if len(env.Data) == 0 || bytes.Equal(env.Data, []byte("null")) {
		return zero, nil
	}

	var data T
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return zero, err
	}
	return data, nil
}

// buildPath はOpenAPIのsimpleスタイルでパスパラメータを1つ埋め込みます。
// 文字列の予約文字はパーセントエンコードされます。
func buildPath(template, name string, value any) (string, error) {
	encoded, err := runtime.StyleParamWithLocation("simple", false, name, runtime.ParamLocationPath, value)
	if err != nil {
		return "", err
	}
	return strings.Replace(template, "{"+name+"}", encoded, 1), nil
}
