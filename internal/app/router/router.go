package router

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	devhandler "stockpool/internal/feature/devserver/transport/handler"
	"stockpool/internal/platform/http/handler"
	jwtmw "stockpool/internal/platform/jwt"
	"stockpool/internal/platform/metrics"
)

// Options は開発サーバーのルーター設定です。
type Options struct {
	APIPrefix string                    // e.g. "/api"
	JWTSecret string                    // 空の場合は認証なし
	Metrics   *metrics.ServerMetrics    // nil の場合は記録しない
	Gatherer  prometheus.Gatherer       // nil の場合 /metrics を公開しない
	Health    map[string]handler.Pinger // /healthz で確認する依存先
}

func NewRouter(stockPool *devhandler.StockPoolHandler, opts Options) *gin.Engine {
	r := gin.Default()
	// "/" を含むシンボルをパスパラメータで受け取るため
	r.UseRawPath = true

	if opts.Metrics != nil {
		r.Use(opts.Metrics.Middleware())
	}

	// 認証不要
	health := handler.NewHealth(opts.Health)
	r.GET("/healthz", health)
	r.HEAD("/healthz", health)
	r.OPTIONS("/healthz", health)
	if opts.Gatherer != nil {
		r.GET("/metrics", metrics.Handler(opts.Gatherer))
	}

	// APIはプレフィックス配下、JWT_SECRET設定時のみ認証必須
	api := r.Group(normalizePrefix(opts.APIPrefix))
	api.Use(jwtmw.AuthRequired(opts.JWTSecret))
	{
		api.GET("/stock-pools", stockPool.ListPools)
		api.GET("/stock-pools/my-holding", stockPool.MyHolding)

		api.GET("/stock-operations/:poolId/stocks", stockPool.ListStocks)
		api.POST("/stock-operations/:poolId/add-stock", stockPool.AddStock)
		api.DELETE("/stock-operations/:poolId/remove-stock", stockPool.RemoveStock)
		api.POST("/stock-operations/freeze/:symbol", stockPool.Freeze)
		api.POST("/stock-operations/unfreeze/:symbol", stockPool.Unfreeze)
		api.GET("/stock-operations/remarks/:stockCode", stockPool.Remarks)

		api.GET("/stock-indicators/:poolId/analyze-120min-indicators", stockPool.Analyze120MinIndicators)
	}

	return r
}

func normalizePrefix(prefix string) string {
	prefix = strings.TrimRight(prefix, "/")
	if prefix == "" {
		return "/"
	}
	if !strings.HasPrefix(prefix, "/") {
		prefix = "/" + prefix
	}
	return prefix
}
