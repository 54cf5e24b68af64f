// Package handler はプラットフォームレベルのエンドポイント用HTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger は依存先の疎通確認を行います。*sql.DB が実装します。
type Pinger interface {
	PingContext(ctx context.Context) error
}

// pingTimeout bounds a single dependency check.
const pingTimeout = 2 * time.Second

// NewHealth は /healthz エンドポイントのハンドラーを生成します。
// GETでは各依存先に疎通確認を行い、失敗があれば503を返します。
// HEADとOPTIONSは依存先を確認しません。
func NewHealth(deps map[string]Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 明示的にキャッシュを防止
		c.Header("Cache-Control", "no-store")

		switch c.Request.Method {
		case http.MethodHead:
			c.Status(http.StatusOK)
			return
		case http.MethodOptions:
			c.Status(http.StatusNoContent)
			return
		}

		checks := make(map[string]string, len(deps))
		status, code := "ok", http.StatusOK
		for name, dep := range deps {
			ctx, cancel := context.WithTimeout(c.Request.Context(), pingTimeout)
			err := dep.PingContext(ctx)
			cancel()
			if err != nil {
				checks[name] = err.Error()
				status, code = "unavailable", http.StatusServiceUnavailable
				continue
			}
			checks[name] = "ok"
		}

		body := gin.H{"status": status}
		if len(checks) > 0 {
			body["checks"] = checks
		}
		c.JSON(code, body)
	}
}
