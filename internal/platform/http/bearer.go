package http

import (
	"context"
	"errors"
	"net/http"

	"stockpool/internal/platform/storage"
)

// TokenReader は永続ストレージからトークンを読み出すためのインターフェースです。
// Goの慣例に従い、インターフェースは利用者側で定義します。
type TokenReader interface {
	Get(ctx context.Context, key string) (string, error)
}

// BearerToken は storage.KeyJWTToken にトークンがあれば "Authorization: Bearer <token>" を付与する
// インターセプターを返します。トークンが無い場合はヘッダーなしで送信します。
// それ以外のストレージエラーではリクエストを中断します。トークンは毎回読み出し、書き込みはしません。
func BearerToken(store TokenReader) RequestInterceptor {
	return func(req *http.Request) error {
		token, err := store.Get(req.Context(), storage.KeyJWTToken)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return nil
			}
			return err
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		return nil
	}
}
