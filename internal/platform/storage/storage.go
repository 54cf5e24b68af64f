// Package storage はクライアント側の永続キーバリューストレージを提供します。
// RESTクライアントが使うBearerトークンは KeyJWTToken に保存されます。
package storage

import (
	"context"
	"errors"
)

// KeyJWTToken はBearerトークンを保存する固定キーです。
const KeyJWTToken = "jwt_token"

// ErrNotFound はキーに値が無い場合に Get が返します。
var ErrNotFound = errors.New("storage: key not found")

// Store はプロセスの再起動後も値が残る文字列キーバリューストアです。
// インメモリ実装のみ例外で、テスト用です。
type Store interface {
	// Get はkeyの値を返します。無い場合は ErrNotFound です。
	Get(ctx context.Context, key string) (string, error)
	// Set はkeyに値を保存します。既存の値は上書きされます。
	Set(ctx context.Context, key, value string) error
	// Delete はkeyを削除します。存在しないキーの削除はエラーになりません。
	Delete(ctx context.Context, key string) error
}
