// Package dto はstock-pool APIレスポンスのデータ転送オブジェクトを定義します。
package dto

// CodeOK は成功を表す唯一のエンベロープコードです。
const CodeOK = 200

// Envelope は全レスポンスを包む {code, message, data} です。
type Envelope[T any] struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}
