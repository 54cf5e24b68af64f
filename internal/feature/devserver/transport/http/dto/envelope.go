// Package dto は開発サーバーのレスポンス形式を定義します。
package dto

import "net/http"

// Response はすべてのエンドポイントが返す {code, message, data} 形式のボディです。
// アプリケーションエラーもHTTP 200で返し、codeで区別します。
type Response struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// OK は成功レスポンスを生成します。
func OK(data any) Response {
	return Response{Code: http.StatusOK, Message: "success", Data: data}
}

// Fail はエラーレスポンスを生成します。dataは常にnullです。
func Fail(code int, message string) Response {
	return Response{Code: code, Message: message}
}
