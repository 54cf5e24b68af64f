package http

import "fmt"

// StatusError はサーバーが2xx以外のステータスを返した場合に RESTClient.Do が返すエラーです。
type StatusError struct {
	StatusCode int
	Body       string // 診断用のレスポンスボディ先頭部分
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("http status %d", e.StatusCode)
	}
	return fmt.Sprintf("http status %d: %s", e.StatusCode, e.Body)
}
