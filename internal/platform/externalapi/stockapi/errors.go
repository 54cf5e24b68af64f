package stockapi

// APIError はエンベロープの code が 200 以外だった場合のアプリケーションエラーです。
// Error() はサーバーの message をそのまま返します（空文字列の場合も含む）。
type APIError struct {
	Code    int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}
