package usecase

import "errors"

// 開発サーバーのアプリケーションエラー。ハンドラーでエンベロープのcodeに変換されます。
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrPoolNotFound    = errors.New("pool not found")
	ErrStockNotFound   = errors.New("stock not found")
	ErrStockExists     = errors.New("stock already in pool")
	ErrRemarksNotFound = errors.New("remarks not found")
)
