// Package usecase はstockpoolフィーチャーのユースケースを提供します。
package usecase

import (
	"context"

	"stockpool/internal/feature/stockpool/domain/entity"
)

// StockAPI はstock-pool APIへのアクセスを抽象化したインターフェースです。
// *stockapi.Client が実装します。
type StockAPI interface {
	GetStockPools(ctx context.Context) ([]entity.StockPool, error)
	GetStocksByPoolID(ctx context.Context, poolID int64) ([]entity.StockInfo, error)
	Get120MinIndicators(ctx context.Context, poolID int64) ([]entity.Indicator, error)
	AddStockToPool(ctx context.Context, poolID int64, stockCode, remark string) error
	RemoveStockFromPool(ctx context.Context, poolID int64, stockCode string) error
	FreezeStock(ctx context.Context, symbol string) error
	UnfreezeStock(ctx context.Context, symbol string) error
	GetMyHoldingPoolID(ctx context.Context) (*int64, error)
	GetStockRemarks(ctx context.Context, stockCode string) (entity.StockRemarks, error)
}

// StockWithIndicator は銘柄情報と、その銘柄の120分足指標（存在しない場合はnil）の組です。
type StockWithIndicator struct {
	entity.StockInfo
	Indicator *entity.Indicator `json:"indicator"`
}

// StockPoolUsecase はCLIから呼び出される株式プール操作をまとめます。
// APIのエラーは変換せずにそのまま返します。
type StockPoolUsecase struct {
	api StockAPI
}

// NewStockPoolUsecase は新しい StockPoolUsecase を作成します。
func NewStockPoolUsecase(api StockAPI) *StockPoolUsecase {
	return &StockPoolUsecase{api: api}
}

func (u *StockPoolUsecase) ListPools(ctx context.Context) ([]entity.StockPool, error) {
	return u.api.GetStockPools(ctx)
}

func (u *StockPoolUsecase) ListStocks(ctx context.Context, poolID int64) ([]entity.StockInfo, error) {
	return u.api.GetStocksByPoolID(ctx, poolID)
}

func (u *StockPoolUsecase) ListIndicators(ctx context.Context, poolID int64) ([]entity.Indicator, error) {
	return u.api.Get120MinIndicators(ctx, poolID)
}

// ListStocksWithIndicators はプールの銘柄一覧と120分足指標をstockCodeで結合します。
// 銘柄の並び順は一覧取得APIの順序を保ちます。
func (u *StockPoolUsecase) ListStocksWithIndicators(ctx context.Context, poolID int64) ([]StockWithIndicator, error) {
	stocks, err := u.api.GetStocksByPoolID(ctx, poolID)
	if err != nil {
		return nil, err
	}
	indicators, err := u.api.Get120MinIndicators(ctx, poolID)
	if err != nil {
		return nil, err
	}

	byCode := make(map[string]entity.Indicator, len(indicators))
	for _, ind := range indicators {
		byCode[ind.StockCode] = ind
	}

	out := make([]StockWithIndicator, 0, len(stocks))
	for _, s := range stocks {
		row := StockWithIndicator{StockInfo: s}
		if ind, ok := byCode[s.StockCode]; ok {
			row.Indicator = &ind
		}
		out = append(out, row)
	}
	return out, nil
}

func (u *StockPoolUsecase) AddStock(ctx context.Context, poolID int64, stockCode, remark string) error {
	return u.api.AddStockToPool(ctx, poolID, stockCode, remark)
}

func (u *StockPoolUsecase) RemoveStock(ctx context.Context, poolID int64, stockCode string) error {
	return u.api.RemoveStockFromPool(ctx, poolID, stockCode)
}

func (u *StockPoolUsecase) Freeze(ctx context.Context, symbol string) error {
	return u.api.FreezeStock(ctx, symbol)
}

func (u *StockPoolUsecase) Unfreeze(ctx context.Context, symbol string) error {
	return u.api.UnfreezeStock(ctx, symbol)
}

// MyHoldingPoolID は「保有中」プールのIDを返します。未設定の場合はnilです。
func (u *StockPoolUsecase) MyHoldingPoolID(ctx context.Context) (*int64, error) {
	return u.api.GetMyHoldingPoolID(ctx)
}

func (u *StockPoolUsecase) Remarks(ctx context.Context, stockCode string) (entity.StockRemarks, error) {
	return u.api.GetStockRemarks(ctx, stockCode)
}
