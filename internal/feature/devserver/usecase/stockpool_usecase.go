// Package usecase は開発サーバーの株式プール操作を提供します。
package usecase

import (
	"context"
	"fmt"
	"strings"

	"stockpool/internal/feature/stockpool/domain/entity"
)

// Repository は株式プールの永続化を抽象化したインターフェースです。
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type Repository interface {
	ListPools(ctx context.Context) ([]entity.StockPool, error)
	PoolExists(ctx context.Context, poolID int64) (bool, error)
	ListStocks(ctx context.Context, poolID int64) ([]entity.StockInfo, error)
	ListIndicators(ctx context.Context, poolID int64) ([]entity.Indicator, error)
	// AddStock appends the stock at the end of the pool. It returns ErrStockExists for duplicates.
	AddStock(ctx context.Context, poolID int64, stockCode, remark string) error
	// RemoveStock returns ErrStockNotFound if the pool does not hold the stock.
	RemoveStock(ctx context.Context, poolID int64, stockCode string) error
	// SetFrozen flags every row of symbol and returns how many rows matched.
	SetFrozen(ctx context.Context, symbol string, frozen bool) (int64, error)
	MyHoldingPoolID(ctx context.Context) (*int64, error)
	// FindRemarks returns ErrRemarksNotFound if nothing is recorded for symbol.
	FindRemarks(ctx context.Context, symbol string) (entity.StockRemarks, error)
}

// StockPoolUsecase は入力を検証してからリポジトリを呼び出します。
type StockPoolUsecase struct {
	repo Repository
}

// NewStockPoolUsecase は新しい StockPoolUsecase を作成します。
func NewStockPoolUsecase(repo Repository) *StockPoolUsecase {
	return &StockPoolUsecase{repo: repo}
}

func (u *StockPoolUsecase) ListPools(ctx context.Context) ([]entity.StockPool, error) {
	return u.repo.ListPools(ctx)
}

// ListStocks はプールの銘柄をposition順に返します。
func (u *StockPoolUsecase) ListStocks(ctx context.Context, poolID int64) ([]entity.StockInfo, error) {
	if err := u.requirePool(ctx, poolID); err != nil {
		return nil, err
	}
	return u.repo.ListStocks(ctx, poolID)
}

// Analyze120MinIndicators はプールの各銘柄の120分足指標を返します。
func (u *StockPoolUsecase) Analyze120MinIndicators(ctx context.Context, poolID int64) ([]entity.Indicator, error) {
	if err := u.requirePool(ctx, poolID); err != nil {
		return nil, err
	}
	return u.repo.ListIndicators(ctx, poolID)
}

// AddStock は銘柄をプールの末尾に追加します。remarkが空でなければ備考として記録します。
func (u *StockPoolUsecase) AddStock(ctx context.Context, poolID int64, stockCode, remark string) error {
	stockCode = strings.TrimSpace(stockCode)
	if stockCode == "" {
		return fmt.Errorf("%w: stockCode is required", ErrInvalidArgument)
	}
	if err := u.requirePool(ctx, poolID); err != nil {
		return err
	}
	return u.repo.AddStock(ctx, poolID, stockCode, remark)
}

func (u *StockPoolUsecase) RemoveStock(ctx context.Context, poolID int64, stockCode string) error {
	if stockCode == "" {
		return fmt.Errorf("%w: stockCode is required", ErrInvalidArgument)
	}
	if err := u.requirePool(ctx, poolID); err != nil {
		return err
	}
	return u.repo.RemoveStock(ctx, poolID, stockCode)
}

// SetFrozen はすべてのプールにある symbol の凍結状態を変更します。
func (u *StockPoolUsecase) SetFrozen(ctx context.Context, symbol string, frozen bool) error {
	n, err := u.repo.SetFrozen(ctx, symbol, frozen)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrStockNotFound
	}
	return nil
}

func (u *StockPoolUsecase) MyHoldingPoolID(ctx context.Context) (*int64, error) {
	return u.repo.MyHoldingPoolID(ctx)
}

func (u *StockPoolUsecase) Remarks(ctx context.Context, symbol string) (entity.StockRemarks, error) {
	return u.repo.FindRemarks(ctx, symbol)
}

func (u *StockPoolUsecase) requirePool(ctx context.Context, poolID int64) error {
	ok, err := u.repo.PoolExists(ctx, poolID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrPoolNotFound
	}
	return nil
}
