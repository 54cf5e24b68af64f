// Package cli はstockpoolフィーチャーのコマンドラインインターフェースを提供します。
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"stockpool/internal/feature/stockpool/domain/entity"
	"stockpool/internal/feature/stockpool/usecase"
)

// StockPoolUsecase はCLIが利用するユースケースのインターフェースです。
type StockPoolUsecase interface {
	ListPools(ctx context.Context) ([]entity.StockPool, error)
	ListStocks(ctx context.Context, poolID int64) ([]entity.StockInfo, error)
	ListStocksWithIndicators(ctx context.Context, poolID int64) ([]usecase.StockWithIndicator, error)
	ListIndicators(ctx context.Context, poolID int64) ([]entity.Indicator, error)
	AddStock(ctx context.Context, poolID int64, stockCode, remark string) error
	RemoveStock(ctx context.Context, poolID int64, stockCode string) error
	Freeze(ctx context.Context, symbol string) error
	Unfreeze(ctx context.Context, symbol string) error
	MyHoldingPoolID(ctx context.Context) (*int64, error)
	Remarks(ctx context.Context, stockCode string) (entity.StockRemarks, error)
}

// TokenStore はトークンの保存先です。
type TokenStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// commands はサブコマンド間で共有する依存とフラグです。
type commands struct {
	uc      StockPoolUsecase
	store   TokenStore
	jsonOut bool
}

// NewRootCommand は stockpool コマンドのルートを生成します。
func NewRootCommand(uc StockPoolUsecase, store TokenStore) *cobra.Command {
	c := &commands{uc: uc, store: store}

	root := &cobra.Command{
		Use:           "stockpool",
		Short:         "Browse and manage stock pools on a stock-pool server",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVar(&c.jsonOut, "json", false, "print the API payload as JSON")

	root.AddCommand(
		c.poolsCommand(),
		c.stocksCommand(),
		c.indicatorsCommand(),
		c.addCommand(),
		c.removeCommand(),
		c.freezeCommand(true),
		c.freezeCommand(false),
		c.holdingCommand(),
		c.remarksCommand(),
		c.tokenCommand(),
	)
	return root
}

// printJSON はvをインデント付きJSONとして出力します。
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func parsePoolID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid pool id %q", s)
	}
	return id, nil
}
