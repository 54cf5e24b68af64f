package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockpool/internal/feature/stockpool/domain/entity"
)

// mockStockAPI はStockAPIインターフェースのモック実装です。
type mockStockAPI struct {
	GetStockPoolsFunc       func(ctx context.Context) ([]entity.StockPool, error)
	GetStocksByPoolIDFunc   func(ctx context.Context, poolID int64) ([]entity.StockInfo, error)
	Get120MinIndicatorsFunc func(ctx context.Context, poolID int64) ([]entity.Indicator, error)
	AddStockToPoolFunc      func(ctx context.Context, poolID int64, stockCode, remark string) error
	RemoveStockFromPoolFunc func(ctx context.Context, poolID int64, stockCode string) error
	FreezeStockFunc         func(ctx context.Context, symbol string) error
	UnfreezeStockFunc       func(ctx context.Context, symbol string) error
	GetMyHoldingPoolIDFunc  func(ctx context.Context) (*int64, error)
	GetStockRemarksFunc     func(ctx context.Context, stockCode string) (entity.StockRemarks, error)
}

func (m *mockStockAPI) GetStockPools(ctx context.Context) ([]entity.StockPool, error) {
	if m.GetStockPoolsFunc != nil {
		return m.GetStockPoolsFunc(ctx)
	}
	return nil, nil
}

func (m *mockStockAPI) GetStocksByPoolID(ctx context.Context, poolID int64) ([]entity.StockInfo, error) {
	if m.GetStocksByPoolIDFunc != nil {
		return m.GetStocksByPoolIDFunc(ctx, poolID)
	}
	return nil, nil
}

func (m *mockStockAPI) Get120MinIndicators(ctx context.Context, poolID int64) ([]entity.Indicator, error) {
	if m.Get120MinIndicatorsFunc != nil {
		return m.Get120MinIndicatorsFunc(ctx, poolID)
	}
	return nil, nil
}

func (m *mockStockAPI) AddStockToPool(ctx context.Context, poolID int64, stockCode, remark string) error {
	if m.AddStockToPoolFunc != nil {
		return m.AddStockToPoolFunc(ctx, poolID, stockCode, remark)
	}
	return nil
}

func (m *mockStockAPI) RemoveStockFromPool(ctx context.Context, poolID int64, stockCode string) error {
	if m.RemoveStockFromPoolFunc != nil {
		return m.RemoveStockFromPoolFunc(ctx, poolID, stockCode)
	}
	return nil
}

func (m *mockStockAPI) FreezeStock(ctx context.Context, symbol string) error {
	if m.FreezeStockFunc != nil {
		return m.FreezeStockFunc(ctx, symbol)
	}
	return nil
}

func (m *mockStockAPI) UnfreezeStock(ctx context.Context, symbol string) error {
	if m.UnfreezeStockFunc != nil {
		return m.UnfreezeStockFunc(ctx, symbol)
	}
	return nil
}

func (m *mockStockAPI) GetMyHoldingPoolID(ctx context.Context) (*int64, error) {
	if m.GetMyHoldingPoolIDFunc != nil {
		return m.GetMyHoldingPoolIDFunc(ctx)
	}
	return nil, nil
}

func (m *mockStockAPI) GetStockRemarks(ctx context.Context, stockCode string) (entity.StockRemarks, error) {
	if m.GetStockRemarksFunc != nil {
		return m.GetStockRemarksFunc(ctx, stockCode)
	}
	return entity.StockRemarks{}, nil
}

// TestStockPoolUsecase_ListStocksWithIndicators は銘柄と指標の結合の各種シナリオを検証します。
func TestStockPoolUsecase_ListStocksWithIndicators(t *testing.T) {
	t.Parallel()

	stocks := []entity.StockInfo{
		{ID: 1, PoolID: 3, StockCode: "600519", Position: 1},
		{ID: 2, PoolID: 3, StockCode: "000001", Position: 2},
	}
	errStocks := errors.New("stocks failed")
	errIndicators := errors.New("indicators failed")

	tests := []struct {
		name          string
		stocksFunc    func(ctx context.Context, poolID int64) ([]entity.StockInfo, error)
		indicatorFunc func(ctx context.Context, poolID int64) ([]entity.Indicator, error)
		expected      []StockWithIndicator
		expectedErr   error
	}{
		{
			name:       "success: joins by stock code and keeps stock order",
			stocksFunc: func(ctx context.Context, poolID int64) ([]entity.StockInfo, error) { return stocks, nil },
			indicatorFunc: func(ctx context.Context, poolID int64) ([]entity.Indicator, error) {
				return []entity.Indicator{
					{StockCode: "000001", StockStrengthSignal: "1", CCI1: "50.0"},
					{StockCode: "600519", StockStrengthSignal: "3", CCI1: "-120.5"},
				}, nil
			},
			expected: []StockWithIndicator{
				{StockInfo: stocks[0], Indicator: &entity.Indicator{StockCode: "600519", StockStrengthSignal: "3", CCI1: "-120.5"}},
				{StockInfo: stocks[1], Indicator: &entity.Indicator{StockCode: "000001", StockStrengthSignal: "1", CCI1: "50.0"}},
			},
		},
		{
			name:       "success: stock without indicator keeps nil",
			stocksFunc: func(ctx context.Context, poolID int64) ([]entity.StockInfo, error) { return stocks, nil },
			indicatorFunc: func(ctx context.Context, poolID int64) ([]entity.Indicator, error) {
				return []entity.Indicator{{StockCode: "600519", StockStrengthSignal: "2", CCI1: "0"}}, nil
			},
			expected: []StockWithIndicator{
				{StockInfo: stocks[0], Indicator: &entity.Indicator{StockCode: "600519", StockStrengthSignal: "2", CCI1: "0"}},
				{StockInfo: stocks[1]},
			},
		},
		{
			name:          "success: empty pool",
			stocksFunc:    func(ctx context.Context, poolID int64) ([]entity.StockInfo, error) { return nil, nil },
			indicatorFunc: func(ctx context.Context, poolID int64) ([]entity.Indicator, error) { return nil, nil },
			expected:      []StockWithIndicator{},
		},
		{
			name:        "error: stocks call fails",
			stocksFunc:  func(ctx context.Context, poolID int64) ([]entity.StockInfo, error) { return nil, errStocks },
			expectedErr: errStocks,
		},
		{
			name:          "error: indicators call fails",
			stocksFunc:    func(ctx context.Context, poolID int64) ([]entity.StockInfo, error) { return stocks, nil },
			indicatorFunc: func(ctx context.Context, poolID int64) ([]entity.Indicator, error) { return nil, errIndicators },
			expectedErr:   errIndicators,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			uc := NewStockPoolUsecase(&mockStockAPI{
				GetStocksByPoolIDFunc:   tt.stocksFunc,
				Get120MinIndicatorsFunc: tt.indicatorFunc,
			})

			got, err := uc.ListStocksWithIndicators(context.Background(), 3)
			if tt.expectedErr != nil {
				assert.Same(t, tt.expectedErr, err)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

// TestStockPoolUsecase_PassThrough は各操作が引数をそのまま渡し、エラーを変換せずに返すことを検証します。
func TestStockPoolUsecase_PassThrough(t *testing.T) {
	t.Parallel()

	sentinel := errors.New("db down")
	var calls []string
	api := &mockStockAPI{
		AddStockToPoolFunc: func(ctx context.Context, poolID int64, stockCode, remark string) error {
			calls = append(calls, "add")
			assert.Equal(t, int64(5), poolID)
			assert.Equal(t, "AAPL", stockCode)
			assert.Equal(t, "note", remark)
			return sentinel
		},
		RemoveStockFromPoolFunc: func(ctx context.Context, poolID int64, stockCode string) error {
			calls = append(calls, "remove")
			assert.Equal(t, int64(5), poolID)
			assert.Equal(t, "AAPL", stockCode)
			return sentinel
		},
		FreezeStockFunc: func(ctx context.Context, symbol string) error {
			calls = append(calls, "freeze:"+symbol)
			return sentinel
		},
		UnfreezeStockFunc: func(ctx context.Context, symbol string) error {
			calls = append(calls, "unfreeze:"+symbol)
			return sentinel
		},
	}
	uc := NewStockPoolUsecase(api)
	ctx := context.Background()

	assert.Same(t, sentinel, uc.AddStock(ctx, 5, "AAPL", "note"))
	assert.Same(t, sentinel, uc.RemoveStock(ctx, 5, "AAPL"))
	assert.Same(t, sentinel, uc.Freeze(ctx, "AAPL"))
	assert.Same(t, sentinel, uc.Unfreeze(ctx, "AAPL"))
	assert.Equal(t, []string{"add", "remove", "freeze:AAPL", "unfreeze:AAPL"}, calls)
}

// TestStockPoolUsecase_Queries は参照系操作がAPIの戻り値をそのまま返すことを検証します。
func TestStockPoolUsecase_Queries(t *testing.T) {
	t.Parallel()

	holding := int64(9)
	pools := []entity.StockPool{{ID: 9, PoolName: "Holdings", MyHolding: true}}
	remarks := entity.StockRemarks{ID: 1, Symbol: "AAPL", Remarks: "earnings"}
	indicators := []entity.Indicator{{StockCode: "AAPL", StockStrengthSignal: "1", CCI1: "10"}}

	uc := NewStockPoolUsecase(&mockStockAPI{
		GetStockPoolsFunc:       func(ctx context.Context) ([]entity.StockPool, error) { return pools, nil },
		GetMyHoldingPoolIDFunc:  func(ctx context.Context) (*int64, error) { return &holding, nil },
		GetStockRemarksFunc:     func(ctx context.Context, code string) (entity.StockRemarks, error) { return remarks, nil },
		Get120MinIndicatorsFunc: func(ctx context.Context, poolID int64) ([]entity.Indicator, error) { return indicators, nil },
	})
	ctx := context.Background()

	gotPools, err := uc.ListPools(ctx)
	require.NoError(t, err)
	assert.Equal(t, pools, gotPools)

	gotHolding, err := uc.MyHoldingPoolID(ctx)
	require.NoError(t, err)
	assert.Same(t, &holding, gotHolding)

	gotRemarks, err := uc.Remarks(ctx, "AAPL")
	require.NoError(t, err)
	assert.Equal(t, remarks, gotRemarks)

	gotIndicators, err := uc.ListIndicators(ctx, 9)
	require.NoError(t, err)
	assert.Equal(t, indicators, gotIndicators)

	gotStocks, err := uc.ListStocks(ctx, 9)
	require.NoError(t, err)
	assert.Nil(t, gotStocks)
}
