package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockpool/internal/feature/stockpool/domain/entity"
	"stockpool/internal/feature/stockpool/usecase"
	"stockpool/internal/platform/storage"
)

// mockUsecase はStockPoolUsecaseインターフェースのモック実装です。
type mockUsecase struct {
	ListPoolsFunc                func(ctx context.Context) ([]entity.StockPool, error)
	ListStocksFunc               func(ctx context.Context, poolID int64) ([]entity.StockInfo, error)
	ListStocksWithIndicatorsFunc func(ctx context.Context, poolID int64) ([]usecase.StockWithIndicator, error)
	ListIndicatorsFunc           func(ctx context.Context, poolID int64) ([]entity.Indicator, error)
	AddStockFunc                 func(ctx context.Context, poolID int64, stockCode, remark string) error
	RemoveStockFunc              func(ctx context.Context, poolID int64, stockCode string) error
	FreezeFunc                   func(ctx context.Context, symbol string) error
	UnfreezeFunc                 func(ctx context.Context, symbol string) error
	MyHoldingPoolIDFunc          func(ctx context.Context) (*int64, error)
	RemarksFunc                  func(ctx context.Context, stockCode string) (entity.StockRemarks, error)
}

func (m *mockUsecase) ListPools(ctx context.Context) ([]entity.StockPool, error) {
	if m.ListPoolsFunc != nil {
		return m.ListPoolsFunc(ctx)
	}
	return nil, nil
}

func (m *mockUsecase) ListStocks(ctx context.Context, poolID int64) ([]entity.StockInfo, error) {
	if m.ListStocksFunc != nil {
		return m.ListStocksFunc(ctx, poolID)
	}
	return nil, nil
}

func (m *mockUsecase) ListStocksWithIndicators(ctx context.Context, poolID int64) ([]usecase.StockWithIndicator, error) {
	if m.ListStocksWithIndicatorsFunc != nil {
		return m.ListStocksWithIndicatorsFunc(ctx, poolID)
	}
	return nil, nil
}

func (m *mockUsecase) ListIndicators(ctx context.Context, poolID int64) ([]entity.Indicator, error) {
	if m.ListIndicatorsFunc != nil {
		return m.ListIndicatorsFunc(ctx, poolID)
	}
	return nil, nil
}

func (m *mockUsecase) AddStock(ctx context.Context, poolID int64, stockCode, remark string) error {
	if m.AddStockFunc != nil {
		return m.AddStockFunc(ctx, poolID, stockCode, remark)
	}
	return nil
}

func (m *mockUsecase) RemoveStock(ctx context.Context, poolID int64, stockCode string) error {
	if m.RemoveStockFunc != nil {
		return m.RemoveStockFunc(ctx, poolID, stockCode)
	}
	return nil
}

func (m *mockUsecase) Freeze(ctx context.Context, symbol string) error {
	if m.FreezeFunc != nil {
		return m.FreezeFunc(ctx, symbol)
	}
	return nil
}

func (m *mockUsecase) Unfreeze(ctx context.Context, symbol string) error {
	if m.UnfreezeFunc != nil {
		return m.UnfreezeFunc(ctx, symbol)
	}
	return nil
}

func (m *mockUsecase) MyHoldingPoolID(ctx context.Context) (*int64, error) {
	if m.MyHoldingPoolIDFunc != nil {
		return m.MyHoldingPoolIDFunc(ctx)
	}
	return nil, nil
}

func (m *mockUsecase) Remarks(ctx context.Context, stockCode string) (entity.StockRemarks, error) {
	if m.RemarksFunc != nil {
		return m.RemarksFunc(ctx, stockCode)
	}
	return entity.StockRemarks{}, nil
}

// run はコマンドを実行し、標準出力の内容とエラーを返します。
func run(t *testing.T, uc StockPoolUsecase, store TokenStore, stdin string, args ...string) (string, error) {
	t.Helper()

	if store == nil {
		store = storage.NewMemory()
	}
	root := NewRootCommand(uc, store)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

// TestPoolsCommand はプール一覧がテーブルとJSONで出力されることを検証します。
func TestPoolsCommand(t *testing.T) {
	t.Parallel()

	pools := []entity.StockPool{
		{ID: 1, PoolName: "Core", Enabled: true, Priority: 1, MyHolding: true, CreateTime: "2024-05-01", Description: "long term"},
		{ID: 2, PoolName: "Watch", Priority: 2},
	}
	uc := &mockUsecase{ListPoolsFunc: func(ctx context.Context) ([]entity.StockPool, error) { return pools, nil }}

	out, err := run(t, uc, nil, "", "pools")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "ID"))
	assert.Contains(t, lines[1], "Core")
	assert.Contains(t, lines[1], "long term")
	assert.Contains(t, lines[2], "Watch")

	out, err = run(t, uc, nil, "", "pools", "--json")
	require.NoError(t, err)
	var decoded []entity.StockPool
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, pools, decoded)
}

// TestStocksCommand は銘柄一覧と指標結合の出力を検証します。
func TestStocksCommand(t *testing.T) {
	t.Parallel()

	stock := entity.StockInfo{ID: 1, PoolID: 3, StockCode: "600519", StockName: "Moutai", Position: 1,
		BuyPointDate: strPtr("2024-06-03"), TheNumberOfDaysFromToday: intPtr(4), WeeklyCCI1: -85.5}
	var gotPool int64
	uc := &mockUsecase{
		ListStocksFunc: func(ctx context.Context, poolID int64) ([]entity.StockInfo, error) {
			gotPool = poolID
			return []entity.StockInfo{stock}, nil
		},
		ListStocksWithIndicatorsFunc: func(ctx context.Context, poolID int64) ([]usecase.StockWithIndicator, error) {
			return []usecase.StockWithIndicator{{StockInfo: stock, Indicator: &entity.Indicator{StockCode: "600519", StockStrengthSignal: "3", CCI1: "-101.25"}}}, nil
		},
	}

	out, err := run(t, uc, nil, "", "stocks", "3")
	require.NoError(t, err)
	assert.Equal(t, int64(3), gotPool)
	assert.Contains(t, out, "600519")
	assert.Contains(t, out, "2024-06-03")
	assert.Contains(t, out, "-85.50")
	assert.NotContains(t, out, "120M")

	out, err = run(t, uc, nil, "", "stocks", "3", "--indicators")
	require.NoError(t, err)
	assert.Contains(t, out, "120M SIGNAL")
	assert.Contains(t, out, "-101.25")

	out, err = run(t, uc, nil, "", "stocks", "3", "--indicators", "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"cci1": "-101.25"`)
	assert.Contains(t, out, `"stockCode": "600519"`)
}

// TestStocksCommand_InvalidPoolID は数値でないプールIDが拒否されることを検証します。
func TestStocksCommand_InvalidPoolID(t *testing.T) {
	t.Parallel()

	called := false
	uc := &mockUsecase{ListStocksFunc: func(ctx context.Context, poolID int64) ([]entity.StockInfo, error) {
		called = true
		return nil, nil
	}}

	_, err := run(t, uc, nil, "", "stocks", "abc")
	assert.EqualError(t, err, `invalid pool id "abc"`)
	assert.False(t, called)
}

// TestAddCommand はremarkフラグの有無がユースケースに渡されることを検証します。
func TestAddCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		args   []string
		remark string
	}{
		{"without remark", []string{"add", "7", "AAPL"}, ""},
		{"with remark", []string{"add", "7", "AAPL", "--remark", "breakout"}, "breakout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var gotRemark string
			uc := &mockUsecase{AddStockFunc: func(ctx context.Context, poolID int64, stockCode, remark string) error {
				assert.Equal(t, int64(7), poolID)
				assert.Equal(t, "AAPL", stockCode)
				gotRemark = remark
				return nil
			}}

			out, err := run(t, uc, nil, "", tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.remark, gotRemark)
			assert.Equal(t, "added AAPL to pool 7\n", out)
		})
	}
}

// TestMutationCommands_PropagateErrors はユースケースのエラーがそのまま返されることを検証します。
func TestMutationCommands_PropagateErrors(t *testing.T) {
	t.Parallel()

	sentinel := errors.New("股票不存在")
	uc := &mockUsecase{
		AddStockFunc:    func(context.Context, int64, string, string) error { return sentinel },
		RemoveStockFunc: func(context.Context, int64, string) error { return sentinel },
		FreezeFunc:      func(context.Context, string) error { return sentinel },
		UnfreezeFunc:    func(context.Context, string) error { return sentinel },
	}

	for _, args := range [][]string{
		{"add", "1", "AAPL"},
		{"remove", "1", "AAPL"},
		{"freeze", "AAPL"},
		{"unfreeze", "AAPL"},
	} {
		t.Run(args[0], func(t *testing.T) {
			t.Parallel()

			_, err := run(t, uc, nil, "", args...)
			assert.Same(t, sentinel, err)
		})
	}
}

// TestFreezeCommands はfreeze/unfreezeがそれぞれ正しい操作を呼び出すことを検証します。
func TestFreezeCommands(t *testing.T) {
	t.Parallel()

	var calls []string
	uc := &mockUsecase{
		FreezeFunc:   func(ctx context.Context, s string) error { calls = append(calls, "freeze:"+s); return nil },
		UnfreezeFunc: func(ctx context.Context, s string) error { calls = append(calls, "unfreeze:"+s); return nil },
	}

	out, err := run(t, uc, nil, "", "freeze", "TSLA")
	require.NoError(t, err)
	assert.Equal(t, "TSLA frozen\n", out)

	out, err = run(t, uc, nil, "", "unfreeze", "TSLA")
	require.NoError(t, err)
	assert.Equal(t, "TSLA unfrozen\n", out)

	assert.Equal(t, []string{"freeze:TSLA", "unfreeze:TSLA"}, calls)
}

// TestHoldingCommand はnullと整数の両方の出力を検証します。
func TestHoldingCommand(t *testing.T) {
	t.Parallel()

	id := int64(12)
	tests := []struct {
		name     string
		holding  *int64
		args     []string
		expected string
	}{
		{"none", nil, []string{"holding"}, "no holding pool\n"},
		{"pool id", &id, []string{"holding"}, "12\n"},
		{"none as json", nil, []string{"holding", "--json"}, "null\n"},
		{"pool id as json", &id, []string{"holding", "--json"}, "12\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			uc := &mockUsecase{MyHoldingPoolIDFunc: func(ctx context.Context) (*int64, error) { return tt.holding, nil }}
			out, err := run(t, uc, nil, "", tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, out)
		})
	}
}

// TestRemarksCommand は備考が出力されることを検証します。
func TestRemarksCommand(t *testing.T) {
	t.Parallel()

	uc := &mockUsecase{RemarksFunc: func(ctx context.Context, code string) (entity.StockRemarks, error) {
		return entity.StockRemarks{ID: 1, Symbol: code, Remarks: "watch support", CreateTime: "2024-06-01"}, nil
	}}

	out, err := run(t, uc, nil, "", "remarks", "AAPL")
	require.NoError(t, err)
	assert.Equal(t, "AAPL (2024-06-01)\nwatch support\n", out)
}

// TestIndicatorsCommand は指標一覧の出力を検証します。
func TestIndicatorsCommand(t *testing.T) {
	t.Parallel()

	uc := &mockUsecase{ListIndicatorsFunc: func(ctx context.Context, poolID int64) ([]entity.Indicator, error) {
		return []entity.Indicator{{StockCode: "AAPL", StockStrengthSignal: "2", CCI1: "88.1"}}, nil
	}}

	out, err := run(t, uc, nil, "", "indicators", "4")
	require.NoError(t, err)
	assert.Contains(t, out, "AAPL")
	assert.Contains(t, out, "88.1")
}

// TestTokenCommands はトークンの保存・表示・削除を検証します。
func TestTokenCommands(t *testing.T) {
	t.Parallel()

	store := storage.NewMemory()
	uc := &mockUsecase{}

	_, err := run(t, uc, store, "", "token", "show")
	assert.ErrorIs(t, err, ErrNoToken)

	token := signedToken(t, "dev", time.Hour)
	out, err := run(t, uc, store, "", "token", "set", token)
	require.NoError(t, err)
	assert.Equal(t, "token stored\n", out)

	stored, err := store.Get(context.Background(), storage.KeyJWTToken)
	require.NoError(t, err)
	assert.Equal(t, token, stored)

	out, err = run(t, uc, store, "", "token", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "algorithm: HS256")
	assert.Contains(t, out, "subject:   dev")
	assert.Contains(t, out, "(valid)")

	out, err = run(t, uc, store, "", "token", "clear")
	require.NoError(t, err)
	assert.Equal(t, "token cleared\n", out)

	_, err = store.Get(context.Background(), storage.KeyJWTToken)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

// TestTokenSet_FromStdin は "-" 指定時に標準入力からトークンを読み込むことを検証します。
func TestTokenSet_FromStdin(t *testing.T) {
	t.Parallel()

	store := storage.NewMemory()
	_, err := run(t, &mockUsecase{}, store, "  tok-from-stdin  \n", "token", "set", "-")
	require.NoError(t, err)

	stored, err := store.Get(context.Background(), storage.KeyJWTToken)
	require.NoError(t, err)
	assert.Equal(t, "tok-from-stdin", stored)

	_, err = run(t, &mockUsecase{}, store, "\n", "token", "set", "-")
	assert.EqualError(t, err, "token must not be empty")
}

// TestTokenShow_Expired は期限切れトークンが表示で判別できることを検証します。
func TestTokenShow_Expired(t *testing.T) {
	t.Parallel()

	store := storage.NewMemory()
	require.NoError(t, store.Set(context.Background(), storage.KeyJWTToken, signedToken(t, "dev", -time.Hour)))

	out, err := run(t, &mockUsecase{}, store, "", "token", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "(expired)")
}

func signedToken(t *testing.T, subject string, ttl time.Duration) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
	})
	signed, err := token.SignedString([]byte("secret"))
	require.NoError(t, err)
	return signed
}
