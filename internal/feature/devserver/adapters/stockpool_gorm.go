package adapters

import (
	"context"
	"errors"
	"strconv"
	"time"

	"gorm.io/gorm"

	"stockpool/internal/feature/devserver/usecase"
	"stockpool/internal/feature/stockpool/domain/entity"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04:05"
)

// stockPoolGorm はRepositoryインターフェースのgorm実装です。
type stockPoolGorm struct {
	db  *gorm.DB
	now func() time.Time
}

var _ usecase.Repository = (*stockPoolGorm)(nil)

// NewStockPoolRepository は指定されたDB接続でリポジトリの新しいインスタンスを生成します。
func NewStockPoolRepository(db *gorm.DB) *stockPoolGorm {
	return &stockPoolGorm{db: db, now: time.Now}
}

// ListPools はpriority順、同順位はID順にすべてのプールを返します。
func (r *stockPoolGorm) ListPools(ctx context.Context) ([]entity.StockPool, error) {
	var rows []PoolModel
	if err := r.db.WithContext(ctx).
		Order("priority ASC").
		Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	pools := make([]entity.StockPool, 0, len(rows))
	for _, p := range rows {
		pools = append(pools, entity.StockPool{
			ID:              p.ID,
			PoolName:        p.PoolName,
			CreateTime:      p.CreatedAt.Format(dateTimeLayout),
			Description:     p.Description,
			Enabled:         p.Enabled,
			Priority:        p.Priority,
			ShowDateDisplay: p.ShowDateDisplay,
			MyHolding:       p.MyHolding,
		})
	}
	return pools, nil
}

func (r *stockPoolGorm) PoolExists(ctx context.Context, poolID int64) (bool, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&PoolModel{}).Where("id = ?", poolID).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

// ListStocks はposition順にプールの銘柄を返します。
// hasRemarks は銘柄に備考が1件以上あるかどうかです。
func (r *stockPoolGorm) ListStocks(ctx context.Context, poolID int64) ([]entity.StockInfo, error) {
	var rows []StockModel
	if err := r.db.WithContext(ctx).
		Where("pool_id = ?", poolID).
		Order("position ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	codes := make([]string, 0, len(rows))
	for _, s := range rows {
		codes = append(codes, s.StockCode)
	}
	withRemarks := map[string]bool{}
	if len(codes) > 0 {
		var symbols []string
		if err := r.db.WithContext(ctx).
			Model(&RemarkModel{}).
			Where("symbol IN ?", codes).
			Distinct().
			Pluck("symbol", &symbols).Error; err != nil {
			return nil, err
		}
		for _, s := range symbols {
			withRemarks[s] = true
		}
	}

	today := truncateDay(r.now())
	stocks := make([]entity.StockInfo, 0, len(rows))
	for _, s := range rows {
		info := entity.StockInfo{
			ID:                  s.ID,
			PoolID:              s.PoolID,
			StockCode:           s.StockCode,
			Position:            s.Position,
			EntryTime:           s.EntryTime.Format(dateTimeLayout),
			StockName:           s.StockName,
			StockStrengthSignal: s.StockStrengthSignal,
			WeeklyCCI1:          s.WeeklyCCI1,
			Frozen:              s.Frozen,
			HasRemarks:          withRemarks[s.StockCode],
		}
		if s.BuyPointDate != nil {
			date := s.BuyPointDate.Format(dateLayout)
			days := int(today.Sub(truncateDay(*s.BuyPointDate)).Hours() / 24)
			info.BuyPointDate = &date
			info.TheNumberOfDaysFromToday = &days
		}
		stocks = append(stocks, info)
	}
	return stocks, nil
}

// ListIndicators はposition順に各銘柄の120分足指標を文字列で返します。
func (r *stockPoolGorm) ListIndicators(ctx context.Context, poolID int64) ([]entity.Indicator, error) {
	var rows []StockModel
	if err := r.db.WithContext(ctx).
		Select("stock_code", "signal_120", "cci_120").
		Where("pool_id = ?", poolID).
		Order("position ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	indicators := make([]entity.Indicator, 0, len(rows))
	for _, s := range rows {
		indicators = append(indicators, entity.Indicator{
			StockCode:           s.StockCode,
			StockStrengthSignal: strconv.Itoa(s.Signal120),
			CCI1:                strconv.FormatFloat(s.CCI120, 'f', 2, 64),
		})
	}
	return indicators, nil
}

// AddStock は銘柄をposition = max+1 で追加し、remarkが空でなければ備考を記録します。
func (r *stockPoolGorm) AddStock(ctx context.Context, poolID int64, stockCode, remark string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&StockModel{}).
			Where("pool_id = ? AND stock_code = ?", poolID, stockCode).
			Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return usecase.ErrStockExists
		}

		var maxPos int
		if err := tx.Model(&StockModel{}).
			Where("pool_id = ?", poolID).
			Select("COALESCE(MAX(position), 0)").
			Scan(&maxPos).Error; err != nil {
			return err
		}

		stock := StockModel{
			PoolID:    poolID,
			StockCode: stockCode,
			StockName: stockCode,
			Position:  maxPos + 1,
			EntryTime: r.now(),
		}
		if err := tx.Create(&stock).Error; err != nil {
			return err
		}

		if remark != "" {
			if err := tx.Create(&RemarkModel{Symbol: stockCode, Remarks: remark, CreatedAt: r.now()}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *stockPoolGorm) RemoveStock(ctx context.Context, poolID int64, stockCode string) error {
	res := r.db.WithContext(ctx).
		Where("pool_id = ? AND stock_code = ?", poolID, stockCode).
		Delete(&StockModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrStockNotFound
	}
	return nil
}

func (r *stockPoolGorm) SetFrozen(ctx context.Context, symbol string, frozen bool) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&StockModel{}).
		Where("stock_code = ?", symbol).
		Update("frozen", frozen)
	return res.RowsAffected, res.Error
}

// MyHoldingPoolID は myHolding フラグの立ったプールのIDを返します。該当がなければnilです。
func (r *stockPoolGorm) MyHoldingPoolID(ctx context.Context) (*int64, error) {
	var pool PoolModel
	err := r.db.WithContext(ctx).
		Where("my_holding = ?", true).
		Order("id ASC").
		First(&pool).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &pool.ID, nil
}

// FindRemarks は銘柄の最新の備考を返します。
func (r *stockPoolGorm) FindRemarks(ctx context.Context, symbol string) (entity.StockRemarks, error) {
	var row RemarkModel
	err := r.db.WithContext(ctx).
		Where("symbol = ?", symbol).
		Order("created_at DESC").
		Order("id DESC").
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entity.StockRemarks{}, usecase.ErrRemarksNotFound
	}
	if err != nil {
		return entity.StockRemarks{}, err
	}
	return entity.StockRemarks{
		ID:         row.ID,
		Symbol:     row.Symbol,
		Remarks:    row.Remarks,
		CreateTime: row.CreatedAt.Format(dateTimeLayout),
	}, nil
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
