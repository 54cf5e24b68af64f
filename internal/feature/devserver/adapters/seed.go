package adapters

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// Seed はテーブルが空の場合にデモ用のプールと銘柄を登録します。
// 既にプールが存在する場合は何もしません。
func Seed(ctx context.Context, db *gorm.DB, now time.Time) error {
	var n int64
	if err := db.WithContext(ctx).Model(&PoolModel{}).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	buyPoint := func(daysAgo int) *time.Time {
		t := now.AddDate(0, 0, -daysAgo)
		return &t
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		pools := []PoolModel{
			{PoolName: "My Holdings", Description: "positions currently held", Enabled: true, Priority: 1, MyHolding: true, CreatedAt: now},
			{PoolName: "Watchlist", Description: "candidates waiting for a buy point", Enabled: true, Priority: 2, ShowDateDisplay: true, CreatedAt: now},
			{PoolName: "Archive", Description: "retired ideas", Enabled: false, Priority: 9, CreatedAt: now},
		}
		if err := tx.Create(&pools).Error; err != nil {
			return err
		}

		holding, watch := pools[0].ID, pools[1].ID
		stocks := []StockModel{
			{PoolID: holding, StockCode: "600519", StockName: "Kweichow Moutai", Position: 1, EntryTime: now, BuyPointDate: buyPoint(12), StockStrengthSignal: 3, WeeklyCCI1: 112.4, Signal120: 2, CCI120: 87.31},
			{PoolID: holding, StockCode: "000858", StockName: "Wuliangye Yibin", Position: 2, EntryTime: now, StockStrengthSignal: 1, WeeklyCCI1: -35.8, Signal120: 0, CCI120: -12.5},
			{PoolID: watch, StockCode: "300750", StockName: "CATL", Position: 1, EntryTime: now, BuyPointDate: buyPoint(3), StockStrengthSignal: 2, WeeklyCCI1: -104.2, Signal120: 3, CCI120: -131.06},
			{PoolID: watch, StockCode: "600036", StockName: "China Merchants Bank", Position: 2, EntryTime: now, StockStrengthSignal: 0, WeeklyCCI1: 15, Frozen: true, Signal120: 1, CCI120: 4.2},
		}
		if err := tx.Create(&stocks).Error; err != nil {
			return err
		}

		return tx.Create(&RemarkModel{Symbol: "300750", Remarks: "wait for weekly CCI to turn up", CreatedAt: now}).Error
	})
}
