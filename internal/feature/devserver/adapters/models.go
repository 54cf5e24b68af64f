// Package adapters は開発サーバーのgormリポジトリ実装を提供します。
package adapters

import "time"

// PoolModel は stock_pools テーブルの行です。
type PoolModel struct {
	ID              int64  `gorm:"primaryKey"`
	PoolName        string `gorm:"size:64;not null"`
	Description     string `gorm:"size:255"`
	Enabled         bool   `gorm:"not null"`
	Priority        int    `gorm:"not null;default:0"`
	ShowDateDisplay bool   `gorm:"not null;default:false"`
	MyHolding       bool   `gorm:"not null;default:false"`
	CreatedAt       time.Time
}

func (PoolModel) TableName() string { return "stock_pools" }

// StockModel は stock_infos テーブルの行です。同じ銘柄は1プールに1行までです。
type StockModel struct {
	ID                  int64  `gorm:"primaryKey"`
	PoolID              int64  `gorm:"not null;uniqueIndex:idx_pool_stock"`
	StockCode           string `gorm:"size:32;not null;uniqueIndex:idx_pool_stock;index"`
	StockName           string `gorm:"size:128"`
	Position            int    `gorm:"not null"`
	EntryTime           time.Time
	BuyPointDate        *time.Time
	StockStrengthSignal int
	WeeklyCCI1          float64 `gorm:"column:weekly_cci1"`
	Frozen              bool    `gorm:"not null;default:false"`
	// 120分足の指標
	Signal120 int     `gorm:"column:signal_120"`
	CCI120    float64 `gorm:"column:cci_120"`
}

func (StockModel) TableName() string { return "stock_infos" }

// RemarkModel は stock_remarks テーブルの行です。銘柄ごとに最新の行が有効です。
type RemarkModel struct {
	ID        int64  `gorm:"primaryKey"`
	Symbol    string `gorm:"size:32;not null;index"`
	Remarks   string `gorm:"type:text"`
	CreatedAt time.Time
}

func (RemarkModel) TableName() string { return "stock_remarks" }

// Models はマイグレーション対象のモデルです。
func Models() []any {
	return []any{&PoolModel{}, &StockModel{}, &RemarkModel{}}
}
