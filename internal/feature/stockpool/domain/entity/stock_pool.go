// Package entity defines the domain models for the stockpool feature.
// Field names follow the JSON produced by the stock-pool server so that
// payloads can be handed to callers without any transformation.
package entity

// StockPool は銘柄をまとめて管理する名前付きの株式プールを表します。
type StockPool struct {
	ID              int64  `json:"id"`
	PoolName        string `json:"poolName"`
	CreateTime      string `json:"createTime"`
	Description     string `json:"description"`
	Enabled         bool   `json:"enabled"`
	Priority        int    `json:"priority"`
	ShowDateDisplay bool   `json:"showDateDisplay"`
	MyHolding       bool   `json:"myHolding"` // 「保有中」プールかどうか
}

// StockInfo はプールに登録された1銘柄分の情報です。
// BuyPointDate と TheNumberOfDaysFromToday はサーバーが null を返すことがあるためポインタで保持します。
type StockInfo struct {
	ID                       int64   `json:"id"`
	PoolID                   int64   `json:"poolId"`
	StockCode                string  `json:"stockCode"`
	Position                 int     `json:"position"`
	EntryTime                string  `json:"entryTime"`
	StockName                string  `json:"stockName"`
	BuyPointDate             *string `json:"buyPointDate"`
	TheNumberOfDaysFromToday *int    `json:"theNumberOfDaysFromToday"`
	StockStrengthSignal      int     `json:"stockStrengthSignal"`
	WeeklyCCI1               float64 `json:"weeklyCCI1"`
	Frozen                   bool    `json:"frozen"`
	HasRemarks               bool    `json:"hasRemarks"`
}

// Indicator はサーバー側で計算された120分足の指標です。値はすべて文字列でエンコードされています。
type Indicator struct {
	StockCode           string `json:"stockCode"`
	StockStrengthSignal string `json:"stockStrengthSignal"`
	CCI1                string `json:"cci1"`
}

// StockRemarks は銘柄コードごとの備考です。
type StockRemarks struct {
	ID         int64  `json:"id"`
	Symbol     string `json:"symbol"`
	Remarks    string `json:"remarks"`
	CreateTime string `json:"createTime"`
}
