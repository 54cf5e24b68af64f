package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"stockpool/internal/feature/devserver/transport/http/dto"
	"stockpool/internal/feature/devserver/usecase"
	"stockpool/internal/feature/stockpool/domain/entity"
)

// StockPoolUsecase は株式プール操作のユースケースのインターフェースです。
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type StockPoolUsecase interface {
	ListPools(ctx context.Context) ([]entity.StockPool, error)
	ListStocks(ctx context.Context, poolID int64) ([]entity.StockInfo, error)
	Analyze120MinIndicators(ctx context.Context, poolID int64) ([]entity.Indicator, error)
	AddStock(ctx context.Context, poolID int64, stockCode, remark string) error
	RemoveStock(ctx context.Context, poolID int64, stockCode string) error
	SetFrozen(ctx context.Context, symbol string, frozen bool) error
	MyHoldingPoolID(ctx context.Context) (*int64, error)
	Remarks(ctx context.Context, symbol string) (entity.StockRemarks, error)
}

// StockPoolHandler は株式プールに関するHTTPリクエストを処理します。
type StockPoolHandler struct {
	uc StockPoolUsecase
}

// NewStockPoolHandler は新しい StockPoolHandler を作成します。
func NewStockPoolHandler(uc StockPoolUsecase) *StockPoolHandler {
	return &StockPoolHandler{uc: uc}
}

// ListPools は GET /stock-pools を処理します。
func (h *StockPoolHandler) ListPools(c *gin.Context) {
	pools, err := h.uc.ListPools(c.Request.Context())
	respond(c, pools, err)
}

// MyHolding は GET /stock-pools/my-holding を処理します。保有プールがない場合 data は null です。
func (h *StockPoolHandler) MyHolding(c *gin.Context) {
	id, err := h.uc.MyHoldingPoolID(c.Request.Context())
	respond(c, id, err)
}

// ListStocks は GET /stock-operations/:poolId/stocks を処理します。
func (h *StockPoolHandler) ListStocks(c *gin.Context) {
	poolID, ok := poolIDParam(c)
	if !ok {
		return
	}
	stocks, err := h.uc.ListStocks(c.Request.Context(), poolID)
	respond(c, stocks, err)
}

// Analyze120MinIndicators は GET /stock-indicators/:poolId/analyze-120min-indicators を処理します。
func (h *StockPoolHandler) Analyze120MinIndicators(c *gin.Context) {
	poolID, ok := poolIDParam(c)
	if !ok {
		return
	}
	indicators, err := h.uc.Analyze120MinIndicators(c.Request.Context(), poolID)
	respond(c, indicators, err)
}

// AddStock は POST /stock-operations/:poolId/add-stock を処理します。
// stockCode と remark はフォームデータで受け取ります。
func (h *StockPoolHandler) AddStock(c *gin.Context) {
	poolID, ok := poolIDParam(c)
	if !ok {
		return
	}
	err := h.uc.AddStock(c.Request.Context(), poolID, c.PostForm("stockCode"), c.PostForm("remark"))
	respond(c, nil, err)
}

// RemoveStock は DELETE /stock-operations/:poolId/remove-stock?stockCode= を処理します。
func (h *StockPoolHandler) RemoveStock(c *gin.Context) {
	poolID, ok := poolIDParam(c)
	if !ok {
		return
	}
	err := h.uc.RemoveStock(c.Request.Context(), poolID, c.Query("stockCode"))
	respond(c, nil, err)
}

// Freeze は POST /stock-operations/freeze/:symbol を処理します。
func (h *StockPoolHandler) Freeze(c *gin.Context) {
	err := h.uc.SetFrozen(c.Request.Context(), c.Param("symbol"), true)
	respond(c, nil, err)
}

// Unfreeze は POST /stock-operations/unfreeze/:symbol を処理します。
func (h *StockPoolHandler) Unfreeze(c *gin.Context) {
	err := h.uc.SetFrozen(c.Request.Context(), c.Param("symbol"), false)
	respond(c, nil, err)
}

// Remarks は GET /stock-operations/remarks/:stockCode を処理します。
func (h *StockPoolHandler) Remarks(c *gin.Context) {
	remarks, err := h.uc.Remarks(c.Request.Context(), c.Param("stockCode"))
	respond(c, remarks, err)
}

func poolIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("poolId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusOK, dto.Fail(http.StatusBadRequest, "invalid poolId"))
		return 0, false
	}
	return id, true
}

// respond はエラーをエンベロープのcodeに変換して書き込みます。HTTPステータスは常に200です。
func respond(c *gin.Context, data any, err error) {
	if err == nil {
		c.JSON(http.StatusOK, dto.OK(data))
		return
	}

	code := errorCode(err)
	if code == http.StatusInternalServerError {
		slog.ErrorContext(c.Request.Context(), "request failed", "path", c.FullPath(), "error", err)
	}
	c.JSON(http.StatusOK, dto.Fail(code, err.Error()))
}

func errorCode(err error) int {
	switch {
	case errors.Is(err, usecase.ErrInvalidArgument), errors.Is(err, usecase.ErrStockExists):
		return http.StatusBadRequest
	case errors.Is(err, usecase.ErrPoolNotFound),
		errors.Is(err, usecase.ErrStockNotFound),
		errors.Is(err, usecase.ErrRemarksNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
