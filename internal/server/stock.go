package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	stockdomain "github.com/smallbiznis/hoteldesk/internal/stock/domain"
	"github.com/smallbiznis/hoteldesk/pkg/db/pagination"
)

type createStockRequest struct {
	Name      string          `json:"name"`
	SKU       string          `json:"sku"`
	Unit      string          `json:"unit"`
	Quantity  decimal.Decimal `json:"quantity"`
	Threshold decimal.Decimal `json:"threshold"`
	Notes     string          `json:"notes"`
}

func (s *Server) CreateStock(c *gin.Context) {
	var req createStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.stockSvc.Create(c.Request.Context(), stockdomain.CreateRequest{
		Name:      strings.TrimSpace(req.Name),
		SKU:       strings.TrimSpace(req.SKU),
		Unit:      strings.TrimSpace(req.Unit),
		Quantity:  req.Quantity,
		Threshold: req.Threshold,
		Notes:     req.Notes,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type updateStockRequest struct {
	Name      *string          `json:"name"`
	SKU       *string          `json:"sku"`
	Unit      *string          `json:"unit"`
	Quantity  *decimal.Decimal `json:"quantity"`
	Threshold *decimal.Decimal `json:"threshold"`
	Notes     *string          `json:"notes"`
}

func (s *Server) UpdateStock(c *gin.Context) {
	var req updateStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.stockSvc.Update(c.Request.Context(), strings.TrimSpace(c.Param("id")), stockdomain.Patch{
		Name:      trimmed(req.Name),
		SKU:       trimmed(req.SKU),
		Unit:      trimmed(req.Unit),
		Quantity:  req.Quantity,
		Threshold: req.Threshold,
		Notes:     req.Notes,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetStock(c *gin.Context) {
	resp, err := s.stockSvc.Get(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListStock(c *gin.Context) {
	var query struct {
		pagination.Page
		Q   string `form:"q"`
		Low string `form:"low"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	low, err := parseOptionalBool(query.Low)
	if err != nil {
		AbortWithError(c, newValidationError("low", "invalid_low", "invalid low"))
		return
	}

	resp, err := s.stockSvc.List(c.Request.Context(), stockdomain.ListRequest{
		Page: query.Page,
		Q:    strings.TrimSpace(query.Q),
		Low:  low != nil && *low,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteStock(c *gin.Context) {
	if err := s.stockSvc.Delete(c.Request.Context(), strings.TrimSpace(c.Param("id"))); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

type adjustStockRequest struct {
	Delta  decimal.Decimal `json:"delta"`
	Reason string          `json:"reason"`
}

func (s *Server) AdjustStock(c *gin.Context) {
	var req adjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.stockSvc.Adjust(c.Request.Context(), strings.TrimSpace(c.Param("id")), stockdomain.AdjustRequest{
		Delta:  req.Delta,
		Reason: strings.TrimSpace(req.Reason),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListStockAudit(c *gin.Context) {
	limit, err := parseOptionalInt(c.Query("limit"))
	if err != nil || limit < 0 {
		AbortWithError(c, newValidationError("limit", "invalid_limit", "invalid limit"))
		return
	}

	records, err := s.stockSvc.Audit(c.Request.Context(), strings.TrimSpace(c.Param("id")), limit)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": records})
}

func isStockValidationError(err error) bool {
	switch err {
	case stockdomain.ErrInvalidID,
		stockdomain.ErrInvalidName,
		stockdomain.ErrInvalidQuantity,
		stockdomain.ErrInvalidThreshold,
		stockdomain.ErrInvalidDelta,
		stockdomain.ErrInvalidReason:
		return true
	default:
		return false
	}
}
