package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	paymentdomain "github.com/smallbiznis/hoteldesk/internal/payment/domain"
	"github.com/smallbiznis/hoteldesk/pkg/db/pagination"
)

type createPaymentRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Kind        string          `json:"kind"`
	Frequency   string          `json:"frequency"`
	Direction   string          `json:"direction"`
	Amount      decimal.Decimal `json:"amount"`
	StartDate   string          `json:"startDate"`
	EndDate     string          `json:"endDate"`
}

func (s *Server) CreatePayment(c *gin.Context) {
	var req createPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	startDate, err := parseOptionalTime(req.StartDate, false)
	if err != nil {
		AbortWithError(c, paymentdomain.ErrInvalidStartDate)
		return
	}
	endDate, err := parseOptionalTime(req.EndDate, false)
	if err != nil {
		AbortWithError(c, newValidationError("endDate", "invalid_end_date", "invalid endDate"))
		return
	}

	paymentReq := paymentdomain.PaymentRequest{
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		Kind:        paymentdomain.Kind(strings.TrimSpace(req.Kind)),
		Frequency:   paymentdomain.Frequency(strings.TrimSpace(req.Frequency)),
		Direction:   paymentdomain.Direction(strings.TrimSpace(req.Direction)),
		Amount:      req.Amount,
		EndDate:     endDate,
	}
	if startDate != nil {
		paymentReq.StartDate = *startDate
	}

	resp, err := s.paymentSvc.CreatePayment(c.Request.Context(), paymentReq)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type updatePaymentRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Kind        *string          `json:"kind"`
	Frequency   *string          `json:"frequency"`
	Direction   *string          `json:"direction"`
	Amount      *decimal.Decimal `json:"amount"`
	StartDate   *string          `json:"startDate"`
	EndDate     nullable[string] `json:"endDate"`
}

func (s *Server) UpdatePayment(c *gin.Context) {
	var req updatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	patch := paymentdomain.PaymentPatch{
		Name:         trimmed(req.Name),
		Description:  trimmed(req.Description),
		Amount:       req.Amount,
		ClearEndDate: req.EndDate.Null,
	}
	if req.Kind != nil {
		kind := paymentdomain.Kind(strings.TrimSpace(*req.Kind))
		patch.Kind = &kind
	}
	if req.Frequency != nil {
		frequency := paymentdomain.Frequency(strings.TrimSpace(*req.Frequency))
		patch.Frequency = &frequency
	}
	if req.Direction != nil {
		direction := paymentdomain.Direction(strings.TrimSpace(*req.Direction))
		patch.Direction = &direction
	}
	if req.StartDate != nil {
		startDate, err := parseRequiredTime(*req.StartDate)
		if err != nil {
			AbortWithError(c, paymentdomain.ErrInvalidStartDate)
			return
		}
		patch.StartDate = &startDate
	}
	if value := req.EndDate.Ptr(); value != nil {
		endDate, err := parseRequiredTime(*value)
		if err != nil {
			AbortWithError(c, newValidationError("endDate", "invalid_end_date", "invalid endDate"))
			return
		}
		patch.EndDate = &endDate
	}

	resp, err := s.paymentSvc.UpdatePayment(c.Request.Context(), strings.TrimSpace(c.Param("id")), patch)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetPayment(c *gin.Context) {
	resp, err := s.paymentSvc.GetPayment(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListPayments(c *gin.Context) {
	var query struct {
		pagination.Page
		Q         string `form:"q"`
		Kind      string `form:"kind"`
		Direction string `form:"direction"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.paymentSvc.ListPayments(c.Request.Context(), paymentdomain.ListPaymentsRequest{
		Page:      query.Page,
		Q:         strings.TrimSpace(query.Q),
		Kind:      paymentdomain.Kind(strings.TrimSpace(query.Kind)),
		Direction: paymentdomain.Direction(strings.TrimSpace(query.Direction)),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeletePayment(c *gin.Context) {
	if err := s.paymentSvc.DeletePayment(c.Request.Context(), strings.TrimSpace(c.Param("id"))); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

type createPaymentLogRequest struct {
	Amount    decimal.Decimal `json:"amount"`
	PaidAt    *time.Time      `json:"paidAt"`
	Type      string          `json:"type"`
	Mode      string          `json:"mode"`
	Reference string          `json:"reference"`
	Notes     string          `json:"notes"`
}

func (s *Server) CreatePaymentLog(c *gin.Context) {
	var req createPaymentLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	logReq := paymentdomain.LogRequest{
		Amount:    req.Amount,
		Type:      paymentdomain.LogType(strings.TrimSpace(req.Type)),
		Mode:      paymentdomain.Mode(strings.TrimSpace(req.Mode)),
		Reference: strings.TrimSpace(req.Reference),
		Notes:     req.Notes,
	}
	if req.PaidAt != nil {
		logReq.PaidAt = *req.PaidAt
	}

	resp, err := s.paymentSvc.CreateLog(c.Request.Context(), strings.TrimSpace(c.Param("id")), logReq)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListPaymentLogs(c *gin.Context) {
	logs, err := s.paymentSvc.ListLogs(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if logs == nil {
		logs = []paymentdomain.Log{}
	}

	c.JSON(http.StatusOK, gin.H{"data": logs})
}

func (s *Server) DeletePaymentLog(c *gin.Context) {
	err := s.paymentSvc.DeleteLog(c.Request.Context(), strings.TrimSpace(c.Param("id")), strings.TrimSpace(c.Param("logId")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *Server) PaymentStatement(c *gin.Context) {
	out, filename, err := s.documentSvc.PaymentStatement(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", out)
}

type createBookingPaymentRequest struct {
	Type   string          `json:"type"`
	Amount decimal.Decimal `json:"amount"`
	Mode   string          `json:"mode"`
	PaidAt *time.Time      `json:"paidAt"`
	Notes  string          `json:"notes"`
	Images []string        `json:"images"`
}

func (s *Server) CreateBookingPayment(c *gin.Context) {
	var req createBookingPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	paymentReq := paymentdomain.BookingPaymentRequest{
		Type:   paymentdomain.BookingPaymentType(strings.TrimSpace(req.Type)),
		Amount: req.Amount,
		Mode:   paymentdomain.Mode(strings.TrimSpace(req.Mode)),
		Notes:  req.Notes,
		Images: req.Images,
	}
	if req.PaidAt != nil {
		paymentReq.PaidAt = *req.PaidAt
	}

	resp, err := s.paymentSvc.CreateBookingPayment(c.Request.Context(), strings.TrimSpace(c.Param("id")), paymentReq)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListBookingPayments(c *gin.Context) {
	resp, err := s.paymentSvc.ListBookingPayments(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func isPaymentValidationError(err error) bool {
	switch err {
	case paymentdomain.ErrInvalidID,
		paymentdomain.ErrInvalidName,
		paymentdomain.ErrInvalidKind,
		paymentdomain.ErrInvalidFrequency,
		paymentdomain.ErrInvalidDirection,
		paymentdomain.ErrInvalidAmount,
		paymentdomain.ErrInvalidStartDate,
		paymentdomain.ErrInvalidDateRange,
		paymentdomain.ErrInvalidLogType,
		paymentdomain.ErrInvalidMode,
		paymentdomain.ErrInvalidPaymentType,
		paymentdomain.ErrMissingProof:
		return true
	default:
		return false
	}
}
