package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	bookingdomain "github.com/smallbiznis/hoteldesk/internal/booking/domain"
	"github.com/smallbiznis/hoteldesk/internal/pricing"
	"github.com/smallbiznis/hoteldesk/pkg/db/pagination"
)

type bookingItemRequest struct {
	ServiceID      snowflake.ID     `json:"serviceId"`
	VariantName    string           `json:"variantName"`
	PriceType      string           `json:"priceType"`
	UnitPrice      *decimal.Decimal `json:"unitPrice"`
	Units          decimal.Decimal  `json:"units"`
	CustomPrice    decimal.Decimal  `json:"customPrice"`
	DiscountAmount decimal.Decimal  `json:"discountAmount"`
}

func (r bookingItemRequest) input() bookingdomain.ItemInput {
	return bookingdomain.ItemInput{
		ServiceID:      r.ServiceID,
		VariantName:    strings.TrimSpace(r.VariantName),
		PriceType:      pricing.PriceType(strings.TrimSpace(r.PriceType)),
		UnitPrice:      r.UnitPrice,
		Units:          r.Units,
		CustomPrice:    r.CustomPrice,
		DiscountAmount: r.DiscountAmount,
	}
}

func itemInputs(items []bookingItemRequest) []bookingdomain.ItemInput {
	out := make([]bookingdomain.ItemInput, 0, len(items))
	for _, item := range items {
		out = append(out, item.input())
	}
	return out
}

type createBookingRequest struct {
	CustomerName   string               `json:"customerName"`
	CustomerPhone  string               `json:"customerPhone"`
	CustomerEmail  string               `json:"customerEmail"`
	EventName      string               `json:"eventName"`
	Notes          string               `json:"notes"`
	StartAt        time.Time            `json:"startAt"`
	EndAt          time.Time            `json:"endAt"`
	Status         string               `json:"status"`
	Items          []bookingItemRequest `json:"items"`
	DiscountAmount decimal.Decimal      `json:"discountAmount"`
}

func (s *Server) CreateBooking(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	booking, err := s.bookingSvc.Create(c.Request.Context(), bookingdomain.CreateRequest{
		CustomerName:   strings.TrimSpace(req.CustomerName),
		CustomerPhone:  strings.TrimSpace(req.CustomerPhone),
		CustomerEmail:  strings.TrimSpace(req.CustomerEmail),
		EventName:      strings.TrimSpace(req.EventName),
		Notes:          req.Notes,
		StartAt:        req.StartAt,
		EndAt:          req.EndAt,
		Status:         bookingdomain.Status(strings.TrimSpace(req.Status)),
		Items:          itemInputs(req.Items),
		DiscountAmount: req.DiscountAmount,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": booking})
}

type updateBookingRequest struct {
	CustomerName   *string               `json:"customerName"`
	CustomerPhone  *string               `json:"customerPhone"`
	CustomerEmail  *string               `json:"customerEmail"`
	EventName      *string               `json:"eventName"`
	Notes          *string               `json:"notes"`
	Status         *string               `json:"status"`
	StartAt        *time.Time            `json:"startAt"`
	EndAt          *time.Time            `json:"endAt"`
	Items          *[]bookingItemRequest `json:"items"`
	DiscountAmount *decimal.Decimal      `json:"discountAmount"`
	DeletedAt      nullable[time.Time]   `json:"deletedAt"`
}

func (s *Server) UpdateBooking(c *gin.Context) {
	var req updateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	// deletedAt only accepts null; deleting goes through DELETE.
	if req.DeletedAt.Set && !req.DeletedAt.Null {
		AbortWithError(c, newValidationError("deletedAt", "invalid_deleted_at", "deletedAt only accepts null"))
		return
	}

	patch := bookingdomain.Patch{
		CustomerName:   trimmed(req.CustomerName),
		CustomerPhone:  trimmed(req.CustomerPhone),
		CustomerEmail:  trimmed(req.CustomerEmail),
		EventName:      trimmed(req.EventName),
		Notes:          req.Notes,
		StartAt:        req.StartAt,
		EndAt:          req.EndAt,
		DiscountAmount: req.DiscountAmount,
		Restore:        req.DeletedAt.Null,
	}
	if req.Status != nil {
		status := bookingdomain.Status(strings.TrimSpace(*req.Status))
		patch.Status = &status
	}
	if req.Items != nil {
		items := itemInputs(*req.Items)
		patch.Items = &items
	}

	booking, err := s.bookingSvc.Update(c.Request.Context(), strings.TrimSpace(c.Param("id")), patch)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": booking})
}

func (s *Server) GetBooking(c *gin.Context) {
	booking, err := s.bookingSvc.Get(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if booking.Deleted() && !isAdmin(c) {
		AbortWithError(c, ErrNotFound)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": booking})
}

func (s *Server) ListBookings(c *gin.Context) {
	var query struct {
		pagination.Page
		Q              string `form:"q"`
		Status         string `form:"status"`
		From           string `form:"from"`
		To             string `form:"to"`
		IncludeDeleted string `form:"includeDeleted"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	from, err := parseOptionalTime(query.From, false)
	if err != nil {
		AbortWithError(c, newValidationError("from", "invalid_from", "invalid from"))
		return
	}
	to, err := parseOptionalTime(query.To, true)
	if err != nil {
		AbortWithError(c, newValidationError("to", "invalid_to", "invalid to"))
		return
	}
	includeDeleted, err := parseOptionalBool(query.IncludeDeleted)
	if err != nil {
		AbortWithError(c, newValidationError("includeDeleted", "invalid_include_deleted", "invalid includeDeleted"))
		return
	}
	resp, err := s.bookingSvc.List(c.Request.Context(), bookingdomain.ListRequest{
		Page:           query.Page,
		Q:              strings.TrimSpace(query.Q),
		Status:         bookingdomain.Status(strings.TrimSpace(query.Status)),
		From:           from,
		To:             to,
		IncludeDeleted: includeDeleted != nil && *includeDeleted,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteBooking(c *gin.Context) {
	if err := s.bookingSvc.Delete(c.Request.Context(), strings.TrimSpace(c.Param("id"))); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *Server) BookingAvailability(c *gin.Context) {
	startAt, err := parseRequiredTime(c.Query("startAt"))
	if err != nil {
		AbortWithError(c, newValidationError("startAt", "invalid_start_at", "invalid startAt"))
		return
	}
	endAt, err := parseRequiredTime(c.Query("endAt"))
	if err != nil {
		AbortWithError(c, newValidationError("endAt", "invalid_end_at", "invalid endAt"))
		return
	}

	resp, err := s.bookingSvc.Availability(c.Request.Context(), bookingdomain.AvailabilityRequest{
		StartAt: startAt,
		EndAt:   endAt,
		Q:       strings.TrimSpace(c.Query("q")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListBookingAudit(c *gin.Context) {
	limit, err := parseOptionalInt(c.Query("limit"))
	if err != nil || limit < 0 {
		AbortWithError(c, newValidationError("limit", "invalid_limit", "invalid limit"))
		return
	}

	records, err := s.bookingSvc.Audit(c.Request.Context(), strings.TrimSpace(c.Param("id")), limit)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": records})
}

func (s *Server) BookingReceipt(c *gin.Context) {
	out, filename, err := s.documentSvc.BookingReceipt(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", out)
}

func trimmed(value *string) *string {
	if value == nil {
		return nil
	}
	v := strings.TrimSpace(*value)
	return &v
}

func isBookingValidationError(err error) bool {
	switch err {
	case bookingdomain.ErrInvalidID,
		bookingdomain.ErrInvalidCustomer,
		bookingdomain.ErrInvalidTimeRange,
		bookingdomain.ErrInvalidItems,
		bookingdomain.ErrInvalidService,
		bookingdomain.ErrInvalidVariant,
		bookingdomain.ErrInvalidPriceType,
		bookingdomain.ErrInvalidAmount,
		bookingdomain.ErrInvalidStatus:
		return true
	default:
		return false
	}
}
