package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	employeedomain "github.com/smallbiznis/hoteldesk/internal/employee/domain"
	"github.com/smallbiznis/hoteldesk/pkg/db/pagination"
)

type createEmployeeRequest struct {
	FullName string          `json:"fullName"`
	Position string          `json:"position"`
	Phone    string          `json:"phone"`
	Email    string          `json:"email"`
	Salary   decimal.Decimal `json:"salary"`
	JoinedAt string          `json:"joinedAt"`
	Active   *bool           `json:"active"`
	Notes    string          `json:"notes"`
}

func (s *Server) CreateEmployee(c *gin.Context) {
	var req createEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	joinedAt, err := parseOptionalTime(req.JoinedAt, false)
	if err != nil {
		AbortWithError(c, newValidationError("joinedAt", "invalid_joined_at", "invalid joinedAt"))
		return
	}

	resp, err := s.employeeSvc.Create(c.Request.Context(), employeedomain.Request{
		FullName: strings.TrimSpace(req.FullName),
		Position: strings.TrimSpace(req.Position),
		Phone:    strings.TrimSpace(req.Phone),
		Email:    strings.TrimSpace(req.Email),
		Salary:   req.Salary,
		JoinedAt: joinedAt,
		Active:   req.Active,
		Notes:    req.Notes,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type updateEmployeeRequest struct {
	FullName *string          `json:"fullName"`
	Position *string          `json:"position"`
	Phone    *string          `json:"phone"`
	Email    *string          `json:"email"`
	Salary   *decimal.Decimal `json:"salary"`
	JoinedAt *string          `json:"joinedAt"`
	Active   *bool            `json:"active"`
	Notes    *string          `json:"notes"`
}

func (s *Server) UpdateEmployee(c *gin.Context) {
	var req updateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	patch := employeedomain.Patch{
		FullName: trimmed(req.FullName),
		Position: trimmed(req.Position),
		Phone:    trimmed(req.Phone),
		Email:    trimmed(req.Email),
		Salary:   req.Salary,
		Active:   req.Active,
		Notes:    req.Notes,
	}
	if req.JoinedAt != nil {
		joinedAt, err := parseRequiredTime(*req.JoinedAt)
		if err != nil {
			AbortWithError(c, newValidationError("joinedAt", "invalid_joined_at", "invalid joinedAt"))
			return
		}
		patch.JoinedAt = &joinedAt
	}

	resp, err := s.employeeSvc.Update(c.Request.Context(), strings.TrimSpace(c.Param("id")), patch)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetEmployee(c *gin.Context) {
	resp, err := s.employeeSvc.Get(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListEmployees(c *gin.Context) {
	var query struct {
		pagination.Page
		Q      string `form:"q"`
		Active string `form:"active"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	active, err := parseOptionalBool(query.Active)
	if err != nil {
		AbortWithError(c, newValidationError("active", "invalid_active", "invalid active"))
		return
	}

	resp, err := s.employeeSvc.List(c.Request.Context(), employeedomain.ListRequest{
		Page:   query.Page,
		Q:      strings.TrimSpace(query.Q),
		Active: active,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteEmployee(c *gin.Context) {
	if err := s.employeeSvc.Delete(c.Request.Context(), strings.TrimSpace(c.Param("id"))); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func isEmployeeValidationError(err error) bool {
	switch err {
	case employeedomain.ErrInvalidID,
		employeedomain.ErrInvalidName,
		employeedomain.ErrInvalidEmail,
		employeedomain.ErrInvalidSalary:
		return true
	default:
		return false
	}
}
