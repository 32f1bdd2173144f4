package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	providerdomain "github.com/smallbiznis/hoteldesk/internal/provider/domain"
	"github.com/smallbiznis/hoteldesk/pkg/db/pagination"
)

type providerRequest struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	ContactName string `json:"contactName"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	Address     string `json:"address"`
	Notes       string `json:"notes"`
}

func (s *Server) CreateProvider(c *gin.Context) {
	var req providerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.providerSvc.Create(c.Request.Context(), providerdomain.Request{
		Name:        strings.TrimSpace(req.Name),
		Category:    strings.TrimSpace(req.Category),
		ContactName: strings.TrimSpace(req.ContactName),
		Phone:       strings.TrimSpace(req.Phone),
		Email:       strings.TrimSpace(req.Email),
		Address:     strings.TrimSpace(req.Address),
		Notes:       req.Notes,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type updateProviderRequest struct {
	Name        *string `json:"name"`
	Category    *string `json:"category"`
	ContactName *string `json:"contactName"`
	Phone       *string `json:"phone"`
	Email       *string `json:"email"`
	Address     *string `json:"address"`
	Notes       *string `json:"notes"`
}

func (s *Server) UpdateProvider(c *gin.Context) {
	var req updateProviderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.providerSvc.Update(c.Request.Context(), strings.TrimSpace(c.Param("id")), providerdomain.Patch{
		Name:        trimmed(req.Name),
		Category:    trimmed(req.Category),
		ContactName: trimmed(req.ContactName),
		Phone:       trimmed(req.Phone),
		Email:       trimmed(req.Email),
		Address:     trimmed(req.Address),
		Notes:       req.Notes,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetProvider(c *gin.Context) {
	resp, err := s.providerSvc.Get(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListProviders(c *gin.Context) {
	var query struct {
		pagination.Page
		Q        string `form:"q"`
		Category string `form:"category"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.providerSvc.List(c.Request.Context(), providerdomain.ListRequest{
		Page:     query.Page,
		Q:        strings.TrimSpace(query.Q),
		Category: strings.TrimSpace(query.Category),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteProvider(c *gin.Context) {
	if err := s.providerSvc.Delete(c.Request.Context(), strings.TrimSpace(c.Param("id"))); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func isProviderValidationError(err error) bool {
	switch err {
	case providerdomain.ErrInvalidID,
		providerdomain.ErrInvalidName,
		providerdomain.ErrInvalidEmail:
		return true
	default:
		return false
	}
}
