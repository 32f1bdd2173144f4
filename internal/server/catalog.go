package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	catalogdomain "github.com/smallbiznis/hoteldesk/internal/catalog/domain"
)

type createServiceRequest struct {
	Name         string                  `json:"name"`
	Description  string                  `json:"description"`
	AllowOverlap bool                    `json:"allowOverlap"`
	Variants     []catalogdomain.Variant `json:"variants"`
}

func (s *Server) CreateService(c *gin.Context) {
	var req createServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.catalogSvc.Create(c.Request.Context(), catalogdomain.CreateRequest{
		Name:         strings.TrimSpace(req.Name),
		Description:  strings.TrimSpace(req.Description),
		AllowOverlap: req.AllowOverlap,
		Variants:     req.Variants,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type updateServiceRequest struct {
	Name         *string                  `json:"name"`
	Description  *string                  `json:"description"`
	AllowOverlap *bool                    `json:"allowOverlap"`
	Variants     *[]catalogdomain.Variant `json:"variants"`
	DeletedAt    nullable[time.Time]      `json:"deletedAt"`
}

func (s *Server) UpdateService(c *gin.Context) {
	var req updateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	if req.DeletedAt.Set && !req.DeletedAt.Null {
		AbortWithError(c, newValidationError("deletedAt", "invalid_deleted_at", "deletedAt only accepts null"))
		return
	}
	// Deleted services are invisible to managers, restore included.
	if !isAdmin(c) {
		current, err := s.catalogSvc.Get(c.Request.Context(), strings.TrimSpace(c.Param("id")))
		if err != nil {
			AbortWithError(c, err)
			return
		}
		if current.Deleted() {
			AbortWithError(c, ErrNotFound)
			return
		}
	}

	resp, err := s.catalogSvc.Update(c.Request.Context(), strings.TrimSpace(c.Param("id")), catalogdomain.UpdateRequest{
		Name:         trimmed(req.Name),
		Description:  trimmed(req.Description),
		AllowOverlap: req.AllowOverlap,
		Variants:     req.Variants,
		Restore:      req.DeletedAt.Null,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetService(c *gin.Context) {
	resp, err := s.catalogSvc.Get(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if resp.Deleted() && !isAdmin(c) {
		AbortWithError(c, ErrNotFound)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListServices(c *gin.Context) {
	query, err := bindPageQuery(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	includeDeleted, err := parseOptionalBool(c.Query("includeDeleted"))
	if err != nil {
		AbortWithError(c, newValidationError("includeDeleted", "invalid_include_deleted", "invalid includeDeleted"))
		return
	}

	resp, err := s.catalogSvc.List(c.Request.Context(), catalogdomain.ListRequest{
		Page:           query.Page,
		Q:              query.Q,
		IncludeDeleted: includeDeleted != nil && *includeDeleted && isAdmin(c),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteService(c *gin.Context) {
	if err := s.catalogSvc.Delete(c.Request.Context(), strings.TrimSpace(c.Param("id"))); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func isCatalogValidationError(err error) bool {
	switch err {
	case catalogdomain.ErrInvalidID,
		catalogdomain.ErrInvalidName,
		catalogdomain.ErrInvalidVariants,
		catalogdomain.ErrInvalidPriceType,
		catalogdomain.ErrInvalidPrice:
		return true
	default:
		return false
	}
}
