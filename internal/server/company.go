package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	companydomain "github.com/smallbiznis/hoteldesk/internal/company/domain"
)

type updateCompanyRequest struct {
	Name        string `json:"name"`
	LegalName   string `json:"legalName"`
	Address     string `json:"address"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	TaxID       string `json:"taxId"`
	Currency    string `json:"currency"`
	BankDetails string `json:"bankDetails"`
}

func (s *Server) GetCompany(c *gin.Context) {
	resp, err := s.companySvc.Get(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateCompany(c *gin.Context) {
	var req updateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.companySvc.Update(c.Request.Context(), companydomain.UpdateRequest{
		Name:        strings.TrimSpace(req.Name),
		LegalName:   strings.TrimSpace(req.LegalName),
		Address:     strings.TrimSpace(req.Address),
		Phone:       strings.TrimSpace(req.Phone),
		Email:       strings.TrimSpace(req.Email),
		TaxID:       strings.TrimSpace(req.TaxID),
		Currency:    strings.ToUpper(strings.TrimSpace(req.Currency)),
		BankDetails: req.BankDetails,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type uploadLogoRequest struct {
	Image string `json:"image"`
}

func (s *Server) UploadCompanyLogo(c *gin.Context) {
	var req uploadLogoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.companySvc.UploadLogo(c.Request.Context(), req.Image)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func isCompanyValidationError(err error) bool {
	switch err {
	case companydomain.ErrInvalidName,
		companydomain.ErrInvalidEmail,
		companydomain.ErrInvalidCurrency:
		return true
	default:
		return false
	}
}
