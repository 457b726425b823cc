package company

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafamonteiro/crm-backend/internal/apperror"
	"github.com/rafamonteiro/crm-backend/internal/validation"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

var createCompanyRules = []validation.Rule{
	{Field: "name", Type: validation.TypeString, Required: true},
	{Field: "email", Type: validation.TypeEmail, Nullable: true},
	{Field: "phone", Type: validation.TypeString, Nullable: true},
}

var updateCompanyRules = []validation.Rule{
	{Field: "name", Type: validation.TypeString},
	{Field: "email", Type: validation.TypeEmail, Nullable: true},
	{Field: "phone", Type: validation.TypeString, Nullable: true},
}

var companyParamRules = []validation.Rule{
	{Field: "companyId", Type: validation.TypeUUID, Message: "invalid company ID"},
}

// Create godoc
// @Summary Create a company
// @Tags Companies
// @Accept json
// @Produce json
// @Success 201 {object} Company
// @Failure 400 {object} map[string]string
// @Router /api/companies [post]
func (h *Handler) Create(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		handleServiceError(c, err)
		return
	}

	vals, err := validation.ParseBody(body, createCompanyRules)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	company, err := h.svc.CreateCompany(c.Request.Context(), CreateInput{
		Name:  vals.String("name"),
		Email: optionalString(vals.OptString("email")),
		Phone: optionalString(vals.OptString("phone")),
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, company)
}

// List godoc
// @Summary List all companies
// @Tags Companies
// @Produce json
// @Success 200 {array} Company
// @Router /api/companies [get]
func (h *Handler) List(c *gin.Context) {
	companies, err := h.svc.GetCompanies(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, companies)
}

// GetByID godoc
// @Summary Get a company by ID
// @Tags Companies
// @Produce json
// @Param companyId path string true "Company ID"
// @Success 200 {object} Company
// @Failure 404 {object} map[string]string
// @Router /api/companies/{companyId} [get]
func (h *Handler) GetByID(c *gin.Context) {
	vals, err := validation.ParseParams(c.Param, companyParamRules)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	company, err := h.svc.GetCompanyByID(c.Request.Context(), vals.UUID("companyId"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, company)
}

// Update godoc
// @Summary Update a company
// @Tags Companies
// @Accept json
// @Produce json
// @Param companyId path string true "Company ID"
// @Success 200 {object} Company
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/companies/{companyId} [put]
func (h *Handler) Update(c *gin.Context) {
	vals, err := validation.ParseParams(c.Param, companyParamRules)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	body, err := c.GetRawData()
	if err != nil {
		handleServiceError(c, err)
		return
	}

	fields, err := validation.ParseUpdateBody(body, updateCompanyRules)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	company, err := h.svc.UpdateCompany(c.Request.Context(), vals.UUID("companyId"), UpdateInput{
		Name:  fields.OptString("name"),
		Email: fields.OptString("email"),
		Phone: fields.OptString("phone"),
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, company)
}

// Remove godoc
// @Summary Delete a company
// @Tags Companies
// @Param companyId path string true "Company ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /api/companies/{companyId} [delete]
func (h *Handler) Remove(c *gin.Context) {
	vals, err := validation.ParseParams(c.Param, companyParamRules)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	if err := h.svc.DeleteCompany(c.Request.Context(), vals.UUID("companyId")); err != nil {
		handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func handleServiceError(c *gin.Context, err error) {
	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		c.JSON(appErr.Status(), gin.H{"message": appErr.Message})
		return
	}
	log.Printf("company: unexpected error: %v", err)
	c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
}

func optionalString(v validation.OptString) *string {
	if !v.Present || v.Null {
		return nil
	}
	s := v.Value
	return &s
}
