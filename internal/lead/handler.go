package lead

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

var leadStatuses = []string{string(StatusHot), string(StatusWarm), string(StatusCold)}

var createLeadRules = []validation.Rule{
	{Field: "name", Type: validation.TypeString, Required: true},
	{Field: "email", Type: validation.TypeEmail, Nullable: true},
	{Field: "phone", Type: validation.TypeString, Nullable: true},
	{Field: "status", Type: validation.TypeEnum, Enum: leadStatuses},
	{Field: "cnpj", Type: validation.TypeString, Nullable: true},
	{Field: "cpf", Type: validation.TypeString, Nullable: true},
}

var updateLeadRules = []validation.Rule{
	{Field: "name", Type: validation.TypeString},
	{Field: "email", Type: validation.TypeEmail, Nullable: true},
	{Field: "phone", Type: validation.TypeString, Nullable: true},
	{Field: "status", Type: validation.TypeEnum, Enum: leadStatuses},
	{Field: "cnpj", Type: validation.TypeString, Nullable: true},
	{Field: "cpf", Type: validation.TypeString, Nullable: true},
}

var companyParamRules = []validation.Rule{
	{Field: "companyId", Type: validation.TypeUUID, Message: "invalid company ID"},
}

var leadParamRules = []validation.Rule{
	{Field: "companyId", Type: validation.TypeUUID, Message: "invalid company ID"},
	{Field: "leadId", Type: validation.TypePositiveInt, Message: "lead ID must be a positive integer"},
}

// Create godoc
// @Summary Create a lead for a company
// @Tags Leads
// @Accept json
// @Produce json
// @Param companyId path string true "Company ID"
// @Success 201 {object} Lead
// @Failure 400 {object} map[string]string
// @Router /api/companies/{companyId}/leads [post]
func (h *Handler) Create(c *gin.Context) {
	params, err := validation.ParseParams(c.Param, companyParamRules)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	body, err := c.GetRawData()
	if err != nil {
		handleServiceError(c, err)
		return
	}

	vals, err := validation.ParseBody(body, createLeadRules)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	lead, err := h.svc.CreateLead(c.Request.Context(), params.UUID("companyId"), CreateInput{
		Name:   vals.String("name"),
		Email:  optionalString(vals.OptString("email")),
		Phone:  optionalString(vals.OptString("phone")),
		Status: Status(vals.String("status")),
		CNPJ:   optionalString(vals.OptString("cnpj")),
		CPF:    optionalString(vals.OptString("cpf")),
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, lead)
}

// List godoc
// @Summary List leads of a company
// @Tags Leads
// @Produce json
// @Param companyId path string true "Company ID"
// @Success 200 {array} Lead
// @Router /api/companies/{companyId}/leads [get]
func (h *Handler) List(c *gin.Context) {
	params, err := validation.ParseParams(c.Param, companyParamRules)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	leads, err := h.svc.GetLeadsByCompany(c.Request.Context(), params.UUID("companyId"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, leads)
}

// GetByID godoc
// @Summary Get a lead by ID
// @Tags Leads
// @Produce json
// @Param companyId path string true "Company ID"
// @Param leadId path int true "Lead ID"
// @Success 200 {object} Lead
// @Failure 404 {object} map[string]string
// @Router /api/companies/{companyId}/leads/{leadId} [get]
func (h *Handler) GetByID(c *gin.Context) {
	params, err := validation.ParseParams(c.Param, leadParamRules)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	lead, err := h.svc.GetLeadByID(c.Request.Context(), params.UUID("companyId"), uint(params.Int("leadId")))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, lead)
}

// Update godoc
// @Summary Update a lead
// @Tags Leads
// @Accept json
// @Produce json
// @Param companyId path string true "Company ID"
// @Param leadId path int true "Lead ID"
// @Success 200 {object} Lead
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/companies/{companyId}/leads/{leadId} [put]
func (h *Handler) Update(c *gin.Context) {
	params, err := validation.ParseParams(c.Param, leadParamRules)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	body, err := c.GetRawData()
	if err != nil {
		handleServiceError(c, err)
		return
	}

	fields, err := validation.ParseUpdateBody(body, updateLeadRules)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	lead, err := h.svc.UpdateLead(c.Request.Context(), params.UUID("companyId"), uint(params.Int("leadId")), UpdateInput{
		Name:   fields.OptString("name"),
		Email:  fields.OptString("email"),
		Phone:  fields.OptString("phone"),
		Status: fields.OptString("status"),
		CNPJ:   fields.OptString("cnpj"),
		CPF:    fields.OptString("cpf"),
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, lead)
}

// Remove godoc
// @Summary Delete a lead
// @Tags Leads
// @Param companyId path string true "Company ID"
// @Param leadId path int true "Lead ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /api/companies/{companyId}/leads/{leadId} [delete]
func (h *Handler) Remove(c *gin.Context) {
	params, err := validation.ParseParams(c.Param, leadParamRules)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	if err := h.svc.DeleteLead(c.Request.Context(), params.UUID("companyId"), uint(params.Int("leadId"))); err != nil {
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
	log.Printf("lead: unexpected error: %v", err)
	c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
}

func optionalString(v validation.OptString) *string {
	if !v.Present || v.Null {
		return nil
	}
	s := v.Value
	return &s
}
