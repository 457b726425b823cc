package client

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

var createClientRules = []validation.Rule{
	{Field: "name", Type: validation.TypeString, Required: true},
	{Field: "email", Type: validation.TypeEmail, Nullable: true},
	{Field: "phone", Type: validation.TypeString, Nullable: true},
	{Field: "cnpj", Type: validation.TypeString, Nullable: true},
	{Field: "leadOriginId", Type: validation.TypePositiveInt,
		Message: "lead origin ID must be a positive integer"},
}

var updateClientRules = []validation.Rule{
	{Field: "name", Type: validation.TypeString},
	{Field: "email", Type: validation.TypeEmail, Nullable: true},
	{Field: "phone", Type: validation.TypeString, Nullable: true},
	{Field: "cnpj", Type: validation.TypeString, Nullable: true},
	{Field: "leadOriginId", Type: validation.TypePositiveInt, Nullable: true,
		Message: "lead origin ID must be a positive integer"},
}

var companyParamRules = []validation.Rule{
	{Field: "companyId", Type: validation.TypeUUID, Message: "invalid company ID"},
}

var clientParamRules = []validation.Rule{
	{Field: "companyId", Type: validation.TypeUUID, Message: "invalid company ID"},
	{Field: "clientId", Type: validation.TypePositiveInt, Message: "client ID must be a positive integer"},
}

// Create godoc
// @Summary Create a client for a company
// @Tags Clients
// @Accept json
// @Produce json
// @Param companyId path string true "Company ID"
// @Success 201 {object} Client
// @Failure 400 {object} map[string]string
// @Router /api/companies/{companyId}/clients [post]
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

	vals, err := validation.ParseBody(body, createClientRules)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	var leadOriginID *uint
	if origin := vals.OptInt("leadOriginId"); origin.Present && !origin.Null {
		id := uint(origin.Value)
		leadOriginID = &id
	}

	client, err := h.svc.CreateClient(c.Request.Context(), params.UUID("companyId"), CreateInput{
		Name:         vals.String("name"),
		Email:        optionalString(vals.OptString("email")),
		Phone:        optionalString(vals.OptString("phone")),
		CNPJ:         optionalString(vals.OptString("cnpj")),
		LeadOriginID: leadOriginID,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, client)
}

// List godoc
// @Summary List clients of a company
// @Tags Clients
// @Produce json
// @Param companyId path string true "Company ID"
// @Success 200 {array} Client
// @Router /api/companies/{companyId}/clients [get]
func (h *Handler) List(c *gin.Context) {
	params, err := validation.ParseParams(c.Param, companyParamRules)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	clients, err := h.svc.GetClientsByCompany(c.Request.Context(), params.UUID("companyId"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, clients)
}

// GetByID godoc
// @Summary Get a client by ID
// @Tags Clients
// @Produce json
// @Param companyId path string true "Company ID"
// @Param clientId path int true "Client ID"
// @Success 200 {object} Client
// @Failure 404 {object} map[string]string
// @Router /api/companies/{companyId}/clients/{clientId} [get]
func (h *Handler) GetByID(c *gin.Context) {
	params, err := validation.ParseParams(c.Param, clientParamRules)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	client, err := h.svc.GetClientByID(c.Request.Context(), params.UUID("companyId"), uint(params.Int("clientId")))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, client)
}

// Update godoc
// @Summary Update a client
// @Tags Clients
// @Accept json
// @Produce json
// @Param companyId path string true "Company ID"
// @Param clientId path int true "Client ID"
// @Success 200 {object} Client
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/companies/{companyId}/clients/{clientId} [put]
func (h *Handler) Update(c *gin.Context) {
	params, err := validation.ParseParams(c.Param, clientParamRules)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	body, err := c.GetRawData()
	if err != nil {
		handleServiceError(c, err)
		return
	}

	fields, err := validation.ParseUpdateBody(body, updateClientRules)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	client, err := h.svc.UpdateClient(c.Request.Context(), params.UUID("companyId"), uint(params.Int("clientId")), UpdateInput{
		Name:       fields.OptString("name"),
		Email:      fields.OptString("email"),
		Phone:      fields.OptString("phone"),
		CNPJ:       fields.OptString("cnpj"),
		LeadOrigin: fields.OptInt("leadOriginId"),
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, client)
}

// Remove godoc
// @Summary Delete a client
// @Tags Clients
// @Param companyId path string true "Company ID"
// @Param clientId path int true "Client ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /api/companies/{companyId}/clients/{clientId} [delete]
func (h *Handler) Remove(c *gin.Context) {
	params, err := validation.ParseParams(c.Param, clientParamRules)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	if err := h.svc.DeleteClient(c.Request.Context(), params.UUID("companyId"), uint(params.Int("clientId"))); err != nil {
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
	log.Printf("client: unexpected error: %v", err)
	c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
}

func optionalString(v validation.OptString) *string {
	if !v.Present || v.Null {
		return nil
	}
	s := v.Value
	return &s
}
