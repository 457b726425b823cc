package user

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

var createUserRules = []validation.Rule{
	{Field: "name", Type: validation.TypeString, Required: true},
	{Field: "email", Type: validation.TypeEmail, Required: true},
	{Field: "password", Type: validation.TypeString, Required: true, MinLen: 8,
		Message: "password must contain at least 8 characters"},
	{Field: "companyId", Type: validation.TypeUUID, Required: true, Message: "invalid company ID"},
}

var updateUserRules = []validation.Rule{
	{Field: "name", Type: validation.TypeString},
	{Field: "companyId", Type: validation.TypeUUID, Message: "invalid company ID"},
	{Field: "role", Type: validation.TypeEnum, Enum: []string{string(RoleAdmin), string(RoleUser)}},
}

var loginRules = []validation.Rule{
	{Field: "email", Type: validation.TypeEmail, Required: true},
	{Field: "password", Type: validation.TypeString, Required: true},
}

var userParamRules = []validation.Rule{
	{Field: "id", Type: validation.TypeUUID, Message: "invalid user ID"},
}

// Create godoc
// @Summary Register a user
// @Tags Users
// @Accept json
// @Produce json
// @Success 201 {object} User
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /api/users [post]
func (h *Handler) Create(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		handleServiceError(c, err)
		return
	}

	vals, err := validation.ParseBody(body, createUserRules)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	user, err := h.svc.CreateUser(c.Request.Context(), CreateInput{
		Name:      vals.String("name"),
		Email:     vals.String("email"),
		Password:  vals.String("password"),
		CompanyID: vals.UUID("companyId"),
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

// List godoc
// @Summary List all users
// @Tags Users
// @Produce json
// @Success 200 {array} User
// @Router /api/users [get]
func (h *Handler) List(c *gin.Context) {
	users, err := h.svc.GetUsers(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// GetByID godoc
// @Summary Get a user by ID
// @Tags Users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} User
// @Failure 404 {object} map[string]string
// @Router /api/users/{id} [get]
func (h *Handler) GetByID(c *gin.Context) {
	vals, err := validation.ParseParams(c.Param, userParamRules)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	user, err := h.svc.GetUserByID(c.Request.Context(), vals.UUID("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// Update godoc
// @Summary Update a user
// @Tags Users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} User
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/users/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	vals, err := validation.ParseParams(c.Param, userParamRules)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	body, err := c.GetRawData()
	if err != nil {
		handleServiceError(c, err)
		return
	}

	fields, err := validation.ParseUpdateBody(body, updateUserRules)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	user, err := h.svc.UpdateUser(c.Request.Context(), vals.UUID("id"), UpdateInput{
		Name:      fields.OptString("name"),
		CompanyID: fields.OptString("companyId"),
		Role:      fields.OptString("role"),
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// Remove godoc
// @Summary Delete a user
// @Tags Users
// @Param id path string true "User ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /api/users/{id} [delete]
func (h *Handler) Remove(c *gin.Context) {
	vals, err := validation.ParseParams(c.Param, userParamRules)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	if err := h.svc.DeleteUser(c.Request.Context(), vals.UUID("id")); err != nil {
		handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Login godoc
// @Summary Authenticate a user
// @Tags Users
// @Accept json
// @Produce json
// @Success 200 {object} User
// @Failure 401 {object} map[string]string
// @Router /api/users/login [post]
func (h *Handler) Login(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		handleServiceError(c, err)
		return
	}

	vals, err := validation.ParseBody(body, loginRules)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	user, err := h.svc.VerifyCredentials(c.Request.Context(), vals.String("email"), vals.String("password"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func handleServiceError(c *gin.Context, err error) {
	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		c.JSON(appErr.Status(), gin.H{"message": appErr.Message})
		return
	}
	log.Printf("user: unexpected error: %v", err)
	c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
}
