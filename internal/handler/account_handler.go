package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mitropoulosg/money-transfer-api/internal/middleware"
	"github.com/mitropoulosg/money-transfer-api/internal/models"
)

// AccountManager defines the account operations used by AccountHandler.
type AccountManager interface {
	CreateAccount(ctx context.Context, balance decimal.Decimal) (*models.AccountView, error)
	GetAllAccounts(ctx context.Context) ([]models.AccountView, error)
	GetAccount(ctx context.Context, id uuid.UUID) (*models.AccountView, error)
	UpdateAccount(ctx context.Context, id uuid.UUID, balance decimal.Decimal) error
	DeleteAccount(ctx context.Context, id uuid.UUID) error
}

// AccountHandler handles account-related HTTP requests.
type AccountHandler struct {
	accounts AccountManager
}

type CreateAccountRequest struct {
	Balance *decimal.Decimal `json:"balance" validate:"required"`
}

type UpdateAccountRequest struct {
	Balance *decimal.Decimal `json:"balance" validate:"required"`
}

func NewAccountHandler(accounts AccountManager) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

func (h *AccountHandler) CreateAccount(c *gin.Context) {
	var req CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithBadRequest(c, "Invalid request format or value")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	view, err := h.accounts.CreateAccount(c.Request.Context(), *req.Balance)
	if err != nil {
		respondWithError(c, err)
		return
	}

	middleware.AccountsCreatedTotal.Inc()
	c.JSON(http.StatusCreated, view)
}

func (h *AccountHandler) GetAllAccounts(c *gin.Context) {
	views, err := h.accounts.GetAllAccounts(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}
	if views == nil {
		views = []models.AccountView{}
	}
	c.JSON(http.StatusOK, views)
}

func (h *AccountHandler) GetAccount(c *gin.Context) {
	id, ok := parseAccountID(c)
	if !ok {
		return
	}

	view, err := h.accounts.GetAccount(c.Request.Context(), id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

func (h *AccountHandler) UpdateAccount(c *gin.Context) {
	id, ok := parseAccountID(c)
	if !ok {
		return
	}

	var req UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithBadRequest(c, "Invalid request format or value")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	if err := h.accounts.UpdateAccount(c.Request.Context(), id, *req.Balance); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Account updated"})
}

func (h *AccountHandler) DeleteAccount(c *gin.Context) {
	id, ok := parseAccountID(c)
	if !ok {
		return
	}

	if err := h.accounts.DeleteAccount(c.Request.Context(), id); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Account deleted"})
}

// parseAccountID parses the :id path parameter, responding 400 on malformed
// input the same way the taxonomy reports bad requests.
func parseAccountID(c *gin.Context) (uuid.UUID, bool) {
	raw := c.Param("id")
	id, err := uuid.Parse(raw)
	if err != nil {
		respondWithBadRequest(c, "Invalid parameter: id with value: "+raw)
		return uuid.Nil, false
	}
	return id, true
}
