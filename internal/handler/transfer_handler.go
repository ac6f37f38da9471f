package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mitropoulosg/money-transfer-api/internal/apperrors"
	"github.com/mitropoulosg/money-transfer-api/internal/middleware"
	"github.com/mitropoulosg/money-transfer-api/internal/models"
)

// MoneyTransferer defines the transfer operation used by TransferHandler.
type MoneyTransferer interface {
	TransferMoney(ctx context.Context, cmd models.TransferCommand) (*models.TransferResult, error)
}

// TransferHandler handles the money-transfer HTTP request.
type TransferHandler struct {
	transfers MoneyTransferer
}

type TransferRequest struct {
	SourceAccountID uuid.UUID        `json:"sourceAccountId" validate:"required"`
	TargetAccountID uuid.UUID        `json:"targetAccountId" validate:"required"`
	Amount          *decimal.Decimal `json:"amount" validate:"required"`
	Currency        string           `json:"currency"`
}

func NewTransferHandler(transfers MoneyTransferer) *TransferHandler {
	return &TransferHandler{transfers: transfers}
}

func (h *TransferHandler) TransferMoney(c *gin.Context) {
	var req TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithBadRequest(c, "Invalid request format or value")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	result, err := h.transfers.TransferMoney(c.Request.Context(), models.TransferCommand{
		SourceAccountID: req.SourceAccountID,
		TargetAccountID: req.TargetAccountID,
		Amount:          *req.Amount,
		Currency:        req.Currency,
	})
	if err != nil {
		middleware.TransfersTotal.WithLabelValues(transferOutcome(err)).Inc()
		respondWithError(c, err)
		return
	}

	middleware.TransfersTotal.WithLabelValues("success").Inc()
	c.JSON(http.StatusOK, result)
}

func transferOutcome(err error) string {
	switch apperrors.KindOf(err) {
	case apperrors.KindNotFound:
		return "not_found"
	case apperrors.KindBadRequest:
		return "bad_request"
	case apperrors.KindConflict:
		return "conflict"
	default:
		return "error"
	}
}
