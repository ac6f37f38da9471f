package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mitropoulosg/money-transfer-api/internal/apperrors"
	"github.com/mitropoulosg/money-transfer-api/internal/models"
)

type mockTransferer struct {
	transferFn func(cmd models.TransferCommand) (*models.TransferResult, error)
}

func (m *mockTransferer) TransferMoney(_ context.Context, cmd models.TransferCommand) (*models.TransferResult, error) {
	if m.transferFn != nil {
		return m.transferFn(cmd)
	}
	return nil, fmt.Errorf("not configured")
}

func newTransferTestRouter(transfers MoneyTransferer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewTransferHandler(transfers)
	r.POST("/api/transfer", h.TransferMoney)
	return r
}

func transferBody(source, target uuid.UUID, amount string) map[string]any {
	return map[string]any{
		"sourceAccountId": source.String(),
		"targetAccountId": target.String(),
		"amount":          amount,
	}
}

func TestTransferMoney_OK(t *testing.T) {
	source, target := uuid.New(), uuid.New()
	router := newTransferTestRouter(&mockTransferer{
		transferFn: func(cmd models.TransferCommand) (*models.TransferResult, error) {
			if cmd.SourceAccountID != source || cmd.TargetAccountID != target {
				t.Errorf("unexpected command: %+v", cmd)
			}
			return &models.TransferResult{
				Status: "Transfer successful",
				Amount: cmd.Amount,
			}, nil
		},
	})

	w := doRequest(router, http.MethodPost, "/api/transfer", transferBody(source, target, "30.00"))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var result models.TransferResult
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if result.Status != "Transfer successful" {
		t.Errorf("unexpected status: %q", result.Status)
	}
	if !result.Amount.Equal(decimal.RequireFromString("30.00")) {
		t.Errorf("unexpected amount: %s", result.Amount)
	}
}

func TestTransferMoney_MissingFields(t *testing.T) {
	router := newTransferTestRouter(&mockTransferer{})

	w := doRequest(router, http.MethodPost, "/api/transfer", map[string]any{"amount": "1.00"})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Invalid request data") {
		t.Errorf("unexpected body: %s", w.Body.String())
	}
}

func TestTransferMoney_InsufficientBalance(t *testing.T) {
	router := newTransferTestRouter(&mockTransferer{
		transferFn: func(models.TransferCommand) (*models.TransferResult, error) {
			return nil, apperrors.BadRequest("Insufficient balance in the source account.")
		},
	})

	w := doRequest(router, http.MethodPost, "/api/transfer", transferBody(uuid.New(), uuid.New(), "30.00"))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Insufficient balance in the source account.") {
		t.Errorf("unexpected body: %s", w.Body.String())
	}
}

func TestTransferMoney_SourceNotFound(t *testing.T) {
	source := uuid.New()
	router := newTransferTestRouter(&mockTransferer{
		transferFn: func(models.TransferCommand) (*models.TransferResult, error) {
			return nil, apperrors.NotFound("Source Account", source.String())
		},
	})

	w := doRequest(router, http.MethodPost, "/api/transfer", transferBody(source, uuid.New(), "30.00"))

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), source.String()) {
		t.Errorf("expected body naming the source id, got %s", w.Body.String())
	}
}

func TestTransferMoney_Conflict(t *testing.T) {
	router := newTransferTestRouter(&mockTransferer{
		transferFn: func(cmd models.TransferCommand) (*models.TransferResult, error) {
			return nil, apperrors.Conflict("Source Account", cmd.SourceAccountID.String())
		},
	})

	w := doRequest(router, http.MethodPost, "/api/transfer", transferBody(uuid.New(), uuid.New(), "30.00"))

	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", w.Code)
	}
}

func TestTransferMoney_InternalError(t *testing.T) {
	router := newTransferTestRouter(&mockTransferer{
		transferFn: func(models.TransferCommand) (*models.TransferResult, error) {
			return nil, apperrors.Internal(fmt.Errorf("tx begin failed"))
		},
	})

	w := doRequest(router, http.MethodPost, "/api/transfer", transferBody(uuid.New(), uuid.New(), "30.00"))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if strings.Contains(w.Body.String(), "tx begin failed") {
		t.Errorf("internal detail leaked: %s", w.Body.String())
	}
}
