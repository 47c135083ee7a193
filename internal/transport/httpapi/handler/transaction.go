package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/goldguard-app/backend/internal/ledger"
	"github.com/goldguard-app/backend/internal/transport/httpapi/middleware"
)

// LedgerService defines the ledger operations needed by TransactionHandler
type LedgerService interface {
	Add(ctx context.Context, userID uuid.UUID, houseName string, kind ledger.Kind, rawAmount string) (*ledger.Transaction, error)
	Statement(ctx context.Context, userID uuid.UUID) ([]*ledger.Transaction, ledger.Summary, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// TransactionHandler handles transaction HTTP requests
type TransactionHandler struct {
	ledger LedgerService
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(ledger LedgerService) *TransactionHandler {
	return &TransactionHandler{ledger: ledger}
}

// CreateTransactionRequest represents the create request body. Amount is a
// decimal string and accepts a comma as the decimal separator.
type CreateTransactionRequest struct {
	HouseName string `json:"house_name"`
	Kind      string `json:"kind"`
	Amount    string `json:"amount"`
}

// TransactionResponse represents a transaction in API responses
type TransactionResponse struct {
	ID        string    `json:"id"`
	HouseName string    `json:"house_name"`
	Kind      string    `json:"kind"`
	Amount    string    `json:"amount"`
	CreatedAt time.Time `json:"created_at"`
}

// SummaryResponse represents the derived totals
type SummaryResponse struct {
	TotalDeposits    string `json:"total_deposits"`
	TotalWithdrawals string `json:"total_withdrawals"`
	Net              string `json:"net"`
}

// StatementResponse represents the list response: the transactions newest
// first, plus the totals recomputed over them.
type StatementResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Summary      SummaryResponse       `json:"summary"`
}

func toTransactionResponse(tx *ledger.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:        tx.ID.String(),
		HouseName: tx.HouseName,
		Kind:      string(tx.Kind),
		Amount:    tx.Amount.String(),
		CreatedAt: tx.CreatedAt,
	}
}

// CreateTransaction handles POST /transactions
func (h *TransactionHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req CreateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tx, err := h.ledger.Add(r.Context(), id.ID, req.HouseName, ledger.Kind(req.Kind), req.Amount)
	if err != nil {
		if ledger.IsValidation(err) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to create transaction")
		return
	}

	respondJSON(w, http.StatusCreated, toTransactionResponse(tx))
}

// GetTransactions handles GET /transactions
func (h *TransactionHandler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	txs, summary, err := h.ledger.Statement(r.Context(), id.ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list transactions")
		return
	}

	resp := StatementResponse{
		Transactions: make([]TransactionResponse, 0, len(txs)),
		Summary: SummaryResponse{
			TotalDeposits:    summary.TotalDeposits.String(),
			TotalWithdrawals: summary.TotalWithdrawals.String(),
			Net:              summary.Net.String(),
		},
	}
	for _, tx := range txs {
		resp.Transactions = append(resp.Transactions, toTransactionResponse(tx))
	}

	respondJSON(w, http.StatusOK, resp)
}

// DeleteTransaction handles DELETE /transactions/{id}
func (h *TransactionHandler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	txID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid transaction id")
		return
	}

	if err := h.ledger.Delete(r.Context(), id.ID, txID); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to delete transaction")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
