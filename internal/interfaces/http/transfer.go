package http

import (
	"encoding/json"
	"net/http"

	"elephantbook/internal/domain/ledger"
	"elephantbook/internal/shared/middleware"

	"github.com/sirupsen/logrus"
)

// TransferHandler serves POST /transfer.
type TransferHandler struct {
	entries *ledger.Service
	log     *logrus.Logger
}

func NewTransferHandler(entries *ledger.Service, log *logrus.Logger) *TransferHandler {
	return &TransferHandler{entries: entries, log: log}
}

type TransferRequest struct {
	FromAccountID   int64   `json:"from_account_id"`
	ToAccountID     int64   `json:"to_account_id"`
	Amount          float64 `json:"amount"`
	Narration       *string `json:"narration"`
	TransactionDate string  `json:"transaction_date"`
}

// HandleTransfer posts both legs of an account-to-account transfer and
// returns them as a two-element array, debit leg first.
func (h *TransferHandler) HandleTransfer(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.TransactionDate == "" {
		http.Error(w, "transaction_date is required", http.StatusBadRequest)
		return
	}
	txDate, err := parseDate(req.TransactionDate)
	if err != nil {
		http.Error(w, "Invalid transaction_date format (use YYYY-MM-DD or RFC 3339)", http.StatusBadRequest)
		return
	}

	legs, err := h.entries.Transfer(r.Context(), userID, ledger.TransferParams{
		FromAccountID:   req.FromAccountID,
		ToAccountID:     req.ToAccountID,
		Amount:          req.Amount,
		Narration:       req.Narration,
		TransactionDate: txDate,
	})
	if err != nil {
		writeLedgerError(w, h.log, err, "failed to transfer")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(legs)
}
