package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"elephantbook/internal/domain/account"
	"elephantbook/internal/domain/category"
	"elephantbook/internal/domain/ledger"
	"elephantbook/internal/shared/middleware"

	"github.com/sirupsen/logrus"
)

// LedgerHandler serves the /ledger endpoints.
type LedgerHandler struct {
	entries *ledger.Service
	log     *logrus.Logger
}

func NewLedgerHandler(entries *ledger.Service, log *logrus.Logger) *LedgerHandler {
	return &LedgerHandler{entries: entries, log: log}
}

type CreateEntryRequest struct {
	AccountID       int64   `json:"account_id"`
	Amount          float64 `json:"amount"`
	CategoryID      *int64  `json:"category_id"`
	Narration       *string `json:"narration"`
	TransactionDate string  `json:"transaction_date"`
}

type UpdateEntryRequest struct {
	AccountID       *int64   `json:"account_id"`
	Amount          *float64 `json:"amount"`
	CategoryID      *int64   `json:"category_id"`
	Narration       *string  `json:"narration"`
	TransactionDate *string  `json:"transaction_date"`
}

// parseDate accepts either a bare date or a full RFC 3339 timestamp.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

func (h *LedgerHandler) HandleEntries(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.handleList(w, r, userID)
	case http.MethodPost:
		h.handleCreate(w, r, userID)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *LedgerHandler) HandleEntryByID(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	entryID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid entry ID", http.StatusBadRequest)
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.handleGet(w, r, userID, entryID)
	case http.MethodPut:
		h.handleUpdate(w, r, userID, entryID)
	case http.MethodDelete:
		h.handleDelete(w, r, userID, entryID)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *LedgerHandler) handleList(w http.ResponseWriter, r *http.Request, userID int64) {
	filter := ledger.Filter{}
	q := r.URL.Query()

	if v := q.Get("account_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			http.Error(w, "Invalid account_id", http.StatusBadRequest)
			return
		}
		filter.AccountID = &id
	}
	if v := q.Get("category_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			http.Error(w, "Invalid category_id", http.StatusBadRequest)
			return
		}
		filter.CategoryID = &id
	}
	if v := q.Get("start_date"); v != "" {
		t, err := parseDate(v)
		if err != nil {
			http.Error(w, "Invalid start_date", http.StatusBadRequest)
			return
		}
		filter.StartDate = &t
	}
	if v := q.Get("end_date"); v != "" {
		t, err := parseDate(v)
		if err != nil {
			http.Error(w, "Invalid end_date", http.StatusBadRequest)
			return
		}
		filter.EndDate = &t
	}

	entries, err := h.entries.ListEntries(r.Context(), userID, filter)
	if err != nil {
		h.writeLedgerError(w, err, "failed to list ledger entries")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(entries)
}

func (h *LedgerHandler) handleCreate(w http.ResponseWriter, r *http.Request, userID int64) {
	var req CreateEntryRequest
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

	entry, err := h.entries.CreateEntry(r.Context(), userID, ledger.CreateParams{
		AccountID:       req.AccountID,
		Amount:          req.Amount,
		CategoryID:      req.CategoryID,
		Narration:       req.Narration,
		TransactionDate: txDate,
	})
	if err != nil {
		h.writeLedgerError(w, err, "failed to create ledger entry")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(entry)
}

func (h *LedgerHandler) handleGet(w http.ResponseWriter, r *http.Request, userID, entryID int64) {
	entry, err := h.entries.GetEntry(r.Context(), entryID, userID)
	if err != nil {
		h.writeLedgerError(w, err, "failed to get ledger entry")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(entry)
}

func (h *LedgerHandler) handleUpdate(w http.ResponseWriter, r *http.Request, userID, entryID int64) {
	var req UpdateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	params := ledger.UpdateParams{
		AccountID:  req.AccountID,
		Amount:     req.Amount,
		CategoryID: req.CategoryID,
		Narration:  req.Narration,
	}
	if req.TransactionDate != nil {
		t, err := parseDate(*req.TransactionDate)
		if err != nil {
			http.Error(w, "Invalid transaction_date format (use YYYY-MM-DD or RFC 3339)", http.StatusBadRequest)
			return
		}
		params.TransactionDate = &t
	}

	entry, err := h.entries.UpdateEntry(r.Context(), entryID, userID, params)
	if err != nil {
		h.writeLedgerError(w, err, "failed to update ledger entry")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(entry)
}

func (h *LedgerHandler) handleDelete(w http.ResponseWriter, r *http.Request, userID, entryID int64) {
	if err := h.entries.DeleteEntry(r.Context(), entryID, userID); err != nil {
		h.writeLedgerError(w, err, "failed to delete ledger entry")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *LedgerHandler) writeLedgerError(w http.ResponseWriter, err error, logMsg string) {
	writeLedgerError(w, h.log, err, logMsg)
}

// writeLedgerError maps ledger service errors to HTTP status codes.
// Shared with the transfer handler, which surfaces the same error set.
func writeLedgerError(w http.ResponseWriter, log *logrus.Logger, err error, logMsg string) {
	switch {
	case errors.Is(err, ledger.ErrEntryNotFound):
		http.Error(w, "Ledger entry not found", http.StatusNotFound)
	case errors.Is(err, account.ErrAccountNotFound):
		http.Error(w, "Account not found", http.StatusNotFound)
	case errors.Is(err, category.ErrCategoryNotFound):
		http.Error(w, "Category not found", http.StatusNotFound)
	case errors.Is(err, ledger.ErrForbidden),
		errors.Is(err, account.ErrForbidden),
		errors.Is(err, category.ErrForbidden):
		http.Error(w, "Forbidden", http.StatusForbidden)
	case errors.Is(err, ledger.ErrInvalidAmount),
		errors.Is(err, ledger.ErrSelfTransfer),
		errors.Is(err, ledger.ErrNonPositive),
		errors.Is(err, ledger.ErrMissingDate),
		errors.Is(err, ledger.ErrMissingAccount):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		log.WithError(err).Error(logMsg)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
