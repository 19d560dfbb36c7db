package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"elephantbook/internal/domain/account"
	"elephantbook/internal/shared/middleware"

	"github.com/sirupsen/logrus"
)

// AccountHandler serves the /accounts endpoints.
type AccountHandler struct {
	accounts *account.Service
	log      *logrus.Logger
}

func NewAccountHandler(accounts *account.Service, log *logrus.Logger) *AccountHandler {
	return &AccountHandler{accounts: accounts, log: log}
}

type CreateAccountRequest struct {
	AccountName string `json:"account_name"`
	AccountType string `json:"account_type"`
}

type UpdateAccountRequest struct {
	AccountName *string `json:"account_name"`
	AccountType *string `json:"account_type"`
}

// HandleAccounts handles the collection endpoint (GET list, POST create).
func (h *AccountHandler) HandleAccounts(w http.ResponseWriter, r *http.Request) {
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

// HandleAccountByID handles the item endpoint (GET, PUT, DELETE).
func (h *AccountHandler) HandleAccountByID(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	accountID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid account ID", http.StatusBadRequest)
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.handleGet(w, r, userID, accountID)
	case http.MethodPut:
		h.handleUpdate(w, r, userID, accountID)
	case http.MethodDelete:
		h.handleDelete(w, r, userID, accountID)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *AccountHandler) handleList(w http.ResponseWriter, r *http.Request, userID int64) {
	accounts, err := h.accounts.ListAccountsByUserID(r.Context(), userID)
	if err != nil {
		h.log.WithError(err).Error("failed to list accounts")
		http.Error(w, "Failed to list accounts", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(accounts)
}

func (h *AccountHandler) handleCreate(w http.ResponseWriter, r *http.Request, userID int64) {
	var req CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	params := account.CreateParams{
		UserID:      userID,
		AccountName: req.AccountName,
		AccountType: req.AccountType,
	}
	if err := params.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	acc, err := h.accounts.CreateAccount(r.Context(), params)
	if err != nil {
		h.writeAccountError(w, err, "failed to create account")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(acc)
}

func (h *AccountHandler) handleGet(w http.ResponseWriter, r *http.Request, userID, accountID int64) {
	acc, err := h.accounts.GetAccount(r.Context(), accountID, userID)
	if err != nil {
		h.writeAccountError(w, err, "failed to get account")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(acc)
}

func (h *AccountHandler) handleUpdate(w http.ResponseWriter, r *http.Request, userID, accountID int64) {
	var req UpdateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	params := account.UpdateParams{
		AccountName: req.AccountName,
		AccountType: req.AccountType,
	}
	if err := params.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	acc, err := h.accounts.UpdateAccount(r.Context(), accountID, userID, params)
	if err != nil {
		h.writeAccountError(w, err, "failed to update account")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(acc)
}

func (h *AccountHandler) handleDelete(w http.ResponseWriter, r *http.Request, userID, accountID int64) {
	if err := h.accounts.DeleteAccount(r.Context(), accountID, userID); err != nil {
		h.writeAccountError(w, err, "failed to delete account")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *AccountHandler) writeAccountError(w http.ResponseWriter, err error, logMsg string) {
	switch {
	case errors.Is(err, account.ErrAccountNotFound):
		http.Error(w, "Account not found", http.StatusNotFound)
	case errors.Is(err, account.ErrForbidden):
		http.Error(w, "Forbidden", http.StatusForbidden)
	case errors.Is(err, account.ErrAccountHasEntries):
		http.Error(w, "Account has ledger entries", http.StatusConflict)
	default:
		h.log.WithError(err).Error(logMsg)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
