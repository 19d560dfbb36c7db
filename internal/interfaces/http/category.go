package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"elephantbook/internal/domain/category"
	"elephantbook/internal/shared/middleware"

	"github.com/sirupsen/logrus"
)

// CategoryHandler serves the /categories endpoints.
type CategoryHandler struct {
	categories *category.Service
	log        *logrus.Logger
}

func NewCategoryHandler(categories *category.Service, log *logrus.Logger) *CategoryHandler {
	return &CategoryHandler{categories: categories, log: log}
}

type CreateCategoryRequest struct {
	CategoryType string `json:"category_type"`
	Name         string `json:"name"`
}

type UpdateCategoryRequest struct {
	CategoryType *string `json:"category_type"`
	Name         *string `json:"name"`
}

func (h *CategoryHandler) HandleCategories(w http.ResponseWriter, r *http.Request) {
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

func (h *CategoryHandler) HandleCategoryByID(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	categoryID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid category ID", http.StatusBadRequest)
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.handleGet(w, r, userID, categoryID)
	case http.MethodPut:
		h.handleUpdate(w, r, userID, categoryID)
	case http.MethodDelete:
		h.handleDelete(w, r, userID, categoryID)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *CategoryHandler) handleList(w http.ResponseWriter, r *http.Request, userID int64) {
	categories, err := h.categories.ListCategoriesByUserID(r.Context(), userID)
	if err != nil {
		h.log.WithError(err).Error("failed to list categories")
		http.Error(w, "Failed to list categories", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(categories)
}

func (h *CategoryHandler) handleCreate(w http.ResponseWriter, r *http.Request, userID int64) {
	var req CreateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	params := category.CreateParams{
		UserID:       userID,
		CategoryType: req.CategoryType,
		Name:         req.Name,
	}
	if err := params.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	cat, err := h.categories.CreateCategory(r.Context(), params)
	if err != nil {
		h.writeCategoryError(w, err, "failed to create category")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(cat)
}

func (h *CategoryHandler) handleGet(w http.ResponseWriter, r *http.Request, userID, categoryID int64) {
	cat, err := h.categories.GetCategory(r.Context(), categoryID, userID)
	if err != nil {
		h.writeCategoryError(w, err, "failed to get category")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(cat)
}

func (h *CategoryHandler) handleUpdate(w http.ResponseWriter, r *http.Request, userID, categoryID int64) {
	var req UpdateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	params := category.UpdateParams{
		CategoryType: req.CategoryType,
		Name:         req.Name,
	}
	if err := params.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	cat, err := h.categories.UpdateCategory(r.Context(), categoryID, userID, params)
	if err != nil {
		h.writeCategoryError(w, err, "failed to update category")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(cat)
}

func (h *CategoryHandler) handleDelete(w http.ResponseWriter, r *http.Request, userID, categoryID int64) {
	if err := h.categories.DeleteCategory(r.Context(), categoryID, userID); err != nil {
		h.writeCategoryError(w, err, "failed to delete category")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *CategoryHandler) writeCategoryError(w http.ResponseWriter, err error, logMsg string) {
	switch {
	case errors.Is(err, category.ErrCategoryNotFound):
		http.Error(w, "Category not found", http.StatusNotFound)
	case errors.Is(err, category.ErrForbidden):
		http.Error(w, "Forbidden", http.StatusForbidden)
	case errors.Is(err, category.ErrCategoryInUse):
		http.Error(w, "Category is referenced by ledger entries", http.StatusConflict)
	case errors.Is(err, category.ErrInvalidType):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		h.log.WithError(err).Error(logMsg)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
