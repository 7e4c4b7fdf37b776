package handler

import (
	"errors"
	"net/http"

	"budget-app-go/internal/domain/ledger"
	"budget-app-go/internal/transport/httpserver/middleware"
	"github.com/go-chi/chi/v5"
)

type createCategoryRequest struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type categoryResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

func toCategoryResponse(category *ledger.Category) categoryResponse {
	return categoryResponse{
		ID:   category.ID,
		Name: category.Name,
		Type: string(category.Type),
	}
}

func (h *Handlers) CreateCategory(w http.ResponseWriter, r *http.Request) {
	account, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeInternalError(w)
		return
	}

	var req createCategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		h.validationError(w, err)
		return
	}

	category, err := h.ledger.CreateCategory(r.Context(), ledger.CreateCategoryInput{
		UserID: account.ID,
		Name:   req.Name,
		Type:   ledger.EntryType(req.Type),
	})
	if err != nil {
		switch {
		case errors.Is(err, ledger.ErrCategoryNameTaken):
			writeError(w, http.StatusBadRequest, "Category with this name already exists")
		case errors.Is(err, ledger.ErrInvalidInput):
			h.validationError(w, err)
		default:
			h.log.InternalError("create category", err)
			writeInternalError(w)
		}
		return
	}

	writeJSON(w, http.StatusCreated, toCategoryResponse(category))
}

func (h *Handlers) ListCategories(w http.ResponseWriter, r *http.Request) {
	account, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeInternalError(w)
		return
	}

	categories, err := h.ledger.ListCategories(r.Context(), account.ID)
	if err != nil {
		h.log.InternalError("list categories", err)
		writeInternalError(w)
		return
	}

	items := make([]categoryResponse, 0, len(categories))
	for i := range categories {
		items = append(items, toCategoryResponse(&categories[i]))
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *Handlers) GetCategory(w http.ResponseWriter, r *http.Request) {
	account, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeInternalError(w)
		return
	}

	categoryID, err := parseIDParam(chi.URLParam(r, "id"))
	if err != nil {
		h.validationError(w, err)
		return
	}

	category, err := h.ledger.GetCategory(r.Context(), account.ID, categoryID)
	if err != nil {
		if errors.Is(err, ledger.ErrCategoryNotFound) {
			writeError(w, http.StatusNotFound, "Category not found")
			return
		}
		h.log.InternalError("get category", err)
		writeInternalError(w)
		return
	}

	writeJSON(w, http.StatusOK, toCategoryResponse(category))
}

func (h *Handlers) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	account, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeInternalError(w)
		return
	}

	categoryID, err := parseIDParam(chi.URLParam(r, "id"))
	if err != nil {
		h.validationError(w, err)
		return
	}

	if err := h.ledger.DeleteCategory(r.Context(), account.ID, categoryID); err != nil {
		switch {
		case errors.Is(err, ledger.ErrCategoryNotFound):
			writeError(w, http.StatusNotFound, "Category not found")
		case errors.Is(err, ledger.ErrCategoryInUse):
			writeError(w, http.StatusBadRequest, "Category is referenced by transactions")
		default:
			h.log.InternalError("delete category", err)
			writeInternalError(w)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
