package handler

import (
	"errors"
	"net/http"

	"budget-app-go/internal/domain/budgets"
	"budget-app-go/internal/transport/httpserver/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

type createBudgetRequest struct {
	Name      string          `json:"name"`
	Limit     decimal.Decimal `json:"limit"`
	StartDate string          `json:"start_date"`
	EndDate   string          `json:"end_date"`
}

type updateBudgetRequest struct {
	Name      *string          `json:"name"`
	Limit     *decimal.Decimal `json:"limit"`
	StartDate *string          `json:"start_date"`
	EndDate   *string          `json:"end_date"`
}

type budgetResponse struct {
	ID        uint            `json:"id"`
	Name      string          `json:"name"`
	Limit     decimal.Decimal `json:"limit"`
	StartDate string          `json:"start_date"`
	EndDate   string          `json:"end_date"`
}

type budgetListResponse struct {
	Items  []budgetResponse `json:"items"`
	Total  int64            `json:"total"`
	Limit  int              `json:"limit"`
	Offset int              `json:"offset"`
}

type budgetStatusResponse struct {
	Budget       budgetResponse  `json:"budget"`
	TotalExpense decimal.Decimal `json:"total_expense"`
	Remaining    decimal.Decimal `json:"remaining"`
	Exceeded     bool            `json:"exceeded"`
}

func toBudgetResponse(budget *budgets.Budget) budgetResponse {
	return budgetResponse{
		ID:        budget.ID,
		Name:      budget.Name,
		Limit:     budget.Limit,
		StartDate: budget.StartDate.Format(dateLayout),
		EndDate:   budget.EndDate.Format(dateLayout),
	}
}

func (h *Handlers) CreateBudget(w http.ResponseWriter, r *http.Request) {
	account, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeInternalError(w)
		return
	}

	var req createBudgetRequest
	if err := decodeJSON(r, &req); err != nil {
		h.validationError(w, err)
		return
	}

	startDate, err := parseDateRequired(req.StartDate)
	if err != nil {
		h.validationError(w, err)
		return
	}
	endDate, err := parseDateRequired(req.EndDate)
	if err != nil {
		h.validationError(w, err)
		return
	}

	budget, err := h.budgets.Create(r.Context(), budgets.CreateBudgetInput{
		UserID:    account.ID,
		Name:      req.Name,
		Limit:     req.Limit,
		StartDate: startDate,
		EndDate:   endDate,
	})
	if err != nil {
		h.writeBudgetError(w, err, "create budget")
		return
	}

	writeJSON(w, http.StatusCreated, toBudgetResponse(budget))
}

func (h *Handlers) ListBudgets(w http.ResponseWriter, r *http.Request) {
	account, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeInternalError(w)
		return
	}

	query := r.URL.Query()
	var filter budgets.ListFilter
	var err error
	if filter.Limit, err = parseIntParam(query.Get("limit"), 0); err != nil {
		h.validationError(w, err)
		return
	}
	if filter.Offset, err = parseIntParam(query.Get("offset"), 0); err != nil {
		h.validationError(w, err)
		return
	}

	items, total, applied, err := h.budgets.List(r.Context(), account.ID, filter)
	if err != nil {
		h.log.InternalError("list budgets", err)
		writeInternalError(w)
		return
	}

	responses := make([]budgetResponse, 0, len(items))
	for i := range items {
		responses = append(responses, toBudgetResponse(&items[i]))
	}
	writeJSON(w, http.StatusOK, budgetListResponse{
		Items:  responses,
		Total:  total,
		Limit:  applied.Limit,
		Offset: applied.Offset,
	})
}

func (h *Handlers) GetBudget(w http.ResponseWriter, r *http.Request) {
	account, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeInternalError(w)
		return
	}

	budgetID, err := parseIDParam(chi.URLParam(r, "id"))
	if err != nil {
		h.validationError(w, err)
		return
	}

	budget, err := h.budgets.Get(r.Context(), account.ID, budgetID)
	if err != nil {
		h.writeBudgetError(w, err, "get budget")
		return
	}

	writeJSON(w, http.StatusOK, toBudgetResponse(budget))
}

func (h *Handlers) UpdateBudget(w http.ResponseWriter, r *http.Request) {
	account, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeInternalError(w)
		return
	}

	budgetID, err := parseIDParam(chi.URLParam(r, "id"))
	if err != nil {
		h.validationError(w, err)
		return
	}

	var req updateBudgetRequest
	if err := decodeJSON(r, &req); err != nil {
		h.validationError(w, err)
		return
	}

	input := budgets.UpdateBudgetInput{
		UserID: account.ID,
		ID:     budgetID,
		Name:   req.Name,
		Limit:  req.Limit,
	}
	if req.StartDate != nil {
		startDate, err := parseDateRequired(*req.StartDate)
		if err != nil {
			h.validationError(w, err)
			return
		}
		input.StartDate = &startDate
	}
	if req.EndDate != nil {
		endDate, err := parseDateRequired(*req.EndDate)
		if err != nil {
			h.validationError(w, err)
			return
		}
		input.EndDate = &endDate
	}

	budget, err := h.budgets.Update(r.Context(), input)
	if err != nil {
		h.writeBudgetError(w, err, "update budget")
		return
	}

	writeJSON(w, http.StatusOK, toBudgetResponse(budget))
}

func (h *Handlers) DeleteBudget(w http.ResponseWriter, r *http.Request) {
	account, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeInternalError(w)
		return
	}

	budgetID, err := parseIDParam(chi.URLParam(r, "id"))
	if err != nil {
		h.validationError(w, err)
		return
	}

	if err := h.budgets.Delete(r.Context(), account.ID, budgetID); err != nil {
		h.writeBudgetError(w, err, "delete budget")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) BudgetStatus(w http.ResponseWriter, r *http.Request) {
	account, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeInternalError(w)
		return
	}

	budgetID, err := parseIDParam(chi.URLParam(r, "id"))
	if err != nil {
		h.validationError(w, err)
		return
	}

	status, err := h.budgets.Status(r.Context(), account.ID, budgetID)
	if err != nil {
		h.writeBudgetError(w, err, "budget status")
		return
	}

	writeJSON(w, http.StatusOK, budgetStatusResponse{
		Budget:       toBudgetResponse(&status.Budget),
		TotalExpense: status.TotalExpense,
		Remaining:    status.Remaining,
		Exceeded:     status.Exceeded,
	})
}

func (h *Handlers) writeBudgetError(w http.ResponseWriter, err error, operation string) {
	switch {
	case errors.Is(err, budgets.ErrBudgetNotFound):
		writeError(w, http.StatusNotFound, "Budget not found")
	case errors.Is(err, budgets.ErrInvalidInput):
		h.validationError(w, err)
	default:
		h.log.InternalError(operation, err)
		writeInternalError(w)
	}
}
