package handler

import (
	"errors"
	"net/http"

	"budget-app-go/internal/domain/ledger"
	"budget-app-go/internal/transport/httpserver/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

type createTransactionRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Description *string         `json:"description"`
	Date        string          `json:"date"`
	Type        string          `json:"type"`
	CategoryID  *uint           `json:"category_id"`
	BudgetID    *uint           `json:"budget_id"`
}

type updateTransactionRequest struct {
	Amount      *decimal.Decimal `json:"amount"`
	Description optionalString   `json:"description"`
	Date        *string          `json:"date"`
	Type        *string          `json:"type"`
	CategoryID  optionalRef      `json:"category_id"`
	BudgetID    optionalRef      `json:"budget_id"`
}

type transactionResponse struct {
	ID          uint            `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Description *string         `json:"description"`
	Date        string          `json:"date"`
	Type        string          `json:"type"`
	CategoryID  *uint           `json:"category_id"`
	BudgetID    *uint           `json:"budget_id"`
}

type transactionListResponse struct {
	Items  []transactionResponse `json:"items"`
	Total  int64                 `json:"total"`
	Limit  int                   `json:"limit"`
	Offset int                   `json:"offset"`
}

func toTransactionResponse(transaction *ledger.Transaction) transactionResponse {
	return transactionResponse{
		ID:          transaction.ID,
		Amount:      transaction.Amount,
		Description: transaction.Description,
		Date:        transaction.Date.Format(dateLayout),
		Type:        string(transaction.Type),
		CategoryID:  transaction.CategoryID,
		BudgetID:    transaction.BudgetID,
	}
}

func (h *Handlers) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	account, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeInternalError(w)
		return
	}

	var req createTransactionRequest
	if err := decodeJSON(r, &req); err != nil {
		h.validationError(w, err)
		return
	}

	date, err := parseDateRequired(req.Date)
	if err != nil {
		h.validationError(w, err)
		return
	}

	transaction, err := h.ledger.CreateTransaction(r.Context(), ledger.CreateTransactionInput{
		UserID:      account.ID,
		Amount:      req.Amount,
		Description: req.Description,
		Date:        date,
		Type:        ledger.EntryType(req.Type),
		CategoryID:  req.CategoryID,
		BudgetID:    req.BudgetID,
	})
	if err != nil {
		h.writeTransactionError(w, err, "create transaction")
		return
	}

	writeJSON(w, http.StatusCreated, toTransactionResponse(transaction))
}

func (h *Handlers) ListTransactions(w http.ResponseWriter, r *http.Request) {
	account, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeInternalError(w)
		return
	}

	filter, err := transactionFilterFromQuery(r)
	if err != nil {
		h.validationError(w, err)
		return
	}

	transactions, total, applied, err := h.ledger.ListTransactions(r.Context(), account.ID, filter)
	if err != nil {
		h.log.InternalError("list transactions", err)
		writeInternalError(w)
		return
	}

	items := make([]transactionResponse, 0, len(transactions))
	for i := range transactions {
		items = append(items, toTransactionResponse(&transactions[i]))
	}
	writeJSON(w, http.StatusOK, transactionListResponse{
		Items:  items,
		Total:  total,
		Limit:  applied.Limit,
		Offset: applied.Offset,
	})
}

func (h *Handlers) GetTransaction(w http.ResponseWriter, r *http.Request) {
	account, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeInternalError(w)
		return
	}

	transactionID, err := parseIDParam(chi.URLParam(r, "id"))
	if err != nil {
		h.validationError(w, err)
		return
	}

	transaction, err := h.ledger.GetTransaction(r.Context(), account.ID, transactionID)
	if err != nil {
		h.writeTransactionError(w, err, "get transaction")
		return
	}

	writeJSON(w, http.StatusOK, toTransactionResponse(transaction))
}

func (h *Handlers) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	account, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeInternalError(w)
		return
	}

	transactionID, err := parseIDParam(chi.URLParam(r, "id"))
	if err != nil {
		h.validationError(w, err)
		return
	}

	var req updateTransactionRequest
	if err := decodeJSON(r, &req); err != nil {
		h.validationError(w, err)
		return
	}

	input := ledger.UpdateTransactionInput{
		UserID:      account.ID,
		ID:          transactionID,
		Amount:      req.Amount,
		Description: ledger.OptionalString{Set: req.Description.Set, Value: req.Description.Value},
		CategoryID:  ledger.OptionalRef{Set: req.CategoryID.Set, Value: req.CategoryID.Value},
		BudgetID:    ledger.OptionalRef{Set: req.BudgetID.Set, Value: req.BudgetID.Value},
	}
	if req.Date != nil {
		date, err := parseDateRequired(*req.Date)
		if err != nil {
			h.validationError(w, err)
			return
		}
		input.Date = &date
	}
	if req.Type != nil {
		entryType := ledger.EntryType(*req.Type)
		input.Type = &entryType
	}

	transaction, err := h.ledger.UpdateTransaction(r.Context(), input)
	if err != nil {
		h.writeTransactionError(w, err, "update transaction")
		return
	}

	writeJSON(w, http.StatusOK, toTransactionResponse(transaction))
}

func (h *Handlers) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	account, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeInternalError(w)
		return
	}

	transactionID, err := parseIDParam(chi.URLParam(r, "id"))
	if err != nil {
		h.validationError(w, err)
		return
	}

	if err := h.ledger.DeleteTransaction(r.Context(), account.ID, transactionID); err != nil {
		h.writeTransactionError(w, err, "delete transaction")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) writeTransactionError(w http.ResponseWriter, err error, operation string) {
	switch {
	case errors.Is(err, ledger.ErrTransactionNotFound):
		writeError(w, http.StatusNotFound, "Transaction not found")
	case errors.Is(err, ledger.ErrInvalidReference):
		writeError(w, http.StatusBadRequest, "Referenced category or budget does not exist")
	case errors.Is(err, ledger.ErrInvalidInput):
		h.validationError(w, err)
	default:
		h.log.InternalError(operation, err)
		writeInternalError(w)
	}
}

func transactionFilterFromQuery(r *http.Request) (ledger.ListFilter, error) {
	query := r.URL.Query()
	var filter ledger.ListFilter
	var err error

	if filter.From, err = parseDateParam(query.Get("start_date")); err != nil {
		return filter, err
	}
	if filter.To, err = parseDateParam(query.Get("end_date")); err != nil {
		return filter, err
	}
	if filter.CategoryID, err = parseUintParam(query.Get("category_id")); err != nil {
		return filter, err
	}
	if filter.Type, err = parseTypeParam(query.Get("type")); err != nil {
		return filter, err
	}
	if filter.AmountMin, err = parseDecimalParam(query.Get("min_amount")); err != nil {
		return filter, err
	}
	if filter.AmountMax, err = parseDecimalParam(query.Get("max_amount")); err != nil {
		return filter, err
	}
	if filter.Limit, err = parseIntParam(query.Get("limit"), 0); err != nil {
		return filter, err
	}
	if filter.Offset, err = parseIntParam(query.Get("offset"), 0); err != nil {
		return filter, err
	}
	return filter, nil
}
