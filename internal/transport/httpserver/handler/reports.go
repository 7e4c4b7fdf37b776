package handler

import (
	"encoding/csv"
	"net/http"
	"strconv"

	"budget-app-go/internal/domain/reports"
	"budget-app-go/internal/transport/httpserver/middleware"
	"github.com/shopspring/decimal"
)

var exportHeader = []string{"id", "date", "amount", "type", "description", "category_id", "budget_id"}

type categoryGroupResponse struct {
	CategoryID   *uint           `json:"category_id"`
	CategoryName *string         `json:"category_name"`
	TotalIncome  decimal.Decimal `json:"total_income"`
	TotalExpense decimal.Decimal `json:"total_expense"`
}

type summaryResponse struct {
	StartDate    *string                 `json:"start_date"`
	EndDate      *string                 `json:"end_date"`
	TotalIncome  decimal.Decimal         `json:"total_income"`
	TotalExpense decimal.Decimal         `json:"total_expense"`
	Net          decimal.Decimal         `json:"net"`
	ByCategory   []categoryGroupResponse `json:"by_category,omitempty"`
}

func (h *Handlers) Summary(w http.ResponseWriter, r *http.Request) {
	account, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeInternalError(w)
		return
	}

	query := r.URL.Query()
	var filter reports.SummaryFilter
	var err error
	if filter.From, err = parseDateParam(query.Get("start_date")); err != nil {
		h.validationError(w, err)
		return
	}
	if filter.To, err = parseDateParam(query.Get("end_date")); err != nil {
		h.validationError(w, err)
		return
	}
	filter.GroupByCategory = query.Get("group_by") == "category"

	summary, err := h.reports.Summary(r.Context(), account.ID, filter)
	if err != nil {
		h.log.InternalError("summary report", err)
		writeInternalError(w)
		return
	}

	response := summaryResponse{
		TotalIncome:  summary.Totals.TotalIncome,
		TotalExpense: summary.Totals.TotalExpense,
		Net:          summary.Totals.Net,
	}
	if summary.From != nil {
		value := summary.From.Format(dateLayout)
		response.StartDate = &value
	}
	if summary.To != nil {
		value := summary.To.Format(dateLayout)
		response.EndDate = &value
	}
	for _, group := range summary.ByCategory {
		response.ByCategory = append(response.ByCategory, categoryGroupResponse{
			CategoryID:   group.CategoryID,
			CategoryName: group.CategoryName,
			TotalIncome:  group.TotalIncome,
			TotalExpense: group.TotalExpense,
		})
	}

	writeJSON(w, http.StatusOK, response)
}

// Export streams the user's transactions as CSV, oldest first.
func (h *Handlers) Export(w http.ResponseWriter, r *http.Request) {
	account, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeInternalError(w)
		return
	}

	query := r.URL.Query()
	var filter reports.ExportFilter
	var err error
	if filter.From, err = parseDateParam(query.Get("start_date")); err != nil {
		h.validationError(w, err)
		return
	}
	if filter.To, err = parseDateParam(query.Get("end_date")); err != nil {
		h.validationError(w, err)
		return
	}
	if filter.CategoryID, err = parseUintParam(query.Get("category_id")); err != nil {
		h.validationError(w, err)
		return
	}
	if filter.Type, err = parseTypeParam(query.Get("type")); err != nil {
		h.validationError(w, err)
		return
	}
	if filter.AmountMin, err = parseDecimalParam(query.Get("min_amount")); err != nil {
		h.validationError(w, err)
		return
	}
	if filter.AmountMax, err = parseDecimalParam(query.Get("max_amount")); err != nil {
		h.validationError(w, err)
		return
	}

	transactions, err := h.reports.Export(r.Context(), account.ID, filter)
	if err != nil {
		h.log.InternalError("export transactions", err)
		writeInternalError(w)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="transactions.csv"`)

	writer := csv.NewWriter(w)
	if err := writer.Write(exportHeader); err != nil {
		h.log.InternalError("write export header", err)
		return
	}
	for i := range transactions {
		transaction := &transactions[i]
		record := []string{
			strconv.FormatUint(uint64(transaction.ID), 10),
			transaction.Date.Format(dateLayout),
			transaction.Amount.String(),
			string(transaction.Type),
			"",
			"",
			"",
		}
		if transaction.Description != nil {
			record[4] = *transaction.Description
		}
		if transaction.CategoryID != nil {
			record[5] = strconv.FormatUint(uint64(*transaction.CategoryID), 10)
		}
		if transaction.BudgetID != nil {
			record[6] = strconv.FormatUint(uint64(*transaction.BudgetID), 10)
		}
		if err := writer.Write(record); err != nil {
			h.log.InternalError("write export row", err)
			return
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		h.log.InternalError("flush export", err)
	}
}
