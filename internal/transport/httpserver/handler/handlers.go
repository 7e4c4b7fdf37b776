package handler

import (
	"net/http"

	"budget-app-go/internal/domain/budgets"
	"budget-app-go/internal/domain/ledger"
	"budget-app-go/internal/domain/reports"
	"budget-app-go/internal/domain/user"
	"budget-app-go/internal/token"
	"budget-app-go/pkg/logger"
)

type Handlers struct {
	users   *user.Service
	ledger  *ledger.Service
	budgets *budgets.Service
	reports *reports.Service
	tokens  *token.Manager
	log     logger.Logger
}

func New(
	users *user.Service,
	ledgerSvc *ledger.Service,
	budgetsSvc *budgets.Service,
	reportsSvc *reports.Service,
	tokens *token.Manager,
	log logger.Logger,
) *Handlers {
	return &Handlers{
		users:   users,
		ledger:  ledgerSvc,
		budgets: budgetsSvc,
		reports: reportsSvc,
		tokens:  tokens,
		log:     log,
	}
}

func (h *Handlers) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// validationError records the field-level detail server-side; the client
// only ever sees the opaque 422 envelope.
func (h *Handlers) validationError(w http.ResponseWriter, err error) {
	h.log.BusinessError("request validation failed", err)
	writeValidationError(w)
}
