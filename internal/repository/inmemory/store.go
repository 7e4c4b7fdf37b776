// Package inmemory backs the domain repositories with plain maps. It is
// used by handler and service tests that exercise the full pipeline
// without postgres.
package inmemory

import (
	"sync"

	budgetsdomain "budget-app-go/internal/domain/budgets"
	ledgerdomain "budget-app-go/internal/domain/ledger"
	reportsdomain "budget-app-go/internal/domain/reports"
	userdomain "budget-app-go/internal/domain/user"
)

type Store struct {
	mu           sync.Mutex
	users        map[uint]*userdomain.User
	categories   map[uint]*ledgerdomain.Category
	transactions map[uint]*ledgerdomain.Transaction
	budgets      map[uint]*budgetsdomain.Budget
	nextID       uint
}

func NewStore() *Store {
	return &Store{
		users:        make(map[uint]*userdomain.User),
		categories:   make(map[uint]*ledgerdomain.Category),
		transactions: make(map[uint]*ledgerdomain.Transaction),
		budgets:      make(map[uint]*budgetsdomain.Budget),
	}
}

func (s *Store) sequence() uint {
	s.nextID++
	return s.nextID
}

func (s *Store) Users() userdomain.Repository      { return &userRepo{store: s} }
func (s *Store) Ledger() ledgerdomain.Repository   { return &ledgerRepo{store: s} }
func (s *Store) Budgets() budgetsdomain.Repository { return &budgetsRepo{store: s} }
func (s *Store) Reports() reportsdomain.Repository { return &reportsRepo{store: s} }
