package services_test

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/SscSPs/pos_backoffice/internal/apperrors"
	"github.com/SscSPs/pos_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/pos_backoffice/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// ledgerState is one consistent copy of the capital and expense tables.
type ledgerState struct {
	capitals map[string]domain.Capital
	expenses map[string]domain.Expense
}

func (s ledgerState) clone() ledgerState {
	c := ledgerState{
		capitals: make(map[string]domain.Capital, len(s.capitals)),
		expenses: make(map[string]domain.Expense, len(s.expenses)),
	}
	for k, v := range s.capitals {
		c.capitals[k] = v
	}
	for k, v := range s.expenses {
		v.Currencies = append([]domain.ExpenseCurrency(nil), v.Currencies...)
		c.expenses[k] = v
	}
	return c
}

// storeTx marks a transaction opened by ledgerStore.
type storeTx struct {
	pgx.Tx
	id int
}

// ledgerStore is an in-memory capital and expense store. Transactions run one at a time on a
// private copy of the state, which replaces the committed state on commit and is dropped on
// rollback. Reads outside a transaction only ever see committed state.
type ledgerStore struct {
	txMu      sync.Mutex
	working   *ledgerState
	currentTx int
	txCount   int

	dataMu    sync.RWMutex
	committed ledgerState

	// failOn makes the named method fail with the given error inside a transaction.
	failOn map[string]error
}

var (
	_ portsrepo.CapitalRepositoryWithTx = (*ledgerStore)(nil)
	_ portsrepo.ExpenseRepositoryWithTx = (*ledgerStore)(nil)
)

func newLedgerStore(capitals ...domain.Capital) *ledgerStore {
	s := &ledgerStore{
		committed: ledgerState{
			capitals: map[string]domain.Capital{},
			expenses: map[string]domain.Expense{},
		},
		failOn: map[string]error{},
	}
	for _, c := range capitals {
		s.committed.capitals[c.CurrencyCode] = c
	}
	return s
}

func (s *ledgerStore) Begin(ctx context.Context) (pgx.Tx, error) {
	s.txMu.Lock()
	s.dataMu.RLock()
	w := s.committed.clone()
	s.dataMu.RUnlock()
	s.working = &w
	s.txCount++
	s.currentTx = s.txCount
	return storeTx{id: s.currentTx}, nil
}

func (s *ledgerStore) Commit(ctx context.Context, tx pgx.Tx) error {
	if err := s.checkTx(tx); err != nil {
		return err
	}
	s.dataMu.Lock()
	s.committed = *s.working
	s.dataMu.Unlock()
	s.working = nil
	s.txMu.Unlock()
	return nil
}

func (s *ledgerStore) Rollback(ctx context.Context, tx pgx.Tx) error {
	if err := s.checkTx(tx); err != nil {
		return err
	}
	s.working = nil
	s.txMu.Unlock()
	return nil
}

func (s *ledgerStore) checkTx(tx pgx.Tx) error {
	st, ok := tx.(storeTx)
	if !ok || s.working == nil || st.id != s.currentTx {
		return errors.New("transaction is not open")
	}
	return nil
}

// inTx validates tx and returns the injected failure for method, if any.
func (s *ledgerStore) inTx(tx pgx.Tx, method string) error {
	if err := s.checkTx(tx); err != nil {
		return err
	}
	return s.failOn[method]
}

func (s *ledgerStore) snapshot() ledgerState {
	s.dataMu.RLock()
	defer s.dataMu.RUnlock()
	return s.committed.clone()
}

// --- capital ---

func (s *ledgerStore) FindCapitalByCurrency(ctx context.Context, currencyCode string) (*domain.Capital, error) {
	s.dataMu.RLock()
	defer s.dataMu.RUnlock()
	c, ok := s.committed.capitals[currencyCode]
	if !ok {
		return nil, apperrors.NewNotFoundError("capital for currency " + currencyCode)
	}
	return &c, nil
}

func (s *ledgerStore) ListCapitals(ctx context.Context) ([]domain.Capital, error) {
	s.dataMu.RLock()
	defer s.dataMu.RUnlock()
	capitals := make([]domain.Capital, 0, len(s.committed.capitals))
	for _, c := range s.committed.capitals {
		capitals = append(capitals, c)
	}
	sort.Slice(capitals, func(i, j int) bool { return capitals[i].CurrencyCode < capitals[j].CurrencyCode })
	return capitals, nil
}

func (s *ledgerStore) SumPostedAmounts(ctx context.Context, currencyCode string) (decimal.Decimal, error) {
	s.dataMu.RLock()
	defer s.dataMu.RUnlock()
	total := decimal.Zero
	for _, e := range s.committed.expenses {
		total = total.Add(domain.TotalsByCurrency(e.Currencies)[currencyCode])
	}
	return total, nil
}

func (s *ledgerStore) SaveCapital(ctx context.Context, capital domain.Capital) error {
	s.dataMu.Lock()
	defer s.dataMu.Unlock()
	if _, exists := s.committed.capitals[capital.CurrencyCode]; exists {
		return apperrors.ErrDuplicate
	}
	s.committed.capitals[capital.CurrencyCode] = capital
	return nil
}

func (s *ledgerStore) DeleteCapital(ctx context.Context, currencyCode string) error {
	s.dataMu.Lock()
	defer s.dataMu.Unlock()
	if _, exists := s.committed.capitals[currencyCode]; !exists {
		return apperrors.NewNotFoundError("capital for currency " + currencyCode)
	}
	delete(s.committed.capitals, currencyCode)
	return nil
}

func (s *ledgerStore) FindCapitalByCurrencyForUpdate(ctx context.Context, tx pgx.Tx, currencyCode string) (*domain.Capital, error) {
	if err := s.inTx(tx, "FindCapitalByCurrencyForUpdate"); err != nil {
		return nil, err
	}
	c, ok := s.working.capitals[currencyCode]
	if !ok {
		return nil, apperrors.NewNotFoundError("capital for currency " + currencyCode)
	}
	return &c, nil
}

func (s *ledgerStore) UpdateCapitalInTx(ctx context.Context, tx pgx.Tx, capital domain.Capital) error {
	if err := s.inTx(tx, "UpdateCapitalInTx"); err != nil {
		return err
	}
	if _, ok := s.working.capitals[capital.CurrencyCode]; !ok {
		return apperrors.NewNotFoundError("capital for currency " + capital.CurrencyCode)
	}
	if capital.RemainingAmount.IsNegative() {
		return apperrors.ErrValidation
	}
	s.working.capitals[capital.CurrencyCode] = capital
	return nil
}

// --- expense ---

func (s *ledgerStore) FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	s.dataMu.RLock()
	defer s.dataMu.RUnlock()
	e, ok := s.committed.expenses[expenseID]
	if !ok {
		return nil, apperrors.NewNotFoundError("expense " + expenseID)
	}
	return &e, nil
}

func (s *ledgerStore) ListExpenses(ctx context.Context, limit int, offset int) ([]domain.Expense, error) {
	s.dataMu.RLock()
	defer s.dataMu.RUnlock()
	all := make([]domain.Expense, 0, len(s.committed.expenses))
	for _, e := range s.committed.expenses {
		all = append(all, e)
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].Date.Equal(all[j].Date) {
			return all[i].Date.After(all[j].Date)
		}
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	if offset >= len(all) {
		return []domain.Expense{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (s *ledgerStore) FindExpenseByIDForUpdate(ctx context.Context, tx pgx.Tx, expenseID string) (*domain.Expense, error) {
	if err := s.inTx(tx, "FindExpenseByIDForUpdate"); err != nil {
		return nil, err
	}
	e, ok := s.working.expenses[expenseID]
	if !ok {
		return nil, apperrors.NewNotFoundError("expense " + expenseID)
	}
	e.Currencies = append([]domain.ExpenseCurrency(nil), e.Currencies...)
	return &e, nil
}

func (s *ledgerStore) SaveExpenseInTx(ctx context.Context, tx pgx.Tx, expense domain.Expense) error {
	if err := s.inTx(tx, "SaveExpenseInTx"); err != nil {
		return err
	}
	expense.Currencies = nil
	s.working.expenses[expense.ExpenseID] = expense
	return nil
}

func (s *ledgerStore) UpdateExpenseInTx(ctx context.Context, tx pgx.Tx, expense domain.Expense) error {
	if err := s.inTx(tx, "UpdateExpenseInTx"); err != nil {
		return err
	}
	existing, ok := s.working.expenses[expense.ExpenseID]
	if !ok {
		return apperrors.NewNotFoundError("expense " + expense.ExpenseID)
	}
	expense.Currencies = existing.Currencies
	s.working.expenses[expense.ExpenseID] = expense
	return nil
}

func (s *ledgerStore) SaveExpenseCurrenciesInTx(ctx context.Context, tx pgx.Tx, lines []domain.ExpenseCurrency) error {
	if err := s.inTx(tx, "SaveExpenseCurrenciesInTx"); err != nil {
		return err
	}
	for _, l := range lines {
		e, ok := s.working.expenses[l.ExpenseID]
		if !ok {
			return apperrors.ErrValidation
		}
		e.Currencies = append(e.Currencies, l)
		s.working.expenses[l.ExpenseID] = e
	}
	return nil
}

func (s *ledgerStore) DeleteExpenseCurrenciesInTx(ctx context.Context, tx pgx.Tx, expenseID string) error {
	if err := s.inTx(tx, "DeleteExpenseCurrenciesInTx"); err != nil {
		return err
	}
	if e, ok := s.working.expenses[expenseID]; ok {
		e.Currencies = nil
		s.working.expenses[expenseID] = e
	}
	return nil
}

func (s *ledgerStore) DeleteExpenseInTx(ctx context.Context, tx pgx.Tx, expenseID string) error {
	if err := s.inTx(tx, "DeleteExpenseInTx"); err != nil {
		return err
	}
	if _, ok := s.working.expenses[expenseID]; !ok {
		return apperrors.NewNotFoundError("expense " + expenseID)
	}
	delete(s.working.expenses, expenseID)
	return nil
}
