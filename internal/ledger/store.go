// Package ledger holds the authoritative in-memory registry of account
// balances. A Store instance is constructed explicitly and injected where
// needed; there is no ambient global state. All reads and writes funnel
// through typed operations guarded by a single RWMutex, which renders the
// original single-logical-context requirement safely in Go.
package ledger

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"pennyledger/internal/calc"
	"pennyledger/internal/dto"
	apperrors "pennyledger/internal/errors"
	"pennyledger/internal/models"
	"pennyledger/internal/validation"
)

// BalanceUpdate is one committed balance change, as reported to listeners
// and returned by batch updates.
type BalanceUpdate struct {
	AccountID uuid.UUID
	Balance   decimal.Decimal
}

// Listener observes committed balance changes. Listeners run after the
// store's lock is released and must not assume ordering across accounts.
type Listener func(update BalanceUpdate)

// Store is the balance ledger. Registered accounts are owned exclusively by
// the store: accounts are cloned on the way in and out, so callers can
// never alias live ledger state.
type Store struct {
	mu        sync.RWMutex
	accounts  map[uuid.UUID]*models.AccountBalance
	listeners map[int]Listener
	nextID    int

	convert calc.ConvertFunc
	logger  *slog.Logger
}

// Snapshot is a deep copy of all ledger state, used to roll back a
// multi-account operation that partially validated and then failed.
type Snapshot struct {
	accounts map[uuid.UUID]*models.AccountBalance
}

// NewStore creates an empty ledger. convert may be nil; balance folds then
// fall back to raw amounts for cross-currency transactions.
func NewStore(convert calc.ConvertFunc, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		accounts:  make(map[uuid.UUID]*models.AccountBalance),
		listeners: make(map[int]Listener),
		convert:   convert,
		logger:    logger,
	}
}

// Register adds an account to the ledger. The calculation mode is fixed at
// registration time.
func (s *Store) Register(acct *models.AccountBalance) error {
	if err := acct.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.accounts[acct.ID]; exists {
		return apperrors.New(apperrors.LedgerDuplicateAccount, apperrors.WithOperation(acct.ID.String()))
	}

	s.accounts[acct.ID] = acct.Clone()
	return nil
}

// RegisterAccount runs a registration request through the validation layer,
// builds the account row, and registers it. The returned account carries
// the generated ID.
func (s *Store) RegisterAccount(req dto.RegisterAccountRequest) (*models.AccountBalance, error) {
	if err := validation.GetValidator().Struct(req); err != nil {
		return nil, apperrors.New(apperrors.ValidationGeneral, apperrors.WithCause(err))
	}

	account, err := req.ToModel()
	if err != nil {
		return nil, apperrors.New(apperrors.ValidationGeneral, apperrors.WithCause(err))
	}

	if err := s.Register(account); err != nil {
		return nil, err
	}
	return account, nil
}

// RegisterBatch registers several accounts; the first failure aborts the
// whole batch with nothing registered.
func (s *Store) RegisterBatch(accts []*models.AccountBalance) error {
	for _, acct := range accts {
		if err := acct.Validate(); err != nil {
			return err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, acct := range accts {
		if _, exists := s.accounts[acct.ID]; exists {
			return apperrors.New(apperrors.LedgerDuplicateAccount, apperrors.WithOperation(acct.ID.String()))
		}
	}
	for _, acct := range accts {
		s.accounts[acct.ID] = acct.Clone()
	}
	return nil
}

// Remove deletes an account from the ledger (account deletion)
func (s *Store) Remove(accountID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.accounts[accountID]; !exists {
		return apperrors.New(apperrors.LedgerAccountNotRegistered, apperrors.WithOperation(accountID.String()))
	}
	delete(s.accounts, accountID)
	return nil
}

// GetAccount returns a deep copy of the registered account
func (s *Store) GetAccount(accountID uuid.UUID) (*models.AccountBalance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	acct, exists := s.accounts[accountID]
	if !exists {
		return nil, apperrors.New(apperrors.LedgerAccountNotRegistered, apperrors.WithOperation(accountID.String()))
	}
	return acct.Clone(), nil
}

// GetBalance returns the current balance for one account
func (s *Store) GetBalance(accountID uuid.UUID) (decimal.Decimal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	acct, exists := s.accounts[accountID]
	if !exists {
		return decimal.Zero, apperrors.New(apperrors.LedgerAccountNotRegistered, apperrors.WithOperation(accountID.String()))
	}
	return acct.CurrentBalance, nil
}

// GetBalances returns balances for every requested account that is
// registered; unknown IDs are silently absent from the result.
func (s *Store) GetBalances(accountIDs []uuid.UUID) map[uuid.UUID]decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()

	balances := make(map[uuid.UUID]decimal.Decimal, len(accountIDs))
	for _, id := range accountIDs {
		if acct, exists := s.accounts[id]; exists {
			balances[id] = acct.CurrentBalance
		}
	}
	return balances
}

// SetBalance overwrites the stored balance and notifies listeners
func (s *Store) SetBalance(accountID uuid.UUID, balance decimal.Decimal) error {
	s.mu.Lock()
	acct, exists := s.accounts[accountID]
	if !exists {
		s.mu.Unlock()
		return apperrors.New(apperrors.LedgerAccountNotRegistered, apperrors.WithOperation(accountID.String()))
	}
	acct.CurrentBalance = balance
	s.mu.Unlock()

	s.notify([]BalanceUpdate{{AccountID: accountID, Balance: balance}})
	return nil
}

// GetCalculationMode returns the account's calculation mode
func (s *Store) GetCalculationMode(accountID uuid.UUID) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	acct, exists := s.accounts[accountID]
	if !exists {
		return "", apperrors.New(apperrors.LedgerAccountNotRegistered, apperrors.WithOperation(accountID.String()))
	}
	return acct.CalculationMode, nil
}

// SetCalculationMode switches how the account's balance is derived
func (s *Store) SetCalculationMode(accountID uuid.UUID, mode string) error {
	if !models.IsValidCalculationMode(mode) {
		return models.ErrInvalidCalculationMode
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	acct, exists := s.accounts[accountID]
	if !exists {
		return apperrors.New(apperrors.LedgerAccountNotRegistered, apperrors.WithOperation(accountID.String()))
	}
	acct.CalculationMode = mode
	return nil
}

// MarkImported marks the persisted balance as authoritative
func (s *Store) MarkImported(accountID uuid.UUID) error {
	return s.SetCalculationMode(accountID, models.CalculationModePreserveImported)
}

// MarkManual switches the account back to initial-balance-plus-history
func (s *Store) MarkManual(accountID uuid.UUID) error {
	return s.SetCalculationMode(accountID, models.CalculationModeFromInitialBalance)
}

// GetInitialBalance returns the recorded starting point
func (s *Store) GetInitialBalance(accountID uuid.UUID) (decimal.Decimal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	acct, exists := s.accounts[accountID]
	if !exists {
		return decimal.Zero, apperrors.New(apperrors.LedgerAccountNotRegistered, apperrors.WithOperation(accountID.String()))
	}
	if !acct.HasInitialBalance() {
		return decimal.Zero, apperrors.New(apperrors.LedgerNoInitialBalance, apperrors.WithOperation(accountID.String()))
	}
	return acct.InitialBalance.Decimal, nil
}

// SetInitialBalance records the starting point for the balance fold
func (s *Store) SetInitialBalance(accountID uuid.UUID, amount decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	acct, exists := s.accounts[accountID]
	if !exists {
		return apperrors.New(apperrors.LedgerAccountNotRegistered, apperrors.WithOperation(accountID.String()))
	}
	acct.SetInitialBalance(amount)
	return nil
}

// ClearInitialBalance removes the recorded starting point
func (s *Store) ClearInitialBalance(accountID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	acct, exists := s.accounts[accountID]
	if !exists {
		return apperrors.New(apperrors.LedgerAccountNotRegistered, apperrors.WithOperation(accountID.String()))
	}
	acct.ClearInitialBalance()
	return nil
}

// UpdateDepositInfo replaces the deposit metadata and immediately stores
// the recomputed derived balance.
func (s *Store) UpdateDepositInfo(accountID uuid.UUID, info *models.DepositInfo) error {
	if info == nil {
		return models.ErrMissingDepositInfo
	}
	if err := info.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	acct, exists := s.accounts[accountID]
	if !exists {
		s.mu.Unlock()
		return apperrors.New(apperrors.LedgerAccountNotRegistered, apperrors.WithOperation(accountID.String()))
	}

	acct.IsDeposit = true
	acct.Deposit = info.Clone()
	acct.CurrentBalance = calc.CalculateDepositBalance(acct.Deposit)
	update := BalanceUpdate{AccountID: accountID, Balance: acct.CurrentBalance}
	s.mu.Unlock()

	s.notify([]BalanceUpdate{update})
	return nil
}

// Recalculate folds the full transaction history through the calculation
// engine and stores the result. Degradations (skipped dates, missing
// conversions) are logged, never raised: the ledger always carries a
// usable balance.
func (s *Store) Recalculate(accountID uuid.UUID, transactions []models.Transaction, cutoff time.Time) (decimal.Decimal, error) {
	s.mu.Lock()
	acct, exists := s.accounts[accountID]
	if !exists {
		s.mu.Unlock()
		return decimal.Zero, apperrors.New(apperrors.LedgerAccountNotRegistered, apperrors.WithOperation(accountID.String()))
	}

	result := calc.CalculateBalance(acct, transactions, cutoff, s.convert)
	acct.CurrentBalance = result.Balance
	update := BalanceUpdate{AccountID: accountID, Balance: result.Balance}
	s.mu.Unlock()

	if result.SkippedTransactions > 0 {
		s.logger.Warn("transactions excluded from balance fold",
			slog.String("account_id", accountID.String()),
			slog.Int("skipped", result.SkippedTransactions),
		)
	}
	if result.ConversionIssue {
		s.logger.Warn("currency conversion unavailable, raw amounts used",
			slog.String("account_id", accountID.String()),
		)
	}

	s.notify([]BalanceUpdate{update})
	return result.Balance, nil
}

// ApplyEffect applies an incremental transaction effect to every
// registered account the transaction involves and returns the committed
// updates. Imported accounts receive the delta too: that is exactly what
// preserve_imported means, incremental changes without full recompute.
func (s *Store) ApplyEffect(effect calc.TransactionEffect) []BalanceUpdate {
	s.mu.Lock()

	var updates []BalanceUpdate
	for id, acct := range s.accounts {
		if !effectInvolves(effect, id) {
			continue
		}
		if acct.IsDeposit {
			// Deposit balances are derived from deposit metadata, not folds.
			continue
		}

		delta := calc.CalculateDelta(effect, id, acct.CurrencyCode, s.convert)
		if delta.Balance.IsZero() && delta.SkippedTransactions == 0 {
			continue
		}
		acct.CurrentBalance = acct.CurrentBalance.Add(delta.Balance)
		updates = append(updates, BalanceUpdate{AccountID: id, Balance: acct.CurrentBalance})
	}
	s.mu.Unlock()

	s.notify(updates)
	return updates
}

// PerformBatchUpdate hands the live balance mapping to transform and
// commits the returned update records as one atomic unit: no other call
// site observes a partially updated mapping.
func (s *Store) PerformBatchUpdate(transform func(accounts map[uuid.UUID]*models.AccountBalance) []BalanceUpdate) []BalanceUpdate {
	s.mu.Lock()

	updates := transform(s.accounts)
	for _, u := range updates {
		if acct, exists := s.accounts[u.AccountID]; exists {
			acct.CurrentBalance = u.Balance
		}
	}
	s.mu.Unlock()

	s.notify(updates)
	return updates
}

// Snapshot deep-copies all ledger state
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	accounts := make(map[uuid.UUID]*models.AccountBalance, len(s.accounts))
	for id, acct := range s.accounts {
		accounts[id] = acct.Clone()
	}
	return Snapshot{accounts: accounts}
}

// Restore replaces all ledger state with the snapshot's copy
func (s *Store) Restore(snapshot Snapshot) error {
	if snapshot.accounts == nil {
		return apperrors.New(apperrors.LedgerInvalidSnapshot)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.accounts = make(map[uuid.UUID]*models.AccountBalance, len(snapshot.accounts))
	for id, acct := range snapshot.accounts {
		s.accounts[id] = acct.Clone()
	}
	return nil
}

// Reset clears all state (full data wipe)
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.accounts = make(map[uuid.UUID]*models.AccountBalance)
}

// Len returns the number of registered accounts
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.accounts)
}

// Subscribe registers a listener for committed balance changes and returns
// its unsubscribe function.
func (s *Store) Subscribe(l Listener) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.listeners[id] = l

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

// notify fires listeners outside the store lock so a listener may call
// back into the store.
func (s *Store) notify(updates []BalanceUpdate) {
	if len(updates) == 0 {
		return
	}

	s.mu.RLock()
	listeners := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.mu.RUnlock()

	for _, l := range listeners {
		for _, u := range updates {
			l(u)
		}
	}
}

func effectInvolves(effect calc.TransactionEffect, accountID uuid.UUID) bool {
	if effect.Old != nil && effect.Old.Involves(accountID) {
		return true
	}
	return effect.New != nil && effect.New.Involves(accountID)
}
