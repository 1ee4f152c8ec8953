package calc

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"pennyledger/internal/models"
)

// EffectKind tags an incremental transaction operation
type EffectKind int

const (
	EffectAdd EffectKind = iota
	EffectRemove
	EffectUpdate
)

// TransactionEffect is a tagged add/remove/update operation over a single
// transaction, used for O(1) incremental balance updates instead of an
// O(n) full recompute.
type TransactionEffect struct {
	Kind EffectKind
	Old  *models.Transaction
	New  *models.Transaction
}

// AddEffect describes a newly created transaction
func AddEffect(tx *models.Transaction) TransactionEffect {
	return TransactionEffect{Kind: EffectAdd, New: tx}
}

// RemoveEffect describes a deleted transaction
func RemoveEffect(tx *models.Transaction) TransactionEffect {
	return TransactionEffect{Kind: EffectRemove, Old: tx}
}

// UpdateEffect describes an edited transaction
func UpdateEffect(old, new *models.Transaction) TransactionEffect {
	return TransactionEffect{Kind: EffectUpdate, Old: old, New: new}
}

// CalculateDelta returns the signed balance change the effect produces for
// the given account, equal to the difference a full recompute would show.
// Transactions not involving the account, deposit kinds, and transactions
// whose date fails to parse all contribute zero, mirroring the fold.
func CalculateDelta(effect TransactionEffect, accountID uuid.UUID, currencyCode string, convert ConvertFunc) Result {
	switch effect.Kind {
	case EffectAdd:
		return contribution(effect.New, accountID, currencyCode, convert)

	case EffectRemove:
		res := contribution(effect.Old, accountID, currencyCode, convert)
		res.Balance = res.Balance.Neg()
		return res

	case EffectUpdate:
		oldRes := contribution(effect.Old, accountID, currencyCode, convert)
		newRes := contribution(effect.New, accountID, currencyCode, convert)
		return Result{
			Balance:             newRes.Balance.Sub(oldRes.Balance),
			ConversionIssue:     oldRes.ConversionIssue || newRes.ConversionIssue,
			SkippedTransactions: oldRes.SkippedTransactions + newRes.SkippedTransactions,
		}

	default:
		return Result{Balance: decimal.Zero}
	}
}

// ApplyTransaction adds a single transaction's effect to a balance.
// isSource tells whether the account is the transaction's source or the
// target of a transfer.
func ApplyTransaction(tx *models.Transaction, balance decimal.Decimal, currencyCode string, isSource bool, convert ConvertFunc) Result {
	if tx.IsDepositKind() {
		return Result{Balance: balance}
	}

	if _, err := tx.ParseDate(); err != nil {
		return Result{Balance: balance, SkippedTransactions: 1}
	}

	effect, issue := signedEffect(tx, isSource, currencyCode, convert)
	return Result{Balance: balance.Add(effect), ConversionIssue: issue}
}

// RevertTransaction is the exact inverse of ApplyTransaction: applying and
// then reverting a transaction restores the original balance.
func RevertTransaction(tx *models.Transaction, balance decimal.Decimal, currencyCode string, isSource bool, convert ConvertFunc) Result {
	if tx.IsDepositKind() {
		return Result{Balance: balance}
	}

	if _, err := tx.ParseDate(); err != nil {
		return Result{Balance: balance, SkippedTransactions: 1}
	}

	effect, issue := signedEffect(tx, isSource, currencyCode, convert)
	return Result{Balance: balance.Sub(effect), ConversionIssue: issue}
}

// contribution is the effect a transaction has on the account's full fold:
// zero unless the account is involved, the kind folds, and the date parses.
func contribution(tx *models.Transaction, accountID uuid.UUID, currencyCode string, convert ConvertFunc) Result {
	if tx == nil || !tx.Involves(accountID) || tx.IsDepositKind() {
		return Result{Balance: decimal.Zero}
	}

	if _, err := tx.ParseDate(); err != nil {
		return Result{Balance: decimal.Zero, SkippedTransactions: 1}
	}

	effect, issue := signedEffect(tx, tx.AccountID == accountID, currencyCode, convert)
	return Result{Balance: effect, ConversionIssue: issue}
}
