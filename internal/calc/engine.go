// Package calc is the pure balance calculation engine. Every function is
// stateless and free of I/O; callers supply accounts, transactions and an
// optional currency-conversion function and get values back. Failures
// degrade instead of aborting: unparsable dates exclude a transaction from
// the fold, missing conversions fall back to the raw amount, and both are
// reported through Result flags so callers can log them.
package calc

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"pennyledger/internal/models"
)

// ConvertFunc converts an amount between currencies. The boolean reports
// whether a rate was available; false triggers the raw-amount fallback.
type ConvertFunc func(amount decimal.Decimal, from, to string) (decimal.Decimal, bool)

// Result carries a computed balance plus degradation flags. The balance is
// always usable even when flags are set.
type Result struct {
	Balance             decimal.Decimal
	ConversionIssue     bool
	SkippedTransactions int
}

// CalculateBalance derives the balance of an account from its transaction
// history up to and including cutoff.
//
// For preserve_imported accounts the persisted current balance is
// authoritative and returned unchanged. Deposit accounts derive their
// balance from deposit metadata. from_initial_balance accounts fold every
// dated transaction effect onto the initial balance; deposit-specific
// transaction kinds are excluded because they mutate deposit fields through
// ApplyTransactionToDeposit instead.
func CalculateBalance(acct *models.AccountBalance, transactions []models.Transaction, cutoff time.Time, convert ConvertFunc) Result {
	if acct.IsImported() {
		return Result{Balance: acct.CurrentBalance}
	}

	if acct.IsDeposit && acct.Deposit != nil {
		return Result{Balance: CalculateDepositBalance(acct.Deposit)}
	}

	result := Result{}
	if acct.HasInitialBalance() {
		result.Balance = acct.InitialBalance.Decimal
	}

	for i := range transactions {
		tx := &transactions[i]
		if !tx.Involves(acct.ID) || tx.IsDepositKind() {
			continue
		}

		date, err := tx.ParseDate()
		if err != nil {
			result.SkippedTransactions++
			continue
		}
		if date.After(cutoff) {
			continue
		}

		effect, issue := signedEffect(tx, tx.AccountID == acct.ID, acct.CurrencyCode, convert)
		result.Balance = result.Balance.Add(effect)
		result.ConversionIssue = result.ConversionIssue || issue
	}

	return result
}

// CalculateInitialBalance back-derives the starting point that makes the
// transaction history consistent with an externally observed current
// balance: initial = current - net(transactions). Used once at import time.
func CalculateInitialBalance(currentBalance decimal.Decimal, transactions []models.Transaction, accountID uuid.UUID, currencyCode string, convert ConvertFunc) Result {
	result := Result{Balance: currentBalance}

	for i := range transactions {
		tx := &transactions[i]
		if !tx.Involves(accountID) || tx.IsDepositKind() {
			continue
		}

		if _, err := tx.ParseDate(); err != nil {
			result.SkippedTransactions++
			continue
		}

		effect, issue := signedEffect(tx, tx.AccountID == accountID, currencyCode, convert)
		result.Balance = result.Balance.Sub(effect)
		result.ConversionIssue = result.ConversionIssue || issue
	}

	return result
}

// CalculateDepositBalance derives a deposit account's balance: the
// principal, plus accrued-but-not-capitalized interest when capitalization
// is disabled (capitalized interest already lives in the principal).
func CalculateDepositBalance(info *models.DepositInfo) decimal.Decimal {
	if info.CapitalizationEnabled {
		return info.PrincipalBalance
	}
	return info.PrincipalBalance.Add(info.InterestAccruedNotCapitalized)
}

// ApplyTransactionToDeposit mutates deposit metadata for a deposit-kind
// transaction. Withdrawals draw down not-yet-capitalized interest before
// touching the principal. Interest postings capitalize into the principal
// or accumulate separately depending on the capitalization flag.
func ApplyTransactionToDeposit(tx *models.Transaction, info *models.DepositInfo, isSource bool) {
	switch tx.Type {
	case models.TransactionTypeDepositTopUp:
		info.PrincipalBalance = info.PrincipalBalance.Add(tx.Amount)

	case models.TransactionTypeDepositWithdrawal:
		if !isSource {
			return
		}
		remaining := tx.Amount
		if info.InterestAccruedNotCapitalized.IsPositive() {
			drawn := decimal.Min(remaining, info.InterestAccruedNotCapitalized)
			info.InterestAccruedNotCapitalized = info.InterestAccruedNotCapitalized.Sub(drawn)
			remaining = remaining.Sub(drawn)
		}
		info.PrincipalBalance = info.PrincipalBalance.Sub(remaining)

	case models.TransactionTypeInterestAccrual:
		if info.CapitalizationEnabled {
			info.PrincipalBalance = info.PrincipalBalance.Add(tx.Amount)
		} else {
			info.InterestAccruedNotCapitalized = info.InterestAccruedNotCapitalized.Add(tx.Amount)
		}
	}
}

// signedEffect computes one transaction's signed contribution to the
// balance of the account identified by its role (source or transfer
// target). The boolean reports a conversion fallback.
func signedEffect(tx *models.Transaction, isSource bool, accountCurrency string, convert ConvertFunc) (decimal.Decimal, bool) {
	switch tx.Type {
	case models.TransactionTypeIncome:
		amount, issue := amountInCurrency(tx, accountCurrency, convert)
		return amount, issue

	case models.TransactionTypeExpense:
		amount, issue := amountInCurrency(tx, accountCurrency, convert)
		return amount.Neg(), issue

	case models.TransactionTypeTransfer:
		if isSource {
			// The transaction amount is denominated in the source currency, so
			// the debit is always the raw amount. ConvertedAmount belongs to
			// the credit leg and must not leak into the debit.
			if tx.CurrencyCode == accountCurrency {
				return tx.Amount.Neg(), false
			}
			if convert != nil {
				if converted, ok := convert(tx.Amount, tx.CurrencyCode, accountCurrency); ok {
					return converted.Neg(), false
				}
			}
			return tx.Amount.Neg(), true
		}
		if tx.TargetAmount.Valid {
			return tx.TargetAmount.Decimal, false
		}
		if tx.ConvertedAmount.Valid {
			return tx.ConvertedAmount.Decimal, false
		}
		return tx.Amount, tx.CurrencyCode != accountCurrency

	default:
		// Deposit kinds never reach the fold; anything else contributes nothing.
		return decimal.Zero, false
	}
}

// amountInCurrency resolves a transaction amount into the account currency:
// precomputed converted amount first, then the conversion function, then
// the raw amount with the conversion-issue flag set.
func amountInCurrency(tx *models.Transaction, accountCurrency string, convert ConvertFunc) (decimal.Decimal, bool) {
	if tx.CurrencyCode == accountCurrency {
		return tx.Amount, false
	}

	if tx.ConvertedAmount.Valid {
		return tx.ConvertedAmount.Decimal, false
	}

	if convert != nil {
		if converted, ok := convert(tx.Amount, tx.CurrencyCode, accountCurrency); ok {
			return converted, false
		}
	}

	return tx.Amount, true
}
