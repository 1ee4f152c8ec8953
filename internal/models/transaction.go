package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	TransactionTypeIncome            = "income"
	TransactionTypeExpense           = "expense"
	TransactionTypeTransfer          = "transfer"
	TransactionTypeDepositTopUp      = "deposit_topup"
	TransactionTypeDepositWithdrawal = "deposit_withdrawal"
	TransactionTypeInterestAccrual   = "interest_accrual"

	// DateLayout is the canonical day-granular date format for transactions.
	DateLayout = "2006-01-02"

	// MonthLayout identifies a calendar month for interest posting bookkeeping.
	MonthLayout = "2006-01"
)

var (
	ErrInvalidTransactionType = errors.New("invalid transaction type")
	ErrInvalidAmount          = errors.New("transaction amount must be positive")
	ErrMissingAccount         = errors.New("transaction account ID is required")
	ErrMissingTargetAccount   = errors.New("transfer requires a target account")
	ErrSameTransferAccount    = errors.New("transfer source and target accounts must differ")
	ErrUnparsableDate         = errors.New("transaction date could not be parsed")
)

// Transaction represents a single financial event against an account.
// Dates arrive from external importers as strings and may be unparsable;
// folds skip such transactions rather than fail (see internal/calc).
type Transaction struct {
	ID              uuid.UUID           `gorm:"type:uuid;primary_key" json:"id"`
	AccountID       uuid.UUID           `gorm:"type:uuid;not null;index" json:"account_id"`
	TargetAccountID *uuid.UUID          `gorm:"type:uuid;index" json:"target_account_id,omitempty"`
	Type            string              `gorm:"type:varchar(24);not null;index" json:"type"`
	Date            string              `gorm:"type:varchar(32);not null;index" json:"date"`
	Amount          decimal.Decimal     `gorm:"type:decimal(15,2);not null" json:"amount"`
	CurrencyCode    string              `gorm:"type:varchar(3);not null;default:'USD'" json:"currency_code"`
	ConvertedAmount decimal.NullDecimal `gorm:"type:decimal(15,2)" json:"converted_amount,omitempty"`
	TargetAmount    decimal.NullDecimal `gorm:"type:decimal(15,2)" json:"target_amount,omitempty"`
	Note            string              `gorm:"type:text" json:"note,omitempty"`
	Reference       string              `gorm:"type:varchar(100);index" json:"reference,omitempty"`
	CreatedAt       time.Time           `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time           `gorm:"not null" json:"updated_at"`
}

// BeforeCreate hook for Transaction
func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}

	// Set timestamps if not already set (for tests)
	now := time.Now()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	if t.UpdatedAt.IsZero() {
		t.UpdatedAt = now
	}

	return t.Validate()
}

// BeforeUpdate hook for Transaction
func (t *Transaction) BeforeUpdate(tx *gorm.DB) error {
	t.UpdatedAt = time.Now()
	return t.Validate()
}

// Validate validates the transaction fields
func (t *Transaction) Validate() error {
	if t.AccountID == uuid.Nil {
		return ErrMissingAccount
	}

	if !IsValidTransactionType(t.Type) {
		return ErrInvalidTransactionType
	}

	if t.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	if t.Date == "" {
		return errors.New("transaction date is required")
	}

	if len(t.CurrencyCode) != 3 {
		return fmt.Errorf("invalid currency code %q", t.CurrencyCode)
	}

	if t.Type == TransactionTypeTransfer {
		if t.TargetAccountID == nil || *t.TargetAccountID == uuid.Nil {
			return ErrMissingTargetAccount
		}
		if *t.TargetAccountID == t.AccountID {
			return ErrSameTransferAccount
		}
	}

	return nil
}

// ParseDate parses the transaction date string. Day-granular dates are
// canonical; RFC3339 timestamps from older importers are accepted too.
func (t *Transaction) ParseDate() (time.Time, error) {
	if d, err := time.Parse(DateLayout, t.Date); err == nil {
		return d, nil
	}
	if d, err := time.Parse(time.RFC3339, t.Date); err == nil {
		return d, nil
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrUnparsableDate, t.Date)
}

// IsDepositKind reports whether the transaction mutates deposit metadata
// directly and is therefore excluded from the plain balance fold.
func (t *Transaction) IsDepositKind() bool {
	switch t.Type {
	case TransactionTypeDepositTopUp, TransactionTypeDepositWithdrawal, TransactionTypeInterestAccrual:
		return true
	default:
		return false
	}
}

// IsTransfer returns true for internal transfers between two accounts
func (t *Transaction) IsTransfer() bool {
	return t.Type == TransactionTypeTransfer
}

// Involves reports whether the transaction touches the given account,
// either as source or as transfer target.
func (t *Transaction) Involves(accountID uuid.UUID) bool {
	if t.AccountID == accountID {
		return true
	}
	return t.TargetAccountID != nil && *t.TargetAccountID == accountID
}

// TableName returns the table name for Transaction
func (t *Transaction) TableName() string {
	return "transactions"
}

// Helper functions

// IsValidTransactionType checks if the transaction type is valid
func IsValidTransactionType(transactionType string) bool {
	switch transactionType {
	case TransactionTypeIncome, TransactionTypeExpense, TransactionTypeTransfer,
		TransactionTypeDepositTopUp, TransactionTypeDepositWithdrawal, TransactionTypeInterestAccrual:
		return true
	default:
		return false
	}
}

// MonthKey returns the posting-month key ("YYYY-MM") for a point in time
func MonthKey(t time.Time) string {
	return t.Format(MonthLayout)
}

// Djb2 is the non-cryptographic hash used for deterministic references.
// It is pure and stable across runs, unlike Go's runtime map hash.
func Djb2(s string) uint32 {
	var h uint32 = 5381
	for i := 0; i < len(s); i++ {
		h = h*33 + uint32(s[i])
	}
	return h
}

// InterestPostingReference derives the process-restart-stable reference for
// an interest posting. Re-deriving the same logical posting always yields
// the same reference, which is the second idempotency guarantee next to the
// durable-store month check.
func InterestPostingReference(accountID uuid.UUID, month string, amount decimal.Decimal, currencyCode string) string {
	key := accountID.String() + "|" + month + "|" + amount.StringFixed(2) + "|" + currencyCode
	return fmt.Sprintf("INT-%08X", Djb2(key))
}
