package dto

import (
	"fmt"
	"time"

	"pennyledger/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Account Request DTOs

// RegisterAccountRequest represents the payload for registering an account with the ledger
type RegisterAccountRequest struct {
	CurrencyCode    string  `json:"currency_code" validate:"required,currency_code"`
	CalculationMode string  `json:"calculation_mode" validate:"required,calculation_mode"`
	InitialBalance  *string `json:"initial_balance,omitempty"`
	CurrentBalance  string  `json:"current_balance" validate:"required"`
}

// SetInitialBalanceRequest represents the payload for setting an account's initial balance
type SetInitialBalanceRequest struct {
	InitialBalance string `json:"initial_balance" validate:"required"`
}

// CreateDepositRequest represents the payload for marking an account as a deposit
type CreateDepositRequest struct {
	PrincipalBalance      string `json:"principal_balance" validate:"required"`
	InterestRateAnnual    string `json:"interest_rate_annual" validate:"required"`
	InterestPostingDay    int    `json:"interest_posting_day" validate:"required,posting_day"`
	CapitalizationEnabled bool   `json:"capitalization_enabled"`
}

// RateChangeRequest represents the payload for recording a deposit rate change
type RateChangeRequest struct {
	EffectiveFrom string `json:"effective_from" validate:"required,day_date"`
	AnnualRate    string `json:"annual_rate" validate:"required"`
	Note          string `json:"note" validate:"max=255"`
}

// ToModel builds the account balance row described by a validated request.
// A fresh ID is assigned; the ledger and repository never generate one for
// request-driven registrations.
func (r *RegisterAccountRequest) ToModel() (*models.AccountBalance, error) {
	current, err := decimal.NewFromString(r.CurrentBalance)
	if err != nil {
		return nil, fmt.Errorf("invalid current balance %q: %w", r.CurrentBalance, err)
	}

	account := &models.AccountBalance{
		ID:              uuid.New(),
		CurrencyCode:    r.CurrencyCode,
		CalculationMode: r.CalculationMode,
		CurrentBalance:  current,
		Version:         1,
	}
	if r.InitialBalance != nil {
		initial, err := decimal.NewFromString(*r.InitialBalance)
		if err != nil {
			return nil, fmt.Errorf("invalid initial balance %q: %w", *r.InitialBalance, err)
		}
		account.SetInitialBalance(initial)
	}
	return account, nil
}

// ToModel parses a validated rate change request into the model type
func (r *RateChangeRequest) ToModel() (models.RateChange, error) {
	effective, err := time.Parse(models.DateLayout, r.EffectiveFrom)
	if err != nil {
		return models.RateChange{}, fmt.Errorf("invalid effective date %q: %w", r.EffectiveFrom, err)
	}
	rate, err := decimal.NewFromString(r.AnnualRate)
	if err != nil {
		return models.RateChange{}, fmt.Errorf("invalid annual rate %q: %w", r.AnnualRate, err)
	}
	return models.RateChange{
		EffectiveFrom: effective,
		AnnualRate:    rate,
		Note:          r.Note,
	}, nil
}

// Account Response DTOs

// BalanceResponse represents a single account balance in responses
type BalanceResponse struct {
	AccountID string          `json:"account_id"`
	Balance   decimal.Decimal `json:"balance"`
}

// AccountBalanceResponse represents a full account balance row
type AccountBalanceResponse struct {
	*models.AccountBalance
}

// RecalculationResponse reports the outcome of a balance recalculation
type RecalculationResponse struct {
	AccountID           string          `json:"account_id"`
	Balance             decimal.Decimal `json:"balance"`
	ConversionIssue     bool            `json:"conversion_issue"`
	SkippedTransactions int             `json:"skipped_transactions"`
}
