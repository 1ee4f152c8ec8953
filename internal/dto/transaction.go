package dto

// Transaction Request DTOs

// CreateTransactionRequest represents the payload for recording a transaction
type CreateTransactionRequest struct {
	AccountID       string  `json:"account_id" validate:"required,uuid"`
	TargetAccountID *string `json:"target_account_id,omitempty" validate:"omitempty,uuid"`
	Type            string  `json:"type" validate:"required,transaction_type"`
	Date            string  `json:"date" validate:"required,day_date"`
	Amount          string  `json:"amount" validate:"required"`
	CurrencyCode    string  `json:"currency_code" validate:"required,currency_code"`
	ConvertedAmount *string `json:"converted_amount,omitempty"`
	TargetAmount    *string `json:"target_amount,omitempty"`
	Note            string  `json:"note" validate:"max=255"`
}

// SaveRequest names a persistence operation to run through the save coordinator
type SaveRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}
