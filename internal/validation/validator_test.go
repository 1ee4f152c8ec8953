package validation

import (
	"testing"

	"pennyledger/internal/dto"

	"github.com/stretchr/testify/assert"
)

func TestValidateRegisterAccountRequest(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name    string
		req     dto.RegisterAccountRequest
		wantErr bool
	}{
		{
			name: "valid manual account",
			req: dto.RegisterAccountRequest{
				CurrencyCode:    "USD",
				CalculationMode: "from_initial_balance",
				CurrentBalance:  "1000",
			},
			wantErr: false,
		},
		{
			name: "valid imported account",
			req: dto.RegisterAccountRequest{
				CurrencyCode:    "EUR",
				CalculationMode: "preserve_imported",
				CurrentBalance:  "500",
			},
			wantErr: false,
		},
		{
			name: "lowercase currency",
			req: dto.RegisterAccountRequest{
				CurrencyCode:    "usd",
				CalculationMode: "from_initial_balance",
				CurrentBalance:  "0",
			},
			wantErr: true,
		},
		{
			name: "unknown calculation mode",
			req: dto.RegisterAccountRequest{
				CurrencyCode:    "USD",
				CalculationMode: "guesswork",
				CurrentBalance:  "0",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.req)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateCreateDepositRequest(t *testing.T) {
	v := NewValidator()

	valid := dto.CreateDepositRequest{
		PrincipalBalance:   "10000",
		InterestRateAnnual: "5.0",
		InterestPostingDay: 15,
	}
	assert.NoError(t, v.Struct(valid))

	badDay := valid
	badDay.InterestPostingDay = 32
	assert.Error(t, v.Struct(badDay))

	zeroDay := valid
	zeroDay.InterestPostingDay = 0
	assert.Error(t, v.Struct(zeroDay))
}

func TestValidateCreateTransactionRequest(t *testing.T) {
	v := NewValidator()

	valid := dto.CreateTransactionRequest{
		AccountID:    "2b1f0c9a-77aa-4a0e-9e36-0da2f41c6c36",
		Type:         "income",
		Date:         "2026-03-15",
		Amount:       "100",
		CurrencyCode: "USD",
	}
	assert.NoError(t, v.Struct(valid))

	badType := valid
	badType.Type = "wager"
	assert.Error(t, v.Struct(badType))

	badDate := valid
	badDate.Date = "15.03.2026"
	assert.Error(t, v.Struct(badDate))

	badUUID := valid
	badUUID.AccountID = "not-a-uuid"
	assert.Error(t, v.Struct(badUUID))
}

func TestValidateRateChangeRequest(t *testing.T) {
	v := NewValidator()

	valid := dto.RateChangeRequest{
		EffectiveFrom: "2026-09-01",
		AnnualRate:    "4.25",
		Note:          "central bank cut",
	}
	assert.NoError(t, v.Struct(valid))

	badDate := valid
	badDate.EffectiveFrom = "September 1st"
	assert.Error(t, v.Struct(badDate))
}

func TestGetValidatorSingleton(t *testing.T) {
	a := GetValidator()
	b := GetValidator()
	assert.Same(t, a, b)
}
