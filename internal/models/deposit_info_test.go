package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDepositInfo_Validate(t *testing.T) {
	tests := []struct {
		name    string
		info    DepositInfo
		wantErr error
	}{
		{
			name: "valid",
			info: DepositInfo{
				PrincipalBalance:   decimal.NewFromInt(10000),
				InterestRateAnnual: decimal.NewFromFloat(5.0),
				InterestPostingDay: 15,
			},
		},
		{
			name:    "posting day zero",
			info:    DepositInfo{InterestPostingDay: 0},
			wantErr: ErrInvalidPostingDay,
		},
		{
			name:    "posting day 32",
			info:    DepositInfo{InterestPostingDay: 32},
			wantErr: ErrInvalidPostingDay,
		},
		{
			name: "negative rate",
			info: DepositInfo{
				InterestRateAnnual: decimal.NewFromFloat(-1),
				InterestPostingDay: 1,
			},
			wantErr: ErrNegativeRate,
		},
		{
			name: "history entry without date",
			info: DepositInfo{
				InterestPostingDay: 1,
				RateHistory:        []RateChange{{AnnualRate: decimal.NewFromFloat(3)}},
			},
			wantErr: ErrEmptyRateHistory,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.info.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDepositInfo_RateForDate(t *testing.T) {
	info := DepositInfo{
		InterestRateAnnual: decimal.NewFromFloat(4.5),
		InterestPostingDay: 1,
		RateHistory: []RateChange{
			{EffectiveFrom: day(2025, 1, 1), AnnualRate: decimal.NewFromFloat(3.0)},
			{EffectiveFrom: day(2025, 6, 1), AnnualRate: decimal.NewFromFloat(4.0)},
			{EffectiveFrom: day(2026, 1, 1), AnnualRate: decimal.NewFromFloat(4.5)},
		},
	}

	rate, applied := info.RateForDate(day(2025, 7, 15))
	assert.True(t, applied)
	assert.True(t, rate.Equal(decimal.NewFromFloat(4.0)))

	// Exact effective date uses the new rate
	rate, applied = info.RateForDate(day(2026, 1, 1))
	assert.True(t, applied)
	assert.True(t, rate.Equal(decimal.NewFromFloat(4.5)))

	// Before all entries: first-entry fallback, flagged as not applied
	rate, applied = info.RateForDate(day(2024, 12, 31))
	assert.False(t, applied)
	assert.True(t, rate.Equal(decimal.NewFromFloat(3.0)))
}

func TestDepositInfo_RateForDate_EmptyHistory(t *testing.T) {
	info := DepositInfo{InterestRateAnnual: decimal.NewFromFloat(2.5), InterestPostingDay: 1}

	rate, applied := info.RateForDate(day(2026, 5, 1))
	assert.True(t, applied)
	assert.True(t, rate.Equal(decimal.NewFromFloat(2.5)))
}

func TestDepositInfo_SortRateHistory(t *testing.T) {
	info := DepositInfo{
		InterestPostingDay: 1,
		RateHistory: []RateChange{
			{EffectiveFrom: day(2026, 3, 1), AnnualRate: decimal.NewFromFloat(5)},
			{EffectiveFrom: day(2025, 1, 1), AnnualRate: decimal.NewFromFloat(3)},
			{EffectiveFrom: day(2025, 9, 1), AnnualRate: decimal.NewFromFloat(4)},
		},
	}

	info.SortRateHistory()

	require.Len(t, info.RateHistory, 3)
	assert.Equal(t, day(2025, 1, 1), info.RateHistory[0].EffectiveFrom)
	assert.Equal(t, day(2025, 9, 1), info.RateHistory[1].EffectiveFrom)
	assert.Equal(t, day(2026, 3, 1), info.RateHistory[2].EffectiveFrom)
}

func TestDepositInfo_ClampedPostingDay(t *testing.T) {
	info := DepositInfo{InterestPostingDay: 31}

	assert.Equal(t, 31, info.ClampedPostingDay(2026, time.January))
	assert.Equal(t, 28, info.ClampedPostingDay(2026, time.February))
	assert.Equal(t, 29, info.ClampedPostingDay(2028, time.February)) // leap year
	assert.Equal(t, 30, info.ClampedPostingDay(2026, time.April))

	info.InterestPostingDay = 15
	assert.Equal(t, 15, info.ClampedPostingDay(2026, time.February))
}

func TestDepositInfo_Clone(t *testing.T) {
	lastCalc := day(2026, 8, 1)
	info := &DepositInfo{
		PrincipalBalance:            decimal.NewFromInt(10000),
		InterestPostingDay:          1,
		LastInterestCalculationDate: &lastCalc,
		RateHistory: []RateChange{
			{EffectiveFrom: day(2025, 1, 1), AnnualRate: decimal.NewFromFloat(3)},
		},
	}

	clone := info.Clone()
	clone.RateHistory[0].AnnualRate = decimal.NewFromFloat(9)
	*clone.LastInterestCalculationDate = day(2020, 1, 1)

	assert.True(t, info.RateHistory[0].AnnualRate.Equal(decimal.NewFromFloat(3)))
	assert.Equal(t, day(2026, 8, 1), *info.LastInterestCalculationDate)

	var nilInfo *DepositInfo
	assert.Nil(t, nilInfo.Clone())
}

func TestDepositInfo_ValueScanRoundTrip(t *testing.T) {
	info := DepositInfo{
		PrincipalBalance:              decimal.NewFromFloat(1234.56),
		CapitalizationEnabled:         true,
		InterestRateAnnual:            decimal.NewFromFloat(5.25),
		InterestAccruedNotCapitalized: decimal.NewFromFloat(10.01),
		LastInterestPostingMonth:      "2026-07",
		InterestPostingDay:            31,
		RateHistory: []RateChange{
			{EffectiveFrom: day(2025, 1, 1), AnnualRate: decimal.NewFromFloat(5.25), Note: "promo"},
		},
	}

	value, err := info.Value()
	require.NoError(t, err)

	var restored DepositInfo
	require.NoError(t, restored.Scan(value))

	assert.True(t, restored.PrincipalBalance.Equal(info.PrincipalBalance))
	assert.True(t, restored.CapitalizationEnabled)
	assert.Equal(t, "2026-07", restored.LastInterestPostingMonth)
	assert.Equal(t, 31, restored.InterestPostingDay)
	require.Len(t, restored.RateHistory, 1)
	assert.Equal(t, "promo", restored.RateHistory[0].Note)

	assert.Error(t, restored.Scan(42))
}
