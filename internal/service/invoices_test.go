package service

import (
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/streamlinehq/streamline/internal/errs"
)

func TestValidateTaxRate(t *testing.T) {
	tests := []struct {
		name    string
		rate    string
		wantErr bool
	}{
		{name: "zero", rate: "0"},
		{name: "typical", rate: "0.0825"},
		{name: "full", rate: "1"},
		{name: "negative", rate: "-1", wantErr: true},
		{name: "slightly negative", rate: "-0.01", wantErr: true},
		{name: "above one", rate: "1.01", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateTaxRate(decimal.RequireFromString(tt.rate))
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}

			var httpErr *errs.HTTPError
			require.ErrorAs(t, err, &httpErr)
			assert.Equal(t, http.StatusBadRequest, httpErr.Status)
			require.Len(t, httpErr.Errors, 1)
			assert.Equal(t, "tax_rate", httpErr.Errors[0].Field)
		})
	}
}

func TestBuildLineItems(t *testing.T) {
	t.Run("computes nothing, copies inputs", func(t *testing.T) {
		items, err := buildLineItems([]LineItemInput{
			{Description: "Labor", Quantity: decimal.NewFromInt(2), UnitPrice: decimal.RequireFromString("85.50")},
		})
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "Labor", items[0].Description)
		assert.True(t, items[0].Amount.IsZero())
	})

	t.Run("empty list rejected", func(t *testing.T) {
		_, err := buildLineItems(nil)

		var httpErr *errs.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusBadRequest, httpErr.Status)
		require.Len(t, httpErr.Errors, 1)
		assert.Equal(t, "line_items", httpErr.Errors[0].Field)
	})

	t.Run("zero quantity rejected", func(t *testing.T) {
		_, err := buildLineItems([]LineItemInput{
			{Description: "Labor", Quantity: decimal.Zero, UnitPrice: decimal.NewFromInt(10)},
		})
		assert.Error(t, err)
	})

	t.Run("negative unit price rejected", func(t *testing.T) {
		_, err := buildLineItems([]LineItemInput{
			{Description: "Labor", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(-10)},
		})
		assert.Error(t, err)
	})
}
