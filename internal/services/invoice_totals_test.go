package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ouveo-backend/internal/models"
)

func TestComputeTotals(t *testing.T) {
	items := []models.InvoiceItem{
		{Label: "Main d'oeuvre", Quantity: 2, UnitPrice: 45},
		{Label: "Joint silicone", Quantity: 1, UnitPrice: 12.50},
	}

	items, subtotal, tax, total := ComputeTotals(items)

	assert.Equal(t, 90.0, items[0].Amount)
	assert.Equal(t, 12.50, items[1].Amount)
	assert.Equal(t, 102.50, subtotal)
	assert.Equal(t, 20.50, tax)
	assert.Equal(t, 123.0, total)
}

func TestComputeTotalsRounding(t *testing.T) {
	// 3 * 33.333 = 99.999, rounds to 100.00 per line
	items := []models.InvoiceItem{
		{Label: "Peinture", Quantity: 3, UnitPrice: 33.333},
	}

	items, subtotal, tax, total := ComputeTotals(items)

	assert.Equal(t, 100.0, items[0].Amount)
	assert.Equal(t, 100.0, subtotal)
	assert.Equal(t, 20.0, tax)
	assert.Equal(t, 120.0, total)
}

func TestComputeTotalsEmpty(t *testing.T) {
	_, subtotal, tax, total := ComputeTotals(nil)
	assert.Zero(t, subtotal)
	assert.Zero(t, tax)
	assert.Zero(t, total)
}

func TestValidateItems(t *testing.T) {
	tests := []struct {
		name    string
		items   []models.InvoiceItem
		wantErr bool
	}{
		{"valid", []models.InvoiceItem{{Label: "Déplacement", Quantity: 1, UnitPrice: 30}}, false},
		{"empty", nil, true},
		{"missing label", []models.InvoiceItem{{Quantity: 1, UnitPrice: 30}}, true},
		{"zero quantity", []models.InvoiceItem{{Label: "Déplacement", Quantity: 0, UnitPrice: 30}}, true},
		{"negative price", []models.InvoiceItem{{Label: "Déplacement", Quantity: 1, UnitPrice: -5}}, true},
		{"free line is fine", []models.InvoiceItem{{Label: "Geste commercial", Quantity: 1, UnitPrice: 0}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateItems(tt.items)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, IsValidation(err))
			} else {
				require.NoError(t, err)
			}
		})
	}
}
