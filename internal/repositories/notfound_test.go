package repositories

import (
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// noRow mimics a QueryRow result that matched nothing.
type noRow struct{}

func (noRow) Scan(...any) error { return pgx.ErrNoRows }

// A lookup that matches nothing must come back as (nil, nil), never as the
// raw pgx sentinel: callers decide not-found by checking the pointer.
func TestScanHelpersTranslateNoRows(t *testing.T) {
	tests := []struct {
		name string
		scan func() (any, error)
	}{
		{"user", func() (any, error) { return scanUser(noRow{}) }},
		{"booking", func() (any, error) { return scanBooking(noRow{}) }},
		{"mission", func() (any, error) { return scanMission(noRow{}) }},
		{"invoice", func() (any, error) { return scanInvoice(noRow{}) }},
		{"report", func() (any, error) { return scanReport(noRow{}) }},
		{"payment", func() (any, error) { return scanPayment(noRow{}) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := tt.scan()
			require.NoError(t, err)
			assert.Nil(t, out)
		})
	}
}
