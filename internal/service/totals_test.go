package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tableside/api/internal/database"
)

func TestComputeTotals(t *testing.T) {
	got := computeTotals(
		numeric("100.00"), // subtotal
		numeric("0.0825"), // tax rate
		numeric("0.18"),   // service rate
		numeric("10.00"),  // discount
		numeric("15.00"),  // tips
		numeric("50.00"),  // paid
	)
	assert.Equal(t, "8.25", got.TaxAmount.StringFixed(2))
	assert.Equal(t, "18.00", got.ServiceCharge.StringFixed(2))
	assert.Equal(t, "116.25", got.Total.StringFixed(2))
	assert.Equal(t, "15.00", got.TipAmount.StringFixed(2))
	assert.Equal(t, "50.00", got.PaidTotal.StringFixed(2))
}

func TestComputeTotalsFloorsAtZero(t *testing.T) {
	got := computeTotals(numeric("5"), numeric("0"), numeric("0"), numeric("20"), numeric("0"), numeric("0"))
	assert.True(t, got.Total.IsZero())
}

func TestRecalculateSessionTotalsExcludesVoided(t *testing.T) {
	f := newFixture(t)
	loc := f.store.s.locations[f.loc.ID]
	loc.TaxRate = decimalToNumeric(numeric("0.10"))
	f.store.s.locations[f.loc.ID] = loc

	sessID := f.seat(t, StoreTableSessionState{
		GuestCount: 1,
		TableItems: []SessionItem{item("Wine", "30.00", "served", 1), item("Cake", "10.00", "held", 1)},
	})
	for _, o := range f.store.ordersFor(sessID) {
		for _, it := range f.store.itemsFor(o.ID) {
			if it.ItemName == "Cake" {
				it.VoidedAt = now()
				f.store.s.items[it.ID] = it
			}
		}
	}

	totals, err := f.svc.RecalculateSessionTotals(f.ctx, sessID)
	require.NoError(t, err)
	assert.Equal(t, "30.00", totals.Subtotal.StringFixed(2))
	assert.Equal(t, "3.00", totals.TaxAmount.StringFixed(2))
	assert.Equal(t, "33.00", totals.Total.StringFixed(2))

	stored := f.store.session(sessID)
	assert.Equal(t, "33.00", numericToDecimal(stored.Total).StringFixed(2))
}

func TestRecalculateSessionTotalsUnknownSession(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.RecalculateSessionTotals(f.ctx, database.TableSession{}.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
