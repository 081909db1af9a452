package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var started = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

func newTestBill() *Bill {
	return NewBill(BillNo(started), []Product{
		{ID: "pipe", Name: "PVC pipe", Price: decimal.RequireFromString("149.50"), Qty: 5},
		{ID: "elbow", Name: "Elbow", Price: decimal.NewFromInt(12), Qty: 2},
		{ID: "tap", Name: "Tap", Price: decimal.NewFromInt(300), Qty: 0},
	}, started)
}

func TestBillNo(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "BILL-1709287200000", BillNo(started))
}

func TestNewBill(t *testing.T) {
	t.Parallel()

	b := NewBill("B1", []Product{{ID: "x", Qty: -3}}, started)
	assert.Equal(t, StageSelect, b.Stage)
	assert.Empty(t, b.Lines)
	assert.True(t, b.Total.IsZero())
	assert.Equal(t, 0, b.Available("x"))
}

func TestBill_FiveAddsThenNotEnoughStock(t *testing.T) {
	t.Parallel()

	b := newTestBill()
	for i := 0; i < 5; i++ {
		_, err := b.Add("pipe", 1)
		require.NoError(t, err, "add %d", i+1)
	}
	require.Len(t, b.Lines, 1)
	assert.Equal(t, 5, b.Lines[0].Quantity)
	assert.Equal(t, 0, b.Available("pipe"))

	_, err := b.Add("pipe", 1)
	assert.ErrorIs(t, err, ErrNotEnoughStock)
	assert.Equal(t, 5, b.Lines[0].Quantity)
	assert.Equal(t, 0, b.Available("pipe"))

	_, err = b.SetQuantity(b.Lines[0].ID, 4)
	require.NoError(t, err)
	assert.Equal(t, 1, b.Available("pipe"))
	assert.Equal(t, "598", b.Total.String())
}

func TestBill_AddOutOfStock(t *testing.T) {
	t.Parallel()

	b := newTestBill()
	_, err := b.Add("tap", 1)
	assert.ErrorIs(t, err, ErrOutOfStock)
	assert.Empty(t, b.Lines)

	_, err = b.Add("missing", 1)
	assert.ErrorIs(t, err, ErrUnknownProduct)
	_, err = b.Add("pipe", 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestBill_AddBeyondStockLeavesStateUnchanged(t *testing.T) {
	t.Parallel()

	b := newTestBill()
	_, err := b.Add("elbow", 1)
	require.NoError(t, err)
	total := b.Total

	_, err = b.Add("elbow", 2)
	assert.ErrorIs(t, err, ErrNotEnoughStock)
	assert.Equal(t, 1, b.Available("elbow"))
	assert.Equal(t, 1, b.Lines[0].Quantity)
	assert.True(t, total.Equal(b.Total))
}

func TestBill_AddRemoveRoundTrip(t *testing.T) {
	t.Parallel()

	b := newTestBill()
	line, err := b.Add("pipe", 3)
	require.NoError(t, err)
	assert.Equal(t, 2, b.Available("pipe"))
	assert.Equal(t, "448.5", b.Total.String())

	require.NoError(t, b.Remove(line.ID))
	assert.Equal(t, 5, b.Available("pipe"))
	assert.Empty(t, b.Lines)
	assert.True(t, b.Total.IsZero())

	assert.ErrorIs(t, b.Remove(line.ID), ErrLineNotFound)
}

func TestBill_SetQuantity(t *testing.T) {
	t.Parallel()

	b := newTestBill()
	line, err := b.Add("elbow", 1)
	require.NoError(t, err)

	_, err = b.SetQuantity(line.ID, 3)
	assert.ErrorIs(t, err, ErrNotEnoughStock)
	assert.Equal(t, 1, b.Available("elbow"))

	got, err := b.SetQuantity(line.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Quantity)
	assert.Equal(t, 0, b.Available("elbow"))
	assert.Equal(t, "24", b.Total.String())

	_, err = b.SetQuantity(line.ID, 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
	_, err = b.SetQuantity("L99", 1)
	assert.ErrorIs(t, err, ErrLineNotFound)
}

func TestBill_TotalAcrossLines(t *testing.T) {
	t.Parallel()

	b := newTestBill()
	_, err := b.Add("pipe", 2)
	require.NoError(t, err)
	_, err = b.Add("elbow", 2)
	require.NoError(t, err)

	assert.Equal(t, "323", b.Total.String())
	assert.Equal(t, []string{"L1", "L2"}, []string{b.Lines[0].ID, b.Lines[1].ID})
}

func TestBill_StageTransitions(t *testing.T) {
	t.Parallel()

	b := newTestBill()
	assert.ErrorIs(t, b.Back(), ErrWrongStage)
	assert.ErrorIs(t, b.Next(), ErrEmptyCart)
	assert.ErrorIs(t, b.SetCustomer(Customer{Name: "x"}), ErrWrongStage)

	_, err := b.Add("pipe", 1)
	require.NoError(t, err)
	require.NoError(t, b.Next())
	assert.Equal(t, StageCustomer, b.Stage)

	_, err = b.Add("pipe", 1)
	assert.ErrorIs(t, err, ErrWrongStage)
	assert.ErrorIs(t, b.Next(), ErrCustomerRequired)

	require.NoError(t, b.SetCustomer(Customer{Name: " Ravi ", Mobile: "999", GST: ""}))
	assert.Equal(t, "Ravi", b.Customer.Name)
	require.NoError(t, b.Next())
	assert.Equal(t, StageReview, b.Stage)
	assert.ErrorIs(t, b.ReadyToPrint(), ErrWrongStage)

	require.NoError(t, b.Next())
	assert.Equal(t, StageInvoice, b.Stage)
	assert.NoError(t, b.ReadyToPrint())
	assert.ErrorIs(t, b.Next(), ErrWrongStage)

	require.NoError(t, b.Back())
	require.NoError(t, b.Back())
	require.NoError(t, b.Back())
	assert.Equal(t, StageSelect, b.Stage)
	assert.Len(t, b.Lines, 1)
}

func TestStage_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Review & Confirm", StageReview.String())
	assert.Equal(t, "Stage(9)", Stage(9).String())
}
