package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sncs-coopledger/internal/core/domain"
)

func TestReconcileCash(t *testing.T) {
	r := NewPaymentReconciler()

	split, err := r.Reconcile(d("500"), PaymentInput{Mode: domain.ModeCash})
	require.NoError(t, err)
	assert.Equal(t, domain.ModeCash, split.Mode)
	assert.True(t, split.Cash.Equal(d("500")))
	assert.True(t, split.Online.IsZero())

	// unspecified mode defaults to cash
	split, err = r.Reconcile(d("500"), PaymentInput{})
	require.NoError(t, err)
	assert.Equal(t, domain.ModeCash, split.Mode)
	assert.True(t, split.Cash.Equal(d("500")))
}

func TestReconcileOnline(t *testing.T) {
	r := NewPaymentReconciler()

	split, err := r.Reconcile(d("1200"), PaymentInput{Mode: domain.ModeOnline, UTRReference: "UTR123"})
	require.NoError(t, err)
	assert.Equal(t, domain.ModeOnline, split.Mode)
	assert.True(t, split.Online.Equal(d("1200")))
	assert.Equal(t, "UTR123", split.UTR)

	_, err = r.Reconcile(d("1200"), PaymentInput{Mode: domain.ModeOnline})
	assert.ErrorIs(t, err, domain.ErrMissingUTR)
}

func TestReconcileBoth(t *testing.T) {
	r := NewPaymentReconciler()

	t.Run("exact split", func(t *testing.T) {
		split, err := r.Reconcile(d("500"), PaymentInput{
			Mode:         domain.ModeBoth,
			CashAmount:   d("300"),
			OnlineAmount: d("200"),
			UTRReference: "UTR9",
		})
		require.NoError(t, err)
		assert.True(t, split.Cash.Equal(d("300")))
		assert.True(t, split.Online.Equal(d("200")))
	})

	t.Run("one unit off is accepted", func(t *testing.T) {
		_, err := r.Reconcile(d("500"), PaymentInput{
			Mode:         domain.ModeBoth,
			CashAmount:   d("300"),
			OnlineAmount: d("199"),
			UTRReference: "UTR9",
		})
		assert.NoError(t, err)
	})

	t.Run("mismatch beyond tolerance", func(t *testing.T) {
		_, err := r.Reconcile(d("500"), PaymentInput{
			Mode:         domain.ModeBoth,
			CashAmount:   d("300"),
			OnlineAmount: d("150"),
			UTRReference: "UTR9",
		})
		var mismatch *domain.SplitMismatchError
		require.ErrorAs(t, err, &mismatch)
		assert.Equal(t, "split amounts must sum to ₹500, got ₹450 (cash ₹300 + online ₹150)", err.Error())
	})

	t.Run("missing utr", func(t *testing.T) {
		_, err := r.Reconcile(d("500"), PaymentInput{
			Mode:         domain.ModeBoth,
			CashAmount:   d("300"),
			OnlineAmount: d("200"),
		})
		assert.ErrorIs(t, err, domain.ErrMissingUTR)
	})
}

func TestReconcileUnknownMode(t *testing.T) {
	r := NewPaymentReconciler()

	_, err := r.Reconcile(d("100"), PaymentInput{Mode: "CHEQUE"})
	assert.ErrorIs(t, err, domain.ErrInvalidPaymentMode)
}
