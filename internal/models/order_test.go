package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDerivePaymentStatus(t *testing.T) {
	assert.Equal(t, PaymentStatusPending, DerivePaymentStatus(PaymentMethodDelivery))
	assert.Equal(t, PaymentStatusProcessing, DerivePaymentStatus(PaymentMethodWave))
	assert.Equal(t, PaymentStatusProcessing, DerivePaymentStatus(PaymentMethodOrange))
}

func TestValidOrderStatus(t *testing.T) {
	for _, s := range []string{"pending", "confirmed", "processing", "shipped", "delivered", "cancelled"} {
		assert.True(t, ValidOrderStatus(s), s)
	}
	assert.False(t, ValidOrderStatus("expédiée"))
	assert.False(t, ValidOrderStatus(""))
}

func TestValidPaymentStatus(t *testing.T) {
	for _, s := range []string{"pending", "processing", "paid", "failed"} {
		assert.True(t, ValidPaymentStatus(s), s)
	}
	assert.False(t, ValidPaymentStatus("refunded"))
}

func TestPaymentMethodLabel(t *testing.T) {
	assert.Equal(t, "Wave", PaymentMethodLabel(PaymentMethodWave))
	assert.Equal(t, "Orange Money", PaymentMethodLabel(PaymentMethodOrange))
	assert.Equal(t, "Paiement à la livraison", PaymentMethodLabel(PaymentMethodDelivery))
	// Méthode inconnue : renvoyée telle quelle
	assert.Equal(t, "cheque", PaymentMethodLabel("cheque"))
}
