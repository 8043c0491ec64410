package utils

import (
	"strings"
	"testing"
	"time"

	"ndiougueshop_back_end/internal/models"

	"github.com/gocql/gocql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatFCFA(t *testing.T) {
	cases := map[int64]string{
		0:       "0 FCFA",
		500:     "500 FCFA",
		3500:    "3 500 FCFA",
		33500:   "33 500 FCFA",
		150000:  "150 000 FCFA",
		1250000: "1 250 000 FCFA",
		-3500:   "-3 500 FCFA",
	}
	for amount, want := range cases {
		assert.Equal(t, want, FormatFCFA(amount))
	}
}

func receiptFixture() (models.Order, []models.OrderItem, models.Profile) {
	orderID, _ := gocql.ParseUUID("3d9aa7a0-0b1e-11f0-8000-000000000001")
	order := models.Order{
		ID:            orderID,
		UserID:        "user-1",
		Total:         33500,
		Status:        models.OrderStatusPending,
		PaymentMethod: models.PaymentMethodDelivery,
		PaymentStatus: models.PaymentStatusPending,
		ShippingAddress: models.ShippingAddress{
			FirstName: "Awa",
			LastName:  "Ndiaye",
		},
		CreatedAt: time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC),
	}
	items := []models.OrderItem{
		{OrderID: orderID, ProductID: "p1", ProductName: "Tissu Wax Traditionnel", Quantity: 2, Price: 15000},
		{OrderID: orderID, ProductID: "p2", ProductName: "Mélange d'Épices Thiéboudienne", Quantity: 1, Price: 3500},
	}
	profile := models.Profile{UserID: "user-1", FirstName: "Awa", LastName: "Ndiaye"}
	return order, items, profile
}

func TestRenderReceiptHTML(t *testing.T) {
	order, items, profile := receiptFixture()

	html, err := RenderReceiptHTML(order, items, profile)
	require.NoError(t, err)

	// Identité de la commande et du client
	assert.Contains(t, html, order.ID.String())
	assert.Contains(t, html, "Awa Ndiaye")
	assert.Contains(t, html, "15/03/2026")

	// Montants français et lignes
	assert.Contains(t, html, "33 500 FCFA")
	assert.Contains(t, html, "15 000 FCFA")
	assert.Contains(t, html, "30 000 FCFA") // total de la ligne 2 × 15 000
	assert.Contains(t, html, "3 500 FCFA")
	assert.Contains(t, html, "Tissu Wax Traditionnel")

	// Libellés français
	assert.Contains(t, html, "Paiement à la livraison")
	assert.Contains(t, html, "En attente")
	assert.Contains(t, html, "NdiougueShop")
	assert.Contains(t, html, "N° de commande")

	// QR code embarqué en data-URI
	assert.Contains(t, html, `src="data:image/png;base64,`)
}

func TestRenderReceiptHTML_Deterministic(t *testing.T) {
	order, items, profile := receiptFixture()

	first, err := RenderReceiptHTML(order, items, profile)
	require.NoError(t, err)
	second, err := RenderReceiptHTML(order, items, profile)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRenderReceiptHTML_FallsBackToShippingName(t *testing.T) {
	order, items, _ := receiptFixture()

	html, err := RenderReceiptHTML(order, items, models.Profile{})
	require.NoError(t, err)

	// Sans profil, le nom vient de l'adresse de livraison
	assert.Contains(t, html, "Awa Ndiaye")
}

func TestGenerateVerificationQR(t *testing.T) {
	qr, err := GenerateVerificationQR("abc-123")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(qr, "data:image/png;base64,"))
}
