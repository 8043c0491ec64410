package models

import (
	"time"

	"github.com/gocql/gocql"
)

// --- Statuts de commande ---
const (
	OrderStatusPending    = "pending"
	OrderStatusConfirmed  = "confirmed"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// --- Méthodes de paiement ---
const (
	PaymentMethodWave     = "wave"
	PaymentMethodOrange   = "orange"
	PaymentMethodDelivery = "delivery"
)

// --- Statuts de paiement ---
const (
	PaymentStatusPending    = "pending"
	PaymentStatusProcessing = "processing"
	PaymentStatusPaid       = "paid"
	PaymentStatusFailed     = "failed"
)

type ShippingAddress struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	Address    string `json:"address"`
	City       string `json:"city"`
	Region     string `json:"region,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`
}

type Order struct {
	ID              gocql.UUID      `json:"id"`
	UserID          string          `json:"user_id"`
	Total           int64           `json:"total"` // en FCFA (unité entière, pas de centimes)
	Status          string          `json:"status"`
	PaymentMethod   string          `json:"payment_method"`
	PaymentStatus   string          `json:"payment_status"`
	ShippingAddress ShippingAddress `json:"shipping_address"`
	Notes           string          `json:"notes,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	Items           []OrderItem     `json:"order_items,omitempty"`
}

type OrderItem struct {
	ID          gocql.UUID `json:"id"`
	OrderID     gocql.UUID `json:"order_id"`
	ProductID   string     `json:"product_id"`
	ProductName string     `json:"product_name,omitempty"` // enrichi à la lecture
	Quantity    int        `json:"quantity"`
	Price       int64      `json:"price"` // prix unitaire figé à l'achat
}

// DerivePaymentStatus déduit le statut de paiement initial depuis la méthode :
// paiement à la livraison → pending, portefeuille mobile → processing.
func DerivePaymentStatus(method string) string {
	if method == PaymentMethodDelivery {
		return PaymentStatusPending
	}
	return PaymentStatusProcessing
}

// ValidOrderStatus vérifie qu'un statut de commande fait partie de l'énumération.
func ValidOrderStatus(status string) bool {
	switch status {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusProcessing,
		OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// ValidPaymentStatus vérifie qu'un statut de paiement fait partie de l'énumération.
func ValidPaymentStatus(status string) bool {
	switch status {
	case PaymentStatusPending, PaymentStatusProcessing, PaymentStatusPaid, PaymentStatusFailed:
		return true
	}
	return false
}

// PaymentMethodLabel retourne le libellé français affiché sur les reçus.
func PaymentMethodLabel(method string) string {
	switch method {
	case PaymentMethodWave:
		return "Wave"
	case PaymentMethodOrange:
		return "Orange Money"
	case PaymentMethodDelivery:
		return "Paiement à la livraison"
	}
	return method
}

// OrderStatusLabel retourne le libellé français d'un statut de commande.
func OrderStatusLabel(status string) string {
	switch status {
	case OrderStatusPending:
		return "En attente"
	case OrderStatusConfirmed:
		return "Confirmée"
	case OrderStatusProcessing:
		return "En préparation"
	case OrderStatusShipped:
		return "Expédiée"
	case OrderStatusDelivered:
		return "Livrée"
	case OrderStatusCancelled:
		return "Annulée"
	}
	return status
}
