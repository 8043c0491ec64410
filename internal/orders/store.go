package orders

import (
	"context"

	"ndiougueshop_back_end/internal/models"

	"github.com/gocql/gocql"
)

// ProductPricing est l'état autoritaire d'un produit au moment du checkout.
type ProductPricing struct {
	Name  string
	Price int64
	Stock int
}

// Store expose les opérations ligne-à-ligne du magasin de commandes.
// Aucune transaction multi-tables n'est disponible : le protocole d'écriture
// compensatoire du Service repose uniquement sur ces primitives.
type Store interface {
	// Vérification prix/stock côté produits
	GetProductPricing(ctx context.Context, productID string) (ProductPricing, error)

	// Écritures du protocole de création
	InsertOrder(ctx context.Context, order *models.Order) error
	InsertOrderItems(ctx context.Context, items []models.OrderItem) error
	DeleteOrder(ctx context.Context, orderID gocql.UUID) error
	InsertUserOrderIndex(ctx context.Context, order *models.Order) error

	// Lectures
	GetOrder(ctx context.Context, orderID gocql.UUID) (*models.Order, error)
	GetUserOrder(ctx context.Context, orderID gocql.UUID, userID string) (*models.Order, error)
	ListOrderItems(ctx context.Context, orderID gocql.UUID) ([]models.OrderItem, error)
	ListOrdersByUser(ctx context.Context, userID string) ([]models.Order, error)
	ListAllOrders(ctx context.Context) ([]models.Order, error)

	// Transitions pilotées par le back-office
	UpdateOrderStatus(ctx context.Context, orderID gocql.UUID, status string) error
	UpdatePaymentStatus(ctx context.Context, orderID gocql.UUID, paymentStatus string) error
}
