package orders

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"time"

	"ndiougueshop_back_end/internal/database"
	"ndiougueshop_back_end/internal/models"

	"github.com/gocql/gocql"
	"github.com/google/uuid"
)

// ScyllaStore implémente Store au-dessus des keyspaces products et orders.
// L'adresse de livraison est dénormalisée en JSON dans la ligne de commande.
type ScyllaStore struct{}

func NewScyllaStore() *ScyllaStore {
	return &ScyllaStore{}
}

const (
	insertOrderCQL = `INSERT INTO orders (order_id, user_id, total, status, payment_method, payment_status, shipping_address, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	selectOrderCQL = `SELECT order_id, user_id, total, status, payment_method, payment_status, shipping_address, notes, created_at, updated_at
		FROM orders WHERE order_id = ?`
)

func (st *ScyllaStore) GetProductPricing(ctx context.Context, productID string) (ProductPricing, error) {
	var pricing ProductPricing

	id, err := uuid.Parse(productID)
	if err != nil {
		return pricing, fmt.Errorf("id produit invalide: %s", productID)
	}

	if q := database.GetPreparedGetProductPricing(); q != nil {
		err = q.WithContext(ctx).Bind(gocql.UUID(id)).Scan(&pricing.Name, &pricing.Price, &pricing.Stock)
		return pricing, err
	}

	session, err := database.GetProductsSession()
	if err != nil {
		return pricing, err
	}
	err = session.Query("SELECT name, price, stock FROM products WHERE product_id = ?", gocql.UUID(id)).
		WithContext(ctx).Scan(&pricing.Name, &pricing.Price, &pricing.Stock)
	return pricing, err
}

func (st *ScyllaStore) InsertOrder(ctx context.Context, order *models.Order) error {
	addrJSON, err := json.Marshal(order.ShippingAddress)
	if err != nil {
		return err
	}

	if q := database.GetPreparedInsertOrder(); q != nil {
		return q.WithContext(ctx).Bind(order.ID, order.UserID, order.Total, order.Status,
			order.PaymentMethod, order.PaymentStatus, string(addrJSON), order.Notes,
			order.CreatedAt, order.UpdatedAt).Exec()
	}

	session, err := database.GetOrdersSession()
	if err != nil {
		return err
	}
	return session.Query(insertOrderCQL, order.ID, order.UserID, order.Total, order.Status,
		order.PaymentMethod, order.PaymentStatus, string(addrJSON), order.Notes,
		order.CreatedAt, order.UpdatedAt).WithContext(ctx).Exec()
}

// InsertOrderItems écrit toutes les lignes en un seul batch. Les lignes
// partagent la même partition (order_id), le batch est donc appliqué
// atomiquement côté serveur.
func (st *ScyllaStore) InsertOrderItems(ctx context.Context, items []models.OrderItem) error {
	session, err := database.GetOrdersSession()
	if err != nil {
		return err
	}

	batch := session.NewBatch(gocql.UnloggedBatch).WithContext(ctx)
	for _, item := range items {
		batch.Query(`INSERT INTO order_items (order_id, item_id, product_id, quantity, price) VALUES (?, ?, ?, ?, ?)`,
			item.OrderID, item.ID, item.ProductID, item.Quantity, item.Price)
	}
	return session.ExecuteBatch(batch)
}

func (st *ScyllaStore) DeleteOrder(ctx context.Context, orderID gocql.UUID) error {
	if q := database.GetPreparedDeleteOrder(); q != nil {
		return q.WithContext(ctx).Bind(orderID).Exec()
	}

	session, err := database.GetOrdersSession()
	if err != nil {
		return err
	}
	return session.Query("DELETE FROM orders WHERE order_id = ?", orderID).WithContext(ctx).Exec()
}

func (st *ScyllaStore) InsertUserOrderIndex(ctx context.Context, order *models.Order) error {
	session, err := database.GetOrdersSession()
	if err != nil {
		return err
	}
	return session.Query(`INSERT INTO orders_by_user (user_id, order_id, total, status, payment_method, payment_status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		order.UserID, order.ID, order.Total, order.Status, order.PaymentMethod,
		order.PaymentStatus, order.CreatedAt).WithContext(ctx).Exec()
}

func (st *ScyllaStore) GetOrder(ctx context.Context, orderID gocql.UUID) (*models.Order, error) {
	var o models.Order
	var addrJSON string

	scan := func(q *gocql.Query) error {
		return q.Scan(&o.ID, &o.UserID, &o.Total, &o.Status, &o.PaymentMethod,
			&o.PaymentStatus, &addrJSON, &o.Notes, &o.CreatedAt, &o.UpdatedAt)
	}

	var err error
	if q := database.GetPreparedGetOrderByID(); q != nil {
		err = scan(q.WithContext(ctx).Bind(orderID))
	} else {
		session, serr := database.GetOrdersSession()
		if serr != nil {
			return nil, serr
		}
		err = scan(session.Query(selectOrderCQL, orderID).WithContext(ctx))
	}
	if err != nil {
		if err == gocql.ErrNotFound {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	if addrJSON != "" {
		if err := json.Unmarshal([]byte(addrJSON), &o.ShippingAddress); err != nil {
			log.Printf("⚠️ Adresse illisible pour la commande %s: %v", o.ID, err)
		}
	}
	return &o, nil
}

// GetUserOrder est la variante restreinte au propriétaire : une commande
// d'un autre utilisateur est indistinguable d'une commande absente.
func (st *ScyllaStore) GetUserOrder(ctx context.Context, orderID gocql.UUID, userID string) (*models.Order, error) {
	order, err := st.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

func (st *ScyllaStore) ListOrderItems(ctx context.Context, orderID gocql.UUID) ([]models.OrderItem, error) {
	session, err := database.GetOrdersSession()
	if err != nil {
		return nil, err
	}

	iter := session.Query(`SELECT order_id, item_id, product_id, quantity, price FROM order_items WHERE order_id = ?`, orderID).
		WithContext(ctx).Iter()

	var items []models.OrderItem
	var it models.OrderItem
	for iter.Scan(&it.OrderID, &it.ID, &it.ProductID, &it.Quantity, &it.Price) {
		items = append(items, it)
		it = models.OrderItem{}
	}
	if err := iter.Close(); err != nil {
		return nil, err
	}
	return items, nil
}

// ListOrdersByUser lit l'index orders_by_user (clustering order_id DESC,
// soit du plus récent au plus ancien puisque order_id est un timeuuid).
func (st *ScyllaStore) ListOrdersByUser(ctx context.Context, userID string) ([]models.Order, error) {
	session, err := database.GetOrdersSession()
	if err != nil {
		return nil, err
	}

	iter := session.Query(`SELECT order_id, total, status, payment_method, payment_status, created_at
		FROM orders_by_user WHERE user_id = ?`, userID).WithContext(ctx).Iter()

	var orders []models.Order
	var o models.Order
	for iter.Scan(&o.ID, &o.Total, &o.Status, &o.PaymentMethod, &o.PaymentStatus, &o.CreatedAt) {
		o.UserID = userID
		orders = append(orders, o)
		o = models.Order{}
	}
	if err := iter.Close(); err != nil {
		return nil, err
	}
	return orders, nil
}

// ListAllOrders scanne la table orders (back-office uniquement).
func (st *ScyllaStore) ListAllOrders(ctx context.Context) ([]models.Order, error) {
	session, err := database.GetOrdersSession()
	if err != nil {
		return nil, err
	}

	iter := session.Query(`SELECT order_id, user_id, total, status, payment_method, payment_status, shipping_address, notes, created_at, updated_at FROM orders`).
		WithContext(ctx).Iter()

	var orders []models.Order
	var o models.Order
	var addrJSON string
	for iter.Scan(&o.ID, &o.UserID, &o.Total, &o.Status, &o.PaymentMethod, &o.PaymentStatus, &addrJSON, &o.Notes, &o.CreatedAt, &o.UpdatedAt) {
		if addrJSON != "" {
			if err := json.Unmarshal([]byte(addrJSON), &o.ShippingAddress); err != nil {
				log.Printf("⚠️ Adresse illisible pour la commande %s: %v", o.ID, err)
			}
		}
		orders = append(orders, o)
		o = models.Order{}
		addrJSON = ""
	}
	if err := iter.Close(); err != nil {
		return nil, err
	}

	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	return orders, nil
}

func (st *ScyllaStore) UpdateOrderStatus(ctx context.Context, orderID gocql.UUID, status string) error {
	return st.updateOrderField(ctx, orderID, "status", status)
}

func (st *ScyllaStore) UpdatePaymentStatus(ctx context.Context, orderID gocql.UUID, paymentStatus string) error {
	return st.updateOrderField(ctx, orderID, "payment_status", paymentStatus)
}

func (st *ScyllaStore) updateOrderField(ctx context.Context, orderID gocql.UUID, column, value string) error {
	session, err := database.GetOrdersSession()
	if err != nil {
		return err
	}

	// Vérifier que la commande existe et récupérer le user_id pour l'index
	var userID string
	if err := session.Query("SELECT user_id FROM orders WHERE order_id = ?", orderID).
		WithContext(ctx).Scan(&userID); err != nil {
		if err == gocql.ErrNotFound {
			return ErrOrderNotFound
		}
		return err
	}

	now := time.Now().UTC()
	if err := session.Query(fmt.Sprintf("UPDATE orders SET %s = ?, updated_at = ? WHERE order_id = ?", column),
		value, now, orderID).WithContext(ctx).Exec(); err != nil {
		return err
	}

	// Mise à jour de l'index, au mieux
	if err := session.Query(fmt.Sprintf("UPDATE orders_by_user SET %s = ? WHERE user_id = ? AND order_id = ?", column),
		value, userID, orderID).WithContext(ctx).Exec(); err != nil {
		log.Printf("⚠️ Erreur mise à jour orders_by_user: %v", err)
	}
	return nil
}
