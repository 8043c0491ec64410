package orders

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"ndiougueshop_back_end/internal/models"

	"github.com/gocql/gocql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockStore implémente Store en mémoire, avec injection de pannes
type mockStore struct {
	pricing map[string]ProductPricing

	failInsertOrder bool
	failInsertItems bool
	failDelete      bool
	failIndex       bool

	orders map[gocql.UUID]*models.Order
	items  map[gocql.UUID][]models.OrderItem
	index  map[string][]models.Order

	insertOrderCalls int
	insertItemCalls  int
	deleteCalls      int
	deletedOrderIDs  []gocql.UUID
}

func newMockStore() *mockStore {
	return &mockStore{
		pricing: map[string]ProductPricing{
			"p1": {Name: "Tissu Wax Traditionnel", Price: 15000, Stock: 25},
			"p2": {Name: "Mélange d'Épices Thiéboudienne", Price: 3500, Stock: 50},
		},
		orders: make(map[gocql.UUID]*models.Order),
		items:  make(map[gocql.UUID][]models.OrderItem),
		index:  make(map[string][]models.Order),
	}
}

func (m *mockStore) GetProductPricing(_ context.Context, productID string) (ProductPricing, error) {
	p, ok := m.pricing[productID]
	if !ok {
		return ProductPricing{}, gocql.ErrNotFound
	}
	return p, nil
}

func (m *mockStore) InsertOrder(_ context.Context, order *models.Order) error {
	m.insertOrderCalls++
	if m.failInsertOrder {
		return errors.New("write timeout")
	}
	cp := *order
	m.orders[order.ID] = &cp
	return nil
}

func (m *mockStore) InsertOrderItems(_ context.Context, items []models.OrderItem) error {
	m.insertItemCalls++
	if m.failInsertItems {
		return errors.New("batch failed")
	}
	m.items[items[0].OrderID] = items
	return nil
}

func (m *mockStore) DeleteOrder(_ context.Context, orderID gocql.UUID) error {
	m.deleteCalls++
	if m.failDelete {
		return errors.New("delete failed")
	}
	m.deletedOrderIDs = append(m.deletedOrderIDs, orderID)
	delete(m.orders, orderID)
	delete(m.items, orderID)
	return nil
}

func (m *mockStore) InsertUserOrderIndex(_ context.Context, order *models.Order) error {
	if m.failIndex {
		return errors.New("index failed")
	}
	m.index[order.UserID] = append(m.index[order.UserID], *order)
	return nil
}

func (m *mockStore) GetOrder(_ context.Context, orderID gocql.UUID) (*models.Order, error) {
	o, ok := m.orders[orderID]
	if !ok {
		return nil, ErrOrderNotFound
	}
	return o, nil
}

func (m *mockStore) GetUserOrder(ctx context.Context, orderID gocql.UUID, userID string) (*models.Order, error) {
	o, err := m.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.UserID != userID {
		return nil, ErrOrderNotFound
	}
	return o, nil
}

func (m *mockStore) ListOrderItems(_ context.Context, orderID gocql.UUID) ([]models.OrderItem, error) {
	return m.items[orderID], nil
}

func (m *mockStore) ListOrdersByUser(_ context.Context, userID string) ([]models.Order, error) {
	return m.index[userID], nil
}

func (m *mockStore) ListAllOrders(_ context.Context) ([]models.Order, error) {
	var all []models.Order
	for _, o := range m.orders {
		all = append(all, *o)
	}
	return all, nil
}

func (m *mockStore) UpdateOrderStatus(_ context.Context, orderID gocql.UUID, status string) error {
	o, ok := m.orders[orderID]
	if !ok {
		return ErrOrderNotFound
	}
	o.Status = status
	return nil
}

func (m *mockStore) UpdatePaymentStatus(_ context.Context, orderID gocql.UUID, paymentStatus string) error {
	o, ok := m.orders[orderID]
	if !ok {
		return ErrOrderNotFound
	}
	o.PaymentStatus = paymentStatus
	return nil
}

// mockGuard implémente IdempotencyGuard en mémoire
type mockGuard struct {
	committed map[string]*Confirmation
	reserved  map[string]bool
}

func newMockGuard() *mockGuard {
	return &mockGuard{
		committed: make(map[string]*Confirmation),
		reserved:  make(map[string]bool),
	}
}

func (g *mockGuard) Begin(_ context.Context, userID, key string) (*Confirmation, bool, error) {
	k := userID + ":" + key
	if conf, ok := g.committed[k]; ok {
		return conf, false, nil
	}
	if g.reserved[k] {
		return nil, false, nil
	}
	g.reserved[k] = true
	return nil, true, nil
}

func (g *mockGuard) Commit(_ context.Context, userID, key string, conf *Confirmation) {
	g.committed[userID+":"+key] = conf
}

func (g *mockGuard) Cancel(_ context.Context, userID, key string) {
	delete(g.reserved, userID+":"+key)
}

func validRequest() CreateOrderRequest {
	return CreateOrderRequest{
		Cart: []models.CartLine{
			{Product: models.CartProduct{ID: "p1", Name: "Tissu Wax Traditionnel", Price: 15000}, Quantity: 2},
			{Product: models.CartProduct{ID: "p2", Name: "Mélange d'Épices Thiéboudienne", Price: 3500}, Quantity: 1},
		},
		ShippingAddress: models.ShippingAddress{
			FirstName: "Awa",
			LastName:  "Ndiaye",
			Phone:     "+221771234567",
			Email:     "awa@example.sn",
			Address:   "Cité Keur Gorgui",
			City:      "Dakar",
		},
		PaymentMethod: models.PaymentMethodDelivery,
	}
}

func TestCreateOrder_Success(t *testing.T) {
	store := newMockStore()
	svc := NewService(store, nil)

	conf, err := svc.CreateOrder(context.Background(), "user-1", validRequest())

	require.NoError(t, err)
	require.NotNil(t, conf)
	assert.Equal(t, int64(33500), conf.Total)
	assert.Equal(t, models.PaymentMethodDelivery, conf.PaymentMethod)
	assert.Equal(t, "Commande créée avec succès. Paiement à la livraison.", conf.Message)

	// Une seule commande persistée, avec ses deux lignes exactes
	require.Len(t, store.orders, 1)
	orderID, err := gocql.ParseUUID(conf.OrderID)
	require.NoError(t, err)

	order := store.orders[orderID]
	assert.Equal(t, "user-1", order.UserID)
	assert.Equal(t, int64(33500), order.Total)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, models.PaymentStatusPending, order.PaymentStatus)

	items := store.items[orderID]
	require.Len(t, items, 2)
	assert.Equal(t, "p1", items[0].ProductID)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, int64(15000), items[0].Price)
	assert.Equal(t, "p2", items[1].ProductID)
	assert.Equal(t, 1, items[1].Quantity)
	assert.Equal(t, int64(3500), items[1].Price)

	// total == Σ prix·quantité des lignes persistées
	var sum int64
	for _, it := range items {
		sum += it.Price * int64(it.Quantity)
	}
	assert.Equal(t, order.Total, sum)

	// L'index "mes commandes" est peuplé après le succès
	assert.Len(t, store.index["user-1"], 1)
}

func TestCreateOrder_MobileWalletPaymentStatus(t *testing.T) {
	for _, method := range []string{models.PaymentMethodWave, models.PaymentMethodOrange} {
		t.Run(method, func(t *testing.T) {
			store := newMockStore()
			svc := NewService(store, nil)

			req := validRequest()
			req.PaymentMethod = method

			conf, err := svc.CreateOrder(context.Background(), "user-1", req)
			require.NoError(t, err)

			orderID, _ := gocql.ParseUUID(conf.OrderID)
			assert.Equal(t, models.PaymentStatusProcessing, store.orders[orderID].PaymentStatus)
			assert.Equal(t, fmt.Sprintf("Commande créée avec succès. Procédez au paiement via %s.", method), conf.Message)
		})
	}
}

func TestCreateOrder_EmptyCart(t *testing.T) {
	store := newMockStore()
	svc := NewService(store, nil)

	req := validRequest()
	req.Cart = nil

	conf, err := svc.CreateOrder(context.Background(), "user-1", req)

	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Nil(t, conf)
	// Aucune écriture
	assert.Zero(t, store.insertOrderCalls)
	assert.Zero(t, store.insertItemCalls)
}

func TestCreateOrder_Unauthenticated(t *testing.T) {
	store := newMockStore()
	svc := NewService(store, nil)

	conf, err := svc.CreateOrder(context.Background(), "", validRequest())

	assert.ErrorIs(t, err, ErrUnauthenticated)
	assert.Nil(t, conf)
	assert.Zero(t, store.insertOrderCalls)
}

func TestCreateOrder_InvalidQuantity(t *testing.T) {
	store := newMockStore()
	svc := NewService(store, nil)

	req := validRequest()
	req.Cart[0].Quantity = 0

	_, err := svc.CreateOrder(context.Background(), "user-1", req)

	assert.ErrorIs(t, err, ErrInvalidQuantity)
	assert.Zero(t, store.insertOrderCalls)
}

func TestCreateOrder_UnknownProduct(t *testing.T) {
	store := newMockStore()
	svc := NewService(store, nil)

	req := validRequest()
	req.Cart[0].Product.ID = "inconnu"

	_, err := svc.CreateOrder(context.Background(), "user-1", req)

	assert.ErrorIs(t, err, ErrProductNotFound)
	assert.Zero(t, store.insertOrderCalls)
}

func TestCreateOrder_PriceMismatch(t *testing.T) {
	store := newMockStore()
	svc := NewService(store, nil)

	// Le client soumet un prix périmé
	req := validRequest()
	req.Cart[0].Product.Price = 12000

	_, err := svc.CreateOrder(context.Background(), "user-1", req)

	assert.ErrorIs(t, err, ErrPriceMismatch)
	assert.Zero(t, store.insertOrderCalls)
}

func TestCreateOrder_InsufficientStock(t *testing.T) {
	store := newMockStore()
	svc := NewService(store, nil)

	req := validRequest()
	req.Cart[0].Quantity = 26 // stock p1 = 25

	_, err := svc.CreateOrder(context.Background(), "user-1", req)

	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.Zero(t, store.insertOrderCalls)
}

func TestCreateOrder_OrderInsertFailure(t *testing.T) {
	store := newMockStore()
	store.failInsertOrder = true
	svc := NewService(store, nil)

	conf, err := svc.CreateOrder(context.Background(), "user-1", validRequest())

	assert.ErrorIs(t, err, ErrOrderPersistence)
	assert.Nil(t, conf)
	// Pas de compensation nécessaire : rien n'a été écrit
	assert.Zero(t, store.deleteCalls)
	assert.Zero(t, store.insertItemCalls)
}

func TestCreateOrder_ItemInsertFailureRollsBackOrder(t *testing.T) {
	store := newMockStore()
	store.failInsertItems = true
	svc := NewService(store, nil)

	conf, err := svc.CreateOrder(context.Background(), "user-1", validRequest())

	assert.ErrorIs(t, err, ErrOrderItemPersistence)
	assert.Nil(t, conf)

	// La commande créée dans le même appel a été supprimée
	require.Equal(t, 1, store.deleteCalls)
	require.Len(t, store.deletedOrderIDs, 1)
	assert.Empty(t, store.orders)
	assert.Empty(t, store.items)

	// Et elle n'apparaît dans aucun listing
	assert.Empty(t, store.index["user-1"])

	// Une relecture de cet ID retourne introuvable
	_, getErr := store.GetOrder(context.Background(), store.deletedOrderIDs[0])
	assert.ErrorIs(t, getErr, ErrOrderNotFound)
}

func TestCreateOrder_RollbackFailureKeepsItemError(t *testing.T) {
	store := newMockStore()
	store.failInsertItems = true
	store.failDelete = true
	svc := NewService(store, nil)

	_, err := svc.CreateOrder(context.Background(), "user-1", validRequest())

	// L'échec de la compensation ne change pas l'erreur rapportée
	assert.ErrorIs(t, err, ErrOrderItemPersistence)
	assert.Equal(t, 1, store.deleteCalls)
	// La commande orpheline reste visible (limite connue sans vraie transaction)
	assert.Len(t, store.orders, 1)
}

func TestCreateOrder_IdempotentReplay(t *testing.T) {
	store := newMockStore()
	guard := newMockGuard()
	svc := NewService(store, guard)

	req := validRequest()
	req.IdempotencyKey = "clic-1"

	first, err := svc.CreateOrder(context.Background(), "user-1", req)
	require.NoError(t, err)

	second, err := svc.CreateOrder(context.Background(), "user-1", req)
	require.NoError(t, err)

	// Le rejeu retourne le résultat enregistré, sans nouvelle écriture
	assert.Equal(t, first.OrderID, second.OrderID)
	assert.Equal(t, first.Total, second.Total)
	assert.Equal(t, 1, store.insertOrderCalls)
	assert.Len(t, store.orders, 1)
}

func TestCreateOrder_DuplicateInFlight(t *testing.T) {
	store := newMockStore()
	guard := newMockGuard()
	svc := NewService(store, guard)

	req := validRequest()
	req.IdempotencyKey = "clic-2"

	// Simule une première soumission encore en vol
	_, fresh, err := guard.Begin(context.Background(), "user-1", "clic-2")
	require.NoError(t, err)
	require.True(t, fresh)

	_, err = svc.CreateOrder(context.Background(), "user-1", req)

	assert.ErrorIs(t, err, ErrDuplicateSubmission)
	assert.Zero(t, store.insertOrderCalls)
}

func TestCreateOrder_FailureReleasesIdempotencyKey(t *testing.T) {
	store := newMockStore()
	store.failInsertItems = true
	guard := newMockGuard()
	svc := NewService(store, guard)

	req := validRequest()
	req.IdempotencyKey = "clic-3"

	_, err := svc.CreateOrder(context.Background(), "user-1", req)
	require.ErrorIs(t, err, ErrOrderItemPersistence)

	// La clé est libérée : la resoumission crée une nouvelle commande
	store.failInsertItems = false
	conf, err := svc.CreateOrder(context.Background(), "user-1", req)
	require.NoError(t, err)
	assert.NotNil(t, conf)
	assert.Len(t, store.orders, 1)
}

func TestCreateOrder_IndexFailureDoesNotFailOrder(t *testing.T) {
	store := newMockStore()
	store.failIndex = true
	svc := NewService(store, nil)

	conf, err := svc.CreateOrder(context.Background(), "user-1", validRequest())

	// L'index est au mieux : la commande aboutit quand même
	require.NoError(t, err)
	assert.NotNil(t, conf)
	assert.Len(t, store.orders, 1)
}
