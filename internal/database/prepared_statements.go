package database

import (
	"log"
	"sync"

	"github.com/gocql/gocql"
)

var (
	// Prepared statements pour les requêtes fréquentes du tunnel de commande
	stmtInsertOrder       *gocql.Query
	stmtDeleteOrder       *gocql.Query
	stmtGetOrderByID      *gocql.Query
	stmtGetProductPricing *gocql.Query

	preparedOnce sync.Once
)

// InitPreparedStatements initialise les prepared statements
func InitPreparedStatements() {
	preparedOnce.Do(func() {
		ordersSession, err := GetOrdersSession()
		if err != nil {
			log.Printf("⚠️ Impossible d'initialiser les prepared statements (orders): %v", err)
			return
		}

		// Insertion d'une commande
		stmtInsertOrder = ordersSession.Query(`INSERT INTO orders (order_id, user_id, total, status, payment_method, payment_status, shipping_address, notes, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)

		// Suppression compensatoire d'une commande
		stmtDeleteOrder = ordersSession.Query("DELETE FROM orders WHERE order_id = ?")

		// Lecture d'une commande par ID
		stmtGetOrderByID = ordersSession.Query(`SELECT order_id, user_id, total, status, payment_method, payment_status, shipping_address, notes, created_at, updated_at
			FROM orders WHERE order_id = ?`)

		productsSession, err := GetProductsSession()
		if err != nil {
			log.Printf("⚠️ Impossible d'initialiser les prepared statements (products): %v", err)
			return
		}

		// Vérification prix/stock au moment du checkout
		stmtGetProductPricing = productsSession.Query("SELECT name, price, stock FROM products WHERE product_id = ?")

		log.Println("✅ Prepared statements initialisés")
	})
}

func GetPreparedInsertOrder() *gocql.Query {
	return stmtInsertOrder
}

func GetPreparedDeleteOrder() *gocql.Query {
	return stmtDeleteOrder
}

func GetPreparedGetOrderByID() *gocql.Query {
	return stmtGetOrderByID
}

func GetPreparedGetProductPricing() *gocql.Query {
	return stmtGetProductPricing
}
