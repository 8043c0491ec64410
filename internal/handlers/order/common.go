package order

import (
	"sync"

	"ndiougueshop_back_end/internal/database"
	"ndiougueshop_back_end/internal/orders"
)

var (
	intake     *orders.Service
	store      orders.Store
	intakeOnce sync.Once
)

// intakeService câble le service de commande sur Scylla + Redis.
// Initialisé au premier appel, après la connexion des bases au démarrage.
func intakeService() *orders.Service {
	intakeOnce.Do(func() {
		store = orders.NewScyllaStore()
		intake = orders.NewService(store, orders.NewRedisIdempotency(database.Redis))
	})
	return intake
}

func orderStore() orders.Store {
	intakeService()
	return store
}
