package admin

import (
	"context"
	"errors"
	"log"
	"net/http"
	"sync"
	"time"

	"ndiougueshop_back_end/internal/models"
	"ndiougueshop_back_end/internal/orders"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
)

var (
	store     orders.Store
	storeOnce sync.Once
)

func orderStore() orders.Store {
	storeOnce.Do(func() {
		store = orders.NewScyllaStore()
	})
	return store
}

// GetAllOrders liste toutes les commandes, de la plus récente à la plus ancienne
func GetAllOrders(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	list, err := orderStore().ListAllOrders(ctx)
	if err != nil {
		log.Println("❌ Erreur récupération commandes:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération commandes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": list, "count": len(list)})
}

// UpdateOrderStatus met à jour le statut d'une commande
// PUT /api/admin/orders/:id/status
func UpdateOrderStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides", "details": err.Error()})
		return
	}

	if !models.ValidOrderStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Statut invalide",
			"valid_statuses": []string{
				models.OrderStatusPending, models.OrderStatusConfirmed,
				models.OrderStatusProcessing, models.OrderStatusShipped,
				models.OrderStatusDelivered, models.OrderStatusCancelled,
			},
		})
		return
	}

	updateOrderField(c, func(ctx context.Context, orderID gocql.UUID) error {
		return orderStore().UpdateOrderStatus(ctx, orderID, req.Status)
	}, req.Status)
}

// UpdatePaymentStatus met à jour le statut de paiement d'une commande
// (encaissement Wave/Orange confirmé manuellement, ou règlement à la livraison)
// PUT /api/admin/orders/:id/payment
func UpdatePaymentStatus(c *gin.Context) {
	var req struct {
		PaymentStatus string `json:"payment_status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides", "details": err.Error()})
		return
	}

	if !models.ValidPaymentStatus(req.PaymentStatus) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Statut de paiement invalide",
			"valid_statuses": []string{
				models.PaymentStatusPending, models.PaymentStatusProcessing,
				models.PaymentStatusPaid, models.PaymentStatusFailed,
			},
		})
		return
	}

	updateOrderField(c, func(ctx context.Context, orderID gocql.UUID) error {
		return orderStore().UpdatePaymentStatus(ctx, orderID, req.PaymentStatus)
	}, req.PaymentStatus)
}

func updateOrderField(c *gin.Context, update func(context.Context, gocql.UUID) error, newValue string) {
	orderID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID commande invalide"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := update(ctx, orderID); err != nil {
		if errors.Is(err, orders.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
			return
		}
		log.Printf("❌ Erreur mise à jour commande %s: %v", orderID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour commande"})
		return
	}

	log.Printf("✅ Commande %s mise à jour: %s", orderID, newValue)

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"order_id": orderID.String(),
		"status":   newValue,
	})
}
