package order

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"ndiougueshop_back_end/internal/orders"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
)

// GetMyOrders récupère toutes les commandes de l'utilisateur connecté
func GetMyOrders(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	list, err := orderStore().ListOrdersByUser(ctx, userID)
	if err != nil {
		log.Println("❌ Erreur récupération commandes:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération commandes"})
		return
	}

	log.Printf("✅ %d commandes trouvées pour user %s", len(list), userID)

	c.JSON(http.StatusOK, gin.H{"orders": list})
}

// GetOrderByID récupère une commande spécifique, avec ses lignes
func GetOrderByID(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	orderID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID commande invalide"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// ✅ Sécurité : on vérifie que la commande appartient bien à l'utilisateur
	ord, err := orderStore().GetUserOrder(ctx, orderID, userID)
	if err != nil {
		if errors.Is(err, orders.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
			return
		}
		log.Println("❌ Erreur lecture commande:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture commande"})
		return
	}

	items, err := orderStore().ListOrderItems(ctx, orderID)
	if err != nil {
		log.Println("⚠️ Erreur lecture lignes de commande:", err)
	}
	ord.Items = items

	c.JSON(http.StatusOK, ord)
}

// VerifyOrder est l'endpoint public ciblé par le QR code des reçus.
// GET /api/orders/:id/verify
func VerifyOrder(c *gin.Context) {
	orderID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID commande invalide"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	ord, err := orderStore().GetOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, orders.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur vérification commande"})
		return
	}

	// Payload minimal : assez pour authentifier un reçu, rien de personnel
	c.JSON(http.StatusOK, gin.H{
		"orderId":    ord.ID.String(),
		"status":     ord.Status,
		"total":      ord.Total,
		"created_at": ord.CreatedAt,
	})
}
