package order

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"ndiougueshop_back_end/internal/models"
	"ndiougueshop_back_end/internal/orders"
	"ndiougueshop_back_end/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
)

// CreateOrder traite une soumission de panier et persiste la commande.
// POST /api/orders
func CreateOrder(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	var req orders.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides", "details": err.Error()})
		return
	}

	if req.PaymentMethod == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Méthode de paiement requise"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	conf, err := intakeService().CreateOrder(ctx, userID, req)
	if err != nil {
		status := orderErrorStatus(err)
		if status == http.StatusInternalServerError {
			log.Printf("❌ Erreur création commande pour user %s: %v", userID, err)
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	// Confirmation par e-mail, au mieux
	go sendConfirmation(conf, req)

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"orderId":       conf.OrderID,
		"total":         conf.Total,
		"paymentMethod": conf.PaymentMethod,
		"message":       conf.Message,
	})
}

func orderErrorStatus(err error) int {
	switch {
	case errors.Is(err, orders.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, orders.ErrEmptyCart),
		errors.Is(err, orders.ErrInvalidQuantity),
		errors.Is(err, orders.ErrProductNotFound),
		errors.Is(err, orders.ErrPriceMismatch),
		errors.Is(err, orders.ErrInsufficientStock):
		return http.StatusBadRequest
	case errors.Is(err, orders.ErrDuplicateSubmission):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func sendConfirmation(conf *orders.Confirmation, req orders.CreateOrderRequest) {
	orderID, err := gocql.ParseUUID(conf.OrderID)
	if err != nil {
		return
	}

	order := models.Order{
		ID:            orderID,
		Total:         conf.Total,
		PaymentMethod: conf.PaymentMethod,
	}

	var items []models.OrderItem
	for _, line := range req.Cart {
		items = append(items, models.OrderItem{
			ProductID:   line.Product.ID,
			ProductName: line.Product.Name,
			Quantity:    line.Quantity,
			Price:       line.Product.Price,
		})
	}

	if err := utils.SendOrderConfirmationEmail(order, items, req.ShippingAddress.Email); err != nil {
		log.Printf("⚠️ Erreur envoi email confirmation pour %s: %v", conf.OrderID, err)
	}
}
