package order

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"ndiougueshop_back_end/internal/database"
	"ndiougueshop_back_end/internal/models"
	"ndiougueshop_back_end/internal/orders"
	"ndiougueshop_back_end/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
)

// GenerateReceipt génère le reçu HTML d'une commande du client connecté.
// POST /api/orders/receipt  {"orderId": "..."}
func GenerateReceipt(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	var req struct {
		OrderID string `json:"orderId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	html, ord, err := buildReceipt(userID, req.OrderID)
	if err != nil {
		receiptError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"receiptHTML": html,
		"orderId":     ord.ID.String(),
	})
}

// DownloadReceiptPDF rend le même reçu en PDF via Chrome headless.
// GET /api/orders/:id/receipt/pdf
func DownloadReceiptPDF(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	html, ord, err := buildReceipt(userID, c.Param("id"))
	if err != nil {
		receiptError(c, err)
		return
	}

	pdf, err := utils.RenderReceiptPDF(html)
	if err != nil {
		log.Println("❌ Erreur rendu PDF:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération PDF"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="recu_%s.pdf"`, ord.ID.String()))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

func buildReceipt(userID, rawOrderID string) (string, *models.Order, error) {
	orderID, err := gocql.ParseUUID(rawOrderID)
	if err != nil {
		return "", nil, orders.ErrOrderNotFound
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	ord, err := orderStore().GetUserOrder(ctx, orderID, userID)
	if err != nil {
		return "", nil, err
	}

	items, err := orderStore().ListOrderItems(ctx, orderID)
	if err != nil {
		return "", nil, err
	}

	// Enrichir les lignes avec le nom actuel du produit
	for i := range items {
		if pricing, err := orderStore().GetProductPricing(ctx, items[i].ProductID); err == nil {
			items[i].ProductName = pricing.Name
		}
	}

	profile := loadProfile(ctx, userID)

	html, err := utils.RenderReceiptHTML(*ord, items, profile)
	if err != nil {
		return "", nil, err
	}
	return html, ord, nil
}

// loadProfile récupère le profil client pour le nom sur le reçu.
// Un profil absent n'est pas bloquant, l'adresse de livraison fait foi.
func loadProfile(ctx context.Context, userID string) models.Profile {
	profile := models.Profile{UserID: userID}

	session, err := database.GetUsersSession()
	if err != nil {
		return profile
	}

	if err := session.Query("SELECT first_name, last_name FROM profiles WHERE user_id = ?", userID).
		WithContext(ctx).Scan(&profile.FirstName, &profile.LastName); err != nil {
		log.Printf("⚠️ Profil introuvable pour user %s: %v", userID, err)
	}
	return profile
}

func receiptError(c *gin.Context, err error) {
	if errors.Is(err, orders.ErrOrderNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		return
	}
	log.Println("❌ Erreur génération reçu:", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération reçu"})
}
