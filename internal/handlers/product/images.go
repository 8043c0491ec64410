package product

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"

	"ndiougueshop_back_end/internal/database"
	"ndiougueshop_back_end/internal/services"
)

// =========================
// 🟢 UPLOAD IMAGE PRODUIT
// =========================
func UploadProductImage(c *gin.Context) {
	ctx := context.Background()

	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	// 1️⃣ Récupérer le fichier
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Fichier manquant"})
		return
	}
	defer file.Close()

	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	var categoryID gocql.UUID
	if err := session.Query("SELECT category_id FROM products WHERE product_id = ?", gocql.UUID(productID)).Scan(&categoryID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	// 2️⃣ Upload vers MinIO
	objectName, err := services.UploadImage(ctx, "products", file, header)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur upload MinIO: " + err.Error()})
		return
	}

	// 3️⃣ Rattacher l'image au produit et à son index
	if err := session.Query("UPDATE products SET image_url = ?, updated_at = ? WHERE product_id = ?",
		objectName, time.Now().UTC(), gocql.UUID(productID)).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour produit"})
		return
	}
	session.Query("UPDATE products_by_category SET image_url = ? WHERE category_id = ? AND product_id = ?",
		objectName, categoryID, gocql.UUID(productID)).Exec()

	invalidateProductCache()

	c.JSON(http.StatusOK, gin.H{
		"message":   "✅ Image uploadée avec succès",
		"image_url": objectName,
	})
}

// GetProductImageURL retourne une URL signée temporaire pour l'image d'un produit
func GetProductImageURL(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	var imageURL string
	if err := session.Query("SELECT image_url FROM products WHERE product_id = ?", gocql.UUID(productID)).Scan(&imageURL); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}
	if imageURL == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "Aucune image pour ce produit"})
		return
	}

	signedURL, err := services.GenerateSignedURL(context.Background(), imageURL, 24*time.Hour)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération URL signée"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": signedURL})
}
