package product

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"ndiougueshop_back_end/internal/database"
	"ndiougueshop_back_end/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"
)

// 🟢 Créer une catégorie
func CreateCategory(c *gin.Context) {
	var cat models.Category
	if err := c.ShouldBindJSON(&cat); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if cat.Name == "" || cat.Slug == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Les champs 'name' et 'slug' sont obligatoires"})
		return
	}

	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	cat.ID = gocql.TimeUUID()
	now := time.Now().UTC()
	cat.CreatedAt = now
	cat.UpdatedAt = now

	if err := session.Query(`INSERT INTO categories (category_id, name, slug, description, image_url, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		cat.ID, cat.Name, cat.Slug, cat.Description, cat.ImageURL, cat.CreatedAt, cat.UpdatedAt).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création catégorie: " + err.Error()})
		return
	}

	invalidateCategoryCache()

	c.JSON(http.StatusOK, cat)
}

// 🔵 Lister les catégories
func GetAllCategories(c *gin.Context) {
	ctx := context.Background()
	cacheKey := "categories:all"

	if val, err := database.RedisClient.Get(ctx, cacheKey).Result(); err == nil && val != "" {
		var cached []models.Category
		if err := json.Unmarshal([]byte(val), &cached); err == nil {
			c.JSON(http.StatusOK, cached)
			return
		}
	}

	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	iter := session.Query("SELECT category_id, name, slug, description, image_url, created_at, updated_at FROM categories").Iter()

	var categories []models.Category
	var cat models.Category
	for iter.Scan(&cat.ID, &cat.Name, &cat.Slug, &cat.Description, &cat.ImageURL, &cat.CreatedAt, &cat.UpdatedAt) {
		categories = append(categories, cat)
		cat = models.Category{}
	}
	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture catégories: " + err.Error()})
		return
	}

	if data, err := json.Marshal(categories); err == nil {
		database.RedisClient.Set(ctx, cacheKey, data, time.Hour)
	}

	c.JSON(http.StatusOK, categories)
}

// 🟠 Mettre à jour une catégorie
func UpdateCategory(c *gin.Context) {
	categoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID catégorie invalide"})
		return
	}

	var cat models.Category
	if err := c.ShouldBindJSON(&cat); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	var existingName string
	if err := session.Query("SELECT name FROM categories WHERE category_id = ?", gocql.UUID(categoryID)).Scan(&existingName); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Catégorie introuvable"})
		return
	}

	now := time.Now().UTC()
	if err := session.Query(`UPDATE categories SET name = ?, slug = ?, description = ?, image_url = ?, updated_at = ? WHERE category_id = ?`,
		cat.Name, cat.Slug, cat.Description, cat.ImageURL, now, gocql.UUID(categoryID)).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour catégorie: " + err.Error()})
		return
	}

	invalidateCategoryCache()

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// 🔴 Supprimer une catégorie
func DeleteCategory(c *gin.Context) {
	categoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID catégorie invalide"})
		return
	}

	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	// Refuser la suppression si des produits y sont encore rattachés
	var productID gocql.UUID
	if err := session.Query("SELECT product_id FROM products_by_category WHERE category_id = ? LIMIT 1",
		gocql.UUID(categoryID)).Scan(&productID); err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "La catégorie contient encore des produits"})
		return
	}

	if err := session.Query("DELETE FROM categories WHERE category_id = ?", gocql.UUID(categoryID)).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur suppression catégorie: " + err.Error()})
		return
	}

	invalidateCategoryCache()

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func invalidateCategoryCache() {
	if err := database.RedisClient.Del(context.Background(), "categories:all").Err(); err != nil {
		log.Printf("⚠️ Invalidation cache catégories impossible: %v", err)
	}
}
