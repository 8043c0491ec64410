package product

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"

	"ndiougueshop_back_end/internal/database"
	"ndiougueshop_back_end/internal/models"
	"ndiougueshop_back_end/internal/services"
)

const productColumns = "product_id, name, description, price, stock, category_id, image_url, featured, status, created_at, updated_at"

func scanProducts(iter *gocql.Iter) ([]models.Product, error) {
	var products []models.Product
	var p models.Product

	for iter.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock, &p.CategoryID,
		&p.ImageURL, &p.Featured, &p.Status, &p.CreatedAt, &p.UpdatedAt) {
		products = append(products, p)
		p = models.Product{} // Reset pour la prochaine itération
	}
	return products, iter.Close()
}

// GetAllProducts liste les produits actifs de la boutique (avec cache Redis)
func GetAllProducts(c *gin.Context) {
	ctx := context.Background()
	cacheKey := "products:active"

	// ✅ Vérifie le cache Redis
	if val, err := database.RedisClient.Get(ctx, cacheKey).Result(); err == nil && val != "" {
		var cached []models.Product
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

	iter := session.Query("SELECT " + productColumns + " FROM products").Iter()
	all, err := scanProducts(iter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture produits: " + err.Error()})
		return
	}

	// Seuls les produits actifs sont visibles côté boutique
	products := make([]models.Product, 0, len(all))
	for _, p := range all {
		if p.Status == models.ProductStatusActive {
			products = append(products, p)
		}
	}

	// ✅ Met en cache
	if data, err := json.Marshal(products); err == nil {
		database.RedisClient.Set(ctx, cacheKey, data, time.Hour)
	}

	c.JSON(http.StatusOK, products)
}

// GetAllProductsAdmin liste tous les produits, brouillons et inactifs compris
func GetAllProductsAdmin(c *gin.Context) {
	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	iter := session.Query("SELECT " + productColumns + " FROM products").Iter()
	products, err := scanProducts(iter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture produits: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, products)
}

// GetProductByID récupère un produit par son ID
func GetProductByID(c *gin.Context) {
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

	var p models.Product
	if err := session.Query("SELECT "+productColumns+" FROM products WHERE product_id = ?", gocql.UUID(productID)).
		Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock, &p.CategoryID,
			&p.ImageURL, &p.Featured, &p.Status, &p.CreatedAt, &p.UpdatedAt); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	c.JSON(http.StatusOK, p)
}

// GetProductsByCategory liste les produits d'une catégorie via la table d'index
func GetProductsByCategory(c *gin.Context) {
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

	iter := session.Query(`SELECT product_id, name, price, stock, image_url, featured, status
		FROM products_by_category WHERE category_id = ?`, gocql.UUID(categoryID)).Iter()

	var products []models.Product
	var p models.Product
	for iter.Scan(&p.ID, &p.Name, &p.Price, &p.Stock, &p.ImageURL, &p.Featured, &p.Status) {
		p.CategoryID = gocql.UUID(categoryID)
		if p.Status == models.ProductStatusActive {
			products = append(products, p)
		}
		p = models.Product{}
	}
	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture produits: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, products)
}

// SearchProducts recherche dans Elasticsearch, avec repli sur ScyllaDB
func SearchProducts(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "paramètre 'q' manquant"})
		return
	}

	// 🔎 1️⃣ Recherche dans Elasticsearch (prioritaire)
	results, err := services.SearchProducts(query)
	if err == nil && len(results) > 0 {
		c.JSON(http.StatusOK, results)
		return
	}

	// 🔁 2️⃣ Fallback ScyllaDB si ES vide (scan complet - non optimal pour production)
	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	iter := session.Query("SELECT " + productColumns + " FROM products").Iter()
	all, err := scanProducts(iter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur recherche produits"})
		return
	}

	term := strings.ToLower(query)
	var matches []models.Product
	for _, p := range all {
		if p.Status != models.ProductStatusActive {
			continue
		}
		if strings.Contains(strings.ToLower(p.Name), term) ||
			strings.Contains(strings.ToLower(p.Description), term) {
			matches = append(matches, p)
		}
	}

	c.JSON(http.StatusOK, matches)
}

// CreateProduct crée un produit (back-office)
func CreateProduct(c *gin.Context) {
	var p models.Product

	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if p.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Le champ 'name' est obligatoire"})
		return
	}
	if p.Price < 0 || p.Stock < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Prix et stock doivent être positifs"})
		return
	}
	if p.CategoryID == (gocql.UUID{}) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Le champ 'category_id' est obligatoire"})
		return
	}
	if p.Status == "" {
		p.Status = models.ProductStatusActive
	}
	if !models.ValidProductStatus(p.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Statut produit invalide"})
		return
	}

	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	// ✅ Vérifie que la catégorie existe
	var categoryName string
	if err := session.Query("SELECT name FROM categories WHERE category_id = ?", p.CategoryID).Scan(&categoryName); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Catégorie introuvable"})
		return
	}

	p.ID = gocql.TimeUUID()
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	if err := session.Query(`INSERT INTO products (`+productColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Description, p.Price, p.Stock, p.CategoryID, p.ImageURL,
		p.Featured, p.Status, p.CreatedAt, p.UpdatedAt).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création produit: " + err.Error()})
		return
	}

	// ✅ Indexe aussi dans products_by_category pour les requêtes par catégorie
	if err := session.Query(`INSERT INTO products_by_category (category_id, product_id, name, price, stock, image_url, featured, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.CategoryID, p.ID, p.Name, p.Price, p.Stock, p.ImageURL, p.Featured, p.Status).Exec(); err != nil {
		// Log l'erreur mais ne bloque pas la création
		log.Printf("⚠️ Erreur indexation products_by_category: %v", err)
	}

	// 🔄 Indexation Elasticsearch
	go services.IndexProduct(p)

	invalidateProductCache()

	c.JSON(http.StatusOK, p)
}

// UpdateProduct met à jour un produit (back-office)
func UpdateProduct(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	var p models.Product
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if p.Status != "" && !models.ValidProductStatus(p.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Statut produit invalide"})
		return
	}

	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	// Récupérer l'existant pour conserver la catégorie et maintenir l'index
	var existing models.Product
	if err := session.Query("SELECT "+productColumns+" FROM products WHERE product_id = ?", gocql.UUID(productID)).
		Scan(&existing.ID, &existing.Name, &existing.Description, &existing.Price, &existing.Stock,
			&existing.CategoryID, &existing.ImageURL, &existing.Featured, &existing.Status,
			&existing.CreatedAt, &existing.UpdatedAt); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	p.ID = existing.ID
	p.CreatedAt = existing.CreatedAt
	p.UpdatedAt = time.Now().UTC()
	if p.CategoryID == (gocql.UUID{}) {
		p.CategoryID = existing.CategoryID
	}
	if p.Status == "" {
		p.Status = existing.Status
	}

	if err := session.Query(`UPDATE products SET name = ?, description = ?, price = ?, stock = ?, category_id = ?, image_url = ?, featured = ?, status = ?, updated_at = ? WHERE product_id = ?`,
		p.Name, p.Description, p.Price, p.Stock, p.CategoryID, p.ImageURL, p.Featured,
		p.Status, p.UpdatedAt, p.ID).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour produit: " + err.Error()})
		return
	}

	// Maintenir l'index par catégorie (suppression si la catégorie a changé)
	if p.CategoryID != existing.CategoryID {
		if err := session.Query("DELETE FROM products_by_category WHERE category_id = ? AND product_id = ?",
			existing.CategoryID, p.ID).Exec(); err != nil {
			log.Printf("⚠️ Erreur nettoyage products_by_category: %v", err)
		}
	}
	if err := session.Query(`INSERT INTO products_by_category (category_id, product_id, name, price, stock, image_url, featured, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.CategoryID, p.ID, p.Name, p.Price, p.Stock, p.ImageURL, p.Featured, p.Status).Exec(); err != nil {
		log.Printf("⚠️ Erreur indexation products_by_category: %v", err)
	}

	go services.IndexProduct(p)

	invalidateProductCache()

	c.JSON(http.StatusOK, p)
}

// DeleteProduct supprime un produit (back-office)
func DeleteProduct(c *gin.Context) {
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

	var categoryID gocql.UUID
	if err := session.Query("SELECT category_id FROM products WHERE product_id = ?", gocql.UUID(productID)).Scan(&categoryID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	if err := session.Query("DELETE FROM products WHERE product_id = ?", gocql.UUID(productID)).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur suppression produit: " + err.Error()})
		return
	}

	if err := session.Query("DELETE FROM products_by_category WHERE category_id = ? AND product_id = ?",
		categoryID, gocql.UUID(productID)).Exec(); err != nil {
		log.Printf("⚠️ Erreur nettoyage products_by_category: %v", err)
	}

	go services.RemoveProductFromIndex(productID.String())

	invalidateProductCache()

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func invalidateProductCache() {
	if err := database.RedisClient.Del(context.Background(), "products:active").Err(); err != nil {
		log.Printf("⚠️ Invalidation cache produits impossible: %v", err)
	}
}
