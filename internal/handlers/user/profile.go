package user

import (
	"net/http"
	"time"

	"ndiougueshop_back_end/internal/database"
	"ndiougueshop_back_end/internal/models"

	"github.com/gin-gonic/gin"
)

// GetProfile retourne le profil du client connecté
func GetProfile(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	var p models.Profile
	p.UserID = userID
	if err := session.Query(`SELECT first_name, last_name, phone, address, city, created_at, updated_at
		FROM profiles WHERE user_id = ?`, userID).
		Scan(&p.FirstName, &p.LastName, &p.Phone, &p.Address, &p.City, &p.CreatedAt, &p.UpdatedAt); err != nil {
		// Profil jamais renseigné : on retourne une coquille vide plutôt qu'une erreur
		c.JSON(http.StatusOK, p)
		return
	}

	c.JSON(http.StatusOK, p)
}

// UpdateProfile crée ou met à jour le profil du client connecté
func UpdateProfile(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	var input struct {
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Phone     string `json:"phone"`
		Address   string `json:"address"`
		City      string `json:"city"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	now := time.Now().UTC()

	// Conserver created_at si le profil existe déjà
	createdAt := now
	var existing time.Time
	if err := session.Query("SELECT created_at FROM profiles WHERE user_id = ?", userID).Scan(&existing); err == nil && !existing.IsZero() {
		createdAt = existing
	}

	if err := session.Query(`INSERT INTO profiles (user_id, first_name, last_name, phone, address, city, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		userID, input.FirstName, input.LastName, input.Phone, input.Address, input.City, createdAt, now).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur enregistrement profil"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
