package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"ndiougueshop_back_end/internal/database"

	"github.com/gin-gonic/gin"
)

const (
	// Limites par endpoint
	CheckoutMaxAttempts = 10 // Par minute et par utilisateur
	ReceiptMaxAttempts  = 30
	APIMaxRequests      = 100 // Par minute pour les endpoints généraux

	// Durées de cooldown
	CheckoutCooldown = 1 * time.Minute
	ReceiptCooldown  = 1 * time.Minute
	APICooldown      = 1 * time.Minute
)

// CheckoutRateLimit limite les créations de commande par utilisateur.
// Ne déduplique pas les soumissions (c'est le rôle de la clé d'idempotence),
// protège seulement contre le spam du bouton de paiement.
func CheckoutRateLimit() gin.HandlerFunc {
	return userRateLimit("checkout_attempts", CheckoutMaxAttempts, CheckoutCooldown)
}

// ReceiptRateLimit limite les générations de reçus par utilisateur.
func ReceiptRateLimit() gin.HandlerFunc {
	return userRateLimit("receipt_attempts", ReceiptMaxAttempts, ReceiptCooldown)
}

func userRateLimit(prefix string, max int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		if userID == "" {
			// L'authentification renverra 401 plus loin
			c.Next()
			return
		}

		ctx := context.Background()
		key := fmt.Sprintf("%s:%s", prefix, userID)

		attempts, err := database.Redis.Incr(ctx, key).Result()
		if err != nil {
			// Redis indisponible : on laisse passer plutôt que de bloquer la boutique
			c.Next()
			return
		}
		if attempts == 1 {
			database.Redis.Expire(ctx, key, window)
		}

		if attempts > int64(max) {
			ttl := database.Redis.TTL(ctx, key).Val()
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       "Trop de requêtes. Réessayez dans quelques instants",
				"retry_after": int(ttl.Seconds()),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// APIRateLimit limite les endpoints publics par adresse IP
func APIRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background()
		key := "api_requests:" + c.ClientIP()

		attempts, err := database.Redis.Incr(ctx, key).Result()
		if err != nil {
			c.Next()
			return
		}
		if attempts == 1 {
			database.Redis.Expire(ctx, key, APICooldown)
		}

		if attempts > int64(APIMaxRequests) {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Trop de requêtes"})
			c.Abort()
			return
		}

		c.Next()
	}
}
