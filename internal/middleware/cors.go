package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORS autorise toutes les origines (boutique servie depuis n'importe quel front).
// Les requêtes preflight OPTIONS reçoivent une réponse vide avant toute logique métier.
func CORS() gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Authorization", "Content-Type", "X-Client-Info", "apikey"},
		MaxAge:          12 * time.Hour,
	})
}
