package orders

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// IdempotencyGuard déduplique les soumissions de commande rejouées
// (double-clic, retry après timeout réseau).
type IdempotencyGuard interface {
	// Begin réserve la clé pour ce couple (user, clé).
	// Retourne (résultat enregistré, _, nil) si une création identique a déjà abouti,
	// (nil, true, nil) si la réservation est nouvelle,
	// (nil, false, nil) si une création identique est encore en vol.
	Begin(ctx context.Context, userID, key string) (*Confirmation, bool, error)
	// Commit enregistre le résultat pour les rejeux futurs.
	Commit(ctx context.Context, userID, key string, conf *Confirmation)
	// Cancel libère la réservation après un échec, la resoumission reste possible.
	Cancel(ctx context.Context, userID, key string)
}

const (
	idemReservedMarker = "__reserved__"
	idemTTL            = 24 * time.Hour
)

// RedisIdempotency réserve les clés via SETNX. Scylla n'offre pas de
// contrainte d'unicité (user_id, clé), Redis joue ce rôle.
type RedisIdempotency struct {
	client *redis.Client
}

func NewRedisIdempotency(client *redis.Client) *RedisIdempotency {
	return &RedisIdempotency{client: client}
}

func idemKey(userID, key string) string {
	return fmt.Sprintf("order_idem:%s:%s", userID, key)
}

func (r *RedisIdempotency) Begin(ctx context.Context, userID, key string) (*Confirmation, bool, error) {
	k := idemKey(userID, key)

	set, err := r.client.SetNX(ctx, k, idemReservedMarker, idemTTL).Result()
	if err != nil {
		return nil, false, err
	}
	if set {
		return nil, true, nil
	}

	val, err := r.client.Get(ctx, k).Result()
	if err != nil {
		return nil, false, err
	}
	if val == idemReservedMarker {
		// Première tentative encore en vol
		return nil, false, nil
	}

	var conf Confirmation
	if err := json.Unmarshal([]byte(val), &conf); err != nil {
		return nil, false, err
	}
	return &conf, false, nil
}

func (r *RedisIdempotency) Commit(ctx context.Context, userID, key string, conf *Confirmation) {
	data, err := json.Marshal(conf)
	if err != nil {
		log.Printf("⚠️ Sérialisation idempotence impossible: %v", err)
		return
	}
	if err := r.client.Set(ctx, idemKey(userID, key), data, idemTTL).Err(); err != nil {
		log.Printf("⚠️ Enregistrement idempotence impossible: %v", err)
	}
}

func (r *RedisIdempotency) Cancel(ctx context.Context, userID, key string) {
	if err := r.client.Del(ctx, idemKey(userID, key)).Err(); err != nil {
		log.Printf("⚠️ Libération clé idempotence impossible: %v", err)
	}
}
