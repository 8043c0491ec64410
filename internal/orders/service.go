package orders

import (
	"context"
	"fmt"
	"log"
	"time"

	"ndiougueshop_back_end/internal/models"

	"github.com/gocql/gocql"
)

// CreateOrderRequest est le corps JSON envoyé par le tunnel de paiement.
type CreateOrderRequest struct {
	Cart            []models.CartLine      `json:"cart"`
	ShippingAddress models.ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string                 `json:"paymentMethod"`
	Notes           string                 `json:"notes"`
	IdempotencyKey  string                 `json:"idempotencyKey,omitempty"`
}

// Confirmation est le résultat d'une création de commande réussie.
type Confirmation struct {
	OrderID       string `json:"orderId"`
	Total         int64  `json:"total"`
	PaymentMethod string `json:"paymentMethod"`
	Message       string `json:"message"`
}

// Service valide un panier soumis, calcule le total autoritaire et persiste
// la commande et ses lignes comme une unité logiquement atomique.
type Service struct {
	store Store
	idem  IdempotencyGuard // optionnel, nil = pas de déduplication
}

func NewService(store Store, idem IdempotencyGuard) *Service {
	return &Service{store: store, idem: idem}
}

// CreateOrder exécute le protocole d'écriture compensatoire :
//
//  1. validation (panier non vide, quantités ≥ 1)
//  2. vérification prix/stock ligne par ligne contre le magasin produits
//  3. insertion de la commande — échec = abandon immédiat
//  4. insertion des lignes en un seul batch — échec = suppression
//     compensatoire de la commande, puis remontée de l'erreur
//
// La ligne de commande n'écrase jamais le prix soumis : toute divergence est
// rejetée en amont, donc total == Σ prix·quantité du panier soumis.
// Aucune étape n'est réessayée ; une resoumission crée une nouvelle commande.
func (s *Service) CreateOrder(ctx context.Context, userID string, req CreateOrderRequest) (*Confirmation, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}

	if len(req.Cart) == 0 {
		return nil, ErrEmptyCart
	}

	// Vérification de chaque ligne contre l'état autoritaire des produits
	var total int64
	for _, line := range req.Cart {
		if line.Quantity < 1 {
			return nil, fmt.Errorf("%w: %d pour le produit %s", ErrInvalidQuantity, line.Quantity, line.Product.ID)
		}

		pricing, err := s.store.GetProductPricing(ctx, line.Product.ID)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrProductNotFound, line.Product.ID)
		}
		if pricing.Price != line.Product.Price {
			return nil, fmt.Errorf("%w: %s (soumis: %d, actuel: %d)",
				ErrPriceMismatch, line.Product.ID, line.Product.Price, pricing.Price)
		}
		if pricing.Stock < line.Quantity {
			return nil, fmt.Errorf("%w: %s (disponible: %d, demandé: %d)",
				ErrInsufficientStock, pricing.Name, pricing.Stock, line.Quantity)
		}

		total += line.Product.Price * int64(line.Quantity)
	}

	// Réservation de la clé d'idempotence avant toute écriture
	reserved := false
	if s.idem != nil && req.IdempotencyKey != "" {
		replay, fresh, err := s.idem.Begin(ctx, userID, req.IdempotencyKey)
		switch {
		case err != nil:
			// Redis indisponible : on continue sans déduplication
			log.Printf("⚠️ Idempotence indisponible, création non dédupliquée: %v", err)
		case replay != nil:
			log.Printf("🔁 Commande rejouée pour user %s (clé %s): %s", userID, req.IdempotencyKey, replay.OrderID)
			return replay, nil
		case !fresh:
			return nil, ErrDuplicateSubmission
		default:
			reserved = true
		}
	}

	now := time.Now().UTC()
	order := &models.Order{
		ID:              gocql.TimeUUID(),
		UserID:          userID,
		Total:           total,
		Status:          models.OrderStatusPending,
		PaymentMethod:   req.PaymentMethod,
		PaymentStatus:   models.DerivePaymentStatus(req.PaymentMethod),
		ShippingAddress: req.ShippingAddress,
		Notes:           req.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	// Étape (a) : la commande doit être durable avant toute ligne
	if err := s.store.InsertOrder(ctx, order); err != nil {
		s.cancelReservation(ctx, userID, req.IdempotencyKey, reserved)
		log.Printf("❌ Erreur création commande: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrOrderPersistence, err)
	}

	// Étape (b) : une ligne par entrée du panier, en un seul batch
	items := make([]models.OrderItem, 0, len(req.Cart))
	for _, line := range req.Cart {
		items = append(items, models.OrderItem{
			ID:        gocql.TimeUUID(),
			OrderID:   order.ID,
			ProductID: line.Product.ID,
			Quantity:  line.Quantity,
			Price:     line.Product.Price,
		})
	}

	if err := s.store.InsertOrderItems(ctx, items); err != nil {
		// Étape (c) : suppression compensatoire, au mieux. Son propre échec
		// ne change pas l'erreur rapportée mais laisse une commande orpheline.
		if delErr := s.store.DeleteOrder(ctx, order.ID); delErr != nil {
			log.Printf("❌ Rollback impossible, commande orpheline %s: %v", order.ID, delErr)
		} else {
			log.Printf("↩️ Commande %s supprimée après échec des lignes", order.ID)
		}
		s.cancelReservation(ctx, userID, req.IdempotencyKey, reserved)
		log.Printf("❌ Erreur création lignes de commande: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrOrderItemPersistence, err)
	}

	// Index "mes commandes", écrit seulement après le commit des lignes pour
	// qu'une commande annulée n'apparaisse jamais dans un listing
	if err := s.store.InsertUserOrderIndex(ctx, order); err != nil {
		log.Printf("⚠️ Index orders_by_user non écrit pour %s: %v", order.ID, err)
	}

	conf := &Confirmation{
		OrderID:       order.ID.String(),
		Total:         total,
		PaymentMethod: req.PaymentMethod,
		Message:       confirmationMessage(req.PaymentMethod),
	}

	if reserved {
		s.idem.Commit(ctx, userID, req.IdempotencyKey, conf)
	}

	log.Printf("✅ Commande créée: %s (%d FCFA, paiement: %s)", conf.OrderID, total, req.PaymentMethod)
	return conf, nil
}

func (s *Service) cancelReservation(ctx context.Context, userID, key string, reserved bool) {
	if reserved {
		s.idem.Cancel(ctx, userID, key)
	}
}

func confirmationMessage(paymentMethod string) string {
	if paymentMethod == models.PaymentMethodDelivery {
		return "Commande créée avec succès. Paiement à la livraison."
	}
	return fmt.Sprintf("Commande créée avec succès. Procédez au paiement via %s.", paymentMethod)
}
