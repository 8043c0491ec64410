package orders

import "errors"

var (
	// Erreurs de validation (aucune écriture effectuée)
	ErrUnauthenticated   = errors.New("utilisateur non authentifié")
	ErrEmptyCart         = errors.New("panier vide")
	ErrInvalidQuantity   = errors.New("quantité invalide")
	ErrProductNotFound   = errors.New("produit introuvable")
	ErrPriceMismatch     = errors.New("le prix du produit a changé")
	ErrInsufficientStock = errors.New("stock insuffisant")

	// Soumission dupliquée détectée via la clé d'idempotence,
	// alors que la première tentative est encore en cours
	ErrDuplicateSubmission = errors.New("commande déjà en cours de création")

	// Erreurs de persistance
	ErrOrderPersistence = errors.New("échec de création de la commande")
	// Renvoyée après la suppression compensatoire de la commande
	ErrOrderItemPersistence = errors.New("échec de création des lignes de commande")

	ErrOrderNotFound = errors.New("commande introuvable")
)
