package models

// CartProduct est l'instantané produit porté par une ligne de panier côté client.
// Seuls l'id et le prix sont vérifiés côté serveur, le reste est informatif.
type CartProduct struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Price int64  `json:"price"`
	Stock int    `json:"stock,omitempty"`
}

// CartLine : un produit + la quantité demandée. Le panier vit côté client,
// il n'est jamais persisté tel quel.
type CartLine struct {
	Product  CartProduct `json:"product"`
	Quantity int         `json:"quantity"`
}
