package domain

// Product is a catalog entry. Price is in whole currency units; Stock is
// advisory and is never decremented by checkout.
type Product struct {
	ID          string `json:"id" validate:"required"`
	Name        string `json:"name" validate:"required"`
	Category    string `json:"category"`
	Price       int64  `json:"price" validate:"gte=0"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Stock       int    `json:"stock" validate:"gte=0"`
}

// CartItem snapshots a product at add time together with a quantity.
// It serializes flat: the product fields plus "quantity".
type CartItem struct {
	Product
	Quantity int `json:"quantity" validate:"gte=1"`
}

// LineTotal is price times quantity.
func (i CartItem) LineTotal() int64 {
	return i.Price * int64(i.Quantity)
}
