package models

// CartLine is one product in the local cart.
type CartLine struct {
	Product  Product
	Quantity int
}

// Subtotal is the discounted unit price times the quantity.
func (l CartLine) Subtotal() float64 {
	return l.Product.UnitPrice() * float64(l.Quantity)
}

// CartItem is a line of the server-side cart, joined with product data.
type CartItem struct {
	ID        int      `json:"id"`
	ProductID int      `json:"product_id"`
	Quantity  int      `json:"quantity"`
	Name      string   `json:"name"`
	Price     float64  `json:"price"`
	Images    []string `json:"images"`
	Discount  float64  `json:"discount"`
}

// UnitPrice is the discounted price of one unit.
func (i CartItem) UnitPrice() float64 {
	return Product{Price: i.Price, Discount: i.Discount}.UnitPrice()
}

// Cart is the server-side cart of the authenticated user.
type Cart struct {
	ID     int        `json:"id"`
	UserID int        `json:"user_id"`
	Items  []CartItem `json:"items"`
}
