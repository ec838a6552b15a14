package models

// Product is a catalog item. Discount is a percentage in [0, 100].
type Product struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Images      []string `json:"images"`
	Discount    float64  `json:"discount"`
}

// HasDiscount reports whether a discount applies.
func (p Product) HasDiscount() bool {
	return p.Discount > 0
}

// UnitPrice is the price after discount.
func (p Product) UnitPrice() float64 {
	if !p.HasDiscount() {
		return p.Price
	}
	return p.Price * (1 - p.Discount/100)
}

// NewProduct is the create request: a Product without its id.
type NewProduct struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Images      []string `json:"images"`
	Discount    float64  `json:"discount"`
}
