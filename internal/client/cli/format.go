package cli

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/storefront/internal/client/models"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var pricePrinter = message.NewPrinter(language.AmericanEnglish)

// formatPrice renders a USD amount with grouping and at most two decimals:
// 20 -> "$20", 1234.5 -> "$1,234.5".
func formatPrice(v float64) string {
	return "$" + pricePrinter.Sprint(number.Decimal(v, number.MaxFractionDigits(2)))
}

func formatProduct(p models.Product) string {
	var b strings.Builder
	fmt.Fprintf(&b, "#%d %s  %s", p.ID, p.Name, formatPrice(p.UnitPrice()))
	if p.HasDiscount() {
		fmt.Fprintf(&b, " (was %s, -%s%%)", formatPrice(p.Price), pricePrinter.Sprint(number.Decimal(p.Discount, number.MaxFractionDigits(2))))
	}
	if p.Description != "" {
		fmt.Fprintf(&b, "\n    %s", p.Description)
	}
	return b.String()
}

func formatCartLine(l models.CartLine) string {
	return fmt.Sprintf("#%d %s x%d  %s each  %s",
		l.Product.ID, l.Product.Name, l.Quantity, formatPrice(l.Product.UnitPrice()), formatPrice(l.Subtotal()))
}

func formatCartItem(i models.CartItem) string {
	return fmt.Sprintf("#%d %s x%d  %s each  %s",
		i.ProductID, i.Name, i.Quantity, formatPrice(i.UnitPrice()), formatPrice(i.UnitPrice()*float64(i.Quantity)))
}

func formatPost(p models.Post) string {
	if p.Body == "" {
		return fmt.Sprintf("#%d %s", p.ID, p.Title)
	}
	return fmt.Sprintf("#%d %s\n    %s", p.ID, p.Title, strings.ReplaceAll(p.Body, "\n", "\n    "))
}
