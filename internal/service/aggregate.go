package service

import (
	"github.com/shopspring/decimal"

	"github.com/HarisNvr/test-case-shop/internal/models"
)

// moneyScale is the number of places the cart total is rounded to.
const moneyScale = 2

// Line is one cart entry joined with its product.
type Line struct {
	ProductID   uint
	ProductName string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	LineTotal   decimal.Decimal
}

type CartView struct {
	Items []Line
	Total decimal.Decimal
	Count int
}

func NewLine(p models.Product, qty decimal.Decimal) Line {
	return Line{
		ProductID:   p.ID,
		ProductName: p.Name,
		Quantity:    qty,
		UnitPrice:   p.Price,
		LineTotal:   p.Price.Mul(qty),
	}
}

// BuildView projects entries onto current catalog prices, keeping the entry
// order. Entries whose product is missing from products are left out and
// their product ids are returned.
func BuildView(entries []models.CartItem, products map[uint]models.Product) (CartView, []uint) {
	view := CartView{Items: make([]Line, 0, len(entries))}
	sum := decimal.Zero

	var missing []uint
	for _, e := range entries {
		p, ok := products[e.ProductID]
		if !ok {
			missing = append(missing, e.ProductID)
			continue
		}
		line := NewLine(p, e.Quantity)
		sum = sum.Add(line.LineTotal)
		view.Items = append(view.Items, line)
	}

	view.Total = sum.RoundBank(moneyScale)
	view.Count = len(view.Items)
	return view, missing
}
