package transport

import (
	"github.com/shopspring/decimal"

	"github.com/HarisNvr/test-case-shop/internal/service"
)

type AddToCartRequest struct {
	Product  *uint               `json:"product"`
	Quantity decimal.NullDecimal `json:"quantity"`
}

type UpdateQuantityRequest struct {
	Quantity decimal.NullDecimal `json:"quantity"`
}

// LineResponse renders decimals as strings: quantity with one place, prices
// with two and the line total with three.
type LineResponse struct {
	Product           string `json:"product"`
	ID                uint   `json:"id"`
	Quantity          string `json:"quantity"`
	ProductPrice      string `json:"product_price"`
	TotalProductPrice string `json:"total_product_price"`
}

type CartResponse struct {
	Products       []LineResponse `json:"products"`
	TotalCartPrice string         `json:"total_cart_price"`
	Count          int            `json:"count"`
}

type ErrorResponse struct {
	Code      string `json:"code"`
	Detail    string `json:"detail"`
	Field     string `json:"field,omitempty"`
	Remaining string `json:"remaining,omitempty"`
}

func NewLineResponse(l service.Line) LineResponse {
	return LineResponse{
		Product:           l.ProductName,
		ID:                l.ProductID,
		Quantity:          l.Quantity.StringFixed(1),
		ProductPrice:      l.UnitPrice.StringFixed(2),
		TotalProductPrice: l.LineTotal.StringFixed(3),
	}
}

func NewCartResponse(v service.CartView) CartResponse {
	out := CartResponse{
		Products:       make([]LineResponse, 0, len(v.Items)),
		TotalCartPrice: v.Total.StringFixed(2),
		Count:          v.Count,
	}
	for _, l := range v.Items {
		out.Products = append(out.Products, NewLineResponse(l))
	}
	return out
}
