package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HarisNvr/test-case-shop/internal/models"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestBuildView_FractionalQuantity(t *testing.T) {
	products := map[uint]models.Product{
		1: {ID: 1, Name: "Coffee", Price: dec("9.99")},
	}
	entries := []models.CartItem{{ProductID: 1, Quantity: dec("2.5")}}

	view, missing := BuildView(entries, products)
	require.Empty(t, missing)
	require.Len(t, view.Items, 1)
	assert.Equal(t, "24.975", view.Items[0].LineTotal.String())
	assert.Equal(t, "24.98", view.Total.StringFixed(2))
	assert.Equal(t, 1, view.Count)
}

func TestBuildView_SumsBeforeRounding(t *testing.T) {
	products := map[uint]models.Product{
		1: {ID: 1, Name: "A", Price: dec("0.05")},
		2: {ID: 2, Name: "B", Price: dec("0.05")},
	}
	entries := []models.CartItem{
		{ProductID: 1, Quantity: dec("0.1")},
		{ProductID: 2, Quantity: dec("0.1")},
	}

	view, _ := BuildView(entries, products)
	// 0.005 + 0.005 = 0.010
	assert.Equal(t, "0.01", view.Total.StringFixed(2))
	assert.Equal(t, 2, view.Count)
}

func TestBuildView_HalfEvenRounding(t *testing.T) {
	products := map[uint]models.Product{1: {ID: 1, Price: dec("0.25")}}
	entries := []models.CartItem{{ProductID: 1, Quantity: dec("0.5")}}

	view, _ := BuildView(entries, products)
	// 0.125 rounds to the even neighbour
	assert.Equal(t, "0.12", view.Total.StringFixed(2))
}

func TestBuildView_KeepsOrderAndSkipsMissing(t *testing.T) {
	products := map[uint]models.Product{
		3: {ID: 3, Name: "C", Price: dec("1.00")},
		1: {ID: 1, Name: "A", Price: dec("2.00")},
	}
	entries := []models.CartItem{
		{ProductID: 3, Quantity: dec("1")},
		{ProductID: 7, Quantity: dec("4")},
		{ProductID: 1, Quantity: dec("1")},
	}

	view, missing := BuildView(entries, products)
	assert.Equal(t, []uint{7}, missing)
	require.Len(t, view.Items, 2)
	assert.Equal(t, uint(3), view.Items[0].ProductID)
	assert.Equal(t, uint(1), view.Items[1].ProductID)
	assert.Equal(t, 2, view.Count)
	assert.Equal(t, "3.00", view.Total.StringFixed(2))
}

func TestBuildView_Empty(t *testing.T) {
	view, missing := BuildView(nil, nil)
	assert.Empty(t, missing)
	assert.Empty(t, view.Items)
	assert.NotNil(t, view.Items)
	assert.Zero(t, view.Count)
	assert.Equal(t, "0.00", view.Total.StringFixed(2))
}
