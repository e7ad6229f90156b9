package mockapi

import (
	"context"

	"github.com/MikeMC777/pos-facade/internal/customer"
	"github.com/MikeMC777/pos-facade/internal/money"
	"github.com/MikeMC777/pos-facade/internal/product"
)

// Seed loads a walk-in customer and a small catalog into an empty store.
// A store that already holds products is left alone.
func Seed(ctx context.Context, st Store) (bool, error) {
	existing, err := st.List(ctx, KindProduct)
	if err != nil {
		return false, err
	}
	if len(existing) > 0 {
		return false, nil
	}

	id, err := st.NextID(ctx)
	if err != nil {
		return false, err
	}
	walkIn := customer.Customer{ID: id, Name: "Walk-in customer"}
	if err := save(ctx, st, KindCustomer, id, walkIn); err != nil {
		return false, err
	}

	catalog := []product.Product{
		{Name: "Espresso", Price: money.MustParse("2.50"), CategoryID: 1, StockQuantity: 200, Barcode: "7750100000017"},
		{Name: "Cappuccino", Price: money.MustParse("3.40"), CategoryID: 1, StockQuantity: 150, Barcode: "7750100000024"},
		{Name: "Green tea", Price: money.MustParse("1.75"), CategoryID: 1, StockQuantity: 120, Barcode: "7750100000031"},
		{Name: "Croissant", Price: money.MustParse("2.10"), CategoryID: 2, StockQuantity: 40, Barcode: "7750100000048"},
		{Name: "Blueberry muffin", Price: money.MustParse("2.80"), CategoryID: 2, StockQuantity: 30, Barcode: "7750100000055"},
		{Name: "Mineral water 600ml", Price: money.MustParse("1.20"), CategoryID: 3, StockQuantity: 300, Barcode: "7750100000062"},
	}
	for _, p := range catalog {
		id, err := st.NextID(ctx)
		if err != nil {
			return false, err
		}
		p.ID = id
		if err := save(ctx, st, KindProduct, id, p); err != nil {
			return false, err
		}
	}
	return true, nil
}
