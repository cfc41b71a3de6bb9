package cart

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/apolenov/webstore/internal/models"
	"github.com/apolenov/webstore/internal/store"
)

// Resolve looks up every cart id against the product store and sums the
// prices of the ones that still exist. Dangling ids are skipped, they never
// show up as line items and contribute nothing to the total.
func Resolve(ctx context.Context, s *store.ProductStore, ids []int) ([]models.Product, decimal.Decimal, error) {
	items := make([]models.Product, 0, len(ids))
	total := decimal.Zero

	for _, id := range ids {
		product, ok, err := s.GetProduct(ctx, id)
		if err != nil {
			return nil, decimal.Zero, err
		}
		if !ok {
			continue
		}
		items = append(items, *product)
		total = total.Add(product.Price)
	}

	return items, total, nil
}
