package search

import (
	"context"

	"github.com/portage-market/portage-go/internal/domain/catalog"
	"github.com/portage-market/portage-go/internal/domain/search/query"
)

// Fetcher issues a product listing request with the cleaned query
// parameters.
type Fetcher interface {
	Products(ctx context.Context, req query.Request) ([]catalog.Product, error)
}
