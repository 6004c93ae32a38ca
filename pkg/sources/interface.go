package sources

import (
	"context"

	"github.com/kerbaras/tracker/pkg/data"
)

type Source interface {
	Search(ctx context.Context, query string, category data.Category) ([]data.SearchResult, error)
	Get(ctx context.Context, category data.Category, externalID int) (*data.SearchResult, error)
}
