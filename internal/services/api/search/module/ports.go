package module

import (
	"context"

	"channelhub/internal/core/access"
	searchdom "channelhub/internal/services/api/search/domain"
	searchsvc "channelhub/internal/services/api/search/service"
)

// adaptSearchPort adapts the search service to the domain port interface
type adaptSearchPort struct{ svc searchsvc.Service }

// Search implements the domain ServicePort interface
func (a adaptSearchPort) Search(ctx context.Context, in searchdom.SearchInput, u access.ActingUser) (searchdom.SearchResult, error) {
	return a.svc.Search(ctx, in, u)
}
