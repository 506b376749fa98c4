package domain

import (
	"context"

	"channelhub/internal/core/access"
)

// ServicePort defines the service contract for content search
type ServicePort interface {
	Search(ctx context.Context, in SearchInput, u access.ActingUser) (SearchResult, error)
}
