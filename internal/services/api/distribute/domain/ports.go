package domain

import (
	"context"

	"channelhub/internal/core/access"
)

// ServicePort defines the service contract for content distribution
type ServicePort interface {
	Distribute(ctx context.Context, in DistributeInput, u access.ActingUser) (DistributeResult, error)
	ListDistributions(ctx context.Context, contentID string, u access.ActingUser) (ListResult, error)
}
