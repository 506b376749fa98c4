package domain

import "context"

// ServicePort defines the service contract for channel search
type ServicePort interface {
	SearchChannels(ctx context.Context, q string) (ChannelSearchResult, error)
}
