package module

import (
	"context"

	"channelhub/internal/modkit/repokit"
	chdom "channelhub/internal/services/api/channels/domain"
	chrepo "channelhub/internal/services/api/channels/repo"
	chsvc "channelhub/internal/services/api/channels/service"
)

// Ports is what the channels module offers other modules
type Ports struct {
	Search chdom.ServicePort
	// Channels binds the channel repository into a caller's transaction
	Channels repokit.Binder[chrepo.Repo]
}

// adaptSearchPort adapts the channel service to the domain port interface
type adaptSearchPort struct{ svc chsvc.Service }

// SearchChannels implements the domain ServicePort interface
func (a adaptSearchPort) SearchChannels(ctx context.Context, q string) (chdom.ChannelSearchResult, error) {
	return a.svc.SearchChannels(ctx, q)
}
