package module

import (
	"context"

	"channelhub/internal/core/access"
	"channelhub/internal/modkit/repokit"
	chrepo "channelhub/internal/services/api/channels/repo"
	ddom "channelhub/internal/services/api/distribute/domain"
	drepo "channelhub/internal/services/api/distribute/repo"
	dsvc "channelhub/internal/services/api/distribute/service"
)

// Ports declares the injected channel lookup this module needs
type Ports struct {
	Channels repokit.Binder[drepo.ChannelLookup]
}

// ChannelsFrom adapts the channels module repository binder to the lookup distribution uses
func ChannelsFrom(b repokit.Binder[chrepo.Repo]) repokit.Binder[drepo.ChannelLookup] {
	return repokit.BindFunc[drepo.ChannelLookup](func(q repokit.Queryer) drepo.ChannelLookup {
		return channelSlugs{r: b.Bind(q)}
	})
}

type channelSlugs struct{ r chrepo.Repo }

func (c channelSlugs) ChannelSlug(ctx context.Context, key string) (string, bool, error) {
	row, ok, err := c.r.ChannelBySlugOrCity(ctx, key)
	if err != nil || !ok {
		return "", false, err
	}
	return row.Slug, true, nil
}

// adaptDistributePort adapts the distribution service to the domain port interface
type adaptDistributePort struct{ svc dsvc.Service }

// Distribute implements the domain ServicePort interface
func (a adaptDistributePort) Distribute(ctx context.Context, in ddom.DistributeInput, u access.ActingUser) (ddom.DistributeResult, error) {
	return a.svc.Distribute(ctx, in, u)
}

// ListDistributions implements the domain ServicePort interface
func (a adaptDistributePort) ListDistributions(ctx context.Context, contentID string, u access.ActingUser) (ddom.ListResult, error) {
	return a.svc.ListDistributions(ctx, contentID, u)
}
