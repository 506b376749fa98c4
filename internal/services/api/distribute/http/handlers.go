// Package http provides http transport for content distribution
package http

import (
	stdhttp "net/http"

	"channelhub/internal/modkit/httpkit"
	phttp "channelhub/internal/platform/net/http"
	"channelhub/internal/services/api/distribute/domain"
	svc "channelhub/internal/services/api/distribute/service"
)

// Register mounts distribution endpoints on the given router
// writeMws wrap only the write route, the limiter goes there
func Register(r httpkit.Router, s svc.Service, writeMws ...func(stdhttp.Handler) stdhttp.Handler) {
	h := &handlers{svc: s}
	r.Group(func(w httpkit.Router) {
		w.Use(writeMws...)
		httpkit.PostJSON(w, "/", h.distribute)
	})
	httpkit.Get(r, "/{contentId}", h.list)
}

type handlers struct{ svc svc.Service }

// swagger:route POST /distributions Distributions distributeContent
// @Summary Distribute a content item to channels, bundles and OTT platforms
// @Description Unknown channels are skipped and reported, inactive bundles are ignored.
// @Description Repeating a batch refreshes the publish window and keeps the highest priority.
// @Tags Distributions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body domain.DistributeInput true "Distribution request"
// @Success 200 {object} domain.DistributeResult "ok"
// @Failure 400 {object} httpkit.Envelope "invalid request or no valid channels found"
// @Failure 403 {object} httpkit.Envelope "caller may not distribute this content"
// @Failure 404 {object} httpkit.Envelope "content not found"
// @Failure 429 {object} httpkit.Envelope "rate limited"
// @Router /distributions [post]
func (h *handlers) distribute(r *stdhttp.Request, in domain.DistributeInput) (any, error) {
	u, err := httpkit.MustActor(r)
	if err != nil {
		return nil, err
	}
	return h.svc.Distribute(r.Context(), in, u)
}

// swagger:route GET /distributions/{contentId} Distributions listDistributions
// @Summary List distribution records of a content item
// @Tags Distributions
// @Produce json
// @Security BearerAuth
// @Param contentId path string true "Video id or numeric content id"
// @Success 200 {object} domain.ListResult "ok"
// @Failure 403 {object} httpkit.Envelope "caller may not distribute this content"
// @Failure 404 {object} httpkit.Envelope "content not found"
// @Router /distributions/{contentId} [get]
func (h *handlers) list(r *stdhttp.Request) (any, error) {
	u, err := httpkit.MustActor(r)
	if err != nil {
		return nil, err
	}
	return h.svc.ListDistributions(r.Context(), phttp.URLParam(r, "contentId"), u)
}
