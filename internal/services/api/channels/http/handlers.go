// Package http provides http transport for channel search
package http

import (
	stdhttp "net/http"

	"channelhub/internal/modkit/httpkit"
	svc "channelhub/internal/services/api/channels/service"
)

// Register mounts channel endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.Get(r, "/search", h.search)
}

type handlers struct{ svc svc.Service }

// swagger:route GET /channels/search Channels searchChannels
// @Summary Search channels by postal code or text
// @Description "90210" or "90210,50" lists channels within the radius in miles (default 30, max 100),
// @Description nearest first. Anything else matches slug, name, city, region or country.
// @Tags Channels
// @Produce json
// @Param q query string false "Postal code with optional radius, or text"
// @Success 200 {object} domain.ChannelSearchResult "ok"
// @Failure 422 {object} httpkit.Envelope "postal code has no coordinates"
// @Router /channels/search [get]
func (h *handlers) search(r *stdhttp.Request) (any, error) {
	return h.svc.SearchChannels(r.Context(), httpkit.QueryString(r, "q"))
}
