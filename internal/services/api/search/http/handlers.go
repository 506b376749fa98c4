// Package http provides http transport for content search
package http

import (
	stdhttp "net/http"

	"channelhub/internal/modkit/httpkit"
	"channelhub/internal/platform/net/http/bind"
	"channelhub/internal/services/api/search/domain"
	svc "channelhub/internal/services/api/search/service"
)

// Register mounts search endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.Get(r, "/", h.search)
}

type handlers struct{ svc svc.Service }

// swagger:route GET /search Search searchContent
// @Summary Search content visible to the caller
// @Description Plain words match any field, "A AND B" needs every term, "quoted text" is one phrase,
// @Description @name matches handles and email domains, digits try ids before free text
// @Tags Search
// @Produce json
// @Param q query string false "Search text"
// @Param limit query int false "Page size (1-200)"
// @Param offset query int false "Rows to skip"
// @Success 200 {object} domain.SearchResult "ok"
// @Router /search [get]
func (h *handlers) search(r *stdhttp.Request) (any, error) {
	limit, err := httpkit.QueryInt(r, "limit", 0)
	if err != nil {
		return nil, err
	}
	offset, err := httpkit.QueryInt(r, "offset", 0)
	if err != nil {
		return nil, err
	}
	in := domain.SearchInput{Q: r.URL.Query().Get("q"), Limit: limit, Offset: offset}
	if err := bind.Validate(in); err != nil {
		return nil, err
	}
	return h.svc.Search(r.Context(), in, httpkit.Actor(r))
}
