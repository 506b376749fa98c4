package module

import (
	"time"

	"channelhub/internal/platform/config"
	chsvc "channelhub/internal/services/api/channels/service"
)

// Options controls channel search behavior
type Options struct {
	CacheTTL  time.Duration // geocode cache entry lifetime, only used when redis is wired
	TextLimit int           // max channels returned by a text search
}

// FromConfig reads CORE_SEARCH_* values from process config/env
func FromConfig(cfg config.Conf) Options {
	sc := cfg.Prefix("CORE_SEARCH_")
	return Options{
		CacheTTL:  sc.MayDuration("GEOCODE_TTL", 24*time.Hour),
		TextLimit: sc.MayInt("TEXT_LIMIT", chsvc.DefaultTextLimit),
	}
}
