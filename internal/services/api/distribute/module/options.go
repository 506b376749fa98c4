package module

import (
	"time"

	"channelhub/internal/platform/config"
)

// Options controls distribution writes
type Options struct {
	RateRPS     float64       // sustained distribute calls per caller, zero disables the limiter
	RateBurst   int
	LockTimeout time.Duration // per transaction lock wait, zero keeps the server default
	Audit       bool          // send committed batches to clickhouse when it is wired
}

// FromConfig reads CORE_DISTRIBUTE_* values from process config/env
func FromConfig(cfg config.Conf) Options {
	dc := cfg.Prefix("CORE_DISTRIBUTE_")
	return Options{
		RateRPS:     dc.MayFloat64("RATE_RPS", 2),
		RateBurst:   dc.MayInt("RATE_BURST", 10),
		LockTimeout: dc.MayDuration("LOCK_TIMEOUT", 5*time.Second),
		Audit:       dc.MayBool("AUDIT", true),
	}
}
