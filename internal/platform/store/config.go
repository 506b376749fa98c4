package store

import "time"

// Config aggregates per backend configuration
type Config struct {
	// AppName tags backend sessions, e.g. postgres application_name
	AppName string

	PG  PGConfig
	CH  CHConfig
	RDS RedisConfig
}

// PGConfig configures postgres connectivity and tracing
type PGConfig struct {
	Enabled     bool
	URL         string
	MaxConns    int32
	LogSQL      bool
	SlowQueryMs int

	// boot knobs, zero picks the opener defaults
	ConnectRetries int
	PingTimeout    time.Duration
}

// CHConfig configures clickhouse connectivity for the audit sink
type CHConfig struct {
	Enabled  bool
	Addr     string
	Database string
	User     string
	Password string

	// Role and Tag end up in the ClickHouse client info
	Role string
	Tag  string
}

// RedisConfig configures redis connectivity for caches
type RedisConfig struct {
	Enabled bool
	URL     string
}
