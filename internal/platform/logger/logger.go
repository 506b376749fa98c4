// Package logger owns the process root zerolog logger and its request-scoped children
package logger

import (
	"context"
	"io"
	"os"
	"runtime/debug"
	"sync"
	"time"

	"channelhub/internal/platform/config/raw"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
)

// Logger is the logging type handed around the codebase
type Logger = zerolog.Logger

// Options configures the root logger
type Options struct {
	Level   string
	Console bool
	Service string
	Caller  bool
	// Sample keeps one event in N when N > 1
	Sample int
	Writer io.Writer
	Fields map[string]string
}

// FromEnv reads CORE_LOG_* settings
func FromEnv() Options {
	c := raw.New().Prefix("CORE_LOG_")
	return Options{
		Level:   c.Get("LEVEL", "info"),
		Console: c.Get("FORMAT", "json") == "console",
		Service: c.Get("SERVICE", ""),
		Caller:  c.GetBool("CALLER", false),
		Sample:  c.GetInt("SAMPLE", 0),
	}
}

var (
	mu   sync.RWMutex
	root *Logger
)

// Init installs the root logger, only the first call wins
func Init(opt Options) {
	mu.Lock()
	defer mu.Unlock()
	if root != nil {
		return
	}
	l := build(opt)
	root = &l
}

// Get returns the root logger, initializing from the environment on first use
func Get() *Logger {
	mu.RLock()
	l := root
	mu.RUnlock()
	if l != nil {
		return l
	}
	Init(FromEnv())
	mu.RLock()
	defer mu.RUnlock()
	return root
}

func build(opt Options) Logger {
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
	zerolog.TimeFieldFormat = time.RFC3339Nano

	lvl, err := zerolog.ParseLevel(opt.Level)
	if err != nil || opt.Level == "" {
		lvl = zerolog.InfoLevel
	}

	out := opt.Writer
	if out == nil {
		out = os.Stdout
	}
	if opt.Console {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}
	}

	zc := zerolog.New(out).Level(lvl).With().Timestamp()
	if opt.Service != "" {
		zc = zc.Str("service", opt.Service)
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		zc = zc.Str("go", bi.GoVersion)
	}
	for k, v := range opt.Fields {
		zc = zc.Str(k, v)
	}
	if opt.Caller {
		zc = zc.Caller()
	}

	l := zc.Logger()
	if opt.Sample > 1 {
		l = l.Sample(&zerolog.BasicSampler{N: uint32(opt.Sample)})
	}
	return l
}

type ctxKey int

const (
	reqIDKey ctxKey = iota
	userIDKey
)

// WithRequest stores the request and user ids that C attaches to every line
func WithRequest(ctx context.Context, reqID, userID string) context.Context {
	if reqID != "" {
		ctx = context.WithValue(ctx, reqIDKey, reqID)
	}
	if userID != "" {
		ctx = context.WithValue(ctx, userIDKey, userID)
	}
	return ctx
}

// C returns a child of the root logger carrying the ids stored in ctx
func C(ctx context.Context) *Logger {
	zc := Get().With()
	if id, _ := ctx.Value(reqIDKey).(string); id != "" {
		zc = zc.Str("request_id", id)
	}
	if id, _ := ctx.Value(userIDKey).(string); id != "" {
		zc = zc.Str("user_id", id)
	}
	l := zc.Logger()
	return &l
}

// Named returns a child of the root logger tagged with a component
func Named(component string) *Logger {
	if component == "" {
		return Get()
	}
	l := Get().With().Str("component", component).Logger()
	return &l
}
