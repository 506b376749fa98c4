// Package raw reads bootstrap settings straight from the environment.
// The logger depends on it, so it must not log.
package raw

import (
	"os"
	"strconv"
	"strings"
)

// Conf is a prefixed view over the environment
type Conf struct{ prefix string }

// New returns the unprefixed view
func New() Conf { return Conf{} }

// Prefix nests p under the current prefix
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

func (c Conf) lookup(key string) string {
	return strings.TrimSpace(os.Getenv(c.prefix + key))
}

// Get returns the trimmed value or def when unset
func (c Conf) Get(key, def string) string {
	if v := c.lookup(key); v != "" {
		return v
	}
	return def
}

// GetBool accepts anything strconv.ParseBool does, def otherwise
func (c Conf) GetBool(key string, def bool) bool {
	b, err := strconv.ParseBool(c.lookup(key))
	if err != nil {
		return def
	}
	return b
}

// GetInt returns a non-negative integer, def otherwise
func (c Conf) GetInt(key string, def int) int {
	n, err := strconv.Atoi(c.lookup(key))
	if err != nil || n < 0 {
		return def
	}
	return n
}
