package httpkit

import (
	"net/http"
	"strconv"
	"strings"

	perrs "channelhub/internal/platform/errors"
	phttp "channelhub/internal/platform/net/http"
)

// QueryString returns the trimmed query parameter key
func QueryString(r *http.Request, key string) string {
	return strings.TrimSpace(r.URL.Query().Get(key))
}

// QueryInt parses an optional integer query parameter
// a malformed value is an invalid argument naming the parameter
func QueryInt(r *http.Request, key string, def int) (int, error) {
	s := QueryString(r, key)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, perrs.WithField(perrs.InvalidArgf("%s must be an integer", key), key)
	}
	return n, nil
}

// PathInt64 parses a chi path parameter as int64
func PathInt64(r *http.Request, key string) (int64, error) {
	s := strings.TrimSpace(phttp.URLParam(r, key))
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, perrs.WithField(perrs.InvalidArgf("%s must be an integer", key), key)
	}
	return n, nil
}
