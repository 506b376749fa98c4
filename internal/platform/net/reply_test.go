package net_test

import (
	"errors"
	"net/http"
	"testing"

	perr "channelhub/internal/platform/errors"
	pnet "channelhub/internal/platform/net"
)

func TestError_MapsCodes(t *testing.T) {
	for name, tc := range map[string]struct {
		err    error
		status int
		code   perr.ErrorCode
	}{
		"unauthorized": {perr.Unauthorizedf("missing bearer token"), http.StatusUnauthorized, perr.ErrorCodeUnauthorized},
		"rate limited": {perr.New(perr.ErrorCodeTooManyRequests, "too many requests"), http.StatusTooManyRequests, perr.ErrorCodeTooManyRequests},
		"foreign":      {errors.New("boom"), http.StatusInternalServerError, perr.ErrorCodeUnknown},
	} {
		t.Run(name, func(t *testing.T) {
			status, w := pnet.Error(tc.err, "rid-1")
			if status != tc.status || w.StatusCode != tc.status || w.Status != http.StatusText(tc.status) {
				t.Fatalf("status=%d wire=%+v", status, w)
			}
			if w.Code != tc.code || w.RequestID != "rid-1" || w.Error == "" {
				t.Fatalf("wire = %+v", w)
			}
		})
	}
}
