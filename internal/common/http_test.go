package common_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/techsolutions/storefront/internal/common"
)

func TestClientIP(t *testing.T) {
	cases := []struct {
		name       string
		forwarded  string
		realIP     string
		remoteAddr string
		want       string
	}{
		{"forwarded single hop", "203.0.113.7", "", "10.0.0.1:4000", "203.0.113.7"},
		{"forwarded first hop wins", " 203.0.113.7 , 10.0.0.2", "", "10.0.0.1:4000", "203.0.113.7"},
		{"real ip fallback", "", "203.0.113.9", "10.0.0.1:4000", "203.0.113.9"},
		{"remote addr strips port", "", "", "192.0.2.4:51234", "192.0.2.4"},
		{"remote addr without port", "", "", "192.0.2.4", "192.0.2.4"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			req.RemoteAddr = tc.remoteAddr
			if tc.forwarded != "" {
				req.Header.Set("X-Forwarded-For", tc.forwarded)
			}
			if tc.realIP != "" {
				req.Header.Set("X-Real-IP", tc.realIP)
			}
			require.Equal(t, tc.want, common.ClientIP(req))
		})
	}
}

func TestClientIPNilRequest(t *testing.T) {
	require.Empty(t, common.ClientIP(nil))
}
