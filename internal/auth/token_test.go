package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractAccessToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{name: "Bearer header", header: "Bearer header_token", want: "header_token"},
		{name: "Lowercase scheme", header: "bearer abc.def.ghi", want: "abc.def.ghi"},
		{name: "Extra spaces", header: "Bearer    spaced ", want: "spaced"},
		{name: "Missing header", header: ""},
		{name: "Scheme only", header: "Bearer"},
		{name: "Basic scheme", header: "Basic user:pass"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			assert.Equal(t, tt.want, ExtractAccessToken(req))
		})
	}

	t.Run("Cookie ignored", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "access_token", Value: "cookie_token"})

		assert.Empty(t, ExtractAccessToken(req))
	})
}
