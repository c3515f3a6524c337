package auth

import (
	"net/http"
	"strings"
)

// ExtractAccessToken returns the bearer token from the Authorization header.
// The scheme is matched case-insensitively. It returns "" when the header is
// missing, uses another scheme or carries no token.
func ExtractAccessToken(r *http.Request) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(r.Header.Get("Authorization")), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
