package middleware

import (
	"crypto/subtle"
	"net/http"

	"gridiron-be/internal/apperror"
	"gridiron-be/internal/auth"
	"gridiron-be/internal/logger"
	"gridiron-be/internal/utils"

	"go.uber.org/zap"
)

const APIKeyHeader = "X-Api-Key"

const msgInvalidJWT = "Invalid or missing JWT"

var (
	errInvalidAPIKey = apperror.InvalidInput("Invalid API Key")
	errInvalidJWT    = apperror.Unauthorized(msgInvalidJWT)
	errAccessDenied  = apperror.AccessDenied("Account Unauthorized")
)

// AuthMiddleware gates every request in order: API key, public route,
// bearer token, role claim, role-to-route match. Any failure ends the
// request; on success the caller's identity is put on the context.
func AuthMiddleware(apiKey string, tokens *auth.TokenManager, routes *RouteValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log := logger.FromCtx(r.Context())

			if !validAPIKey(r.Header.Get(APIKeyHeader), apiKey) {
				utils.WriteError(w, r, errInvalidAPIKey)
				return
			}

			path := r.URL.Path
			if !routes.IsSecured(path) {
				next.ServeHTTP(w, r)
				return
			}

			tokenStr := auth.ExtractAccessToken(r)
			if tokenStr == "" {
				utils.WriteError(w, r, errInvalidJWT)
				return
			}

			claims, err := tokens.Parse(tokenStr)
			if err != nil {
				err = apperror.Wrap(apperror.KindUnauthorized, msgInvalidJWT, err)
				log.Info("jwt rejected", zap.String("path", path), zap.Error(err))
				utils.WriteError(w, r, err)
				return
			}

			if !allowed(claims, routes, path) {
				log.Info("route denied",
					zap.String("path", path),
					zap.Int64("user_id", claims.UserID),
					zap.String("email", claims.Email()),
					zap.Strings("roles", claims.Roles),
				)
				utils.WriteError(w, r, errAccessDenied)
				return
			}

			ctx := utils.SetUserContext(r.Context(), claims.UserID)
			ctx = logger.WithUserID(ctx, claims.UserID)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// allowed gives ADMIN precedence: an admin is only checked against admin
// routes, even when the token also carries CUSTOMER.
func allowed(claims *auth.Claims, routes *RouteValidator, path string) bool {
	switch {
	case claims.HasRole(auth.RoleAdmin):
		return routes.IsAdminRoute(path)
	case claims.HasRole(auth.RoleCustomer):
		return routes.IsCustomerRoute(path)
	default:
		return false
	}
}

func validAPIKey(got, want string) bool {
	if got == "" || want == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}
