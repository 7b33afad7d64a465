package middleware

import (
	"net/http"

	"travel-agency/pkg/utils"

	"go.uber.org/zap"
)

// Authenticate resolves the caller from the auth cookies and stores the
// principal in the request context. The admin cookie wins over the customer
// one. Missing or invalid tokens leave the request anonymous.
func Authenticate(secret string, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal := resolvePrincipal(r, secret, logger)
			ctx := utils.SetPrincipal(r.Context(), principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func resolvePrincipal(r *http.Request, secret string, logger *zap.Logger) utils.Principal {
	// Admin cookie only grants admin rights when the token carries the admin role
	if claims := cookieClaims(r, utils.AdminCookie, secret, logger); claims != nil && claims.Role == "admin" {
		return utils.Principal{Kind: utils.PrincipalAdmin, UserID: claims.UserID, Email: claims.Email, Name: claims.Name}
	}

	if claims := cookieClaims(r, utils.CustomerCookie, secret, logger); claims != nil && claims.Role == "customer" {
		return utils.Principal{Kind: utils.PrincipalCustomer, UserID: claims.UserID, Email: claims.Email, Name: claims.Name}
	}

	return utils.GetPrincipal(r.Context())
}

func cookieClaims(r *http.Request, name, secret string, logger *zap.Logger) *utils.Claims {
	cookie, err := r.Cookie(name)
	if err != nil || cookie.Value == "" {
		return nil
	}

	claims, err := utils.ParseToken(secret, cookie.Value)
	if err != nil {
		logger.Warn("Invalid auth token",
			zap.String("cookie", name),
			zap.String("path", r.URL.Path),
			zap.Error(err))
		return nil
	}
	return claims
}

// RequireCustomer - any logged in user, admins included
func RequireCustomer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !utils.GetPrincipal(r.Context()).IsAuthenticated() {
			utils.ResponseUnauthorized(w, "Authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin - 401 for anonymous callers, 403 for customers
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal := utils.GetPrincipal(r.Context())
		switch {
		case !principal.IsAuthenticated():
			utils.ResponseUnauthorized(w, "Authentication required")
			return
		case !principal.IsAdmin():
			utils.ResponseForbidden(w, "Admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}
