// Package auth verifies HS256 bearer tokens for operator endpoints.
package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/example/moviescreen/internal/platform/api"
	"github.com/example/moviescreen/internal/platform/httpserver"
)

const RoleAdmin = "admin"

type ctxKeyUserID struct{}
type ctxKeyRole struct{}

func UserIDFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(ctxKeyUserID{}).(string)
	return v, ok
}

func RoleFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(ctxKeyRole{}).(string)
	return v, ok
}

type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

type JWTVerifier struct {
	Secret []byte
}

func (v JWTVerifier) Parse(tokenString string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected signing method")
		}
		return v.Secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

func bearerToken(r *http.Request) (string, bool) {
	authz := strings.TrimSpace(r.Header.Get("Authorization"))
	scheme, tok, ok := strings.Cut(authz, " ")
	if !ok || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	tok = strings.TrimSpace(tok)
	return tok, tok != ""
}

// RequireUser validates the bearer token and injects subject and role into the context.
func RequireUser(verifier JWTVerifier) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rid := httpserver.RequestIDFromContext(r.Context())
			tok, ok := bearerToken(r)
			if !ok {
				api.WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing bearer token", rid, nil)
				return
			}
			claims, err := verifier.Parse(tok)
			if err != nil || strings.TrimSpace(claims.Subject) == "" {
				api.WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "invalid token", rid, nil)
				return
			}
			ctx := context.WithValue(r.Context(), ctxKeyUserID{}, claims.Subject)
			if role := strings.TrimSpace(claims.Role); role != "" {
				ctx = context.WithValue(ctx, ctxKeyRole{}, role)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin must run after RequireUser.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, _ := RoleFromContext(r.Context())
		if !strings.EqualFold(strings.TrimSpace(role), RoleAdmin) {
			api.WriteError(w, http.StatusForbidden, "FORBIDDEN", "admin role required", httpserver.RequestIDFromContext(r.Context()), nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// AdminOnly chains RequireUser and RequireAdmin.
func AdminOnly(verifier JWTVerifier) func(next http.Handler) http.Handler {
	user := RequireUser(verifier)
	return func(next http.Handler) http.Handler {
		return user(RequireAdmin(next))
	}
}
