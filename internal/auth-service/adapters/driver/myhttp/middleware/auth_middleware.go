package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"fleet-ops/internal/auth-service/adapters/driver/myhttp/handle"
	"fleet-ops/internal/roles"

	"github.com/golang-jwt/jwt"
)

type AuthMiddleware struct {
	accessSecret string
}

func NewAuthMiddleware(accessSecret string) *AuthMiddleware {
	return &AuthMiddleware{
		accessSecret: accessSecret,
	}
}

// Require gates the handler behind a verified JWT and the given capability.
func (am *AuthMiddleware) Require(cap roles.Capability, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString := r.Header.Get("Authorization")
		if tokenString == "" {
			handle.JsonError(w, http.StatusUnauthorized, fmt.Errorf("Empty JWT-Token"))
			return
		}
		tokenString = strings.TrimPrefix(tokenString, "Bearer ")
		token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
			return []byte(am.accessSecret), nil
		})
		if err != nil {
			handle.JsonError(w, http.StatusUnauthorized, fmt.Errorf("Failed to parse JWT-Token"))
			return
		}

		if !token.Valid {
			handle.JsonError(w, http.StatusUnauthorized, fmt.Errorf("Invalid JWT-Token"))
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			handle.JsonError(w, http.StatusUnauthorized, fmt.Errorf("Invalid claims"))
			return
		}

		userId, ok := claims["user_id"].(string)
		if !ok {
			handle.JsonError(w, http.StatusUnauthorized, fmt.Errorf("User not found in token"))
			return
		}

		roleClaim, ok := claims["role"].(string)
		if !ok {
			handle.JsonError(w, http.StatusUnauthorized, fmt.Errorf("Role not found in token"))
			return
		}

		role, err := roles.Parse(roleClaim)
		if err != nil {
			handle.JsonError(w, http.StatusUnauthorized, err)
			return
		}

		if !role.Can(cap) {
			handle.JsonError(w, http.StatusForbidden, fmt.Errorf("role %s cannot %s", role, cap))
			return
		}

		r.Header.Set("X-UserId", userId)
		r.Header.Set("X-Role", string(role))

		next.ServeHTTP(w, r)
	})
}
