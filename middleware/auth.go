package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/catastro/minero-backend/userctx"
)

// RequireAuth validates the Bearer token and stores the identity claims in
// the request context. The token may carry a numeric id claim, a sub claim,
// both or neither; downstream actor resolution handles each case.
func RequireAuth(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
				http.Error(w, "Missing or invalid Authorization header", http.StatusUnauthorized)
				return
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			claims, err := parseClaims(tokenString, secret)
			if err != nil {
				http.Error(w, "Invalid or expired token", http.StatusUnauthorized)
				return
			}

			ctx := userctx.WithClaims(r.Context(), claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func parseClaims(tokenString string, secret []byte) (userctx.Claims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return userctx.Claims{}, err
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return userctx.Claims{}, fmt.Errorf("unexpected claims type %T", token.Claims)
	}

	var claims userctx.Claims

	// JSON numbers arrive as float64; only a numeric id claim counts
	if id, ok := mapClaims["id"].(float64); ok {
		claims.ID = int64(id)
		claims.HasID = true
	}
	if sub, ok := mapClaims["sub"].(string); ok {
		claims.Sub = sub
	}

	return claims, nil
}
