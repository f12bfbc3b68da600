package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/whisprnet/whispr-api/models"
)

// Middleware resolves the bearer token on the request into a caller
// principal. Identity issuance happens outside this process; here the
// token signature is verified and the subject claim becomes the opaque
// principal. Requests without a valid token proceed as the anonymous
// principal and the core guard decides what anonymous callers may do.
func Middleware(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")

			principal := models.Anonymous
			if token := bearerToken(r); token != "" {
				subject, err := verifyToken(token, secret)
				if err != nil {
					zap.S().Debugw("rejected bearer token",
						"url", r.URL,
						"error", err,
					)
				} else {
					principal = models.Principal(subject)
				}
			}

			next.ServeHTTP(w, r.WithContext(ContextWithPrincipal(r.Context(), principal)))
		})
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}

func verifyToken(raw, secret string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", err
	}
	if !token.Valid || claims.Subject == "" {
		return "", fmt.Errorf("token has no subject")
	}
	return claims.Subject, nil
}
