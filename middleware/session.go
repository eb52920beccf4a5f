package middleware

import (
	"context"
	"net/http"
	"time"

	"kesar-storefront/utils"

	"github.com/google/uuid"
)

// Key type for context
type contextKey string

const SessionContextKey = contextKey("session")

const sessionCookie = "storefront_session"

// SessionMiddleware guarantees every request carries a cart session. It
// parses the session cookie's JWT and mints a fresh anonymous session when
// the cookie is missing or invalid. The cart ID in the claims namespaces
// the shopper's persisted cart.
func SessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var cartID string
		if cookie, err := r.Cookie(sessionCookie); err == nil {
			if claims, err := utils.ParseSessionToken(cookie.Value); err == nil {
				cartID = claims.CartID
			}
		}

		if cartID == "" {
			cartID = uuid.NewString()
			token, err := utils.GenerateSessionToken(cartID)
			if err != nil {
				http.Error(w, "Could not create session", http.StatusInternalServerError)
				return
			}
			http.SetCookie(w, &http.Cookie{
				Name:     sessionCookie,
				Value:    token,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
				MaxAge:   int((30 * 24 * time.Hour).Seconds()),
			})
		}

		ctx := context.WithValue(r.Context(), SessionContextKey, cartID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SessionID returns the cart session attached by SessionMiddleware.
func SessionID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(SessionContextKey).(string)
	return id, ok
}
