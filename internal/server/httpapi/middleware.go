package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/gophstore/internal/server/auth"
)

type ctxKey string

const userIDKey ctxKey = "userID"

// withAuth resolves the caller from the Authorization bearer token before the
// handler runs. Missing, malformed or invalid tokens get a 401 envelope.
func (s *Server) withAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		var token string
		header := r.Header.Get("Authorization")
		if strings.HasPrefix(header, "Bearer ") {
			token = strings.TrimPrefix(header, "Bearer ")
		}

		if token == "" {
			writeFailure(w, http.StatusUnauthorized, "User not authenticated.")
			return
		}

		userID, err := auth.GetUserIDFromToken(token, s.jwtSecret, s.tokenIssuer, s.tokenAudience)
		if err != nil {
			writeFailure(w, http.StatusUnauthorized, "User not authenticated.")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next(w, r.WithContext(ctx))
	}
}

// callerID returns the authenticated user id stored by withAuth.
func callerID(r *http.Request) (string, bool) {
	userID, ok := r.Context().Value(userIDKey).(string)
	return userID, ok && userID != ""
}
