// PropKeep - Property Maintenance Ticketing and Notifications
// Copyright 2026 The PropKeep Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/propkeep/propkeep

package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/propkeep/propkeep/internal/logging"
	"github.com/propkeep/propkeep/internal/models"
	"github.com/propkeep/propkeep/internal/store"
)

type contextKey string

const userKey contextKey = "user"

// UserFromContext retrieves the authenticated user placed by Middleware.
// Returns nil when the request was not authenticated.
func UserFromContext(ctx context.Context) *models.User {
	if user, ok := ctx.Value(userKey).(*models.User); ok {
		return user
	}
	return nil
}

// ContextWithUser stores an authenticated user in the context. Exported
// for handler tests.
func ContextWithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// Unauthorized is the hook the API layer installs so middleware responses
// use the same envelope as everything else.
type Unauthorized func(w http.ResponseWriter, message string)

// Middleware validates the bearer token, loads the user, and rejects
// inactive accounts. The user is attached to the request context.
func Middleware(jwtManager *JWTManager, st *store.Store, reject Unauthorized) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" || !strings.HasPrefix(header, "Bearer ") {
				reject(w, "missing bearer token")
				return
			}

			claims, err := jwtManager.ValidateToken(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				logging.Ctx(r.Context()).Debug().Err(err).Msg("token validation failed")
				reject(w, "invalid or expired token")
				return
			}

			user, err := st.GetUser(r.Context(), claims.UserID)
			if err != nil {
				reject(w, "account no longer exists")
				return
			}
			if !user.IsActive {
				reject(w, "account is deactivated")
				return
			}

			next.ServeHTTP(w, r.WithContext(ContextWithUser(r.Context(), user)))
		})
	}
}

// RequireRoles gates a route subtree to the listed roles. Responses go
// through the injected forbidden writer so the envelope stays uniform.
func RequireRoles(forbidden func(w http.ResponseWriter, message string), roles ...models.Role) func(http.Handler) http.Handler {
	allowed := make(map[models.Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := UserFromContext(r.Context())
			if user == nil || !allowed[user.Role] {
				forbidden(w, "insufficient role")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
