package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"yamdb/proj/internal/domain/models"
	"yamdb/proj/internal/services/permissions"
	"yamdb/proj/internal/services/users"
)

func (app *Application) Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil && rec != http.ErrAbortHandler {
				err, ok := rec.(error)
				if !ok {
					err = fmt.Errorf("%v", rec)
				}
				w.Header().Set("Connection", "close")
				app.Http.ServerError(w, r, err, "")
			}
		}()

		next.ServeHTTP(w, r)
	})
}

type CtxKey string

const CtxKeyUser CtxKey = "user"

func contextSetUser(r *http.Request, user *models.User) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), CtxKeyUser, user))
}

// contextGetUser returns the principal, anonymous when none was stored.
func contextGetUser(r *http.Request) *models.User {
	user, ok := r.Context().Value(CtxKeyUser).(*models.User)
	if !ok || user == nil {
		return models.AnonymousUser
	}
	return user
}

// Authenticate resolves the bearer token into the stored account. Requests
// without an Authorization header continue as anonymous.
func (app *Application) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Vary", "Authorization")
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			next.ServeHTTP(w, contextSetUser(r, models.AnonymousUser))
			return
		}
		const bearerLength = len("Bearer ")
		if !strings.HasPrefix(authHeader, "Bearer ") || len(authHeader) < bearerLength+1 {
			app.log.Warn("Invalid auth header")
			app.Http.BadRequest(w, r, "Invalid Authorization header, should be 'Bearer <token>'")
			return
		}
		token := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := app.services.Tokens.Parse(token)
		if err != nil {
			app.log.Info("Invalid or expired token", "errMsg", err.Error())
			app.Http.Unauthorized(w, r, "Invalid or expired token")
			return
		}
		user, err := app.services.Users.Principal(r.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, users.ErrUserNotFound) {
				app.log.Warn("token issued for unknown user", "user_id", claims.UserID)
				app.Http.Unauthorized(w, r, "Invalid or expired token")
				return
			}
			app.Http.ServerError(w, r, err, "")
			return
		}
		next.ServeHTTP(w, contextSetUser(r, user))
	})
}

func (app *Application) requireAuthenticatedUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if contextGetUser(r).IsAnonymous() {
			app.Http.Error(w, r, permissions.ErrAuthenticationRequired)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requirePermission rejects the request early when the principal may not
// perform the method's action on any resource of kind.
func (app *Application) requirePermission(kind permissions.Kind) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			action := permissions.ActionFor(r.Method)
			if err := permissions.Authorize(contextGetUser(r), action, permissions.Resource{Kind: kind}); err != nil {
				app.Http.Error(w, r, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
