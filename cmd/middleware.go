package main

import (
	"fmt"
	"net/http"
	"strings"

	"pieceJobBack/internal/handlers"
)

func secureHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-XSS-Protection", "1; mode=block")
		w.Header().Set("X-Frame-Options", "deny")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		next.ServeHTTP(w, r)
	})
}

func makeResponseJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

func (app *application) logRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		app.infoLog.Printf("%s - %s %s %s", r.RemoteAddr, r.Proto, r.Method, r.URL.RequestURI())
		next.ServeHTTP(w, r)
	})
}

func (app *application) recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				w.Header().Set("Connection", "close")
				app.serverError(w, fmt.Errorf("%s", err))
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// identify resolves the caller and stores it in the request context. With a
// JWT secret configured only bearer tokens are accepted; otherwise the
// X-User-ID header is trusted. Browsers cannot set headers on websocket
// upgrades, so the token or user_id may also come from the query string.
// Anonymous requests pass through; handlers decide whether they need a user.
func (app *application) identify(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var userID string

		if app.tokens != nil {
			token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
			if token == "" {
				token = r.URL.Query().Get("token")
			}
			if token != "" {
				sub, err := app.tokens.Parse(token)
				if err != nil {
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusUnauthorized)
					w.Write([]byte(`{"error":"invalid or expired token"}`))
					return
				}
				userID = sub
			}
		} else {
			userID = strings.TrimSpace(r.Header.Get("X-User-ID"))
			if userID == "" {
				userID = strings.TrimSpace(r.URL.Query().Get("user_id"))
			}
		}

		if userID != "" {
			r = r.WithContext(handlers.WithUserID(r.Context(), userID))
		}
		next.ServeHTTP(w, r)
	})
}
