package middleware

import (
	"context"
	"net/http"
	"strings"
)

type CtxKey int

const (
	CtxSessionToken CtxKey = iota
)

// SessionToken moves the bearer token, or the token query parameter used by
// browser websocket clients, into the request context.
func SessionToken() Middleware {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok {
				token = r.URL.Query().Get("token")
			}
			if token == "" {
				h.ServeHTTP(w, r)
				return
			}
			ctx := context.WithValue(r.Context(), CtxSessionToken, token)
			h.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func TokenFrom(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(CtxSessionToken).(string)
	return token, ok
}
