package middleware

import (
	"net/http"

	"vocastant/internal/httputil"
)

// RoomMiddleware scopes each request to the room named by the X-Room-Name
// header or room query parameter. Requests without one fall through to the
// ambient default room.
func RoomMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if room := httputil.RoomFromRequest(r); room != "" {
				r = httputil.WithRoom(r, room)
			}
			next.ServeHTTP(w, r)
		})
	}
}
