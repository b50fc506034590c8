package httputil

import (
	"net/http"
	"strings"

	"vocastant/internal/config"
	"vocastant/internal/service/docaccess"
)

// RoomHeader carries the room name on HTTP and streamable MCP requests.
const RoomHeader = "X-Room-Name"

// WithRoom scopes the request context to a room.
// Tools read it back through docaccess.RoomProvider.
func WithRoom(r *http.Request, room string) *http.Request {
	ctx := docaccess.WithRoom(r.Context(), room)
	return r.WithContext(ctx)
}

// GetRoom retrieves the room from context, returns empty string if not set
func GetRoom(r *http.Request) string {
	room, _ := docaccess.RoomFromContext(r.Context())
	return room
}

// RoomFromRequest reads the room from the X-Room-Name header or the room query parameter.
// Names longer than config.MaxRoomNameLength are ignored.
func RoomFromRequest(r *http.Request) string {
	room := strings.TrimSpace(r.Header.Get(RoomHeader))
	if room == "" {
		room = strings.TrimSpace(r.URL.Query().Get("room"))
	}
	if len(room) > config.MaxRoomNameLength {
		return ""
	}
	return room
}
