// Package docaccess resolves which room a tool call belongs to and which
// document a spoken identifier refers to within that room.
package docaccess

import (
	"context"
	"log/slog"
	"strings"
)

// UnknownRoom is returned when no strategy yields a usable room name.
const UnknownRoom = "unknown-room"

// RoomNamer is anything that can name its room directly.
type RoomNamer interface {
	RoomName() string
}

// RoomHolder exposes the room object of a session.
type RoomHolder interface {
	Room() RoomNamer
}

// JobHolder exposes the job context a session was dispatched with.
type JobHolder interface {
	JobContext() RoomHolder
}

type roomKey struct{}
type sessionKey struct{}

// WithRoom returns a context carrying an explicit room name.
func WithRoom(ctx context.Context, room string) context.Context {
	return context.WithValue(ctx, roomKey{}, room)
}

// WithSession returns a context carrying a framework session object.
// The session is later inspected with the same strategies as a direct context.
func WithSession(ctx context.Context, session any) context.Context {
	return context.WithValue(ctx, sessionKey{}, session)
}

// RoomFromContext returns the explicit room stored by WithRoom, if any.
func RoomFromContext(ctx context.Context) (string, bool) {
	room, ok := ctx.Value(roomKey{}).(string)
	return room, ok
}

// RoomProvider extracts the current room from an opaque execution context.
type RoomProvider struct {
	ambient func() (string, bool)
	logger  *slog.Logger
}

// NewRoomProvider creates a provider. ambient is consulted last and may be nil.
func NewRoomProvider(ambient func() (string, bool), logger *slog.Logger) *RoomProvider {
	if logger == nil {
		logger = slog.Default()
	}
	return &RoomProvider{ambient: ambient, logger: logger}
}

// StaticRoom returns an ambient accessor for a fixed room (e.g. DEFAULT_ROOM).
// An empty room yields an accessor that never matches.
func StaticRoom(room string) func() (string, bool) {
	return func() (string, bool) {
		return room, room != ""
	}
}

type strategy struct {
	name   string
	lookup func(any) string
}

var strategies = []strategy{
	{name: "direct", lookup: directRoom},
	{name: "room_field", lookup: roomFieldRoom},
	{name: "job_context", lookup: jobContextRoom},
	{name: "context_value", lookup: contextValueRoom},
}

// Resolve returns the first usable room name found in execCtx. It never
// fails: when every strategy comes up empty it returns UnknownRoom.
func (p *RoomProvider) Resolve(execCtx any) string {
	for _, s := range strategies {
		if room := p.try(s.name, func() string { return s.lookup(execCtx) }); room != "" {
			return room
		}
	}

	if p.ambient != nil {
		room := p.try("ambient", func() string {
			if name, ok := p.ambient(); ok {
				return name
			}
			return ""
		})
		if room != "" {
			return room
		}
	}

	p.logger.Debug("room not found, using fallback", "room", UnknownRoom)
	return UnknownRoom
}

// try runs one lookup, treating blank names and panics as a miss.
func (p *RoomProvider) try(name string, lookup func() string) (room string) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Debug("room lookup panicked", "strategy", name, "panic", r)
			room = ""
		}
	}()

	room = strings.TrimSpace(lookup())
	if room != "" {
		p.logger.Debug("room resolved", "strategy", name, "room", room)
	}
	return room
}

func directRoom(v any) string {
	if namer, ok := v.(RoomNamer); ok && namer != nil {
		return namer.RoomName()
	}
	return ""
}

func roomFieldRoom(v any) string {
	holder, ok := v.(RoomHolder)
	if !ok || holder == nil {
		return ""
	}
	if room := holder.Room(); room != nil {
		return room.RoomName()
	}
	return ""
}

func jobContextRoom(v any) string {
	job, ok := v.(JobHolder)
	if !ok || job == nil {
		return ""
	}
	if holder := job.JobContext(); holder != nil {
		return roomFieldRoom(holder)
	}
	return ""
}

func contextValueRoom(v any) string {
	ctx, ok := v.(context.Context)
	if !ok || ctx == nil {
		return ""
	}
	if room, ok := RoomFromContext(ctx); ok && strings.TrimSpace(room) != "" {
		return room
	}
	session := ctx.Value(sessionKey{})
	if session == nil {
		return ""
	}
	if _, nested := session.(context.Context); nested {
		return ""
	}
	for _, lookup := range []func(any) string{directRoom, roomFieldRoom, jobContextRoom} {
		if room := strings.TrimSpace(lookup(session)); room != "" {
			return room
		}
	}
	return ""
}
