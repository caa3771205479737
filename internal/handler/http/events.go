package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/cmlabs-hris/attendance-kiosk/internal/pkg/jwt"
	"github.com/cmlabs-hris/attendance-kiosk/internal/pkg/sse"
)

// Subscriber opens a live feed on a topic.
type Subscriber interface {
	Subscribe(topic string) (<-chan sse.Event, func())
}

type EventHandler interface {
	Stream(w http.ResponseWriter, r *http.Request)
}

type eventHandlerImpl struct {
	hub        Subscriber
	jwtService jwt.Service
	keepalive  time.Duration
}

func NewEventHandler(hub Subscriber, jwtService jwt.Service) EventHandler {
	return &eventHandlerImpl{
		hub:        hub,
		jwtService: jwtService,
		keepalive:  30 * time.Second,
	}
}

// Stream pushes roster and ledger changes to an admin panel
func (h *eventHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	// EventSource cannot set headers, so the session token travels in the query
	tokenStr := r.URL.Query().Get("token")
	if tokenStr == "" {
		http.Error(w, "Missing token", http.StatusUnauthorized)
		return
	}

	if err := h.jwtService.ValidateAdminToken(tokenStr); err != nil {
		http.Error(w, "Invalid token", http.StatusUnauthorized)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	events, cleanup := h.hub.Subscribe(sse.TopicAdmin)
	defer cleanup()

	fmt.Fprint(w, "event: connected\ndata: {\"status\":\"connected\"}\n\n")
	flusher.Flush()

	keepalive := time.NewTicker(h.keepalive)
	defer keepalive.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(event.Data)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Event, data)
			flusher.Flush()

		case <-keepalive.C:
			fmt.Fprintf(w, "event: ping\ndata: {\"timestamp\":%d}\n\n", time.Now().Unix())
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}
