package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"urban-luxury/internal/events"

	"github.com/rs/zerolog"
)

const keepAliveInterval = 25 * time.Second

// Subscriber hands out event subscriptions.
type Subscriber interface {
	Subscribe(ctx context.Context) <-chan events.Event
}

// EventHandler streams change notifications as Server-Sent Events.
type EventHandler struct {
	broker    Subscriber
	keepAlive time.Duration
	logger    zerolog.Logger
}

// NewEventHandler creates a new event handler.
func NewEventHandler(broker Subscriber, logger zerolog.Logger) *EventHandler {
	return &EventHandler{
		broker:    broker,
		keepAlive: keepAliveInterval,
		logger:    logger.With().Str("handler", "event").Logger(),
	}
}

// Stream handles GET /api/events requests. It holds the connection open until
// the client disconnects.
func (h *EventHandler) Stream(w http.ResponseWriter, r *http.Request) {
	rc := http.NewResponseController(w)
	// The stream outlives the server's write timeout.
	_ = rc.SetWriteDeadline(time.Time{})

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	ctx := r.Context()
	sub := h.broker.Subscribe(ctx)

	if _, err := fmt.Fprint(w, ": connected\n\n"); err != nil {
		return
	}
	if err := rc.Flush(); err != nil {
		h.logger.Error().Err(err).Msg("streaming not supported")
		return
	}

	h.logger.Debug().Str("remote_addr", r.RemoteAddr).Msg("event stream opened")

	ticker := time.NewTicker(h.keepAlive)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			h.logger.Debug().Str("remote_addr", r.RemoteAddr).Msg("event stream closed")
			return
		case <-ticker.C:
			if _, err := fmt.Fprint(w, ": ping\n\n"); err != nil {
				return
			}
		case e, ok := <-sub:
			if !ok {
				return
			}
			data, err := json.Marshal(e)
			if err != nil {
				h.logger.Error().Err(err).Msg("failed to encode event")
				continue
			}
			if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", e.Type, data); err != nil {
				return
			}
		}
		if err := rc.Flush(); err != nil {
			return
		}
	}
}
