package events

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/redis/go-redis/v9"
)

// Stream is the subscribe side of the realtime channel.
type Stream interface {
	Subscribe(r *http.Request) (<-chan Event, func())
}

type redisStream struct {
	rdb *redis.Client
}

func NewRedisStream(rdb *redis.Client) Stream {
	return &redisStream{rdb: rdb}
}

func (s *redisStream) Subscribe(r *http.Request) (<-chan Event, func()) {
	ctx := r.Context()
	sub := s.rdb.Subscribe(ctx, channelName)
	out := make(chan Event)

	go func() {
		defer close(out)
		for msg := range sub.Channel() {
			var ev Event
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				log.Printf("events: bad payload on %s: %v", channelName, err)
				continue
			}
			select {
			case out <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, func() { _ = sub.Close() }
}

// SSEHandler streams leaderboard and impact events to a connected
// client. One persistent connection per client session; the client is
// responsible for re-opening after a drop.
type SSEHandler struct {
	stream Stream
}

func NewSSEHandler(stream Stream) *SSEHandler {
	return &SSEHandler{stream: stream}
}

func (h *SSEHandler) Stream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	events, cancel := h.stream.Subscribe(r)
	defer cancel()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			payload, err := json.Marshal(ev)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Kind, payload)
			flusher.Flush()
		}
	}
}
