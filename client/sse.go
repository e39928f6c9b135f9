package client

import (
	"bufio"
	"context"
	"log"
	"net/http"
	"strings"
)

// subscription is the realtime channel: one persistent connection per
// store instance, no reconnect. Handlers for the two event kinds
// currently just log; no store mutation is defined for them.
type subscription struct {
	cancel context.CancelFunc
	done   chan struct{}
}

func subscribe(baseURL string) *subscription {
	ctx, cancel := context.WithCancel(context.Background())
	sub := &subscription{cancel: cancel, done: make(chan struct{})}

	go func() {
		defer close(sub.done)
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/api/events", nil)
		if err != nil {
			return
		}
		req.Header.Set("Accept", "text/event-stream")
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			log.Printf("events: subscribe: %v", err)
			return
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			log.Printf("events: subscribe status %d", resp.StatusCode)
			return
		}

		var kind string
		scanner := bufio.NewScanner(resp.Body)
		for scanner.Scan() {
			line := scanner.Text()
			switch {
			case strings.HasPrefix(line, "event: "):
				kind = strings.TrimPrefix(line, "event: ")
			case strings.HasPrefix(line, "data: "):
				handleEvent(kind, strings.TrimPrefix(line, "data: "))
			}
		}
	}()

	return sub
}

func handleEvent(kind, data string) {
	switch kind {
	case "leaderboard.updated":
		log.Printf("events: leaderboard updated: %s", data)
	case "impact.updated":
		log.Printf("events: impact updated: %s", data)
	}
}

func (s *subscription) close() {
	s.cancel()
	<-s.done
}
