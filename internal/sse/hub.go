package sse

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

type Event struct {
	ID   int64       `json:"id"`
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

type subscriber struct {
	ch chan Event
}

// Hub fans task-change events out to SSE subscribers per solution and
// mirrors them into a Redis list so late subscribers can replay.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[uint][]*subscriber // solutionID -> subscribers
	rdb         *redis.Client
}

func NewHub(rdb *redis.Client) *Hub {
	return &Hub{
		subscribers: make(map[uint][]*subscriber),
		rdb:         rdb,
	}
}

func streamKey(solutionID uint) string {
	return fmt.Sprintf("timeline:stream:%d", solutionID)
}

func (h *Hub) Subscribe(solutionID uint) (<-chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	sub := &subscriber{ch: make(chan Event, 256)}
	h.subscribers[solutionID] = append(h.subscribers[solutionID], sub)

	unsub := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		subs := h.subscribers[solutionID]
		for i, s := range subs {
			if s == sub {
				h.subscribers[solutionID] = append(subs[:i], subs[i+1:]...)
				close(sub.ch)
				break
			}
		}
		if len(h.subscribers[solutionID]) == 0 {
			delete(h.subscribers, solutionID)
		}
	}
	return sub.ch, unsub
}

func (h *Hub) Broadcast(solutionID uint, event Event) {
	ctx := context.Background()
	key := streamKey(solutionID)

	data, _ := json.Marshal(event)
	h.rdb.RPush(ctx, key, string(data))

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, sub := range h.subscribers[solutionID] {
		select {
		case sub.ch <- event:
		default:
			// drop if full
		}
	}
}

func (h *Hub) ReplayFrom(solutionID uint, fromID int64) ([]Event, error) {
	ctx := context.Background()

	items, err := h.rdb.LRange(ctx, streamKey(solutionID), fromID, -1).Result()
	if err != nil {
		return nil, err
	}

	events := make([]Event, 0, len(items))
	for i, item := range items {
		var ev Event
		if err := json.Unmarshal([]byte(item), &ev); err != nil {
			continue
		}
		ev.ID = fromID + int64(i)
		events = append(events, ev)
	}
	return events, nil
}

func (h *Hub) SetExpire(solutionID uint, ttl time.Duration) {
	h.rdb.Expire(context.Background(), streamKey(solutionID), ttl)
}

func ParseLastEventID(header string) int64 {
	if header == "" {
		return 0
	}
	id, _ := strconv.ParseInt(header, 10, 64)
	return id
}
