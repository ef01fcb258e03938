// Package events is an in-process fan-out of dispatched alerts.
// Subscribers with full buffers are skipped rather than blocking the
// alerting pipeline.
package events

import (
	"sync"
	"sync/atomic"

	"github.com/lifeguard-ai/lifeguard-backend/internal/models"
)

type Feed struct {
	subscribers map[uint64]chan *models.Alert
	nextID      atomic.Uint64
	mu          sync.RWMutex
}

func NewFeed() *Feed {
	return &Feed{
		subscribers: make(map[uint64]chan *models.Alert),
	}
}

func (f *Feed) Subscribe() (uint64, chan *models.Alert) {
	id := f.nextID.Add(1)
	ch := make(chan *models.Alert, 100)

	f.mu.Lock()
	f.subscribers[id] = ch
	f.mu.Unlock()

	return id, ch
}

func (f *Feed) Unsubscribe(id uint64) {
	f.mu.Lock()
	if ch, ok := f.subscribers[id]; ok {
		close(ch)
		delete(f.subscribers, id)
	}
	f.mu.Unlock()
}

func (f *Feed) Publish(a *models.Alert) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	for _, ch := range f.subscribers {
		select {
		case ch <- a:
		default:
			// Skip slow subscribers
		}
	}
}

func (f *Feed) SubscriberCount() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.subscribers)
}

// Close closes all subscriber channels so consumers exit gracefully.
func (f *Feed) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, ch := range f.subscribers {
		close(ch)
		delete(f.subscribers, id)
	}
}
