package events

import (
	"sync"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/lifeguard-ai/lifeguard-backend/internal/models"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestFeed_SubscribeUnsubscribe(t *testing.T) {
	f := NewFeed()

	id, ch := f.Subscribe()
	if f.SubscriberCount() != 1 {
		t.Errorf("expected 1 subscriber, got %d", f.SubscriberCount())
	}

	f.Unsubscribe(id)
	if f.SubscriberCount() != 0 {
		t.Errorf("expected 0 subscribers, got %d", f.SubscriberCount())
	}

	// Channel should be closed
	select {
	case _, ok := <-ch:
		if ok {
			t.Error("expected channel to be closed")
		}
	default:
		t.Error("channel should be closed and readable")
	}
}

func TestFeed_Publish(t *testing.T) {
	f := NewFeed()

	id, ch := f.Subscribe()
	defer f.Unsubscribe(id)

	alert := &models.Alert{
		ID:     "ALT-1",
		Type:   models.AlertTypeDisaster,
		Status: "mock_sent",
	}

	f.Publish(alert)

	select {
	case received := <-ch:
		if received.ID != alert.ID {
			t.Errorf("expected ID %s, got %s", alert.ID, received.ID)
		}
	case <-time.After(100 * time.Millisecond):
		t.Error("timeout waiting for published alert")
	}
}

func TestFeed_ConcurrentSubscribeUnsubscribe(t *testing.T) {
	f := NewFeed()
	var wg sync.WaitGroup

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, _ := f.Subscribe()
			time.Sleep(time.Millisecond)
			f.Unsubscribe(id)
		}()
	}

	wg.Wait()

	if f.SubscriberCount() != 0 {
		t.Errorf("expected 0 subscribers after cleanup, got %d", f.SubscriberCount())
	}
}

func TestFeed_Close(t *testing.T) {
	f := NewFeed()

	_, ch1 := f.Subscribe()
	_, ch2 := f.Subscribe()

	f.Close()

	for _, ch := range []chan *models.Alert{ch1, ch2} {
		if _, ok := <-ch; ok {
			t.Error("expected channel to be closed after Close")
		}
	}
	if f.SubscriberCount() != 0 {
		t.Errorf("expected 0 subscribers after Close, got %d", f.SubscriberCount())
	}
}
