package events

import (
	"testing"
	"time"
)

func TestNotifier_PublishReachesSubscribers(t *testing.T) {
	notifier := NewNotifier()

	id1, ch1 := notifier.Subscribe()
	id2, ch2 := notifier.Subscribe()
	defer notifier.Unsubscribe(id1)
	defer notifier.Unsubscribe(id2)

	notifier.Publish(Event{URL: "https://example.com", Stage: StageScraping})

	for _, ch := range []<-chan Event{ch1, ch2} {
		select {
		case event := <-ch:
			if event.Stage != StageScraping {
				t.Errorf("Expected stage %s, got %s", StageScraping, event.Stage)
			}
			if event.URL != "https://example.com" {
				t.Errorf("Unexpected URL: %s", event.URL)
			}
		case <-time.After(time.Second):
			t.Fatal("Timed out waiting for event")
		}
	}
}

func TestNotifier_PublishNeverBlocks(t *testing.T) {
	notifier := NewNotifier()

	id, _ := notifier.Subscribe()
	defer notifier.Unsubscribe(id)

	// Nobody reads the channel; publishing far past the buffer must not block
	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			notifier.Publish(Event{URL: "https://example.com", Stage: StageDone})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish blocked on a slow subscriber")
	}
}

func TestNotifier_UnsubscribeClosesChannel(t *testing.T) {
	notifier := NewNotifier()

	id, ch := notifier.Subscribe()
	notifier.Unsubscribe(id)

	select {
	case _, ok := <-ch:
		if ok {
			t.Error("Expected closed channel after unsubscribe")
		}
	case <-time.After(time.Second):
		t.Fatal("Channel not closed after unsubscribe")
	}

	// Publishing after unsubscribe must not panic
	notifier.Publish(Event{Stage: StageDone})
}
