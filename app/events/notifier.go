package events

import (
	"sync"
)

type Stage string

const (
	StageScraping    Stage = "scraping"
	StageSummarizing Stage = "summarizing"
	StagePersisting  Stage = "persisting"
	StageDone        Stage = "done"
)

// Event reports ingestion progress for a URL.
type Event struct {
	URL      string
	Stage    Stage
	Degraded bool
}

// Notifier is an explicit broadcast channel for ingestion progress. It is
// passed by reference to the components that need it instead of living as a
// package-level mutable slot.
type Notifier struct {
	mu     sync.Mutex
	subs   map[int]chan Event
	nextID int
}

func NewNotifier() *Notifier {
	return &Notifier{
		subs: make(map[int]chan Event),
	}
}

// Subscribe registers a listener and returns its ID and channel. The channel
// is buffered; slow listeners miss events rather than blocking publishers.
func (n *Notifier) Subscribe() (int, <-chan Event) {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.nextID
	n.nextID++

	ch := make(chan Event, 16)
	n.subs[id] = ch

	return id, ch
}

// Unsubscribe removes a listener and closes its channel.
func (n *Notifier) Unsubscribe(id int) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if ch, ok := n.subs[id]; ok {
		close(ch)
		delete(n.subs, id)
	}
}

// Publish delivers an event to every subscriber without blocking.
func (n *Notifier) Publish(event Event) {
	n.mu.Lock()
	defer n.mu.Unlock()

	for _, ch := range n.subs {
		select {
		case ch <- event:
		default:
		}
	}
}
