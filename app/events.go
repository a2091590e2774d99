package app

import "sync"

type EventType int

const (
	// EventPathChanged fires when a load commits a path different from the
	// previous one.
	EventPathChanged EventType = iota
	// EventListingChanged fires once per committed listing. Row indices held
	// from before the event are no longer valid.
	EventListingChanged
)

func (t EventType) String() string {
	switch t {
	case EventPathChanged:
		return "path_changed"
	case EventListingChanged:
		return "listing_changed"
	}
	return "unknown"
}

// Event is delivered to model subscribers.
type Event struct {
	Type EventType
	Path string
	Rows int
}

// Listener receives events synchronously on the thread that committed the
// change. It must not call back into the model's mutating methods.
type Listener func(Event)

type subscriber struct {
	id int
	fn Listener
}

// Broadcaster fans events out to listeners in subscription order.
type Broadcaster struct {
	mu          sync.RWMutex
	nextID      int
	subscribers []subscriber
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{}
}

// Subscribe registers fn and returns a function that removes it again.
func (b *Broadcaster) Subscribe(fn Listener) (unsubscribe func()) {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.subscribers = append(b.subscribers, subscriber{id: id, fn: fn})
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { b.remove(id) })
	}
}

func (b *Broadcaster) remove(id int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, s := range b.subscribers {
		if s.id == id {
			b.subscribers = append(b.subscribers[:i:i], b.subscribers[i+1:]...)
			return
		}
	}
}

// Publish calls every listener with e.
func (b *Broadcaster) Publish(e Event) {
	b.mu.RLock()
	subs := make([]subscriber, len(b.subscribers))
	copy(subs, b.subscribers)
	b.mu.RUnlock()

	for _, s := range subs {
		s.fn(e)
	}
}

// Count returns the current number of subscribers.
func (b *Broadcaster) Count() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}
