package notify

import (
	"sort"
	"sync"
)

// Kind identifies a notification variant.
type Kind int

const (
	ServerStateChanged Kind = iota
	ServerMemoryChanged
	DownloadsChanged
	InstalledListChanged
	SettingsVisibilityToggled
	PreferencesChanged
)

// Kinds lists every notification variant in declaration order.
func Kinds() []Kind {
	return []Kind{
		ServerStateChanged,
		ServerMemoryChanged,
		DownloadsChanged,
		InstalledListChanged,
		SettingsVisibilityToggled,
		PreferencesChanged,
	}
}

func (k Kind) String() string {
	switch k {
	case ServerStateChanged:
		return "server-state"
	case ServerMemoryChanged:
		return "server-memory"
	case DownloadsChanged:
		return "downloads"
	case InstalledListChanged:
		return "installed-list"
	case SettingsVisibilityToggled:
		return "settings-visibility"
	case PreferencesChanged:
		return "preferences"
	default:
		return "unknown"
	}
}

// Event is a single notification. Subject optionally names the catalog entry
// the notification is about.
type Event struct {
	Kind    Kind
	Subject string
}

// Handler receives dispatched events on the UI thread.
type Handler func(Event)

// Subscription identifies a registered handler.
type Subscription struct {
	id   uint64
	kind Kind
}

// Valid reports whether the subscription was issued by a bus.
func (s Subscription) Valid() bool {
	return s.id != 0
}

// Bus carries notifications from producer goroutines to the UI thread.
// Post may be called from anywhere; Subscribe, Unsubscribe and Dispatch are
// expected to run on the goroutine that owns the menu.
type Bus struct {
	queue chan Event

	mu       sync.Mutex
	next     uint64
	handlers map[Kind]map[uint64]Handler
}

// New creates a bus with the given queue capacity.
func New(capacity int) *Bus {
	if capacity <= 0 {
		capacity = 64
	}
	return &Bus{
		queue:    make(chan Event, capacity),
		handlers: make(map[Kind]map[uint64]Handler),
	}
}

// Post enqueues an event without blocking. Refresh-only kinds are dropped when
// the queue is full since a later event of the same kind supersedes them;
// structural kinds are handed to a goroutine that waits for room, so posting
// from the consuming goroutine cannot deadlock.
func (b *Bus) Post(evt Event) {
	if b == nil {
		return
	}
	select {
	case b.queue <- evt:
		return
	default:
	}
	switch evt.Kind {
	case DownloadsChanged, ServerMemoryChanged:
	default:
		go func() { b.queue <- evt }()
	}
}

// Events exposes the queue for the UI loop.
func (b *Bus) Events() <-chan Event {
	return b.queue
}

// Subscribe registers handler for kind.
func (b *Bus) Subscribe(kind Kind, handler Handler) Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.next++
	set, ok := b.handlers[kind]
	if !ok {
		set = make(map[uint64]Handler)
		b.handlers[kind] = set
	}
	set[b.next] = handler
	return Subscription{id: b.next, kind: kind}
}

// Unsubscribe removes a handler. Unknown subscriptions are ignored.
func (b *Bus) Unsubscribe(sub Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()
	set, ok := b.handlers[sub.kind]
	if !ok {
		return
	}
	delete(set, sub.id)
	if len(set) == 0 {
		delete(b.handlers, sub.kind)
	}
}

// Subscribers returns the number of handlers registered for kind.
func (b *Bus) Subscribers(kind Kind) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.handlers[kind])
}

// Dispatch runs every handler registered for the event's kind in
// subscription order. It returns the number of handlers invoked.
func (b *Bus) Dispatch(evt Event) int {
	b.mu.Lock()
	set := b.handlers[evt.Kind]
	ids := make([]uint64, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	handlers := make([]Handler, 0, len(ids))
	for _, id := range ids {
		handlers = append(handlers, set[id])
	}
	b.mu.Unlock()

	for _, h := range handlers {
		h(evt)
	}
	return len(handlers)
}
