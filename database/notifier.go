package database

import "sync"

// Notifier fans out table-change signals to watch subscriptions. Signals are
// coalesced: a subscriber that has not drained its channel yet still sees the
// latest state on its next read, which is all the live-view contract promises.
type Notifier struct {
	mu     sync.Mutex
	nextID int
	subs   map[string]map[int]chan struct{}
}

func NewNotifier() *Notifier {
	return &Notifier{subs: make(map[string]map[int]chan struct{})}
}

func (n *Notifier) Subscribe(table string) (int, <-chan struct{}) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.subs[table] == nil {
		n.subs[table] = make(map[int]chan struct{})
	}

	n.nextID++
	ch := make(chan struct{}, 1)
	n.subs[table][n.nextID] = ch
	return n.nextID, ch
}

func (n *Notifier) Unsubscribe(table string, id int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	delete(n.subs[table], id)
}

func (n *Notifier) Publish(table string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	for _, ch := range n.subs[table] {
		select {
		case ch <- struct{}{}:
		default:
			// Signal already pending, the subscriber will requery anyway.
		}
	}
}
