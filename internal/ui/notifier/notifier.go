// Package notifier provides a broadcast mechanism for run-status SSE
// streams. The worker announces a run id after every transition;
// listeners re-query the store for that run.
package notifier

import "sync"

// Notifier broadcasts run ids to all subscribed listeners.
type Notifier struct {
	mu        sync.RWMutex
	listeners map[chan string]struct{}
}

// New creates a new Notifier instance.
func New() *Notifier {
	return &Notifier{
		listeners: make(map[chan string]struct{}),
	}
}

// Subscribe returns a channel that receives run ids when their status
// changes. The caller must call Unsubscribe when done to prevent
// goroutine leaks.
func (n *Notifier) Subscribe() chan string {
	ch := make(chan string, 8)
	n.mu.Lock()
	n.listeners[ch] = struct{}{}
	n.mu.Unlock()
	return ch
}

// Unsubscribe removes a listener channel and closes it.
func (n *Notifier) Unsubscribe(ch chan string) {
	n.mu.Lock()
	delete(n.listeners, ch)
	n.mu.Unlock()
	close(ch)
}

// Broadcast announces a run id to all listeners. Non-blocking: a
// listener with a full channel misses this announcement and catches up
// on its next re-query.
func (n *Notifier) Broadcast(runID string) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	for ch := range n.listeners {
		select {
		case ch <- runID:
		default:
		}
	}
}
