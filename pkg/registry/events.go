package registry

import (
	"sync"

	"github.com/github/gh-bundles/pkg/logger"
)

var eventLog = logger.New("registry:events")

// EventKind names one lifecycle event the manager emits.
type EventKind string

const (
	EventSourceSynced      EventKind = "onSourceSynced"
	EventBundleInstalled    EventKind = "onBundleInstalled"
	EventBundleUpdated      EventKind = "onBundleUpdated"
	EventBundleUninstalled  EventKind = "onBundleUninstalled"
)

// Event carries the payload for one lifecycle notification.
type Event struct {
	Kind     EventKind
	SourceID string
	BundleID string
	Scope    Scope
	Version  string
}

// EventHandler receives lifecycle events. Handlers are invoked synchronously
// and in subscription order, so a slow handler delays the next one; hosts
// that need async fan-out should dispatch internally.
type EventHandler func(Event)

// EventEmitter fans lifecycle events out to registered handlers, preserving
// the causal ordering spec.md §5 requires: onSourceSynced always precedes
// any onBundleInstalled/onBundleUpdated that resulted from that sync, and
// onBundleUninstalled is never emitted concurrently with an install/update
// of the same (bundleId, scope) because the manager serializes those via
// singleflight before emitting.
type EventEmitter struct {
	mu       sync.RWMutex
	handlers map[EventKind][]EventHandler
}

// NewEventEmitter builds an empty EventEmitter.
func NewEventEmitter() *EventEmitter {
	return &EventEmitter{handlers: map[EventKind][]EventHandler{}}
}

// On registers handler for kind.
func (e *EventEmitter) On(kind EventKind, handler EventHandler) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.handlers[kind] = append(e.handlers[kind], handler)
}

// Emit calls every handler registered for evt.Kind, in order.
func (e *EventEmitter) Emit(evt Event) {
	e.mu.RLock()
	handlers := append([]EventHandler(nil), e.handlers[evt.Kind]...)
	e.mu.RUnlock()

	eventLog.Printf("emitting %s for bundle=%s scope=%s source=%s", evt.Kind, evt.BundleID, evt.Scope, evt.SourceID)
	for _, h := range handlers {
		h(evt)
	}
}
