package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventEmitterInvokesHandlersInOrder(t *testing.T) {
	emitter := NewEventEmitter()
	var order []string

	emitter.On(EventBundleInstalled, func(e Event) { order = append(order, "first:"+e.BundleID) })
	emitter.On(EventBundleInstalled, func(e Event) { order = append(order, "second:"+e.BundleID) })
	emitter.On(EventBundleUninstalled, func(e Event) { order = append(order, "should-not-fire") })

	emitter.Emit(Event{Kind: EventBundleInstalled, BundleID: "acme/agent"})

	assert.Equal(t, []string{"first:acme/agent", "second:acme/agent"}, order)
}

func TestEventEmitterNoHandlersDoesNotPanic(t *testing.T) {
	emitter := NewEventEmitter()
	assert.NotPanics(t, func() {
		emitter.Emit(Event{Kind: EventSourceSynced, SourceID: "acme"})
	})
}
