package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_FanOut(t *testing.T) {
	h := NewHub()
	a, cancelA := h.Subscribe()
	b, cancelB := h.Subscribe()
	defer cancelA()
	defer cancelB()
	assert.Equal(t, 2, h.Len())

	h.Publish(Event{Type: EventReload, Data: "1"})

	assert.Equal(t, Event{Type: EventReload, Data: "1"}, <-a)
	assert.Equal(t, Event{Type: EventReload, Data: "1"}, <-b)
}

func TestHub_CancelUnsubscribes(t *testing.T) {
	h := NewHub()
	ch, cancel := h.Subscribe()
	cancel()
	cancel()

	_, open := <-ch
	assert.False(t, open)
	assert.Zero(t, h.Len())

	h.Publish(Event{Type: EventReload})
}

func TestHub_SlowSubscriberDoesNotBlock(t *testing.T) {
	h := NewHub()
	ch, cancel := h.Subscribe()
	defer cancel()

	for i := 0; i < subscriberBuffer*3; i++ {
		h.Publish(Event{Type: EventReload})
	}
	assert.Len(t, ch, subscriberBuffer)
}

func TestHub_LateSubscriberGetsBuildError(t *testing.T) {
	h := NewHub()
	h.Publish(Event{Type: EventBuildError, Data: `{"messages":["boom"]}`})

	ch, cancel := h.Subscribe()
	defer cancel()
	require.Len(t, ch, 1)
	assert.Equal(t, EventBuildError, (<-ch).Type)

	h.Publish(Event{Type: EventReload})
	ch2, cancel2 := h.Subscribe()
	defer cancel2()
	assert.Empty(t, ch2)
}

func TestHub_Close(t *testing.T) {
	h := NewHub()
	ch, cancel := h.Subscribe()
	h.Close()
	h.Close()
	cancel()

	_, open := <-ch
	assert.False(t, open)

	late, _ := h.Subscribe()
	_, open = <-late
	assert.False(t, open)
}
