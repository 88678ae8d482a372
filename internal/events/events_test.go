package events

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmitReachesEveryHandler(t *testing.T) {
	bus := NewEventBus()

	var mu sync.Mutex
	var got []interface{}
	var wg sync.WaitGroup
	wg.Add(2)

	for i := 0; i < 2; i++ {
		bus.On("donation.created", func(data interface{}) {
			mu.Lock()
			got = append(got, data)
			mu.Unlock()
			wg.Done()
		})
	}

	bus.Emit("donation.created", "payload")
	waitOrFail(t, &wg)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, got, 2)
	assert.Equal(t, "payload", got[0])
	assert.Equal(t, "payload", got[1])
}

func TestEmitWithoutHandlersIsNoop(t *testing.T) {
	bus := NewEventBus()
	assert.NotPanics(t, func() {
		bus.Emit("nobody.listens", 42)
	})
}

func TestPanickingHandlerDoesNotKillOthers(t *testing.T) {
	bus := NewEventBus()

	var wg sync.WaitGroup
	wg.Add(1)

	bus.On("invite.created", func(interface{}) {
		panic("boom")
	})
	bus.On("invite.created", func(interface{}) {
		wg.Done()
	})

	bus.Emit("invite.created", nil)
	waitOrFail(t, &wg)
}

func waitOrFail(t *testing.T, wg *sync.WaitGroup) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("handlers did not run in time")
	}
}
