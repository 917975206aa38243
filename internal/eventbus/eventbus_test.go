package eventbus

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishDeliversInOrder(t *testing.T) {
	b := New()
	defer b.Close()

	var mu sync.Mutex
	var got []string
	b.Subscribe(EventValueChanged, func(e DomainEvent) {
		mu.Lock()
		defer mu.Unlock()
		got = append(got, e.(ValueChangedEvent).Field)
	})

	b.Publish(ValueChangedEvent{Field: "heroes"})
	b.Publish(ValueChangedEvent{Field: "droids"})
	b.Publish(ConfigSavedEvent{Path: "x"})

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(got) == 2
	}, time.Second, 10*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"heroes", "droids"}, got)
}

func TestUnsubscribe(t *testing.T) {
	b := New()

	var mu sync.Mutex
	first, second := 0, 0
	unsub := b.Subscribe(EventConfigSaved, func(DomainEvent) {
		mu.Lock()
		first++
		mu.Unlock()
	})
	b.Subscribe(EventConfigSaved, func(DomainEvent) {
		mu.Lock()
		second++
		mu.Unlock()
	})

	unsub()
	b.Publish(ConfigSavedEvent{})
	b.Close()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 0, first)
	assert.Equal(t, 1, second)
}

func TestHandlerPanicIsRecovered(t *testing.T) {
	b := New()

	done := make(chan struct{})
	b.Subscribe(EventError, func(DomainEvent) { panic("boom") })
	b.Subscribe(EventError, func(DomainEvent) { close(done) })

	b.Publish(ErrorEvent{Message: "x"})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("second handler was not called")
	}
	b.Close()
}

func TestPublishAfterCloseIsDropped(t *testing.T) {
	b := New()
	called := false
	b.Subscribe(EventConfigSaved, func(DomainEvent) { called = true })
	b.Close()
	b.Close()

	b.Publish(ConfigSavedEvent{})
	assert.False(t, called)
}

func TestCloseRacingPublish(t *testing.T) {
	b := New()

	var mu sync.Mutex
	delivered := 0
	b.Subscribe(EventValueChanged, func(DomainEvent) {
		mu.Lock()
		delivered++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				b.Publish(ValueChangedEvent{Field: "heroes"})
			}
		}()
	}
	b.Close()

	mu.Lock()
	atClose := delivered
	mu.Unlock()

	wg.Wait()
	time.Sleep(20 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, atClose, delivered, "nothing is delivered once Close has returned")
	assert.Empty(t, b.(*bus).eventChan, "nothing is queued after the drain")
}
