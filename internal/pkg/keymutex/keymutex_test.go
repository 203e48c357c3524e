package keymutex

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyMutex_SerializesSameKey(t *testing.T) {
	km := New()
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			km.Lock("emp-1|2024-03-04")
			counter++
			km.Unlock("emp-1|2024-03-04")
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, counter)
}

func TestKeyMutex_IndependentKeys(t *testing.T) {
	km := New()
	km.Lock("a")

	done := make(chan struct{})
	go func() {
		km.Lock("b")
		km.Unlock("b")
		close(done)
	}()

	// A held lock on "a" must not block "b".
	<-done
	km.Unlock("a")
}

func TestKeyMutex_ReleasesEntries(t *testing.T) {
	km := New()
	km.Lock("x")
	km.Unlock("x")

	km.mu.Lock()
	defer km.mu.Unlock()
	assert.Empty(t, km.locks)
}
