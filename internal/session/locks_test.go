package session

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocksSerializeSameSession(t *testing.T) {
	locks := NewLocks()

	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release := locks.Acquire("sess-1")
			defer release()
			counter++
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, counter)
}

func TestLocksIndependentSessions(t *testing.T) {
	locks := NewLocks()

	release1 := locks.Acquire("sess-1")
	// a different session must not block
	release2 := locks.Acquire("sess-2")
	release2()
	release1()
}

func TestLocksDropUnreferencedEntries(t *testing.T) {
	locks := NewLocks()

	release := locks.Acquire("sess-1")
	release()

	locks.mu.Lock()
	defer locks.mu.Unlock()
	assert.Empty(t, locks.entries)
}
