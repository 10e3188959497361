package testutil

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var start = time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)

func TestDeterministicClock_StartsAtStart(t *testing.T) {
	clock := NewDeterministicClock(start)
	assert.Equal(t, start, clock.Now())
	assert.Equal(t, start, clock.Now(), "Now does not advance")
}

func TestDeterministicClock_Advance(t *testing.T) {
	clock := NewDeterministicClock(start)

	assert.Equal(t, start.Add(time.Hour), clock.Advance(time.Hour))
	assert.Equal(t, start.Add(25*time.Hour), clock.Advance(24*time.Hour))
	assert.Equal(t, start.Add(25*time.Hour), clock.Now())
}

func TestDeterministicClock_Reset(t *testing.T) {
	clock := NewDeterministicClock(start)
	clock.Advance(48 * time.Hour)

	clock.Reset()
	assert.Equal(t, start, clock.Now())
}

func TestDeterministicClock_ConcurrentAdvance(t *testing.T) {
	clock := NewDeterministicClock(start)

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			clock.Advance(time.Minute)
		}()
	}
	wg.Wait()

	assert.Equal(t, start.Add(100*time.Minute), clock.Now())
}

func TestDeterministicClock_UsableAsNowFunc(t *testing.T) {
	clock := NewDeterministicClock(start)
	var now func() time.Time = clock.Now

	clock.Advance(time.Second)
	assert.Equal(t, start.Add(time.Second), now())
}
