package bot

import (
	"sync"
	"testing"

	"comicbot/internal/testutil"

	"github.com/stretchr/testify/assert"
)

func TestDispatcher_RunsTasksInOrder(t *testing.T) {
	d := NewDispatcher(&testutil.MockLogger{})

	var got []int
	for i := 0; i < 100; i++ {
		i := i
		d.Submit(func() { got = append(got, i) })
	}
	d.Stop()

	assert.Len(t, got, 100)
	for i, v := range got {
		assert.Equal(t, i, v)
	}
}

func TestDispatcher_NeverRunsTasksConcurrently(t *testing.T) {
	d := NewDispatcher(&testutil.MockLogger{})

	var mu sync.Mutex
	running, maxRunning := 0, 0
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				d.Submit(func() {
					mu.Lock()
					running++
					maxRunning = max(maxRunning, running)
					mu.Unlock()

					mu.Lock()
					running--
					mu.Unlock()
				})
			}
		}()
	}
	wg.Wait()
	d.Stop()

	assert.Equal(t, 1, maxRunning)
}

func TestDispatcher_SubmitAfterStopIsDropped(t *testing.T) {
	d := NewDispatcher(&testutil.MockLogger{})
	d.Stop()

	ran := false
	assert.NotPanics(t, func() { d.Submit(func() { ran = true }) })
	assert.False(t, ran)
	d.Stop()
}

func TestDispatcher_RecoversPanics(t *testing.T) {
	logger := &testutil.MockLogger{}
	d := NewDispatcher(logger)

	ran := false
	d.Submit(func() { panic("boom") })
	d.Submit(func() { ran = true })
	d.Stop()

	assert.True(t, ran)
	assert.Equal(t, 1, logger.Count("error"))
}
