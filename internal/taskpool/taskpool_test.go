package taskpool

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAllTasksRunExactlyOnce(t *testing.T) {
	p := New(4)

	const n = 1000
	var counter int64
	for i := 0; i < n; i++ {
		p.Add(func() {
			atomic.AddInt64(&counter, 1)
		})
	}
	p.Close()

	assert.Equal(t, int64(n), atomic.LoadInt64(&counter))
}

func TestCloseJoinsAllWorkers(t *testing.T) {
	p := New(2)
	done := make(chan struct{})
	p.Add(func() {
		time.Sleep(10 * time.Millisecond)
		close(done)
	})
	p.Close()

	select {
	case <-done:
	default:
		t.Fatal("Close returned before the in-flight task finished")
	}
}

func TestDefaultWorkerCount(t *testing.T) {
	p := New(0)
	defer p.Close()
	assert.NotNil(t, p)
}
