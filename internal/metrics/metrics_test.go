package metrics

import (
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCounter(t *testing.T) {
	var c Counter
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Inc()
		}()
	}
	wg.Wait()

	assert.Equal(t, uint64(50), c.Load())
}

func TestTimer(t *testing.T) {
	timer := StartTimer()
	time.Sleep(time.Millisecond)
	assert.GreaterOrEqual(t, timer.Duration(), time.Millisecond)
}

func TestHTTPObserve(t *testing.T) {
	var h HTTP
	for _, status := range []int{
		http.StatusOK,
		http.StatusCreated,
		http.StatusNotFound,
		http.StatusTooManyRequests,
		http.StatusInternalServerError,
	} {
		h.Observe(status)
	}

	assert.Equal(t, Snapshot{Requests: 5, ClientErrors: 1, Throttled: 1, ServerErrors: 1}, h.Snapshot())
}
