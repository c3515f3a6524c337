package metrics

import (
	"net/http"
	"sync/atomic"
	"time"
)

// Counter is a monotonically increasing, goroutine-safe count.
type Counter struct {
	n atomic.Uint64
}

func (c *Counter) Inc()         { c.n.Add(1) }
func (c *Counter) Load() uint64 { return c.n.Load() }

type Timer struct {
	start time.Time
}

func StartTimer() Timer {
	return Timer{start: time.Now()}
}

func (t Timer) Duration() time.Duration {
	return time.Since(t.start)
}

// HTTP counts served requests by outcome class. 429s are counted apart from
// other client errors so throttling shows up on its own.
type HTTP struct {
	Requests     Counter
	ClientErrors Counter
	Throttled    Counter
	ServerErrors Counter
}

func (h *HTTP) Observe(status int) {
	h.Requests.Inc()
	switch {
	case status >= 500:
		h.ServerErrors.Inc()
	case status == http.StatusTooManyRequests:
		h.Throttled.Inc()
	case status >= 400:
		h.ClientErrors.Inc()
	}
}

type Snapshot struct {
	Requests     uint64 `json:"requests"`
	ClientErrors uint64 `json:"clientErrors"`
	Throttled    uint64 `json:"throttled"`
	ServerErrors uint64 `json:"serverErrors"`
}

func (h *HTTP) Snapshot() Snapshot {
	return Snapshot{
		Requests:     h.Requests.Load(),
		ClientErrors: h.ClientErrors.Load(),
		Throttled:    h.Throttled.Load(),
		ServerErrors: h.ServerErrors.Load(),
	}
}
