package trace

import (
	"strconv"
	"sync"
	"time"
)

// heartbeat emits a driver-scope event every interval while a session runs.
// Each beat carries the number of open spans: beats that keep arriving while
// the count stays put mean a unit is stuck inside one pass.
type heartbeat struct {
	stop chan struct{}
	done chan struct{}
	once sync.Once
}

func startHeartbeat(t Tracer, every time.Duration) *heartbeat {
	if t == nil || !t.Enabled() || every <= 0 {
		return nil
	}
	h := &heartbeat{stop: make(chan struct{}), done: make(chan struct{})}
	go h.run(t, every)
	return h
}

func (h *heartbeat) run(t Tracer, every time.Duration) {
	defer close(h.done)
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for beat := 1; ; beat++ {
		select {
		case <-h.stop:
			return
		case now := <-ticker.C:
			t.Emit(&Event{
				Time:   now,
				Seq:    NextSeq(),
				Kind:   KindHeartbeat,
				Scope:  ScopeDriver,
				GID:    getGoroutineID(),
				Name:   "heartbeat",
				Detail: "#" + strconv.Itoa(beat),
				Extra:  map[string]string{"open": strconv.FormatInt(OpenSpans(), 10)},
			})
		}
	}
}

// Stop ends the goroutine and waits for it. Safe on nil and when repeated.
func (h *heartbeat) Stop() {
	if h == nil {
		return
	}
	h.once.Do(func() { close(h.stop) })
	<-h.done
}
