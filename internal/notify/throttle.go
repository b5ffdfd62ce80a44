package notify

import (
	"golang.org/x/time/rate"

	"github.com/fogwalk/fogwalk-backend-go/internal/reveal"
)

// ThrottledSink forwards discovery events to a notification callback at a
// bounded rate, coalescing the segment counts of suppressed events into the
// next delivered one. It keeps UI-facing notification pressure off the
// reveal engine, which emits events synchronously per position update.
type ThrottledSink struct {
	limiter *rate.Limiter
	notify  func(reveal.DiscoveryEvent)
	pending int
}

// NewThrottledSink creates a sink delivering at most eventsPerSecond
// notifications with the given burst.
func NewThrottledSink(eventsPerSecond float64, burst int, notify func(reveal.DiscoveryEvent)) *ThrottledSink {
	return &ThrottledSink{
		limiter: rate.NewLimiter(rate.Limit(eventsPerSecond), burst),
		notify:  notify,
	}
}

// Listener returns the reveal.Listener to register with the engine. Called
// from the engine's single position-processing stream, so no locking is
// needed around the pending counter.
func (s *ThrottledSink) Listener() reveal.Listener {
	return func(ev reveal.DiscoveryEvent) {
		s.pending += ev.NewSegments
		if !s.limiter.Allow() {
			return
		}
		s.notify(reveal.DiscoveryEvent{NewSegments: s.pending, At: ev.At})
		s.pending = 0
	}
}
