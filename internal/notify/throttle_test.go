package notify

import (
	"testing"
	"time"

	"github.com/fogwalk/fogwalk-backend-go/internal/reveal"
)

func TestThrottledSinkCoalesces(t *testing.T) {
	var delivered []int
	// 1 event/s with burst 1: only the first of a rapid burst gets through
	sink := NewThrottledSink(1, 1, func(ev reveal.DiscoveryEvent) {
		delivered = append(delivered, ev.NewSegments)
	})
	listener := sink.Listener()

	at := time.Now()
	listener(reveal.DiscoveryEvent{NewSegments: 2, At: at})
	listener(reveal.DiscoveryEvent{NewSegments: 3, At: at})
	listener(reveal.DiscoveryEvent{NewSegments: 1, At: at})

	if len(delivered) != 1 {
		t.Fatalf("expected 1 delivered notification, got %d", len(delivered))
	}
	if delivered[0] != 2 {
		t.Fatalf("first notification should carry its own count, got %d", delivered[0])
	}
	// The suppressed counts stay pending for the next allowed delivery
	if sink.pending != 4 {
		t.Fatalf("expected 4 pending segments, got %d", sink.pending)
	}
}
