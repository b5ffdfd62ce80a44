package reveal

import (
	"fmt"
	"sync"
	"time"

	"github.com/fogwalk/fogwalk-backend-go/internal/models"
	"github.com/fogwalk/fogwalk-backend-go/internal/spatial"
	"github.com/fogwalk/fogwalk-backend-go/internal/store"
	"github.com/fogwalk/fogwalk-backend-go/internal/streets"
)

// RevealRadiusMeters is the distance within which a player's position
// discovers (or increments) a street segment.
const RevealRadiusMeters = 15.0

// DiscoveryEvent is emitted after a position update that created at least one
// new segment record.
type DiscoveryEvent struct {
	NewSegments int       `json:"newSegments"`
	At          time.Time `json:"at"`
}

// Listener receives discovery events. Listeners are invoked synchronously
// after each position update and must not block.
type Listener func(DiscoveryEvent)

// Engine is the segment reveal state machine. For each accepted position it
// finds every loaded segment within the reveal radius, increments existing
// records and creates new ones, and emits a discovery event for the new
// reveals. All dependencies are injected; the mutex is shared with the sync
// merger so both writers serialize their check-then-insert sequences against
// the segment store.
type Engine struct {
	index *streets.Index
	store store.SegmentStore
	mu    *sync.Mutex

	listeners []Listener
	publish   func(models.SegmentRecord)
	now       func() time.Time
}

// NewEngine creates a reveal engine over the given index and store. storeMu
// must be the same mutex handed to the sync merger.
func NewEngine(index *streets.Index, segStore store.SegmentStore, storeMu *sync.Mutex) *Engine {
	return &Engine{
		index: index,
		store: segStore,
		mu:    storeMu,
		now:   time.Now,
	}
}

// AddListener registers a discovery event listener.
func (e *Engine) AddListener(l Listener) {
	e.listeners = append(e.listeners, l)
}

// SetPublisher registers the team-share publish hook, called once per newly
// created local record (never for walk-count increments). The hook is
// invoked outside the store lock; fire-and-forget dispatch is the hook's
// responsibility.
func (e *Engine) SetPublisher(publish func(models.SegmentRecord)) {
	e.publish = publish
}

// SetClock overrides the engine's time source.
func (e *Engine) SetClock(now func() time.Time) {
	e.now = now
}

type inRangeSegment struct {
	street       *models.StreetGeometry
	segmentIndex int
	start, end   spatial.Point
}

// OnPosition processes one accepted position. Returns the number of newly
// created segment records. An empty street index yields zero work and no
// error; store failures propagate, since swallowing them would silently lose
// discovery progress.
func (e *Engine) OnPosition(pos models.FilteredPosition) (int, error) {
	p := spatial.Point{Lat: pos.Latitude, Lon: pos.Longitude}

	var inRange []inRangeSegment
	e.index.ForEachSegment(func(street *models.StreetGeometry, segmentIndex int, start, end spatial.Point) {
		if spatial.PointToSegmentDistance(p, start, end) <= RevealRadiusMeters {
			inRange = append(inRange, inRangeSegment{street: street, segmentIndex: segmentIndex, start: start, end: end})
		}
	})

	if len(inRange) == 0 {
		return 0, nil
	}

	now := e.now()
	var created []models.SegmentRecord

	e.mu.Lock()
	for _, seg := range inRange {
		id := models.SegmentID(seg.street.ID, seg.segmentIndex)

		existing, err := e.store.Get(id)
		if err != nil {
			e.mu.Unlock()
			return 0, fmt.Errorf("failed to load segment %s: %w", id, err)
		}

		if existing != nil {
			existing.RecordWalk(now)
			if err := e.store.Put(existing); err != nil {
				e.mu.Unlock()
				return 0, fmt.Errorf("failed to update segment %s: %w", id, err)
			}
			continue
		}

		rec := models.NewSegmentRecord(seg.street.ID, seg.segmentIndex, seg.street.Name,
			seg.start.Lat, seg.start.Lon, seg.end.Lat, seg.end.Lon, now)
		if err := e.store.Put(rec); err != nil {
			e.mu.Unlock()
			return 0, fmt.Errorf("failed to insert segment %s: %w", id, err)
		}
		created = append(created, *rec)
	}
	e.mu.Unlock()

	if e.publish != nil {
		for _, rec := range created {
			e.publish(rec)
		}
	}

	if len(created) > 0 {
		ev := DiscoveryEvent{NewSegments: len(created), At: now}
		for _, l := range e.listeners {
			l(ev)
		}
	}

	return len(created), nil
}
