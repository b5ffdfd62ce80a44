package main

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/fogwalk/fogwalk-backend-go/internal/api"
	"github.com/fogwalk/fogwalk-backend-go/internal/config"
	"github.com/fogwalk/fogwalk-backend-go/internal/database"
	"github.com/fogwalk/fogwalk-backend-go/internal/handler"
	"github.com/fogwalk/fogwalk-backend-go/internal/notify"
	"github.com/fogwalk/fogwalk-backend-go/internal/progress"
	"github.com/fogwalk/fogwalk-backend-go/internal/repository"
	"github.com/fogwalk/fogwalk-backend-go/internal/reveal"
	"github.com/fogwalk/fogwalk-backend-go/internal/service"
	"github.com/fogwalk/fogwalk-backend-go/internal/streets"
	"github.com/fogwalk/fogwalk-backend-go/internal/syncer"
	"github.com/fogwalk/fogwalk-backend-go/internal/tracking"
)

func main() {
	cfg := config.Load()

	if err := database.Init(database.Config{Path: cfg.DBPath}); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer database.Close()
	db := database.GetDB()

	segmentRepo := repository.NewSegmentRepository(db)
	progressRepo := repository.NewProgressRepository(db)
	syncStateRepo := repository.NewSyncStateRepository(db)

	initial, err := progressRepo.Load()
	if err != nil {
		log.Fatal("Failed to load player progress:", err)
	}
	accumulator := progress.NewAccumulator(initial)

	index := streets.NewIndex()

	// Both writers to the segment store share one mutex so their
	// check-then-insert sequences never interleave.
	var storeMu sync.Mutex
	engine := reveal.NewEngine(index, segmentRepo, &storeMu)
	merger := syncer.NewMerger(segmentRepo, &storeMu)

	engine.AddListener(func(ev reveal.DiscoveryEvent) {
		accumulator.OnSegmentsDiscovered(ev.NewSegments)
	})
	sink := notify.NewThrottledSink(1, 3, func(ev reveal.DiscoveryEvent) {
		log.Printf("Discovered %d new segments", ev.NewSegments)
	})
	engine.AddListener(sink.Listener())

	var transport syncer.Transport = syncer.NoopTransport{}
	if cfg.SyncBaseURL != "" {
		transport = syncer.NewHTTPTransport(cfg.SyncBaseURL)
	}
	syncService := service.NewSyncService(merger, transport, syncStateRepo)
	engine.SetPublisher(syncService.Publisher())

	trackingService := service.NewTrackingService(tracking.NewFilter(), engine, accumulator, progressRepo)
	streetService := service.NewStreetService(index, streets.NewOverpassProvider(cfg.OverpassURL))
	segmentService := service.NewSegmentService(segmentRepo)

	router := api.SetupRouter(cfg, api.Handlers{
		Position: handler.NewPositionHandler(trackingService),
		Segment:  handler.NewSegmentHandler(segmentService),
		Street:   handler.NewStreetHandler(streetService),
		Sync:     handler.NewSyncHandler(syncService),
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go syncService.Run(ctx, time.Minute)

	log.Printf("Server starting on port %s (device %s)", cfg.Port, cfg.DeviceID)
	if err := router.Run(cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
