package main

import (
	"context"
	"expvar"
	"log"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"quizmatch/internal/domain"
	"quizmatch/internal/infrastructure/configs"
	"quizmatch/internal/infrastructure/events"
	"quizmatch/internal/infrastructure/logging"
	"quizmatch/internal/infrastructure/messaging"
	"quizmatch/internal/infrastructure/metrics"
	"quizmatch/internal/infrastructure/repository"
	"quizmatch/internal/infrastructure/tracing"
	"quizmatch/internal/infrastructure/ws"
	"quizmatch/internal/persistence/db"
	persistence "quizmatch/internal/persistence/repository"
	"quizmatch/internal/presentation/api"
	"quizmatch/internal/presentation/handler/health"
	"quizmatch/internal/presentation/handler/quizzes"
	"quizmatch/internal/presentation/handler/rooms"
	"quizmatch/internal/service"
)

const (
	serviceName = "quizmatch-api"
)

func main() {
	configPath := configs.DetermineConfigPath()
	cfg, err := configs.Load(configPath)
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Tracing.Enabled {
		tracerCfg := tracing.NewDefaultConfig(serviceName)
		if cfg.Tracing.Endpoint != "" {
			tracerCfg.OTLPEndpoint = cfg.Tracing.Endpoint
		}
		if cfg.Tracing.Environment != "" {
			tracerCfg.Environment = cfg.Tracing.Environment
		}

		sh, err := tracing.InitTracer(tracerCfg)
		if err != nil {
			log.Fatalf("Failed to initialize the tracer: %v", err)
		}
		defer sh(ctx)
	}

	logger := logging.NewLogger(logging.NewDefaultConfig())

	store := repository.NewRoomStore()
	roomService := service.NewRoomService(store, service.RoomConfig{
		Expiry:     cfg.Rooms.Expiry(),
		MaxPlayers: cfg.Rooms.MaxPlayers,
	})

	registry := repository.NewQuizRegistry()
	quizService := service.NewQuizService(registry, roomService)

	if loaded, err := registry.LoadDir(cfg.Quizzes.Dir); err != nil {
		logger.Warn(logging.Quizzes, logging.Startup, "failed to load quiz directory", map[logging.ExtraKey]any{
			"dir":   cfg.Quizzes.Dir,
			"error": err.Error(),
		})
	} else if loaded > 0 {
		logger.Info(logging.Quizzes, logging.Startup, "loaded quizzes from disk", map[logging.ExtraKey]any{
			"dir":   cfg.Quizzes.Dir,
			"count": loaded,
		})
	}

	if cfg.Quizzes.SeedSamples {
		if seeded := quizService.SeedSamples(); seeded > 0 {
			logger.Info(logging.Quizzes, logging.Startup, "seeded sample quizzes", map[logging.ExtraKey]any{
				"count": seeded,
			})
		}
	}

	m := metrics.New(prometheus.DefaultRegisterer)

	wsCore := ws.NewCore(roomService.GetRoom)
	go wsCore.Run()

	var auditLogs domain.RoomAuditRepository
	if cfg.Mongo.Enabled {
		mongoCfg := db.NewMongoDefaultConfig()
		if cfg.Mongo.URI != "" {
			mongoCfg.URI = cfg.Mongo.URI
		}
		if cfg.Mongo.Database != "" {
			mongoCfg.Database = cfg.Mongo.Database
		}

		client, err := db.NewMongoClient(ctx, mongoCfg)
		if err != nil {
			log.Fatal(err)
		}
		defer db.DisconnectMongo(context.Background(), client)

		auditLogs = persistence.NewRoomAuditLogRepository(db.GetDatabase(client, mongoCfg))
		if err := auditLogs.EnsureIndexes(ctx); err != nil {
			logger.Warn(logging.Mongo, logging.Startup, "failed to ensure audit log indexes", map[logging.ExtraKey]any{
				"error": err.Error(),
			})
		}
	}

	var roomPublisher *events.RoomPublisher
	if cfg.RabbitMQ.Enabled {
		rabbitmq, err := messaging.NewRabbitMQ(cfg.RabbitMQ.URI)
		if err != nil {
			log.Fatal(err)
		}
		defer rabbitmq.Close()

		log.Println("Starting RabbitMQ connection")

		roomPublisher = events.NewRoomPublisher(rabbitmq)

		// Start Room Consumer
		roomConsumer := events.NewRoomConsumer(rabbitmq, auditLogs)
		if err := roomConsumer.Listen(); err != nil {
			log.Fatal(err)
		}
	}

	store.SetEvictHook(func(room *domain.Room) {
		m.RoomsExpired.Inc()
		wsCore.Broadcast() <- ws.NewRoomExpired(room.Code)

		if roomPublisher != nil {
			if err := roomPublisher.PublishRoomExpired(context.Background(), *room); err != nil {
				log.Printf("Error publishing room expired: %v", err)
			}
		} else if auditLogs != nil {
			if err := auditLogs.Log(context.Background(), domain.NewRoomExpiredLog(room.Code)); err != nil {
				log.Printf("Failed to write audit log for room %s: %v", room.Code, err)
			}
		}

		logger.Info(logging.Rooms, logging.ExpirySweep, "room expired", map[logging.ExtraKey]any{
			"roomCode": room.Code,
			"players":  len(room.Players),
		})
	})

	if interval := cfg.Rooms.SweepInterval(); interval > 0 {
		go func() {
			ticker := time.NewTicker(interval)
			defer ticker.Stop()
			for range ticker.C {
				roomService.Sweep()
			}
		}()
	}

	roomHandler := rooms.NewHandler(roomService, quizService, wsCore, roomPublisher, auditLogs, m)
	quizzesHandler := quizzes.NewHandler(quizService)
	healthHandler := health.NewHandler(roomService)

	app := api.NewApplication(*cfg, roomHandler, quizzesHandler, healthHandler, logger, m)

	expvar.Publish("goroutines", expvar.Func(func() any {
		return runtime.NumGoroutine()
	}))
	expvar.Publish("rooms", expvar.Func(func() any {
		return roomService.Count()
	}))

	mux := app.Mount()
	if err := app.Run(mux); err != nil {
		logger.Fatal(logging.General, logging.Shutdown, "server exited", map[logging.ExtraKey]any{
			"error": err.Error(),
		})
	}
}
