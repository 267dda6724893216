package main

import (
	"log"
	"os"

	"memora/config"
	_ "memora/config/swagger"
	"memora/middleware"
	"memora/routes"
	"memora/services/game"
	"memora/services/notifier"
	"memora/services/rooms"
	"memora/services/socket_io"
	"memora/services/store"
	"memora/services/tasks"
	"memora/services/worker"
	"memora/sync"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

// @title Memora API
// @version 1.0
// @description Gin-Gonic server for the "Memora" companion games API
// @BasePath /
// @paths
func main() {
	godotenv.Load()
	log.Println("Setting up server...")

	if os.Getenv("PROD") == "true" {
		gin.SetMode(gin.ReleaseMode)
	}

	gormDB, err := config.ConnectGORM()
	if err != nil {
		log.Fatalf("Error connecting to PostgreSQL: %v", err)
	}
	log.Println("GORM Connected")

	// Only migrate in development or during deployment
	if os.Getenv("MIGRATE_POSTGRES") == "true" {
		log.Println("Migrating PostgreSQL database...")
		if err := config.MigrateDatabase(gormDB); err != nil {
			log.Printf("Warning: Database migration failed: %v", err)
			// Continue execution even if migration fails
		} else {
			log.Println("Database migrated successfully")
		}
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		log.Fatalf("Error reading GORM PostgreSQL instance: %v", err)
	}
	defer sqlDB.Close()

	redisClient, err := config.ConnectRedis()
	if err != nil {
		log.Fatalf("Error connecting to Redis: %v", err)
	}
	defer config.CloseRedis(redisClient)

	// Room documents live in Redis, finished matches sync to Postgres
	roomStore := store.NewRedisRoomStore(redisClient)
	syncManager := sync.NewSyncManager(gormDB)

	// Task queue shares the Redis instance with the room store
	redisOpt := config.AsynqRedisOpt()
	asynqClient := asynq.NewClient(redisOpt)
	defer asynqClient.Close()

	manager := rooms.NewManager(roomStore)
	machine := game.NewMachine(roomStore, tasks.NewAdvanceScheduler(asynqClient))
	notif := notifier.New(roomStore)

	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	workerServer := worker.NewWorkerServer(redisOpt, roomStore, syncManager, logger)
	go func() {
		if err := workerServer.Start(); err != nil {
			log.Fatalf("Error running worker server: %v", err)
		}
	}()

	sweepScheduler, err := worker.NewSweepScheduler(redisOpt, logger)
	if err != nil {
		log.Fatalf("Error creating sweep scheduler: %v", err)
	}
	go func() {
		if err := sweepScheduler.Run(); err != nil {
			log.Fatalf("Error running sweep scheduler: %v", err)
		}
	}()

	r := gin.Default()

	middleware.SetUpMiddleware(r)

	routes.SetupRoutes(r, gormDB, manager)

	sio := new(socket_io.MySocketServer)
	sio.Start(r, socket_io.Deps{
		DB:       gormDB,
		Manager:  manager,
		Machine:  machine,
		Notifier: notif,
	})

	// Configure port
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	if os.Getenv("USE_HTTPS") == "true" {
		certFile := os.Getenv("TLS_CERT_FILE")
		keyFile := os.Getenv("TLS_KEY_FILE")

		if err := r.RunTLS(":"+port, certFile, keyFile); err != nil {
			log.Fatalf("Error starting server: %v", err)
		}
	} else {
		if err := r.Run(":" + port); err != nil {
			log.Fatalf("Error starting server: %v", err)
		}
	}
}
