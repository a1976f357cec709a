package main

import (
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"pagebinder-notes/pagebinder/broker"
	"pagebinder-notes/pagebinder/config"
	"pagebinder-notes/pagebinder/database"
	"pagebinder-notes/pagebinder/routes"
	"pagebinder-notes/pagebinder/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	db, err := database.Setup(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// The broker is a best-effort change feed; the store stays fully
	// functional when NATS is unreachable.
	var publisher broker.Publisher
	if natsProducer, err := broker.NewNatsProducer(cfg.NatsURL); err != nil {
		log.Printf("Warning: Failed to connect to NATS: %v", err)
		log.Println("The application will continue without broker publishing")
	} else {
		publisher = natsProducer
		defer natsProducer.Close()
	}

	webSocketService := services.NewWebSocketService()
	services.WebSocketServiceInstance = webSocketService
	defer webSocketService.Stop()

	eventHandlerService := services.NewEventHandlerService(db, publisher, webSocketService)
	services.EventHandlerServiceInstance = eventHandlerService
	eventHandlerService.Start()
	defer eventHandlerService.Stop()

	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Split(cfg.AllowedOrigins, ","),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: false,
	}))

	routes.RegisterNotebookRoutes(router, db, services.NotebookServiceInstance)
	routes.RegisterSectionRoutes(router, db, services.SectionServiceInstance)
	routes.RegisterPageRoutes(router, db, services.PageServiceInstance)
	routes.RegisterTrashRoutes(router, db, services.TrashServiceInstance)
	routes.RegisterMaintenanceRoutes(router, db, cfg, services.OrderServiceInstance, services.BackupServiceInstance)
	routes.RegisterWebSocketRoutes(router, webSocketService)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-quit
		log.Println("Shutting down server...")
		eventHandlerService.Stop()
		webSocketService.Stop()
		if publisher != nil {
			publisher.Close()
		}
		db.Close()
		os.Exit(0)
	}()

	log.Printf("API server is running on port %s", cfg.AppPort)
	if err := http.ListenAndServe(":"+cfg.AppPort, router); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
