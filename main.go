package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"social-service/internal/auth"
	"social-service/internal/db"
	"social-service/internal/handlers"
	"social-service/internal/links"
	"social-service/internal/middleware"
	"social-service/internal/observability"
	"social-service/internal/rabbitmq"
	"social-service/internal/repositories"
	"social-service/internal/telemetry"
	"social-service/internal/ws"
)

const serviceName = "social-service"

func main() {
	database, err := db.Connect()
	if err != nil {
		log.Fatalf("failed to connect to db: %v", err)
	}

	environment := getEnv("ENVIRONMENT", "development")

	shutdownTracing, err := telemetry.SetupTracing(context.Background(), serviceName, environment, getEnv("OTLP_ENDPOINT", ""))
	if err != nil {
		log.Fatalf("failed to set up tracing: %v", err)
	}

	amqpURL := getEnv("AMQP_URL", "")
	exchange := getEnv("AMQP_EXCHANGE", "social.events")

	publisher := rabbitmq.NewPublisher(amqpURL, exchange)
	defer publisher.Close()
	log.Printf("audit publisher mode=%s reason=%q", rabbitmq.PublisherMode(publisher), rabbitmq.PublisherNoopReason(publisher))

	emitter := telemetry.NewAuditEmitter(publisher, getEnv("AUDIT_ROUTING_KEY", "audit.social"), serviceName, environment)

	if eventsPublisher, err := observability.NewAMQPPublisher(amqpURL, exchange); err != nil {
		log.Printf("ws event publishing disabled: %v", err)
	} else {
		defer eventsPublisher.Close()
		observability.SetPublisher(eventsPublisher)
	}

	tokenTTL, err := time.ParseDuration(getEnv("JWT_TTL", "24h"))
	if err != nil {
		log.Fatalf("invalid JWT_TTL: %v", err)
	}
	tokens := auth.NewTokenManager(getEnv("JWT_SECRET", "dev-secret-change-me"), tokenTTL)

	userRepo := repositories.NewUserRepo(database)
	notificationRepo := repositories.NewNotificationRepo(database)
	conversationRepo := repositories.NewConversationRepo(database)
	messageRepo := repositories.NewMessageRepo(database)
	contentRepo := repositories.NewContentRepo(database)

	manager := links.NewManager(userRepo, notificationRepo, contentRepo)

	presence := ws.NewPresence()
	hub := ws.NewHub(presence)
	socket := ws.NewSocketHandler(hub, presence, manager, conversationRepo, messageRepo, userRepo, tokens)

	authHandler := handlers.NewAuthHandler(userRepo, tokens)
	linksHandler := handlers.NewLinksHandler(manager, userRepo, hub, emitter)
	notificationsHandler := handlers.NewNotificationsHandler(manager)
	usersHandler := handlers.NewUsersHandler(userRepo)

	router := gin.Default()
	router.Use(gin.Recovery())
	router.Use(observability.HTTPMetricsMiddleware())
	router.Use(otelgin.Middleware(serviceName))

	authMiddleware := middleware.AuthMiddleware(tokens)

	router.POST("/auth/register", authHandler.Register)
	router.POST("/auth/login", authHandler.Login)

	router.GET("/links", authMiddleware, linksHandler.ListLinks)
	router.GET("/links/requests", authMiddleware, linksHandler.ListRequests)
	router.POST("/links/requests", authMiddleware, linksHandler.SendRequest)
	router.POST("/links/requests/accept", authMiddleware, linksHandler.AcceptRequest)
	router.POST("/links/requests/reject", authMiddleware, linksHandler.RejectRequest)

	router.GET("/notifications", authMiddleware, notificationsHandler.List)
	router.POST("/notifications/:notification_id/seen", authMiddleware, notificationsHandler.MarkSeen)

	router.GET("/users/search", authMiddleware, usersHandler.Search)

	router.GET("/ws", socket.Handle)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	handlers.RegisterDebugRoutes(router, emitter, getEnv("DEBUG_ROUTES", "") == "true")

	retention, err := time.ParseDuration(getEnv("RETENTION_HORIZON", "720h"))
	if err != nil {
		log.Fatalf("invalid RETENTION_HORIZON: %v", err)
	}
	stopSweeper := make(chan struct{})
	go runRetentionSweep(notificationRepo, messageRepo, retention, stopSweeper)

	go func() {
		port := getEnv("PORT", "8086")
		if err := router.Run(":" + port); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	close(stopSweeper)
	presence.Shutdown()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Printf("tracing shutdown: %v", err)
	}
}

// runRetentionSweep periodically deletes notifications and messages past the
// retention horizon. Postgres has no TTL, so the sweep does the expiring.
func runRetentionSweep(notifications repositories.NotificationRepository, messages repositories.MessageRepository, horizon time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			if n, err := notifications.DeleteOlderThan(ctx, horizon); err != nil {
				log.Printf("notification retention sweep failed: %v", err)
			} else if n > 0 {
				log.Printf("notification retention sweep removed %d rows", n)
			}
			if n, err := messages.DeleteOlderThan(ctx, horizon); err != nil {
				log.Printf("message retention sweep failed: %v", err)
			} else if n > 0 {
				log.Printf("message retention sweep removed %d rows", n)
			}
			cancel()
		}
	}
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}
