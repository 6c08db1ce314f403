package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"shopbackend/internal/config"
	"shopbackend/internal/events"
	"shopbackend/internal/httpserver"
	"shopbackend/internal/mail"
	authmw "shopbackend/internal/middleware/auth"
	"shopbackend/internal/repo"
	"shopbackend/internal/search"
	"shopbackend/internal/service"
	"shopbackend/pkg/logging"
	loggingmw "shopbackend/pkg/middleware/logging"
)

func main() {
	cfg := config.Load()
	logger := logging.New(cfg.LogLevel)

	e := echo.New()
	e.HideBanner = true

	e.Server.ReadTimeout = 10 * time.Second
	e.Server.WriteTimeout = 15 * time.Second
	e.Server.ReadHeaderTimeout = 3 * time.Second

	e.Use(loggingmw.RequestLogger(logger))
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := config.InitDB(initCtx, cfg)
	cancel()
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}

	gormRepo := &repo.GormRepo{DB: db}

	var sender service.Mailer = &mail.LogSender{Logger: logger}
	if cfg.SMTPHost != "" {
		sender = mail.NewSMTPSender(mail.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     cfg.MailFrom,
			BaseURL:  cfg.BaseURL,
		})
	}

	var producer service.Publisher = events.Noop{}
	var kafkaProducer *events.Producer
	if cfg.KafkaAddress != "" {
		kafkaProducer = events.NewProducer(cfg.KafkaAddress)
		producer = kafkaProducer
	}

	var indexer service.Indexer = search.Noop{}
	var esIndex *search.ES
	if cfg.ESURL != "" {
		esClient, err := search.NewClient(cfg.ESURL, cfg.ESUser, cfg.ESPassword)
		if err != nil {
			log.Fatalf("elasticsearch init error: %v", err)
		}
		esIndex = search.NewES(esClient, search.DefaultIndex)
		indexer = esIndex
	}

	authService := &service.AuthService{
		Repo:      gormRepo,
		Mail:      sender,
		Producer:  producer,
		JWTSecret: cfg.JWTSecret,
	}
	cartService := &service.CartService{
		Repo:     gormRepo,
		Producer: producer,
	}
	catalogService := &service.CatalogService{
		Repo:     gormRepo,
		Index:    indexer,
		Producer: producer,
	}

	httpserver.Register(e, &httpserver.Deps{
		Auth:    &httpserver.AuthHTTP{Svc: authService},
		Cart:    &httpserver.CartHTTP{Svc: cartService},
		Product: &httpserver.ProductHTTP{Svc: catalogService, Search: esIndex},
		AuthMW:  &authmw.Middleware{Repo: gormRepo, Secret: cfg.JWTSecret},
	})

	go func() {
		log.Printf("Starting server on port %s...", cfg.Port)
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatalf("echo start: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("echo shutdown: %v", err)
	}

	if kafkaProducer != nil {
		if err := kafkaProducer.Close(); err != nil {
			log.Printf("kafka close: %v", err)
		}
	}

	sqlDB, err := db.DB()
	if err == nil {
		sqlDB.Close()
	}

	log.Println("Server stopped")
}
