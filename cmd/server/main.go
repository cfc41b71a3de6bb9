package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/apolenov/webstore/internal/cart"
	"github.com/apolenov/webstore/internal/config"
	"github.com/apolenov/webstore/internal/events"
	"github.com/apolenov/webstore/internal/handlers"
	"github.com/apolenov/webstore/internal/logging"
	loggingmw "github.com/apolenov/webstore/internal/middleware/logging"
	"github.com/apolenov/webstore/internal/render"
	"github.com/apolenov/webstore/internal/store"
	httpserver "github.com/apolenov/webstore/internal/transport/http"
)

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(configuration.LogLevel)

	db, err := store.InitDB(configuration.DatabaseURL, configuration.DBPath)
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}

	products := &store.ProductStore{DB: db}
	if err := products.SeedIfEmpty(context.Background()); err != nil {
		log.Fatalf("seed error: %v", err)
	}

	var producer *events.Producer
	if configuration.KafkaAddress != "" {
		producer = events.NewProducer(configuration.KafkaAddress)
	}

	renderer, err := render.New()
	if err != nil {
		log.Fatalf("template parse error: %v", err)
	}

	sessions := &cart.Codec{Secret: []byte(configuration.SessionSecret)}

	e := echo.New()
	e.Renderer = renderer
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID(), loggingmw.RequestLogger(logger))

	deps := httpserver.Deps{
		DB:             db,
		CatalogHandler: &handlers.CatalogHandler{Store: products},
		CartHandler: &handlers.CartHandler{
			Store:    products,
			Sessions: sessions,
			Producer: producer,
			Redirect: configuration.AddRedirect,
		},
	}

	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", configuration.Port),
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	} else {
		log.Printf("db() error: %v", err)
	}

	if err := producer.Close(); err != nil {
		log.Printf("kafka close error: %v", err)
	}

	log.Println("shutdown complete")
}
