package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"

	"flipsniper/config"
	"flipsniper/handlers"
	"flipsniper/internal/database"
	"flipsniper/services/listings"
	"flipsniper/services/users"
	"flipsniper/services/watchlist"
	"flipsniper/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[main] failed to load config: %v", err)
	}

	if cfg.LogPath != "" {
		log.SetOutput(&lumberjack.Logger{
			Filename:   cfg.LogPath,
			MaxSize:    20, // megabytes
			MaxBackups: 3,
			MaxAge:     14, // days
		})
	}

	db, err := database.NewDB(database.Config{DatabasePath: cfg.DatabasePath})
	if err != nil {
		log.Fatalf("[main] failed to open database: %v", err)
	}
	defer db.Close()

	userSvc, err := users.NewService(cfg.UsersDir)
	if err != nil {
		log.Fatalf("[main] failed to initialise users: %v", err)
	}

	watchlistSvc := watchlist.NewService(db.Repository)

	var feed listings.Supplier
	if cfg.ListingFeedURL != "" {
		feed = listings.NewFeedClient(cfg.ListingFeedURL, nil)
		log.Printf("[main] listing feed enabled url=%s", cfg.ListingFeedURL)
	}
	generator := listings.NewGenerator(cfg.ListingsPerSource, time.Now)
	listingSvc := listings.NewService(feed, generator)

	watchlistHandler := handlers.NewWatchlistHandler(watchlistSvc)
	searchHandler := handlers.NewSearchHandler(watchlistSvc, listingSvc)
	usersHandler := handlers.NewUsersHandler(userSvc)

	router := utils.NewRouter()
	api := router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/watchlist", watchlistHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/watchlist", watchlistHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/watchlist/{id}", watchlistHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/watchlist/{id}", watchlistHandler.Update).Methods(http.MethodPut)
	api.HandleFunc("/watchlist/{id}", watchlistHandler.Delete).Methods(http.MethodDelete)
	api.HandleFunc("/watchlist/{id}/listings", searchHandler.Listings).Methods(http.MethodGet)

	api.HandleFunc("/users", usersHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/users", usersHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/users/{id}", usersHandler.Rename).Methods(http.MethodPut)
	api.HandleFunc("/users/{id}", usersHandler.Delete).Methods(http.MethodDelete)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("[main] FlipSniper backend listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[main] server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Printf("[main] shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("[main] shutdown error: %v", err)
	}
}
