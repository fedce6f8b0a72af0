package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/kluaihom/banana-market-backend/internal/config"
	"github.com/kluaihom/banana-market-backend/internal/db"
	"github.com/kluaihom/banana-market-backend/internal/model"
	"github.com/kluaihom/banana-market-backend/internal/server"
)

// Set via -ldflags at build time.
var (
	gitSHA    = "dev"
	buildTime = "unknown"
)

func main() {
	_ = godotenv.Load()

	srv := server.New(nil, gitSHA, buildTime)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	addr := ":" + port

	errCh := make(chan error, 1)

	go func() {
		log.Printf("starting server on %s", addr)
		errCh <- srv.Start(addr)
	}()

	// Connect and migrate in the background so a slow Cloud SQL socket
	// does not delay the health endpoint coming up.
	go func() {
		cfg, err := config.Load()
		if err != nil {
			log.Printf("config load error: %v", err)
			return
		}
		conn, err := db.Connect(cfg)
		if err != nil {
			log.Printf("db connect error: %v", err)
			return
		}
		if err := conn.AutoMigrate(
			&model.UserProfile{},
			&model.UserRole{},
			&model.FarmProfile{},
			&model.Product{},
			&model.ProductImage{},
			&model.Reservation{},
			&model.Order{},
			&model.Review{},
			&model.Cultivar{},
		); err != nil {
			log.Printf("auto migrate error: %v", err)
		}
		srv.SetDB(conn)
	}()

	if err := <-errCh; err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
