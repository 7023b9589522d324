// cmd/stubserver/main.go

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/veekshithcb/Qkart-Frontend/cart"
	"github.com/veekshithcb/Qkart-Frontend/stubserver"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds | log.Lshortfile)
	log.SetOutput(os.Stderr)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8082"
	}
	addr := ":" + port

	s := stubserver.New([]cart.Product{
		{ID: "v4sLtEcMpzabRyfx", Name: "iPhone XR", Category: "Phones", Cost: 100, Rating: 4, Image: "https://i.imgur.com/lulqWzW.jpg"},
		{ID: "upLK9JbQ4rMhTwt4", Name: "Basketball", Category: "Sports", Cost: 100, Rating: 5, Image: "https://i.imgur.com/lulqWzW.jpg"},
		{ID: "TwMM4OAhmK0VQ93S", Name: "UNIFACTOR Mens Running Shoes", Category: "Fashion", Cost: 50, Rating: 5, Image: "https://i.imgur.com/lulqWzW.jpg"},
		{ID: "BW0jAAeDJmlZCF8i", Name: "YONEX Smash Badminton Racquet", Category: "Sports", Cost: 100, Rating: 5, Image: "https://i.imgur.com/lulqWzW.jpg"},
	})
	s.SeedUser("criodo", "criodo123", 5000)
	log.Println("Seeded demo user 'criodo' with balance 5000")

	server := &http.Server{
		Addr:    addr,
		Handler: s.Router(),
	}

	// グレースフルシャットダウンの設定
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		log.Println("Received shutdown signal, initiating graceful shutdown...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("Error shutting down server: %v", err)
		}
	}()

	log.Printf("Stub storefront API is listening on %s", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("failed to serve: %v", err)
	}
}
