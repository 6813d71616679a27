package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/example/pinyinquest/internal/bot"
	"github.com/example/pinyinquest/internal/database"
	"github.com/example/pinyinquest/internal/game"
)

func main() {
	// .env is optional; environment variables win
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	if err := database.Connect(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	store := database.NewStore()
	state := store.Load()
	session := game.NewSession(state, store)

	b, err := bot.New(session)
	if err != nil {
		log.Fatalf("Failed to create bot: %v", err)
	}

	done := make(chan struct{})

	go func() {
		sig := <-sigChan
		log.Printf("Received signal: %v", sig)
		b.Stop()
		close(done)
	}()

	log.Println("Pinyin Quest started. Press Ctrl+C to stop.")
	go func() {
		if err := b.Start(); err != nil {
			log.Fatalf("Bot error: %v", err)
		}
	}()

	<-done
	log.Println("Stopped")
}
