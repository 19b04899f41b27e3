package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"spicysweet/internal/config"
	"spicysweet/internal/game"
	"spicysweet/internal/repository"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	db := client.Database(cfg.MongoDB)
	contentRepo := repository.NewContentRepo(db)

	set := game.DefaultContent()
	if err := contentRepo.Upsert(ctx, set); err != nil {
		log.Fatalf("Failed to seed content: %v", err)
	}

	log.Printf("Seeded content set %q:", set.Name)
	log.Printf("  phase1: %d questions", len(set.Rapid))
	log.Printf("  phase2: %d items", len(set.Sort))
	log.Printf("  phase3: %d menus", len(set.Menus))
	log.Printf("  phase4: %d questions", len(set.Buzzer))
	log.Printf("  phase5: %d pairs", len(set.Memory))
}
