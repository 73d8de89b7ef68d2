package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/oksasatya/go-travel-assistant/config"
	"github.com/oksasatya/go-travel-assistant/internal/domain/entity"
	pginfra "github.com/oksasatya/go-travel-assistant/internal/infrastructure/postgres"
	"github.com/oksasatya/go-travel-assistant/pkg/helpers"
)

// Seeds one verified account so login can be exercised without going
// through the OTP mail round trip.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	ctx := context.Background()

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), pginfra.PoolOptions{MaxConns: 2, AppName: cfg.AppName + "-seed"})
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer pool.Close()

	email := helpers.NormalizeEmail(getenv("SEED_EMAIL", "demo@traveai.local"))
	password := getenv("SEED_PASSWORD", "password123")
	name := getenv("SEED_NAME", "Demo Traveller")

	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	users := pginfra.NewUserRepository(pool)
	u, err := users.CreateVerifiedIfAbsent(ctx, &entity.User{Email: email, Password: hash, Name: name, IsVerified: true})
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%s email=%s verified=%t\n", u.ID, u.Email, u.IsVerified)
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
